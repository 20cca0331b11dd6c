// Package common contains constants and sentinel errors shared by the
// ingestctl client packages.
package common

const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "

	ContentTypeHeader = "Content-Type"
	ContentTypeJSON   = "application/json"
)
