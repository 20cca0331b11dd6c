// Package auth builds the per-request headers of the API client.
//
// The identity token is resolved through a SessionAccessor on every call;
// nothing is cached here. When no usable token exists the request simply
// goes out without an Authorization header and the backend decides.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/ingestctl/internal/common"
)

// SessionAccessor yields the current identity token, if any.
type SessionAccessor interface {
	CurrentToken(ctx context.Context) (string, bool)
}

// ContentKind tells the header builder what kind of body the request carries.
type ContentKind int

const (
	// ContentJSON marks a JSON body (or a plain JSON call without body).
	ContentJSON ContentKind = iota
	// ContentNone marks binary, multipart or download calls: no Content-Type
	// is set so the body writer can supply its own (multipart boundary).
	ContentNone
)

type HeaderProvider struct {
	session SessionAccessor
}

// NewHeaderProvider returns a provider backed by s. A nil accessor is
// treated as "never signed in".
func NewHeaderProvider(s SessionAccessor) *HeaderProvider {
	return &HeaderProvider{session: s}
}

// Headers assembles the headers for one request.
func (p *HeaderProvider) Headers(ctx context.Context, kind ContentKind) http.Header {
	h := make(http.Header)
	if kind == ContentJSON {
		h.Set(common.ContentTypeHeader, common.ContentTypeJSON)
	}
	if token, ok := p.token(ctx); ok {
		h.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}
	return h
}

func (p *HeaderProvider) token(ctx context.Context) (token string, ok bool) {
	if p == nil || p.session == nil {
		return "", false
	}
	// A misbehaving session store must not fail the call.
	defer func() {
		if r := recover(); r != nil {
			token, ok = "", false
		}
	}()
	token, ok = p.session.CurrentToken(ctx)
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

// StaticSession serves a fixed token, e.g. one passed with --token.
type StaticSession string

func (s StaticSession) CurrentToken(context.Context) (string, bool) {
	return string(s), s != ""
}

// SessionFunc adapts a function to SessionAccessor.
type SessionFunc func(ctx context.Context) (string, bool)

func (f SessionFunc) CurrentToken(ctx context.Context) (string, bool) {
	return f(ctx)
}
