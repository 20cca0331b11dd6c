package client

// Endpoint names one logical backend call.
type Endpoint string

const (
	EndpointHealth            Endpoint = "health"
	EndpointDashboardJobs     Endpoint = "dashboard_jobs"
	EndpointQueueStats        Endpoint = "queue_stats"
	EndpointListJobs          Endpoint = "list_jobs"
	EndpointGetJob            Endpoint = "get_job"
	EndpointCancelJob         Endpoint = "cancel_job"
	EndpointSystemHealth      Endpoint = "system_health"
	EndpointWorkers           Endpoint = "workers"
	EndpointPresignedURL      Endpoint = "presigned_url"
	EndpointDirectUpload      Endpoint = "direct_upload"
	EndpointNotifyProcessing  Endpoint = "notify_processing"
	EndpointSubmitURLs        Endpoint = "submit_urls"
	EndpointPendingApprovals  Endpoint = "pending_approvals"
	EndpointApprovalHistory   Endpoint = "approval_history"
	EndpointDecideApproval    Endpoint = "decide_approval"
	EndpointListDocuments     Endpoint = "list_documents"
	EndpointGetDocument       Endpoint = "get_document"
	EndpointSearchDocuments   Endpoint = "search_documents"
	EndpointDocumentStats     Endpoint = "document_stats"
	EndpointDownloadDocument  Endpoint = "download_document"
	EndpointAdminClearBuckets Endpoint = "admin_clear_buckets"
	EndpointAdminClearTables  Endpoint = "admin_clear_tables"
	EndpointLogin             Endpoint = "login"
	EndpointRefresh           Endpoint = "refresh"
	EndpointMe                Endpoint = "me"
)

// Policy decides what a failed call returns.
type Policy int

const (
	// Propagate returns the error to the caller.
	Propagate Policy = iota
	// Fallback logs the error and returns a synthetic payload flagged as mock.
	Fallback
)

func (p Policy) String() string {
	if p == Fallback {
		return "fallback"
	}
	return "propagate"
}

// Only dashboard reads degrade. Anything that changes state or names a
// single entity must report failure, or the caller would be told an action
// happened when it did not.
var policies = map[Endpoint]Policy{
	EndpointHealth:            Propagate,
	EndpointDashboardJobs:     Fallback,
	EndpointQueueStats:        Fallback,
	EndpointListJobs:          Fallback,
	EndpointGetJob:            Propagate,
	EndpointCancelJob:         Propagate,
	EndpointSystemHealth:      Fallback,
	EndpointWorkers:           Fallback,
	EndpointPresignedURL:      Propagate,
	EndpointDirectUpload:      Propagate,
	EndpointNotifyProcessing:  Propagate,
	EndpointSubmitURLs:        Propagate,
	EndpointPendingApprovals:  Fallback,
	EndpointApprovalHistory:   Fallback,
	EndpointDecideApproval:    Propagate,
	EndpointListDocuments:     Fallback,
	EndpointGetDocument:       Propagate,
	EndpointSearchDocuments:   Propagate,
	EndpointDocumentStats:     Fallback,
	EndpointDownloadDocument:  Propagate,
	EndpointAdminClearBuckets: Propagate,
	EndpointAdminClearTables:  Propagate,
	EndpointLogin:             Propagate,
	EndpointRefresh:           Propagate,
	EndpointMe:                Propagate,
}

// PolicyFor returns the failure policy of e. Unlisted endpoints propagate.
func PolicyFor(e Endpoint) Policy {
	return policies[e]
}

// Endpoints lists every endpoint with a declared policy.
func Endpoints() []Endpoint {
	out := make([]Endpoint, 0, len(policies))
	for e := range policies {
		out = append(out, e)
	}
	return out
}
