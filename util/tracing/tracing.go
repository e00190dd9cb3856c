package tracing

// Context identifies a single request across log lines and responses.
type Context struct {
	RequestID     string `json:"request_id"`
	RequestSource string `json:"request_source"`
}
