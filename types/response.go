package types

// StatusResponse is a generic success envelope.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse mirrors the shape produced by the error-handler middleware.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}
