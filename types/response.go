package types

// StatusResponse is the success payload for a submitted feedback entry.
// Warning is set when the record was persisted but the admin notification
// could not be delivered.
type StatusResponse struct {
	Status  string `json:"status"`
	Warning string `json:"warning,omitempty"`
}

// ErrorResponse is the generic error payload produced by the error handler
// middleware. Errors carries the full validation failure list when the
// request was rejected by field validation.
type ErrorResponse struct {
	Type    string   `json:"type"`
	Message string   `json:"message"`
	Details string   `json:"details,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Code    string   `json:"code,omitempty"`
}
