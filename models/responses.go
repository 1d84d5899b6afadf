package models

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// FetchRequest asks the server to download a remote resource.
type FetchRequest struct {
	URL string `json:"url" validate:"required,http_url"`
}

// StatusResponse is a minimal success body.
type StatusResponse struct {
	Status string `json:"status"`
}
