package handler

// errorBody documents the error envelope for the API docs.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
