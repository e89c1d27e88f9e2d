package model

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type APIResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

// AuthResponse is the register/login body: the user sits at the top level
// next to the session token.
type AuthResponse struct {
	Status string `json:"status"`
	Session
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
