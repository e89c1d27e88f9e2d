package middleware

import (
	"net/http"
	"time"
)

func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	message := `{"status":"error","error":"request timed out","code":"REQUEST_TIMEOUT"}`

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, message)
	}
}
