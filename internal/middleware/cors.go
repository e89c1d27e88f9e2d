package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the frontend origins to send credentialed requests so the
// accessToken cookie travels with them.
func CORS(origins []string) func(http.Handler) http.Handler {
	handler := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		MaxAge:           3600,
		AllowCredentials: true,
	})

	return handler.Handler
}
