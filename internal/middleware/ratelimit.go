package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"membership-api/pkg/apierror"
)

type clientLimiter struct {
	general  *rate.Limiter
	auth     *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware keeps one token bucket per client IP for regular
// routes and a stricter one for credential endpoints under authPrefix.
type RateLimitMiddleware struct {
	generalRPM int
	authRPM    int
	authPrefix string
	mu         sync.Mutex
	clients    map[string]*clientLimiter
}

// NewRateLimitMiddleware builds the limiter. A non-positive generalRPM
// disables limiting for regular routes.
func NewRateLimitMiddleware(generalRPM int, authRPM int, authPrefix string) *RateLimitMiddleware {
	if authRPM <= 0 {
		authRPM = 10
	}

	return &RateLimitMiddleware{
		generalRPM: generalRPM,
		authRPM:    authRPM,
		authPrefix: strings.ToLower(authPrefix),
		clients:    map[string]*clientLimiter{},
	}
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := m.getLimiter(clientIP(r))

		target := limiter.general
		if m.authPrefix != "" && strings.HasPrefix(strings.ToLower(r.URL.Path), m.authPrefix) && r.Method == http.MethodPost {
			target = limiter.auth
		}

		if target != nil && !target.Allow() {
			w.Header().Set("Retry-After", "60")
			writeAPIError(w, apierror.New(apierror.KindRateLimited, "too many requests", ""))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) getLimiter(ip string) *clientLimiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limiter, exists := m.clients[ip]; exists {
		limiter.lastSeen = time.Now()
		return limiter
	}

	created := &clientLimiter{
		auth:     rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.authRPM)), m.authRPM),
		lastSeen: time.Now(),
	}
	if m.generalRPM > 0 {
		created.general = rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.generalRPM)), m.generalRPM)
	}
	m.clients[ip] = created
	m.gcLocked()

	return created
}

func (m *RateLimitMiddleware) gcLocked() {
	if len(m.clients) < 1000 {
		return
	}

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, limiter := range m.clients {
		if limiter.lastSeen.Before(cutoff) {
			delete(m.clients, ip)
		}
	}
}

func clientIP(r *http.Request) string {
	forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}

	if strings.TrimSpace(r.RemoteAddr) == "" {
		return "unknown"
	}

	return r.RemoteAddr
}
