package handler

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wadjakorntonsri/linkpulse/pkg/config"
)

type contextKey string

const userEmailKey contextKey = "user_email"

// WithUserEmail stores the authenticated editor's email on ctx.
func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userEmailKey, email)
}

// UserEmail returns the authenticated editor's email, or "" outside the auth middleware.
func UserEmail(ctx context.Context) string {
	email, _ := ctx.Value(userEmailKey).(string)
	return email
}

type Middleware struct {
	jwtSecret []byte
}

func NewMiddleware(cfg *config.Config) *Middleware {
	return &Middleware{
		jwtSecret: []byte(cfg.JWTSecret),
	}
}

// AuthMiddleware verifies the JWT token from the cookie
func (m *Middleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("auth_token")
		if err != nil {
			m.deny(w, r)
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
			return m.jwtSecret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

		if err != nil || !token.Valid || claims.Subject == "" {
			m.deny(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserEmail(r.Context(), claims.Subject)))
	})
}

func (m *Middleware) deny(w http.ResponseWriter, r *http.Request) {
	if isAPIRequest(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	http.Redirect(w, r, "/auth/google/login", http.StatusTemporaryRedirect)
}

// The preview endpoint is opened in a browser tab, so it redirects to login like a page.
func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") && r.URL.Path != "/api/v1/profile/preview"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

// RequestLogger writes one line per request:
// [time] ip - METHOD path - status - latency
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Printf("[%s] %s - %s %s - %d - %s",
			start.Format("2006-01-02 15:04:05"),
			clientIP(r),
			r.Method,
			r.URL.Path,
			rec.status,
			time.Since(start),
		)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
