package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Domenick1991/cardoctor/internal/session"
)

var (
	ErrUnauthenticated = errors.New("unauthorized access")
	ErrForbidden       = errors.New("forbidden")
)

// Failure reasons recorded internally. They never reach the client.
const (
	ReasonMissingToken     = "missing_token"
	ReasonExpired          = "expired"
	ReasonInvalidSignature = "invalid_signature"
	ReasonOwnerMismatch    = "owner_mismatch"
)

type Verifier interface {
	Verify(token string) (session.Claim, error)
}

type FailureRecorder interface {
	AuthFailure(reason string)
}

type AuthMiddleware struct {
	verifier Verifier
	cookie   session.CookieOptions
	logger   *slog.Logger
	failures FailureRecorder
}

type AuthOption func(*AuthMiddleware)

func WithLogger(logger *slog.Logger) AuthOption {
	return func(a *AuthMiddleware) {
		a.logger = logger
	}
}

func WithFailureRecorder(r FailureRecorder) AuthOption {
	return func(a *AuthMiddleware) {
		a.failures = r
	}
}

func NewAuthMiddleware(verifier Verifier, cookie session.CookieOptions, opts ...AuthOption) *AuthMiddleware {
	a := &AuthMiddleware{
		verifier: verifier,
		cookie:   cookie,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RequireAuth rejects requests without a valid session token. Missing,
// malformed, forged and expired tokens all get the same 401.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := session.Extract(r, a.cookie)
		if !ok {
			a.reject(w, r, ReasonMissingToken)
			return
		}

		claim, err := a.verifier.Verify(token)
		if err != nil {
			reason := ReasonInvalidSignature
			if errors.Is(err, session.ErrExpired) {
				reason = ReasonExpired
			}
			a.reject(w, r, reason)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaim(r.Context(), claim)))
	})
}

func (a *AuthMiddleware) reject(w http.ResponseWriter, r *http.Request, reason string) {
	a.logger.Debug("request not authenticated",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("reason", reason),
	)
	if a.failures != nil {
		a.failures.AuthFailure(reason)
	}
	writeMessage(w, http.StatusUnauthorized, ErrUnauthenticated.Error())
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
