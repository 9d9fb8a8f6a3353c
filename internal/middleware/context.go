package middleware

import (
	"context"

	"github.com/Domenick1991/cardoctor/internal/session"
)

// unexported, collision-proof context key
type claimContextKey struct{}

// WithClaim attaches the authenticated claim to ctx.
func WithClaim(ctx context.Context, claim session.Claim) context.Context {
	return context.WithValue(ctx, claimContextKey{}, claim)
}

// ClaimFromContext extracts the authenticated claim from ctx.
func ClaimFromContext(ctx context.Context) (session.Claim, bool) {
	if ctx == nil {
		return nil, false
	}
	claim, ok := ctx.Value(claimContextKey{}).(session.Claim)
	return claim, ok
}
