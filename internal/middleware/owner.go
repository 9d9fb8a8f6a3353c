package middleware

import (
	"net/http"

	"github.com/Domenick1991/cardoctor/internal/session"
	"github.com/gin-gonic/gin"
)

type OwnerOptions struct {
	// RequireFilter rejects requests that omit the owner parameter. When
	// false an absent parameter passes and the listing is unscoped.
	RequireFilter bool
	Failures      FailureRecorder
}

// Authorize compares the authenticated identity with the requested owner.
// Matching is exact and case-sensitive.
func Authorize(claim session.Claim, requested string, present bool, opts OwnerOptions) error {
	if !present {
		if opts.RequireFilter {
			return ErrForbidden
		}
		return nil
	}
	email := claim.Email()
	if email == "" || email != requested {
		return ErrForbidden
	}
	return nil
}

// RequireOwner must run after GinRequireAuth.
func RequireOwner(param string, opts OwnerOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		claim, ok := ClaimFromContext(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": ErrUnauthenticated.Error()})
			return
		}

		requested, present := c.GetQuery(param)
		if err := Authorize(claim, requested, present, opts); err != nil {
			if opts.Failures != nil {
				opts.Failures.AuthFailure(ReasonOwnerMismatch)
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": err.Error()})
			return
		}
		c.Next()
	}
}
