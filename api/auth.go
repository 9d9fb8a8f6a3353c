package api

import (
	"log/slog"
	"net/http"

	"github.com/Domenick1991/cardoctor/internal/session"
	"github.com/gin-gonic/gin"
)

type TokenIssuer interface {
	Issue(claim session.Claim) (string, error)
}

// AuthHandler issues and clears the session cookie. The claim comes from an
// upstream identity provider and is signed as received.
type AuthHandler struct {
	issuer TokenIssuer
	cookie session.CookieOptions
	logger *slog.Logger
}

func NewAuthHandler(issuer TokenIssuer, cookie session.CookieOptions, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{issuer: issuer, cookie: cookie, logger: logger}
}

func (h *AuthHandler) Register(router gin.IRoutes) {
	router.POST("/jwt", h.login)
	router.POST("/logout", h.logout)
}

func (h *AuthHandler) login(c *gin.Context) {
	var claim session.Claim
	if err := c.ShouldBindJSON(&claim); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid identity claim"})
		return
	}

	token, err := h.issuer.Issue(claim)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "session issued", slog.String("email", claim.Email()))
	session.Attach(c.Writer, token, h.cookie)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) logout(c *gin.Context) {
	session.Clear(c.Writer, h.cookie)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
