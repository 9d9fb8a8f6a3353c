package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Domenick1991/cardoctor/internal/domain"
	"github.com/Domenick1991/cardoctor/internal/middleware"
	"github.com/Domenick1991/cardoctor/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

// CheckoutGuards are the middleware chains placed in front of the listing
// and the write routes.
type CheckoutGuards struct {
	List  []gin.HandlerFunc
	Write []gin.HandlerFunc
}

type CheckoutHandler struct {
	service checkout.CheckoutUseCase
	logger  *slog.Logger
}

type updateStatusRequest struct {
	Status domain.CheckoutStatus `json:"status"`
}

func NewCheckoutHandler(service checkout.CheckoutUseCase, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: service, logger: logger}
}

func (h *CheckoutHandler) Register(router *gin.RouterGroup, guards CheckoutGuards) {
	router.GET("", chain(guards.List, h.list)...)
	router.POST("", chain(guards.Write, h.create)...)
	router.DELETE("/:id", chain(guards.Write, h.delete)...)
	router.PATCH("/:id", chain(guards.Write, h.updateStatus)...)
}

func chain(guards []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guards)+1)
	out = append(out, guards...)
	return append(out, handler)
}

func (h *CheckoutHandler) list(c *gin.Context) {
	checkouts, err := h.service.List(c.Request.Context(), c.Query("email"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, checkouts)
}

func (h *CheckoutHandler) create(c *gin.Context) {
	var req checkout.CreateCheckoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid checkout"})
		return
	}

	// only enforced when the write routes sit behind the auth gate
	if claim, ok := middleware.ClaimFromContext(c.Request.Context()); ok {
		if err := middleware.Authorize(claim, req.Email, true, middleware.OwnerOptions{}); err != nil {
			writeError(c, h.logger, err)
			return
		}
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid status update"})
		return
	}

	id := c.Param("id")
	if err := h.authorizeRecord(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.authorizeRecord(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}

	result, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// authorizeRecord checks ownership of an existing checkout when the request
// is authenticated. Unknown ids pass so the store reports a no-op.
func (h *CheckoutHandler) authorizeRecord(ctx context.Context, id string) error {
	claim, ok := middleware.ClaimFromContext(ctx)
	if !ok {
		return nil
	}
	current, err := h.service.Get(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}
	return middleware.Authorize(claim, current.Email, true, middleware.OwnerOptions{})
}
