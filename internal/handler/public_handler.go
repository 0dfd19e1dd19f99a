package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crist-12/malla-curricular/internal/engine"
	"github.com/crist-12/malla-curricular/internal/middleware"
	"github.com/crist-12/malla-curricular/internal/response"
	"github.com/crist-12/malla-curricular/internal/service"
)

// PublicHandler handles the public guide directory.
type PublicHandler struct {
	guideService *service.GuideService
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(guideService *service.GuideService) *PublicHandler {
	return &PublicHandler{guideService: guideService}
}

// List godoc
// GET /api/v1/public/guides?q=<term>&by=<university|name|country>
// Lists public guides, optionally filtered. No authentication required.
func (h *PublicHandler) List(c *gin.Context) {
	guides, err := h.guideService.ListPublic(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	guides = service.SearchPublic(guides, c.Query("q"), c.Query("by"))

	response.Success(c, http.StatusOK, gin.H{
		"guides": guides,
	})
}

// Get godoc
// GET /api/v1/public/guides/:id
// Returns one public guide with its derived metrics. Works without a token;
// an authenticated owner can also open their own private guide through it.
func (h *PublicHandler) Get(c *gin.Context) {
	guideID, ok := pathID(c)
	if !ok {
		return
	}

	requester := uuid.Nil
	if claims := middleware.GetClaims(c); claims != nil {
		if id, err := uuid.Parse(claims.UserID); err == nil {
			requester = id
		}
	}

	guide, err := h.guideService.Get(c.Request.Context(), guideID, requester)
	if err != nil {
		failGuide(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"guide":            guide,
		"progress":         engine.Progress(guide),
		"weighted_average": engine.WeightedAverage(guide),
	})
}

// Clone godoc
// POST /api/v1/public/guides/:id/clone
// Copies a public guide into the caller's account as a private guide.
func (h *PublicHandler) Clone(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}
	guideID, ok := pathID(c)
	if !ok {
		return
	}

	clone, err := h.guideService.Clone(c.Request.Context(), guideID, userID)
	if err != nil {
		failGuide(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"guide": clone,
	})
}
