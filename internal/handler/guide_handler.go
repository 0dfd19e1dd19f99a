package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crist-12/malla-curricular/internal/engine"
	"github.com/crist-12/malla-curricular/internal/middleware"
	"github.com/crist-12/malla-curricular/internal/model"
	"github.com/crist-12/malla-curricular/internal/response"
	"github.com/crist-12/malla-curricular/internal/service"
	"github.com/crist-12/malla-curricular/internal/validator"
)

// GuideHandler handles the owner-facing guide endpoints.
type GuideHandler struct {
	guideService  *service.GuideService
	exportService *service.ExportService
}

// NewGuideHandler creates a new GuideHandler.
func NewGuideHandler(guideService *service.GuideService, exportService *service.ExportService) *GuideHandler {
	return &GuideHandler{guideService: guideService, exportService: exportService}
}

// List godoc
// GET /api/v1/guides
// Returns all guides owned by the authenticated user.
func (h *GuideHandler) List(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	guides, err := h.guideService.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if guides == nil {
		guides = []model.Guide{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"guides": guides,
	})
}

// Create godoc
// POST /api/v1/guides
// Creates a new empty guide: private, default theme, no subjects.
func (h *GuideHandler) Create(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	var req model.CreateGuideRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	guide, err := h.guideService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, engine.ErrUnknownPeriodType) {
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"guide": guide,
	})
}

// Get godoc
// GET /api/v1/guides/:id
// Returns one guide with its derived progress and weighted average. Readable
// by the owner, or by anyone when the guide is public.
func (h *GuideHandler) Get(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}
	guideID, ok := pathID(c)
	if !ok {
		return
	}

	guide, err := h.guideService.Get(c.Request.Context(), guideID, userID)
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

// SetVisibility godoc
// PATCH /api/v1/guides/:id/visibility
// Publishes or unpublishes a guide. Owner only.
func (h *GuideHandler) SetVisibility(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}
	guideID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.SetVisibilityRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.guideService.SetVisibility(c.Request.Context(), guideID, userID, *req.IsPublic); err != nil {
		failGuide(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"is_public": *req.IsPublic,
	})
}

// SetTheme godoc
// PATCH /api/v1/guides/:id/theme
// Changes the guide's visual theme. Owner only.
func (h *GuideHandler) SetTheme(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}
	guideID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.SetThemeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.guideService.SetTheme(c.Request.Context(), guideID, userID, req.Theme); err != nil {
		failGuide(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"theme": req.Theme,
	})
}

// AddSubject godoc
// POST /api/v1/guides/:id/subjects
// Adds a subject to the guide. Initial status depends on prerequisites.
func (h *GuideHandler) AddSubject(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}
	guideID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.AddSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subject, err := h.guideService.AddSubject(c.Request.Context(), guideID, userID, engine.AddSubjectInput{
		Name:          req.Name,
		Credits:       req.Credits,
		Period:        req.Period,
		Prerequisites: req.Prerequisites,
	})
	if err != nil {
		failGuide(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"subject": subject,
	})
}

// ChangeSubjectStatus godoc
// PATCH /api/v1/guides/:id/subjects/:subject_id/status
// Moves a subject through its state machine and returns the full subject list
// after dependent propagation.
func (h *GuideHandler) ChangeSubjectStatus(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}
	guideID, ok := pathID(c)
	if !ok {
		return
	}
	subjectID := c.Param("subject_id")

	var req model.ChangeStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subjects, err := h.guideService.ChangeSubjectStatus(c.Request.Context(), guideID, userID, subjectID, req.Status, req.Score)
	if err != nil {
		failGuide(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"subjects": subjects,
	})
}

// Export godoc
// GET /api/v1/guides/:id/export
// Renders the guide as a PDF download. Same read rule as Get.
func (h *GuideHandler) Export(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}
	guideID, ok := pathID(c)
	if !ok {
		return
	}

	guide, err := h.guideService.Get(c.Request.Context(), guideID, userID)
	if err != nil {
		failGuide(c, err)
		return
	}

	pdf, err := h.exportService.Render(guide, claims.Name)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	filename := fmt.Sprintf("malla-curricular-%s.pdf", slugify(guide.Name))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "guia"
	}
	return slug
}

// requesterID pulls the authenticated user id out of the JWT claims.
func requesterID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the :id path parameter as a UUID.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// failGuide maps guide and rule errors onto HTTP responses.
func failGuide(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGuideNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrNotGuideOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotGuideOwner)
	case errors.Is(err, service.ErrGuideNotPublic):
		response.Fail(c, http.StatusForbidden, response.ErrGuideNotPublic)
	case errors.Is(err, engine.ErrSubjectNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSubjectNotFound)
	case errors.Is(err, engine.ErrUnknownPrerequisite):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrUnknownPrerequisite)
	case errors.Is(err, engine.ErrPrerequisitePeriod):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrPrerequisitePeriod)
	case errors.Is(err, engine.ErrNonPositiveCredits):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrInvalidCredits)
	case errors.Is(err, engine.ErrNonPositivePeriod):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrInvalidPeriod)
	case errors.Is(err, engine.ErrScoreRequired):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrScoreRequired)
	case errors.Is(err, engine.ErrScoreOutOfRange):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrScoreOutOfRange)
	case errors.Is(err, engine.ErrIllegalTransition):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrIllegalTransition)
	case errors.Is(err, engine.ErrSubjectBlocked):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrSubjectBlocked)
	case errors.Is(err, engine.ErrUnknownTheme):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownTheme)
	case errors.Is(err, engine.ErrUnknownStatus):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
