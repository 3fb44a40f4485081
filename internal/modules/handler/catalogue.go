package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tgcs/experience-api/internal/modules/serializer"
	"github.com/tgcs/experience-api/internal/modules/service"
)

// CatalogueHandler serves the public read endpoints. Successful responses
// are the bare payload, errors use the serializer envelope.
type CatalogueHandler struct {
	experiences service.ExperienceService
	sponsors    service.SponsorService
	feedback    service.FeedbackService
}

func NewCatalogueHandler(e service.ExperienceService, s service.SponsorService, f service.FeedbackService) *CatalogueHandler {
	return &CatalogueHandler{
		experiences: e,
		sponsors:    s,
		feedback:    f,
	}
}

func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New(name + " must be a positive integer")
	}
	return id, nil
}

// ListExperiences godoc
//
//	@Summary		List experiences
//	@Description	Every experience with its grades, categories, important dates, sponsors, prerequisites and competition or program fields merged in
//	@Tags			catalogue
//	@Produce		json
//	@Success		200	{array}		object
//	@Failure		500	{object}	serializer.Response
//	@Router			/experiences [get]
func (h *CatalogueHandler) ListExperiences(c *gin.Context) {
	out, err := h.experiences.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetExperience godoc
//
//	@Summary		Get experience
//	@Tags			catalogue
//	@Produce		json
//	@Param			id	path		integer	true	"Experience ID"
//	@Success		200	{object}	object
//	@Failure		404	{object}	serializer.Response
//	@Router			/experience/{id} [get]
func (h *CatalogueHandler) GetExperience(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	exp, err := h.experiences.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExperienceNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("experience not found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, exp)
}

// ListSponsors godoc
//
//	@Summary	List sponsors
//	@Tags		catalogue
//	@Produce	json
//	@Success	200	{array}		object
//	@Failure	500	{object}	serializer.Response
//	@Router		/sponsors [get]
func (h *CatalogueHandler) ListSponsors(c *gin.Context) {
	out, err := h.sponsors.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, out)
}

// FeedbackIDs godoc
//
//	@Summary		Feedback ids by experience
//	@Description	Maps each experience id to the ids of its feedback entries
//	@Tags			catalogue
//	@Produce		json
//	@Success		200	{object}	map[string][]integer
//	@Failure		500	{object}	serializer.Response
//	@Router			/feedback [get]
func (h *CatalogueHandler) FeedbackIDs(c *gin.Context) {
	out, err := h.feedback.IDsByExperience(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetFeedback godoc
//
//	@Summary	Get feedback
//	@Tags		catalogue
//	@Produce	json
//	@Param		id	path		integer	true	"Feedback ID"
//	@Success	200	{object}	object
//	@Failure	404	{object}	serializer.Response
//	@Router		/feedback/{id} [get]
func (h *CatalogueHandler) GetFeedback(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	f, err := h.feedback.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFeedbackNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("feedback not found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, f)
}
