package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tgcs/experience-api/internal/modules/serializer"
	"github.com/tgcs/experience-api/internal/modules/service"
)

type RecommendationHandler struct {
	svc service.RecommendationService
}

func NewRecommendationHandler(s service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: s}
}

type RecommendReq struct {
	ExperienceIDs []int64 `json:"experience_ids" binding:"required,min=1"`
	Limit         int     `json:"limit" binding:"omitempty,min=1,max=50" example:"10"`
}

// Recommend godoc
//
//	@Summary		Recommend experiences
//	@Description	Rank experiences by similarity to the ones the caller liked
//	@Tags			catalogue
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.RecommendReq	true	"Liked experiences"
//	@Success		200		{array}		service.Recommendation
//	@Failure		404		{object}	serializer.Response
//	@Router			/recommendations [post]
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	req := RecommendReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Recommend(c.Request.Context(), service.RecommendInput{
		LikedIDs: req.ExperienceIDs,
		Limit:    req.Limit,
	})
	if err != nil {
		if errors.Is(err, service.ErrExperienceNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, out)
}
