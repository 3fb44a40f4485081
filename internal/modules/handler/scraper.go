package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tgcs/experience-api/internal/modules/repo"
	"github.com/tgcs/experience-api/internal/modules/serializer"
	"github.com/tgcs/experience-api/internal/modules/service"
)

type ScraperHandler struct {
	svc service.ScraperService
}

func NewScraperHandler(s service.ScraperService) *ScraperHandler {
	return &ScraperHandler{svc: s}
}

type ScrapeReq struct {
	URL     string            `json:"url" binding:"required,url" example:"https://example.org/competition"`
	Targets map[string]string `json:"targets" binding:"required,min=1"`
	Save    bool              `json:"save" example:"false"`
}

func fetchFailure(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrNotHTML):
		c.JSON(http.StatusBadRequest, serializer.ParamErr("page is not html", err))
	case errors.Is(err, service.ErrFetchFailed):
		c.JSON(http.StatusBadGateway, serializer.Err(http.StatusBadGateway, "page could not be fetched", err))
	default:
		return false
	}
	return true
}

// Scrape godoc
//
//	@Summary		Find element paths
//	@Description	Fetch a page and return the element path of the deepest element containing each target text. With save set the scraper is stored.
//	@Tags			scraper
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.ScrapeReq	true	"Scrape payload"
//	@Security		SessionCookie
//	@Success		200	{object}	serializer.Response{data=service.ScrapeOutput}
//	@Failure		400	{object}	serializer.Response
//	@Failure		502	{object}	serializer.Response
//	@Router			/scraper [post]
func (h *ScraperHandler) Scrape(c *gin.Context) {
	req := ScrapeReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Scrape(c.Request.Context(), service.ScrapeInput{
		URL:     req.URL,
		Targets: req.Targets,
		Save:    req.Save,
	})
	if err != nil {
		if fetchFailure(c, err) {
			return
		}
		c.JSON(http.StatusBadRequest, serializer.WriteErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// Run godoc
//
//	@Summary		Run saved scraper
//	@Description	Refetch a saved scraper's page and read the text at each stored path
//	@Tags			scraper
//	@Produce		json
//	@Param			id	path	integer	true	"Scraper ID"
//	@Security		SessionCookie
//	@Success		200	{object}	serializer.Response{data=service.RunOutput}
//	@Failure		404	{object}	serializer.Response
//	@Router			/scraper/{id} [get]
func (h *ScraperHandler) Run(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Run(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("scraper not found", nil))
			return
		}
		if fetchFailure(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
