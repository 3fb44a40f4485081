package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tgcs/experience-api/internal/modules/repo"
	"github.com/tgcs/experience-api/internal/modules/serializer"
	"github.com/tgcs/experience-api/internal/modules/service"
)

type TableHandler struct {
	svc service.TableService
}

func NewTableHandler(s service.TableService) *TableHandler {
	return &TableHandler{svc: s}
}

type InsertReq struct {
	TableName string         `json:"tableName" binding:"required,sqlident" example:"sponsor"`
	Data      map[string]any `json:"data" binding:"required"`
}

type UpdateReq struct {
	TableName string         `json:"tableName" binding:"required,sqlident" example:"sponsor"`
	RowID     int64          `json:"rowId" binding:"required,min=1" example:"5"`
	Data      map[string]any `json:"data" binding:"required"`
}

type RemoveReq struct {
	TableName string `json:"tableName" binding:"required,sqlident" example:"sponsor"`
	RowName   string `json:"rowName" binding:"omitempty,sqlident" example:"sponsor_id"`
	RowID     int64  `json:"rowId" binding:"required,min=1" example:"5"`
}

type InsertOut struct {
	ID int64 `json:"id"`
}

func writeFailure(c *gin.Context, err error) {
	if repo.IsValidation(err) {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, serializer.WriteErr("", err))
}

// Insert godoc
//
//	@Summary		Insert row
//	@Description	Insert one row into a whitelisted table
//	@Tags			mutation
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.InsertReq	true	"Insert payload"
//	@Security		SessionCookie
//	@Success		200	{object}	serializer.Response{data=handler.InsertOut}
//	@Failure		400	{object}	serializer.Response
//	@Router			/insert [post]
func (h *TableHandler) Insert(c *gin.Context) {
	req := InsertReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	id, err := h.svc.Insert(c.Request.Context(), req.TableName, req.Data)
	if err != nil {
		writeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: InsertOut{ID: id}})
}

// Update godoc
//
//	@Summary		Update row
//	@Description	Set the given columns on the row addressed by the table's key column
//	@Tags			mutation
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.UpdateReq	true	"Update payload"
//	@Security		SessionCookie
//	@Success		200	{object}	serializer.Response
//	@Failure		400	{object}	serializer.Response
//	@Router			/update [post]
func (h *TableHandler) Update(c *gin.Context) {
	req := UpdateReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Update(c.Request.Context(), req.TableName, req.RowID, req.Data); err != nil {
		writeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

// Remove godoc
//
//	@Summary		Remove row
//	@Description	Delete the rows addressed by the table's key column. rowName is optional and must name that column when given.
//	@Tags			mutation
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.RemoveReq	true	"Remove payload"
//	@Security		SessionCookie
//	@Success		200	{object}	serializer.Response
//	@Failure		400	{object}	serializer.Response
//	@Router			/remove [post]
func (h *TableHandler) Remove(c *gin.Context) {
	req := RemoveReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Remove(c.Request.Context(), req.TableName, req.RowName, req.RowID); err != nil {
		writeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}
