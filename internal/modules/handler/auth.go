package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tgcs/experience-api/internal/config"
	"github.com/tgcs/experience-api/internal/middleware"
	"github.com/tgcs/experience-api/internal/modules/serializer"
	"github.com/tgcs/experience-api/internal/modules/service"
)

type AuthHandler struct {
	svc service.AuthService
	cfg *config.Config
}

func NewAuthHandler(s service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: s, cfg: cfg}
}

type LoginReq struct {
	Credential string `json:"credential" binding:"required"`
}

type TokenReq struct {
	Email string `json:"email" binding:"required,email" example:"admin@school.org"`
	Token string `json:"token" binding:"required" example:"tgcs_..."`
}

type CreateUserReq struct {
	Email string `json:"email" binding:"required,email" example:"admin@school.org"`
}

type SessionOut struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Auth.SessionCookie, value, maxAge, "/", "", h.cfg.Auth.CookieSecure, true)
}

func (h *AuthHandler) startSession(c *gin.Context, sess *service.Session) {
	h.setSessionCookie(c, sess.Cookie, int(sess.TTL.Seconds()))
	c.JSON(http.StatusOK, serializer.Response{Data: SessionOut{Email: sess.Email, IsAdmin: sess.IsAdmin}})
}

// Login godoc
//
//	@Summary		Google login
//	@Description	Verify a Google ID token and start an admin session
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.LoginReq	true	"Google credential"
//	@Success		200		{object}	serializer.Response{data=handler.SessionOut}
//	@Failure		401		{object}	serializer.Response
//	@Failure		403		{object}	serializer.Response
//	@Router			/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req := LoginReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	sess, err := h.svc.LoginWithGoogle(c.Request.Context(), req.Credential)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidIDToken):
			c.JSON(http.StatusUnauthorized, serializer.AuthErr("invalid google credential"))
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, serializer.ForbiddenErr(""))
		default:
			c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "login failed", err))
		}
		return
	}
	h.startSession(c, sess)
}

// Token godoc
//
//	@Summary		Access token login
//	@Description	Start a session with an emailed access token. The token's access window starts at first use.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.TokenReq	true	"Email and token"
//	@Success		200		{object}	serializer.Response{data=handler.SessionOut}
//	@Failure		401		{object}	serializer.Response
//	@Router			/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	req := TokenReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	sess, err := h.svc.LoginWithToken(c.Request.Context(), req.Email, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenExpired):
			c.JSON(http.StatusUnauthorized, serializer.AuthErr(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "login failed", err))
		}
		return
	}
	h.startSession(c, sess)
}

// Logout godoc
//
//	@Summary	Logout
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	serializer.Response
//	@Router		/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(h.cfg.Auth.SessionCookie); err == nil && cookie != "" {
		if err := h.svc.Logout(c.Request.Context(), cookie); err != nil && !errors.Is(err, service.ErrUnauthorized) {
			_ = c.Error(err)
		}
	}
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, serializer.Response{})
}

// Session godoc
//
//	@Summary	Current session
//	@Tags		auth
//	@Produce	json
//	@Security	SessionCookie
//	@Success	200	{object}	serializer.Response{data=handler.SessionOut}
//	@Failure	401	{object}	serializer.Response
//	@Router		/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: SessionOut{Email: p.Email, IsAdmin: p.IsAdmin}})
}

// CreateUser godoc
//
//	@Summary		Create user
//	@Description	Issue an access token for email and queue it for delivery by mail
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateUserReq	true	"New user"
//	@Security		SessionCookie
//	@Success		200	{object}	serializer.Response
//	@Failure		503	{object}	serializer.Response
//	@Router			/create-user [post]
func (h *AuthHandler) CreateUser(c *gin.Context) {
	req := CreateUserReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.CreateUser(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrMailNotAvailable) {
			c.JSON(http.StatusServiceUnavailable, serializer.UnavailableErr("mail delivery is not configured", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "create user failed", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "access token sent"})
}
