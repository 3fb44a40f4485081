package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/tgcs/experience-api/docs"
	"github.com/tgcs/experience-api/internal/config"
	"github.com/tgcs/experience-api/internal/middleware"
	"github.com/tgcs/experience-api/internal/modules/handler"
	"github.com/tgcs/experience-api/internal/modules/serializer"
	"github.com/tgcs/experience-api/internal/telemetry"
)

type RouterDeps struct {
	Config                *config.Config
	Log                   *zap.Logger
	Auth                  middleware.Authenticator
	CatalogueHandler      *handler.CatalogueHandler
	TableHandler          *handler.TableHandler
	AuthHandler           *handler.AuthHandler
	ScraperHandler        *handler.ScraperHandler
	RecommendationHandler *handler.RecommendationHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(telemetry.GinMiddleware(d.Config.App.Name))
		// Add trace ID to response header
		r.Use(telemetry.TraceIDMiddleware())
	}

	r.Use(telemetry.MetricsMiddleware())
	r.Use(middleware.ZapLogger(d.Log))
	r.Use(middleware.CORS(d.Config.CORS.AllowOrigins))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })
	r.GET("/metrics", telemetry.MetricsHandler())

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// public catalogue
	r.GET("/experiences", d.CatalogueHandler.ListExperiences)
	r.GET("/experience/:id", d.CatalogueHandler.GetExperience)
	r.GET("/sponsors", d.CatalogueHandler.ListSponsors)
	r.GET("/feedback", d.CatalogueHandler.FeedbackIDs)
	r.GET("/feedback/:id", d.CatalogueHandler.GetFeedback)
	r.POST("/recommendations", d.RecommendationHandler.Recommend)

	// auth
	r.POST("/login", d.AuthHandler.Login)
	r.POST("/token", d.AuthHandler.Token)
	r.POST("/logout", d.AuthHandler.Logout)

	authed := r.Group("", middleware.RequireSession(d.Auth, d.Config.Auth.SessionCookie))
	{
		authed.GET("/session", d.AuthHandler.Session)

		admin := authed.Group("", middleware.RequireAdmin())
		{
			admin.POST("/insert", d.TableHandler.Insert)
			admin.POST("/update", d.TableHandler.Update)
			admin.POST("/remove", d.TableHandler.Remove)

			admin.POST("/create-user", d.AuthHandler.CreateUser)

			admin.POST("/scraper", d.ScraperHandler.Scrape)
			admin.GET("/scraper/:id", d.ScraperHandler.Run)
		}
	}
	return r
}
