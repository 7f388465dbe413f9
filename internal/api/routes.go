package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cvforge/internal/api/middleware"
	"cvforge/internal/auth"
	"cvforge/internal/config"
	"cvforge/internal/pdf"
	"cvforge/internal/storage"
	"cvforge/internal/store"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	authService *auth.AuthService,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
	pdfGen pdf.Generator,
) {
	documentStore := store.New(db, cfg.Limits.MaxResumesPerUser)

	resumeHandler := NewResumeHandler(documentStore, pdfGen, logger)
	sectionHandler := NewSectionHandler(documentStore, logger)
	templateHandler := NewTemplateHandler()
	toolsHandler := NewToolsHandler(cfg.Limits.MaxUploadBytes, logger)
	authHandler := NewAuthHandler(db, authService, redisClient, logger,
		cfg.Auth.LoginRateLimitPerHour, cfg.Auth.LoginLockThreshold, cfg.Auth.LoginLockTTL, cfg.Auth.CookieDomain)
	assetHandler := NewAssetHandler(storageClient, logger, cfg.Clamd.Addr)
	authMiddleware := middleware.AuthMiddleware(authService)

	v1 := router.Group("/v1")
	{
		// 模板目录与预览对未登录用户开放。
		v1.GET("/templates", templateHandler.ListTemplates)
		v1.GET("/preview/:template", templateHandler.PreviewTemplate)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		resumeGroup := v1.Group("/resumes")
		resumeGroup.Use(authMiddleware)
		{
			resumeGroup.POST("", resumeHandler.CreateResume)
			resumeGroup.GET("", resumeHandler.ListResumes)
			resumeGroup.GET("/:id", resumeHandler.GetResume)
			resumeGroup.PUT("/:id/settings", resumeHandler.UpdateSettings)
			resumeGroup.DELETE("/:id", resumeHandler.DeleteResume)
			resumeGroup.GET("/:id/view", resumeHandler.ViewResume)
			resumeGroup.GET("/:id/export", resumeHandler.ExportResume)

			resumeGroup.PUT("/:id/personal-info", sectionHandler.UpsertPersonalInfo)
			resumeGroup.POST("/:id/experiences", sectionHandler.AddExperience)
			resumeGroup.POST("/:id/education", sectionHandler.AddEducation)
			resumeGroup.POST("/:id/skills", sectionHandler.AddSkill)
			resumeGroup.POST("/:id/projects", sectionHandler.AddProject)
		}

		// 转换工具不读写简历数据，开放访问。
		toolsGroup := v1.Group("/tools")
		{
			toolsGroup.POST("/image-to-pdf", toolsHandler.ImageToPDF)
			toolsGroup.POST("/pdf-to-images", toolsHandler.PDFToImages)
		}

		assetGroup := v1.Group("/assets")
		assetGroup.Use(authMiddleware)
		{
			assetGroup.POST("/photo", assetHandler.UploadPhoto)
			assetGroup.GET("/view", assetHandler.GetAssetURL)
			assetGroup.DELETE("", assetHandler.DeleteAsset)
		}
	}
}
