package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/devlink/adapters/event"
	httpAdapter "github.com/khoahotran/devlink/adapters/http"
	"github.com/khoahotran/devlink/adapters/media_storage"
	"github.com/khoahotran/devlink/adapters/persistence"
	authUC "github.com/khoahotran/devlink/internal/application/usecase/auth"
	postUC "github.com/khoahotran/devlink/internal/application/usecase/post"
	profileUC "github.com/khoahotran/devlink/internal/application/usecase/profile"
	"github.com/khoahotran/devlink/internal/config"
	"github.com/khoahotran/devlink/pkg/auth"
	"github.com/khoahotran/devlink/pkg/logger"
	"github.com/khoahotran/devlink/pkg/tracing"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	tracerProvider, err := tracing.NewTracerProvider(cfg, appLogger, "devlink-api")
	if err != nil {
		appLogger.Warn("Tracing disabled, cannot init tracer provider")
	} else {
		defer tracerProvider.Shutdown(context.Background())
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	postRepo := persistence.NewPostgresPostRepo(dbPool)
	profileCache := persistence.NewProfileListCache(redisClient, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Use Cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	currentUserUseCase := authUC.NewCurrentUserUseCase(userRepo)
	updateAvatarUseCase := authUC.NewUpdateAvatarUseCase(userRepo, uploader)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, profileCache, kafkaClient, appLogger)
	deleteAccountUseCase := profileUC.NewDeleteAccountUseCase(userRepo, profileRepo, postRepo, profileCache, kafkaClient, appLogger)
	createPostUseCase := postUC.NewCreatePostUseCase(postRepo, userRepo, kafkaClient, appLogger)
	listPostsUseCase := postUC.NewListPostsUseCase(postRepo)
	getPostUseCase := postUC.NewGetPostUseCase(postRepo)
	deletePostUseCase := postUC.NewDeletePostUseCase(postRepo, kafkaClient, appLogger)
	likePostUseCase := postUC.NewLikePostUseCase(postRepo, kafkaClient, appLogger)
	commentPostUseCase := postUC.NewCommentPostUseCase(postRepo, userRepo, kafkaClient, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(registerUseCase, loginUseCase, currentUserUseCase, updateAvatarUseCase)
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, deleteAccountUseCase, appLogger)
	postHandler := httpAdapter.NewPostHandler(
		createPostUseCase,
		listPostsUseCase,
		getPostUseCase,
		deletePostUseCase,
		likePostUseCase,
		commentPostUseCase,
	)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)

			authPrivate := authRoutes.Group("")
			authPrivate.Use(authMiddleware)
			{
				authPrivate.GET("/me", authHandler.CurrentUser)
				authPrivate.PUT("/avatar", authHandler.UpdateAvatar)
			}
		}

		profiles := api.Group("/profiles")
		{
			profiles.GET("", profileHandler.ListProfiles)
			profiles.GET("/user/:user_id", profileHandler.GetProfileByUserID)

			profilesPrivate := profiles.Group("")
			profilesPrivate.Use(authMiddleware)
			{
				profilesPrivate.GET("/me", profileHandler.GetMyProfile)
				profilesPrivate.POST("", profileHandler.UpsertProfile)
				profilesPrivate.DELETE("", profileHandler.DeleteAccount)
				profilesPrivate.PUT("/experience", profileHandler.AddExperience)
				profilesPrivate.DELETE("/experience/:exp_id", profileHandler.DeleteExperience)
				profilesPrivate.PUT("/education", profileHandler.AddEducation)
				profilesPrivate.DELETE("/education/:edu_id", profileHandler.DeleteEducation)
			}
		}

		posts := api.Group("/posts")
		posts.Use(authMiddleware)
		{
			posts.POST("", postHandler.CreatePost)
			posts.GET("", postHandler.ListPosts)
			posts.GET("/:id", postHandler.GetPost)
			posts.DELETE("/:id", postHandler.DeletePost)
			posts.PUT("/:id/like", postHandler.LikePost)
			posts.PUT("/:id/unlike", postHandler.UnlikePost)
			posts.POST("/:id/comments", postHandler.AddComment)
			posts.DELETE("/:id/comments/:comment_id", postHandler.DeleteComment)
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
