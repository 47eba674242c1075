package main

import (
	"log"
	"time"

	"github.com/rajuljha/ByteClub-AMUHACKS4.0/configs"
	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/db"
	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/event"
	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/handlers"
	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/middleware"
	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/repository"
	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configs.LoadConfig()
	gin.SetMode(configs.AppConfig.GinMode)

	db.InitMongo(configs.AppConfig.MongoURI)
	defer db.DisconnectMongo()

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if configs.AppConfig.RabbitMQURI != "" && configs.AppConfig.RabbitMQExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(configs.AppConfig.RabbitMQURI, configs.AppConfig.RabbitMQExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, domain events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     configs.AppConfig.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database(configs.AppConfig.MongoDatabase)

	// AI question generation
	aiService := service.NewAIService(
		configs.AppConfig.LLMBaseURL,
		configs.AppConfig.LLMAPIKey,
		configs.AppConfig.LLMModel,
	)
	aiHandler := handlers.NewAIHandler(aiService)

	// Quizzes
	quizRepo := repository.NewQuizRepository(database)
	quizService := service.NewQuizService(quizRepo, aiService, configs.AppConfig.FrontendURL)

	// Attempts and scoring
	attemptRepo := repository.NewAttemptRepository(database)
	scoringService := service.NewScoringService(quizRepo, attemptRepo)

	quizHandler := handlers.NewQuizHandler(quizService, scoringService)

	// Supplementary content
	contentService := service.NewContentService(
		configs.AppConfig.YouTubeAPIKey,
		configs.AppConfig.ArticleSearchURL,
	)
	contentHandler := handlers.NewContentHandler(contentService)

	setupQuizRoutes(r, quizHandler, publisher)
	setupAIRoutes(r, aiHandler, publisher)
	setupContentRoutes(r, contentHandler, publisher)

	log.Printf("Starting %s on port %s", configs.AppConfig.ServiceName, configs.AppConfig.Port)
	if err := r.Run(":" + configs.AppConfig.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func setupQuizRoutes(r *gin.Engine, quizHandler *handlers.QuizHandler, publisher *event.EventPublisher) {
	// Player-facing routes: open, the password gate is the access control.
	public := r.Group("/api/quizzes")
	{
		public.GET("/:id", func(c *gin.Context) {
			quizHandler.GetQuiz(c)
			if publisher != nil {
				publisher.Publish("quiz.viewed", gin.H{"quiz_id": c.Param("id")})
			}
		})

		public.POST("/:id/start", func(c *gin.Context) {
			quizHandler.StartQuiz(c)
			if publisher != nil {
				publisher.Publish("quiz.started", gin.H{
					"quiz_id": c.Param("id"),
					"status":  c.Writer.Status(),
				})
			}
		})

		public.POST("/:id/submit-answers", func(c *gin.Context) {
			quizHandler.SubmitAnswers(c)
			if publisher != nil {
				publisher.Publish("quiz.submitted", gin.H{
					"quiz_id": c.Param("id"),
					"status":  c.Writer.Status(),
				})
			}
		})

		public.GET("/:id/leaderboard", func(c *gin.Context) {
			quizHandler.GetLeaderboard(c)
			if publisher != nil {
				publisher.Publish("quiz.leaderboard_viewed", gin.H{"quiz_id": c.Param("id")})
			}
		})
	}

	// Authoring routes require the owner identity.
	protected := r.Group("/api/quizzes")
	protected.Use(middleware.RequireOwner())
	{
		protected.GET("", quizHandler.ListQuizzes)

		protected.POST("", func(c *gin.Context) {
			quizHandler.CreateQuiz(c)
			if publisher != nil {
				publisher.Publish("quiz.created", gin.H{
					"owner_id": middleware.OwnerID(c),
					"status":   c.Writer.Status(),
				})
			}
		})

		protected.PUT("/:id", quizHandler.UpdateQuiz)
		protected.DELETE("/:id", func(c *gin.Context) {
			quizHandler.DeleteQuiz(c)
			if publisher != nil {
				publisher.Publish("quiz.deleted", gin.H{"quiz_id": c.Param("id")})
			}
		})
		protected.PUT("/:id/questions/:index", quizHandler.UpdateQuestion)
	}
}

func setupAIRoutes(r *gin.Engine, aiHandler *handlers.AIHandler, publisher *event.EventPublisher) {
	ai := r.Group("/api/ai")
	ai.Use(middleware.RequireOwner())
	{
		ai.POST("/generate-question", func(c *gin.Context) {
			aiHandler.GenerateQuestion(c)
			if publisher != nil {
				publisher.Publish("ai.question_generated", gin.H{
					"owner_id": middleware.OwnerID(c),
					"status":   c.Writer.Status(),
				})
			}
		})
		ai.POST("/validate-question", aiHandler.ValidateQuestion)
		ai.POST("/enhance-question", aiHandler.EnhanceQuestion)
	}
}

func setupContentRoutes(r *gin.Engine, contentHandler *handlers.ContentHandler, publisher *event.EventPublisher) {
	content := r.Group("/api/content")
	{
		content.POST("/youtube", func(c *gin.Context) {
			contentHandler.GetYouTubeVideos(c)
			if publisher != nil {
				publisher.Publish("content.videos_requested", nil)
			}
		})
		content.POST("/articles", func(c *gin.Context) {
			contentHandler.GetArticles(c)
			if publisher != nil {
				publisher.Publish("content.articles_requested", nil)
			}
		})
	}
}
