package main

import (
	"log"

	"github.com/eventhub/eventhub/config"
	"github.com/eventhub/eventhub/internal/handler"
	"github.com/eventhub/eventhub/internal/mailer"
	"github.com/eventhub/eventhub/internal/middleware"
	"github.com/eventhub/eventhub/internal/repository"
	"github.com/eventhub/eventhub/internal/service"
	"github.com/eventhub/eventhub/pkg/database"
	"github.com/eventhub/eventhub/pkg/rabbitmq"
	"github.com/eventhub/eventhub/pkg/token"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	eventRepo := repository.NewEventRepository(db)
	rsvpRepo := repository.NewRSVPRepository(db)

	// Outbound mail goes through the queue; the request path never waits on it.
	mail := mailer.New(publisher, cfg.FrontendURL, cfg.MailFromAddr)
	signer := token.NewSigner(cfg.ActivationKey)

	// Services
	accountSvc := service.NewAccountService(userRepo, signer, mail, cfg.JWTSecret)
	eventSvc := service.NewEventService(eventRepo, categoryRepo, rsvpRepo)
	rsvpSvc := service.NewRSVPService(rsvpRepo, eventRepo, userRepo, mail)
	dashboardSvc := service.NewDashboardService(eventRepo, rsvpRepo)

	auth := middleware.NewAuth(cfg.JWTSecret, userRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = handler.NewValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "eventhub"})
	})

	handler.NewAuthHandler(accountSvc).RegisterRoutes(e.Group("/api/v1/auth"))
	handler.NewEventHandler(eventSvc).RegisterRoutes(e, auth)
	handler.NewRSVPHandler(rsvpSvc).RegisterRoutes(e, auth)
	handler.NewDashboardHandler(dashboardSvc).RegisterRoutes(e, auth)
	handler.NewAdminHandler(accountSvc).RegisterRoutes(e, auth)

	log.Printf("EventHub starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
