package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/glec/leads-api/internal/auth"
	"github.com/glec/leads-api/internal/config"
	"github.com/glec/leads-api/internal/database"
	"github.com/glec/leads-api/internal/handler"
	"github.com/glec/leads-api/internal/mailer"
	middlewarepkg "github.com/glec/leads-api/internal/middleware"
	"github.com/glec/leads-api/internal/repository"
	"github.com/glec/leads-api/internal/router"
	"github.com/glec/leads-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	leadsRepo := repository.NewPGXLeadsRepository(pool)
	slotsRepo := repository.NewPGXSlotsRepository(pool)
	tokensRepo := repository.NewPGXTokensRepository(pool)
	bookingsRepo := repository.NewPGXBookingsRepository(pool)
	activitiesRepo := repository.NewPGXActivitiesRepository(pool)

	httpClient := &http.Client{Timeout: 15 * time.Second}
	mailClient := mailer.New(httpClient, cfg.MailerBaseURL)

	validator := service.NewFieldValidator(cfg.PhoneRegion)

	authService := service.NewAuthService(usersRepo, jwtManager)
	userService := service.NewUserService(usersRepo)
	leadsService := service.NewLeadsService(leadsRepo, activitiesRepo)
	intakeService := service.NewIntakeService(leadsRepo, activitiesRepo, validator)
	slotsService := service.NewSlotsService(slotsRepo)
	proposalService := service.NewProposalService(
		leadsRepo, slotsRepo, tokensRepo, activitiesRepo, mailClient,
		cfg.BookingBaseURL, cfg.ProposalWindow, cfg.TokenExpiryDays)
	bookingService := service.NewBookingService(
		leadsRepo, tokensRepo, slotsRepo, bookingsRepo, activitiesRepo, mailClient,
		cfg.BookingWindow)
	engagementService := service.NewEngagementService(leadsRepo, activitiesRepo)

	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Users:         handler.NewUserAdminHandler(userService),
		Intake:        handler.NewIntakeHandler(intakeService),
		Leads:         handler.NewLeadsHandler(leadsService),
		Proposal:      handler.NewProposalHandler(proposalService),
		Booking:       handler.NewBookingHandler(bookingService),
		Slots:         handler.NewSlotsAdminHandler(slotsService),
		BookingsAdmin: handler.NewBookingsAdminHandler(bookingService),
		Webhook:       handler.NewWebhookHandler(engagementService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
