package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glec/leads-api/internal/auth"
	"github.com/glec/leads-api/internal/config"
	"github.com/glec/leads-api/internal/handler"
	middlewarepkg "github.com/glec/leads-api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserAdminHandler
	Intake        *handler.IntakeHandler
	Leads         *handler.LeadsHandler
	Proposal      *handler.ProposalHandler
	Booking       *handler.BookingHandler
	Slots         *handler.SlotsAdminHandler
	BookingsAdmin *handler.BookingsAdminHandler
	Webhook       *handler.WebhookHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/login", handlers.Auth.Login)

	e.POST("/leads/contact", handlers.Intake.SubmitContact)
	e.POST("/leads/library-download", handlers.Intake.SubmitLibraryDownload)
	e.POST("/leads/demo-request", handlers.Intake.SubmitDemoRequest)
	e.POST("/leads/event-registration", handlers.Intake.SubmitEventRegistration)
	e.POST("/leads/partnership", handlers.Intake.SubmitPartnership)

	e.GET("/meetings/availability", handlers.Booking.Availability)
	e.POST("/meetings/book", handlers.Booking.Book, middlewarepkg.BookingRateLimiter(cfg.RateLimitBooking))

	e.POST("/webhooks/email-events", handlers.Webhook.EmailEvent)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
	admin.GET("/leads", handlers.Leads.List)
	admin.GET("/leads/:lead_type/:lead_id/activities", handlers.Leads.Activities)
	admin.POST("/leads/send-meeting-proposal", handlers.Proposal.Send)

	admin.GET("/meeting-slots", handlers.Slots.List)
	admin.POST("/meeting-slots", handlers.Slots.Create)
	admin.GET("/meeting-slots/:id", handlers.Slots.Get)
	admin.PATCH("/meeting-slots/:id", handlers.Slots.Update)
	admin.DELETE("/meeting-slots/:id", handlers.Slots.Delete)

	admin.GET("/bookings", handlers.BookingsAdmin.List)
	admin.GET("/bookings/:id", handlers.BookingsAdmin.Get)
	admin.POST("/bookings/:id/cancel", handlers.BookingsAdmin.Cancel)

	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.PATCH("/users/:id", handlers.Users.Update)
	admin.DELETE("/users/:id", handlers.Users.Delete)
}
