package main

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/BenjaminBruton/skillwrap/bookings"
	"github.com/BenjaminBruton/skillwrap/config"
	"github.com/BenjaminBruton/skillwrap/contact"
	"github.com/BenjaminBruton/skillwrap/debug"
	"github.com/BenjaminBruton/skillwrap/discounts"
	"github.com/BenjaminBruton/skillwrap/forms"
	"github.com/BenjaminBruton/skillwrap/internal/clerkapi"
	"github.com/BenjaminBruton/skillwrap/internal/database"
	"github.com/BenjaminBruton/skillwrap/internal/mailer"
	"github.com/BenjaminBruton/skillwrap/internal/outbox"
	"github.com/BenjaminBruton/skillwrap/middleware"
	"github.com/BenjaminBruton/skillwrap/payments"
	"github.com/BenjaminBruton/skillwrap/sessions"
	"github.com/BenjaminBruton/skillwrap/users"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	godotenv.Load(".env")

	logrus.SetFormatter(&logrus.JSONFormatter{})

	appConfig, configError := config.LoadEnvironmentVariables()

	if configError != nil {
		logrus.Fatalf("error loading configuration: %s", configError)
	}

	gin.SetMode(appConfig.GinMode)

	dbConnection, dbConnectionError := database.OpenConnection(appConfig.DBURL)

	if dbConnectionError != nil {
		logrus.Fatalf("error connecting to database: %s", dbConnectionError)
	}

	dbQueries := database.New(dbConnection)

	stripe.Key = appConfig.StripeSecretKey

	clerkClient := clerkapi.New(appConfig.ClerkSecretKey)

	appMailer := mailer.NewMailer(mailer.MailerConfig{
		Domain:      appConfig.MailgunSendingDomain,
		APIKey:      appConfig.MailgunAPIKey,
		SenderName:  appConfig.SenderName,
		SenderEmail: appConfig.SenderEmail,
		TeamName:    appConfig.TeamName,
		TeamEmail:   appConfig.TeamEmail,
		BaseURL:     appConfig.BaseURL,
	})

	outboxStore := outbox.New(filepath.Join(appConfig.DataDir, "bookings"))

	stripeClient := &payments.StripeAPIClient{}

	paymentService := payments.NewService(dbQueries, stripeClient, clerkClient, appMailer, outboxStore, appConfig.StripeWebhookSecret)

	// Replay any bookings stranded in the outbox by a previous run.
	if reconciled, reconcileError := paymentService.ReconcileOutbox(context.Background()); reconcileError != nil {
		logrus.Errorf("error reconciling outbox at startup: %s", reconcileError)
	} else if reconciled > 0 {
		logrus.Infof("reconciled %d outbox bookings at startup", reconciled)
	}

	svixVerifier, svixError := users.NewSvixVerifier(appConfig.ClerkWebhookSecret)

	if svixError != nil {
		logrus.Fatalf("error initializing clerk webhook verifier: %s", svixError)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	routerAPIPrefix := router.Group("/api/" + appConfig.APIVersion)

	routerAPIPrefix.GET("/ping", func(ginContext *gin.Context) {
		ginContext.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	sessionAPIConfig := sessions.SessionAPIConfig{
		Service: sessions.NewService(dbQueries),
	}

	routerAPIPrefix.GET("/sessions", sessionAPIConfig.GetSessions)

	discountAPIConfig := discounts.DiscountAPIConfig{
		Service: discounts.NewService(dbQueries),
	}

	routerAPIPrefix.POST("/discount-codes/validate", discountAPIConfig.ValidateDiscount)

	paymentAPIConfig := payments.PaymentAPIConfig{
		Service: paymentService,
	}

	routerAPIPrefix.POST("/payments/webhook", paymentAPIConfig.StripeWebhook)

	userAPIConfig := users.UserAPIConfig{
		Service: users.NewService(dbQueries, svixVerifier, clerkClient),
	}

	routerAPIPrefix.POST("/clerk/webhook", userAPIConfig.ClerkWebhook)

	formAPIConfig := forms.FormAPIConfig{
		Service: forms.NewService(dbQueries, appMailer),
	}

	routerAPIPrefix.POST("/forms/esports-waiver", formAPIConfig.SubmitEsportsWaiver)
	routerAPIPrefix.POST("/forms/media-release", formAPIConfig.SubmitMediaRelease)
	routerAPIPrefix.POST("/forms/general-waiver", formAPIConfig.SubmitGeneralWaiver)

	contactAPIConfig := contact.ContactAPIConfig{
		Mailer: appMailer,
	}

	routerAPIPrefix.POST("/contact", contactAPIConfig.SubmitContact)
	routerAPIPrefix.POST("/workforce-contact", contactAPIConfig.SubmitWorkforceContact)

	routerWithAuthorization := routerAPIPrefix.Group("")
	routerWithAuthorization.Use(middleware.AuthorizationMiddleware(clerkClient))

	routerWithAuthorization.POST("/payments/intent", paymentAPIConfig.CreatePaymentIntent)
	routerWithAuthorization.POST("/users/sync", userAPIConfig.SyncUser)
	routerWithAuthorization.GET("/users/forms", userAPIConfig.GetForms)

	bookingAPIConfig := bookings.BookingAPIConfig{
		Service: bookings.NewService(dbQueries, stripeClient, appMailer, outboxStore),
	}

	routerWithAuthorization.GET("/bookings", bookingAPIConfig.GetBookings)
	routerWithAuthorization.POST("/bookings/:bookingId/cancel", bookingAPIConfig.CancelBooking)

	if appConfig.GinMode == gin.DebugMode {
		debugAPIConfig := debug.DebugAPIConfig{
			AppConfig:      &appConfig,
			DBQueries:      dbQueries,
			PaymentService: paymentService,
		}

		routerDebug := router.Group("/debug")
		routerDebug.GET("/env", debugAPIConfig.Environment)
		routerDebug.GET("/bookings", debugAPIConfig.RecentBookings)
		routerDebug.POST("/bookings", debugAPIConfig.CreateTestBooking)
		routerDebug.POST("/webhook-echo", debugAPIConfig.WebhookEcho)
		routerDebug.POST("/outbox/reconcile", debugAPIConfig.ReconcileOutbox)
	}

	logrus.Infof("server starting on port %s in %s mode", appConfig.Port, appConfig.GinMode)

	if routerRunError := router.Run(":" + appConfig.Port); routerRunError != nil {
		logrus.Fatal(routerRunError)
	}
}
