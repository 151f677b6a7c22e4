package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nrampal/prospecta/internal/config"
	"github.com/nrampal/prospecta/internal/infra/database"
	"github.com/nrampal/prospecta/internal/infra/http/handlers"
	"github.com/nrampal/prospecta/internal/infra/http/middleware"
	"github.com/nrampal/prospecta/internal/infra/integration/google"
	"github.com/nrampal/prospecta/internal/infra/mail"
	"github.com/nrampal/prospecta/internal/infra/queue"
	"github.com/nrampal/prospecta/internal/infra/worker"
	"github.com/nrampal/prospecta/internal/usecase"
)

func main() {
	cfg := config.Load()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer db.Close()

	// RabbitMQ is optional: without it assignment notifications are skipped.
	var amqpConn *amqp.Connection
	var producer *queue.Producer
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("❌ RabbitMQ connection failed: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		amqpConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Ch)

		mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
		notifyWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
		go notifyWorker.Start(queue.QueueName)
	} else {
		log.Println("⚠️ AMQP_URL not set, assignment notifications disabled")
	}

	// 1. Repositories
	userRepo := database.NewUserRepository(db)
	prospectRepo := database.NewProspectRepository(db)
	preTalkRepo := database.NewPreTalkRepository(db)
	logRepo := database.NewActivityLogRepository(db)
	dashboardRepo := database.NewDashboardRepository(db)
	syncRepo := database.NewSyncRepository(db)

	// 2. Google gateways
	oauthClient := google.NewOAuthClient(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)
	calendarClient := google.NewCalendarClient(oauthClient)
	sheetsClient := google.NewSheetsClient(oauthClient, cfg.GoogleSheetsID)

	// 3. UseCases
	loginUC := usecase.NewLoginUseCase(userRepo, oauthClient)
	scheduleUC := usecase.NewSchedulePreTalkUseCase(
		userRepo, prospectRepo, preTalkRepo, logRepo, calendarClient, producerOrNil(producer),
	)
	updateUC := usecase.NewUpdatePreTalkUseCase(userRepo, preTalkRepo, logRepo, calendarClient)
	completeUC := usecase.NewCompletePreTalkUseCase(prospectRepo, preTalkRepo, logRepo)
	syncUC := usecase.NewSyncSheetsUseCase(syncRepo, sheetsClient)

	// 4. Scheduled sheets sync (service credential)
	syncWorker := worker.NewSheetsSyncWorker(syncUC, cfg.GoogleSyncRefreshToken)
	go syncWorker.Start(context.Background())

	// 5. Handlers
	authHandler := handlers.NewAuthHandler(loginUC, oauthClient, userRepo, cfg.JWTSecret, cfg.FrontendURL)
	userHandler := handlers.NewUserHandler(userRepo)
	prospectHandler := handlers.NewProspectHandler(prospectRepo, preTalkRepo, logRepo)
	preTalkHandler := handlers.NewPreTalkHandler(scheduleUC, updateUC, completeUC, preTalkRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardRepo)
	syncHandler := handlers.NewSyncHandler(syncUC, userRepo, syncRepo)
	healthHandler := handlers.NewHealthHandler(db, amqpConn)

	auth := middleware.NewAuthenticator(cfg.JWTSecret, userRepo)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.FrontendURL},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/url", authHandler.HandleAuthURL)
		r.Get("/callback", authHandler.HandleCallback)
		r.With(auth.RequireIdentity).Get("/me", authHandler.HandleMe)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(auth.Require)
		r.With(middleware.RequireMentor).Get("/", userHandler.HandleList)
		r.Get("/mentors", userHandler.HandleMentors)
		r.With(middleware.RequireAdmin).Get("/pending", userHandler.HandlePending)
		r.With(middleware.RequireAdmin).Post("/{id}/approve", userHandler.HandleApprove)
		r.With(middleware.RequireAdmin).Put("/{id}/role", userHandler.HandleUpdateRole)
		r.With(middleware.RequireAdmin).Delete("/{id}", userHandler.HandleDelete)
	})

	r.Route("/api/prospects", func(r chi.Router) {
		r.Use(auth.Require)
		r.Post("/", prospectHandler.HandleCreate)
		r.Get("/", prospectHandler.HandleList)
		r.Get("/{id}", prospectHandler.HandleGet)
		r.Put("/{id}", prospectHandler.HandleUpdate)
		r.Delete("/{id}", prospectHandler.HandleDelete)
	})

	r.Route("/api/pretalks", func(r chi.Router) {
		r.Use(auth.Require)
		r.Post("/", preTalkHandler.HandleCreate)
		r.Get("/", preTalkHandler.HandleList)
		r.Get("/{id}", preTalkHandler.HandleGet)
		r.Put("/{id}", preTalkHandler.HandleUpdate)
		r.Post("/{id}/complete", preTalkHandler.HandleComplete)
	})

	r.Route("/api/dashboard", func(r chi.Router) {
		r.Use(auth.Require)
		r.Get("/daily", dashboardHandler.HandleDaily)
		r.Get("/weekly", dashboardHandler.HandleWeekly)
		r.Get("/monthly", dashboardHandler.HandleMonthly)
	})

	r.Route("/api/sync", func(r chi.Router) {
		r.Use(auth.Require)
		r.Post("/sheets", syncHandler.HandleSync)
		r.Get("/status", syncHandler.HandleStatus)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Route not found"}`))
	})

	addr := ":" + cfg.Port
	log.Printf("🔥 Prospecta API listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}

// producerOrNil keeps the nil-ness of an absent producer when it is passed
// through the interface-typed usecase dependency.
func producerOrNil(p *queue.Producer) usecase.NotificationProducerInterface {
	if p == nil {
		return nil
	}
	return p
}
