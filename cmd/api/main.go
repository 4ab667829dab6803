package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/zerovicios/funnel-api/internal/entity"
	"github.com/zerovicios/funnel-api/internal/infra/database"
	"github.com/zerovicios/funnel-api/internal/infra/http/handlers"
	appmiddleware "github.com/zerovicios/funnel-api/internal/infra/http/middleware"
	"github.com/zerovicios/funnel-api/internal/infra/integration/facebook"
	"github.com/zerovicios/funnel-api/internal/infra/integration/gemini"
	"github.com/zerovicios/funnel-api/internal/infra/integration/paradise"
	"github.com/zerovicios/funnel-api/internal/infra/mail"
	"github.com/zerovicios/funnel-api/internal/infra/queue"
	"github.com/zerovicios/funnel-api/internal/infra/worker"
	"github.com/zerovicios/funnel-api/internal/usecase"
)

func main() {
	godotenv.Load()

	// 1. Banco (opcional: sem DATABASE_URL o funil roda sem persistência)
	var db *sql.DB
	var txRepo entity.TransactionRepositoryInterface
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		var err error
		db, err = database.NewDBConnection(dsn)
		if err != nil {
			log.Fatalf("❌ Banco indisponível: %v", err)
		}
		defer db.Close()
		txRepo = database.NewTransactionRepository(db)
	} else {
		log.Println("⚠️ DATABASE_URL ausente: transações não serão persistidas")
	}

	// 2. RabbitMQ + worker de conversões (opcional)
	var rabbitConn *amqp.Connection
	var producer usecase.ConversionPublisher
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		rabbitMQ, err := queue.NewRabbitMQ(url)
		if err != nil {
			log.Fatalf("❌ RabbitMQ indisponível: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		rabbitConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		tracker := facebook.NewClient(
			os.Getenv("FACEBOOK_ACCESS_TOKEN"),
			os.Getenv("FACEBOOK_PIXEL_ID"),
		)
		convWorker := queue.NewWorker(rabbitMQ.Ch, tracker)
		go convWorker.Start(queue.QueueName)
	} else {
		log.Println("⚠️ RABBITMQ_URL ausente: eventos de conversão desativados")
	}

	// 3. Gateways e Adapters
	gateway := paradise.NewClient(os.Getenv("PARADISE_SECRET_KEY"), os.Getenv("PARADISE_URL"))

	var mailer usecase.ReceiptSender
	if host := os.Getenv("MAIL_HOST"); host != "" {
		mailPort, err := strconv.Atoi(getenv("MAIL_PORT", "587"))
		if err != nil {
			mailPort = 587
		}
		mailer = mail.NewEmailSender(host, mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"))
	}

	chatClient := gemini.NewClient(os.Getenv("GEMINI_API_KEY"))

	// 4. UseCases
	generatePixUC := usecase.NewGeneratePixUseCase(
		txRepo, gateway,
		os.Getenv("PARADISE_SECRET_KEY"),
		getenv("BASE_URL", "http://localhost:8080"),
	)
	webhookUC := usecase.NewProcessWebhookUseCase(txRepo, producer, mailer)

	// 5. Handlers
	pixHandler := handlers.NewPixHandler(generatePixUC)
	webhookHandler := handlers.NewWebhookHandler(webhookUC)
	statusHandler := handlers.NewStatusHandler(txRepo)
	plansHandler := handlers.NewPlansHandler()
	dashboardHandler := handlers.NewDashboardHandler()
	chatHandler := handlers.NewChatHandler(chatClient)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	// 6. Worker de expiração de PIX
	if db != nil {
		expWorker := worker.NewPixExpirationWorker(db)
		go expWorker.Start(context.Background())
	}

	// 7. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Post("/api/gerar-pix", pixHandler.Handle)
	r.Post("/api/webhook", webhookHandler.Handle)
	r.Get("/api/transactions/{id}/status", statusHandler.Handle)
	r.Get("/api/plans", plansHandler.Handle)
	r.Get("/api/dashboard/stats", dashboardHandler.HandleStats)
	r.Post("/api/chat", chatHandler.HandleMessage)
	r.Get("/api/motivation", chatHandler.HandleMotivation)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + getenv("PORT", "8080")
	log.Printf("🔥 Zero Vicios funnel rodando na porta %s", port)
	http.ListenAndServe(port, r)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
