package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"aptbillmanager/internal/config"
	"aptbillmanager/internal/handlers"
	"aptbillmanager/internal/middleware"
	"aptbillmanager/internal/repositories"
	"aptbillmanager/internal/routes"
	"aptbillmanager/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()
	if err := ensureSchema(db); err != nil {
		log.Fatal("Failed to bootstrap schema: ", err)
	}

	costPerUnit, err := decimal.NewFromString(cfg.Billing.CostPerUnit)
	if err != nil {
		log.Fatal("Invalid cost_per_unit: ", err)
	}

	// === Repos ===
	memberRepo := repositories.NewMemberRepository(db)
	flatRepo := repositories.NewFlatRepository(db)

	// === Services ===
	authService, err := services.NewAuthService(cfg.Auth.SecretKey, cfg.Auth.Algorithm, cfg.Auth.AccessTokenMinutes)
	if err != nil {
		log.Fatal("Failed to build auth service: ", err)
	}
	otpService := services.NewOTPService(services.NewMemoryOTPStore(), cfg.Auth.SecretKey)

	var emailService services.EmailService
	if cfg.Email.SMTPHost != "" {
		emailService = services.NewSMTPEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.SenderEmail,
		)
	} else {
		emailService = services.NewMailgunEmailService(
			cfg.Email.MailgunDomain,
			cfg.Email.MailgunAPIKey,
			cfg.Email.SenderEmail,
		)
	}

	telegramService := services.NewTelegramService(cfg.Telegram.BotToken)
	notifier := services.NewNotificationService(
		telegramService,
		time.Duration(cfg.Telegram.SendDelayMs)*time.Millisecond,
	)
	billService := services.NewBillService(flatRepo, costPerUnit)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(memberRepo, otpService, authService, emailService)
	billHandler := handlers.NewBillHandler(flatRepo, billService, notifier)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	authGuard := middleware.AuthMiddleware(authService, memberRepo)
	routes.SetupRoutes(router, authHandler, billHandler, authGuard)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

// ensureSchema creates the two tables when they do not exist yet. Flats are
// populated by an external bulk import, never here.
func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS committee_members (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			phone_number TEXT UNIQUE,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS flat_owners (
			id UUID PRIMARY KEY,
			flat_no TEXT NOT NULL UNIQUE,
			name TEXT,
			telegram_chat_id TEXT,
			phone_number TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
