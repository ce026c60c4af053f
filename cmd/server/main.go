// Package main is the application entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"support-desk-go/internal/config"
	"support-desk-go/internal/handler"
	"support-desk-go/internal/middleware"
	"support-desk-go/internal/model"
	"support-desk-go/internal/repository"
	"support-desk-go/internal/service"
	"support-desk-go/internal/store"
	"support-desk-go/pkg/alert"
	"support-desk-go/pkg/database"
	"support-desk-go/pkg/email"
	"support-desk-go/pkg/es"
	"support-desk-go/pkg/kafka"
	"support-desk-go/pkg/llm"
	"support-desk-go/pkg/log"
	"support-desk-go/pkg/retry"
)

func main() {
	// 1. Configuration and logger.
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()
	log.Info("logger initialized successfully")

	// 2. Datastores and messaging.
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	if err := database.DB.AutoMigrate(
		&model.Account{},
		&model.BillingRecord{},
		&model.TechnicalIssue{},
		&model.FAQ{},
	); err != nil {
		log.Fatal("failed to migrate database schema", err)
	}
	if err := es.InitES(cfg.Elasticsearch); err != nil {
		// FAQ search degrades to the database keyword match without ES.
		log.Errorf("elasticsearch initialization failed, FAQ search degraded: %v", err)
	}
	kafka.InitProducer(cfg.Kafka)

	// 3. Repositories.
	accountRepo := repository.NewAccountRepository(database.DB)
	billingRepo := repository.NewBillingRepository(database.DB)
	faqRepo := repository.NewFAQRepository(database.DB)
	issueRepo := repository.NewTechnicalIssueRepository(database.DB)
	transcriptRepo := repository.NewTranscriptRepository(database.RDB)

	// 4. Process-local conversational state.
	sessionTTL := time.Duration(defaultInt(cfg.Chat.SessionTTLHours, 24)) * time.Hour
	historyLimit := defaultInt(cfg.Chat.HistoryLimit, 10)
	sessions := store.NewSessionStore(sessionTTL, historyLimit)

	window := time.Duration(defaultInt(cfg.RateLimit.WindowSeconds, 60)) * time.Second
	limiter := store.NewRateLimiter(window, defaultInt(cfg.RateLimit.MaxRequests, 30))

	// 5. Services (dependency injection).
	retryPolicy := retry.Policy{
		MaxAttempts:    defaultInt(cfg.Classifier.MaxRetries, 3),
		InitialBackoff: time.Duration(defaultInt(cfg.Classifier.BackoffSeconds, 2)) * time.Second,
		MaxBackoff:     time.Duration(defaultInt(cfg.Classifier.BackoffCapSecs, 10)) * time.Second,
	}
	llmClient := llm.NewClient(cfg.Classifier)
	emailSender := email.NewSender(cfg.Email)

	priorityService := service.NewPriorityService(llmClient, retryPolicy)
	routerService := service.NewRouterService(llmClient, retryPolicy)

	handlers := map[model.Agent]service.AgentHandler{
		model.AgentFAQ:       service.NewFAQService(es.ESClient, cfg.Elasticsearch.IndexName, faqRepo),
		model.AgentAccount:   service.NewAccountService(accountRepo),
		model.AgentBilling:   service.NewBillingService(billingRepo, accountRepo, emailSender),
		model.AgentTechnical: service.NewTechnicalService(issueRepo),
	}

	alertSink := alert.MultiSink{
		alert.NewWebhookSink(cfg.Alert),
		alert.NewKafkaSink(),
	}

	chatService := service.NewChatService(
		sessions,
		priorityService,
		routerService,
		handlers,
		alertSink,
		transcriptRepo,
		defaultInt(cfg.Chat.EscalationTurnLimit, 10),
	)

	// 6. Seed the FAQ search index from the database, best effort.
	seedCtx, cancelSeed := context.WithCancel(context.Background())
	defer cancelSeed()
	go seedFAQIndex(seedCtx, faqRepo, cfg.Elasticsearch.IndexName)

	// 7. Router and middleware.
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	chatHandler := handler.NewChatHandler(chatService, limiter, defaultInt(cfg.Chat.MaxMessageLen, 4000))
	sessionHandler := handler.NewSessionHandler(sessions, transcriptRepo)

	apiV1 := r.Group("/api/v1")
	{
		apiV1.POST("/chat", chatHandler.Chat)
		apiV1.GET("/chat/history", sessionHandler.History)
		apiV1.GET("/sessions/stats", sessionHandler.Stats)
		apiV1.GET("/rate-limit/status", chatHandler.RateLimitStatus)
	}

	// 8. Serve with graceful shutdown.
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP server shutdown failed: %v", err)
	}

	log.Info("server stopped gracefully")
}

// seedFAQIndex pushes every active FAQ into the search index so keyword
// search works immediately after startup. Skipped when ES is unavailable.
func seedFAQIndex(ctx context.Context, faqRepo repository.FAQRepository, indexName string) {
	if es.ESClient == nil {
		return
	}

	faqs, err := faqRepo.FindAllActive()
	if err != nil {
		log.Errorf("seedFAQIndex: failed to load FAQs: %v", err)
		return
	}

	indexed := 0
	for _, faq := range faqs {
		if ctx.Err() != nil {
			return
		}
		if err := es.IndexFAQ(ctx, indexName, faq); err != nil {
			log.Warnf("seedFAQIndex: failed to index FAQ %d: %v", faq.ID, err)
			continue
		}
		indexed++
	}
	log.Infof("seedFAQIndex: indexed %d of %d FAQ entries", indexed, len(faqs))
}

// defaultInt returns fallback when v is zero, so missing config keys get
// sane defaults.
func defaultInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
