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

	"github.com/redis/go-redis/v9"

	"github.com/foozbat/integrations-demo/internal/config"
	"github.com/foozbat/integrations-demo/internal/infra/database"
	"github.com/foozbat/integrations-demo/internal/infra/http/handlers"
	"github.com/foozbat/integrations-demo/internal/infra/http/middleware"
	"github.com/foozbat/integrations-demo/internal/infra/integration/stripe"
	"github.com/foozbat/integrations-demo/internal/infra/mail"
	"github.com/foozbat/integrations-demo/internal/infra/monitoring"
	"github.com/foozbat/integrations-demo/internal/infra/queue"
	"github.com/foozbat/integrations-demo/internal/infra/webhook"
	"github.com/foozbat/integrations-demo/internal/infra/worker"
	"github.com/foozbat/integrations-demo/internal/usecase"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("❌ Configuração inválida: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 0. Sentry
	if _, err := monitoring.Init(cfg.SentryDSN, cfg.Environment, cfg.Version); err != nil {
		log.Printf("⚠️ Sentry não inicializado: %v", err)
	}
	defer monitoring.Flush()
	reporter := monitoring.NewReporter(nil)

	// 1. Banco
	pool, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Banco indisponível: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("❌ Falha na migração: %v", err)
	}
	leadRepo := database.NewLeadRepository(pool)

	// 2. Webhook de saída
	dispatcher := webhook.NewDispatcher(webhook.Options{Observer: middleware.RecordDelivery})

	// 3. RabbitMQ + worker de boas-vindas (opcional)
	var queueStatus handlers.QueueStatus
	var publisher usecase.LeadLinkedPublisher
	if cfg.RabbitMQEnabled() {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQUser, cfg.RabbitMQPass, cfg.RabbitMQHost, cfg.RabbitMQPort)
		if err != nil {
			log.Fatalf("❌ RabbitMQ indisponível: %v", err)
		}
		defer rabbitMQ.Close()
		queueStatus = rabbitMQ
		publisher = queue.NewProducer(rabbitMQ.Ch)

		if cfg.MailEnabled() {
			mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
			welcomeWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
			go func() {
				if err := welcomeWorker.Start(ctx, queue.QueueName); err != nil {
					log.Printf("❌ Worker de boas-vindas parou: %v", err)
				}
			}()
		} else {
			log.Println("⚠️ MAIL_HOST não configurado, worker de boas-vindas desligado")
		}
	} else {
		log.Println("⚠️ RABBITMQ_HOST não configurado, eventos de vínculo não serão publicados")
	}

	// 4. Rate limit do signup
	var signupLimiter middleware.Limiter
	var redisClient redis.Cmdable
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		redisClient = rdb
		signupLimiter = middleware.NewRedisLimiter(rdb, cfg.SignupRateLimit, time.Minute)
	} else {
		memLimiter := middleware.NewMemoryLimiter(cfg.SignupRateLimit, time.Minute)
		defer memLimiter.Stop()
		signupLimiter = memLimiter
	}

	// 5. UseCases
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, dispatcher, cfg.WorkflowWebhookURL, cfg.WebhookTimeout)
	updateLeadUC := usecase.NewUpdateLeadUseCase(leadRepo)
	deleteLeadUC := usecase.NewDeleteLeadUseCase(leadRepo)
	queryUC := usecase.NewLeadQueryUseCase(leadRepo)
	linkCRMUC := usecase.NewLinkCRMContactUseCase(leadRepo)
	linkPaymentUC := usecase.NewLinkPaymentCustomerUseCase(leadRepo, publisher)
	reportErrorUC := usecase.NewReportWorkflowErrorUseCase(reporter)

	// 6. Job de métricas de vínculo
	statsWorker, err := worker.NewLinkageStatsWorker(leadRepo, cfg.LinkageStatsInterval, middleware.SetLeadsAwaitingLinkage)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	statsWorker.Start()
	defer statsWorker.Stop()

	// 7. Router
	router := newRouter(routeDeps{
		Leads:          handlers.NewLeadHandler(createLeadUC, updateLeadUC, deleteLeadUC, queryUC),
		CRMWebhook:     handlers.NewCRMWebhookHandler(linkCRMUC),
		PaymentWebhook: handlers.NewPaymentWebhookHandler(stripe.NewVerifier(cfg.StripeWebhookSecret), linkPaymentUC, reporter),
		WorkflowError:  handlers.NewWorkflowErrorHandler(reportErrorUC),
		Health:         handlers.NewHealthHandler(pool, queueStatus, redisClient, cfg.Version),
		SignupLimiter:  signupLimiter,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🔥 Integrations API rodando na porta %s (%s)", cfg.Port, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Servidor caiu: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("⚠️ Encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Shutdown forçado: %v", err)
	}
}
