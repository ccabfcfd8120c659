package bootstrap

import (
	"context"
	"log"

	"ai-helpdesk-be/internal/config"
	"ai-helpdesk-be/internal/controller"
	"ai-helpdesk-be/internal/pkg/logger"
	"ai-helpdesk-be/internal/pkg/mailer"
	"ai-helpdesk-be/internal/repository/implementation"
	"ai-helpdesk-be/internal/repository/memory"
	"ai-helpdesk-be/internal/service"
	"ai-helpdesk-be/pkg/helpdesk/access"
	"ai-helpdesk-be/pkg/helpdesk/delivery"
	"ai-helpdesk-be/pkg/helpdesk/orchestrator"
	"ai-helpdesk-be/pkg/helpdesk/scope"
	"ai-helpdesk-be/pkg/helpdesk/session"
	"ai-helpdesk-be/pkg/llm/ollama"
	"ai-helpdesk-be/pkg/messenger/telegram"
	"ai-helpdesk-be/pkg/qa"

	pktNats "ai-helpdesk-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const caseClosedTopic = "helpdesk.case.closed"

type Container struct {
	// Controllers
	WebhookController    controller.IWebhookController
	TranscriptController controller.ITranscriptController

	// Background workers (exposed for main.go to run)
	ConsumerService service.IConsumerService
	Monitor         *session.Monitor
	Dispatcher      *orchestrator.Dispatcher

	NatsPublisher *pktNats.Publisher
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SupportEmail,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS (auxiliary; the helpdesk keeps working without it)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	var eventPub orchestrator.EventPublisher
	if natsPub != nil {
		eventPub = natsPub
	}

	// 3. Repositories and caches
	tenantRepo := implementation.NewTenantRepository(db)
	transcriptRepo := implementation.NewTranscriptRepository(db)

	directoryCache := memory.NewDirectoryCache(tenantRepo, cfg.Helpdesk.DirectoryTTL)
	answerCache := memory.NewAnswerCache(cfg.Helpdesk.AnswerCacheTTL, cfg.Helpdesk.AnswerCacheMax)
	sessionStore := session.NewStore(0)

	// 4. Domain components
	gate := access.NewGate(tenantRepo, directoryCache, sysLogger)
	resolver := scope.NewResolver(cfg.Helpdesk.ScopeMatchThreshold)

	telegramClient := telegram.NewClient(cfg.Telegram.BotToken)
	deliveryMgr := delivery.NewManager(
		telegramClient,
		cfg.Helpdesk.DeliveryRetries,
		cfg.Helpdesk.DeliveryRetryDelay,
		sysLogger,
	)

	qaEngine := qa.NewRemoteEngine(cfg.Ai.QAServiceURL)
	llmProvider := ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.LLMModel)
	summarizer := qa.NewLLMSummarizer(llmProvider, sysLogger)

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, caseClosedTopic)
	caseService := service.NewCaseService(publisherService, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		caseClosedTopic,
		transcriptRepo,
		emailService,
		natsPub,
	)

	orch := orchestrator.New(
		sessionStore,
		resolver,
		gate,
		directoryCache,
		answerCache,
		qaEngine,
		summarizer,
		deliveryMgr,
		transcriptRepo,
		caseService,
		eventPub,
		sysLogger,
		cfg.Helpdesk.QATimeout,
		cfg.Helpdesk.AnswerMaxChars,
	)

	dispatcher := orchestrator.NewDispatcher(ctx, orch, sysLogger)

	monitor := session.NewMonitor(
		sessionStore,
		cfg.Helpdesk.SweepInterval,
		cfg.Helpdesk.IdleThreshold,
		orch.PromptResolution,
		sysLogger,
	)

	helpdeskService := service.NewHelpdeskService(dispatcher, transcriptRepo)

	// 6. Controllers
	return &Container{
		WebhookController:    controller.NewWebhookController(helpdeskService, cfg.Telegram.WebhookSecret, sysLogger),
		TranscriptController: controller.NewTranscriptController(helpdeskService),

		ConsumerService: consumerService,
		Monitor:         monitor,
		Dispatcher:      dispatcher,

		NatsPublisher: natsPub,
	}
}
