package bootstrap

import (
	"time"

	"ai-journal-be/internal/config"
	"ai-journal-be/internal/controller"
	"ai-journal-be/internal/pkg/logger"
	"ai-journal-be/internal/repository/implementation"
	"ai-journal-be/internal/repository/memory"
	"ai-journal-be/internal/service"
	"ai-journal-be/internal/websocket"
	"ai-journal-be/pkg/agent"
	"ai-journal-be/pkg/transcribe"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	JournalController    controller.IJournalController
	TranscribeController controller.ITranscribeController

	// Background Services (Exposed for main.go to run)
	PersistenceService service.IPersistenceService

	// WebSockets
	Hub *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Gateways
	agentGateway := agent.NewHTTPGateway(
		cfg.Agent.BaseURL,
		time.Duration(cfg.Agent.TimeoutSeconds)*time.Second,
	)
	whisperClient := transcribe.NewWhisperClient(cfg.Keys.OpenAI)

	// 4. Repositories
	catalogRepo := implementation.NewFileEntryCatalogRepository(cfg.Storage.EntriesFilePath, sysLogger)
	sessionRepo := memory.NewSessionRepository()

	// 5. WebSocket Hub
	hub := websocket.NewHub(sysLogger)

	// 6. Services
	journalService := service.NewJournalService(catalogRepo, pubSub, sysLogger)
	sessionService := service.NewSessionService(sessionRepo, journalService, agentGateway, cfg.Agent.AgentId, sysLogger)
	persistenceService := service.NewPersistenceService(pubSub, journalService, catalogRepo, hub, sysLogger)

	// 7. Controllers
	journalController := controller.NewJournalController(sessionService, journalService)
	transcribeController := controller.NewTranscribeController(whisperClient)

	return &Container{
		JournalController:    journalController,
		TranscribeController: transcribeController,
		PersistenceService:   persistenceService,
		Hub:                  hub,
		Logger:               sysLogger,
	}
}
