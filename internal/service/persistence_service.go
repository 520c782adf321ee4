package service

import (
	"context"
	"encoding/json"

	"ai-journal-be/internal/constant"
	"ai-journal-be/internal/pkg/logger"
	"ai-journal-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventBroadcaster pushes journal events to connected clients. Implemented
// by the websocket hub; nil disables broadcasting.
type EventBroadcaster interface {
	Broadcast(eventType string, data interface{})
}

// IPersistenceService consumes sync events and writes the catalog to its
// durable slot. Writes are best-effort and ordered per trigger; rapid
// successive syncs end in last-write-wins.
type IPersistenceService interface {
	Consume(ctx context.Context) error
}

type persistenceService struct {
	pubSub         *gochannel.GoChannel
	journalService IJournalService
	catalogRepo    contract.IEntryCatalogRepository
	broadcaster    EventBroadcaster
	logger         logger.ILogger
}

func NewPersistenceService(
	pubSub *gochannel.GoChannel,
	journalService IJournalService,
	catalogRepo contract.IEntryCatalogRepository,
	broadcaster EventBroadcaster,
	log logger.ILogger,
) IPersistenceService {
	return &persistenceService{
		pubSub:         pubSub,
		journalService: journalService,
		catalogRepo:    catalogRepo,
		broadcaster:    broadcaster,
		logger:         log,
	}
}

func (ps *persistenceService) Consume(ctx context.Context) error {
	messages, err := ps.pubSub.Subscribe(ctx, constant.EntrySyncedTopicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ps.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ps *persistenceService) processMessage(ctx context.Context, msg *message.Message) {
	var payload struct {
		EntryId string `json:"entry_id"`
		Created bool   `json:"created"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		ps.logger.Error("Persistence", "Failed to unmarshal sync event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads are not retriable
		return
	}

	if ps.broadcaster != nil {
		ps.broadcaster.Broadcast("entry_synced", map[string]interface{}{
			"entry_id": payload.EntryId,
			"created":  payload.Created,
		})
	}

	snapshot := ps.journalService.Snapshot(ctx)

	// An empty catalog never overwrites the slot: the stored data may still
	// be valid while the in-memory view is empty.
	if len(snapshot) == 0 {
		msg.Ack()
		return
	}

	if err := ps.catalogRepo.Save(ctx, snapshot); err != nil {
		// Best-effort write: log and move on, the next sync writes again.
		ps.logger.Error("Persistence", "Failed to save entry catalog", map[string]interface{}{
			"entry_id": payload.EntryId,
			"error":    err.Error(),
		})
		msg.Ack()
		return
	}

	ps.logger.Info("Persistence", "Entry catalog saved", map[string]interface{}{
		"entry_id":    payload.EntryId,
		"entry_count": len(snapshot),
	})

	if ps.broadcaster != nil {
		ps.broadcaster.Broadcast("entry_persisted", map[string]interface{}{
			"entry_id": payload.EntryId,
		})
	}

	msg.Ack()
}
