package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"ai-journal-be/internal/apperrors"
	"ai-journal-be/internal/constant"
	"ai-journal-be/internal/dto"
	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/pkg/logger"
	"ai-journal-be/internal/repository/memory"
	"ai-journal-be/pkg/agent"
	"ai-journal-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// currentSessionKey identifies the single live conversation. The store is
// keyed so additional sessions can be introduced without reshaping it.
const currentSessionKey = "current"

// ISessionService orchestrates the conversation: it routes user input to the
// agent gateway, appends results to the session, and triggers entry sync.
type ISessionService interface {
	SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	StartNewEntry(ctx context.Context) (*dto.SessionStateResponse, error)
	LoadEntry(ctx context.Context, request *dto.LoadEntryRequest) (*dto.SessionStateResponse, error)
	GetSession(ctx context.Context) (*dto.SessionStateResponse, error)
}

type sessionService struct {
	sessionRepo    *memory.SessionRepository
	journalService IJournalService
	gateway        agent.Gateway
	agentId        string
	logger         logger.ILogger
	now            func() time.Time

	// mu makes the Awaiting-Reply check-and-set atomic. The gateway call
	// itself happens outside the lock.
	mu sync.Mutex
}

func NewSessionService(
	sessionRepo *memory.SessionRepository,
	journalService IJournalService,
	gateway agent.Gateway,
	agentId string,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		journalService: journalService,
		gateway:        gateway,
		agentId:        agentId,
		logger:         log,
		now:            time.Now,
	}
}

func (s *sessionService) SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	content := strings.TrimSpace(request.Content)
	if content == "" {
		// Rejected before any state transition.
		return nil, apperrors.NewInputError("message content must not be empty")
	}

	s.mu.Lock()
	session := s.getOrCreateSession()

	if session.State == store.StateAwaitingReply {
		s.mu.Unlock()
		// A send while a reply is in flight is dropped, not queued.
		s.logger.Warn("Session", "Send ignored, reply in flight", nil)
		return &dto.SendMessageResponse{Ignored: true}, nil
	}

	// Optimistic append: the user message is part of the conversation even
	// if the agent call fails afterwards.
	userMsg := &entity.Message{
		Id:        uuid.New(),
		Role:      constant.ChatMessageRoleUser,
		Content:   content,
		Timestamp: s.now(),
	}
	session.Append(userMsg)
	session.State = store.StateAwaitingReply
	s.sessionRepo.Save(session)
	s.mu.Unlock()

	reply, err := s.gateway.Send(ctx, content, s.agentId)

	s.mu.Lock()
	defer s.mu.Unlock()

	var assistantMsg *entity.Message
	if err != nil {
		// Gateway failures never block the session: a fixed fallback reply
		// is appended and the failure is logged for observability.
		s.logger.Error("Session", "Agent call failed", map[string]interface{}{
			"error": err.Error(),
		})
		assistantMsg = &entity.Message{
			Id:        uuid.New(),
			Role:      constant.ChatMessageRoleAssistant,
			Content:   constant.AgentFallbackMessage,
			Timestamp: s.now(),
		}
	} else {
		assistantMsg = &entity.Message{
			Id:                uuid.New(),
			Role:              constant.ChatMessageRoleAssistant,
			Content:           reply.Response,
			Timestamp:         s.now(),
			Mood:              reply.MoodDetected,
			Insights:          reply.Insights,
			FollowUpQuestions: reply.FollowUpQuestions,
		}
	}

	session.Append(assistantMsg)
	session.State = store.StateActive

	entry, created := s.journalService.Sync(ctx, session.CurrentEntryId, session.Current())
	if created && entry != nil {
		// Adopting the minted id is part of the sync contract: subsequent
		// syncs in this session update the same entry.
		id := entry.Id
		session.CurrentEntryId = &id
	}
	s.sessionRepo.Save(session)

	response := &dto.SendMessageResponse{
		Sent:  toMessageResponse(userMsg),
		Reply: toMessageResponse(assistantMsg),
	}
	if entry != nil {
		entryResponse := toEntryResponse(entry, s.now())
		response.Entry = &entryResponse
	}
	return response, nil
}

func (s *sessionService) StartNewEntry(ctx context.Context) (*dto.SessionStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.getOrCreateSession()
	session.Clear()
	session.CurrentEntryId = nil
	session.State = store.StateIdle
	s.sessionRepo.Save(session)

	s.logger.Info("Session", "Started new entry", nil)
	return s.toSessionStateResponse(session), nil
}

func (s *sessionService) LoadEntry(ctx context.Context, request *dto.LoadEntryRequest) (*dto.SessionStateResponse, error) {
	entry, found := s.journalService.FindEntry(ctx, request.EntryId)
	if !found {
		return nil, fiber.NewError(fiber.StatusNotFound, "entry not found")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.getOrCreateSession()
	session.ReplaceAll(entry.Messages)
	id := entry.Id
	session.CurrentEntryId = &id
	session.State = store.StateActive
	s.sessionRepo.Save(session)

	s.logger.Info("Session", "Entry loaded into session", map[string]interface{}{
		"entry_id":      entry.Id.String(),
		"message_count": session.MessageCount(),
	})
	return s.toSessionStateResponse(session), nil
}

func (s *sessionService) GetSession(ctx context.Context) (*dto.SessionStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.getOrCreateSession()
	return s.toSessionStateResponse(session), nil
}

// getOrCreateSession must be called with s.mu held.
func (s *sessionService) getOrCreateSession() *store.Session {
	if session, found := s.sessionRepo.Get(currentSessionKey); found {
		return session
	}
	session := store.NewSession(currentSessionKey)
	s.sessionRepo.Save(session)
	return session
}

func (s *sessionService) toSessionStateResponse(session *store.Session) *dto.SessionStateResponse {
	messages := session.Current()
	out := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, *toMessageResponse(m))
	}

	return &dto.SessionStateResponse{
		State:          session.State,
		CurrentEntryId: session.CurrentEntryId,
		Messages:       out,
		Greeting:       Greeting(s.now()),
		QuickPrompts:   constant.QuickPrompts,
	}
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:                m.Id,
		Role:              m.Role,
		Content:           m.Content,
		Timestamp:         m.Timestamp,
		Mood:              m.Mood,
		Insights:          m.Insights,
		FollowUpQuestions: m.FollowUpQuestions,
	}
}

// Greeting picks a salutation by hour of day.
func Greeting(now time.Time) string {
	hour := now.Hour()
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
