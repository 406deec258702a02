package chathistory

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/dmitrijs2005/nutritrack/internal/client/repositories/kv"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
)

const assistantKey = "chatIAHistory"

// AssistantGreeting seeds the general-purpose assistant conversation.
const AssistantGreeting = "Hello! Ask me anything about nutrition, recipes or your goals."

// AssistantLog keeps the undated transcript of the general-purpose
// assistant. It follows the Store failure policy.
type AssistantLog struct {
	repo   kv.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewAssistantLog(db *sql.DB, namespace string, logger logging.Logger) *AssistantLog {
	return &AssistantLog{
		repo:   kv.NewSQLiteRepository(db, namespace),
		logger: logger.With("component", "assistantlog", "namespace", namespace),
		now:    time.Now,
	}
}

type assistantRecord struct {
	Version  int                  `json:"v"`
	Messages []models.ChatMessage `json:"messages"`
}

func encodeAssistant(msgs []models.ChatMessage) ([]byte, error) {
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	return json.Marshal(assistantRecord{Version: SchemaVersion, Messages: msgs})
}

// decodeAssistant accepts the versioned object and the legacy bare array.
func decodeAssistant(b []byte) ([]models.ChatMessage, error) {
	b = bytes.TrimSpace(b)
	var msgs []models.ChatMessage

	if len(b) > 0 && b[0] == '[' {
		if err := json.Unmarshal(b, &msgs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedLog, err)
		}
	} else {
		var rec assistantRecord
		if err := json.Unmarshal(b, &rec); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedLog, err)
		}
		if rec.Version != SchemaVersion {
			return nil, fmt.Errorf("%w: unsupported schema version %d", ErrMalformedLog, rec.Version)
		}
		msgs = rec.Messages
	}

	if err := checkMessages(msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Load returns the saved transcript, or nil when there is none or it cannot
// be read.
func (a *AssistantLog) Load(ctx context.Context) []models.ChatMessage {
	raw, err := a.repo.Get(ctx, assistantKey)
	if err != nil {
		a.logger.Warn(ctx, "failed to read assistant log", "err", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	msgs, err := decodeAssistant(raw)
	if err != nil {
		a.logger.Warn(ctx, "assistant log unreadable, treating as absent", "err", err)
		return nil
	}
	return msgs
}

func (a *AssistantLog) Save(ctx context.Context, msgs []models.ChatMessage) {
	raw, err := encodeAssistant(msgs)
	if err == nil {
		err = a.repo.Set(ctx, assistantKey, raw)
	}
	if err != nil {
		a.logger.Error(ctx, "failed to save assistant log", "err", err)
	}
}

// Reset replaces the transcript with the greeting and returns it.
func (a *AssistantLog) Reset(ctx context.Context) []models.ChatMessage {
	msgs := []models.ChatMessage{{Text: AssistantGreeting, Sender: models.SenderAssistant, Timestamp: a.now()}}
	a.Save(ctx, msgs)
	return slices.Clone(msgs)
}
