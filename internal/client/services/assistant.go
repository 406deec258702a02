package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/client/chathistory"
	"github.com/dmitrijs2005/nutritrack/internal/client/client"
	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
)

const (
	MsgAssistantFailed = "Sorry, something went wrong while processing your message. Please try again."
	MsgAssistantEmpty  = "Sorry, something went wrong while processing your message."
)

// AssistantService is the general-purpose nutrition chat. Its transcript is
// a single undated conversation.
type AssistantService struct {
	log    *chathistory.AssistantLog
	client client.Client
	task   *Task
	logger logging.Logger
	now    func() time.Time

	mu   sync.Mutex
	msgs []models.ChatMessage
}

func NewAssistantService(log *chathistory.AssistantLog, c client.Client, timeout time.Duration, logger logging.Logger) *AssistantService {
	return &AssistantService{
		log:    log,
		client: c,
		task:   NewTask(timeout),
		logger: logger.With("component", "assistant"),
		now:    time.Now,
	}
}

// Open loads the saved conversation, greeting the user when there is none.
func (a *AssistantService) Open(ctx context.Context) []models.ChatMessage {
	msgs := a.log.Load(ctx)
	if len(msgs) == 0 {
		msgs = a.log.Reset(ctx)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.msgs = msgs
	return slices.Clone(a.msgs)
}

func (a *AssistantService) Transcript() []models.ChatMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.msgs)
}

func (a *AssistantService) Busy() bool   { return a.task.Busy() }
func (a *AssistantService) Cancel() bool { return a.task.Cancel() }

func (a *AssistantService) append(ctx context.Context, m models.ChatMessage) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.msgs = append(a.msgs, m)
	a.log.Save(ctx, slices.Clone(a.msgs))
}

// Send posts text to the conversational assistant and returns its reply.
// The question is saved before the call; failures become the reply. An
// expired session is also returned as an error.
func (a *AssistantService) Send(ctx context.Context, text string) (models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, ErrEmptyText
	}

	var reply models.ChatMessage
	err := a.task.Run(ctx, func(ctx context.Context) error {
		a.append(ctx, models.ChatMessage{Text: text, Sender: models.SenderUser, Timestamp: a.now()})

		answer := MsgAssistantEmpty
		res, err := a.client.Converse(ctx, text)
		switch {
		case err != nil:
			a.logger.Warn(ctx, "assistant call failed", "err", err)
			answer = errorText(err, MsgAssistantFailed)
		case res != nil && res.Success && res.Reply != "":
			answer = res.Reply
		}

		reply = models.ChatMessage{Text: answer, Sender: models.SenderAssistant, Timestamp: a.now()}
		a.append(context.WithoutCancel(ctx), reply)
		return rejected("converse", err)
	})
	return reply, err
}

// Ask sends a one-off question and returns the plain-text answer. Nothing
// is saved.
func (a *AssistantService) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyText
	}
	var answer string
	err := a.task.Run(ctx, func(ctx context.Context) error {
		var err error
		answer, err = a.client.AskQuestion(ctx, question)
		if err != nil {
			return fmt.Errorf("ask error: %w", err)
		}
		return nil
	})
	return answer, err
}

// Reset replaces the conversation with the greeting.
func (a *AssistantService) Reset(ctx context.Context) []models.ChatMessage {
	msgs := a.log.Reset(ctx)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.msgs = msgs
	return slices.Clone(a.msgs)
}
