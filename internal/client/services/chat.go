package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/client/chathistory"
	"github.com/dmitrijs2005/nutritrack/internal/client/client"
	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
)

// Chat copy shown to the user.
const (
	MsgCreateFailed   = "Sorry, something went wrong while processing your meal. Please try again."
	MsgUpdateFailed   = "Sorry, something went wrong while updating your meal. Please try again."
	MsgDeleteFailed   = "Sorry, something went wrong while deleting your meal. Please try again."
	MsgNotProcessed   = "The meal could not be processed."
	MsgNotUpdated     = "The meal could not be updated."
	MsgMealDeleted    = "Meal deleted."
	MsgCancelled      = "Request cancelled."
	editingPrefix     = "Editing: "
	mealUpdatedHeader = "Meal updated!"
)

var (
	ErrNoSuchMeal = errors.New("no editable reply for that meal in today's chat")
	ErrNoSuchDay  = errors.New("no saved chat for that day")
)

// ChatService drives the meal chat: each submitted text becomes a meal on
// the backend and an assistant summary in today's transcript. It also owns
// the editing state of the chat input.
type ChatService struct {
	store  *chathistory.Store
	meals  MealService
	task   *Task
	logger logging.Logger
	now    func() time.Time

	mu      sync.Mutex
	editing *models.ChatMessage
}

func NewChatService(store *chathistory.Store, meals MealService, timeout time.Duration, logger logging.Logger) *ChatService {
	return &ChatService{
		store:  store,
		meals:  meals,
		task:   NewTask(timeout),
		logger: logger.With("component", "chat"),
		now:    time.Now,
	}
}

// Open loads today's transcript, greeting the user on a fresh day.
func (c *ChatService) Open(ctx context.Context) []models.ChatMessage {
	return c.store.Open(ctx)
}

func (c *ChatService) Transcript() []models.ChatMessage {
	return c.store.Transcript()
}

func (c *ChatService) Busy() bool   { return c.task.Busy() }
func (c *ChatService) Cancel() bool { return c.task.Cancel() }

func (c *ChatService) message(text string, sender models.Sender) models.ChatMessage {
	return models.ChatMessage{Text: text, Sender: sender, Timestamp: c.now()}
}

func errorText(err error, fallback string) string {
	if errors.Is(err, context.Canceled) {
		return MsgCancelled
	}
	return client.UserMessage(err, fallback)
}

// rejected passes on an authorization failure so the caller can end the
// session. Other failures live only in the reply.
func rejected(op string, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		return fmt.Errorf("%s error: %w", op, err)
	}
	return nil
}

// Submit sends text to the backend as a meal description, or as the new
// description of the meal being edited. The user message is saved before
// the call and the reply after it, even when the call was cancelled or timed
// out. Network failures become the returned reply. The error is reserved for
// rejected submissions and for an expired session, which also gets a reply.
func (c *ChatService) Submit(ctx context.Context, text string) (models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, ErrEmptyText
	}
	if target, ok := c.Editing(); ok {
		return c.edit(ctx, target.MealRecordID, text)
	}

	var reply models.ChatMessage
	err := c.task.Run(ctx, func(ctx context.Context) error {
		c.store.Append(ctx, c.message(text, models.SenderUser))

		res, err := c.meals.Create(ctx, text, "")
		reply = c.mealReply(err, res, "", MsgCreateFailed, MsgNotProcessed)

		c.store.Append(context.WithoutCancel(ctx), reply)
		return rejected("create meal", err)
	})
	return reply, err
}

func (c *ChatService) mealReply(err error, res *models.MealResult, header, failed, rejected string) models.ChatMessage {
	switch {
	case err != nil:
		return c.message(errorText(err, failed), models.SenderAssistant)
	case res == nil || !res.Success || res.Meal == nil:
		text := ""
		if res != nil {
			text = res.Message
		}
		if text == "" {
			text = rejected
		}
		return c.message(text, models.SenderAssistant)
	}

	text := FormatMealReply(*res.Meal)
	if header != "" {
		text = header + "\n\n" + text
	}
	reply := c.message(text, models.SenderAssistant)
	reply.MealRecordID = res.Meal.ID
	reply.Editable = true
	return reply
}

func (c *ChatService) edit(ctx context.Context, mealID, text string) (models.ChatMessage, error) {
	var reply models.ChatMessage
	err := c.task.Run(ctx, func(ctx context.Context) error {
		c.store.Append(ctx, c.message(editingPrefix+text, models.SenderUser))

		res, err := c.meals.Update(ctx, mealID, text, "")
		reply = c.mealReply(err, res, mealUpdatedHeader, MsgUpdateFailed, MsgNotUpdated)

		c.CancelEdit()
		c.store.Append(context.WithoutCancel(ctx), reply)
		return rejected("update meal", err)
	})
	return reply, err
}

// BeginEdit targets the editable reply of mealID in today's transcript. The
// next Submit revises that meal.
func (c *ChatService) BeginEdit(mealID string) error {
	if mealID == "" {
		return ErrEmptyID
	}
	tr := c.store.Transcript()
	for i := len(tr) - 1; i >= 0; i-- {
		if tr[i].Editable && tr[i].IsMealReply(mealID) {
			c.mu.Lock()
			target := tr[i]
			c.editing = &target
			c.mu.Unlock()
			return nil
		}
	}
	return ErrNoSuchMeal
}

func (c *ChatService) CancelEdit() {
	c.mu.Lock()
	c.editing = nil
	c.mu.Unlock()
}

// Editing returns the reply being edited.
func (c *ChatService) Editing() (models.ChatMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return models.ChatMessage{}, false
	}
	return *c.editing, true
}

// DeleteMeal deletes the meal on the backend. On success its replies leave
// the transcript and a confirmation is appended; on failure the error is
// appended instead.
func (c *ChatService) DeleteMeal(ctx context.Context, mealID string) (models.ChatMessage, error) {
	if mealID == "" {
		return models.ChatMessage{}, ErrEmptyID
	}

	var reply models.ChatMessage
	err := c.task.Run(ctx, func(ctx context.Context) error {
		if err := c.meals.Delete(ctx, mealID); err != nil {
			reply = c.message(errorText(err, MsgDeleteFailed), models.SenderAssistant)
			c.store.Append(context.WithoutCancel(ctx), reply)
			return rejected("delete meal", err)
		}

		if target, ok := c.Editing(); ok && target.MealRecordID == mealID {
			c.CancelEdit()
		}
		reply = c.message(MsgMealDeleted, models.SenderAssistant)
		removed := c.store.RemoveMealReplies(context.WithoutCancel(ctx), mealID, reply)
		c.logger.Debug(ctx, "meal deleted", "meal_id", mealID, "replies_removed", removed)
		return nil
	})
	return reply, err
}

// Clear starts a new conversation for today.
func (c *ChatService) Clear(ctx context.Context) []models.ChatMessage {
	c.CancelEdit()
	return c.store.StartNewConversation(ctx)
}

// Days lists the saved transcripts, most recent first.
func (c *ChatService) Days(ctx context.Context) []models.DailyChatLog {
	return c.store.ListDays(ctx)
}

// Day returns the saved transcript of date without touching the current
// conversation.
func (c *ChatService) Day(ctx context.Context, date string) (*models.DailyChatLog, error) {
	if _, err := chathistory.Key(date); err != nil {
		return nil, err
	}
	log := c.store.LoadDay(ctx, date)
	if log == nil {
		return nil, ErrNoSuchDay
	}
	return log, nil
}

// DeleteDay removes the transcript of date. Deleting today also drops any
// pending edit, since its target is gone.
func (c *ChatService) DeleteDay(ctx context.Context, date string) error {
	if _, err := chathistory.Key(date); err != nil {
		return err
	}
	if date == c.store.Today() {
		c.CancelEdit()
	}
	c.store.DeleteDay(ctx, date)
	return nil
}

func (c *ChatService) DayLabel(date string) string {
	return c.store.DayLabel(date)
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// FormatMealReply renders the assistant summary of a logged meal.
func FormatMealReply(m models.MealRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Meal %q logged!\n\n", m.DisplayName)

	b.WriteString("Foods:\n")
	for _, f := range m.Foods {
		fmt.Fprintf(&b, "• %s - %s%s\n", f.Description, formatQuantity(f.Quantity), f.Unit)
	}

	b.WriteString("\nTotals for this meal:\n")
	fmt.Fprintf(&b, "• Calories: %.0f kcal\n", m.TotalCalories)
	fmt.Fprintf(&b, "• Protein: %.1fg\n", m.TotalProtein)
	fmt.Fprintf(&b, "• Carbs: %.1fg\n", m.TotalCarbs)
	fmt.Fprintf(&b, "• Fat: %.1fg", m.TotalFat)
	return b.String()
}
