package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nutritrack/internal/client/models"
)

const timeLayout = "15:04"

func (a *App) printMessage(m models.ChatMessage) {
	who := "you"
	if m.Sender == models.SenderAssistant {
		who = "nutritrack"
	}
	ts := ""
	if !m.Timestamp.IsZero() {
		ts = "[" + m.Timestamp.Local().Format(timeLayout) + "] "
	}
	a.printf("%s%s: %s\n", ts, who, m.Text)
	if m.Editable && m.MealRecordID != "" {
		a.printf("  (meal %s: 'edit %s' or 'delmeal %s')\n", m.MealRecordID, m.MealRecordID, m.MealRecordID)
	}
}

func (a *App) printTranscript(msgs []models.ChatMessage) {
	for _, m := range msgs {
		a.printMessage(m)
	}
}

// Say sends a meal description to the chat. While a meal is being edited the
// text revises that meal instead.
func (a *App) Say(ctx context.Context, text string) error {
	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	reply, err := a.session.Chat.Submit(rctx, text)
	if reply.Text != "" {
		a.printMessage(reply)
	}
	return a.check(ctx, err)
}

// Edit starts editing a meal logged in today's chat.
func (a *App) Edit(ctx context.Context, mealID string) error {
	if err := a.session.Chat.BeginEdit(mealID); err != nil {
		return err
	}
	a.printf("Editing meal %s. Use 'say <new description>' to update it or 'cancel' to stop.\n", mealID)
	return nil
}

func (a *App) CancelEdit(ctx context.Context) error {
	if _, ok := a.session.Chat.Editing(); !ok {
		a.println("Nothing is being edited")
		return nil
	}
	a.session.Chat.CancelEdit()
	a.println("Edit cancelled")
	return nil
}

func (a *App) DeleteMeal(ctx context.Context, mealID string) error {
	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	reply, err := a.session.Chat.DeleteMeal(rctx, mealID)
	if reply.Text != "" {
		a.printMessage(reply)
	}
	return a.check(ctx, err)
}

// Chat prints today's transcript.
func (a *App) Chat(ctx context.Context) error {
	a.printTranscript(a.session.Chat.Transcript())
	return nil
}

// Clear starts a new conversation for today.
func (a *App) Clear(ctx context.Context) error {
	a.printTranscript(a.session.Chat.Clear(ctx))
	return nil
}

// Days lists the saved daily chats, most recent first.
func (a *App) Days(ctx context.Context) error {
	days := a.session.Chat.Days(ctx)
	if len(days) == 0 {
		a.println("No saved chats")
		return nil
	}
	for _, d := range days {
		a.printf("%s  %-10s %d messages\n", d.Date, a.session.Chat.DayLabel(d.Date), len(d.Messages))
	}
	return nil
}

// ShowDay prints the saved chat of one day without switching to it.
func (a *App) ShowDay(ctx context.Context, date string) error {
	log, err := a.session.Chat.Day(ctx, date)
	if err != nil {
		return err
	}
	a.printf("%s\n%s\n", a.session.Chat.DayLabel(log.Date), strings.Repeat("-", 10))
	a.printTranscript(log.Messages)
	return nil
}

func (a *App) DeleteDay(ctx context.Context, date string) error {
	if err := a.session.Chat.DeleteDay(ctx, date); err != nil {
		return err
	}
	a.println(fmt.Sprintf("Chat of %s deleted", date))
	return nil
}
