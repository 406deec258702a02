// Package models defines the client-side data model of NutriTrack: chat
// transcripts kept on this machine, meal records owned by the backend and
// the derived per-day history view.
package models

import "time"

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ChatMessage is one bubble of a transcript. Messages are immutable once
// appended.
type ChatMessage struct {
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	// MealRecordID links an assistant reply to the meal it summarizes.
	MealRecordID string `json:"mealRecordId,omitempty"`
	// Editable marks replies the user may edit or delete through the chat.
	Editable bool `json:"editable,omitempty"`
}

// IsMealReply reports whether m is the assistant summary of meal id.
func (m ChatMessage) IsMealReply(id string) bool {
	return m.Sender == SenderAssistant && id != "" && m.MealRecordID == id
}

// DailyChatLog is the transcript of one calendar day.
type DailyChatLog struct {
	Date     string        `json:"date"`
	Messages []ChatMessage `json:"messages"`
}

// AssistantReply is the answer of the general-purpose nutrition assistant.
type AssistantReply struct {
	Success bool   `json:"sucesso"`
	Reply   string `json:"resposta"`
}
