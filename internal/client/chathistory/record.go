package chathistory

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/dmitrijs2005/nutritrack/internal/timex"
)

const (
	keyPrefix = "chatHistory_"
	indexKey  = "chatHistoryIndex"

	// SchemaVersion is written into every stored record. Records without a
	// version predate it and are migrated on read.
	SchemaVersion = 1
)

var (
	ErrInvalidDate = errors.New("invalid calendar date")
	// ErrMalformedLog means a stored record exists but cannot be used. It is
	// distinct from absence, which is reported as (nil, nil).
	ErrMalformedLog = errors.New("malformed chat log")
)

// Key derives the storage key of a date's transcript. The mapping is pure
// and injective over valid YYYY-MM-DD dates; anything else is rejected so
// that no two inputs can share a key.
func Key(date string) (string, error) {
	if !timex.IsDateKey(date) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return keyPrefix + date, nil
}

type dayRecord struct {
	Version  *int                 `json:"v,omitempty"`
	Date     string               `json:"date"`
	Messages []models.ChatMessage `json:"messages"`
}

// Encode serializes a transcript in the current schema version.
func Encode(log models.DailyChatLog) ([]byte, error) {
	if !timex.IsDateKey(log.Date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, log.Date)
	}
	v := SchemaVersion
	msgs := log.Messages
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	return json.Marshal(dayRecord{Version: &v, Date: log.Date, Messages: msgs})
}

// Decode parses a stored transcript. Unversioned records are accepted as
// the legacy layout; unknown versions, bad dates and unknown senders are
// reported as ErrMalformedLog.
func Decode(b []byte) (*models.DailyChatLog, error) {
	var rec dayRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLog, err)
	}
	if rec.Version != nil && *rec.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: unsupported schema version %d", ErrMalformedLog, *rec.Version)
	}
	if !timex.IsDateKey(rec.Date) {
		return nil, fmt.Errorf("%w: bad date %q", ErrMalformedLog, rec.Date)
	}
	if err := checkMessages(rec.Messages); err != nil {
		return nil, err
	}
	if rec.Messages == nil {
		rec.Messages = []models.ChatMessage{}
	}
	return &models.DailyChatLog{Date: rec.Date, Messages: rec.Messages}, nil
}

func checkMessages(msgs []models.ChatMessage) error {
	for i, m := range msgs {
		if m.Sender != models.SenderUser && m.Sender != models.SenderAssistant {
			return fmt.Errorf("%w: message %d has unknown sender %q", ErrMalformedLog, i, m.Sender)
		}
	}
	return nil
}

func encodeIndex(dates []string) ([]byte, error) {
	if dates == nil {
		dates = []string{}
	}
	return json.Marshal(dates)
}

func decodeIndex(b []byte) ([]string, error) {
	if b == nil {
		return nil, nil
	}
	var dates []string
	if err := json.Unmarshal(b, &dates); err != nil {
		return nil, fmt.Errorf("%w: index: %v", ErrMalformedLog, err)
	}
	return dates, nil
}
