// Package chathistory keeps the meal chat transcripts on this machine.
//
// Each calendar day that had a conversation owns one DailyChatLog stored in
// the kv table under "chatHistory_<YYYY-MM-DD>", and the set of such days is
// kept under "chatHistoryIndex". Both live in the signed-in user's namespace.
// Writes update the log and the index in one transaction.
//
// Storage problems never reach the caller: reads treat unreadable data as
// absent and writes log their failures, leaving the in-memory transcript as
// the source of truth for the session.
package chathistory

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/dmitrijs2005/nutritrack/internal/client/repositories/kv"
	"github.com/dmitrijs2005/nutritrack/internal/dbx"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
	"github.com/dmitrijs2005/nutritrack/internal/timex"
)

// Greeting seeds every new conversation.
const Greeting = `Hi! I'm your NutriTrack assistant. Tell me what you ate, e.g. "lunch, 200g of rice and 150g of chicken".`

type Store struct {
	db        *sql.DB
	namespace string
	logger    logging.Logger
	now       func() time.Time
	greeting  string

	mu         sync.Mutex
	transcript []models.ChatMessage
	// day is the date the transcript is saved under.
	day string
}

type Option func(*Store)

// WithClock replaces time.Now, which decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithGreeting(text string) Option {
	return func(s *Store) { s.greeting = text }
}

// NewStore returns a store scoped to namespace. The transcript starts empty;
// call Open to load today's conversation.
func NewStore(db *sql.DB, namespace string, logger logging.Logger, opts ...Option) *Store {
	s := &Store{
		db:        db,
		namespace: namespace,
		logger:    logger.With("component", "chathistory", "namespace", namespace),
		now:       time.Now,
		greeting:  Greeting,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) repo(db dbx.DBTX) kv.Repository {
	return kv.NewSQLiteRepository(db, s.namespace)
}

// Today is the date key of the current local calendar day.
func (s *Store) Today() string {
	return timex.DateKey(s.now())
}

func (s *Store) readDay(ctx context.Context, date string) (*models.DailyChatLog, error) {
	key, err := Key(date)
	if err != nil {
		return nil, err
	}
	raw, err := s.repo(s.db).Get(ctx, key)
	if err != nil || raw == nil {
		return nil, err
	}
	log, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if log.Date != date {
		return nil, fmt.Errorf("%w: record dated %s stored under %s", ErrMalformedLog, log.Date, key)
	}
	return log, nil
}

// LoadDay returns the transcript of date, or nil when none was saved or the
// stored one cannot be read.
func (s *Store) LoadDay(ctx context.Context, date string) *models.DailyChatLog {
	log, err := s.readDay(ctx, date)
	if err != nil {
		s.logger.Warn(ctx, "chat log unreadable, treating as absent", "date", date, "err", err)
		return nil
	}
	return log
}

// SaveDay writes log and makes sure its date is indexed.
func (s *Store) SaveDay(ctx context.Context, log models.DailyChatLog) {
	if err := s.saveDay(ctx, log); err != nil {
		s.logger.Error(ctx, "failed to save chat log", "date", log.Date, "err", err)
	}
}

func (s *Store) saveDay(ctx context.Context, log models.DailyChatLog) error {
	key, err := Key(log.Date)
	if err != nil {
		return err
	}
	raw, err := Encode(log)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, key, raw); err != nil {
			return err
		}
		dates, repaired, err := s.index(ctx, repo)
		if err != nil {
			return err
		}
		if slices.Contains(dates, log.Date) {
			if !repaired {
				return nil
			}
		} else {
			dates = append(dates, log.Date)
		}
		return writeIndex(ctx, repo, dates)
	})
}

// index reads the date index. A corrupt index is rebuilt from the stored
// keys instead of being dropped; repaired reports that case so writers can
// store the rebuilt copy.
func (s *Store) index(ctx context.Context, repo kv.Repository) (dates []string, repaired bool, err error) {
	raw, err := repo.Get(ctx, indexKey)
	if err != nil {
		return nil, false, err
	}
	dates, err = decodeIndex(raw)
	if err == nil {
		return dates, false, nil
	}

	s.logger.Warn(ctx, "chat index corrupt, rebuilding from stored logs", "err", err)
	all, err := repo.List(ctx)
	if err != nil {
		return nil, false, err
	}
	dates = nil
	for key := range all {
		if date, ok := strings.CutPrefix(key, keyPrefix); ok && timex.IsDateKey(date) {
			dates = append(dates, date)
		}
	}
	slices.Sort(dates)
	return dates, true, nil
}

func writeIndex(ctx context.Context, repo kv.Repository, dates []string) error {
	raw, err := encodeIndex(dates)
	if err != nil {
		return err
	}
	return repo.Set(ctx, indexKey, raw)
}

// ListDays returns every saved transcript, most recent day first. Dates
// whose log is missing or unreadable are skipped.
func (s *Store) ListDays(ctx context.Context) []models.DailyChatLog {
	dates, _, err := s.index(ctx, s.repo(s.db))
	if err != nil {
		s.logger.Warn(ctx, "failed to read chat index", "err", err)
		return nil
	}

	slices.Sort(dates)
	dates = slices.Compact(dates)

	result := make([]models.DailyChatLog, 0, len(dates))
	for i := len(dates) - 1; i >= 0; i-- {
		if log := s.LoadDay(ctx, dates[i]); log != nil {
			result = append(result, *log)
		}
	}
	return result
}

// DeleteDay removes the transcript of date and its index entry. Deleting
// today starts a fresh conversation so the transcript is never left empty.
func (s *Store) DeleteDay(ctx context.Context, date string) {
	if err := s.deleteDay(ctx, date); err != nil {
		s.logger.Error(ctx, "failed to delete chat log", "date", date, "err", err)
	}
	if date == s.Today() {
		s.StartNewConversation(ctx)
	}
}

func (s *Store) deleteDay(ctx context.Context, date string) error {
	key, err := Key(date)
	if err != nil {
		return err
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Delete(ctx, key); err != nil {
			return err
		}
		dates, _, err := s.index(ctx, repo)
		if err != nil {
			return err
		}
		return writeIndex(ctx, repo, slices.DeleteFunc(dates, func(d string) bool { return d == date }))
	})
}

func (s *Store) greetingMessage() models.ChatMessage {
	return models.ChatMessage{Text: s.greeting, Sender: models.SenderAssistant, Timestamp: s.now()}
}

// StartNewConversation resets the transcript to the greeting and saves it as
// today's log.
func (s *Store) StartNewConversation(ctx context.Context) []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.day = s.Today()
	s.transcript = []models.ChatMessage{s.greetingMessage()}
	s.persistLocked(ctx)
	return slices.Clone(s.transcript)
}

// Open loads today's transcript, starting a new conversation when there is
// nothing to resume.
func (s *Store) Open(ctx context.Context) []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openLocked(ctx, s.Today())
	return slices.Clone(s.transcript)
}

func (s *Store) openLocked(ctx context.Context, date string) {
	s.day = date
	if log := s.LoadDay(ctx, date); log != nil && len(log.Messages) > 0 {
		s.transcript = log.Messages
		return
	}
	s.transcript = []models.ChatMessage{s.greetingMessage()}
	s.persistLocked(ctx)
}

// rollOverLocked switches the transcript to the current day once the clock
// has passed midnight, so a day's log only holds that day's messages.
func (s *Store) rollOverLocked(ctx context.Context) {
	today := s.Today()
	switch s.day {
	case today:
	case "":
		s.day = today
	default:
		s.logger.Info(ctx, "day changed, opening a new chat log", "from", s.day, "to", today)
		s.openLocked(ctx, today)
	}
}

// Transcript returns a copy of the in-memory conversation.
func (s *Store) Transcript() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transcript)
}

// Append adds messages to the transcript and saves it as today's log. The
// first append after midnight starts from the new day's log.
func (s *Store) Append(ctx context.Context, msgs ...models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollOverLocked(ctx)
	s.transcript = append(s.transcript, msgs...)
	s.persistLocked(ctx)
}

// RemoveMealReplies drops the assistant replies linked to mealID, appends
// confirmation and saves the transcript. It returns how many replies were
// removed.
func (s *Store) RemoveMealReplies(ctx context.Context, mealID string, confirmation models.ChatMessage) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollOverLocked(ctx)
	before := len(s.transcript)
	s.transcript = slices.DeleteFunc(s.transcript, func(m models.ChatMessage) bool {
		return m.IsMealReply(mealID)
	})
	removed := before - len(s.transcript)

	s.transcript = append(s.transcript, confirmation)
	s.persistLocked(ctx)
	return removed
}

func (s *Store) persistLocked(ctx context.Context) {
	s.SaveDay(ctx, models.DailyChatLog{Date: s.day, Messages: slices.Clone(s.transcript)})
}

// DayLabel renders date for the day list: "Today", "Yesterday" or
// DD/MM/YYYY.
func (s *Store) DayLabel(date string) string {
	now := s.now()
	switch date {
	case timex.DateKey(now):
		return "Today"
	case timex.DateKey(now.AddDate(0, 0, -1)):
		return "Yesterday"
	}
	t, err := time.Parse(timex.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}
