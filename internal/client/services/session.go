package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/client/chathistory"
	"github.com/dmitrijs2005/nutritrack/internal/client/client"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
)

// Session bundles the services bound to the signed-in user. It is built
// after login, once the storage namespace is known, and dropped on logout.
type Session struct {
	Namespace string

	Chat      *ChatService
	Assistant *AssistantService
	History   *HistoryService
	Dashboard *DashboardService
}

func NewSession(ctx context.Context, db *sql.DB, api client.Client, auth AuthService, meals MealService,
	timeout time.Duration, logger logging.Logger) *Session {
	ns := auth.UserNamespace(ctx)
	logger = logger.With("namespace", ns)

	return &Session{
		Namespace: ns,
		Chat:      NewChatService(chathistory.NewStore(db, ns, logger), meals, timeout, logger),
		Assistant: NewAssistantService(chathistory.NewAssistantLog(db, ns, logger), api, timeout, logger),
		History:   NewHistoryService(meals, logger),
		Dashboard: NewDashboardService(auth, meals, logger),
	}
}
