package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Dashboard(ctx context.Context) error

	Say(ctx context.Context, text string) error
	Chat(ctx context.Context) error
	Edit(ctx context.Context, mealID string) error
	CancelEdit(ctx context.Context) error
	DeleteMeal(ctx context.Context, mealID string) error
	Clear(ctx context.Context) error
	Days(ctx context.Context) error
	ShowDay(ctx context.Context, date string) error
	DeleteDay(ctx context.Context, date string) error

	History(ctx context.Context) error
	Expand(ctx context.Context, n int) error
	Rename(ctx context.Context, mealID, name string) error
	Remove(ctx context.Context, mealID string) error

	AI(ctx context.Context, text string) error
	AIChat(ctx context.Context) error
	Ask(ctx context.Context, question string) error
	AIReset(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = `Available commands:
  dashboard                 today's progress
  say <meal>                log a meal (or revise the meal being edited)
  chat                      show today's chat
  edit <meal-id>            edit a meal from today's chat
  cancel                    stop editing
  delmeal <meal-id>         delete a meal from today's chat
  clear                     start a new conversation
  days                      list saved chats
  showday <YYYY-MM-DD>      show the chat of a day
  delday <YYYY-MM-DD>       delete the chat of a day
  history                   meals grouped by day
  expand <n>                open or close day n of the history
  rename <meal-id> <name>   rename a meal
  remove <meal-id>          delete a meal from the history
  ai <text>                 talk to the nutrition assistant
  aichat                    show the assistant conversation
  ask <question>            one-off question, not saved
  aireset                   restart the assistant conversation
  profile | editprofile     show or change your profile
  logout | exit`
)

// runREPL starts a simple read–eval–print loop for the NutriTrack CLI.
//
// It reads a line from reader, parses the first token as the
// command and passes the rest of the line as its argument. Commands that
// need a session are refused until the user logs in. The loop exits on
// EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop goes on.
// Prompts issued by the handlers read from the same reader, so reader must
// be the one the App was built with.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("nt %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "register":
			report(a.Register(ctx))
			continue
		case "login":
			report(a.Login(ctx))
			continue
		}

		if !a.isLoggedIn() {
			if _, known := sessionCommands[cmd]; known {
				printlnFn("Please login first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		if usage, ok := sessionCommands[cmd]; ok && usage != "" && arg == "" {
			printlnFn("Usage:", usage)
			continue
		}

		switch cmd {
		case "logout":
			report(a.Logout(ctx))
		case "profile":
			report(a.Profile(ctx))
		case "editprofile":
			report(a.EditProfile(ctx))
		case "dashboard":
			report(a.Dashboard(ctx))
		case "say":
			report(a.Say(ctx, arg))
		case "chat":
			report(a.Chat(ctx))
		case "edit":
			report(a.Edit(ctx, arg))
		case "cancel":
			report(a.CancelEdit(ctx))
		case "delmeal":
			report(a.DeleteMeal(ctx, arg))
		case "clear":
			report(a.Clear(ctx))
		case "days":
			report(a.Days(ctx))
		case "showday":
			report(a.ShowDay(ctx, arg))
		case "delday":
			report(a.DeleteDay(ctx, arg))
		case "history":
			report(a.History(ctx))
		case "expand":
			n, err := strconv.Atoi(arg)
			if err != nil {
				printlnFn("Usage:", sessionCommands[cmd])
				continue
			}
			report(a.Expand(ctx, n))
		case "rename":
			id, name, _ := strings.Cut(arg, " ")
			if strings.TrimSpace(name) == "" {
				printlnFn("Usage:", sessionCommands[cmd])
				continue
			}
			report(a.Rename(ctx, id, strings.TrimSpace(name)))
		case "remove":
			report(a.Remove(ctx, arg))
		case "ai":
			report(a.AI(ctx, arg))
		case "aichat":
			report(a.AIChat(ctx))
		case "ask":
			report(a.Ask(ctx, arg))
		case "aireset":
			report(a.AIReset(ctx))
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// sessionCommands maps the commands that need a login to their usage line,
// empty for commands without an argument.
var sessionCommands = map[string]string{
	"logout":      "",
	"profile":     "",
	"editprofile": "",
	"dashboard":   "",
	"say":         "say <meal description>",
	"chat":        "",
	"edit":        "edit <meal-id>",
	"cancel":      "",
	"delmeal":     "delmeal <meal-id>",
	"clear":       "",
	"days":        "",
	"showday":     "showday <YYYY-MM-DD>",
	"delday":      "delday <YYYY-MM-DD>",
	"history":     "",
	"expand":      "expand <n>",
	"rename":      "rename <meal-id> <new name>",
	"remove":      "remove <meal-id>",
	"ai":          "ai <message>",
	"aichat":      "",
	"ask":         "ask <question>",
	"aireset":     "",
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", err)
	}
}
