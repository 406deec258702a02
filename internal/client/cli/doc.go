// Package cli provides the interactive NutriTrack command-line client.
//
// It wires configuration, the local SQLite store, the backend API client and
// an interactive REPL. A saved login is resumed at start; otherwise the user
// registers or logs in first.
//
// Key features:
//   - Register / Login / Logout, profile view and editing
//   - Dashboard with today's progress against the daily goals
//   - Meal chat: log, edit and delete meals in free text; browse and delete
//     the chats of previous days
//   - Meal history grouped by day, with rename and delete
//   - Nutrition assistant conversation and one-off questions
//
// Backend calls are bounded by the configured request timeout; Ctrl+C while
// one runs cancels it. The REPL is started via App.Run(ctx), which blocks
// until the user exits. See App and runREPL for details.
package cli
