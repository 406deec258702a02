// Package kv is the client's persistent key-value store.
//
// Values are opaque byte blobs addressed by (namespace, key). A Repository is
// bound to one namespace: the empty namespace holds session-wide keys such as
// the bearer token, and each signed-in user gets their own namespace for chat
// transcripts so accounts sharing a machine never see each other's data.
//
// SQLiteRepository works over a dbx.DBTX, so the same code runs against
// *sql.DB or inside a transaction started with dbx.WithTx.
package kv
