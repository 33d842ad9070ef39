// Package store provides the persistence layer for todo lists.
// It defines the Store interface consumed by the web layer and two implementations:
// SessionStore keeps lists in per-session memory, SQLStore keeps them in SQLite.
// Both return owned copies, so callers can never alias the stored state.
package store
