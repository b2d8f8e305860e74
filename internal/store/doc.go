// Package store is the document store orchestrator. It holds the engine,
// the material catalog, and session state (selection, navigation), and
// exposes the command surface external callers drive the editor with.
//
// Every mutating command routes through the engine and therefore through
// history; selection and navigation never create history entries. Commands
// tolerate stale ids from racing UI state by degrading to no-ops, and each
// command is logged with its outcome.
package store
