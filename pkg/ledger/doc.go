// Package ledger defines the append-only usage ledger for TokenWatch.
//
// # Usage Records
//
// Each record captures one completed API call: model, provider, token
// counts, and the USD cost computed at record time. Records are
// immutable once appended; the ledger is an audit trail, so nothing is
// ever mutated or deleted.
//
// # Storage Backends
//
// Persistence is abstracted behind the Storage interface. The
// ledger/storage subpackage provides three implementations:
//
//   - SQLite (mattn/go-sqlite3, WAL mode) for larger histories
//   - JSONL (one record per line, human-inspectable), the default
//   - Memory for tests
//
// A missing or corrupt store at open time degrades to an empty ledger
// so the tool is usable on first run; I/O failures after that surface
// as *StorageError.
//
// # Time Windows
//
// Queries filter by half-open [Start, End) windows resolved from a
// period name by Resolve:
//
//   - "today": the current calendar day, local time
//   - "week": the rolling 7 days ending now
//   - "month": the current calendar month, local time
//   - "all": the full ledger
//   - "YYYY-MM-DD": one explicit calendar day, local time
//
// # Ordering
//
// Query results are ordered by timestamp, with ties broken by append
// order, so repeated queries over unchanged data return identical
// results.
package ledger
