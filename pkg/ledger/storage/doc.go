// Package storage provides ledger storage backends.
//
// # Backends
//
//   - SQLiteStorage: embedded SQLite database (WAL mode, busy
//     timeout). Suited to large usage histories.
//   - JSONLStorage: append-only file with one JSON record per line.
//     Human-inspectable, and the default backend.
//   - MemoryStorage: in-memory slice, for tests.
//
// # Durability
//
// Append is synchronous on every backend: the record is durable before
// the call returns. JSONLStorage syncs the file after each line; SQLite
// commits each insert.
//
// # First Run
//
// A missing data directory or store file is not an error. Backends
// create state lazily and a corrupt store at open time degrades to an
// empty ledger (the corrupt file is set aside, not silently
// overwritten) so previously persisted data is never destroyed.
package storage
