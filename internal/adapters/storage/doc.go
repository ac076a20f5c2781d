// Package storage implements ports.KeyValueStore.
//
// Three drivers exist: MemoryStore keeps slots in a map and backs the
// per-process session store; FileStore keeps every slot in one JSON object
// file; SQLiteStore keeps slots in a migrated SQLite table.
package storage
