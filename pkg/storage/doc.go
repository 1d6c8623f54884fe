// Package storage provides the text storage collaborators for the
// registration engine.
//
// The engine treats a configuration list as an opaque text resource read in
// full at the start of every operation and written back in full at the end of
// a successful mutation. Store is the contract for that resource; FileStore
// is the on-disk implementation and MemStore the in-memory one used by tests.
package storage
