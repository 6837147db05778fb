// Package database provides the SQLite-backed wordlist store.
//
// The store accumulates finished wordlists across runs so they can be
// merged and exported later (scuwl export). Only completed results are
// persisted; in-progress crawl state never touches the database.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
//  1. No external dependencies - the store is a single file
//  2. CGO-free implementation allows easy cross-compilation
//  3. SELECT DISTINCT over an indexed word column makes cross-crawl
//     merging a one-line query
package database
