// Package store persists the chart library backed by SQLite: one row per
// chart descriptor with set membership and the serialized chart payload. A
// file lock beside the database enforces a single writing process.
//
// The store is the authoritative source of descriptors handed to working
// units; the raw source format version discovered during parsing is written
// back here after a load completes.
package store
