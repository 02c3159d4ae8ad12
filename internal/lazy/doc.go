// Package lazy provides a single-slot, thread-safe, recyclable cache for one
// lazily computed value. Concurrent readers observe at most one factory
// execution; recycling disposes the held value and arms recomputation on the
// next read. An optional validity predicate lets callers treat a stale value
// as absent without recycling explicitly.
package lazy
