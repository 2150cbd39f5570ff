// Package store provides SQLite-backed persistence for e-graph snapshots.
//
// Snapshots are stored as wire-encoded blobs keyed by a UUIDv7 id, with a
// client-supplied name, the graph's content fingerprint, and the class
// count at save time. A monotonic created_seq counter orders rows -
// logical clocks only, never wall-clock timestamps, so listing order is
// deterministic across machines.
//
// Database configuration:
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
package store
