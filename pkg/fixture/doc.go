// Package fixture loads captured service state into the emulator.
//
// A fixture file is a YAML or JSON snapshot of one tenant's log groups,
// streams, events, buckets and functions, typically produced by
// snapshotting a real account. The Importer replays snapshots through
// the same append operations clients use, so fixture data obeys every
// store invariant — including the ingestion-delay bootstrap, which is
// why freshly loaded streams read with deterministic metadata.
package fixture
