// Package logs is the in-memory log store and query engine at the heart
// of cloudstub.
//
// It holds log groups, log streams and log events per tenant scope,
// answers the paginated list and describe operations of the emulated
// ingestion API, and simulates the visibility delay a real pipeline
// shows between an event being appended and that event surfacing in
// stream metadata.
//
// # Visibility delay
//
// A stream's LastEventTimestamp does not track the newest ingested
// event. After the first batch bootstraps it, the mark only advances to
// timestamps that have aged past the configured ingestion delay
// (relative to both the wall clock and the stream's last ingestion
// time), and it only moves when the next append happens — there are no
// background timers. Client code polling stream metadata must tolerate
// this lag even though QueryEvents already returns the newer events;
// that mismatch is exactly what production behaves like and what this
// emulator exists to reproduce.
//
// # Consistency
//
// Event lists are kept sorted ascending by timestamp. A stream's
// FirstEventTimestamp is fixed by the first non-empty batch ever
// ingested; any later batch whose oldest timestamp differs is rejected
// with a ConsistencyError. Batches for unknown streams, empty batches
// and events without a message are caller bugs and panic.
package logs
