// Package filter compiles event filter expressions for QueryEvents.
//
// Expressions use the expr language over the fields of a single log
// event (timestamp, message, ingestionTime) and are compiled once per
// query, then applied before pagination. The core store knows nothing
// about the expression language; it only receives the compiled
// predicate.
package filter
