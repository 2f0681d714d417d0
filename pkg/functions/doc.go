// Package functions emulates the serverless-function listing API, the
// simplest of the sibling emulations: an ordered per-tenant list with
// cursor pagination.
package functions
