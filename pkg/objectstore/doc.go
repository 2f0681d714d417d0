// Package objectstore emulates the object-storage listing API.
//
// It is one of the flat sibling emulations next to the log store: a
// paginated key-value lookup per tenant and bucket with prefix
// filtering, and none of the temporal behavior the log store models.
package objectstore
