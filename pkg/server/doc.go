// Package server exposes the emulated stores over HTTP.
//
// The surface is a plain JSON API, not a byte-for-byte clone of any
// provider protocol: client code under test points its endpoint at
// cloudstub and exercises list/append/query semantics, including
// pagination tokens and the log store's ingestion-delay behavior. The
// tenant scope is resolved per request from headers; everything else is
// delegated to the stores.
package server
