// Package cursor implements the single-use pagination token registry
// shared by all cloudstub stores.
//
// A token is an opaque UUID mapping to an offset into whatever ordered
// sequence the issuing operation was walking. Tokens are consumed exactly
// once: presenting a token deletes it, and presenting it again (or
// presenting a token the registry never issued) fails with
// ErrInvalidToken. Tokens never expire on their own — consumption is the
// only way a token leaves the registry.
package cursor
