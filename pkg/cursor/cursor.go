package cursor

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrInvalidToken is returned when a token is unknown or was already
// consumed. Callers must not retry; the only recovery is to restart the
// listing from the beginning.
var ErrInvalidToken = errors.New("invalid pagination token")

// Registry issues single-use opaque tokens that map back to offsets into
// an ordered sequence. Every paginated operation in cloudstub shares one
// registry, so a token minted by one listing cannot be confused with a
// fresh offset by another.
type Registry struct {
	mu      sync.Mutex
	offsets map[string]int
}

// NewRegistry creates an empty token registry.
func NewRegistry() *Registry {
	return &Registry{offsets: make(map[string]int)}
}

// Issue registers offset under a fresh opaque token and returns the token.
func (r *Registry) Issue(offset int) string {
	token := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offsets[token] = offset
	return token
}

// Consume resolves token to its offset and invalidates it. Resolution and
// deletion happen under one lock, so when two callers race on the same
// token exactly one of them succeeds and the other gets ErrInvalidToken.
func (r *Registry) Consume(token string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offset, ok := r.offsets[token]
	if !ok {
		return 0, ErrInvalidToken
	}
	delete(r.offsets, token)
	return offset, nil
}

// Pending reports how many issued tokens have not been consumed yet.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.offsets)
}
