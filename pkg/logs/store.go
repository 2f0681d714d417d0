package logs

import (
	"sync"
	"time"

	"github.com/cloudstub/cloudstub/pkg/cursor"
	"github.com/cloudstub/cloudstub/pkg/tenant"
)

// DefaultIngestionDelay mirrors the lag a real ingestion pipeline shows
// between accepting an event and reflecting it in stream metadata.
const DefaultIngestionDelay = time.Hour

// Scope aliases tenant.Scope. All store state is namespaced under it and
// never merged across scopes.
type Scope = tenant.Scope

// Store holds log groups, streams and events per tenant scope and
// answers the paginated list/query operations of the emulated API.
//
// One mutex guards all state. Interleaved appends and reads on the same
// stream therefore never observe a torn intermediate (events re-sorted
// but metadata not yet updated). This is a test double; per-tenant
// locking would buy nothing worth the complexity.
type Store struct {
	mu      sync.Mutex
	tenants map[Scope]*tenantState

	cursors *cursor.Registry
	delay   time.Duration
	now     func() time.Time
}

// tenantState is everything one scope owns. streams doubles as the
// known-group set: populating a group with an empty stream batch still
// creates its bucket, which is what distinguishes "empty group" from
// "group never created" in ListStreams.
type tenantState struct {
	groups  []Group
	streams map[string][]*streamState
}

// streamState pairs a stream's mutable metadata with its event history.
type streamState struct {
	meta   Stream
	events []Event
}

// Option configures a Store.
type Option func(*Store)

// WithIngestionDelay overrides the default one-hour visibility delay.
func WithIngestionDelay(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

// WithClock injects the time source used by the delay simulator.
// Tests use it to make visibility decisions deterministic.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty log store. The cursor registry is shared
// with the sibling stores so tokens are unique process-wide.
func NewStore(cursors *cursor.Registry, opts ...Option) *Store {
	s := &Store{
		tenants: make(map[Scope]*tenantState),
		cursors: cursors,
		delay:   DefaultIngestionDelay,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// scope returns the state for a tenant, creating it on first use.
// Callers must hold s.mu.
func (s *Store) scope(sc Scope) *tenantState {
	t, ok := s.tenants[sc]
	if !ok {
		t = &tenantState{streams: make(map[string][]*streamState)}
		s.tenants[sc] = t
	}
	return t
}

// resolveOffset turns an optional pagination token into a starting
// offset. Callers must hold s.mu.
func (s *Store) resolveOffset(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	offset, err := s.cursors.Consume(token)
	if err != nil {
		return 0, &InvalidTokenError{Token: token}
	}
	return offset, nil
}

// clampPage slices one page out of a sequence of length n, returning the
// window bounds and whether anything remains past it.
func clampPage(n, offset, limit int) (start, end int, more bool) {
	start = offset
	if start > n {
		start = n
	}
	if start < 0 {
		start = 0
	}
	end = start + limit
	if end > n {
		end = n
	}
	return start, end, end < n
}
