package functions

import (
	"sync"

	"github.com/cloudstub/cloudstub/pkg/cursor"
	"github.com/cloudstub/cloudstub/pkg/tenant"
)

// DefaultListLimit is the page size when callers pass no limit.
const DefaultListLimit = 50

// Function is one serverless function's listing entry.
type Function struct {
	Name         string `json:"functionName" yaml:"name"`
	ARN          string `json:"functionArn,omitempty" yaml:"arn,omitempty"`
	Runtime      string `json:"runtime,omitempty" yaml:"runtime,omitempty"`
	Handler      string `json:"handler,omitempty" yaml:"handler,omitempty"`
	MemorySize   int    `json:"memorySize,omitempty" yaml:"memorySize,omitempty"`
	Timeout      int    `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	CodeSize     int64  `json:"codeSize,omitempty" yaml:"codeSize,omitempty"`
	LastModified string `json:"lastModified,omitempty" yaml:"lastModified,omitempty"`
}

// ListInput parameterizes Store.List.
type ListInput struct {
	NextToken string
	Limit     int // 0 means DefaultListLimit
}

// ListOutput is one page of function entries.
type ListOutput struct {
	Functions []Function `json:"functions"`
	NextToken string     `json:"nextToken,omitempty"`
}

// Store is the flat function-listing emulation: an ordered list per
// tenant with cursor pagination and nothing else.
type Store struct {
	mu      sync.Mutex
	tenants map[tenant.Scope][]Function
	cursors *cursor.Registry
}

// New creates an empty function store sharing the given cursor registry.
func New(cursors *cursor.Registry) *Store {
	return &Store{
		tenants: make(map[tenant.Scope][]Function),
		cursors: cursors,
	}
}

// Append adds functions to the scope's ordered list.
func (s *Store) Append(scope tenant.Scope, fns []Function) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants[scope] = append(s.tenants[scope], fns...)
}

// List returns one page of the scope's functions. Unknown scopes list
// as empty.
func (s *Store) List(scope tenant.Scope, in ListInput) (*ListOutput, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	offset := 0
	if in.NextToken != "" {
		var err error
		if offset, err = s.cursors.Consume(in.NextToken); err != nil {
			return nil, err
		}
	}

	fns := s.tenants[scope]
	if offset > len(fns) {
		offset = len(fns)
	}
	end := offset + limit
	if end > len(fns) {
		end = len(fns)
	}

	out := &ListOutput{Functions: append([]Function(nil), fns[offset:end]...)}
	if end < len(fns) {
		out.NextToken = s.cursors.Issue(end)
	}
	return out, nil
}
