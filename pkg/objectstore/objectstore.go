package objectstore

import (
	"strings"
	"sync"

	"github.com/cloudstub/cloudstub/pkg/cursor"
	"github.com/cloudstub/cloudstub/pkg/tenant"
)

// DefaultListLimit matches the emulated service's page size for object
// listings.
const DefaultListLimit = 1000

// Object is one stored object's listing entry. The emulator tracks
// metadata only; object bodies are out of scope.
type Object struct {
	Key          string `json:"key" yaml:"key"`
	Size         int64  `json:"size,omitempty" yaml:"size,omitempty"`
	ETag         string `json:"etag,omitempty" yaml:"etag,omitempty"`
	LastModified int64  `json:"lastModified,omitempty" yaml:"lastModified,omitempty"`
	StorageClass string `json:"storageClass,omitempty" yaml:"storageClass,omitempty"`
}

// ListObjectsInput parameterizes Store.ListObjects.
type ListObjectsInput struct {
	Prefix    string
	NextToken string
	Limit     int // 0 means DefaultListLimit
}

// ListObjectsOutput is one page of object entries.
type ListObjectsOutput struct {
	Objects   []Object `json:"objects"`
	NextToken string   `json:"nextToken,omitempty"`
}

// Store is the flat paginated object-listing emulation. Unlike the log
// store it carries no delay model and no error taxonomy beyond invalid
// tokens: unknown scopes and buckets simply list as empty.
type Store struct {
	mu      sync.Mutex
	tenants map[tenant.Scope]map[string][]Object
	cursors *cursor.Registry
}

// New creates an empty object store sharing the given cursor registry.
func New(cursors *cursor.Registry) *Store {
	return &Store{
		tenants: make(map[tenant.Scope]map[string][]Object),
		cursors: cursors,
	}
}

// AppendObjects appends listing entries to a bucket, creating the
// bucket on first use. Ordering is append order; fixtures list keys in
// the order the real service returned them.
func (s *Store) AppendObjects(scope tenant.Scope, bucket string, objects []Object) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buckets, ok := s.tenants[scope]
	if !ok {
		buckets = make(map[string][]Object)
		s.tenants[scope] = buckets
	}
	buckets[bucket] = append(buckets[bucket], objects...)
}

// ListObjects returns one page of a bucket's entries, optionally
// filtered by key prefix before pagination.
func (s *Store) ListObjects(scope tenant.Scope, bucket string, in ListObjectsInput) (*ListObjectsOutput, error) {
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

	var objects []Object
	if buckets, ok := s.tenants[scope]; ok {
		for _, o := range buckets[bucket] {
			if in.Prefix != "" && !strings.HasPrefix(o.Key, in.Prefix) {
				continue
			}
			objects = append(objects, o)
		}
	}

	if offset > len(objects) {
		offset = len(objects)
	}
	end := offset + limit
	if end > len(objects) {
		end = len(objects)
	}

	out := &ListObjectsOutput{Objects: append([]Object(nil), objects[offset:end]...)}
	if end < len(objects) {
		out.NextToken = s.cursors.Issue(end)
	}
	return out, nil
}
