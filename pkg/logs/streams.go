package logs

import (
	"sort"
	"strings"
)

// AppendStreams appends streams to the (scope, group) bucket. Appending
// an empty batch still marks the group as known, which ListStreams
// relies on to tell "empty group" apart from "group never created".
func (s *Store) AppendStreams(scope Scope, group string, streams []Stream) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.scope(scope)
	bucket := t.streams[group]
	for _, st := range streams {
		bucket = append(bucket, &streamState{meta: st})
	}
	t.streams[group] = bucket
}

// ListStreams returns one page of stream metadata for a group, ordered
// and filtered per in. The group must have been populated at least once
// for the scope; otherwise a NotFoundError is returned.
func (s *Store) ListStreams(scope Scope, group string, in ListStreamsInput) (*ListStreamsOutput, error) {
	if group == "" {
		return nil, &ValidationError{Field: "logGroupName", Message: "a log group name is required"}
	}

	orderBy := in.OrderBy
	if orderBy == "" {
		orderBy = OrderByName
	}
	switch orderBy {
	case OrderByName, OrderByLastEventTime:
	default:
		return nil, &ValidationError{Field: "orderBy", Message: "must be LogStreamName or LastEventTime"}
	}
	if orderBy == OrderByLastEventTime && in.Prefix != "" {
		return nil, &ValidationError{Field: "logStreamNamePrefix", Message: "cannot be combined with orderBy LastEventTime"}
	}

	limit := in.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tenants[scope]
	if !ok {
		return nil, &NotFoundError{Group: group}
	}
	bucket, ok := t.streams[group]
	if !ok {
		return nil, &NotFoundError{Group: group}
	}

	// Copy metadata out before sorting so the bucket's insertion order,
	// which the stable LastEventTime sort depends on, is never disturbed.
	streams := make([]Stream, 0, len(bucket))
	for _, st := range bucket {
		if in.Prefix != "" && !strings.HasPrefix(st.meta.Name, in.Prefix) {
			continue
		}
		streams = append(streams, st.meta)
	}

	switch orderBy {
	case OrderByName:
		// Streams missing a name sort first; empty strings already do.
		sort.SliceStable(streams, func(i, j int) bool {
			return streams[i].Name < streams[j].Name
		})
	case OrderByLastEventTime:
		sort.SliceStable(streams, func(i, j int) bool {
			return lastEventMillis(streams[i]) < lastEventMillis(streams[j])
		})
	}

	if in.Descending {
		for i, j := 0, len(streams)-1; i < j; i, j = i+1, j-1 {
			streams[i], streams[j] = streams[j], streams[i]
		}
	}

	offset, err := s.resolveOffset(in.NextToken)
	if err != nil {
		return nil, err
	}

	start, end, more := clampPage(len(streams), offset, limit)
	out := &ListStreamsOutput{Streams: streams[start:end]}
	if more {
		out.NextToken = s.cursors.Issue(end)
	}
	return out, nil
}

// lastEventMillis orders streams that have never seen an event before
// any stream that has.
func lastEventMillis(st Stream) int64 {
	if st.LastEventTimestamp == nil {
		return 0
	}
	return *st.LastEventTimestamp
}

// stream looks up a stream's state by name within a group. Callers must
// hold the owning Store's mutex.
func (t *tenantState) stream(group, name string) *streamState {
	for _, st := range t.streams[group] {
		if st.meta.Name == name {
			return st
		}
	}
	return nil
}
