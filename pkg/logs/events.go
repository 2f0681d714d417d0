package logs

import (
	"fmt"
	"sort"
)

// AppendEvents merges a batch of events into a stream and updates the
// stream's metadata through the delayed high-water-mark algorithm.
//
// Preconditions, violation of which is a programmer or fixture error and
// panics rather than returning: the batch is non-empty, every event
// carries a message, and the stream was previously registered via
// AppendStreams. The one recoverable failure is a ConsistencyError when
// the batch disagrees with the stream's recorded first event timestamp.
func (s *Store) AppendEvents(scope Scope, group, stream string, events []Event) error {
	if len(events) == 0 {
		panic(fmt.Sprintf("logs: empty event batch for stream %q in group %q", stream, group))
	}
	for i, e := range events {
		if e.Message == "" {
			panic(fmt.Sprintf("logs: event %d for stream %q has no message", i, stream))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.scope(scope).stream(group, stream)
	if st == nil {
		panic(fmt.Sprintf("logs: stream %q in group %q received events before being created", stream, group))
	}

	st.events = append(st.events, events...)
	sort.SliceStable(st.events, func(i, j int) bool {
		return st.events[i].Timestamp < st.events[j].Timestamp
	})

	// The recency rules below are defined over the whole accumulated
	// history, not just the new batch.
	minTS := st.events[0].Timestamp
	maxTS := st.events[len(st.events)-1].Timestamp
	maxIngestion := st.events[0].IngestionTime
	for _, e := range st.events[1:] {
		if e.IngestionTime > maxIngestion {
			maxIngestion = e.IngestionTime
		}
	}

	if st.meta.FirstEventTimestamp != nil && *st.meta.FirstEventTimestamp != minTS {
		return &ConsistencyError{
			Group:  group,
			Stream: stream,
			Detail: fmt.Sprintf("cannot ingest events older than the stream's recorded first event (%d != %d)", minTS, *st.meta.FirstEventTimestamp),
		}
	}
	if st.meta.FirstEventTimestamp == nil {
		first := minTS
		st.meta.FirstEventTimestamp = &first
	}

	ingestion := maxIngestion
	st.meta.LastIngestionTime = &ingestion

	s.advanceLastEventTimestamp(st, maxTS, maxIngestion)
	return nil
}

// advanceLastEventTimestamp moves a stream's last event timestamp
// forward under the visibility delay.
//
// On the very first observation the newest timestamp becomes visible
// immediately, keeping isolated tests deterministic on first read.
// Afterwards the mark only advances to the largest timestamp that is
// older than both now and the last ingestion time by at least the
// configured delay, and that is strictly newer than the current mark.
// Nothing re-evaluates the mark in the background; it moves on the next
// append or not at all.
func (s *Store) advanceLastEventTimestamp(st *streamState, maxTS, maxIngestion int64) {
	if st.meta.LastEventTimestamp == nil {
		bootstrap := maxTS
		st.meta.LastEventTimestamp = &bootstrap
		return
	}

	delayMillis := s.delay.Milliseconds()
	wallCutoff := s.now().UnixMilli() - delayMillis
	ingestionCutoff := maxIngestion - delayMillis

	for i := len(st.events) - 1; i >= 0; i-- {
		ts := st.events[i].Timestamp
		if ts < wallCutoff && ts < ingestionCutoff && ts > *st.meta.LastEventTimestamp {
			mark := ts
			st.meta.LastEventTimestamp = &mark
			return
		}
	}
}

// QueryEvents returns a tail-anchored window of a stream's events. With
// no token the window covers the most recent Limit events; the forward
// and backward tokens move the window toward newer and older events
// respectively. Both tokens are always minted, even when the adjacent
// window would be empty, and an unknown stream yields an empty result
// rather than an error.
func (s *Store) QueryEvents(scope Scope, group, stream string, in QueryEventsInput) (*QueryEventsOutput, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	offset, err := s.resolveOffset(in.NextToken)
	if err != nil {
		return nil, err
	}

	var events []Event
	if t, ok := s.tenants[scope]; ok {
		if st := t.stream(group, stream); st != nil {
			events = filterEvents(st.events, in)
		}
	}

	start := len(events) - limit - offset
	end := len(events) - offset
	if start < 0 {
		start = 0
	}
	if start > len(events) {
		start = len(events)
	}
	if end < 0 {
		end = 0
	}
	if end > len(events) {
		end = len(events)
	}
	if end < start {
		end = start
	}

	return &QueryEventsOutput{
		Events:            append([]Event(nil), events[start:end]...),
		NextForwardToken:  s.cursors.Issue(offset - limit),
		NextBackwardToken: s.cursors.Issue(offset + limit),
	}, nil
}

// filterEvents applies the time-range bounds and the optional match
// predicate ahead of pagination.
func filterEvents(events []Event, in QueryEventsInput) []Event {
	if in.StartTime == nil && in.EndTime == nil && in.Match == nil {
		return events
	}
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if in.StartTime != nil && e.Timestamp < *in.StartTime {
			continue
		}
		if in.EndTime != nil && e.Timestamp >= *in.EndTime {
			continue
		}
		if in.Match != nil && !in.Match(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}
