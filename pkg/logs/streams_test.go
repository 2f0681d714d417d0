package logs

import (
	"errors"
	"fmt"
	"testing"
)

func streamNames(out *ListStreamsOutput) []string {
	names := make([]string, len(out.Streams))
	for i, st := range out.Streams {
		names[i] = st.Name
	}
	return names
}

func TestListStreams_Validation(t *testing.T) {
	s := newTestStore()
	scope := testScope()
	s.AppendStreams(scope, "app", []Stream{{Name: "web-1"}})

	tests := []struct {
		name  string
		group string
		in    ListStreamsInput
		field string
	}{
		{
			name:  "missing group name",
			group: "",
			field: "logGroupName",
		},
		{
			name:  "unknown orderBy",
			group: "app",
			in:    ListStreamsInput{OrderBy: "CreationTime"},
			field: "orderBy",
		},
		{
			name:  "prefix with LastEventTime ordering",
			group: "app",
			in:    ListStreamsInput{OrderBy: OrderByLastEventTime, Prefix: "web-"},
			field: "logStreamNamePrefix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ListStreams(scope, tt.group, tt.in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestListStreams_UnknownGroup(t *testing.T) {
	s := newTestStore()
	scope := testScope()

	_, err := s.ListStreams(scope, "never-created", ListStreamsInput{})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
	if nf.Group != "never-created" {
		t.Errorf("Group = %q, want %q", nf.Group, "never-created")
	}
}

func TestListStreams_EmptyButKnownGroup(t *testing.T) {
	// Populating a group with zero streams still marks it as known:
	// the result is an empty page, not a not-found error.
	s := newTestStore()
	scope := testScope()
	s.AppendStreams(scope, "app", nil)

	out, err := s.ListStreams(scope, "app", ListStreamsInput{})
	if err != nil {
		t.Fatalf("ListStreams on empty known group errored: %v", err)
	}
	if len(out.Streams) != 0 {
		t.Errorf("got %d streams, want 0", len(out.Streams))
	}
}

func TestListStreams_DefaultNameOrdering(t *testing.T) {
	s := newTestStore()
	scope := testScope()
	s.AppendStreams(scope, "app", []Stream{
		{Name: "web-2"},
		{Name: ""},
		{Name: "api-1"},
		{Name: "web-1"},
	})

	out, err := s.ListStreams(scope, "app", ListStreamsInput{})
	if err != nil {
		t.Fatalf("ListStreams failed: %v", err)
	}

	want := []string{"", "api-1", "web-1", "web-2"}
	got := streamNames(out)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v (nameless streams sort first)", got, want)
		}
	}
}

func TestListStreams_Descending(t *testing.T) {
	s := newTestStore()
	scope := testScope()
	s.AppendStreams(scope, "app", []Stream{{Name: "a"}, {Name: "c"}, {Name: "b"}})

	out, err := s.ListStreams(scope, "app", ListStreamsInput{Descending: true})
	if err != nil {
		t.Fatalf("ListStreams failed: %v", err)
	}
	want := []string{"c", "b", "a"}
	got := streamNames(out)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("descending order = %v, want %v", got, want)
		}
	}
}

func TestListStreams_LastEventTimeOrdering(t *testing.T) {
	ts := func(v int64) *int64 { return &v }

	s := newTestStore()
	scope := testScope()
	s.AppendStreams(scope, "app", []Stream{
		{Name: "mid", LastEventTimestamp: ts(500)},
		{Name: "silent"}, // never saw an event, sorts first
		{Name: "old", LastEventTimestamp: ts(100)},
		{Name: "new", LastEventTimestamp: ts(900)},
	})

	out, err := s.ListStreams(scope, "app", ListStreamsInput{OrderBy: OrderByLastEventTime})
	if err != nil {
		t.Fatalf("ListStreams failed: %v", err)
	}
	want := []string{"silent", "old", "mid", "new"}
	got := streamNames(out)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LastEventTime order = %v, want %v", got, want)
		}
	}
}

func TestListStreams_LastEventTimeOrderingIsStable(t *testing.T) {
	ts := func(v int64) *int64 { return &v }

	s := newTestStore()
	scope := testScope()
	// Equal timestamps must keep insertion order.
	s.AppendStreams(scope, "app", []Stream{
		{Name: "z-first", LastEventTimestamp: ts(100)},
		{Name: "a-second", LastEventTimestamp: ts(100)},
	})

	out, err := s.ListStreams(scope, "app", ListStreamsInput{OrderBy: OrderByLastEventTime})
	if err != nil {
		t.Fatalf("ListStreams failed: %v", err)
	}
	got := streamNames(out)
	if got[0] != "z-first" || got[1] != "a-second" {
		t.Errorf("stable sort violated: %v", got)
	}
}

func TestListStreams_PrefixFilter(t *testing.T) {
	s := newTestStore()
	scope := testScope()
	s.AppendStreams(scope, "app", []Stream{
		{Name: "b-2"}, {Name: "a-2"}, {Name: "b-1"}, {Name: "a-1"},
	})

	out, err := s.ListStreams(scope, "app", ListStreamsInput{Prefix: "a-"})
	if err != nil {
		t.Fatalf("ListStreams failed: %v", err)
	}
	want := []string{"a-1", "a-2"}
	got := streamNames(out)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestListStreams_PaginationAfterFilter(t *testing.T) {
	s := newTestStore()
	scope := testScope()

	var streams []Stream
	for i := 0; i < 30; i++ {
		streams = append(streams, Stream{Name: fmt.Sprintf("web-%02d", i)})
		streams = append(streams, Stream{Name: fmt.Sprintf("db-%02d", i)})
	}
	s.AppendStreams(scope, "app", streams)

	var collected []string
	token := ""
	for {
		out, err := s.ListStreams(scope, "app", ListStreamsInput{Prefix: "web-", Limit: 12, NextToken: token})
		if err != nil {
			t.Fatalf("ListStreams failed: %v", err)
		}
		collected = append(collected, streamNames(out)...)
		if out.NextToken == "" {
			break
		}
		token = out.NextToken
	}

	if len(collected) != 30 {
		t.Fatalf("collected %d filtered streams, want 30", len(collected))
	}
	for i, name := range collected {
		want := fmt.Sprintf("web-%02d", i)
		if name != want {
			t.Fatalf("filtered pagination diverges at %d: %q != %q", i, name, want)
		}
	}
}

func TestListStreams_GroupsAreScoped(t *testing.T) {
	s := newTestStore()
	a := Scope{Account: "1", Region: "us-east-1"}
	b := Scope{Account: "2", Region: "us-east-1"}
	s.AppendStreams(a, "app", []Stream{{Name: "web"}})

	if _, err := s.ListStreams(b, "app", ListStreamsInput{}); err == nil {
		t.Error("group known in scope a must be not-found in scope b")
	}
}
