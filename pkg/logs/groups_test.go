package logs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cloudstub/cloudstub/pkg/cursor"
)

func newTestStore(opts ...Option) *Store {
	return NewStore(cursor.NewRegistry(), opts...)
}

func testScope() Scope {
	return Scope{Account: "123456789012", Region: "us-east-1"}
}

func TestAppendGroups_List(t *testing.T) {
	s := newTestStore()
	scope := testScope()

	s.AppendGroups(scope, []Group{
		{Name: "app", CreationTime: 1},
		{Name: "batch", CreationTime: 2},
	})
	s.AppendGroups(scope, []Group{{Name: "web", CreationTime: 3}})

	out, err := s.ListGroups(scope, ListGroupsInput{})
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(out.Groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(out.Groups))
	}
	if out.Groups[0].Name != "app" || out.Groups[2].Name != "web" {
		t.Errorf("groups out of append order: %+v", out.Groups)
	}
	if out.NextToken != "" {
		t.Errorf("NextToken = %q, want empty on final page", out.NextToken)
	}
}

func TestAppendGroups_NoUniquenessCheck(t *testing.T) {
	s := newTestStore()
	scope := testScope()

	s.AppendGroups(scope, []Group{{Name: "app"}})
	s.AppendGroups(scope, []Group{{Name: "app"}})

	out, err := s.ListGroups(scope, ListGroupsInput{})
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(out.Groups) != 2 {
		t.Errorf("got %d groups, want 2 (duplicates are kept)", len(out.Groups))
	}
}

func TestListGroups_UnknownScope(t *testing.T) {
	s := newTestStore()

	out, err := s.ListGroups(Scope{Account: "999", Region: "mars-1"}, ListGroupsInput{})
	if err != nil {
		t.Fatalf("ListGroups on unknown scope errored: %v", err)
	}
	if len(out.Groups) != 0 || out.NextToken != "" {
		t.Errorf("unknown scope should yield an empty page, got %+v", out)
	}
}

func TestListGroups_PaginationCoversAll(t *testing.T) {
	s := newTestStore()
	scope := testScope()

	var all []Group
	for i := 0; i < 120; i++ {
		all = append(all, Group{Name: fmt.Sprintf("group-%03d", i)})
	}
	s.AppendGroups(scope, all)

	var collected []Group
	token := ""
	pages := 0
	for {
		out, err := s.ListGroups(scope, ListGroupsInput{NextToken: token})
		if err != nil {
			t.Fatalf("page %d failed: %v", pages, err)
		}
		collected = append(collected, out.Groups...)
		pages++
		if out.NextToken == "" {
			break
		}
		token = out.NextToken
	}

	if pages != 3 {
		t.Errorf("pages = %d, want 3 (50+50+20)", pages)
	}
	if len(collected) != len(all) {
		t.Fatalf("collected %d groups, want %d", len(collected), len(all))
	}
	for i := range all {
		if collected[i].Name != all[i].Name {
			t.Fatalf("page concatenation diverges at %d: %q != %q", i, collected[i].Name, all[i].Name)
		}
	}
}

func TestListGroups_CustomLimit(t *testing.T) {
	s := newTestStore()
	scope := testScope()
	s.AppendGroups(scope, []Group{{Name: "a"}, {Name: "b"}, {Name: "c"}})

	out, err := s.ListGroups(scope, ListGroupsInput{Limit: 2})
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(out.Groups) != 2 {
		t.Errorf("got %d groups, want 2", len(out.Groups))
	}
	if out.NextToken == "" {
		t.Fatal("expected a continuation token")
	}

	rest, err := s.ListGroups(scope, ListGroupsInput{Limit: 2, NextToken: out.NextToken})
	if err != nil {
		t.Fatalf("second page failed: %v", err)
	}
	if len(rest.Groups) != 1 || rest.Groups[0].Name != "c" {
		t.Errorf("second page = %+v, want just group c", rest.Groups)
	}
}

func TestListGroups_TokenSingleUse(t *testing.T) {
	s := newTestStore()
	scope := testScope()
	for i := 0; i < 60; i++ {
		s.AppendGroups(scope, []Group{{Name: fmt.Sprintf("g-%02d", i)}})
	}

	first, err := s.ListGroups(scope, ListGroupsInput{})
	if err != nil {
		t.Fatalf("first page failed: %v", err)
	}
	if _, err := s.ListGroups(scope, ListGroupsInput{NextToken: first.NextToken}); err != nil {
		t.Fatalf("token consumption failed: %v", err)
	}

	_, err = s.ListGroups(scope, ListGroupsInput{NextToken: first.NextToken})
	var invalid *InvalidTokenError
	if !errors.As(err, &invalid) {
		t.Errorf("token reuse error = %v, want InvalidTokenError", err)
	}
}

func TestListGroups_ScopeIsolation(t *testing.T) {
	s := newTestStore()
	a := Scope{Account: "1", Region: "us-east-1"}
	b := Scope{Account: "1", Region: "eu-west-1"}

	s.AppendGroups(a, []Group{{Name: "only-in-a"}})

	out, err := s.ListGroups(b, ListGroupsInput{})
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(out.Groups) != 0 {
		t.Errorf("scope b sees %d groups from scope a", len(out.Groups))
	}
}
