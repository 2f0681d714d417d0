package logs

// AppendGroups appends groups to the scope's ordered group list. There
// is no uniqueness check and no error path: fixtures may legitimately
// replay the same group twice and the emulated service tolerates it.
func (s *Store) AppendGroups(scope Scope, groups []Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.scope(scope)
	t.groups = append(t.groups, groups...)
}

// ListGroups returns one page of the scope's groups. An unknown scope
// yields an empty page, not an error.
func (s *Store) ListGroups(scope Scope, in ListGroupsInput) (*ListGroupsOutput, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	offset, err := s.resolveOffset(in.NextToken)
	if err != nil {
		return nil, err
	}

	var groups []Group
	if t, ok := s.tenants[scope]; ok {
		groups = t.groups
	}

	start, end, more := clampPage(len(groups), offset, limit)
	out := &ListGroupsOutput{Groups: append([]Group(nil), groups[start:end]...)}
	if more {
		out.NextToken = s.cursors.Issue(end)
	}
	return out, nil
}
