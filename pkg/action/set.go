package action

// Add is an alias for InsertActions, used by callers that think of Set in
// terms of add/contains rather than insert/contains (the interactive
// refinement driver's session-scoped to_keep/to_remove sets).
func (s *Set) Add(actions []Action) {
	s.InsertActions(actions)
}

// Contains is an alias for ContainsActions.
func (s *Set) Contains(actions []Action) bool {
	return s.ContainsActions(actions)
}

// AddAction is an alias for InsertAction.
func (s *Set) AddAction(a Action) {
	s.InsertAction(a)
}

// AddRaw inserts an already-computed canonical key directly, for callers
// that persist or load the key string itself (e.g. the configuration
// store's rejected-commands file, which stores the canonical concatenation
// verbatim rather than a reconstructable action sequence).
func (s *Set) AddRaw(key string) {
	s.keys[key] = struct{}{}
}

// ContainsRaw reports whether the exact canonical key was previously added.
func (s *Set) ContainsRaw(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// ContainsAny reports whether any element of actions was added
// individually (used to test a candidate's action list against the
// rejected-actions set, where each element, not the whole sequence, is the
// rejected unit).
func (s *Set) ContainsAny(actions []Action) bool {
	for _, a := range actions {
		if s.ContainsAction(a) {
			return true
		}
	}
	return false
}
