package action

import "strings"

// Command is a single dictated command: a spoken phrase, the ordered,
// non-empty sequence of actions it performed, and the optional number of
// seconds since the previous command's last action.
type Command struct {
	Name               string
	Actions            []Action
	SecondsSinceLast   *uint32
}

// Append adds an action to the command in place.
func (c *Command) Append(a Action) {
	c.Actions = append(c.Actions, a)
}

// WordCount returns the number of space-separated words in the command's
// spoken name.
func (c Command) WordCount() int {
	return len(strings.Fields(c.Name))
}

// EntryKind distinguishes the two members of the Record's entry sequence.
type EntryKind int

const (
	EntryRecordingStart EntryKind = iota
	EntryCommand
)

// Entry is one line of the chronological record: either a recording-start
// marker or a Command.
type Entry struct {
	Kind    EntryKind
	Command Command
}

// Record is the ordered sequence of entries read from the input file.
type Record []Entry

// CommandChain is a contiguous slice of the record materialised as a
// synthetic command. Name is the constituent command names joined by a
// space; Actions is the concatenation of all constituent actions in order.
// StartIndex is the chain's first record index and Size is the number of
// source commands it spans (not record entries - RecordingStart entries
// never appear inside a chain by construction).
type CommandChain struct {
	Name       string
	Actions    []Action
	StartIndex int
	Size       int
}

// EndingIndex returns the record index of the chain's last constituent
// command.
func (c CommandChain) EndingIndex() int {
	return c.StartIndex + c.Size - 1
}

// NextIndex returns the record index immediately following the chain.
func (c CommandChain) NextIndex() int {
	return c.StartIndex + c.Size
}

// WordCount returns the number of space-separated words across the chain's
// spoken name.
func (c CommandChain) WordCount() int {
	return len(strings.Fields(c.Name))
}

// NewChainFromCommand starts a new one-command chain at the given record
// index.
func NewChainFromCommand(cmd Command, startIndex int) CommandChain {
	actions := make([]Action, len(cmd.Actions))
	copy(actions, cmd.Actions)
	return CommandChain{
		Name:       cmd.Name,
		Actions:    actions,
		StartIndex: startIndex,
		Size:       1,
	}
}

// AppendCommand extends the chain with one more constituent command.
func (c CommandChain) AppendCommand(cmd Command) CommandChain {
	actions := make([]Action, 0, len(c.Actions)+len(cmd.Actions))
	actions = append(actions, c.Actions...)
	actions = append(actions, cmd.Actions...)
	return CommandChain{
		Name:       c.Name + " " + cmd.Name,
		Actions:    actions,
		StartIndex: c.StartIndex,
		Size:       c.Size + 1,
	}
}

// WithActions returns a copy of the chain with its action list replaced,
// keeping name, start index, and size - used by the simplifier (pkg/simplify)
// which never changes chain identity, only its canonical action form.
func (c CommandChain) WithActions(actions []Action) CommandChain {
	return CommandChain{
		Name:       c.Name,
		Actions:    actions,
		StartIndex: c.StartIndex,
		Size:       c.Size,
	}
}

// Set is a set of action-sequences keyed by their canonical string
// representation (CanonicalActions). It underlies both the instantiation
// sets carried by abstract candidates and the persistently-rejected action
// configuration store.
type Set struct {
	keys map[string]struct{}
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{keys: make(map[string]struct{})}
}

// InsertActions records the canonical form of actions in the set.
func (s *Set) InsertActions(actions []Action) {
	s.keys[CanonicalActions(actions)] = struct{}{}
}

// InsertAction records a single action's canonical form in the set.
func (s *Set) InsertAction(a Action) {
	s.keys[a.CanonicalString()] = struct{}{}
}

// ContainsActions reports whether the given action sequence's canonical
// form is present.
func (s *Set) ContainsActions(actions []Action) bool {
	_, ok := s.keys[CanonicalActions(actions)]
	return ok
}

// ContainsAction reports whether a single action's canonical form is
// present.
func (s *Set) ContainsAction(a Action) bool {
	_, ok := s.keys[a.CanonicalString()]
	return ok
}

// Len reports the number of distinct entries.
func (s *Set) Len() int {
	return len(s.keys)
}

// Keys returns the canonical string keys in no particular order.
func (s *Set) Keys() []string {
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	return out
}
