// Package action defines the immutable value types that describe a single
// dictated action, the commands built out of them, and a chronological
// record of commands as they were spoken.
package action

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgumentKind identifies which member of the Argument tagged union is set.
type ArgumentKind int

const (
	ArgString ArgumentKind = iota
	ArgInt
	ArgFloat
	ArgBool
	ArgCapture
)

// Capture binds a spoken sub-phrase of a command to a named, numbered slot.
// Instance disambiguates multiple captures of the same kind within one
// command (e.g. two "<number_small>" captures). Postfix, when non-empty, is
// appended verbatim after the rendered capture when producing target-script
// syntax (used for arithmetic adjustments such as " - 1").
type Capture struct {
	Name     string
	Instance int
	Postfix  string
}

// String renders the capture's dedup/key representation, e.g. "number_1".
// An Instance of zero means the capture is singleton within its command
// (the prose-substitution capture "user.text" is the only such case) and
// the numeric suffix is omitted.
func (c Capture) String() string {
	if c.Instance == 0 {
		return c.Name
	}
	return fmt.Sprintf("%s_%d", c.Name, c.Instance)
}

// CommandComponent renders the capture as it appears in target-script
// syntax, e.g. "<number_1 - 1>".
func (c Capture) CommandComponent() string {
	if c.Postfix == "" {
		return fmt.Sprintf("<%s>", c.String())
	}
	return fmt.Sprintf("<%s%s>", c.String(), c.Postfix)
}

// Argument is a closed tagged union over the value kinds an action may
// carry: string, 32-bit signed int, float64, bool, or a Capture. Exactly one
// of the typed fields is meaningful, selected by Kind. Equality is
// structural and never holds across different Kinds.
type Argument struct {
	Kind       ArgumentKind
	StringVal  string
	IntVal     int32
	FloatVal   float64
	BoolVal    bool
	CaptureVal Capture
}

func StringArg(s string) Argument    { return Argument{Kind: ArgString, StringVal: s} }
func IntArg(i int32) Argument        { return Argument{Kind: ArgInt, IntVal: i} }
func FloatArg(f float64) Argument    { return Argument{Kind: ArgFloat, FloatVal: f} }
func BoolArg(b bool) Argument        { return Argument{Kind: ArgBool, BoolVal: b} }
func CaptureArg(c Capture) Argument  { return Argument{Kind: ArgCapture, CaptureVal: c} }

// Equal reports structural equality. Arguments of different Kinds are never
// equal, even if their underlying representations coincide.
func (a Argument) Equal(o Argument) bool {
	if a.Kind != o.Kind {
		return false
	}
	switch a.Kind {
	case ArgString:
		return a.StringVal == o.StringVal
	case ArgInt:
		return a.IntVal == o.IntVal
	case ArgFloat:
		return a.FloatVal == o.FloatVal
	case ArgBool:
		return a.BoolVal == o.BoolVal
	case ArgCapture:
		return a.CaptureVal == o.CaptureVal
	default:
		return false
	}
}

// scriptString renders the argument in target-script syntax.
func (a Argument) scriptString() string {
	switch a.Kind {
	case ArgString:
		return `"` + strings.ReplaceAll(a.StringVal, `"`, `\"`) + `"`
	case ArgInt:
		return strconv.FormatInt(int64(a.IntVal), 10)
	case ArgFloat:
		return strconv.FormatFloat(a.FloatVal, 'g', -1, 64)
	case ArgBool:
		return strconv.FormatBool(a.BoolVal)
	case ArgCapture:
		return a.CaptureVal.CommandComponent()
	default:
		return ""
	}
}

// jsonString renders the argument into the canonical representation used
// for candidate-set keys and the persisted actions-to-reject configuration
// files. String arguments are double-quoted with embedded double quotes
// backslash-escaped, so a string never shares a key with a number or bool
// of the same text, and a persisted line parses back through
// record.ParseActionLine.
func (a Argument) jsonString() string {
	switch a.Kind {
	case ArgString:
		return `"` + strings.ReplaceAll(a.StringVal, `"`, `\"`) + `"`
	case ArgInt:
		return strconv.FormatInt(int64(a.IntVal), 10)
	case ArgFloat:
		return strconv.FormatFloat(a.FloatVal, 'g', -1, 64)
	case ArgBool:
		return strconv.FormatBool(a.BoolVal)
	case ArgCapture:
		return fmt.Sprintf(`{"name":"%s","instance":%d}`, a.CaptureVal.Name, a.CaptureVal.Instance)
	default:
		return ""
	}
}

// Action is a named operation with an ordered sequence of arguments. It is
// the atom of a command. Equality is structural: same name, same argument
// count, and each argument pairwise Equal.
type Action struct {
	Name      string
	Arguments []Argument
}

// New builds an Action from a name and arguments.
func New(name string, args ...Argument) Action {
	return Action{Name: name, Arguments: args}
}

// Equal reports whether a and o have the same name and structurally equal
// arguments in the same order.
func (a Action) Equal(o Action) bool {
	if a.Name != o.Name || len(a.Arguments) != len(o.Arguments) {
		return false
	}
	for i := range a.Arguments {
		if !a.Arguments[i].Equal(o.Arguments[i]) {
			return false
		}
	}
	return true
}

// ScriptString renders the action in target-script syntax: name(arg1, arg2, …).
func (a Action) ScriptString() string {
	parts := make([]string, len(a.Arguments))
	for i, arg := range a.Arguments {
		parts[i] = arg.scriptString()
	}
	return fmt.Sprintf("%s(%s)", a.Name, strings.Join(parts, ", "))
}

// CanonicalString renders the lossless, dedup-key representation of the
// action: {"name":…,"arguments":[…]}.
func (a Action) CanonicalString() string {
	parts := make([]string, len(a.Arguments))
	for i, arg := range a.Arguments {
		parts[i] = arg.jsonString()
	}
	return fmt.Sprintf(`{"name":"%s","arguments":[%s]}`, a.Name, strings.Join(parts, ","))
}

// IsInsert reports whether a is a single-string-argument "insert" action.
func (a Action) IsInsert() bool {
	return a.Name == "insert" && len(a.Arguments) == 1 && a.Arguments[0].Kind == ArgString
}

// InsertText returns the inserted text. The caller must have checked
// IsInsert; it panics otherwise, matching the prototype's own contract for
// this accessor.
func (a Action) InsertText() string {
	if !a.IsInsert() {
		panic("action: InsertText called on a non-insert action")
	}
	return a.Arguments[0].StringVal
}

// NewInsert builds an insert("text") action.
func NewInsert(text string) Action {
	return New("insert", StringArg(text))
}

// IsRepeat reports whether a is a repeat(n) action.
func (a Action) IsRepeat() bool {
	return a.Name == "repeat" && len(a.Arguments) == 1 && a.Arguments[0].Kind == ArgInt
}

// RepeatCount returns the repeat count. The caller must have checked
// IsRepeat; it panics otherwise, matching IsInsert/InsertText's contract.
func (a Action) RepeatCount() int {
	if !a.IsRepeat() {
		panic("action: RepeatCount called on a non-repeat action")
	}
	return int(a.Arguments[0].IntVal)
}

// CanonicalActions renders a slice of actions into the concatenation of
// their canonical strings, used as a candidate-set key.
func CanonicalActions(actions []Action) string {
	var b strings.Builder
	for _, a := range actions {
		b.WriteString(a.CanonicalString())
	}
	return b.String()
}

// ActionsEqual reports whether two action slices are structurally equal,
// element by element.
func ActionsEqual(a, b []Action) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
