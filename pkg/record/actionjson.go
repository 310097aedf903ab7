package record

import (
	"fmt"
	"strconv"
	"strings"

	"dictrec/pkg/action"
)

// jsonScanner is a small hand-written cursor over one action-object line.
// It is not a general JSON parser: it understands exactly the shape
// described in the external interface (a top-level object with "name" and
// "arguments" keys, single-nesting capture objects inside the arguments
// list, and both quote characters for strings).
type jsonScanner struct {
	runes []rune
	pos   int
}

func newJSONScanner(s string) *jsonScanner {
	return &jsonScanner{runes: []rune(s)}
}

func (s *jsonScanner) eof() bool { return s.pos >= len(s.runes) }

func (s *jsonScanner) peek() rune {
	if s.eof() {
		return 0
	}
	return s.runes[s.pos]
}

func (s *jsonScanner) advance() rune {
	r := s.runes[s.pos]
	s.pos++
	return r
}

func (s *jsonScanner) skipSpace() {
	for !s.eof() && (s.peek() == ' ' || s.peek() == '\t') {
		s.pos++
	}
}

func (s *jsonScanner) expect(r rune) error {
	s.skipSpace()
	if s.eof() || s.peek() != r {
		return fmt.Errorf("expected %q at position %d", r, s.pos)
	}
	s.pos++
	return nil
}

// parseQuotedString consumes a " or ' delimited string, honouring
// backslash-escapes of the delimiter.
func (s *jsonScanner) parseQuotedString() (string, error) {
	s.skipSpace()
	if s.eof() {
		return "", fmt.Errorf("expected string, got end of input")
	}
	quote := s.advance()
	if quote != '"' && quote != '\'' {
		return "", fmt.Errorf("expected string delimiter, got %q", quote)
	}
	var b strings.Builder
	for {
		if s.eof() {
			return "", fmt.Errorf("unterminated string")
		}
		r := s.advance()
		if r == '\\' && !s.eof() && s.peek() == quote {
			b.WriteRune(s.advance())
			continue
		}
		if r == quote {
			break
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// parseKey reads a quoted object key and the colon that follows it.
func (s *jsonScanner) parseKey() (string, error) {
	key, err := s.parseQuotedString()
	if err != nil {
		return "", err
	}
	if err := s.expect(':'); err != nil {
		return "", err
	}
	return key, nil
}

// parseBareToken reads an unquoted token up to the next structural
// character, used for numbers and the true/false literals.
func (s *jsonScanner) parseBareToken() string {
	s.skipSpace()
	start := s.pos
	for !s.eof() {
		r := s.peek()
		if r == ',' || r == ']' || r == '}' || r == ' ' || r == '\t' {
			break
		}
		s.pos++
	}
	return string(s.runes[start:s.pos])
}

// parseArgument parses one element of the "arguments" list: a number, a
// bool literal, a quoted string, or a nested capture object.
func (s *jsonScanner) parseArgument() (action.Argument, error) {
	s.skipSpace()
	if s.eof() {
		return action.Argument{}, fmt.Errorf("expected argument, got end of input")
	}
	switch s.peek() {
	case '"', '\'':
		str, err := s.parseQuotedString()
		if err != nil {
			return action.Argument{}, err
		}
		return action.StringArg(str), nil
	case '{':
		cap, err := s.parseCapture()
		if err != nil {
			return action.Argument{}, err
		}
		return action.CaptureArg(cap), nil
	default:
		token := s.parseBareToken()
		switch token {
		case "true":
			return action.BoolArg(true), nil
		case "false":
			return action.BoolArg(false), nil
		case "":
			return action.Argument{}, fmt.Errorf("expected argument, got nothing at position %d", s.pos)
		default:
			if i, err := strconv.ParseInt(token, 10, 32); err == nil {
				return action.IntArg(int32(i)), nil
			}
			f, err := strconv.ParseFloat(token, 64)
			if err != nil {
				return action.Argument{}, fmt.Errorf("could not parse argument %q as int, float, or bool", token)
			}
			return action.FloatArg(f), nil
		}
	}
}

// parseCapture parses a nested {"name": "...", "instance": N} object. Lists
// may not nest further than this: a capture's fields are always scalar.
func (s *jsonScanner) parseCapture() (action.Capture, error) {
	if err := s.expect('{'); err != nil {
		return action.Capture{}, err
	}
	var cap action.Capture
	for {
		key, err := s.parseKey()
		if err != nil {
			return action.Capture{}, err
		}
		switch key {
		case "name":
			val, err := s.parseQuotedString()
			if err != nil {
				return action.Capture{}, err
			}
			cap.Name = val
		case "instance":
			token := s.parseBareToken()
			n, err := strconv.Atoi(token)
			if err != nil {
				return action.Capture{}, fmt.Errorf("capture instance %q is not an integer", token)
			}
			cap.Instance = n
		default:
			return action.Capture{}, fmt.Errorf("unexpected capture field %q", key)
		}
		s.skipSpace()
		if !s.eof() && s.peek() == ',' {
			s.pos++
			continue
		}
		break
	}
	if err := s.expect('}'); err != nil {
		return action.Capture{}, err
	}
	if cap.Name == "" {
		return action.Capture{}, fmt.Errorf("capture missing required %q field", "name")
	}
	return cap, nil
}

// parseArgumentsList parses the full "arguments": [ … ] value, including
// the surrounding brackets.
func (s *jsonScanner) parseArgumentsList() ([]action.Argument, error) {
	if err := s.expect('['); err != nil {
		return nil, err
	}
	var args []action.Argument
	s.skipSpace()
	if !s.eof() && s.peek() == ']' {
		s.pos++
		return args, nil
	}
	for {
		arg, err := s.parseArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		s.skipSpace()
		if !s.eof() && s.peek() == ',' {
			s.pos++
			continue
		}
		break
	}
	if err := s.expect(']'); err != nil {
		return nil, err
	}
	return args, nil
}

// parseActionLine parses one full action-object line: {"name": "...",
// "arguments": [ … ]}. The top level must be an object, and the "name" key
// must appear before "arguments" - mirroring the original parser's
// order-sensitive contract.
// ParseActionLine is the exported entry point used by the configuration
// store to parse one persisted action line outside of full record parsing.
func ParseActionLine(line string) (action.Action, error) {
	return parseActionLine(line)
}

func parseActionLine(line string) (action.Action, error) {
	s := newJSONScanner(line)
	if err := s.expect('{'); err != nil {
		return action.Action{}, err
	}

	nameKey, err := s.parseKey()
	if err != nil {
		return action.Action{}, err
	}
	if nameKey != "name" {
		return action.Action{}, fmt.Errorf(`expected "name" key first, got %q`, nameKey)
	}
	name, err := s.parseQuotedString()
	if err != nil {
		return action.Action{}, err
	}

	var args []action.Argument
	s.skipSpace()
	if !s.eof() && s.peek() == ',' {
		s.pos++
		argsKey, err := s.parseKey()
		if err != nil {
			return action.Action{}, err
		}
		if argsKey != "arguments" {
			return action.Action{}, fmt.Errorf(`expected "arguments" key, got %q`, argsKey)
		}
		args, err = s.parseArgumentsList()
		if err != nil {
			return action.Action{}, err
		}
	}

	if err := s.expect('}'); err != nil {
		return action.Action{}, err
	}
	return action.New(name, args...), nil
}
