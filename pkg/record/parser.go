// Package record parses the line-oriented, JSON-like record file format
// described by the external interfaces of this system: recording-start
// markers, command headers, action objects, and inter-command time gaps.
//
// The action-object syntax is deliberately not standard JSON (it accepts
// single-quoted strings and a restricted, order-sensitive object shape), so
// this package hand-rolls a small scanner rather than reaching for
// encoding/json - see DESIGN.md for the full justification.
package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"dictrec/pkg/action"
)

// ErrMalformedRecord is wrapped by every error this package returns for a
// line it could not parse.
var ErrMalformedRecord = errors.New("record: malformed input")

const (
	recordingStartLine  = "START"
	commandNamePrefix    = "Command: "
	timeDifferencePrefix = "T"
)

// Parse reads a full record from r. On any malformed line it returns
// ErrMalformedRecord wrapped with the offending line number; per
// the error-handling design, callers should treat this as fail-fast and
// abort the run rather than attempt recovery.
func Parse(r io.Reader) (action.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var rec action.Record
	var pending *action.Command
	var pendingSeconds *uint32
	lineNo := 0

	flush := func() error {
		if pending == nil {
			return nil
		}
		if len(pending.Actions) == 0 {
			return fmt.Errorf("%w: line %d: command %q has no actions", ErrMalformedRecord, lineNo, pending.Name)
		}
		rec = append(rec, action.Entry{Kind: action.EntryCommand, Command: *pending})
		pending = nil
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == recordingStartLine:
			if err := flush(); err != nil {
				return nil, err
			}
			rec = append(rec, action.Entry{Kind: action.EntryRecordingStart})

		case strings.HasPrefix(line, commandNamePrefix):
			if err := flush(); err != nil {
				return nil, err
			}
			name := strings.TrimPrefix(line, commandNamePrefix)
			cmd := &action.Command{Name: name}
			if pendingSeconds != nil {
				cmd.SecondsSinceLast = pendingSeconds
				pendingSeconds = nil
			}
			pending = cmd

		case strings.HasPrefix(line, timeDifferencePrefix) && isAllDigits(line[len(timeDifferencePrefix):]):
			seconds, err := strconv.ParseUint(line[len(timeDifferencePrefix):], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: invalid time gap %q: %v", ErrMalformedRecord, lineNo, line, err)
			}
			s := uint32(seconds)
			pendingSeconds = &s

		case strings.HasPrefix(line, "{"):
			if pending == nil {
				return nil, fmt.Errorf("%w: line %d: action object with no current command", ErrMalformedRecord, lineNo)
			}
			act, err := parseActionLine(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, lineNo, err)
			}
			pending.Append(act)

		default:
			return nil, fmt.Errorf("%w: line %d: unrecognised line %q", ErrMalformedRecord, lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return rec, nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
