// Package refine implements the interactive refinement driver: it prompts
// the user about each recommended candidate in a batch, parses their
// response into a structured directive, and re-runs selection with the
// accumulated accept/reject constraints until the batch converges.
package refine

import (
	"fmt"
	"strconv"
	"strings"
)

// Directive is the parsed form of one line of user input against a single
// recommended candidate.
type Directive struct {
	Accept                  bool
	Reject                  bool
	RejectCommandPersistent bool
	AcceptRestOfBatch       bool
	ActionToReject          int // 1-based; 0 means absent
	ActionToRejectPersist   int // 1-based; 0 means absent
}

// ParseDirective parses one trimmed, lowercased line of interactive input
// into a Directive. Empty input is treated as "n". At most two
// whitespace-separated tokens are allowed; "y" and "n" together is an
// error.
func ParseDirective(input string) (Directive, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return Directive{Reject: true}, nil
	}

	tokens := strings.Fields(input)
	if len(tokens) > 2 {
		return Directive{}, fmt.Errorf("refine: a valid command has one or fewer spaces, got %q", input)
	}

	var d Directive
	var expectReject, expectRejectPersist bool
	for _, c := range tokens[0] {
		switch c {
		case 'y':
			d.Accept = true
		case 'n':
			d.Reject = true
		case 'r':
			expectRejectPersist = true
		case 'd':
			expectReject = true
		case 'c':
			d.RejectCommandPersistent = true
		case 'a':
			d.AcceptRestOfBatch = true
		default:
			return Directive{}, fmt.Errorf("refine: invalid command character %q", c)
		}
	}

	if d.Accept && d.Reject {
		return Directive{}, fmt.Errorf("refine: cannot accept and reject the same candidate")
	}
	if expectReject && len(tokens) < 2 {
		return Directive{}, fmt.Errorf("refine: missing action number to reject")
	}
	if expectRejectPersist && len(tokens) < 2 {
		return Directive{}, fmt.Errorf("refine: missing action number to reject persistently")
	}
	if expectReject || expectRejectPersist {
		n, err := strconv.Atoi(tokens[1])
		if err != nil || n < 1 {
			return Directive{}, fmt.Errorf("refine: invalid action number %q", tokens[1])
		}
		if expectReject {
			d.ActionToReject = n
		}
		if expectRejectPersist {
			d.ActionToRejectPersist = n
		}
	}

	return d, nil
}
