package candidate

import (
	"strings"

	"github.com/rs/zerolog"

	"dictrec/pkg/action"
	"dictrec/pkg/simplify"
	"dictrec/pkg/textsep"
)

// maxTimeGapSeconds is the longest gap, in seconds, since the previous
// command that a later (non-first) command of a chain may have and still be
// considered part of it.
const maxTimeGapSeconds = 300

// maxProseSpan bounds how many consecutive words of a chain's name are
// tried as a candidate prose phrase.
const maxProseSpan = 10

// Generator walks a record and accumulates candidates keyed by their
// canonical action sequence. It runs single-threaded: the corpus this
// pipeline is built on never parallelises record walking, only the
// downstream filtering and selection stages.
type Generator struct {
	maxChainSize int
	log          zerolog.Logger
	byKey        map[string]*Candidate
	order        []string
}

// NewGenerator returns a Generator bounded to chains of at most
// maxChainSize commands. A zero-value logger silently discards events.
func NewGenerator(maxChainSize int, log zerolog.Logger) *Generator {
	return &Generator{
		maxChainSize: maxChainSize,
		log:          log,
		byKey:        make(map[string]*Candidate),
	}
}

// Generate walks every chain start in rec and returns the candidates that
// survive the post-generation filter, in first-seen order.
func (g *Generator) Generate(rec action.Record) []*Candidate {
	for s := range rec {
		if rec[s].Kind != action.EntryCommand {
			continue
		}
		g.walkChainsFrom(rec, s)
	}

	var out []*Candidate
	for _, key := range g.order {
		c := g.byKey[key]
		if c.passesFilter() {
			out = append(out, c)
		}
	}
	g.log.Info().
		Int("candidates_generated", len(g.order)).
		Int("candidates_surviving_filter", len(out)).
		Msg("candidate generation complete")
	return out
}

func (g *Generator) walkChainsFrom(rec action.Record, s int) {
	var chain action.CommandChain
	started := false

	limit := s + g.maxChainSize
	if limit > len(rec) {
		limit = len(rec)
	}
	for e := s; e < limit; e++ {
		entry := rec[e]
		if entry.Kind == action.EntryRecordingStart {
			break
		}
		if e > s && entry.Command.SecondsSinceLast != nil && *entry.Command.SecondsSinceLast > maxTimeGapSeconds {
			break
		}
		if !started {
			chain = action.NewChainFromCommand(entry.Command, s)
			started = true
		} else {
			chain = chain.AppendCommand(entry.Command)
		}
		g.processChain(chain)
	}
}

func (g *Generator) processChain(chain action.CommandChain) {
	simplified := simplify.Chain(chain)
	g.processConcreteUsage(simplified)
	if shouldMakeAbstractRepeat(simplified) {
		g.processAbstractRepeat(simplified)
	}
	g.processAbstractProse(simplified)
}

func (g *Generator) register(kind Kind, name string, actions []action.Action) *Candidate {
	key := action.CanonicalActions(actions)
	c, ok := g.byKey[key]
	if !ok {
		c = newCandidate(kind, name, actions)
		g.byKey[key] = c
		g.order = append(g.order, key)
	}
	return c
}

func (g *Generator) processConcreteUsage(chain action.CommandChain) {
	c := g.register(Concrete, chain.Name, chain.Actions)
	c.processUsage(chain.EndingIndex(), chain.WordCount())
}

func shouldMakeAbstractRepeat(chain action.CommandChain) bool {
	if expandedActionCount(chain.Actions) < 3 {
		return false
	}
	for _, a := range chain.Actions {
		if a.Name == "repeat" {
			return true
		}
	}
	return false
}

// processAbstractRepeat synthesises an abstract candidate that replaces
// each repeat(n) action with repeat(<number_small_i> - 1), where i is that
// repeat's 1-based occurrence index within the chain, and appends each
// capture as <number_small_i> (without the postfix) to the candidate's name.
func (g *Generator) processAbstractRepeat(chain action.CommandChain) {
	newActions := make([]action.Action, len(chain.Actions))
	copy(newActions, chain.Actions)

	occurrence := 0
	var captureNames []string
	for i, a := range chain.Actions {
		if a.Name != "repeat" {
			continue
		}
		occurrence++
		cap := action.Capture{Name: "number_small", Instance: occurrence, Postfix: " - 1"}
		newActions[i] = action.New("repeat", action.CaptureArg(cap))
		captureNames = append(captureNames, "<"+cap.String()+">")
	}

	name := chain.Name
	if len(captureNames) > 0 {
		name = name + " " + strings.Join(captureNames, " ")
	}

	c := g.register(Abstract, name, newActions)
	wordsSaved := chain.WordCount() - 2
	if c.processUsage(chain.EndingIndex(), chain.WordCount()) {
		if !c.Instantiations.ContainsActions(chain.Actions) {
			c.Instantiations.InsertActions(chain.Actions)
			c.WordsSavedAccumulator += wordsSaved
		}
	}
}

// processAbstractProse looks for a dictated-prose match between each insert
// action's text and a contiguous word-span of the chain's name, and, on a
// consistent, valid-case match, synthesises an abstract candidate
// substituting <user.text> for the matched words.
func (g *Generator) processAbstractProse(chain action.CommandChain) {
	nameWords := strings.Fields(chain.Name)

	for idx, a := range chain.Actions {
		if !a.IsInsert() {
			continue
		}
		sep := textsep.Separate(a.InsertText())

		for start := 0; start < len(nameWords); start++ {
			remaining := len(nameWords) - start
			maxSpan := maxProseSpan
			if remaining < maxSpan {
				maxSpan = remaining
			}
			for length := 1; length <= maxSpan; length++ {
				span := strings.Join(nameWords[start:start+length], " ")
				g.tryProseSpan(chain, idx, sep, nameWords, start, length, span)
			}
		}
	}
}

func (g *Generator) tryProseSpan(
	chain action.CommandChain,
	insertIdx int,
	sep textsep.Separation,
	nameWords []string,
	start, length int,
	span string,
) {
	m, found := sep.FindProse(span)
	if !found {
		return
	}
	last := m.PartIndex
	if m.Spanning {
		last = m.PartIndex + m.WordCount - 1
	}
	if !sep.SeparatorConsistent(m.PartIndex, last) {
		return
	}
	words := sep.ProsePortionWords(m)
	wordCases, ok := textsep.ClassifyWords(words)
	if !ok {
		return
	}
	casePattern := textsep.CasePattern(wordCases)
	firstSeparator := sep.FirstProseSeparator(m)

	newNameWords := make([]string, 0, len(nameWords)-length+1)
	newNameWords = append(newNameWords, nameWords[:start]...)
	newNameWords = append(newNameWords, "<user.text>")
	newNameWords = append(newNameWords, nameWords[start+length:]...)
	newName := strings.Join(newNameWords, " ")

	prefixText := sep.TextBeforeProse(m)
	suffixText := sep.TextAfterProse(m)

	var replacement []action.Action
	if prefixText != "" {
		replacement = append(replacement, action.NewInsert(prefixText))
	}
	userTextCapture := action.Capture{Name: "user.text"}
	replacement = append(replacement, action.New(
		"insert_formatted",
		action.CaptureArg(userTextCapture),
		action.StringArg(casePattern),
		action.StringArg(firstSeparator),
	))
	if suffixText != "" {
		replacement = append(replacement, action.NewInsert(suffixText))
	}

	newActions := make([]action.Action, 0, len(chain.Actions)-1+len(replacement))
	newActions = append(newActions, chain.Actions[:insertIdx]...)
	newActions = append(newActions, replacement...)
	newActions = append(newActions, chain.Actions[insertIdx+1:]...)

	if len(newActions) < 2 {
		return
	}

	c := g.register(Abstract, newName, newActions)
	wordsSaved := len(newNameWords) - 2
	if c.processUsage(chain.EndingIndex(), chain.WordCount()) {
		if !c.Instantiations.ContainsActions(chain.Actions) {
			c.Instantiations.InsertActions(chain.Actions)
			c.WordsSavedAccumulator += wordsSaved
		}
	}
}
