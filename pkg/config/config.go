// Package config manages the on-disk configuration directory: the
// persistently-rejected-actions and persistently-rejected-commands files the
// interactive refinement driver appends to on exit and reads back on the
// next run.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"dictrec/pkg/action"
	"dictrec/pkg/record"
)

const (
	directoryName        = "configuration"
	actionsToRejectName  = "actions_to_reject.txt"
	commandsToRejectName = "commands_to_reject.txt"
)

// ErrStore wraps every error this package returns that should abort the
// run (directory/file creation failures); missing or unparseable entries
// inside an existing file are warnings, not errors, per the run's
// best-effort filesystem policy.
var ErrStore = errors.New("config: store error")

// Store is the configuration directory rooted at Dir, holding the
// persistently-rejected actions and command sequences.
type Store struct {
	dir string
	log zerolog.Logger
}

// New returns a Store rooted at baseDir/configuration, creating the
// directory and its two files if they do not already exist. Creation is
// idempotent: re-running it on an existing directory is a no-op.
func New(baseDir string, log zerolog.Logger) (*Store, error) {
	dir := filepath.Join(baseDir, directoryName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", ErrStore, dir, err)
	}
	s := &Store{dir: dir, log: log}
	if err := s.touch(actionsToRejectName); err != nil {
		return nil, err
	}
	if err := s.touch(commandsToRejectName); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) touch(name string) error {
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: checking %s: %v", ErrStore, path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrStore, path, err)
	}
	return f.Close()
}

// RejectedActions loads the persistently-rejected actions file, one JSON
// action per line. A missing file warns and returns an empty set; a line
// that fails to parse is skipped with a warning naming the line, not the
// whole file.
func (s *Store) RejectedActions() *action.Set {
	return s.loadActionLines(actionsToRejectName)
}

// RejectedCommands loads the persistently-rejected commands file, one
// canonical action-sequence string per line, matched against a candidate's
// own CanonicalActions encoding.
func (s *Store) RejectedCommands() *action.Set {
	out := action.NewSet()
	path := filepath.Join(s.dir, commandsToRejectName)
	f, err := os.Open(path)
	if err != nil {
		s.warnMissing(commandsToRejectName, err)
		return out
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		out.AddRaw(line)
	}
	return out
}

func (s *Store) loadActionLines(name string) *action.Set {
	out := action.NewSet()
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		s.warnMissing(name, err)
		return out
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		a, err := record.ParseActionLine(line)
		if err != nil {
			s.log.Warn().Str("file", name).Str("line", line).Err(err).Msg("failed to parse rejected action")
			continue
		}
		out.AddAction(a)
	}
	return out
}

func (s *Store) warnMissing(name string, err error) {
	if os.IsNotExist(err) {
		s.log.Warn().Str("file", name).Msg("configuration file does not exist")
		return
	}
	s.log.Warn().Str("file", name).Err(err).Msg("failed to read configuration file")
}

// AppendRejectedActions appends each action's canonical JSON form as a new
// line. A write failure is logged and the run continues; it never
// invalidates the in-memory selection or the eventual output file.
func (s *Store) AppendRejectedActions(actions []action.Action) {
	s.appendLines(actionsToRejectName, actionLines(actions))
}

// AppendRejectedCommands appends each action sequence's canonical
// concatenation as a new line.
func (s *Store) AppendRejectedCommands(sequences [][]action.Action) {
	lines := make([]string, len(sequences))
	for i, seq := range sequences {
		lines[i] = action.CanonicalActions(seq)
	}
	s.appendLines(commandsToRejectName, lines)
}

func actionLines(actions []action.Action) []string {
	lines := make([]string, len(actions))
	for i, a := range actions {
		lines[i] = a.CanonicalString()
	}
	return lines
}

func (s *Store) appendLines(name string, lines []string) {
	if len(lines) == 0 {
		return
	}
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.log.Warn().Str("file", name).Err(err).Msg("failed to open configuration file for appending")
		return
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			s.log.Warn().Str("file", name).Err(err).Msg("failed to append configuration entry")
			return
		}
	}
	if err := w.Flush(); err != nil {
		s.log.Warn().Str("file", name).Err(err).Msg("failed to flush configuration file")
	}
}
