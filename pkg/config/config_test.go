package config

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"dictrec/pkg/action"
)

type storeSuite struct {
	suite.Suite
	dir   string
	store *Store
}

func (s *storeSuite) SetupTest() {
	s.dir = s.T().TempDir()
	store, err := New(s.dir, zerolog.Nop())
	s.Require().NoError(err)
	s.store = store
}

func (s *storeSuite) TestCreationIsIdempotent() {
	_, err := New(s.dir, zerolog.Nop())
	s.Require().NoError(err)
}

func (s *storeSuite) TestFreshStoreHasNoRejections() {
	s.Equal(0, s.store.RejectedActions().Len())
	s.Equal(0, s.store.RejectedCommands().Len())
}

func (s *storeSuite) TestAppendAndReloadActions() {
	a := action.NewInsert("foo")
	s.store.AppendRejectedActions([]action.Action{a})

	reloaded, err := New(s.dir, zerolog.Nop())
	s.Require().NoError(err)
	s.True(reloaded.RejectedActions().ContainsAction(a))
}

func (s *storeSuite) TestAppendAndReloadCommands() {
	seq := []action.Action{action.NewInsert("foo"), action.New("key", action.StringArg("a"))}
	s.store.AppendRejectedCommands([][]action.Action{seq})

	reloaded, err := New(s.dir, zerolog.Nop())
	s.Require().NoError(err)
	s.True(reloaded.RejectedCommands().Contains(seq))
}

func (s *storeSuite) TestMalformedLineIsSkippedNotFatal() {
	path := s.dir + "/configuration/actions_to_reject.txt"
	s.Require().NoError(os.WriteFile(path, []byte("not json\n"+action.NewInsert("ok").CanonicalString()+"\n"), 0o644))

	reloaded, err := New(s.dir, zerolog.Nop())
	s.Require().NoError(err)
	set := reloaded.RejectedActions()
	s.True(set.ContainsAction(action.NewInsert("ok")))
	s.Equal(1, set.Len())
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(storeSuite))
}
