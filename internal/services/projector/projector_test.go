package projector_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/services/projector"
	"github.com/mcoot/halitebot/internal/testutil"
)

type ProjectorSuite struct {
	suite.Suite
	state *model.GameState
	proj  *projector.Projector
}

func TestProjectorSuite(t *testing.T) {
	suite.Run(t, new(ProjectorSuite))
}

func (s *ProjectorSuite) SetupTest() {
	s.state = testutil.State(s.T(), 3,
		"P10 P20 P30",
		"P40 U50 P60",
		"P70 P80 E2:90",
	)
	s.proj = projector.New(3, 3)
}

func (s *ProjectorSuite) TestEmptyIsAbsentNotZero() {
	v, ok := s.proj.Project(1, 1)
	s.False(ok)
	s.Equal(0, v)
	s.Equal(-1, s.proj.ProjectOr(1, 1, -1))
}

func (s *ProjectorSuite) TestMoveAddsStrength() {
	// (0,2) is P10 at the top-left, moving right onto (1,2)
	s.Require().NoError(s.proj.Apply(s.state, model.Order{X: 0, Y: 2, Direction: model.Right}))

	v, ok := s.proj.Project(1, 2)
	s.True(ok)
	s.Equal(10, v)
}

func (s *ProjectorSuite) TestAdditiveRegardlessOfOrder() {
	left := model.Order{X: 0, Y: 1, Direction: model.Right} // P40 onto (1,1)
	right := model.Order{X: 2, Y: 1, Direction: model.Left} // P60 onto (1,1)

	s.Require().NoError(s.proj.Apply(s.state, left))
	s.Require().NoError(s.proj.Apply(s.state, right))
	first, _ := s.proj.Project(1, 1)

	other := projector.New(3, 3)
	s.Require().NoError(other.Apply(s.state, right))
	s.Require().NoError(other.Apply(s.state, left))
	second, _ := other.Project(1, 1)

	s.Equal(100, first)
	s.Equal(first, second)
}

func (s *ProjectorSuite) TestStandAddsProductionOnce() {
	s.Require().NoError(s.proj.Apply(s.state, model.Order{X: 1, Y: 2, Direction: model.Stand}))

	v, _ := s.proj.Project(1, 2)
	s.Equal(20+3, v)

	// A second order arriving at the same cell adds only its own strength
	s.Require().NoError(s.proj.Apply(s.state, model.Order{X: 0, Y: 2, Direction: model.Right}))
	v, _ = s.proj.Project(1, 2)
	s.Equal(20+3+10, v)
}

func (s *ProjectorSuite) TestWrapsDestination() {
	// P70 at (0,0) moving left wraps to (2,0)
	s.Require().NoError(s.proj.Apply(s.state, model.Order{X: 0, Y: 0, Direction: model.Left}))
	v, ok := s.proj.Project(-1, 3)
	s.True(ok)
	s.Equal(70, v)
}

func (s *ProjectorSuite) TestRejectsNonPlayerSource() {
	err := s.proj.Apply(s.state, model.Order{X: 1, Y: 1, Direction: model.Stand})
	s.ErrorIs(err, model.ErrNotPlayerCell)
}

func (s *ProjectorSuite) TestOverflowAndReset() {
	s.Require().NoError(s.proj.Apply(s.state, model.Order{X: 2, Y: 1, Direction: model.Stand})) // 63
	s.Equal(0, s.proj.Overflow())

	heavy := testutil.Filled(s.T(), 2, 1, 0, model.PlayerCell(200))
	p := projector.New(2, 1)
	s.Require().NoError(p.Apply(heavy, model.Order{X: 0, Y: 0, Direction: model.Right}))
	s.Require().NoError(p.Apply(heavy, model.Order{X: 1, Y: 0, Direction: model.Stand}))
	s.Equal(400-255, p.Overflow())

	p.Reset()
	_, ok := p.Project(1, 0)
	s.False(ok)
}
