package factgraph

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
- situation_id: sit-001
  position: Center Fielder
  game_state: 1 out, runner on 2nd
  play: Single to center
  recommended_actions:
    - Charge the ball
    - Throw home
    - Hit the cutoff man
  key_concepts:
    - Cutoff relay
    - Runner speed
  explanation: Keep the runner from scoring.
  source: coach
- situation_id: sit-002
  position: Catcher
  game_state: 2 outs, bases loaded
  play: Wild pitch
  recommended_actions: [Block the ball]
`

func TestLoad_ExpandsRecords(t *testing.T) {
	s, err := Load(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	edges := s.EdgesFrom("Center Fielder")
	require.Len(t, edges, 1)
	assert.Equal(t, HasResponsibilityIn, edges[0].Predicate)
	assert.Equal(t, "1 out, runner on 2nd", edges[0].Node)
	src, _ := edges[0].Attrs.String(AttrSource)
	assert.Equal(t, "coach", src)

	play := s.EdgesFrom("1 out, runner on 2nd")
	require.Len(t, play, 1)
	assert.Equal(t, Triggers, play[0].Predicate)
	assert.Equal(t, "Single to center", play[0].Node)

	var suggests, concepts []string
	for _, e := range s.EdgesFrom("Single to center") {
		switch e.Predicate {
		case Suggests:
			ord, ok := e.Attrs.Int(AttrOrder)
			require.True(t, ok)
			assert.Equal(t, len(suggests), ord)
			suggests = append(suggests, e.Node)
		case RequiresUnderstandingOf:
			concepts = append(concepts, e.Node)
		}
	}
	assert.Equal(t, []string{"Charge the ball", "Throw home", "Hit the cutoff man"}, suggests)
	assert.Equal(t, []string{"Cutoff relay", "Runner speed"}, concepts)

	attrs := s.NodeAttrs("Single to center")
	exp, _ := attrs.String(AttrExplanation)
	assert.Equal(t, "Keep the runner from scoring.", exp)
}

func TestLoad_DefaultSourceAndNoExplanation(t *testing.T) {
	s, err := Load(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	attrs := s.NodeAttrs("Wild pitch")
	src, _ := attrs.String(AttrSource)
	assert.Equal(t, DefaultSource, src)
	_, hasExp := attrs[AttrExplanation]
	assert.False(t, hasExp, "explanation should only be set when present in the record")
}

func TestLoad_FailsClosedWithAllOffenders(t *testing.T) {
	input := `
- situation_id: ok
  position: Pitcher
  game_state: 0 outs
  play: Bunt
- situation_id: no-play
  position: Pitcher
  game_state: 1 out
- situation_id: empty
`
	s, err := Load(strings.NewReader(input))
	require.Error(t, err)
	assert.Nil(t, s)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Records, 2)
	assert.Equal(t, 1, verr.Records[0].Index)
	assert.Equal(t, []string{"missing play"}, verr.Records[0].Problems)
	assert.Equal(t, 2, verr.Records[1].Index)
	assert.Equal(t, []string{"missing position, game_state, play"}, verr.Records[1].Problems)
	assert.Contains(t, err.Error(), "record 2 (empty)")
}

func TestLoad_RejectsSecondTriggerForGameState(t *testing.T) {
	input := `
- position: Shortstop
  game_state: 2 outs
  play: Grounder to SS
- position: Second Baseman
  game_state: 2 outs
  play: Pop fly
- position: Second Baseman
  game_state: 2 outs
  play: Grounder to SS
`
	_, err := Load(strings.NewReader(input))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Records, 1)
	assert.Equal(t, 1, verr.Records[0].Index)
	assert.Contains(t, verr.Records[0].Problems[0], "already triggers")
}

func TestLoad_JSONInput(t *testing.T) {
	input := `[{"position":"Pitcher","game_state":"0 outs","play":"Bunt","recommended_actions":["Field it"]}]`
	s, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Scenario{{Role: "Pitcher", GameState: "0 outs"}}, s.Scenarios())
}

func TestLoad_EmptyInput(t *testing.T) {
	s, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	_, err = s.RandomResponsibilityPair(nil)
	assert.ErrorIs(t, err, ErrEmptyStore)
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(strings.NewReader("position: [unclosed"))
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}
