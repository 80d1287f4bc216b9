package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestBracketAddRoundDefaultsTitle(t *testing.T) {
	var b Bracket
	assert.Equal(t, 0, b.AddRound(""))
	assert.Equal(t, 1, b.AddRound("Akhir"))
	assert.Equal(t, 2, b.AddRound(""))

	assert.Equal(t, "Pusingan 1", b[0].Title)
	assert.Equal(t, "Akhir", b[1].Title)
	assert.Equal(t, "Pusingan 3", b[2].Title)
	assert.NotNil(t, b[0].Matches)
	assert.Empty(t, b[0].Matches)
}

func TestBracketMatchMutations(t *testing.T) {
	var b Bracket
	r := b.AddRound("Separuh Akhir")

	i, err := b.AddMatch(r)
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Equal(t, NewPlaceholderMatch(), b[r].Matches[0])

	_, err = b.AddMatch(r)
	require.NoError(t, err)
	require.NoError(t, b.SetParticipantName(r, 1, 0, "Perlis"))
	require.NoError(t, b.RemoveMatch(r, 0))

	require.Len(t, b[r].Matches, 1)
	assert.Equal(t, "Perlis", b[r].Matches[0].Participants[0].Name)
	assert.Equal(t, PlaceholderParticipantName, b[r].Matches[0].Participants[1].Name)
}

func TestBracketSetParticipantScore(t *testing.T) {
	var b Bracket
	b.AddRound("")
	_, err := b.AddMatch(0)
	require.NoError(t, err)

	s := 4
	require.NoError(t, b.SetParticipantScore(0, 0, 1, &s))
	s = 9
	require.NotNil(t, b[0].Matches[0].Participants[1].Score)
	assert.Equal(t, 4, *b[0].Matches[0].Participants[1].Score, "score must be copied")

	require.NoError(t, b.SetParticipantScore(0, 0, 1, nil))
	assert.Nil(t, b[0].Matches[0].Participants[1].Score)
}

func TestBracketRemoveRoundKeepsOrder(t *testing.T) {
	var b Bracket
	b.AddRound("A")
	b.AddRound("B")
	b.AddRound("C")
	require.NoError(t, b.RemoveRound(1))
	require.Len(t, b, 2)
	assert.Equal(t, "A", b[0].Title)
	assert.Equal(t, "C", b[1].Title)
	require.NoError(t, b.SetRoundTitle(1, "Akhir"))
	assert.Equal(t, "Akhir", b[1].Title)
}

func TestBracketOutOfRange(t *testing.T) {
	var b Bracket
	b.AddRound("")
	_, err := b.AddMatch(0)
	require.NoError(t, err)

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"remove round -1", b.RemoveRound(-1), ErrRoundOutOfRange},
		{"title round 5", b.SetRoundTitle(5, "x"), ErrRoundOutOfRange},
		{"remove match 3", b.RemoveMatch(0, 3), ErrMatchOutOfRange},
		{"name in missing round", b.SetParticipantName(2, 0, 0, "x"), ErrRoundOutOfRange},
		{"participant 2", b.SetParticipantName(0, 0, 2, "x"), ErrParticipantOutOfRange},
		{"score participant -1", b.SetParticipantScore(0, 0, -1, intPtr(1)), ErrParticipantOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.want)
		})
	}

	_, err = b.AddMatch(1)
	assert.ErrorIs(t, err, ErrRoundOutOfRange)
	// failed mutations leave the bracket untouched
	assert.Len(t, b, 1)
	assert.Len(t, b[0].Matches, 1)
}

func TestBracketClone(t *testing.T) {
	b := Bracket{{Title: "Akhir", Matches: []Match{{Participants: [2]Participant{
		{Name: "A", Score: intPtr(2)}, {Name: "B"},
	}}}}}
	c := b.Clone()
	assert.Equal(t, b, c)

	*c[0].Matches[0].Participants[0].Score = 7
	c[0].Title = "Final"
	assert.Equal(t, 2, *b[0].Matches[0].Participants[0].Score)
	assert.Equal(t, "Akhir", b[0].Title)
	assert.Nil(t, Bracket(nil).Clone())
}

func TestMatchUnmarshalRequiresTwoParticipants(t *testing.T) {
	var m Match
	require.NoError(t, json.Unmarshal([]byte(`{"participants":[{"name":"A","score":1},{"name":"B"}]}`), &m))
	assert.Equal(t, "A", m.Participants[0].Name)
	require.NotNil(t, m.Participants[0].Score)
	assert.Nil(t, m.Participants[1].Score)

	for _, raw := range []string{
		`{"participants":[{"name":"A"}]}`,
		`{"participants":[{"name":"A"},{"name":"B"},{"name":"C"}]}`,
		`{"participants":[{"name":"A","score":1.5},{"name":"B"}]}`,
	} {
		assert.Error(t, json.Unmarshal([]byte(raw), &m), raw)
	}
}

func TestBracketJSONRoundTripKeepsUnsetScores(t *testing.T) {
	b := Bracket{{Title: "Akhir", Matches: []Match{{Participants: [2]Participant{
		{Name: "A", Score: intPtr(0)}, {Name: "B"},
	}}}}}
	raw, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"Akhir","matches":[{"participants":[{"name":"A","score":0},{"name":"B"}]}]}]`, string(raw))

	var back Bracket
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, b, back)
}

func TestEventSpan(t *testing.T) {
	e := Event{Date: "2025-03-01", EndDate: "2025-03-03"}
	start, end, ok := e.Span()
	require.True(t, ok)
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, 3, end.Day())

	start, end, ok = Event{Date: "2025-03-01"}.Span()
	require.True(t, ok)
	assert.Equal(t, start, end)

	_, _, ok = Event{Date: "bukan tarikh"}.Span()
	assert.False(t, ok)
}

func TestParseBracket(t *testing.T) {
	round := `{"title":"Akhir","matches":[{"participants":[{"name":"A","score":1},{"name":"B","score":0}]}]}`

	tests := []struct {
		name   string
		input  string
		rounds int
	}{
		{"bare array", "[" + round + "]", 1},
		{"wrapped", `{"rounds":[` + round + `]}`, 1},
		{"null", "null", 0},
		{"empty array", " [] ", 0},
		{"wrapped without rounds", "{}", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseBracket([]byte(tt.input))
			require.NoError(t, err)
			require.NotNil(t, b)
			assert.Len(t, b, tt.rounds)
		})
	}

	_, err := ParseBracket([]byte(`[{"title":"x","matches":[{"participants":[{"name":"A"}]}]}]`))
	assert.Error(t, err)
	_, err = ParseBracket([]byte(`"rounds"`))
	assert.Error(t, err)
}
