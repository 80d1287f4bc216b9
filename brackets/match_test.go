package brackets

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/pskpp/festival/models"
)

func score(v int) *int { return &v }

func match(s1, s2 *int) models.Match {
	return models.Match{Participants: [2]models.Participant{
		{Name: "Selangor", Score: s1},
		{Name: "Pahang", Score: s2},
	}}
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name  string
		match models.Match
		want  int
	}{
		{name: "first higher", match: match(score(3), score(2)), want: 0},
		{name: "second higher", match: match(score(2), score(3)), want: 1},
		{name: "tie", match: match(score(1), score(1)), want: NoWinner},
		{name: "first unset", match: match(nil, score(4)), want: NoWinner},
		{name: "second unset", match: match(score(4), nil), want: NoWinner},
		{name: "both unset", match: match(nil, nil), want: NoWinner},
		{name: "zero beats unset is not a win", match: match(score(0), nil), want: NoWinner},
		{name: "zero loses to one", match: match(score(0), score(1)), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Winner(tt.match))
		})
	}
}

func TestMatchRows(t *testing.T) {
	rows := matchRows(match(score(5), nil))
	assert.Equal(t, "5", rows[0].Score)
	assert.Equal(t, ScorePlaceholder, rows[1].Score)
	assert.False(t, rows[0].IsWinner)
	assert.False(t, rows[1].IsWinner)

	rows = matchRows(match(score(1), score(3)))
	assert.False(t, rows[0].IsWinner)
	assert.True(t, rows[1].IsWinner)
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "Kuala Lumpur", truncateName("Kuala Lumpur"))

	long := strings.Repeat("Negeri Sembilan ", 3)
	got := truncateName(long)
	assert.Equal(t, MaxNameRunes, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, ellipsis))
}
