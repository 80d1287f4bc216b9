package brackets

import (
	"strconv"
	"unicode/utf8"

	"github.com/pskpp/festival/models"
)

// NoWinner is returned by Winner when neither participant is ahead.
const NoWinner = -1

const (
	// MaxNameRunes is how many runes of a participant name fit on a match card.
	MaxNameRunes     = 22
	ScorePlaceholder = "-"
	ellipsis         = "…"
)

// Winner returns the index of the winning participant. A participant wins only
// when both scores are set and its score is strictly higher.
func Winner(m models.Match) int {
	p1, p2 := m.Participants[0], m.Participants[1]
	if p1.Score == nil || p2.Score == nil {
		return NoWinner
	}
	switch {
	case *p1.Score > *p2.Score:
		return 0
	case *p2.Score > *p1.Score:
		return 1
	default:
		return NoWinner
	}
}

// ParticipantRow is one line of a rendered match card.
type ParticipantRow struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Score    string `json:"score"`
	IsWinner bool   `json:"is_winner"`
}

func matchRows(m models.Match) [2]ParticipantRow {
	winner := Winner(m)
	var rows [2]ParticipantRow
	for i, p := range m.Participants {
		rows[i] = ParticipantRow{
			Name:     p.Name,
			Label:    truncateName(p.Name),
			Score:    scoreLabel(p.Score),
			IsWinner: winner == i,
		}
	}
	return rows
}

func scoreLabel(score *int) string {
	if score == nil {
		return ScorePlaceholder
	}
	return strconv.Itoa(*score)
}

func truncateName(name string) string {
	if utf8.RuneCountInString(name) <= MaxNameRunes {
		return name
	}
	runes := []rune(name)
	return string(runes[:MaxNameRunes-1]) + ellipsis
}
