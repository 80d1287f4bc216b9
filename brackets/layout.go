package brackets

import (
	"fmt"

	"github.com/pskpp/festival/models"
)

// Layout is the positioned rendering of a bracket: round columns laid out left
// to right, each holding stacked match blocks and their connectors. Width and
// Height give the full extent of the canvas, which is wider than the viewport
// for brackets with many rounds and is expected to scroll horizontally.
type Layout struct {
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	RoundGap float64  `json:"round_gap"`
	Columns  []Column `json:"columns"`
	// Warnings lists rounds whose size does not halve the previous round.
	// The layout is still produced; connectors simply will not line up.
	Warnings []string `json:"warnings"`
}

type Column struct {
	Index            int          `json:"index"`
	Title            string       `json:"title"`
	X                float64      `json:"x"`
	Gap              float64      `json:"gap"`
	FirstMatchMargin float64      `json:"first_match_margin"`
	FirstMatchOffset float64      `json:"first_match_offset"`
	Matches          []MatchBlock `json:"matches"`
}

type MatchBlock struct {
	Index      int               `json:"index"`
	X          float64           `json:"x"`
	Y          float64           `json:"y"`
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Winner     int               `json:"winner"`
	Rows       [2]ParticipantRow `json:"rows"`
	Connectors []Segment         `json:"connectors"`
}

// Compute lays out the bracket. It returns nil for an empty bracket. The
// result depends only on the input, so calling it twice yields equal layouts.
func Compute(bracket models.Bracket) *Layout {
	if len(bracket) == 0 {
		return nil
	}

	l := &Layout{
		RoundGap: RoundGap,
		Columns:  make([]Column, 0, len(bracket)),
		Warnings: shapeWarnings(bracket),
	}

	bottom := Padding + HeaderHeight
	for r, round := range bracket {
		col := buildColumn(r, round, r == len(bracket)-1)
		for _, m := range col.Matches {
			bottom = max(bottom, m.Y+m.Height)
		}
		l.Columns = append(l.Columns, col)
	}

	l.Width = ColumnX(len(bracket)-1) + MatchWidth + Padding
	l.Height = bottom + Padding
	return l
}

func buildColumn(roundIdx int, round models.Round, lastRound bool) Column {
	gap := VerticalGap(roundIdx)
	col := Column{
		Index:            roundIdx,
		Title:            round.Title,
		X:                ColumnX(roundIdx),
		Gap:              gap,
		FirstMatchMargin: FirstMatchMargin(roundIdx),
		FirstMatchOffset: FirstMatchOffset(roundIdx),
		Matches:          make([]MatchBlock, 0, len(round.Matches)),
	}

	y := Padding + HeaderHeight + col.FirstMatchOffset
	for i, match := range round.Matches {
		if i > 0 {
			y += MatchHeight + gap
		}
		col.Matches = append(col.Matches, MatchBlock{
			Index:      i,
			X:          col.X,
			Y:          y,
			Width:      MatchWidth,
			Height:     MatchHeight,
			Winner:     Winner(match),
			Rows:       matchRows(match),
			Connectors: Connectors(col.X, y, gap, i, len(round.Matches), lastRound),
		})
	}
	return col
}

func shapeWarnings(bracket models.Bracket) []string {
	warnings := []string{}
	for r := 1; r < len(bracket); r++ {
		prev, cur := len(bracket[r-1].Matches), len(bracket[r].Matches)
		if prev != 2*cur {
			warnings = append(warnings, fmt.Sprintf(
				"round %d (%q) has %d matches but round %d (%q) has %d; expected %d",
				r+1, bracket[r].Title, cur, r, bracket[r-1].Title, prev, (prev+1)/2))
		}
	}
	return warnings
}
