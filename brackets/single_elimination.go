package brackets

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/pskpp/festival/models"
)

const (
	ByeName = "BYE"
	TBDName = "TBD"
)

var ErrNotEnoughEntrants = errors.New("not enough entrants to generate a single elimination bracket (minimum 2)")

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

// GenerateBracket builds an unplayed bracket from entrant names. A full field
// is paired in order. Otherwise it is padded to the next power of two with
// byes, spread so that no match pairs two byes. An entrant drawn against a
// bye is already placed in the second round.
func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (models.Bracket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entrants := make([]string, 0, len(params.Entrants))
	for _, name := range params.Entrants {
		if name = strings.TrimSpace(name); name != "" {
			entrants = append(entrants, name)
		}
	}
	n := len(entrants)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughEntrants, n)
	}

	numRounds := bits.Len(uint(n - 1))
	size := 1 << numRounds

	// Первая половина участников занимает верхние слоты пар, остальные и
	// BYE заполняют нижние.
	slots := make([]string, size)
	half := size / 2
	for i := 0; i < size; i++ {
		slots[i] = ByeName
	}
	if n == size {
		copy(slots, entrants)
	} else {
		for i, name := range entrants {
			if i < half {
				slots[2*i] = name
			} else {
				slots[2*(i-half)+1] = name
			}
		}
	}

	bracket := make(models.Bracket, 0, numRounds)
	first := models.Round{Title: roundTitle(0, numRounds), Matches: make([]models.Match, 0, half)}
	advanced := make([]string, 0, half)
	for i := 0; i < size; i += 2 {
		first.Matches = append(first.Matches, models.Match{Participants: [2]models.Participant{
			{Name: slots[i]}, {Name: slots[i+1]},
		}})
		switch {
		case slots[i+1] == ByeName:
			advanced = append(advanced, slots[i])
		case slots[i] == ByeName:
			advanced = append(advanced, slots[i+1])
		default:
			advanced = append(advanced, TBDName)
		}
	}
	bracket = append(bracket, first)

	for r := 1; r < numRounds; r++ {
		matchCount := size >> (r + 1)
		round := models.Round{Title: roundTitle(r, numRounds), Matches: make([]models.Match, 0, matchCount)}
		for i := 0; i < matchCount; i++ {
			p1, p2 := TBDName, TBDName
			if r == 1 {
				p1, p2 = advanced[2*i], advanced[2*i+1]
			}
			round.Matches = append(round.Matches, models.Match{Participants: [2]models.Participant{
				{Name: p1}, {Name: p2},
			}})
		}
		bracket = append(bracket, round)
	}

	return bracket, nil
}

func roundTitle(roundIdx, numRounds int) string {
	switch numRounds - roundIdx {
	case 1:
		return "Akhir"
	case 2:
		return "Separuh Akhir"
	case 3:
		return "Suku Akhir"
	default:
		return fmt.Sprintf("Pusingan %d", roundIdx+1)
	}
}

// GenerateRounds is a shortcut for the single elimination generator.
func GenerateRounds(entrants []string) (models.Bracket, error) {
	return NewSingleEliminationGenerator().GenerateBracket(context.Background(), GenerateBracketParams{Entrants: entrants})
}
