package brackets

import (
	"context"

	"github.com/pskpp/festival/models"
)

type GenerateBracketParams struct {
	Entrants []string
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) (models.Bracket, error)

	GetName() string
}
