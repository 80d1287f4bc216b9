package brackets

// Layout constants in abstract units (pixels when rendered as SVG). They are
// fixed: connector math only lines up when every renderer uses the same values.
const (
	MatchHeight    = 70.0 // высота карточки матча
	MatchWidth     = 208.0
	BaseGap        = 32.0 // вертикальный отступ между матчами первого раунда
	ConnectorWidth = 40.0
	RoundGap       = ConnectorWidth * 2
	HeaderHeight   = 48.0
	Padding        = 16.0
)

// VerticalGap returns the space between consecutive matches of a round.
//
//	gap(0) = BaseGap
//	gap(r) = 2*gap(r-1) + MatchHeight
//
// Each round has to straddle two matches of the previous round plus the gap
// between them.
func VerticalGap(round int) float64 {
	if round <= 0 {
		return BaseGap
	}
	gap := BaseGap
	for r := 1; r <= round; r++ {
		gap = 2*gap + MatchHeight
	}
	return gap
}

// FirstMatchMargin is the top margin of a round's first match, measured from
// the first match of the previous round. It centres the match between the
// first pair of the previous round.
func FirstMatchMargin(round int) float64 {
	if round <= 0 {
		return 0
	}
	return (VerticalGap(round-1) + MatchHeight) / 2
}

// FirstMatchOffset is the distance from the top of the match area to the first
// match of the round, i.e. the sum of FirstMatchMargin over rounds 0..round.
func FirstMatchOffset(round int) float64 {
	offset := 0.0
	for r := 1; r <= round; r++ {
		offset += FirstMatchMargin(r)
	}
	return offset
}

// ColumnX is the left edge of a round column inside the padded canvas.
func ColumnX(round int) float64 {
	return Padding + float64(round)*(MatchWidth+RoundGap)
}

type ConnectorKind string

const (
	// ConnectorStub runs from the right edge of a match to the bus line.
	ConnectorStub ConnectorKind = "stub"
	// ConnectorBus joins the centres of two sibling matches.
	ConnectorBus ConnectorKind = "bus"
	// ConnectorFeed leaves the middle of the bus toward the next round.
	ConnectorFeed ConnectorKind = "feed"
)

// Segment is an axis-aligned connector line in canvas coordinates.
type Segment struct {
	Kind ConnectorKind `json:"kind"`
	X1   float64       `json:"x1"`
	Y1   float64       `json:"y1"`
	X2   float64       `json:"x2"`
	Y2   float64       `json:"y2"`
}

// Connectors returns the connector segments drawn to the right of one match.
// x and y are the match's top-left corner, gap is the vertical gap of its
// round. The last round draws nothing; an even-indexed match without a sibling
// only gets its stub.
func Connectors(x, y, gap float64, matchIdx, matchesInRound int, lastRound bool) []Segment {
	if lastRound {
		return nil
	}

	midY := y + MatchHeight/2
	right := x + MatchWidth
	busX := right + ConnectorWidth

	segments := []Segment{
		{Kind: ConnectorStub, X1: right, Y1: midY, X2: busX, Y2: midY},
	}

	hasSibling := matchIdx%2 == 0 && matchIdx+1 < matchesInRound
	if !hasSibling {
		return segments
	}

	span := MatchHeight + gap
	feedY := midY + span/2
	segments = append(segments,
		Segment{Kind: ConnectorBus, X1: busX, Y1: midY, X2: busX, Y2: midY + span},
		Segment{Kind: ConnectorFeed, X1: busX, Y1: feedY, X2: busX + ConnectorWidth, Y2: feedY},
	)
	return segments
}
