package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// PlaceholderParticipantName is used for match slots whose entrant is not known yet.
const PlaceholderParticipantName = "Peserta TBD"

var (
	ErrRoundOutOfRange       = errors.New("round index out of range")
	ErrMatchOutOfRange       = errors.New("match index out of range")
	ErrParticipantOutOfRange = errors.New("participant index out of range")
)

// Participant is one side of a match. A nil Score means the match has not been played.
type Participant struct {
	Name  string `json:"name" yaml:"name"`
	Score *int   `json:"score,omitempty" yaml:"score,omitempty"`
}

// Match is a head-to-head pairing. It always holds exactly two participants.
type Match struct {
	Participants [2]Participant `json:"participants" yaml:"participants"`
}

func (m *Match) UnmarshalJSON(data []byte) error {
	var raw struct {
		Participants []Participant `json:"participants"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Participants) != 2 {
		return fmt.Errorf("match must have exactly 2 participants, got %d", len(raw.Participants))
	}
	m.Participants = [2]Participant{raw.Participants[0], raw.Participants[1]}
	return nil
}

// Round is one stage of a single-elimination bracket.
type Round struct {
	Title   string  `json:"title" yaml:"title"`
	Matches []Match `json:"matches" yaml:"matches"`
}

// Bracket is the ordered list of rounds of an event. Round i feeds round i+1.
// Rounds and matches are addressed by position; the mutation methods below
// edit the bracket in place.
type Bracket []Round

// ParseBracket decodes either a bare array of rounds or an object with a
// "rounds" field. JSON null and an empty array both give an empty bracket.
func ParseBracket(data []byte) (Bracket, error) {
	var bracket Bracket
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Rounds Bracket `json:"rounds"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("invalid bracket: %w", err)
		}
		bracket = wrapped.Rounds
	} else if err := json.Unmarshal(trimmed, &bracket); err != nil {
		return nil, fmt.Errorf("invalid bracket: %w", err)
	}
	if bracket == nil {
		bracket = Bracket{}
	}
	return bracket, nil
}

func NewPlaceholderMatch() Match {
	return Match{Participants: [2]Participant{
		{Name: PlaceholderParticipantName},
		{Name: PlaceholderParticipantName},
	}}
}

// AddRound appends an empty round. An empty title defaults to "Pusingan N".
func (b *Bracket) AddRound(title string) int {
	if title == "" {
		title = fmt.Sprintf("Pusingan %d", len(*b)+1)
	}
	*b = append(*b, Round{Title: title, Matches: []Match{}})
	return len(*b) - 1
}

func (b *Bracket) RemoveRound(roundIdx int) error {
	if err := b.checkRound(roundIdx); err != nil {
		return err
	}
	rounds := *b
	*b = append(rounds[:roundIdx:roundIdx], rounds[roundIdx+1:]...)
	return nil
}

func (b Bracket) SetRoundTitle(roundIdx int, title string) error {
	if err := b.checkRound(roundIdx); err != nil {
		return err
	}
	b[roundIdx].Title = title
	return nil
}

// AddMatch appends a placeholder match to the round and returns its index.
func (b Bracket) AddMatch(roundIdx int) (int, error) {
	if err := b.checkRound(roundIdx); err != nil {
		return 0, err
	}
	b[roundIdx].Matches = append(b[roundIdx].Matches, NewPlaceholderMatch())
	return len(b[roundIdx].Matches) - 1, nil
}

func (b Bracket) RemoveMatch(roundIdx, matchIdx int) error {
	if err := b.checkMatch(roundIdx, matchIdx); err != nil {
		return err
	}
	matches := b[roundIdx].Matches
	b[roundIdx].Matches = append(matches[:matchIdx:matchIdx], matches[matchIdx+1:]...)
	return nil
}

func (b Bracket) SetParticipantName(roundIdx, matchIdx, participantIdx int, name string) error {
	p, err := b.participant(roundIdx, matchIdx, participantIdx)
	if err != nil {
		return err
	}
	p.Name = name
	return nil
}

// SetParticipantScore sets or, when score is nil, clears a participant's score.
func (b Bracket) SetParticipantScore(roundIdx, matchIdx, participantIdx int, score *int) error {
	p, err := b.participant(roundIdx, matchIdx, participantIdx)
	if err != nil {
		return err
	}
	if score == nil {
		p.Score = nil
		return nil
	}
	v := *score
	p.Score = &v
	return nil
}

// Clone returns a deep copy, used when handing a bracket out of a repository.
func (b Bracket) Clone() Bracket {
	if b == nil {
		return nil
	}
	out := make(Bracket, len(b))
	for i, r := range b {
		out[i] = Round{Title: r.Title, Matches: make([]Match, len(r.Matches))}
		for j, m := range r.Matches {
			for k, p := range m.Participants {
				if p.Score != nil {
					s := *p.Score
					p.Score = &s
				}
				out[i].Matches[j].Participants[k] = p
			}
		}
	}
	return out
}

func (b Bracket) checkRound(roundIdx int) error {
	if roundIdx < 0 || roundIdx >= len(b) {
		return fmt.Errorf("%w: %d (rounds: %d)", ErrRoundOutOfRange, roundIdx, len(b))
	}
	return nil
}

func (b Bracket) checkMatch(roundIdx, matchIdx int) error {
	if err := b.checkRound(roundIdx); err != nil {
		return err
	}
	if matchIdx < 0 || matchIdx >= len(b[roundIdx].Matches) {
		return fmt.Errorf("%w: %d (matches in round %d: %d)", ErrMatchOutOfRange, matchIdx, roundIdx, len(b[roundIdx].Matches))
	}
	return nil
}

func (b Bracket) participant(roundIdx, matchIdx, participantIdx int) (*Participant, error) {
	if err := b.checkMatch(roundIdx, matchIdx); err != nil {
		return nil, err
	}
	if participantIdx < 0 || participantIdx > 1 {
		return nil, fmt.Errorf("%w: %d", ErrParticipantOutOfRange, participantIdx)
	}
	return &b[roundIdx].Matches[matchIdx].Participants[participantIdx], nil
}
