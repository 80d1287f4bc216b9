package models

import "time"

// EventCategoryIcon selects the pictogram shown on an event card.
type EventCategoryIcon string

const (
	IconFootball    EventCategoryIcon = "football"
	IconHockey      EventCategoryIcon = "hockey"
	IconBadminton   EventCategoryIcon = "badminton"
	IconBasketball  EventCategoryIcon = "basketball"
	IconVolleyball  EventCategoryIcon = "volleyball"
	IconBowling     EventCategoryIcon = "bowling"
	IconTennis      EventCategoryIcon = "tennis"
	IconGolf        EventCategoryIcon = "golf"
	IconRunning     EventCategoryIcon = "running"
	IconCulture     EventCategoryIcon = "culture"
	IconSepakTakraw EventCategoryIcon = "sepak-takraw"
	IconSoftball    EventCategoryIcon = "softball"
	IconPetanque    EventCategoryIcon = "petanque"
	IconPingPong    EventCategoryIcon = "ping-pong"
	IconDefault     EventCategoryIcon = "default"
)

func (i EventCategoryIcon) IsValid() bool {
	switch i {
	case IconFootball, IconHockey, IconBadminton, IconBasketball, IconVolleyball,
		IconBowling, IconTennis, IconGolf, IconRunning, IconCulture, IconSepakTakraw,
		IconSoftball, IconPetanque, IconPingPong, IconDefault:
		return true
	}
	return false
}

// DateLayout is the calendar date format used by Event.Date and Event.EndDate.
const DateLayout = "2006-01-02"

type ScheduleItem struct {
	Time     string `json:"time" yaml:"time"`
	Activity string `json:"activity" yaml:"activity"`
}

// Event is one festival event. The bracket is owned by the event and is
// stored and deleted together with it.
type Event struct {
	ID           string            `json:"id" yaml:"id"`
	ImageURL     string            `json:"image_url" yaml:"image_url"`
	Title        string            `json:"title" yaml:"title"`
	Category     string            `json:"category" yaml:"category"`
	CategoryIcon EventCategoryIcon `json:"category_icon,omitempty" yaml:"category_icon,omitempty"`
	GameStatus   string            `json:"game_status,omitempty" yaml:"game_status,omitempty"`
	Date         string            `json:"date" yaml:"date"`
	StartTime    string            `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndDate      string            `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	EndTime      string            `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Location     string            `json:"location" yaml:"location"`
	Description  string            `json:"description,omitempty" yaml:"description,omitempty"`
	BracketData  Bracket           `json:"bracket_data,omitempty" yaml:"bracket_data,omitempty"`
	Schedule     []ScheduleItem    `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	LastUpdated  *time.Time        `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
	IsFeatured   bool              `json:"is_featured" yaml:"is_featured"`
}

func (e Event) Key() string { return e.ID }

// Span returns the first and last day of the event. An event without an end
// date lasts one day.
func (e Event) Span() (start, end time.Time, ok bool) {
	start, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end = start
	if e.EndDate != "" {
		if parsed, err := time.Parse(DateLayout, e.EndDate); err == nil {
			end = parsed
		}
	}
	return start, end, true
}
