package models

// DashboardStats is the admin overview of stored site content.
type DashboardStats struct {
	EventsTotal       int `json:"events_total"`
	FeaturedEvents    int `json:"featured_events"`
	EventsWithBracket int `json:"events_with_bracket"`
	MatchesTotal      int `json:"matches_total"`
	MatchesDecided    int `json:"matches_decided"`
	SponsorsTotal     int `json:"sponsors_total"`
	GalleryTotal      int `json:"gallery_total"`
	LinksTotal        int `json:"links_total"`
}
