package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pskpp/festival/brackets"
	"github.com/pskpp/festival/models"
	"github.com/pskpp/festival/repositories"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	events   *repositories.EventRepository
	sponsors *repositories.SponsorRepository
	gallery  *repositories.GalleryRepository
	links    *repositories.LinkRepository
}

func NewDashboardService(
	events *repositories.EventRepository,
	sponsors *repositories.SponsorRepository,
	gallery *repositories.GalleryRepository,
	links *repositories.LinkRepository,
) DashboardService {
	return &dashboardService{
		events:   events,
		sponsors: sponsors,
		gallery:  gallery,
		links:    links,
	}
}

func count[T repositories.Keyed](ctx context.Context, c *repositories.Collection[T], dst *int) func() error {
	return func() error {
		items, err := c.List(ctx)
		*dst = len(items)
		return err
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	var events []models.Event

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { events, err = s.events.List(ctx); return })
	g.Go(count(ctx, s.sponsors, &stats.SponsorsTotal))
	g.Go(count(ctx, s.gallery, &stats.GalleryTotal))
	g.Go(count(ctx, s.links, &stats.LinksTotal))
	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, fmt.Errorf("failed to collect stats: %w", err)
	}

	stats.EventsTotal = len(events)
	for _, e := range events {
		if e.IsFeatured {
			stats.FeaturedEvents++
		}
		if len(e.BracketData) > 0 {
			stats.EventsWithBracket++
		}
		for _, round := range e.BracketData {
			for _, m := range round.Matches {
				stats.MatchesTotal++
				if brackets.Winner(m) != brackets.NoWinner {
					stats.MatchesDecided++
				}
			}
		}
	}
	return stats, nil
}
