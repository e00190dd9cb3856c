package stats

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Dimension names used by the facade breakdowns. Values are the owning
// group's category/region slugs.
const (
	DimCategory = "category"
	DimRegion   = "region"
)

// RowSource is the slice of the entity store the facade reads. A nil
// communityID means site-wide. Each fetcher embeds the visibility predicate
// of its owning entity: visible groups, members of visible groups, published
// events, attendees of published events.
type RowSource interface {
	GroupStatRows(ctx context.Context, communityID *uuid.UUID) ([]Row, error)
	MemberStatRows(ctx context.Context, communityID *uuid.UUID) ([]Row, error)
	EventStatRows(ctx context.Context, communityID *uuid.UUID) ([]Row, error)
	AttendeeStatRows(ctx context.Context, communityID *uuid.UUID) ([]Row, error)
	HomeCounts(ctx context.Context, communityID uuid.UUID) (HomeStats, error)
}

// Payload assembles the four dashboard dimensions into one object.
type Payload struct {
	Groups    Stats `json:"groups"`
	Members   Stats `json:"members"`
	Events    Stats `json:"events"`
	Attendees Stats `json:"attendees"`
}

// HomeStats is the simplified variant: four scalar totals, no time series.
type HomeStats struct {
	Groups          int64 `json:"groups"`
	GroupsMembers   int64 `json:"groups_members"`
	Events          int64 `json:"events"`
	EventsAttendees int64 `json:"events_attendees"`
}

type Service struct {
	Source RowSource
}

func NewService(source RowSource) *Service {
	return &Service{Source: source}
}

// CommunityStats runs the four aggregations scoped to one community. An
// unknown community aggregates zero rows everywhere.
func (s *Service) CommunityStats(ctx context.Context, communityID uuid.UUID) (Payload, error) {
	return s.assemble(ctx, &communityID)
}

// SiteStats runs the four aggregations across all communities.
func (s *Service) SiteStats(ctx context.Context) (Payload, error) {
	return s.assemble(ctx, nil)
}

func (s *Service) assemble(ctx context.Context, communityID *uuid.UUID) (Payload, error) {
	var payload Payload

	fetchers := []struct {
		name  string
		fetch func(context.Context, *uuid.UUID) ([]Row, error)
		dest  *Stats
	}{
		{"groups", s.Source.GroupStatRows, &payload.Groups},
		{"members", s.Source.MemberStatRows, &payload.Members},
		{"events", s.Source.EventStatRows, &payload.Events},
		{"attendees", s.Source.AttendeeStatRows, &payload.Attendees},
	}
	for _, f := range fetchers {
		rows, err := f.fetch(ctx, communityID)
		if err != nil {
			return payload, fmt.Errorf("fetching %s stat rows: %w", f.name, err)
		}
		*f.dest = Aggregate(rows, DimCategory, DimRegion)
	}
	return payload, nil
}

// CommunityHomeStats returns the scalar totals for a community home page.
func (s *Service) CommunityHomeStats(ctx context.Context, communityID uuid.UUID) (HomeStats, error) {
	counts, err := s.Source.HomeCounts(ctx, communityID)
	if err != nil {
		return HomeStats{}, fmt.Errorf("fetching home counts: %w", err)
	}
	return counts, nil
}
