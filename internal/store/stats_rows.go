package store

import (
	"context"
	"fmt"

	"github.com/gatherly/gatherly_api/internal/stats"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Each fetcher returns (created_at, category slug, region slug) rows for the
// aggregator, carrying the visibility predicate of its owning entity.
// Dimensions always come from the owning group's category and region; a NULL
// region leaves that dimension unset on the row.

const groupVisibility = "g.active = TRUE AND g.is_deleted = FALSE"
const eventVisibility = "e.published = TRUE AND e.canceled = FALSE AND e.is_deleted = FALSE"

// GroupStatRows lists visible groups. communityID nil means site-wide.
func (s *Store) GroupStatRows(ctx context.Context, communityID *uuid.UUID) ([]stats.Row, error) {
	query := `
        SELECT g.created_at, gc.normalized_name, r.normalized_name
        FROM groups g
        JOIN group_categories gc ON gc.id = g.category_id
        LEFT JOIN regions r ON r.id = g.region_id
        WHERE ` + groupVisibility
	return s.queryStatRows(ctx, "group", query, "g", communityID)
}

// MemberStatRows lists memberships of visible groups.
func (s *Store) MemberStatRows(ctx context.Context, communityID *uuid.UUID) ([]stats.Row, error) {
	query := `
        SELECT m.created_at, gc.normalized_name, r.normalized_name
        FROM group_members m
        JOIN groups g ON g.id = m.group_id
        JOIN group_categories gc ON gc.id = g.category_id
        LEFT JOIN regions r ON r.id = g.region_id
        WHERE ` + groupVisibility
	return s.queryStatRows(ctx, "member", query, "g", communityID)
}

// EventStatRows lists published events.
func (s *Store) EventStatRows(ctx context.Context, communityID *uuid.UUID) ([]stats.Row, error) {
	query := `
        SELECT e.created_at, gc.normalized_name, r.normalized_name
        FROM events e
        JOIN groups g ON g.id = e.group_id
        JOIN group_categories gc ON gc.id = g.category_id
        LEFT JOIN regions r ON r.id = g.region_id
        WHERE ` + eventVisibility
	return s.queryStatRows(ctx, "event", query, "e", communityID)
}

// AttendeeStatRows lists attendances of published events.
func (s *Store) AttendeeStatRows(ctx context.Context, communityID *uuid.UUID) ([]stats.Row, error) {
	query := `
        SELECT a.created_at, gc.normalized_name, r.normalized_name
        FROM event_attendees a
        JOIN events e ON e.id = a.event_id
        JOIN groups g ON g.id = e.group_id
        JOIN group_categories gc ON gc.id = g.category_id
        LEFT JOIN regions r ON r.id = g.region_id
        WHERE ` + eventVisibility
	return s.queryStatRows(ctx, "attendee", query, "e", communityID)
}

func (s *Store) queryStatRows(ctx context.Context, kind, query, scopeAlias string, communityID *uuid.UUID) ([]stats.Row, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if communityID != nil {
		rows, err = s.db.Pool().Query(ctx, query+fmt.Sprintf(" AND %s.community_id = $1", scopeAlias), *communityID)
	} else {
		rows, err = s.db.Pool().Query(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s stat rows: %w", kind, err)
	}
	defer rows.Close()

	var result []stats.Row
	for rows.Next() {
		var row stats.Row
		var category string
		var region *string
		if err := rows.Scan(&row.At, &category, &region); err != nil {
			return nil, fmt.Errorf("scanning %s stat row: %w", kind, err)
		}
		row.Dims = map[string]string{stats.DimCategory: category}
		if region != nil {
			row.Dims[stats.DimRegion] = *region
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// HomeCounts returns the four scalar totals for a community home page in one
// round trip.
func (s *Store) HomeCounts(ctx context.Context, communityID uuid.UUID) (stats.HomeStats, error) {
	query := `
        SELECT
            (SELECT COUNT(*) FROM groups g
             WHERE g.community_id = $1 AND ` + groupVisibility + `),
            (SELECT COUNT(*) FROM group_members m
             JOIN groups g ON g.id = m.group_id
             WHERE g.community_id = $1 AND ` + groupVisibility + `),
            (SELECT COUNT(*) FROM events e
             WHERE e.community_id = $1 AND ` + eventVisibility + `),
            (SELECT COUNT(*) FROM event_attendees a
             JOIN events e ON e.id = a.event_id
             WHERE e.community_id = $1 AND ` + eventVisibility + `)
    `
	var counts stats.HomeStats
	err := s.db.Pool().QueryRow(ctx, query, communityID).Scan(
		&counts.Groups, &counts.GroupsMembers, &counts.Events, &counts.EventsAttendees,
	)
	if err != nil {
		return stats.HomeStats{}, fmt.Errorf("counting home stats: %w", err)
	}
	return counts, nil
}
