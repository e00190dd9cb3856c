// Package store is the read accessor over committed entity state, plus the
// explicit write-time derivation step for slugs and full-text documents.
// Search, facet and stats consume it read-only.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/gatherly_api/internal/db"
	"github.com/gatherly/gatherly_api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a requested entity does not exist. Callers in
// the query layer degrade to empty results rather than surfacing it.
var ErrNotFound = errors.New("not found")

type Store struct {
	db *db.DB
}

func New(database *db.DB) *Store {
	return &Store{db: database}
}

// GetCommunity returns one community or ErrNotFound.
func (s *Store) GetCommunity(ctx context.Context, id uuid.UUID) (model.Community, error) {
	query := `
        SELECT id, name, active, created_at, updated_at
        FROM communities
        WHERE id = $1
    `
	var c model.Community
	err := s.db.Pool().QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Community{}, ErrNotFound
	}
	if err != nil {
		return model.Community{}, fmt.Errorf("get community: %w", err)
	}
	return c, nil
}

// ListCommunities returns all active communities ordered by name.
func (s *Store) ListCommunities(ctx context.Context) ([]model.Community, error) {
	query := `
        SELECT id, name, active, created_at, updated_at
        FROM communities
        WHERE active = TRUE
        ORDER BY name
    `
	rows, err := s.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list communities: %w", err)
	}
	defer rows.Close()

	var communities []model.Community
	for rows.Next() {
		var c model.Community
		if err := rows.Scan(&c.ID, &c.Name, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan community: %w", err)
		}
		communities = append(communities, c)
	}
	return communities, rows.Err()
}

// ListGroupCategories returns a community's group categories in facet order.
func (s *Store) ListGroupCategories(ctx context.Context, communityID uuid.UUID) ([]model.GroupCategory, error) {
	query := `
        SELECT id, community_id, name, normalized_name, sort_order
        FROM group_categories
        WHERE community_id = $1
        ORDER BY sort_order, name
    `
	rows, err := s.db.Pool().Query(ctx, query, communityID)
	if err != nil {
		return nil, fmt.Errorf("list group categories: %w", err)
	}
	defer rows.Close()

	var categories []model.GroupCategory
	for rows.Next() {
		var c model.GroupCategory
		if err := rows.Scan(&c.ID, &c.CommunityID, &c.Name, &c.NormalizedName, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("scan group category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListEventCategories returns a community's event categories in facet order.
func (s *Store) ListEventCategories(ctx context.Context, communityID uuid.UUID) ([]model.EventCategory, error) {
	query := `
        SELECT id, community_id, name, normalized_name, sort_order
        FROM event_categories
        WHERE community_id = $1
        ORDER BY sort_order, name
    `
	rows, err := s.db.Pool().Query(ctx, query, communityID)
	if err != nil {
		return nil, fmt.Errorf("list event categories: %w", err)
	}
	defer rows.Close()

	var categories []model.EventCategory
	for rows.Next() {
		var c model.EventCategory
		if err := rows.Scan(&c.ID, &c.CommunityID, &c.Name, &c.NormalizedName, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("scan event category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListRegions returns a community's regions in facet order.
func (s *Store) ListRegions(ctx context.Context, communityID uuid.UUID) ([]model.Region, error) {
	query := `
        SELECT id, community_id, name, normalized_name, sort_order
        FROM regions
        WHERE community_id = $1
        ORDER BY sort_order, name
    `
	rows, err := s.db.Pool().Query(ctx, query, communityID)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	defer rows.Close()

	var regions []model.Region
	for rows.Next() {
		var r model.Region
		if err := rows.Scan(&r.ID, &r.CommunityID, &r.Name, &r.NormalizedName, &r.SortOrder); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		regions = append(regions, r)
	}
	return regions, rows.Err()
}

// ListGroupOptions returns a community's visible groups as facet options,
// keyed by group id.
func (s *Store) ListGroupOptions(ctx context.Context, communityID uuid.UUID) ([]model.FacetOption, error) {
	query := `
        SELECT id, name
        FROM groups
        WHERE community_id = $1 AND active = TRUE AND is_deleted = FALSE
        ORDER BY name
    `
	rows, err := s.db.Pool().Query(ctx, query, communityID)
	if err != nil {
		return nil, fmt.Errorf("list group options: %w", err)
	}
	defer rows.Close()

	var options []model.FacetOption
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan group option: %w", err)
		}
		options = append(options, model.FacetOption{Name: name, Value: id.String()})
	}
	return options, rows.Err()
}
