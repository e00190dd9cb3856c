package store

import (
	"context"
	"fmt"

	"github.com/gatherly/gatherly_api/util"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Write-time derivation. The CRUD layer calls these after mutating an entity;
// the search index only ever reads the derived columns. The slug stamped here
// and the slug the facet layer emits come from the same util.NormalizeSlug,
// which is what keeps category/region filtering coherent.

const groupDocumentExpr = `to_tsvector('simple',
            name || ' ' || array_to_string(tags, ' ') || ' ' ||
            COALESCE((SELECT r.name FROM regions r WHERE r.id = groups.region_id), ''))`

// RefreshGroupDocument recomputes a group's full-text document from its
// name, tags and region.
func (s *Store) RefreshGroupDocument(ctx context.Context, groupID uuid.UUID) error {
	query := `
        UPDATE groups
        SET search_document = ` + groupDocumentExpr + `
        WHERE id = $1
    `
	if _, err := s.db.Pool().Exec(ctx, query, groupID); err != nil {
		return fmt.Errorf("refresh group document: %w", err)
	}
	return nil
}

// RefreshEventDocument recomputes an event's full-text document from its
// name, tags and venue.
func (s *Store) RefreshEventDocument(ctx context.Context, eventID uuid.UUID) error {
	query := `
        UPDATE events
        SET search_document = to_tsvector('simple',
            name || ' ' || array_to_string(tags, ' ') || ' ' || COALESCE(venue, ''))
        WHERE id = $1
    `
	if _, err := s.db.Pool().Exec(ctx, query, eventID); err != nil {
		return fmt.Errorf("refresh event document: %w", err)
	}
	return nil
}

// RenameGroupCategory updates a category's display name and stamps the
// derived slug.
func (s *Store) RenameGroupCategory(ctx context.Context, id uuid.UUID, name string) error {
	query := `
        UPDATE group_categories
        SET name = $2, normalized_name = $3
        WHERE id = $1
    `
	if _, err := s.db.Pool().Exec(ctx, query, id, name, util.NormalizeSlug(name)); err != nil {
		return fmt.Errorf("rename group category: %w", err)
	}
	return nil
}

// RenameEventCategory updates an event category's display name and stamps
// the derived slug.
func (s *Store) RenameEventCategory(ctx context.Context, id uuid.UUID, name string) error {
	query := `
        UPDATE event_categories
        SET name = $2, normalized_name = $3
        WHERE id = $1
    `
	if _, err := s.db.Pool().Exec(ctx, query, id, name, util.NormalizeSlug(name)); err != nil {
		return fmt.Errorf("rename event category: %w", err)
	}
	return nil
}

// RenameRegion updates a region's display name and slug, then refreshes the
// documents of every group in that region since the region name is part of
// the group document.
func (s *Store) RenameRegion(ctx context.Context, id uuid.UUID, name string) error {
	return s.db.RunInTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
            UPDATE regions
            SET name = $2, normalized_name = $3
            WHERE id = $1
        `, id, name, util.NormalizeSlug(name))
		if err != nil {
			return fmt.Errorf("rename region: %w", err)
		}

		_, err = tx.Exec(ctx, `
            UPDATE groups
            SET search_document = `+groupDocumentExpr+`
            WHERE region_id = $1
        `, id)
		if err != nil {
			return fmt.Errorf("refresh region group documents: %w", err)
		}
		return nil
	})
}
