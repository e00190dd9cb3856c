package search

import (
	"context"

	"github.com/gatherly/gatherly_api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/twpayne/go-polyline"
)

// Querier is the subset of pgxpool.Pool the index reads through.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type Index struct {
	DB Querier
}

func NewIndex(db Querier) *Index {
	return &Index{DB: db}
}

// SearchGroups runs the filtered, ordered, paginated group query. An unknown
// community simply matches nothing: empty items, total 0, no error.
func (ix *Index) SearchGroups(ctx context.Context, communityID uuid.UUID, f Filter) (model.GroupSearchResult, error) {
	p := buildGroupPredicate(communityID, f)
	result := model.GroupSearchResult{Items: []model.GroupSummary{}}

	query, args := buildPageQuery(groupSelectColumns, groupFrom, "g", p, f)
	rows, err := ix.DB.Query(ctx, query, args...)
	if err != nil {
		return result, errors.Wrap(err, "querying groups")
	}
	defer rows.Close()

	for rows.Next() {
		var item model.GroupSummary
		var regionName, regionSlug *string
		err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.LogoURL,
			&item.Category.Name, &item.Category.NormalizedName,
			&regionName, &regionSlug,
			&item.Latitude, &item.Longitude,
			&item.Tags, &item.CreatedAt,
		)
		if err != nil {
			return result, errors.Wrap(err, "scanning group")
		}
		item.Region = lookupRef(regionName, regionSlug)
		result.Items = append(result.Items, item)
	}
	if err := rows.Err(); err != nil {
		return result, errors.Wrap(err, "reading groups")
	}

	countQuery, countArgs := buildCountQuery(groupFrom, p)
	if err := ix.DB.QueryRow(ctx, countQuery, countArgs...).Scan(&result.Total); err != nil {
		return result, errors.Wrap(err, "counting groups")
	}

	if f.IncludeBBox {
		if result.BBox, err = ix.queryBBox(ctx, groupFrom, "g", p); err != nil {
			return result, err
		}
	}
	if f.IncludePoints {
		if result.Points, err = ix.queryPoints(ctx, groupFrom, "g", p); err != nil {
			return result, err
		}
	}
	return result, nil
}

// SearchEvents is the event counterpart of SearchGroups.
func (ix *Index) SearchEvents(ctx context.Context, communityID uuid.UUID, f Filter) (model.EventSearchResult, error) {
	p := buildEventPredicate(communityID, f)
	result := model.EventSearchResult{Items: []model.EventSummary{}}

	query, args := buildPageQuery(eventSelectColumns, eventFrom, "e", p, f)
	rows, err := ix.DB.Query(ctx, query, args...)
	if err != nil {
		return result, errors.Wrap(err, "querying events")
	}
	defer rows.Close()

	for rows.Next() {
		var item model.EventSummary
		var regionName, regionSlug *string
		err := rows.Scan(
			&item.ID, &item.Name, &item.Kind, &item.GroupID, &item.GroupName,
			&item.Category.Name, &item.Category.NormalizedName,
			&regionName, &regionSlug,
			&item.Venue,
			&item.Latitude, &item.Longitude,
			&item.Tags, &item.StartsAt, &item.EndsAt, &item.CreatedAt,
		)
		if err != nil {
			return result, errors.Wrap(err, "scanning event")
		}
		item.Region = lookupRef(regionName, regionSlug)
		result.Items = append(result.Items, item)
	}
	if err := rows.Err(); err != nil {
		return result, errors.Wrap(err, "reading events")
	}

	countQuery, countArgs := buildCountQuery(eventFrom, p)
	if err := ix.DB.QueryRow(ctx, countQuery, countArgs...).Scan(&result.Total); err != nil {
		return result, errors.Wrap(err, "counting events")
	}

	if f.IncludeBBox {
		if result.BBox, err = ix.queryBBox(ctx, eventFrom, "e", p); err != nil {
			return result, err
		}
	}
	if f.IncludePoints {
		if result.Points, err = ix.queryPoints(ctx, eventFrom, "e", p); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (ix *Index) queryBBox(ctx context.Context, from, alias string, p predicate) (*model.BoundingBox, error) {
	query, args := buildBBoxQuery(from, alias, p)

	var minLat, minLon, maxLat, maxLon *float64
	if err := ix.DB.QueryRow(ctx, query, args...).Scan(&minLat, &minLon, &maxLat, &maxLon); err != nil {
		return nil, errors.Wrap(err, "computing bounding box")
	}
	return boundingBox(minLat, minLon, maxLat, maxLon), nil
}

func (ix *Index) queryPoints(ctx context.Context, from, alias string, p predicate) (*string, error) {
	query, args := buildPointsQuery(from, alias, p)

	rows, err := ix.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying overlay points")
	}
	defer rows.Close()

	var coords [][]float64
	for rows.Next() {
		var lat, lon float64
		if err := rows.Scan(&lat, &lon); err != nil {
			return nil, errors.Wrap(err, "scanning overlay point")
		}
		coords = append(coords, []float64{lat, lon})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "reading overlay points")
	}
	return encodePoints(coords), nil
}

// boundingBox turns the min/max aggregates into a box, or nil when no
// matching row carried a location (all aggregates NULL).
func boundingBox(minLat, minLon, maxLat, maxLon *float64) *model.BoundingBox {
	if minLat == nil || minLon == nil || maxLat == nil || maxLon == nil {
		return nil
	}
	return &model.BoundingBox{
		SouthWest: model.GeoPoint{Latitude: *minLat, Longitude: *minLon},
		NorthEast: model.GeoPoint{Latitude: *maxLat, Longitude: *maxLon},
	}
}

// encodePoints compacts located matches into a polyline string, nil when
// there is nothing to draw.
func encodePoints(coords [][]float64) *string {
	if len(coords) == 0 {
		return nil
	}
	encoded := string(polyline.EncodeCoords(coords))
	return &encoded
}

func lookupRef(name, slug *string) *model.LookupRef {
	if name == nil || slug == nil {
		return nil
	}
	return &model.LookupRef{Name: *name, NormalizedName: *slug}
}
