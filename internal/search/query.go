package search

import (
	"fmt"

	"github.com/google/uuid"
)

const groupSelectColumns = `
        g.id, g.name, g.description, g.logo_url,
        gc.name, gc.normalized_name,
        r.name, r.normalized_name,
        ST_Y(g.location::geometry) AS latitude,
        ST_X(g.location::geometry) AS longitude,
        g.tags, g.created_at`

const groupFrom = `
    FROM groups g
    JOIN group_categories gc ON gc.id = g.category_id
    LEFT JOIN regions r ON r.id = g.region_id`

const eventSelectColumns = `
        e.id, e.name, e.kind, g.id, g.name,
        ec.name, ec.normalized_name,
        r.name, r.normalized_name,
        e.venue,
        ST_Y(e.location::geometry) AS latitude,
        ST_X(e.location::geometry) AS longitude,
        e.tags, e.starts_at, e.ends_at, e.created_at`

const eventFrom = `
    FROM events e
    JOIN groups g ON g.id = e.group_id
    JOIN event_categories ec ON ec.id = e.category_id
    LEFT JOIN regions r ON r.id = g.region_id`

// predicate is a WHERE clause plus its positional args, shared between the
// page select, the total count, the bounding box and the points overlay so
// the four stay coherent.
type predicate struct {
	where    string
	args     []interface{}
	tsArgIdx int // positional index of the ts_query arg, 0 when absent
}

// buildGroupPredicate composes the group search predicate: community scope,
// visibility flags, then each optional dimension independently.
func buildGroupPredicate(communityID uuid.UUID, f Filter) predicate {
	p := predicate{
		where: `
    WHERE g.community_id = $1
      AND g.active = TRUE AND g.is_deleted = FALSE`,
		args: []interface{}{communityID},
	}

	if len(f.GroupCategory) > 0 {
		p.args = append(p.args, f.GroupCategory)
		p.where += fmt.Sprintf("\n      AND gc.normalized_name = ANY($%d)", len(p.args))
	}
	appendCommonDimensions(&p, "g", f)
	return p
}

// buildEventPredicate mirrors buildGroupPredicate for events. Region filtering
// goes through the owning group's region.
func buildEventPredicate(communityID uuid.UUID, f Filter) predicate {
	p := predicate{
		where: `
    WHERE e.community_id = $1
      AND e.published = TRUE AND e.canceled = FALSE AND e.is_deleted = FALSE`,
		args: []interface{}{communityID},
	}

	if len(f.EventCategory) > 0 {
		p.args = append(p.args, f.EventCategory)
		p.where += fmt.Sprintf("\n      AND ec.normalized_name = ANY($%d)", len(p.args))
	}
	appendCommonDimensions(&p, "e", f)
	return p
}

// appendCommonDimensions adds the region, full-text and geodistance predicates
// shared by both entity kinds. alias is the table alias carrying the
// search_document and location columns.
func appendCommonDimensions(p *predicate, alias string, f Filter) {
	if len(f.Region) > 0 {
		p.args = append(p.args, f.Region)
		p.where += fmt.Sprintf("\n      AND r.normalized_name = ANY($%d)", len(p.args))
	}

	if f.TsQuery != "" {
		p.args = append(p.args, f.TsQuery)
		p.tsArgIdx = len(p.args)
		p.where += fmt.Sprintf("\n      AND %s.search_document @@ websearch_to_tsquery('simple', $%d)", alias, p.tsArgIdx)
	}

	if f.HasGeo() {
		p.args = append(p.args, *f.Longitude, *f.Latitude, *f.Distance)
		n := len(p.args)
		p.where += fmt.Sprintf(`
      AND %s.location IS NOT NULL
      AND ST_DWithin(%s.location::geography, ST_MakePoint($%d, $%d)::geography, $%d)`,
			alias, alias, n-2, n-1, n)
	}
}

// orderClause ranks by full-text relevance when a text query is present,
// falling back to recency; recency alone otherwise.
func orderClause(alias string, p predicate) string {
	if p.tsArgIdx > 0 {
		return fmt.Sprintf(
			"\n    ORDER BY ts_rank(%s.search_document, websearch_to_tsquery('simple', $%d)) DESC, %s.created_at DESC",
			alias, p.tsArgIdx, alias)
	}
	return fmt.Sprintf("\n    ORDER BY %s.created_at DESC", alias)
}

// buildPageQuery assembles the paginated select for one entity kind.
func buildPageQuery(columns, from, alias string, p predicate, f Filter) (string, []interface{}) {
	args := append(append([]interface{}{}, p.args...), f.Limit, f.Offset)
	query := fmt.Sprintf("SELECT%s%s%s%s\n    LIMIT $%d OFFSET $%d",
		columns, from, p.where, orderClause(alias, p), len(args)-1, len(args))
	return query, args
}

func buildCountQuery(from string, p predicate) (string, []interface{}) {
	return "SELECT COUNT(*)" + from + p.where, p.args
}

// buildBBoxQuery aggregates min/max lat/lon over every matching located row,
// independent of pagination.
func buildBBoxQuery(from, alias string, p predicate) (string, []interface{}) {
	query := fmt.Sprintf(`SELECT
        MIN(ST_Y(%[1]s.location::geometry)), MIN(ST_X(%[1]s.location::geometry)),
        MAX(ST_Y(%[1]s.location::geometry)), MAX(ST_X(%[1]s.location::geometry))%[2]s%[3]s
      AND %[1]s.location IS NOT NULL`, alias, from, p.where)
	return query, p.args
}

// buildPointsQuery lists the locations of every matching located row for the
// encoded map overlay, in result order.
func buildPointsQuery(from, alias string, p predicate) (string, []interface{}) {
	query := fmt.Sprintf(`SELECT
        ST_Y(%[1]s.location::geometry), ST_X(%[1]s.location::geometry)%[2]s%[3]s
      AND %[1]s.location IS NOT NULL
    ORDER BY %[1]s.created_at DESC`, alias, from, p.where)
	return query, p.args
}
