package search

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatten collapses whitespace so assertions survive query formatting.
func flatten(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}

func geoFilter(lat, lon, distance float64) Filter {
	return Filter{Latitude: &lat, Longitude: &lon, Distance: &distance, Limit: DefaultLimit}
}

func TestBuildGroupPredicateScopeAndVisibility(t *testing.T) {
	communityID := uuid.New()

	p := buildGroupPredicate(communityID, Filter{Limit: DefaultLimit})

	where := flatten(p.where)
	assert.Contains(t, where, "g.community_id = $1")
	assert.Contains(t, where, "g.active = TRUE AND g.is_deleted = FALSE")
	assert.Equal(t, []interface{}{communityID}, p.args)
	assert.Zero(t, p.tsArgIdx)
}

func TestBuildGroupPredicateAllDimensions(t *testing.T) {
	communityID := uuid.New()
	f := geoFilter(30.2672, -97.7431, 10000)
	f.GroupCategory = []string{"technology"}
	f.Region = []string{"central-texas"}
	f.TsQuery = "gophers"

	p := buildGroupPredicate(communityID, f)

	where := flatten(p.where)
	assert.Contains(t, where, "gc.normalized_name = ANY($2)")
	assert.Contains(t, where, "r.normalized_name = ANY($3)")
	assert.Contains(t, where, "g.search_document @@ websearch_to_tsquery('simple', $4)")
	assert.Contains(t, where, "g.location IS NOT NULL")
	assert.Contains(t, where, "ST_DWithin(g.location::geography, ST_MakePoint($5, $6)::geography, $7)")
	assert.Equal(t, 4, p.tsArgIdx)

	require.Len(t, p.args, 7)
	assert.Equal(t, communityID, p.args[0])
	assert.Equal(t, []string{"technology"}, p.args[1])
	assert.Equal(t, []string{"central-texas"}, p.args[2])
	assert.Equal(t, "gophers", p.args[3])
	// PostGIS point constructors take lon before lat.
	assert.Equal(t, -97.7431, p.args[4])
	assert.Equal(t, 30.2672, p.args[5])
	assert.Equal(t, 10000.0, p.args[6])
}

func TestBuildEventPredicateVisibilityAndCategory(t *testing.T) {
	communityID := uuid.New()
	f := Filter{EventCategory: []string{"workshop"}, Limit: DefaultLimit}

	p := buildEventPredicate(communityID, f)

	where := flatten(p.where)
	assert.Contains(t, where, "e.community_id = $1")
	assert.Contains(t, where, "e.published = TRUE AND e.canceled = FALSE AND e.is_deleted = FALSE")
	assert.Contains(t, where, "ec.normalized_name = ANY($2)")
	assert.NotContains(t, where, "group_category")
}

func TestOrderClauseRecencyDefault(t *testing.T) {
	p := buildGroupPredicate(uuid.New(), Filter{Limit: DefaultLimit})

	assert.Equal(t, "ORDER BY g.created_at DESC", flatten(orderClause("g", p)))
}

func TestOrderClauseRelevanceFirstWithTsQuery(t *testing.T) {
	p := buildGroupPredicate(uuid.New(), Filter{TsQuery: "board games", Limit: DefaultLimit})

	order := flatten(orderClause("g", p))
	rank := strings.Index(order, "ts_rank(g.search_document, websearch_to_tsquery('simple', $2)) DESC")
	recency := strings.Index(order, "g.created_at DESC")
	require.GreaterOrEqual(t, rank, 0)
	require.Greater(t, recency, rank)
}

func TestBuildPageQueryAppendsPagination(t *testing.T) {
	f := Filter{Limit: 10, Offset: 20}
	p := buildGroupPredicate(uuid.New(), f)

	query, args := buildPageQuery(groupSelectColumns, groupFrom, "g", p, f)

	require.Len(t, args, 3)
	assert.Equal(t, 10, args[1])
	assert.Equal(t, 20, args[2])
	assert.Contains(t, flatten(query), "LIMIT $2 OFFSET $3")
}

func TestBuildCountQuerySharesPredicate(t *testing.T) {
	f := Filter{Region: []string{"hill-country"}, Limit: DefaultLimit}
	p := buildGroupPredicate(uuid.New(), f)

	query, args := buildCountQuery(groupFrom, p)

	assert.True(t, strings.HasPrefix(query, "SELECT COUNT(*)"))
	assert.Contains(t, flatten(query), "r.normalized_name = ANY($2)")
	assert.Equal(t, p.args, args)
	assert.NotContains(t, query, "LIMIT")
}

func TestBuildBBoxQueryLocatedRowsOnly(t *testing.T) {
	p := buildGroupPredicate(uuid.New(), Filter{Limit: DefaultLimit})

	query, args := buildBBoxQuery(groupFrom, "g", p)

	flat := flatten(query)
	assert.Contains(t, flat, "MIN(ST_Y(g.location::geometry))")
	assert.Contains(t, flat, "MAX(ST_X(g.location::geometry))")
	assert.Contains(t, flat, "g.location IS NOT NULL")
	assert.Equal(t, p.args, args)
	assert.NotContains(t, query, "LIMIT")
}

func TestBuildPointsQueryOrderedByRecency(t *testing.T) {
	p := buildEventPredicate(uuid.New(), Filter{Limit: DefaultLimit})

	query, args := buildPointsQuery(eventFrom, "e", p)

	flat := flatten(query)
	assert.Contains(t, flat, "e.location IS NOT NULL")
	assert.Contains(t, flat, "ORDER BY e.created_at DESC")
	assert.Equal(t, p.args, args)
}

func TestBoundingBoxNilWhenNoLocatedMatch(t *testing.T) {
	assert.Nil(t, boundingBox(nil, nil, nil, nil))

	lat := 30.0
	assert.Nil(t, boundingBox(&lat, nil, &lat, &lat))
}

func TestBoundingBoxCorners(t *testing.T) {
	minLat, minLon, maxLat, maxLon := 30.2672, -122.4194, 40.7128, -74.0060

	box := boundingBox(&minLat, &minLon, &maxLat, &maxLon)

	require.NotNil(t, box)
	assert.Equal(t, 30.2672, box.SouthWest.Latitude)
	assert.Equal(t, -122.4194, box.SouthWest.Longitude)
	assert.Equal(t, 40.7128, box.NorthEast.Latitude)
	assert.Equal(t, -74.0060, box.NorthEast.Longitude)
}

func TestEncodePoints(t *testing.T) {
	assert.Nil(t, encodePoints(nil))

	encoded := encodePoints([][]float64{{38.5, -120.2}, {40.7, -120.95}})
	require.NotNil(t, encoded)
	assert.NotEmpty(t, *encoded)
}
