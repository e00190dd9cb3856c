package facet

import (
	"context"
	"testing"

	"github.com/gatherly/gatherly_api/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookupStore struct {
	communities     []model.Community
	groupCategories []model.GroupCategory
	eventCategories []model.EventCategory
	regions         []model.Region
	groupOptions    []model.FacetOption
}

func (f *fakeLookupStore) ListCommunities(_ context.Context) ([]model.Community, error) {
	return f.communities, nil
}

func (f *fakeLookupStore) ListGroupCategories(_ context.Context, _ uuid.UUID) ([]model.GroupCategory, error) {
	return f.groupCategories, nil
}

func (f *fakeLookupStore) ListEventCategories(_ context.Context, _ uuid.UUID) ([]model.EventCategory, error) {
	return f.eventCategories, nil
}

func (f *fakeLookupStore) ListRegions(_ context.Context, _ uuid.UUID) ([]model.Region, error) {
	return f.regions, nil
}

func (f *fakeLookupStore) ListGroupOptions(_ context.Context, _ uuid.UUID) ([]model.FacetOption, error) {
	return f.groupOptions, nil
}

func TestOptionsDistanceLadderAlwaysPresent(t *testing.T) {
	b := NewBuilder(&fakeLookupStore{})

	opts, err := b.Options(context.Background(), Scope{})
	require.NoError(t, err)

	require.Len(t, opts.Distance, 5)
	assert.Equal(t, model.DistanceOption{Name: "10 km", Value: 10_000}, opts.Distance[0])
	assert.Equal(t, model.DistanceOption{Name: "1000 km", Value: 1_000_000}, opts.Distance[4])
}

func TestOptionsUnknownScopeDegrades(t *testing.T) {
	b := NewBuilder(&fakeLookupStore{
		communities: []model.Community{{ID: uuid.New(), Name: "Gophers ATX"}},
	})

	opts, err := b.Options(context.Background(), Scope{Site: true})
	require.NoError(t, err)

	assert.NotEmpty(t, opts.Communities)
	assert.NotEmpty(t, opts.Distance)
	assert.Empty(t, opts.GroupCategory)
	assert.Empty(t, opts.EventCategory)
	assert.Empty(t, opts.Region)
	assert.Empty(t, opts.Groups)
}

func TestOptionsCommunityScopedLookups(t *testing.T) {
	communityID := uuid.New()
	b := NewBuilder(&fakeLookupStore{
		groupCategories: []model.GroupCategory{
			{Name: "Technology", NormalizedName: "technology", SortOrder: 1},
			{Name: "Outdoors", NormalizedName: "outdoors", SortOrder: 2},
		},
		eventCategories: []model.EventCategory{
			{Name: "Workshop", NormalizedName: "workshop", SortOrder: 1},
		},
		regions: []model.Region{
			{Name: "Central Texas", NormalizedName: "central-texas", SortOrder: 1},
		},
	})

	opts, err := b.Options(context.Background(), Scope{CommunityID: &communityID})
	require.NoError(t, err)

	require.Len(t, opts.GroupCategory, 2)
	assert.Equal(t, model.FacetOption{Name: "Technology", Value: "technology"}, opts.GroupCategory[0])
	require.Len(t, opts.EventCategory, 1)
	assert.Equal(t, "workshop", opts.EventCategory[0].Value)
	require.Len(t, opts.Region, 1)
	assert.Equal(t, "central-texas", opts.Region[0].Value)
}

func TestOptionsLookupOrderingTiesByName(t *testing.T) {
	communityID := uuid.New()
	b := NewBuilder(&fakeLookupStore{
		groupCategories: []model.GroupCategory{
			{Name: "Zines", NormalizedName: "zines", SortOrder: 2},
			{Name: "Books", NormalizedName: "books", SortOrder: 2},
			{Name: "Featured", NormalizedName: "featured", SortOrder: 1},
		},
	})

	opts, err := b.Options(context.Background(), Scope{CommunityID: &communityID})
	require.NoError(t, err)

	require.Len(t, opts.GroupCategory, 3)
	assert.Equal(t, "featured", opts.GroupCategory[0].Value)
	assert.Equal(t, "books", opts.GroupCategory[1].Value)
	assert.Equal(t, "zines", opts.GroupCategory[2].Value)
}

func TestOptionsGroupsFacetRequiresSiteEventsAndCommunity(t *testing.T) {
	communityID := uuid.New()
	store := &fakeLookupStore{
		groupOptions: []model.FacetOption{{Name: "ATX Gophers", Value: uuid.New().String()}},
	}
	b := NewBuilder(store)

	testCases := []struct {
		name   string
		scope  Scope
		expect bool
	}{
		{"site events with community", Scope{Site: true, EntityKind: "events", CommunityID: &communityID}, true},
		{"site groups with community", Scope{Site: true, EntityKind: "groups", CommunityID: &communityID}, false},
		{"site events without community", Scope{Site: true, EntityKind: "events"}, false},
		{"community scope events", Scope{EntityKind: "events", CommunityID: &communityID}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts, err := b.Options(context.Background(), tc.scope)
			require.NoError(t, err)
			if tc.expect {
				assert.NotEmpty(t, opts.Groups)
			} else {
				assert.Empty(t, opts.Groups)
			}
		})
	}
}
