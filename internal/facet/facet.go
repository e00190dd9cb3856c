// Package facet computes the available filter choices for a search scope.
package facet

import (
	"context"
	"fmt"
	"sort"

	"github.com/gatherly/gatherly_api/internal/model"
	"github.com/google/uuid"
)

// LookupStore is the slice of the entity store the builder reads.
type LookupStore interface {
	ListCommunities(ctx context.Context) ([]model.Community, error)
	ListGroupCategories(ctx context.Context, communityID uuid.UUID) ([]model.GroupCategory, error)
	ListEventCategories(ctx context.Context, communityID uuid.UUID) ([]model.EventCategory, error)
	ListRegions(ctx context.Context, communityID uuid.UUID) ([]model.Region, error)
	ListGroupOptions(ctx context.Context, communityID uuid.UUID) ([]model.FacetOption, error)
}

// Scope selects which facets apply. CommunityID is nil when the scope did not
// resolve to a known community; the builder degrades rather than erroring.
type Scope struct {
	CommunityID *uuid.UUID
	Site        bool
	EntityKind  string // "groups" or "events", site scope only
}

type Builder struct {
	Store LookupStore
}

func NewBuilder(store LookupStore) *Builder {
	return &Builder{Store: store}
}

// distanceLadder is the fixed radius facet, always present. Values in meters.
var distanceLadder = []model.DistanceOption{
	{Name: "10 km", Value: 10_000},
	{Name: "50 km", Value: 50_000},
	{Name: "100 km", Value: 100_000},
	{Name: "500 km", Value: 500_000},
	{Name: "1000 km", Value: 1_000_000},
}

// Options assembles every facet available in the given scope.
func (b *Builder) Options(ctx context.Context, scope Scope) (model.FacetOptions, error) {
	opts := model.FacetOptions{
		GroupCategory: []model.FacetOption{},
		EventCategory: []model.FacetOption{},
		Region:        []model.FacetOption{},
		Distance:      distanceLadder,
	}

	if scope.Site {
		communities, err := b.Store.ListCommunities(ctx)
		if err != nil {
			return opts, fmt.Errorf("listing communities: %w", err)
		}
		for _, c := range communities {
			opts.Communities = append(opts.Communities, model.FacetOption{Name: c.Name, Value: c.ID.String()})
		}
	}

	if scope.CommunityID == nil {
		return opts, nil
	}
	communityID := *scope.CommunityID

	groupCats, err := b.Store.ListGroupCategories(ctx, communityID)
	if err != nil {
		return opts, fmt.Errorf("listing group categories: %w", err)
	}
	sortLookups(len(groupCats), func(i int) (int, string) { return groupCats[i].SortOrder, groupCats[i].Name },
		func(i, j int) { groupCats[i], groupCats[j] = groupCats[j], groupCats[i] })
	for _, c := range groupCats {
		opts.GroupCategory = append(opts.GroupCategory, model.FacetOption{Name: c.Name, Value: c.NormalizedName})
	}

	eventCats, err := b.Store.ListEventCategories(ctx, communityID)
	if err != nil {
		return opts, fmt.Errorf("listing event categories: %w", err)
	}
	sortLookups(len(eventCats), func(i int) (int, string) { return eventCats[i].SortOrder, eventCats[i].Name },
		func(i, j int) { eventCats[i], eventCats[j] = eventCats[j], eventCats[i] })
	for _, c := range eventCats {
		opts.EventCategory = append(opts.EventCategory, model.FacetOption{Name: c.Name, Value: c.NormalizedName})
	}

	regions, err := b.Store.ListRegions(ctx, communityID)
	if err != nil {
		return opts, fmt.Errorf("listing regions: %w", err)
	}
	sortLookups(len(regions), func(i int) (int, string) { return regions[i].SortOrder, regions[i].Name },
		func(i, j int) { regions[i], regions[j] = regions[j], regions[i] })
	for _, r := range regions {
		opts.Region = append(opts.Region, model.FacetOption{Name: r.Name, Value: r.NormalizedName})
	}

	if scope.Site && scope.EntityKind == "events" {
		groups, err := b.Store.ListGroupOptions(ctx, communityID)
		if err != nil {
			return opts, fmt.Errorf("listing group options: %w", err)
		}
		opts.Groups = groups
	}

	return opts, nil
}

// lookupSorter orders a lookup list by its explicit sort order, ties broken
// by display name. The store queries already order this way; enforcing it
// here keeps the contract independent of the store implementation.
type lookupSorter struct {
	n    int
	key  func(i int) (int, string)
	swap func(i, j int)
}

func (s lookupSorter) Len() int      { return s.n }
func (s lookupSorter) Swap(i, j int) { s.swap(i, j) }
func (s lookupSorter) Less(i, j int) bool {
	orderI, nameI := s.key(i)
	orderJ, nameJ := s.key(j)
	if orderI != orderJ {
		return orderI < orderJ
	}
	return nameI < nameJ
}

func sortLookups(n int, key func(i int) (int, string), swap func(i, j int)) {
	sort.Stable(lookupSorter{n: n, key: key, swap: swap})
}
