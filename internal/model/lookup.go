package model

import "github.com/google/uuid"

// GroupCategory, EventCategory and Region are per-community lookup lists.
// NormalizedName is derived from Name at write time and is the value filters
// and facets match on.
type GroupCategory struct {
	ID             uuid.UUID `json:"id"`
	CommunityID    uuid.UUID `json:"community_id"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalized_name"`
	SortOrder      int       `json:"sort_order"`
}

type EventCategory struct {
	ID             uuid.UUID `json:"id"`
	CommunityID    uuid.UUID `json:"community_id"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalized_name"`
	SortOrder      int       `json:"sort_order"`
}

type Region struct {
	ID             uuid.UUID `json:"id"`
	CommunityID    uuid.UUID `json:"community_id"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalized_name"`
	SortOrder      int       `json:"sort_order"`
}

// LookupRef is the embedded category/region reference on search summaries.
type LookupRef struct {
	Name           string `json:"name"`
	NormalizedName string `json:"normalized_name"`
}

// FacetOption is a single selectable filter choice.
type FacetOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DistanceOption is a radius choice; Value is in meters.
type DistanceOption struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}
