package model

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// BoundingBox is the minimal rectangle over the locations of all matching
// items, south-west and north-east corners.
type BoundingBox struct {
	SouthWest GeoPoint `json:"south_west"`
	NorthEast GeoPoint `json:"north_east"`
}

type GroupSearchResult struct {
	Items []GroupSummary `json:"items"`
	Total int64          `json:"total"`
	BBox  *BoundingBox   `json:"bbox,omitempty"`
	// Points is an encoded polyline of all matching located items, for
	// lightweight map overlays.
	Points *string `json:"points,omitempty"`
}

type EventSearchResult struct {
	Items  []EventSummary `json:"items"`
	Total  int64          `json:"total"`
	BBox   *BoundingBox   `json:"bbox,omitempty"`
	Points *string        `json:"points,omitempty"`
}

// FacetOptions is the payload of the filter-options operation. Distance is
// always present; community-scoped lists degrade to empty for an unknown
// scope.
type FacetOptions struct {
	Communities   []FacetOption    `json:"communities,omitempty"`
	GroupCategory []FacetOption    `json:"group_category"`
	EventCategory []FacetOption    `json:"event_category"`
	Region        []FacetOption    `json:"region"`
	Groups        []FacetOption    `json:"groups,omitempty"`
	Distance      []DistanceOption `json:"distance"`
}
