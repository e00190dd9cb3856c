// Package search implements the read-side discovery index over groups and
// events: filter normalization, predicate composition, ranking, pagination,
// and bounding-box/overlay computation.
package search

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gatherly/gatherly_api/util"
)

const (
	DefaultLimit = 25
	MaxLimit     = 100
)

// Filter is the typed form of the untyped filter bag accepted by the search
// operations. Absent dimensions are nil/zero and place no constraint.
type Filter struct {
	GroupCategory []string
	EventCategory []string
	Region        []string
	TsQuery       string
	Latitude      *float64 `validate:"omitempty,latitude"`
	Longitude     *float64 `validate:"omitempty,longitude"`
	Distance      *float64 `validate:"omitempty,gt=0"`
	Limit         int      `validate:"min=1,max=100"`
	Offset        int      `validate:"min=0"`
	IncludeBBox   bool
	IncludePoints bool
}

// HasGeo reports whether the geodistance dimension is active. The normalizer
// guarantees the three geo values are either all present or all absent.
func (f Filter) HasGeo() bool {
	return f.Latitude != nil && f.Longitude != nil && f.Distance != nil
}

// ParseFilter normalizes raw query values into a Filter. Unknown keys are
// ignored for forward compatibility; malformed recognized values fail rather
// than silently defaulting.
func ParseFilter(q url.Values) (Filter, error) {
	f := Filter{
		GroupCategory: slugValues(q, "group_category"),
		EventCategory: slugValues(q, "event_category"),
		Region:        slugValues(q, "region"),
		TsQuery:       q.Get("ts_query"),
		Limit:         DefaultLimit,
	}

	var err error
	if f.Latitude, err = floatValue(q, "latitude"); err != nil {
		return Filter{}, err
	}
	if f.Longitude, err = floatValue(q, "longitude"); err != nil {
		return Filter{}, err
	}
	if f.Distance, err = floatValue(q, "distance"); err != nil {
		return Filter{}, err
	}

	geoGiven := 0
	for _, v := range []*float64{f.Latitude, f.Longitude, f.Distance} {
		if v != nil {
			geoGiven++
		}
	}
	if geoGiven != 0 && geoGiven != 3 {
		return Filter{}, fmt.Errorf("geo filter requires latitude, longitude and distance together")
	}

	if raw := q.Get("limit"); raw != "" {
		limit, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return Filter{}, fmt.Errorf("invalid limit %q", raw)
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
		f.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return Filter{}, fmt.Errorf("invalid offset %q", raw)
		}
		f.Offset = offset
	}

	if f.IncludeBBox, err = boolValue(q, "include_bbox"); err != nil {
		return Filter{}, err
	}
	if f.IncludePoints, err = boolValue(q, "include_points"); err != nil {
		return Filter{}, err
	}

	if err := util.ValidateStruct(f); err != nil {
		return Filter{}, fmt.Errorf("invalid filter: %w", err)
	}
	return f, nil
}

// slugValues reads a repeatable key in both its bare and bracketed spellings.
func slugValues(q url.Values, key string) []string {
	values := append(q[key], q[key+"[]"]...)

	var slugs []string
	for _, v := range values {
		if util.NotBlank(v) {
			slugs = append(slugs, v)
		}
	}
	return slugs
}

func floatValue(q url.Values, key string) (*float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, raw)
	}
	return &v, nil
}

func boolValue(q url.Values, key string) (bool, error) {
	raw := q.Get(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, nil
}
