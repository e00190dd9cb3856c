// Package stats implements the dashboard analytics engine: one generic
// monthly time-bucketing aggregation with cumulative running totals and
// optional categorical breakdowns, reused across every entity dimension.
package stats

import (
	"encoding/json"
	"sort"
	"time"
)

// Row is one countable record: when it was created plus its dimension values.
// A dimension absent from Dims is unknown for that row; such rows stay in the
// ungrouped totals but are excluded from that dimension's breakdown.
type Row struct {
	At   time.Time
	Dims map[string]string
}

// LabelCount is one per-month bucket, serialized as a [label, count] pair.
type LabelCount struct {
	Label string
	Count int64
}

func (lc LabelCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{lc.Label, lc.Count})
}

// TimeCount is one running-total point on a continuous time axis, serialized
// as an [epoch_ms, cumulative] pair. UnixMs is the UTC month start.
type TimeCount struct {
	UnixMs     int64
	Cumulative int64
}

func (tc TimeCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64{tc.UnixMs, tc.Cumulative})
}

// NameCount is one entry of a total_by_<dim> breakdown.
type NameCount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// Series is the ungrouped aggregation result. Months with no rows are
// omitted; consumers treat missing as zero.
type Series struct {
	PerMonth     []LabelCount `json:"per_month"`
	RunningTotal []TimeCount  `json:"running_total"`
	Total        int64        `json:"total"`
}

// DimensionSeries repeats the three series shapes per distinct dimension
// value, plus the per-value grand totals.
type DimensionSeries struct {
	PerMonth     map[string][]LabelCount
	RunningTotal map[string][]TimeCount
	Totals       []NameCount
}

// Stats is a Series plus any dimension breakdowns. It serializes the
// breakdowns under dynamic per_month_by_<dim> / running_total_by_<dim> /
// total_by_<dim> keys.
type Stats struct {
	Series
	ByDimension map[string]DimensionSeries
}

func (s Stats) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"per_month":     s.PerMonth,
		"running_total": s.RunningTotal,
		"total":         s.Total,
	}
	for dim, ds := range s.ByDimension {
		out["per_month_by_"+dim] = ds.PerMonth
		out["running_total_by_"+dim] = ds.RunningTotal
		out["total_by_"+dim] = ds.Totals
	}
	return json.Marshal(out)
}

const monthLabelFormat = "2006-01"

// monthStart truncates a timestamp to its UTC month start.
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Aggregate buckets rows by UTC month and, for each named dimension, repeats
// the bucketing per distinct value. One code path serves every dashboard
// dimension; callers vary only the rows and dimension names.
func Aggregate(rows []Row, dims ...string) Stats {
	result := Stats{Series: buildSeries(rows)}

	if len(dims) == 0 {
		return result
	}
	result.ByDimension = make(map[string]DimensionSeries, len(dims))
	for _, dim := range dims {
		result.ByDimension[dim] = buildDimensionSeries(rows, dim)
	}
	return result
}

func buildSeries(rows []Row) Series {
	series := Series{
		PerMonth:     []LabelCount{},
		RunningTotal: []TimeCount{},
	}

	counts := make(map[time.Time]int64)
	for _, row := range rows {
		counts[monthStart(row.At)]++
	}

	months := make([]time.Time, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	var cumulative int64
	for _, month := range months {
		count := counts[month]
		cumulative += count
		series.PerMonth = append(series.PerMonth, LabelCount{
			Label: month.Format(monthLabelFormat),
			Count: count,
		})
		series.RunningTotal = append(series.RunningTotal, TimeCount{
			UnixMs:     month.UnixMilli(),
			Cumulative: cumulative,
		})
	}
	series.Total = cumulative
	return series
}

func buildDimensionSeries(rows []Row, dim string) DimensionSeries {
	byValue := make(map[string][]Row)
	for _, row := range rows {
		value, ok := row.Dims[dim]
		if !ok {
			continue
		}
		byValue[value] = append(byValue[value], row)
	}

	ds := DimensionSeries{
		PerMonth:     make(map[string][]LabelCount, len(byValue)),
		RunningTotal: make(map[string][]TimeCount, len(byValue)),
		Totals:       []NameCount{},
	}
	for value, valueRows := range byValue {
		series := buildSeries(valueRows)
		ds.PerMonth[value] = series.PerMonth
		ds.RunningTotal[value] = series.RunningTotal
		ds.Totals = append(ds.Totals, NameCount{Name: value, Value: series.Total})
	}
	// Deterministic output; consumers treat the list as unordered.
	sort.Slice(ds.Totals, func(i, j int) bool { return ds.Totals[i].Name < ds.Totals[j].Name })
	return ds
}
