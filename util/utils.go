package util

import (
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

var rgxNonWord = regexp.MustCompile(`\W+`)

// NormalizeSlug derives the stable identifier used for category and region
// matching: lowercase, non-word runs collapsed to a single dash, boundary
// dashes trimmed. The write-time derivation step and the facet/search layers
// share this function; the two sides must never diverge.
func NormalizeSlug(name string) string {
	slug := strings.ToLower(name)
	slug = rgxNonWord.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

func PointToLatLon(point pgtype.Point) (float64, float64) {
	return point.P.Y, point.P.X
}

// PointFromLatLon creates a pgtype.Point from latitude and longitude.
func PointFromLatLon(lat, lon float64) pgtype.Point {
	return pgtype.Point{
		P: pgtype.Vec2{
			X: lon,
			Y: lat,
		},
	}
}
