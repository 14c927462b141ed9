// Package scorer ranks candidate hotspot centers by the weighted count of
// nearby points of interest falling inside a small fan polygon anchored at
// the candidate, grounded on original_source/geometry_isochrone.py's
// attraction_score_by_category/calculate_attraction(s) and app.py's
// /api/isochrones/score handler (spec §4.G).
package scorer

import (
	"context"
	"fmt"
	"sort"

	"github.com/paulmach/orb"

	"isochrone/internal/aggregator"
	"isochrone/internal/geo"
	"isochrone/internal/isochrone"
)

// ScoreThreshold is the total score a candidate center must exceed to be
// reported, per spec §4.G.
const ScoreThreshold = 5

// DefaultAnchorTimeMin is the walking time used to build the small fan
// polygon anchoring each candidate's containment test, the configurable
// default from spec §1.3.
const DefaultAnchorTimeMin = 7.0

// Category is a closed set of point-of-interest categories, each with a
// fixed integer weight.
type Category string

const (
	CategoryRailwayStation  Category = "railway_station"
	CategoryBusinessCenter  Category = "business_center"
	CategoryEducation       Category = "education"
	CategoryPedestrianZone  Category = "pedestrian_zone"
	CategoryPark            Category = "park"
	CategoryIndustrial      Category = "industrial"
	CategoryWastewaterPlant Category = "wastewater_plant"
	CategoryMilitary        Category = "military"
	CategoryPower           Category = "power"
)

// categoryWeights is the closed category -> integer score table, matching
// original_source/geometry_isochrone.py's attraction_score_by_category.
// Any category not present here is a caller error (BadCategoryError), not
// a silent zero.
var categoryWeights = map[Category]int{
	CategoryRailwayStation:  15,
	CategoryBusinessCenter:  10,
	CategoryEducation:       8,
	CategoryPedestrianZone:  7,
	CategoryPark:            6,
	CategoryIndustrial:      -12,
	CategoryWastewaterPlant: -15,
	CategoryMilitary:        -10,
	CategoryPower:           -8,
}

// BadCategoryError reports a point of interest with a category outside the
// closed set scorer understands.
type BadCategoryError struct {
	Category Category
}

func (e *BadCategoryError) Error() string {
	return fmt.Sprintf("scorer: unknown category %q", e.Category)
}

// WeightOf returns the fixed integer weight for category, or an error if
// category isn't in the closed set.
func WeightOf(category Category) (int, error) {
	weight, ok := categoryWeights[category]
	if !ok {
		return 0, &BadCategoryError{Category: category}
	}

	return weight, nil
}

// POI is one scoring input: a location and its category.
type POI struct {
	Point    orb.Point
	Category Category
}

// ScoredPoint is one candidate that cleared ScoreThreshold, 1-based ranked
// by descending score.
type ScoredPoint struct {
	Rank        int
	Center      orb.Point
	Score       int
	Contributed []int
}

// Scorer evaluates aggregator hotspot candidates against a fixed set of
// points of interest, using the isochrone builder to anchor each
// candidate's containment polygon.
type Scorer struct {
	builder       *isochrone.Builder
	anchorTimeMin float64
}

// New wraps an isochrone builder. anchorTimeMin of zero falls back to
// DefaultAnchorTimeMin.
func New(builder *isochrone.Builder, anchorTimeMin float64) *Scorer {
	if anchorTimeMin <= 0 {
		anchorTimeMin = DefaultAnchorTimeMin
	}

	return &Scorer{builder: builder, anchorTimeMin: anchorTimeMin}
}

// Score evaluates every candidate: for each, it builds a small walking-time
// polygon anchored at the candidate's center (rejecting any that split
// into a MultiPolygon, since the fan-polygon containment test requires one
// star-shaped ring), counts category-weighted POIs inside it, and keeps
// only candidates whose total score exceeds ScoreThreshold.
//
// A per-POI BadCategoryError aborts the whole call rather than silently
// skipping that POI, since a malformed POI list should fail loudly rather
// than understate every candidate's score.
func (s *Scorer) Score(ctx context.Context, candidates []aggregator.HotspotCandidate, pois []POI) ([]ScoredPoint, error) {
	for _, p := range pois {
		if _, err := WeightOf(p.Category); err != nil {
			return nil, err
		}
	}

	var results []ScoredPoint

	for _, c := range candidates {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		ring, err := s.builder.BuildStrict([]orb.Point{c.Center}, s.anchorTimeMin)
		if err != nil {
			continue
		}

		polygon := fanPolygonFromRing(c.Center, ring)

		total := 0
		var contributed []int
		for i, poi := range pois {
			vector := geo.Vector{X: poi.Point[0], Y: poi.Point[1]}
			if !polygon.Contains(vector) {
				continue
			}

			weight, _ := WeightOf(poi.Category)
			total += weight
			contributed = append(contributed, i)
		}

		if total > ScoreThreshold {
			results = append(results, ScoredPoint{Center: c.Center, Score: total, Contributed: contributed})
		}
	}

	rankResults(results)

	return results, nil
}

func fanPolygonFromRing(center orb.Point, ring orb.Ring) *geo.FanPolygon {
	vertices := make([]geo.Vector, len(ring))
	for i, p := range ring {
		vertices[i] = geo.Vector{X: p[0], Y: p[1]}
	}

	return geo.NewFanPolygon(geo.Vector{X: center[0], Y: center[1]}, vertices)
}

func rankResults(results []ScoredPoint) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	for i := range results {
		results[i].Rank = i + 1
	}
}
