package isochrone

import "fmt"

// NoInputsError reports a call made with zero starts before any snapping is
// attempted, distinguished from NoStartNodesError (every start was
// rejected by the graph).
type NoInputsError struct{}

func (e *NoInputsError) Error() string {
	return "isochrone: no start coordinates supplied"
}

// BadTimeError reports a non-positive or unreasonably large time_min input.
type BadTimeError struct {
	TimeMin float64
}

func (e *BadTimeError) Error() string {
	return fmt.Sprintf("isochrone: invalid time_min %v", e.TimeMin)
}

// NoStartNodesError reports that every requested start coordinate failed to
// snap to a road graph node, which happens when the loaded graph has no
// nodes.
type NoStartNodesError struct{}

func (e *NoStartNodesError) Error() string {
	return "isochrone: no start coordinate snapped to a road node"
}

// NotInitializedError reports a call made before the road graph handle
// reached Ready (component H).
type NotInitializedError struct{}

func (e *NotInitializedError) Error() string {
	return "isochrone: road graph not yet initialized"
}

// MultiPolygonUnsupportedError reports that BuildStrict's union produced
// more than one disjoint connected component, which no caller requiring a
// single star-shaped ring (e.g. the scorer's fan polygon) can consume.
type MultiPolygonUnsupportedError struct {
	Components int
}

func (e *MultiPolygonUnsupportedError) Error() string {
	return fmt.Sprintf("isochrone: union produced %d disjoint components, expected 1", e.Components)
}
