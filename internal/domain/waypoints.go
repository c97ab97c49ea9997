package domain

import (
	"fmt"
	"strconv"
)

// WaypointParams encodes an ordered stop list into the query parameters the
// routing service expects. The first and last stops are anchor waypoints
// (wayPoint.1 and wayPoint.N); every intermediate stop k becomes
// viaWayPoint.k with its 1-based overall position. The service requires this
// exact key discrimination.
func WaypointParams(stops []string) (map[string]string, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("%w: a route needs at least a start and an end, got %d stops", ErrInvalidInput, len(stops))
	}

	params := make(map[string]string, len(stops))
	for i, stop := range stops {
		n := i + 1
		if n == 1 || n == len(stops) {
			params["wayPoint."+strconv.Itoa(n)] = stop
		} else {
			params["viaWayPoint."+strconv.Itoa(n)] = stop
		}
	}

	return params, nil
}
