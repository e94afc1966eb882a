package hos

import (
	"fmt"
	"math"
)

// Location is a named point on the road network.
type Location struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// Leg is a straight run between two named locations. Distance is in miles,
// Duration in hours.
type Leg struct {
	From     Location `json:"from"`
	To       Location `json:"to"`
	Distance float64  `json:"distance"`
	Duration float64  `json:"duration"`
}

// Route is the estimator's answer for a full origin -> pickup -> dropoff trip.
// Waypoints are always ordered [origin, pickup, dropoff].
type Route struct {
	Legs             []Leg      `json:"legs"`
	TotalDistance    float64    `json:"total_distance"`
	TotalDrivingTime float64    `json:"total_driving_time"`
	Waypoints        []Location `json:"waypoints"`
}

// RouteEstimator produces leg distances and durations for a trip. The
// scheduler trusts the estimator and never re-derives geometry.
type RouteEstimator interface {
	EstimateRoute(origin, pickup, dropoff Location) (*Route, error)
}

const (
	earthRadiusMiles = 3958.8
	//roadFactor scales great-circle distance to an approximate road distance
	roadFactor = 1.3
)

// HaversineEstimator is the reference RouteEstimator: great-circle distances
// scaled by a road factor, with durations at the fleet average speed.
type HaversineEstimator struct{}

// EstimateRoute implements RouteEstimator
func (HaversineEstimator) EstimateRoute(origin, pickup, dropoff Location) (*Route, error) {
	distToPickup := round1(haversineMiles(origin.Lat, origin.Lng, pickup.Lat, pickup.Lng) * roadFactor)
	distToDropoff := round1(haversineMiles(pickup.Lat, pickup.Lng, dropoff.Lat, dropoff.Lng) * roadFactor)
	totalDistance := round1(distToPickup + distToDropoff)

	route := Route{
		Legs: []Leg{
			{From: origin, To: pickup, Distance: distToPickup, Duration: round2(distToPickup / AvgSpeedMPH)},
			{From: pickup, To: dropoff, Distance: distToDropoff, Duration: round2(distToDropoff / AvgSpeedMPH)},
		},
		TotalDistance:    totalDistance,
		TotalDrivingTime: round2(totalDistance / AvgSpeedMPH),
		Waypoints:        []Location{origin, pickup, dropoff},
	}
	return &route, nil
}

//haversineMiles returns the great-circle distance in miles between two coordinates
func haversineMiles(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

//interpolate returns the point progress of the way from one location to the
//other, labeled with the trip mileage reached so far. Used only to name
//mid-leg stops, so linear interpolation is accurate enough.
func interpolate(from, to Location, progress, mileage float64) Location {
	return Location{
		Label: fmt.Sprintf("Mile %.0f", mileage),
		Lat:   from.Lat + (to.Lat-from.Lat)*progress,
		Lng:   from.Lng + (to.Lng-from.Lng)*progress,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
