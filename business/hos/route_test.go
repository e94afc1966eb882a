package hos

import (
	"math"
	"testing"

	"github.com/matryer/is"
)

func TestHaversineMiles(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		want                   float64
		tolerance              float64
	}{
		{
			name: "new york to los angeles",
			lat1: 40.7128, lng1: -74.0060,
			lat2: 34.0522, lng2: -118.2437,
			want:      2445,
			tolerance: 15,
		},
		{
			name: "same point",
			lat1: 40.7128, lng1: -74.0060,
			lat2: 40.7128, lng2: -74.0060,
			want:      0,
			tolerance: 0.001,
		},
		{
			name: "one degree of latitude",
			lat1: 40, lng1: -100,
			lat2: 41, lng2: -100,
			want:      69.1,
			tolerance: 0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haversineMiles(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("haversineMiles() = %v, want %v within %v", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestHaversineEstimatorEstimateRoute(t *testing.T) {
	is := is.New(t)

	origin := Location{Label: "New York, NY", Lat: 40.7128, Lng: -74.0060}
	pickup := Location{Label: "Newark, NJ", Lat: 40.8, Lng: -74.1}
	dropoff := Location{Label: "Paterson, NJ", Lat: 40.9, Lng: -74.2}

	route, err := HaversineEstimator{}.EstimateRoute(origin, pickup, dropoff)
	is.NoErr(err)

	is.Equal(len(route.Legs), 2)
	is.Equal(route.Legs[0].From, origin)
	is.Equal(route.Legs[0].To, pickup)
	is.Equal(route.Legs[1].From, pickup)
	is.Equal(route.Legs[1].To, dropoff)

	if route.Legs[0].Distance <= 0 || route.Legs[1].Distance <= 0 {
		t.Errorf("leg distances should be positive, got %v and %v",
			route.Legs[0].Distance, route.Legs[1].Distance)
	}

	is.Equal(route.TotalDistance, round1(route.Legs[0].Distance+route.Legs[1].Distance))
	is.Equal(route.Legs[0].Duration, round2(route.Legs[0].Distance/AvgSpeedMPH))

	//waypoint ordering is part of the estimator contract
	is.Equal(route.Waypoints, []Location{origin, pickup, dropoff})
}

func TestHaversineEstimatorZeroLeg(t *testing.T) {
	is := is.New(t)

	loc := Location{Label: "Depot", Lat: 40.0, Lng: -80.0}
	dropoff := Location{Label: "Receiver", Lat: 41.0, Lng: -81.0}

	route, err := HaversineEstimator{}.EstimateRoute(loc, loc, dropoff)
	is.NoErr(err)
	is.Equal(route.Legs[0].Distance, 0.0)
	if route.Legs[1].Distance <= 0 {
		t.Errorf("second leg should be positive, got %v", route.Legs[1].Distance)
	}
}

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name      string
		from      Location
		to        Location
		progress  float64
		mileage   float64
		wantLat   float64
		wantLng   float64
		wantLabel string
	}{
		{
			name:      "midpoint",
			from:      Location{Lat: 40, Lng: -80},
			to:        Location{Lat: 42, Lng: -84},
			progress:  0.5,
			mileage:   137.4,
			wantLat:   41,
			wantLng:   -82,
			wantLabel: "Mile 137",
		},
		{
			name:      "at start",
			from:      Location{Lat: 40, Lng: -80},
			to:        Location{Lat: 42, Lng: -84},
			progress:  0,
			mileage:   0,
			wantLat:   40,
			wantLng:   -80,
			wantLabel: "Mile 0",
		},
		{
			name:      "at end",
			from:      Location{Lat: 40, Lng: -80},
			to:        Location{Lat: 42, Lng: -84},
			progress:  1,
			mileage:   880,
			wantLat:   42,
			wantLng:   -84,
			wantLabel: "Mile 880",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			got := interpolate(tt.from, tt.to, tt.progress, tt.mileage)
			is.Equal(got.Label, tt.wantLabel)
			if math.Abs(got.Lat-tt.wantLat) > 1e-9 || math.Abs(got.Lng-tt.wantLng) > 1e-9 {
				t.Errorf("interpolate() = (%v, %v), want (%v, %v)", got.Lat, got.Lng, tt.wantLat, tt.wantLng)
			}
		})
	}
}
