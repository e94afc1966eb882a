package hos

import (
	"math"
	"testing"

	"github.com/matryer/is"
)

func testLeg(distance float64) Leg {
	return Leg{
		From:     Location{Label: "A", Lat: 40, Lng: -80},
		To:       Location{Label: "B", Lat: 42, Lng: -90},
		Distance: distance,
		Duration: round2(distance / AvgSpeedMPH),
	}
}

func stopTypes(stops []Stop) []StopType {
	types := make([]StopType, 0, len(stops))
	for _, stop := range stops {
		types = append(types, stop.Type)
	}
	return types
}

func TestDriveLegWithinLimits(t *testing.T) {
	is := is.New(t)

	s := newScheduler(0)
	s.driveLeg(testLeg(110))

	is.Equal(len(s.stops), 0)
	is.Equal(s.dayDriving, 2.0)
	is.Equal(s.dayDuty, 2.0)
	is.Equal(s.drivingSinceBreak, 2.0)
	is.Equal(s.mileage, 110.0)
	is.Equal(s.cycleHours, 2.0)
	is.Equal(s.rec.timeOfDay, 8.0)
	is.Equal(s.rec.events, []Event{{Day: 1, Start: 6, End: 8, Status: StatusDriving}})
}

func TestDriveLegRestAfterEightHours(t *testing.T) {
	is := is.New(t)

	// 550 miles is ten driving hours; the break counter runs out after eight,
	// and with rest tested first the driver takes the full 10-hour reset.
	s := newScheduler(0)
	s.driveLeg(testLeg(550))

	is.Equal(stopTypes(s.stops), []StopType{StopRest})

	rest := s.stops[0]
	is.Equal(rest.Day, 1)
	is.Equal(rest.Time, "14:00")
	is.Equal(rest.Mileage, 440)
	is.Equal(rest.Label, "Mile 440")

	//rest resets the duty period; the remaining two hours driven after it
	is.Equal(s.dayDriving, 2.0)
	is.Equal(s.drivingSinceBreak, 2.0)
	is.Equal(s.mileage, 550.0)
	is.Equal(s.rec.day, 2)
	is.Equal(s.rec.timeOfDay, 2.0)

	is.Equal(s.rec.events, []Event{
		{Day: 1, Start: 6, End: 14, Status: StatusDriving},
		{Day: 1, Start: 14, End: 24, Status: StatusSleeperBerth},
		{Day: 2, Start: 0, End: 2, Status: StatusDriving},
	})
}

func TestDriveLegFuelStop(t *testing.T) {
	is := is.New(t)

	s := newScheduler(0)
	s.driveLeg(testLeg(1100))

	is.Equal(stopTypes(s.stops), []StopType{StopRest, StopRest, StopFuel})

	fuel := s.stops[2]
	is.Equal(fuel.Day, 2)
	is.Equal(fuel.Mileage, 1000)
	//the fuel label carries the mileage before the approach drive
	is.Equal(fuel.Label, "Mile 880")

	//fueling charges the duty window and cycle but not the break counter
	if math.Abs(s.dayDuty-(s.dayDriving+FuelStopDuration)) > 1e-9 {
		t.Errorf("dayDuty = %v, want dayDriving %v plus fuel duration", s.dayDuty, s.dayDriving)
	}
	is.Equal(s.drivingSinceBreak, s.dayDriving)
	if math.Abs(s.mileage-1100) > 1e-9 {
		t.Errorf("mileage = %v, want 1100", s.mileage)
	}
}

func TestDriveLegEndingOnFuelBoundary(t *testing.T) {
	is := is.New(t)

	// A drive ending exactly on a 1000-mile multiple does not trigger a fuel
	// stop; the next iteration would, but the leg is complete.
	s := newScheduler(0)
	s.driveLeg(testLeg(1000))

	is.Equal(stopTypes(s.stops), []StopType{StopRest, StopRest})
	if math.Abs(s.mileage-1000) > 1e-9 {
		t.Errorf("mileage = %v, want 1000", s.mileage)
	}
}

func TestDriveLegZeroDistance(t *testing.T) {
	is := is.New(t)

	s := newScheduler(0)
	s.driveLeg(testLeg(0))

	is.Equal(len(s.stops), 0)
	is.Equal(len(s.rec.events), 0)
	is.Equal(s.mileage, 0.0)
	is.Equal(s.rec.timeOfDay, DayStartHour)
}

func TestTakeBreakAndRestCounterEffects(t *testing.T) {
	is := is.New(t)

	s := newScheduler(5)
	s.recordDriving(4, 220)

	s.takeBreak()
	//the break zeroes only the break counter and advances the clock
	is.Equal(s.drivingSinceBreak, 0.0)
	is.Equal(s.dayDriving, 4.0)
	is.Equal(s.dayDuty, 4.0)
	is.Equal(s.cycleHours, 9.0)
	is.Equal(s.rec.timeOfDay, 10.5)

	s.takeRest()
	is.Equal(s.dayDriving, 0.0)
	is.Equal(s.dayDuty, 0.0)
	is.Equal(s.drivingSinceBreak, 0.0)
	is.Equal(s.cycleHours, 9.0)
	is.Equal(s.rec.timeOfDay, 20.5)
}

func TestBuildScheduleShortTrip(t *testing.T) {
	is := is.New(t)

	origin := Location{Label: "Origin", Lat: 40.0, Lng: -80.0}
	pickup := Location{Label: "Shipper", Lat: 40.1, Lng: -80.1}
	dropoff := Location{Label: "Receiver", Lat: 40.2, Lng: -80.2}
	route := &Route{
		Legs: []Leg{
			{From: origin, To: pickup, Distance: 10, Duration: round2(10 / AvgSpeedMPH)},
			{From: pickup, To: dropoff, Distance: 11, Duration: round2(11 / AvgSpeedMPH)},
		},
		TotalDistance:    21,
		TotalDrivingTime: round2(21 / AvgSpeedMPH),
		Waypoints:        []Location{origin, pickup, dropoff},
	}

	s := newScheduler(0)
	s.buildSchedule(origin, pickup, dropoff, route)

	is.Equal(stopTypes(s.stops), []StopType{StopStart, StopPickup, StopDropoff, StopEnd})

	is.Equal(s.stops[0].Time, "06:00")
	is.Equal(s.stops[1].Time, "06:10")
	is.Equal(s.stops[2].Time, "07:22")
	is.Equal(s.stops[3].Time, "08:22")
	for _, stop := range s.stops {
		is.Equal(stop.Day, 1)
	}
	is.Equal(s.stops[3].Mileage, 21)

	//day 1 is bracketed by the pre-start and trailing off-duty blocks
	first := s.rec.events[0]
	is.Equal(first, Event{Day: 1, Start: 0, End: 6, Status: StatusOffDuty})
	last := s.rec.events[len(s.rec.events)-1]
	is.Equal(last.Status, StatusOffDuty)
	is.Equal(last.End, 24.0)
}
