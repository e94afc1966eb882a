package hos

import (
	"fmt"
	"math"
)

// HOS limits for property-carrying drivers (FMCSA part 395), plus the fixed
// operational figures the planner assumes.
const (
	MaxDrivingHours    = 11.0
	MaxDutyWindow      = 14.0
	BreakRequiredAfter = 8.0
	BreakDuration      = 0.5
	OffDutyReset       = 10.0
	MaxCycleHours      = 70.0
	FuelIntervalMiles  = 1000.0
	FuelStopDuration   = 0.5
	PickupDuration     = 1.0
	DropoffDuration    = 1.0
	AvgSpeedMPH        = 55.0
	DayStartHour       = 6.0
)

// StopType identifies a human-meaningful point on the plan.
type StopType string

const (
	StopStart   StopType = "start"
	StopPickup  StopType = "pickup"
	StopDropoff StopType = "dropoff"
	StopEnd     StopType = "end"
	StopRest    StopType = "rest"
	StopBreak   StopType = "break"
	StopFuel    StopType = "fuel"
)

// Stop is one entry in the ordered stop list. Time is a 24-hour HH:MM clock
// reading, Duration is in hours, Mileage is the trip odometer rounded to the
// nearest mile.
type Stop struct {
	Type     StopType `json:"type"`
	Label    string   `json:"label"`
	Time     string   `json:"time"`
	Duration float64  `json:"duration"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Mileage  int      `json:"mileage"`
	Day      int      `json:"day"`
}

//scheduler walks the route legs while enforcing the four simultaneous HOS
//limits, emitting stops and duty-status events as it goes. All state is
//request-scoped; nothing survives a single schedule computation.
type scheduler struct {
	rec *eventRecorder

	//per duty period, zeroed by each 10-hour rest
	dayDriving        float64
	dayDuty           float64
	drivingSinceBreak float64

	cycleHours float64
	mileage    float64

	stops []Stop
}

func newScheduler(cycleHoursUsed float64) *scheduler {
	return &scheduler{rec: newEventRecorder(), cycleHours: cycleHoursUsed}
}

//buildSchedule runs the trip end to end: off-duty lead-in, leg to pickup,
//pickup, leg to dropoff, dropoff, and the trailing off-duty block. Off-duty
//for whole days created by rest crossings is left to the projector.
func (s *scheduler) buildSchedule(origin, pickup, dropoff Location, route *Route) {
	s.rec.markOffDuty(s.rec.day, 0, s.rec.timeOfDay)

	s.addStop(StopStart, origin, 0)

	s.driveLeg(route.Legs[0])
	s.addStop(StopPickup, pickup, PickupDuration)
	s.recordOnDuty(PickupDuration)

	s.driveLeg(route.Legs[1])
	s.addStop(StopDropoff, dropoff, DropoffDuration)
	s.recordOnDuty(DropoffDuration)

	s.addStop(StopEnd, dropoff, 0)
	s.rec.markOffDuty(s.rec.day, s.rec.timeOfDay, 24)
}

//driveLeg drives one leg to completion, inserting rests, breaks and fuel
//stops as the limits and the odometer demand. Rest is always tested before
//break: a driver out of hours takes the 10-hour reset even when the break
//counter is also exhausted.
func (s *scheduler) driveLeg(leg Leg) {
	remaining := leg.Distance
	for remaining > 0 {
		available := math.Min(MaxDrivingHours-s.dayDriving,
			math.Min(MaxDutyWindow-s.dayDuty, BreakRequiredAfter-s.drivingSinceBreak))

		progress := 0.0
		if leg.Distance > 0 {
			progress = 1 - remaining/leg.Distance
		}

		if available <= 0 {
			s.addStop(StopRest, s.interpolated(leg, progress), OffDutyReset)
			s.takeRest()
			continue
		}

		if s.drivingSinceBreak >= BreakRequiredAfter {
			s.addStop(StopBreak, s.interpolated(leg, progress), BreakDuration)
			s.takeBreak()
			continue
		}

		driveDist := math.Min(available*AvgSpeedMPH, remaining)

		// Fuel milestone strictly inside this segment: drive up to it first,
		// then fuel. A drive ending exactly on the milestone fuels on the
		// next iteration instead.
		nextFuelMile := (math.Floor(s.mileage/FuelIntervalMiles) + 1) * FuelIntervalMiles
		milesToFuel := nextFuelMile - s.mileage
		if milesToFuel > 0 && milesToFuel < driveDist {
			fuelProgress := 0.0
			if leg.Distance > 0 {
				fuelProgress = 1 - (remaining-milesToFuel)/leg.Distance
			}
			fuelLoc := s.interpolated(leg, fuelProgress)
			s.recordDriving(milesToFuel/AvgSpeedMPH, milesToFuel)
			remaining -= milesToFuel
			s.addStop(StopFuel, fuelLoc, FuelStopDuration)
			s.recordOnDuty(FuelStopDuration)
			continue
		}

		s.recordDriving(driveDist/AvgSpeedMPH, driveDist)
		remaining -= driveDist
	}
}

func (s *scheduler) interpolated(leg Leg, progress float64) Location {
	return interpolate(leg.From, leg.To, progress, s.mileage)
}

func (s *scheduler) recordDriving(hours, miles float64) {
	s.rec.record(StatusDriving, hours)
	s.dayDriving += hours
	s.dayDuty += hours
	s.drivingSinceBreak += hours
	s.mileage += miles
	s.cycleHours += hours
}

//recordOnDuty covers pickup, dropoff and fueling; all count against the duty
//window and the cycle.
func (s *scheduler) recordOnDuty(hours float64) {
	s.rec.record(StatusOnDuty, hours)
	s.dayDuty += hours
	s.cycleHours += hours
}

//takeBreak logs the 30 minutes as on-duty but charges it to neither the duty
//window nor the cycle; it only zeroes the break counter.
func (s *scheduler) takeBreak() {
	s.rec.record(StatusOnDuty, BreakDuration)
	s.drivingSinceBreak = 0
}

//takeRest logs the 10-hour reset as sleeper berth and zeroes the whole duty
//period: driving, duty window and break counter.
func (s *scheduler) takeRest() {
	s.rec.record(StatusSleeperBerth, OffDutyReset)
	s.dayDriving = 0
	s.dayDuty = 0
	s.drivingSinceBreak = 0
}

func (s *scheduler) addStop(kind StopType, loc Location, duration float64) {
	s.stops = append(s.stops, Stop{
		Type:     kind,
		Label:    loc.Label,
		Time:     formatClock(s.rec.timeOfDay),
		Duration: duration,
		Lat:      loc.Lat,
		Lng:      loc.Lng,
		Mileage:  int(math.Round(s.mileage)),
		Day:      s.rec.day,
	})
}

//formatClock renders fractional hours since midnight as HH:MM
func formatClock(hours float64) string {
	h := int(hours) % 24
	m := int((hours - math.Floor(hours)) * 60)
	return fmt.Sprintf("%02d:%02d", h, m)
}
