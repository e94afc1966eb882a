// Package hos computes Hours-of-Service compliant trip schedules for
// property-carrying commercial drivers under FMCSA rules: 11-hour driving
// limit, 14-hour duty window, 30-minute break after 8 driving hours, 10-hour
// off-duty reset and the 70-hour/8-day cycle.
package hos

import (
	"fmt"
	"math"
	"time"
)

// PlanRequest is the client's trip planning input.
type PlanRequest struct {
	CurrentLocation Location `json:"current_location"`
	PickupLocation  Location `json:"pickup_location"`
	DropoffLocation Location `json:"dropoff_location"`
	CycleHoursUsed  int      `json:"cycle_hours_used"`
}

// CycleWarning flags a plan that would overrun the rolling 70-hour cycle.
// It is advisory: the plan is still returned in full.
type CycleWarning struct {
	Type           string  `json:"type"`
	Message        string  `json:"message"`
	ExcessHours    float64 `json:"excessHours"`
	Recommendation string  `json:"recommendation"`
}

// HolidayNote marks a plan day falling on an observed US federal holiday,
// when shipper and receiver facilities are commonly closed.
type HolidayNote struct {
	Day     int    `json:"day"`
	Date    string `json:"date"`
	Holiday string `json:"holiday"`
}

// RouteSummary carries the map-facing portion of the route.
type RouteSummary struct {
	Waypoints []Location `json:"waypoints"`
}

// TripResult is the complete day-by-day HOS-compliant plan.
type TripResult struct {
	Name              string        `json:"name"`
	Origin            Location      `json:"origin"`
	Pickup            Location      `json:"pickup"`
	Dropoff           Location      `json:"dropoff"`
	CycleHoursUsed    int           `json:"cycleHoursUsed"`
	CycleHoursActual  float64       `json:"cycleHoursActual"`
	TotalMiles        int           `json:"totalMiles"`
	TotalDays         int           `json:"totalDays"`
	TotalDrivingHours float64       `json:"totalDrivingHours"`
	TotalOnDutyHours  float64       `json:"totalOnDutyHours"`
	Days              []Day         `json:"days"`
	Route             RouteSummary  `json:"route"`
	Warning           *CycleWarning `json:"warning,omitempty"`
	Holidays          []HolidayNote `json:"holidays,omitempty"`
}

//Planner computes HOS-compliant trip schedules. A Planner is safe for
//concurrent use: every plan runs on a fresh scheduler.
type Planner struct {
	estimator RouteEstimator
	calendar  *freightHolidayCalendar
	now       func() time.Time
}

//NewPlanner builds a Planner around the given route estimator.
func NewPlanner(estimator RouteEstimator) *Planner {
	return &Planner{
		estimator: estimator,
		calendar:  makeFreightHolidayCalendar(),
		now:       time.Now,
	}
}

//PlanTrip computes the full schedule for req. The request must already be
//validated; see PlanRequest.Validate.
func (p *Planner) PlanTrip(req PlanRequest) (*TripResult, error) {
	route, err := p.estimator.EstimateRoute(req.CurrentLocation, req.PickupLocation, req.DropoffLocation)
	if err != nil {
		return nil, fmt.Errorf("estimating route: %w", err)
	}
	if len(route.Legs) != 2 {
		return nil, fmt.Errorf("route estimator returned %d legs, want 2", len(route.Legs))
	}

	sched := newScheduler(float64(req.CycleHoursUsed))
	sched.buildSchedule(req.CurrentLocation, req.PickupLocation, req.DropoffLocation, route)

	days := projectDays(sched.stops, sched.rec.events, p.now())

	var totalDriving, totalOnDuty float64
	for _, day := range days {
		totalDriving += day.Log.Totals.Driving
		totalOnDuty += day.Log.Totals.OnDuty
	}
	finalCycle := float64(req.CycleHoursUsed) + totalDriving + totalOnDuty

	cycleHoursUsed := int(math.Round(finalCycle))
	if cycleHoursUsed > int(MaxCycleHours) {
		cycleHoursUsed = int(MaxCycleHours)
	}

	result := TripResult{
		Name:              req.CurrentLocation.Label + " → " + req.DropoffLocation.Label,
		Origin:            req.CurrentLocation,
		Pickup:            req.PickupLocation,
		Dropoff:           req.DropoffLocation,
		CycleHoursUsed:    cycleHoursUsed,
		CycleHoursActual:  round1(finalCycle),
		TotalMiles:        int(math.Round(route.TotalDistance)),
		TotalDays:         len(days),
		TotalDrivingHours: round1(totalDriving),
		TotalOnDutyHours:  round1(totalOnDuty),
		Days:              days,
		Route:             RouteSummary{Waypoints: route.Waypoints},
		Holidays:          p.holidayNotes(days),
	}

	if finalCycle > MaxCycleHours {
		excess := round1(finalCycle - MaxCycleHours)
		result.Warning = &CycleWarning{
			Type: "cycle_exceeded",
			Message: fmt.Sprintf("This trip exceeds the 70-hour cycle limit by %.1f hours. "+
				"Consider taking a 34-hour restart before starting.", excess),
			ExcessHours:    excess,
			Recommendation: "34-hour restart required",
		}
	}

	return &result, nil
}

//holidayNotes flags plan days that land on observed federal holidays
func (p *Planner) holidayNotes(days []Day) []HolidayNote {
	var notes []HolidayNote
	for _, day := range days {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			continue
		}
		if name, ok := p.calendar.observedHoliday(date); ok {
			notes = append(notes, HolidayNote{Day: day.Day, Date: day.Date, Holiday: name})
		}
	}
	return notes
}
