package hos

// DutyStatus classifies every minute of a driver's day into one of the four
// FMCSA duty statuses.
type DutyStatus string

const (
	StatusOffDuty      DutyStatus = "offDuty"
	StatusSleeperBerth DutyStatus = "sleeperBerth"
	StatusDriving      DutyStatus = "driving"
	//StatusOnDuty is on-duty-not-driving: pickup, dropoff, fueling and the 30-minute break
	StatusOnDuty DutyStatus = "onDuty"
)

// Event is a duty-status interval within a single day. Events are internal to
// the schedule computation and exist only to project daily logs.
type Event struct {
	Day    int
	Start  float64
	End    float64
	Status DutyStatus
}

//eventRecorder keeps the append-only duty-status log together with the
//schedule's wall-clock cursor. Day numbering starts at 1; timeOfDay is
//fractional hours since midnight.
type eventRecorder struct {
	events    []Event
	day       int
	timeOfDay float64
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{day: 1, timeOfDay: DayStartHour}
}

//record appends hours of status at the cursor and advances the cursor,
//splitting the interval wherever it crosses midnight. Zero-duration activity
//is not recorded.
func (r *eventRecorder) record(status DutyStatus, hours float64) {
	remaining := hours
	for remaining > 0 {
		untilMidnight := 24 - r.timeOfDay
		segment := remaining
		if segment > untilMidnight {
			segment = untilMidnight
		}
		r.events = append(r.events, Event{
			Day:    r.day,
			Start:  r.timeOfDay,
			End:    r.timeOfDay + segment,
			Status: status,
		})
		remaining -= segment
		if r.timeOfDay+segment >= 24 {
			r.day++
			r.timeOfDay = 0
		} else {
			r.timeOfDay += segment
		}
	}
}

//markOffDuty appends an off-duty interval without moving the cursor. Used for
//the portions of the first and last day that fall outside the schedule proper.
func (r *eventRecorder) markOffDuty(day int, start, end float64) {
	if end <= start {
		return
	}
	r.events = append(r.events, Event{Day: day, Start: start, End: end, Status: StatusOffDuty})
}
