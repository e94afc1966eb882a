package hos

import (
	"math"
	"sort"
	"time"
)

const (
	//mergeTolerance is the gap below which adjacent same-status fragments are joined
	mergeTolerance = 0.01
	//coverageTolerance is the drift beyond which the 24-hour grid gets gap filled
	coverageTolerance = 0.1
)

// LogInterval is a span of hours within one 24-hour log grid.
type LogInterval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// LogTotals holds per-status hour totals for one day, rounded to one decimal.
type LogTotals struct {
	OffDuty      float64 `json:"offDuty"`
	SleeperBerth float64 `json:"sleeperBerth"`
	Driving      float64 `json:"driving"`
	OnDuty       float64 `json:"onDuty"`
}

// DayLog is one 24-hour record sheet: four disjoint status strips whose union
// covers the whole day.
type DayLog struct {
	OffDuty      []LogInterval `json:"offDuty"`
	SleeperBerth []LogInterval `json:"sleeperBerth"`
	Driving      []LogInterval `json:"driving"`
	OnDuty       []LogInterval `json:"onDuty"`
	Totals       LogTotals     `json:"totals"`
}

// Day is one calendar day of the plan: its stops and its duty log.
type Day struct {
	Day   int    `json:"day"`
	Date  string `json:"date"`
	Stops []Stop `json:"stops"`
	Log   DayLog `json:"log"`
}

//projectDays groups stops and events by day and builds each day's 24-hour
//log. Days are numbered from 1; a day's date is baseDate plus its offset.
func projectDays(stops []Stop, events []Event, baseDate time.Time) []Day {
	dayNumbers := make(map[int]bool)
	for _, stop := range stops {
		dayNumbers[stop.Day] = true
	}
	for _, event := range events {
		dayNumbers[event.Day] = true
	}

	ordered := make([]int, 0, len(dayNumbers))
	for n := range dayNumbers {
		ordered = append(ordered, n)
	}
	sort.Ints(ordered)

	days := make([]Day, 0, len(ordered))
	for _, n := range ordered {
		day := Day{
			Day:   n,
			Date:  baseDate.AddDate(0, 0, n-1).Format("2006-01-02"),
			Stops: []Stop{},
			Log:   buildDayLog(n, events),
		}
		for _, stop := range stops {
			if stop.Day == n {
				day.Stops = append(day.Stops, stop)
			}
		}
		days = append(days, day)
	}
	return days
}

//buildDayLog projects the events of one day onto the four status strips. The
//projector is the sole authority for 24-hour coverage: any region the
//scheduler never touched is filled with off-duty here.
func buildDayLog(day int, events []Event) DayLog {
	log := DayLog{
		OffDuty:      []LogInterval{},
		SleeperBerth: []LogInterval{},
		Driving:      []LogInterval{},
		OnDuty:       []LogInterval{},
	}

	var dayEvents []Event
	for _, event := range events {
		if event.Day == day {
			dayEvents = append(dayEvents, event)
		}
	}
	sort.SliceStable(dayEvents, func(i, j int) bool {
		return dayEvents[i].Start < dayEvents[j].Start
	})

	if len(dayEvents) == 0 {
		log.OffDuty = append(log.OffDuty, LogInterval{Start: 0, End: 24})
		log.Totals.OffDuty = 24
		return log
	}

	//join adjacent fragments of the same status into one interval
	var merged []Event
	for _, event := range dayEvents {
		if len(merged) > 0 {
			last := &merged[len(merged)-1]
			if last.Status == event.Status && math.Abs(last.End-event.Start) < mergeTolerance {
				last.End = event.End
				continue
			}
		}
		merged = append(merged, event)
	}

	for _, event := range merged {
		start := round2(event.Start)
		end := round2(event.End)
		if end-start <= 0 {
			continue
		}
		log.addInterval(event.Status, start, end)
	}

	//fill uncovered regions of [0, 24] with off-duty when coverage has
	//drifted; with explicit event tracking this mainly supplies the whole
	//days spent inside a rest crossing
	total := log.Totals.OffDuty + log.Totals.SleeperBerth + log.Totals.Driving + log.Totals.OnDuty
	if math.Abs(total-24) > coverageTolerance {
		cursor := 0.0
		for _, event := range merged {
			if event.Start > cursor+mergeTolerance {
				log.OffDuty = append(log.OffDuty, LogInterval{Start: round2(cursor), End: round2(event.Start)})
				log.Totals.OffDuty += event.Start - cursor
			}
			if event.End > cursor {
				cursor = event.End
			}
		}
		if cursor < 24-mergeTolerance {
			log.OffDuty = append(log.OffDuty, LogInterval{Start: round2(cursor), End: 24})
			log.Totals.OffDuty += 24 - cursor
		}
		sort.Slice(log.OffDuty, func(i, j int) bool {
			return log.OffDuty[i].Start < log.OffDuty[j].Start
		})
	}

	log.Totals.OffDuty = round1(log.Totals.OffDuty)
	log.Totals.SleeperBerth = round1(log.Totals.SleeperBerth)
	log.Totals.Driving = round1(log.Totals.Driving)
	log.Totals.OnDuty = round1(log.Totals.OnDuty)
	return log
}

func (d *DayLog) addInterval(status DutyStatus, start, end float64) {
	interval := LogInterval{Start: start, End: end}
	duration := end - start
	switch status {
	case StatusOffDuty:
		d.OffDuty = append(d.OffDuty, interval)
		d.Totals.OffDuty += duration
	case StatusSleeperBerth:
		d.SleeperBerth = append(d.SleeperBerth, interval)
		d.Totals.SleeperBerth += duration
	case StatusDriving:
		d.Driving = append(d.Driving, interval)
		d.Totals.Driving += duration
	case StatusOnDuty:
		d.OnDuty = append(d.OnDuty, interval)
		d.Totals.OnDuty += duration
	}
}
