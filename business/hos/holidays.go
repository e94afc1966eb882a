package hos

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

//freightHolidayCalendar holds the federal holidays on which shipper and
//receiver facilities are commonly closed, used to annotate plan days.
type freightHolidayCalendar struct {
	calendar *cal.BusinessCalendar
}

//makeFreightHolidayCalendar builds freightHolidayCalendar
func makeFreightHolidayCalendar() *freightHolidayCalendar {
	calendar := cal.NewBusinessCalendar()
	calendar.AddHoliday(
		us.NewYear,
		us.MlkDay,
		us.MemorialDay,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
		us.Juneteenth,
	)
	return &freightHolidayCalendar{calendar: calendar}
}

//observedHoliday returns the holiday name when at falls on an observed
//holiday, and whether it does
func (f *freightHolidayCalendar) observedHoliday(at time.Time) (string, bool) {
	_, observed, holiday := f.calendar.IsHoliday(at)
	if !observed || holiday == nil {
		return "", false
	}
	return holiday.Name, true
}
