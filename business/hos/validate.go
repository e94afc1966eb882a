package hos

import "fmt"

const maxLabelLength = 200

//Validate checks the request constraints and returns a per-field error map,
//empty when the request is valid. Validation failures never reach the
//scheduler.
func (r *PlanRequest) Validate() map[string]string {
	fieldErrors := make(map[string]string)
	validateLocation(fieldErrors, "current_location", r.CurrentLocation)
	validateLocation(fieldErrors, "pickup_location", r.PickupLocation)
	validateLocation(fieldErrors, "dropoff_location", r.DropoffLocation)
	if r.CycleHoursUsed < 0 || r.CycleHoursUsed > int(MaxCycleHours) {
		fieldErrors["cycle_hours_used"] = fmt.Sprintf("must be between 0 and %d", int(MaxCycleHours))
	}
	return fieldErrors
}

func validateLocation(fieldErrors map[string]string, field string, loc Location) {
	if loc.Label == "" {
		fieldErrors[field+".label"] = "is required"
	} else if len(loc.Label) > maxLabelLength {
		fieldErrors[field+".label"] = fmt.Sprintf("must be at most %d characters", maxLabelLength)
	}
	if loc.Lat < -90 || loc.Lat > 90 {
		fieldErrors[field+".lat"] = "must be between -90 and 90"
	}
	if loc.Lng < -180 || loc.Lng > 180 {
		fieldErrors[field+".lng"] = "must be between -180 and 180"
	}
}
