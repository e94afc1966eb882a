// Package tripstore records computed trip plans so dispatchers can review
// recent planning activity.
package tripstore

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/OpenFreightTools/haulcast/foundation/database"
)

//TripPlan is one archived planning result. Result holds the full TripResult
//JSON exactly as it was returned to the client.
type TripPlan struct {
	Id               int64          `db:"id" json:"id"`
	Name             string         `db:"name" json:"name"`
	OriginLabel      string         `db:"origin_label" json:"origin_label"`
	DropoffLabel     string         `db:"dropoff_label" json:"dropoff_label"`
	TotalMiles       int            `db:"total_miles" json:"total_miles"`
	TotalDays        int            `db:"total_days" json:"total_days"`
	CycleHoursActual float64        `db:"cycle_hours_actual" json:"cycle_hours_actual"`
	Result           types.JSONText `db:"result" json:"result"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
}

// RecordTripPlan saves a TripPlan into the database
func RecordTripPlan(plan *TripPlan, db *sqlx.DB) error {

	plan.CreatedAt = time.Now()

	statementString := "insert into trip_plan " +
		"(name, " +
		"origin_label, " +
		"dropoff_label, " +
		"total_miles, " +
		"total_days, " +
		"cycle_hours_actual, " +
		"result, " +
		"created_at) " +
		"values " +
		"(:name, " +
		":origin_label, " +
		":dropoff_label, " +
		":total_miles, " +
		":total_days, " +
		":cycle_hours_actual, " +
		":result, " +
		":created_at)"
	statementString = db.Rebind(statementString)
	_, err := db.NamedExec(statementString, plan)
	return err
}

// ListTripPlans retrieves the most recently archived trip plans, newest first
func ListTripPlans(db *sqlx.DB, limit int) ([]TripPlan, error) {

	statementString := "select id, name, origin_label, dropoff_label, " +
		"total_miles, total_days, cycle_hours_actual, result, created_at " +
		"from trip_plan " +
		"order by created_at desc " +
		"limit :limit"

	rows, err := database.NamedQueryFromMap(statementString, db, map[string]interface{}{
		"limit": limit,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	plans := make([]TripPlan, 0)
	for rows.Next() {
		var plan TripPlan
		if err := rows.StructScan(&plan); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// GetTripPlan retrieves one archived trip plan by id, or nil when absent
func GetTripPlan(db *sqlx.DB, id int64) (*TripPlan, error) {

	statementString := "select id, name, origin_label, dropoff_label, " +
		"total_miles, total_days, cycle_hours_actual, result, created_at " +
		"from trip_plan " +
		"where id = :id"

	rows, err := database.NamedQueryFromMap(statementString, db, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var plan TripPlan
	if err := rows.StructScan(&plan); err != nil {
		return nil, err
	}
	return &plan, nil
}
