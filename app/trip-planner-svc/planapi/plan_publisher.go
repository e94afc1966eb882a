package planapi

import (
	"encoding/json"
	logger "log"

	"github.com/jmoiron/sqlx"
	"github.com/nats-io/nats.go"

	"github.com/OpenFreightTools/haulcast/business/data/tripstore"
	"github.com/OpenFreightTools/haulcast/business/hos"
)

//planPublisher takes computed trip plans and sends them to their
//destinations (such as database and nats)
type planPublisher struct {
	log              *logger.Logger
	db               *sqlx.DB
	natsConnection   *nats.Conn
	subject          string
	recordToDatabase bool
	publishOverNats  bool
}

//makePlanPublisher creates planPublisher
func makePlanPublisher(log *logger.Logger,
	db *sqlx.DB,
	natsConnection *nats.Conn,
	subject string,
	recordToDatabase bool,
	publishOverNats bool) *planPublisher {
	return &planPublisher{
		log:              log,
		db:               db,
		natsConnection:   natsConnection,
		subject:          subject,
		recordToDatabase: recordToDatabase,
		publishOverNats:  publishOverNats,
	}
}

//publish sends hos.TripResult over NATS and records it to the trip archive
//according to publishOverNats and recordToDatabase. Failures are logged and
//never fail the planning request.
func (p *planPublisher) publish(result *hos.TripResult) {
	if p.publishOverNats {
		p.sendOverNats(result)
	}
	if p.recordToDatabase {
		p.record(result)
	}
}

func (p *planPublisher) sendOverNats(result *hos.TripResult) {
	jsonData, err := json.Marshal(result)
	if err != nil {
		p.log.Printf("failed to marshal TripResult in planPublisher.sendOverNats, error:%v", err)
		return
	}
	err = p.natsConnection.Publish(p.subject, jsonData)
	if err != nil {
		p.log.Printf("failed to send TripResult in planPublisher.sendOverNats, error:%v", err)
	}
}

func (p *planPublisher) record(result *hos.TripResult) {
	jsonData, err := json.Marshal(result)
	if err != nil {
		p.log.Printf("failed to marshal TripResult in planPublisher.record, error:%v", err)
		return
	}
	plan := tripstore.TripPlan{
		Name:             result.Name,
		OriginLabel:      result.Origin.Label,
		DropoffLabel:     result.Dropoff.Label,
		TotalMiles:       result.TotalMiles,
		TotalDays:        result.TotalDays,
		CycleHoursActual: result.CycleHoursActual,
		Result:           jsonData,
	}
	if err := tripstore.RecordTripPlan(&plan, p.db); err != nil {
		p.log.Printf("Error saving trip plan %+v. error: %v", plan.Name, err)
	}
}
