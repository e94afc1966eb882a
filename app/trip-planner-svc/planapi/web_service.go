// Package planapi implements the HTTP surface of the trip planning service.
package planapi

import (
	"context"
	"encoding/json"
	logger "log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/nats-io/nats.go"

	"github.com/OpenFreightTools/haulcast/business/data/tripstore"
	"github.com/OpenFreightTools/haulcast/business/hos"
)

//defaultListLimit caps how many archived plans the trips endpoint returns
const defaultListLimit = 20

//healthHandler responds to health check requests
type healthHandler struct {
	log *logger.Logger
}

//ServeHTTP implements healthHandler http.Handler interface
func (h *healthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writeJSON(h.log, w, http.StatusOK, map[string]string{"status": "ok"})
}

//planTripHandler holds data needed to respond to trip planning requests
type planTripHandler struct {
	log       *logger.Logger
	planner   *hos.Planner
	publisher *planPublisher
}

//planTripHandler factory
func makePlanTripHandler(log *logger.Logger,
	planner *hos.Planner,
	publisher *planPublisher) *planTripHandler {
	return &planTripHandler{
		log:       log,
		planner:   planner,
		publisher: publisher,
	}
}

//ServeHTTP implements planTripHandler's http.Handler interface
func (h *planTripHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req hos.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(h.log, w, http.StatusBadRequest, map[string]interface{}{
			"errors": map[string]string{"body": "invalid json: " + err.Error()},
		})
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		writeJSON(h.log, w, http.StatusBadRequest, map[string]interface{}{"errors": fieldErrors})
		return
	}

	result, err := h.planner.PlanTrip(req)
	if err != nil {
		h.log.Printf("failed to plan trip, error:%v", err)
		writeJSON(h.log, w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.publisher.publish(result)
	writeJSON(h.log, w, http.StatusOK, result)
}

//tripListHandler serves recently archived trip plans
type tripListHandler struct {
	log *logger.Logger
	db  *sqlx.DB
}

//ServeHTTP implements tripListHandler's http.Handler interface
func (h *tripListHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	if h.db == nil {
		writeJSON(h.log, w, http.StatusServiceUnavailable,
			map[string]string{"error": "trip archive is not enabled"})
		return
	}
	plans, err := tripstore.ListTripPlans(h.db, defaultListLimit)
	if err != nil {
		h.log.Printf("failed to list trip plans, error:%v", err)
		writeJSON(h.log, w, http.StatusInternalServerError, map[string]string{"error": "error listing trip plans"})
		return
	}
	writeJSON(h.log, w, http.StatusOK, map[string]interface{}{"trips": plans})
}

//tripGetHandler serves a single archived trip plan by id
type tripGetHandler struct {
	log *logger.Logger
	db  *sqlx.DB
}

//ServeHTTP implements tripGetHandler's http.Handler interface
func (h *tripGetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(h.log, w, http.StatusServiceUnavailable,
			map[string]string{"error": "trip archive is not enabled"})
		return
	}
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(h.log, w, http.StatusBadRequest, map[string]string{"error": "invalid trip plan id"})
		return
	}
	plan, err := tripstore.GetTripPlan(h.db, id)
	if err != nil {
		h.log.Printf("failed to retrieve trip plan %d, error:%v", id, err)
		writeJSON(h.log, w, http.StatusInternalServerError, map[string]string{"error": "error retrieving trip plan"})
		return
	}
	if plan == nil {
		writeJSON(h.log, w, http.StatusNotFound, map[string]string{"error": "trip plan not found"})
		return
	}
	writeJSON(h.log, w, http.StatusOK, plan)
}

//writeJSON marshals v to the response writer with the given status
func writeJSON(log *logger.Logger, w http.ResponseWriter, status int, v interface{}) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling response to json: error:%v\n", err)
		http.Error(w, "Error serving request", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(jsonData); err != nil {
		log.Printf("Error writing json response: %s", err)
	}
}

//createServer creates configured http.Server for the trip planning api
func createServer(log *logger.Logger,
	planner *hos.Planner,
	publisher *planPublisher,
	db *sqlx.DB,
	httpPort int) *http.Server {

	r := mux.NewRouter()
	r.Handle("/api/health", &healthHandler{log: log}).Methods(http.MethodGet)
	r.Handle("/api/plan-trip", makePlanTripHandler(log, planner, publisher)).Methods(http.MethodPost)
	r.Handle("/api/trips", &tripListHandler{log: log, db: db}).Methods(http.MethodGet)
	r.Handle("/api/trips/{id}", &tripGetHandler{log: log, db: db}).Methods(http.MethodGet)
	srv := &http.Server{
		Addr: strings.Join([]string{"0.0.0.0", strconv.Itoa(httpPort)}, ":"),
		// Good practice to set timeouts to avoid Slowloris attacks.
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      r,
	}
	return srv
}

//RunService brings up the trip planning web service and terminates on shutdown signal
func RunService(log *logger.Logger,
	planner *hos.Planner,
	db *sqlx.DB,
	natsConnection *nats.Conn,
	natsSubject string,
	recordToDatabase bool,
	publishOverNats bool,
	httpPort int,
	shutdownSignal chan os.Signal) {

	wg := sync.WaitGroup{}
	publisher := makePlanPublisher(log, db, natsConnection, natsSubject, recordToDatabase, publishOverNats)

	webServiceShutdown := make(chan bool, 1)
	go runWebService(log, &wg, planner, publisher, db, httpPort, webServiceShutdown)

	select {
	case <-shutdownSignal:
		log.Printf("Exiting on shutdown signal, shutting down web service")
		webServiceShutdown <- true
		wg.Wait()
		log.Printf("Web service shut down, exiting trip planner")
	}
}

//runWebService starts up the trip planning web service, and terminates on shutdown signal
func runWebService(log *logger.Logger,
	wg *sync.WaitGroup,
	planner *hos.Planner,
	publisher *planPublisher,
	db *sqlx.DB,
	httpPort int,
	shutdownSignal chan bool,
) {
	wg.Add(1)
	defer wg.Done()
	srv := createServer(log, planner, publisher, db, httpPort)
	log.Printf("Starting server on port %d", httpPort)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Printf("server ListenAndServe ended. %s", err)
		}
	}()
	shutdownCtx, serverCancelFunc := context.WithTimeout(context.Background(), time.Duration(5)*time.Second)
	defer serverCancelFunc()

	select {
	case <-shutdownSignal:
		log.Printf("ending webservice on shutdown signal")
		err := srv.Shutdown(shutdownCtx)
		if err != nil {
			log.Printf("error shutting down webservice, error:%s", err)
		}
	}
}
