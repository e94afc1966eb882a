package main

import (
	"fmt"
	logger "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardanlabs/conf"
	"github.com/jmoiron/sqlx"
	"github.com/nats-io/nats.go"

	"github.com/OpenFreightTools/haulcast/app/trip-planner-svc/planapi"
	"github.com/OpenFreightTools/haulcast/business/hos"
	"github.com/OpenFreightTools/haulcast/foundation/database"
)

var build = "develop"

func main() {
	log := logger.New(os.Stdout, "TRIP_PLANNER : ", logger.LstdFlags|logger.Lmicroseconds|logger.Lshortfile)
	if err := run(log); err != nil {
		log.Printf("main: error: %v", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	var cfg struct {
		conf.Version
		Web struct {
			Port int `conf:"default:8080"`
		}
		DB struct {
			Enable     bool   `conf:"default:false"`
			User       string `conf:"default:postgres"`
			Password   string `conf:"default:postgres,noprint"`
			Host       string `conf:"default:0.0.0.0"`
			Name       string `conf:"default:postgres"`
			DisableTLS bool   `conf:"default:true"`
		}
		NATS struct {
			Enable  bool   `conf:"default:false"`
			URL     string `conf:"default:nats://127.0.0.1:4222"`
			Subject string `conf:"default:trip-planned"`
		}
		Route struct {
			Estimator  string `conf:"default:haversine"`
			ServiceURL string `conf:"default:http://localhost:5000"`
		}
	}
	cfg.Version.SVN = build
	cfg.Version.Desc = "HOS compliant trip planning service"
	const prefix = "TRIP_PLANNER"
	if err := conf.Parse(os.Args[1:], prefix, &cfg); err != nil {
		switch err {
		case conf.ErrHelpWanted:
			usage, err := conf.Usage(prefix, &cfg)
			if err != nil {
				return fmt.Errorf("generating config usage: %w", err)
			}
			fmt.Println(usage)
			return nil
		case conf.ErrVersionWanted:
			version, err := conf.VersionString(prefix, &cfg)
			if err != nil {
				return fmt.Errorf("generating config version: %w", err)
			}
			fmt.Println(version)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Printf("main : Started : Application initializing : version %s", build)
	defer log.Println("main: Completed")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Printf("main: Config :\n%v\n", out)

	// =========================================================================
	// Start Database (optional trip archive)

	var db *sqlx.DB
	if cfg.DB.Enable {
		log.Println("main: Initializing database support")

		db, err = database.Open(database.Config{
			User:       cfg.DB.User,
			Password:   cfg.DB.Password,
			Host:       cfg.DB.Host,
			Name:       cfg.DB.Name,
			DisableTLS: cfg.DB.DisableTLS,
		})
		if err != nil {
			return fmt.Errorf("connecting to db: %w", err)
		}
		defer func() {
			log.Printf("main: Database Stopping : %s", cfg.DB.Host)
			err = db.Close()
			if err != nil {
				log.Printf("main: error closing database: %v", err)
			}
		}()
	}

	// =========================================================================
	// Start NATS (optional planned-trip publishing)

	var natsConnection *nats.Conn
	if cfg.NATS.Enable {
		log.Printf("main: Connecting to NATS at %s", cfg.NATS.URL)
		natsConnection, err = nats.Connect(cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("connecting to nats: %w", err)
		}
		defer func() {
			log.Println("main: NATS connection closing")
			natsConnection.Close()
		}()
	}

	// =========================================================================
	// Build route estimator and planner

	var estimator hos.RouteEstimator
	switch cfg.Route.Estimator {
	case "haversine":
		estimator = hos.HaversineEstimator{}
	case "remote":
		log.Printf("main: Using remote routing service at %s", cfg.Route.ServiceURL)
		estimator = hos.NewRemoteEstimator(cfg.Route.ServiceURL)
	default:
		return fmt.Errorf("unknown route estimator %q", cfg.Route.Estimator)
	}
	planner := hos.NewPlanner(estimator)

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	planapi.RunService(log, planner, db, natsConnection, cfg.NATS.Subject,
		cfg.DB.Enable, cfg.NATS.Enable, cfg.Web.Port, shutdown)
	return nil
}
