// accmld - accelerator control mediation daemon
//
// This is the main entry point for the accml control layer. It mediates
// between the lattice view physicists work in and the device view the
// hardware speaks:
//   - Identifier mediation (liaison manager, yellow pages)
//   - Unit conversion (translator service, calibration curves)
//   - Command rewriting between the two spaces
//   - Simulated or live machine backends behind one interface
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/openaccel/accml-core/internal/api"
	"github.com/openaccel/accml-core/internal/backend"
	"github.com/openaccel/accml-core/internal/backend/delta"
	"github.com/openaccel/accml-core/internal/bridges/mqttdev"
	"github.com/openaccel/accml-core/internal/infrastructure/config"
	"github.com/openaccel/accml-core/internal/infrastructure/database"
	"github.com/openaccel/accml-core/internal/infrastructure/influxdb"
	"github.com/openaccel/accml-core/internal/infrastructure/logging"
	"github.com/openaccel/accml-core/internal/infrastructure/mqtt"
	"github.com/openaccel/accml-core/internal/inventory"
	"github.com/openaccel/accml-core/internal/model"
	"github.com/openaccel/accml-core/internal/rewriter"
	"github.com/openaccel/accml-core/internal/sim"
	"github.com/openaccel/accml-core/internal/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// Nominal tune response per unit strength deviation for a
// tune-correction quadrupole in the toy ring. A real deployment feeds a
// measured response matrix instead.
var defaultTuneResponse = model.Tune{X: 0.01, Y: -0.005}

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting accml core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Load the equipment catalogue
	repo, dbClose, err := openInventory(ctx, cfg, log)
	if err != nil {
		return err
	}
	if dbClose != nil {
		defer dbClose()
	}

	magnets, err := repo.Magnets(ctx)
	if err != nil {
		return fmt.Errorf("loading magnets: %w", err)
	}
	pcs, err := repo.PowerConverters(ctx)
	if err != nil {
		return fmt.Errorf("loading power converters: %w", err)
	}
	log.Info("inventory loaded", "magnets", len(magnets), "power_converters", len(pcs))

	catalogue, err := inventory.Build(magnets, pcs, inventory.Params{
		Brho:               cfg.Machine.Brho,
		FloquetToFrequency: cfg.Machine.FloquetToFrequency,
	})
	if err != nil {
		return fmt.Errorf("building catalogue: %w", err)
	}
	catalogue.Liaison.SetLogger(log)
	catalogue.Translator.SetLogger(log)
	log.Info("catalogue built",
		"conversions", catalogue.Translator.Len(),
		"families", len(catalogue.YellowPages.Families()),
	)

	rw := rewriter.New(catalogue.Liaison, catalogue.Translator)

	// Connect to MQTT broker (required for the live backend)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Build the machine backend
	deviceBackend, machine, err := buildBackend(cfg, catalogue, rw, mqttClient, log)
	if err != nil {
		return err
	}

	// Delta-state proxy: serves delta_ properties against the cached
	// baseline readings. The cache is handed to the API so operators can
	// force a re-baseline without restarting the daemon.
	deltaCache := delta.NewCache(cfg.Backend.Name)
	deltaProxy := delta.NewReadWriteProxy(deviceBackend, deltaCache, nil)

	// Telemetry decorator: records every operation when InfluxDB is up
	var writer telemetry.Writer
	if influxClient != nil {
		writer = influxClient
	}
	finalBackend := telemetry.Wrap(deltaProxy, writer)

	// Start the HTTP API
	server, err := api.New(api.Deps{
		Config:      cfg.API,
		Logger:      log,
		Backend:     finalBackend,
		Rewriter:    rw,
		YellowPages: catalogue.YellowPages,
		Machine:     machine,
		DeltaCache:  deltaCache,
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	// Verify all connections are healthy
	if err := healthCheck(ctx, mqttClient, influxClient, server); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal",
		"backend", finalBackend.NaturalViewName(),
		"api", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
	)

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("accml core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses ACCML_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("ACCML_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// openInventory returns the configured catalogue repository and, for the
// sqlite source, a close function for the underlying database.
func openInventory(ctx context.Context, cfg *config.Config, log *logging.Logger) (inventory.Repository, func(), error) {
	switch cfg.Inventory.Source {
	case "sqlite":
		db, err := database.Open(database.Config{
			Path:        cfg.Database.Path,
			WALMode:     cfg.Database.WALMode,
			BusyTimeout: cfg.Database.BusyTimeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("initialising schema: %w", err)
		}
		log.Info("database connected", "path", cfg.Database.Path)

		repo := inventory.NewSQLiteRepository(db.DB)
		if cfg.Inventory.SeedFromFiles {
			if err := seedCatalogue(ctx, cfg, repo, log); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}

		closeFn := func() {
			log.Info("closing database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		}
		return repo, closeFn, nil

	case "file":
		log.Info("loading inventory from files",
			"magnets", cfg.Inventory.MagnetsPath,
			"power_converters", cfg.Inventory.PowerConvertersPath,
		)
		return inventory.NewFileRepository(cfg.Inventory.MagnetsPath, cfg.Inventory.PowerConvertersPath), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown inventory source %q", cfg.Inventory.Source)
	}
}

// seedCatalogue replaces the stored catalogue with the records from the
// configured inventory files.
func seedCatalogue(ctx context.Context, cfg *config.Config, repo *inventory.SQLiteRepository, log *logging.Logger) error {
	files := inventory.NewFileRepository(cfg.Inventory.MagnetsPath, cfg.Inventory.PowerConvertersPath)

	magnets, err := files.Magnets(ctx)
	if err != nil {
		return fmt.Errorf("loading seed magnets: %w", err)
	}
	pcs, err := files.PowerConverters(ctx)
	if err != nil {
		return fmt.Errorf("loading seed power converters: %w", err)
	}

	if err := repo.Import(ctx, magnets, pcs); err != nil {
		return fmt.Errorf("seeding catalogue: %w", err)
	}
	log.Info("catalogue seeded from files",
		"magnets", len(magnets),
		"power_converters", len(pcs),
	)
	return nil
}

// buildBackend assembles the device-space machine backend for the
// configured mode. The sim backend additionally serves as the machine's
// tune source.
func buildBackend(cfg *config.Config, catalogue *inventory.Catalogue, rw *rewriter.Rewriter, mqttClient *mqtt.Client, log *logging.Logger) (backend.ReadWriter, api.TuneSource, error) {
	switch cfg.Backend.Mode {
	case "sim":
		ring := sim.NewRing(model.Tune{
			X: cfg.Machine.DesignTune.X,
			Y: cfg.Machine.DesignTune.Y,
		})
		for _, m := range catalogue.Magnets {
			if m.Type != inventory.MagnetTypeQuadrupole {
				continue
			}
			elem := sim.RingElement{Name: m.DevID}
			if m.InFamily(inventory.FamilyMemberTuneCorrection) {
				elem.TuneResponse = defaultTuneResponse
			}
			ring.AddElement(elem)
		}

		simBackend := sim.NewBackend(ring, cfg.Backend.Name)
		simBackend.SetLogger(log)
		log.Info("simulated machine ready",
			"name", cfg.Backend.Name,
			"design_tune_x", cfg.Machine.DesignTune.X,
			"design_tune_y", cfg.Machine.DesignTune.Y,
		)

		// The simulator speaks the lattice space; the facade exposes it
		// in the device space like every other backend.
		return rewriter.NewDeviceFacade(simBackend, rw), simBackend, nil

	case "live":
		if mqttClient == nil {
			return nil, nil, fmt.Errorf("live backend requires mqtt.enabled")
		}
		live, err := mqttdev.New(mqttClient, byte(cfg.MQTT.QoS))
		if err != nil {
			return nil, nil, fmt.Errorf("creating live backend: %w", err)
		}
		live.SetLogger(log)
		log.Info("live machine backend ready", "qos", cfg.MQTT.QoS)
		return live, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend mode %q", cfg.Backend.Mode)
	}
}

// healthCheck verifies all infrastructure connections are healthy.
func healthCheck(ctx context.Context, mqttClient *mqtt.Client, influxClient *influxdb.Client, server *api.Server) error {
	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	return nil
}
