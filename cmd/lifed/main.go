// Command lifed runs a toroidal Life automaton headless. Progress is exposed
// through the HTTP API and websocket stream, milestones go to MQTT and
// per-generation metrics to InfluxDB when those are enabled in the config.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"toruslife/internal/app"
	"toruslife/internal/config"
	"toruslife/internal/influxdb"
	"toruslife/internal/logging"
	"toruslife/internal/mqtt"
	"toruslife/internal/notify"
	"toruslife/internal/server"
	"toruslife/pkg/life"
)

// Set at build time via -ldflags "-X main.version=...".
var version = "dev"

const asyncBuffer = 256

func main() {
	configPath := flag.String("config", os.Getenv("TORUSLIFE_CONFIG"), "path to YAML config")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log := logging.New(cfg.Logging, version)
	runID := uuid.NewString()
	log = log.With("run_id", runID)
	log.Info("starting lifed", "version", version, "rows", cfg.Grid.Rows, "cols", cfg.Grid.Cols, "pattern", cfg.Grid.Pattern)

	a, err := app.NewAutomaton(cfg)
	if err != nil {
		return fmt.Errorf("building automaton: %w", err)
	}
	a.SetLogger(log.With("component", "life"))

	observers := []life.Observer{notify.Log(log.With("component", "notify"))}

	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT, mqtt.Topics{Prefix: cfg.MQTT.TopicPrefix, RunID: runID})
		if err != nil {
			return fmt.Errorf("connecting mqtt: %w", err)
		}
		defer mqttClient.Close()
		mqttClient.SetLogger(log)

		pub := notify.NewAsync(notify.NewMQTT(mqttClient, mqttClient.Topics().Event, runID, byte(cfg.MQTT.QoS), false, log), asyncBuffer)
		defer pub.Close()
		observers = append(observers, pub)
	}

	var influx *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influx, err = influxdb.Connect(ctx, cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting influxdb: %w", err)
		}
		defer influx.Close()
		influx.SetOnError(func(err error) { log.Warn("influxdb write failed", "error", err) })

		metrics := notify.NewAsync(notify.NewMetrics(influx, runID), asyncBuffer)
		defer metrics.Close()
		observers = append(observers, metrics)
	}

	var srv *server.Server
	if cfg.Server.Enabled {
		srv = server.New(a, runID, log)
		if mqttClient != nil {
			srv.AddHealthCheck(mqttClient)
		}
		if influx != nil {
			srv.AddHealthCheck(influx)
		}
		observers = append(observers, srv.Hub())
	}

	a.SetObserver(life.Observers(observers...))

	ctl, err := a.Start(ctx, cfg.Controller.Automatic, false)
	if err != nil {
		return fmt.Errorf("starting controller: %w", err)
	}
	// Observers are closed by the deferred calls above, so every return
	// below must come after the controller has halted.
	defer func() { <-ctl.Done() }()

	if mqttClient != nil {
		topic := mqttClient.Topics().Command()
		if err := mqttClient.Subscribe(topic, byte(cfg.MQTT.QoS), commandHandler(a, log)); err != nil {
			log.Warn("command topic unavailable", "topic", topic, "error", err)
		}
	}

	if srv == nil {
		cause := ctl.Wait()
		log.Info("lifed finished", "cause", cause.String(), "generation", a.Generation())
		return nil
	}

	// With the API up the process keeps serving the final grid after a halt.
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.ListenAndServe(ctx, cfg.ServerAddr()) }()

	select {
	case <-ctl.Done():
		log.Info("controller halted, still serving", "cause", ctl.Cause().String(), "generation", a.Generation())
		if err := <-serveErr; err != nil {
			return err
		}
	case err := <-serveErr:
		if err != nil {
			a.ForceStop()
			return err
		}
	}
	return nil
}

// Command payloads accepted on the MQTT command topic.
const (
	cmdStep    = "step"
	cmdAutoOn  = "auto:on"
	cmdAutoOff = "auto:off"
	cmdKill    = "kill"
)

var errUnknownCommand = errors.New("lifed: unknown command")

// commandHandler maps command payloads to controller actions.
func commandHandler(a *life.Automaton, log *logging.Logger) mqtt.MessageHandler {
	return func(_ string, payload []byte) error {
		cmd := string(payload)
		if cmd == cmdKill {
			a.ForceStop()
			return nil
		}
		c := a.Controller()
		if c == nil {
			return server.ErrNotStarted
		}
		switch cmd {
		case cmdStep:
			c.RequestStep()
		case cmdAutoOn:
			c.SetAutomatic(true)
		case cmdAutoOff:
			c.SetAutomatic(false)
		default:
			return fmt.Errorf("%w: %q", errUnknownCommand, cmd)
		}
		log.Debug("command applied", "command", cmd)
		return nil
	}
}
