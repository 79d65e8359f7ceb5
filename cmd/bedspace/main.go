package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	capacityapp "bedspace/internal/app/handlers/capacity"
	occupancyapp "bedspace/internal/app/handlers/occupancy"
	premisesapp "bedspace/internal/app/handlers/premises"
	searchapp "bedspace/internal/app/handlers/search"
	"bedspace/internal/app/policies"
	"bedspace/internal/app/queries"
	"bedspace/internal/domain/occupancy"
	"bedspace/internal/domain/premises"
	"bedspace/internal/infra/broker/kafka"
	"bedspace/internal/infra/config"
	"bedspace/internal/infra/db/mongo"
	"bedspace/internal/infra/geo"
	ginserver "bedspace/internal/infra/http/gin"
	"bedspace/internal/infra/obs"
	"bedspace/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
		cfg.SnapshotMode = config.SnapshotModeMemory
		cfg.NationalConcurrency = 8
		cfg.ShutdownTimeout = 5 * time.Second
	}

	snapshots, store, ready, cleanup, err := buildSnapshotSource(ctx, cfg, logger)
	if err != nil {
		logger.Error("snapshot source init failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if store != nil {
		fixturesPath := cfg.FixturesPath
		if fixturesPath == "" {
			fixturesPath = defaultFixturesPath()
		}
		if err := loadFixtures(ctx, store, fixturesPath, logger); err != nil {
			logger.Warn("fixtures load failed", "error", err, "path", fixturesPath)
		}
	}

	if cfg.FeedEnabled() && store != nil {
		consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, nil, kafka.BookingFeedHandler{Store: store, Logger: logger})
		if err != nil {
			logger.Error("booking feed consumer init failed", "error", err)
			os.Exit(1)
		}
		go func() {
			defer consumer.Close()
			if err := consumer.Run(ctx, []string{cfg.BookingFeedTopic}); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("booking feed consumer stopped", "error", err)
			}
		}()
		logger.Info("booking feed consumer started", "topic", cfg.BookingFeedTopic, "group", cfg.KafkaGroupID)
	}

	bus := buildQueryBus(snapshots, cfg.NationalConcurrency)
	logger.Info("query bus ready", "queries", bus.Keys())
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: ready,
	}, ginserver.Handlers{
		Premises:  ginserver.PremisesHandler{Queries: bus},
		Search:    ginserver.SearchHandler{Queries: bus},
		Occupancy: ginserver.OccupancyHandler{Queries: bus},
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildSnapshotSource(ctx context.Context, cfg config.Config, logger *slog.Logger) (policies.SnapshotSource, *memory.SnapshotStore, func(context.Context) error, func(), error) {
	switch cfg.SnapshotMode {
	case config.SnapshotModeMongo:
		client, err := mongo.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		if err := client.Ping(ctx); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("ping mongo: %w", err)
		}
		logger.Info("snapshot source ready", "mode", cfg.SnapshotMode, "db", cfg.MongoDB)
		cleanup := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := client.Close(closeCtx); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
		}
		return mongo.NewSnapshotRepository(client.DB), nil, client.Ping, cleanup, nil
	default:
		store := memory.NewSnapshotStore()
		logger.Info("snapshot source ready", "mode", config.SnapshotModeMemory)
		return store, store, nil, func() {}, nil
	}
}

func buildQueryBus(snapshots policies.SnapshotSource, concurrency int) *queries.InMemoryBus {
	bus := queries.NewInMemoryBus()
	queries.RegisterHandler(bus, premisesapp.ListPremisesQuery{}.Key(), &premisesapp.ListPremisesHandler{Snapshots: snapshots})
	queries.RegisterHandler(bus, premisesapp.GetPremisesQuery{}.Key(), &premisesapp.GetPremisesHandler{Snapshots: snapshots})
	queries.RegisterHandler(bus, capacityapp.GetTimelineQuery{}.Key(), &capacityapp.GetTimelineHandler{Snapshots: snapshots})
	queries.RegisterHandler(bus, searchapp.SearchSpacesQuery{}.Key(), &searchapp.SearchSpacesHandler{Snapshots: snapshots, Distance: geo.Haversine{}})
	queries.RegisterHandler(bus, occupancyapp.NationalReportQuery{}.Key(), &occupancyapp.NationalReportHandler{Snapshots: snapshots, MaxConcurrent: concurrency})
	return bus
}

func defaultFixturesPath() string {
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "fixtures", "premises.json")
	}
	return filepath.Join("fixtures", "premises.json")
}

type bedFixture struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ActiveFrom string `json:"active_from"`
	ActiveTo   string `json:"active_to"`
}

type roomFixture struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Characteristics []string     `json:"characteristics"`
	Beds            []bedFixture `json:"beds"`
}

type addressFixture struct {
	Line1    string  `json:"line1"`
	Line2    string  `json:"line2"`
	Town     string  `json:"town"`
	Postcode string  `json:"postcode"`
	Region   string  `json:"region"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

type premisesFixture struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	ApType  string         `json:"ap_type"`
	Address addressFixture `json:"address"`
	Rooms   []roomFixture  `json:"rooms"`
}

type bookingFixture struct {
	ID        string `json:"id"`
	BedID     string `json:"bed_id"`
	Arrival   string `json:"arrival"`
	Departure string `json:"departure"`
	Cancelled bool   `json:"cancelled"`
}

type outOfServiceFixture struct {
	ID        string `json:"id"`
	BedID     string `json:"bed_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Reason    string `json:"reason"`
	Cancelled bool   `json:"cancelled"`
}

type snapshotFixture struct {
	Premises     []premisesFixture     `json:"premises"`
	Bookings     []bookingFixture      `json:"bookings"`
	OutOfService []outOfServiceFixture `json:"out_of_service"`
}

func loadFixtures(ctx context.Context, store *memory.SnapshotStore, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	var fixture snapshotFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	for _, fx := range fixture.Premises {
		p, err := buildPremisesFixture(fx)
		if err != nil {
			logger.Error("fixture invalid", "premises_id", fx.ID, "error", err)
			continue
		}
		if err := store.UpsertPremises(ctx, p); err != nil {
			logger.Error("cannot store fixture premises", "premises_id", fx.ID, "error", err)
			continue
		}
		logger.Info("premises fixture imported", "premises_id", p.ID, "rooms", len(p.Rooms))
	}
	for _, fx := range fixture.Bookings {
		arrival, errA := parseFixtureDate(fx.Arrival)
		departure, errD := parseFixtureDate(fx.Departure)
		if errA != nil || errD != nil {
			logger.Error("booking fixture invalid", "booking_id", fx.ID)
			continue
		}
		booking := occupancy.Booking{
			ID:            occupancy.BookingID(fx.ID),
			Bed:           premises.BedID(fx.BedID),
			ArrivalDate:   arrival,
			DepartureDate: departure,
			Cancelled:     fx.Cancelled,
		}
		if err := store.ApplyBooking(ctx, booking); err != nil {
			logger.Error("booking fixture rejected", "booking_id", fx.ID, "error", err)
		}
	}
	for _, fx := range fixture.OutOfService {
		start, err := parseFixtureDate(fx.Start)
		if err != nil {
			logger.Error("out-of-service fixture invalid", "period_id", fx.ID, "error", err)
			continue
		}
		var end time.Time
		if fx.End != "" {
			end, err = parseFixtureDate(fx.End)
			if err != nil {
				logger.Error("out-of-service fixture invalid", "period_id", fx.ID, "error", err)
				continue
			}
		}
		period := occupancy.OutOfServicePeriod{
			ID:        occupancy.OutOfServicePeriodID(fx.ID),
			Bed:       premises.BedID(fx.BedID),
			StartDate: start,
			EndDate:   end,
			Reason:    fx.Reason,
			Cancelled: fx.Cancelled,
		}
		if err := store.ApplyOutOfService(ctx, period); err != nil {
			logger.Error("out-of-service fixture rejected", "period_id", fx.ID, "error", err)
		}
	}
	return nil
}

func buildPremisesFixture(fx premisesFixture) (*premises.Premises, error) {
	rooms := make([]premises.Room, 0, len(fx.Rooms))
	for _, roomFx := range fx.Rooms {
		characteristics, err := premises.NormalizeCharacteristics(roomFx.Characteristics)
		if err != nil {
			return nil, err
		}
		beds := make([]premises.Bed, 0, len(roomFx.Beds))
		for _, bedFx := range roomFx.Beds {
			activeFrom, err := parseFixtureDate(bedFx.ActiveFrom)
			if err != nil {
				return nil, err
			}
			var activeTo time.Time
			if bedFx.ActiveTo != "" {
				activeTo, err = parseFixtureDate(bedFx.ActiveTo)
				if err != nil {
					return nil, err
				}
			}
			beds = append(beds, premises.Bed{
				ID:         premises.BedID(bedFx.ID),
				Name:       bedFx.Name,
				ActiveFrom: activeFrom,
				ActiveTo:   activeTo,
			})
		}
		rooms = append(rooms, premises.Room{
			ID:              premises.RoomID(roomFx.ID),
			Name:            roomFx.Name,
			Characteristics: characteristics,
			Beds:            beds,
		})
	}
	return premises.New(premises.CreateParams{
		ID:     premises.PremisesID(fx.ID),
		Name:   fx.Name,
		ApType: premises.ApType(fx.ApType),
		Address: premises.Address{
			Line1:    fx.Address.Line1,
			Line2:    fx.Address.Line2,
			Town:     fx.Address.Town,
			Postcode: fx.Address.Postcode,
			Region:   fx.Address.Region,
			Lat:      fx.Address.Lat,
			Lon:      fx.Address.Lon,
		},
		Rooms: rooms,
	})
}

func parseFixtureDate(raw string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse fixture date %q: %w", raw, err)
	}
	return t.UTC(), nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
