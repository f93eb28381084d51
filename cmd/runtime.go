package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-FieldScheduler/internal/config"
	"github.com/m04kA/SMC-FieldScheduler/internal/infra/storage/snapshot"
	"github.com/m04kA/SMC-FieldScheduler/internal/integrations/notifier"
	"github.com/m04kA/SMC-FieldScheduler/internal/integrations/remotesync"
	remoteService "github.com/m04kA/SMC-FieldScheduler/internal/service/remote"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/state"
	"github.com/m04kA/SMC-FieldScheduler/pkg/logger"
	"github.com/m04kA/SMC-FieldScheduler/pkg/metrics"
)

// runtime общие зависимости всех команд
type runtime struct {
	cfg      *config.Config
	log      *logger.Logger
	metrics  *metrics.Metrics
	db       *sql.DB
	notifier interface{ Close() }
	state    *state.Service
}

// newRuntime загружает конфигурацию и поднимает хранилище снапшота.
// withNotifier подключает MQTT, если он включен в конфигурации.
func newRuntime(ctx context.Context, withNotifier bool) (*runtime, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	rt := &runtime{cfg: cfg, log: log}

	// Метрики регистрируются только при включенном экспорте
	if cfg.Metrics.Enabled {
		rt.metrics = metrics.New(cfg.Metrics.ServiceName)
	}

	backend, err := rt.openBackend(ctx)
	if err != nil {
		rt.Close()
		return nil, err
	}

	var failures snapshot.FailureCounter
	if rt.metrics != nil {
		failures = rt.metrics.PersistFailures.WithLabelValues(cfg.Storage.Backend)
	}
	repo := snapshot.NewCachedRepository(backend, log, failures)

	var pub state.Notifier = notifier.NopNotifier{}
	rt.notifier = notifier.NopNotifier{}
	if withNotifier && cfg.MQTT.Enabled {
		mqttNotifier, err := notifier.NewMQTTNotifier(notifier.Config{
			Broker:      cfg.MQTT.Broker,
			ClientID:    cfg.MQTT.ClientID,
			Username:    cfg.MQTT.Username,
			Password:    cfg.MQTT.Password,
			TopicPrefix: cfg.MQTT.TopicPrefix,
			QoS:         byte(cfg.MQTT.QoS),
		}, log)
		if err != nil {
			// уведомления не обязательны для работы сервиса
			log.Error("MQTT notifier disabled: %v", err)
		} else {
			pub = mqttNotifier
			rt.notifier = mqttNotifier
			log.Info("MQTT notifier connected (broker=%s)", cfg.MQTT.Broker)
		}
	}

	rt.state = state.NewService(repo, pub, rt.metrics, cfg.Scheduler.Actor, log)
	return rt, nil
}

func (rt *runtime) openBackend(ctx context.Context) (snapshot.Repository, error) {
	switch rt.cfg.Storage.Backend {
	case config.StoragePostgres:
		db, err := rt.openDatabase(ctx)
		if err != nil {
			return nil, err
		}
		rt.db = db
		if err := snapshot.Migrate(ctx, db, rt.log); err != nil {
			return nil, err
		}
		return snapshot.NewPostgresRepository(db, rt.log), nil

	default:
		rt.log.Info("Using file storage %s", rt.cfg.Storage.FilePath)
		return snapshot.NewFileRepository(rt.cfg.Storage.FilePath, rt.log), nil
	}
}

func (rt *runtime) openDatabase(ctx context.Context) (*sql.DB, error) {
	cfg := rt.cfg.Database

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	rt.log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)
	return db, nil
}

func (rt *runtime) remoteService() *remoteService.Service {
	client := remotesync.NewClient(time.Duration(rt.cfg.Sync.Timeout)*time.Second, rt.log)
	return remoteService.NewService(rt.state, client, rt.metrics, rt.cfg.Sync.Endpoint, rt.cfg.Sync.Token, rt.log)
}

// Close освобождает соединения в обратном порядке
func (rt *runtime) Close() {
	if rt.notifier != nil {
		rt.notifier.Close()
	}
	if rt.db != nil {
		if err := rt.db.Close(); err != nil {
			rt.log.Error("Failed to close database: %v", err)
		}
	}
	if err := rt.log.Close(); err != nil {
		fmt.Printf("Failed to close logger: %v\n", err)
	}
}
