package cli

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	locationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/location"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/memory"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/seed"
	tableRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/table"
	waiterRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/waiter"
	"github.com/m04kA/SMC-ReservationService/internal/service/assignment"
	"github.com/m04kA/SMC-ReservationService/internal/service/availability"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	cancelReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/cancel_reservation"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	getAvailableTablesUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_tables"
	modifyReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/modify_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/keylock"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

type locationStore interface {
	GetByID(ctx context.Context, id string) (*domain.Location, error)
	Upsert(ctx context.Context, loc *domain.Location) error
}

type tableStore interface {
	Get(ctx context.Context, locationID, tableNumber string) (*domain.Table, error)
	ListByLocation(ctx context.Context, locationID string) ([]*domain.Table, error)
	Upsert(ctx context.Context, t *domain.Table) error
	UpdateSlots(ctx context.Context, locationID, tableNumber string, slots domain.SlotSet, expectedVersion int64) (int64, error)
}

type waiterStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Waiter, error)
	ListByLocation(ctx context.Context, locationID string) ([]*domain.Waiter, error)
	Upsert(ctx context.Context, w *domain.Waiter) error
	UpdateSlots(ctx context.Context, email string, slots domain.SlotSet, expectedVersion int64) (int64, error)
}

type reservationStore interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) error
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus, expectedVersion int64) error
	Delete(ctx context.Context, id string, expectedVersion int64) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error)
	ListByWaiter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	ListByStatuses(ctx context.Context, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
}

// zonedClock текущее время в часовом поясе ресторана
type zonedClock struct {
	loc *time.Location
}

func (c zonedClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// app собранные зависимости одного процесса
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics
	clock   zonedClock

	db          *sql.DB
	redis       *redis.Client
	stopMetrics chan struct{}

	locations    locationStore
	tables       tableStore
	waiters      waiterStore
	reservations reservationStore

	availability *availability.Store
	assignment   *assignment.Service
	reservation  *reservations.Service

	createReservation  *createReservationUC.UseCase
	cancelReservation  *cancelReservationUC.UseCase
	modifyReservation  *modifyReservationUC.UseCase
	getAvailableTables *getAvailableTablesUC.UseCase
}

// newApp подключает хранилища и собирает сервисы и use cases
func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	a := &app{
		cfg:         cfg,
		log:         log,
		clock:       zonedClock{loc: loc},
		stopMetrics: make(chan struct{}),
	}
	if cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	if err := a.openStorage(ctx); err != nil {
		a.Close()
		return nil, err
	}
	locker, err := a.newLocker(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	policy := cfg.Booking.Policy()

	a.availability = availability.NewStore(a.tables, a.waiters, locker, policy.HorizonDays, log,
		availability.WithMetrics(a.metrics),
		availability.WithTimeProvider(a.clock),
		availability.WithMaxRetries(cfg.Locks.MaxRetries),
	)
	a.assignment = assignment.NewService(a.waiters, log)

	a.reservation = reservations.NewService(a.reservations, a.locations, a.waiters, a.metrics, policy, log)
	a.reservation.SetTimeProvider(a.clock)

	a.createReservation = createReservationUC.NewUseCase(
		a.reservations,
		a.locations,
		a.tables,
		a.waiters,
		a.availability,
		a.assignment,
		locker,
		a.metrics,
		policy,
		log,
	)
	a.createReservation.SetTimeProvider(a.clock)

	a.cancelReservation = cancelReservationUC.NewUseCase(a.reservations, a.availability, a.metrics, policy, log)
	a.cancelReservation.SetTimeProvider(a.clock)

	a.modifyReservation = modifyReservationUC.NewUseCase(
		a.reservations,
		a.tables,
		a.availability,
		a.assignment,
		locker,
		a.metrics,
		policy,
		log,
	)
	a.modifyReservation.SetTimeProvider(a.clock)

	a.getAvailableTables = getAvailableTablesUC.NewUseCase(a.locations, a.tables, a.availability, policy, log)
	a.getAvailableTables.SetTimeProvider(a.clock)

	return a, nil
}

func (a *app) openStorage(ctx context.Context) error {
	switch a.cfg.Storage.Driver {
	case config.StorageDriverMemory:
		a.locations = memory.NewLocationRepository()
		a.tables = memory.NewTableRepository()
		a.waiters = memory.NewWaiterRepository()
		a.reservations = memory.NewReservationRepository()
		a.log.Info("Using in-memory storage")

		if a.cfg.Storage.SeedFile != "" {
			if err := a.applySeed(ctx, a.cfg.Storage.SeedFile); err != nil {
				return err
			}
		}
		return nil

	default:
		executor, err := a.openPostgres(ctx)
		if err != nil {
			return err
		}
		a.locations = locationRepo.NewRepository(executor)
		a.tables = tableRepo.NewRepository(executor)
		a.waiters = waiterRepo.NewRepository(executor)
		a.reservations = reservationRepo.NewRepository(executor)
		return nil
	}
}

func (a *app) openPostgres(ctx context.Context) (dbmetrics.DBExecutor, error) {
	dbCfg := a.cfg.Database

	db, err := sql.Open("postgres", dbCfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(dbCfg.MaxOpenConns)
	db.SetMaxIdleConns(dbCfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(dbCfg.ConnMaxLifetime) * time.Second)
	a.db = db

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	a.log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", dbCfg.Host, dbCfg.Port, dbCfg.DBName)

	if a.metrics == nil {
		return db, nil
	}
	a.log.Info("Database metrics collection started")
	return dbmetrics.WrapWithDefault(db, a.metrics, dbCfg.DBName, a.stopMetrics), nil
}

func (a *app) newLocker(ctx context.Context) (keylock.Locker, error) {
	var locker keylock.Locker
	switch a.cfg.Locks.Driver {
	case config.LockDriverRedis:
		a.redis = redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis %s: %w", a.cfg.Redis.Addr, err)
		}
		locker = keylock.NewRedisLocker(a.redis, "reservations:lock:", a.cfg.Locks.TTL(), a.log)
		a.log.Info("Using redis locks (addr=%s, ttl=%s)", a.cfg.Redis.Addr, a.cfg.Locks.TTL())
	default:
		locker = keylock.NewLocalLocker()
		a.log.Info("Using in-process locks")
	}

	if a.metrics != nil {
		locker = keylock.NewObserved(locker, a.metrics)
	}
	return locker, nil
}

// applySeed загружает справочники из файла в текущие хранилища
func (a *app) applySeed(ctx context.Context, path string) error {
	f, err := seed.Load(path)
	if err != nil {
		return err
	}
	target := seed.Target{Locations: a.locations, Tables: a.tables, Waiters: a.waiters}
	if err := seed.Apply(ctx, f, target, a.clock.Now()); err != nil {
		return err
	}
	a.log.Info("Seed applied from %s: locations=%d, tables=%d, waiters=%d",
		path, len(f.Locations), len(f.Tables), len(f.Waiters))
	return nil
}

// Close освобождает соединения
func (a *app) Close() {
	if a.stopMetrics != nil {
		close(a.stopMetrics)
		a.stopMetrics = nil
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("Failed to close redis client: %v", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn("Failed to close database: %v", err)
		}
	}
}
