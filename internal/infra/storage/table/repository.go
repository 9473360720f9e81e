package table

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const tableName = "restaurant_tables"

var columns = []string{
	"location_id",
	"table_number",
	"guest_capacity",
	"available_slots",
	"version",
}

// Repository репозиторий столиков и их свободных слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория столиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает столик по локации и номеру
func (r *Repository) Get(ctx context.Context, locationID, tableNumber string) (*domain.Table, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"location_id": locationID, "table_number": tableNumber}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	t, err := scanTable(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan table: %v", ErrScanRow, err)
	}
	return t, nil
}

// ListByLocation получает все столики локации, упорядоченные по номеру
func (r *Repository) ListByLocation(ctx context.Context, locationID string) ([]*domain.Table, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"location_id": locationID}).
		OrderBy("table_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tables := make([]*domain.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByLocation - scan table: %v", ErrScanRow, err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - iterate rows: %v", ErrScanRow, err)
	}
	return tables, nil
}

// Upsert создает или полностью заменяет столик (используется при загрузке справочников)
func (r *Repository) Upsert(ctx context.Context, t *domain.Table) error {
	query, args, err := psqlbuilder.Insert(tableName).
		Columns("location_id", "table_number", "guest_capacity", "available_slots").
		Values(t.LocationID, t.TableNumber, t.GuestCapacity, t.Slots).
		Suffix(`ON CONFLICT (location_id, table_number) DO UPDATE SET
			guest_capacity = EXCLUDED.guest_capacity,
			available_slots = EXCLUDED.available_slots,
			version = restaurant_tables.version + 1`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// UpdateSlots записывает слоты, если версия не изменилась с момента чтения.
// Возвращает новую версию.
func (r *Repository) UpdateSlots(ctx context.Context, locationID, tableNumber string, slots domain.SlotSet, expectedVersion int64) (int64, error) {
	query, args, err := psqlbuilder.Update(tableName).
		Set("available_slots", slots).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{
			"location_id":  locationID,
			"table_number": tableNumber,
			"version":      expectedVersion,
		}).
		Suffix("RETURNING version").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateSlots - build update query: %v", ErrBuildQuery, err)
	}

	var version int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		// Либо столика нет, либо версия уже другая
		if _, getErr := r.Get(ctx, locationID, tableNumber); errors.Is(getErr, ErrTableNotFound) {
			return 0, ErrTableNotFound
		}
		return 0, ErrVersionConflict
	}
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateSlots - execute update: %v", ErrExecQuery, err)
	}
	return version, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTable(row rowScanner) (*domain.Table, error) {
	var t domain.Table
	if err := row.Scan(
		&t.LocationID,
		&t.TableNumber,
		&t.GuestCapacity,
		&t.Slots,
		&t.Version,
	); err != nil {
		return nil, err
	}
	return &t, nil
}
