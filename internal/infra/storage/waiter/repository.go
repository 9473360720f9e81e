package waiter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const tableName = "waiters"

var columns = []string{
	"email",
	"name",
	"location_id",
	"available_slots",
	"version",
}

// Repository репозиторий официантов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория официантов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByEmail получает официанта по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Waiter, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	w, err := scanWaiter(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWaiterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - scan waiter: %v", ErrScanRow, err)
	}
	return w, nil
}

// ListByLocation получает официантов локации в стабильном порядке (по email)
func (r *Repository) ListByLocation(ctx context.Context, locationID string) ([]*domain.Waiter, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"location_id": locationID}).
		OrderBy("email ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	waiters := make([]*domain.Waiter, 0)
	for rows.Next() {
		w, err := scanWaiter(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByLocation - scan waiter: %v", ErrScanRow, err)
		}
		waiters = append(waiters, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - iterate rows: %v", ErrScanRow, err)
	}
	return waiters, nil
}

// Upsert создает или заменяет официанта
func (r *Repository) Upsert(ctx context.Context, w *domain.Waiter) error {
	query, args, err := psqlbuilder.Insert(tableName).
		Columns("email", "name", "location_id", "available_slots").
		Values(w.Email, w.Name, w.LocationID, w.Slots).
		Suffix(`ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			location_id = EXCLUDED.location_id,
			available_slots = EXCLUDED.available_slots,
			version = waiters.version + 1`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// UpdateSlots записывает слоты с проверкой версии. Возвращает новую версию.
func (r *Repository) UpdateSlots(ctx context.Context, email string, slots domain.SlotSet, expectedVersion int64) (int64, error) {
	query, args, err := psqlbuilder.Update(tableName).
		Set("available_slots", slots).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"email": email, "version": expectedVersion}).
		Suffix("RETURNING version").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateSlots - build update query: %v", ErrBuildQuery, err)
	}

	var version int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetByEmail(ctx, email); errors.Is(getErr, ErrWaiterNotFound) {
			return 0, ErrWaiterNotFound
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

func scanWaiter(row rowScanner) (*domain.Waiter, error) {
	var w domain.Waiter
	if err := row.Scan(
		&w.Email,
		&w.Name,
		&w.LocationID,
		&w.Slots,
		&w.Version,
	); err != nil {
		return nil, err
	}
	return &w, nil
}
