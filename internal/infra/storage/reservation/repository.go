package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const tableName = "reservations"

var columns = []string{
	"id",
	"user_id",
	"location_id",
	"table_number",
	"date",
	"time_from",
	"time_to",
	"guests_number",
	"status",
	"waiter_email",
	"customer_name",
	"pre_order",
	"feedback_id",
	"version",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование. ID генерирует вызывающий код.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"user_id",
			"location_id",
			"table_number",
			"date",
			"time_from",
			"time_to",
			"guests_number",
			"status",
			"waiter_email",
			"customer_name",
			"pre_order",
			"feedback_id",
		).
		Values(
			res.ID,
			res.UserID,
			res.LocationID,
			res.TableNumber,
			domain.DateKey(res.Date),
			res.TimeFrom,
			res.TimeTo,
			res.GuestsNumber,
			res.Status,
			res.WaiterEmail,
			res.CustomerName,
			res.PreOrder,
			res.FeedbackID,
		).
		Suffix("RETURNING version, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&res.Version, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time
	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}
	return res, nil
}

// Update перезаписывает изменяемые поля бронирования (время, гости, официант, статус).
// Запись проходит только при совпадении res.Version, после нее версия увеличивается.
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	query, args, err := psqlbuilder.Update(tableName).
		Set("time_from", res.TimeFrom).
		Set("time_to", res.TimeTo).
		Set("guests_number", res.GuestsNumber).
		Set("waiter_email", res.WaiterEmail).
		Set("status", res.Status).
		Set("pre_order", res.PreOrder).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID, "version": res.Version}).
		Suffix("RETURNING version, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var (
		version   int64
		updatedAt sql.NullTime
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&version, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r.missOrConflict(ctx, "Update", res.ID)
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}
	res.Version = version
	res.UpdatedAt = updatedAt.Time
	return nil
}

// UpdateStatus обновляет только статус, если версия не изменилась с момента чтения
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus, expectedVersion int64) error {
	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "version": expectedVersion}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return r.missOrConflict(ctx, "UpdateStatus", id)
	}
	return nil
}

// Delete удаляет бронирование (используется для бронирований посетителей без аккаунта)
func (r *Repository) Delete(ctx context.Context, id string, expectedVersion int64) error {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id, "version": expectedVersion}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return r.missOrConflict(ctx, "Delete", id)
	}
	return nil
}

// missOrConflict различает отсутствующую запись и устаревшую версию
func (r *Repository) missOrConflict(ctx context.Context, method, id string) error {
	query, args, err := psqlbuilder.Select("1").
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build exists query: %v", ErrBuildQuery, method, err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReservationNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %s - check existence: %v", ErrExecQuery, method, err)
	}
	return ErrVersionConflict
}

// ListByUser получает все бронирования клиента, новые сначала
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC", "time_from DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}
	return r.query(ctx, "ListByUser", query, args)
}

// ListByWaiter получает бронирования официанта с фильтрами.
// Пустые поля фильтра, AnyTime и AnyTable не ограничивают выборку.
func (r *Repository) ListByWaiter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"waiter_email": filter.WaiterEmail})

	if filter.LocationID != "" {
		builder = builder.Where(squirrel.Eq{"location_id": filter.LocationID})
	}
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"date": domain.DateKey(*filter.Date)})
	}
	if !filter.TimeFrom.IsZero() && filter.TimeFrom != domain.AnyTime {
		builder = builder.Where(squirrel.Eq{"time_from": filter.TimeFrom})
	}
	if filter.TableNumber != "" && filter.TableNumber != domain.AnyTable {
		builder = builder.Where(squirrel.Eq{"table_number": filter.TableNumber})
	}
	if len(filter.Statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}

	query, args, err := builder.OrderBy("date ASC", "time_from ASC", "table_number ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByWaiter - build select query: %v", ErrBuildQuery, err)
	}
	return r.query(ctx, "ListByWaiter", query, args)
}

// ListByStatuses получает бронирования в указанных статусах
func (r *Repository) ListByStatuses(ctx context.Context, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"status": statusStrings(statuses)}).
		OrderBy("date ASC", "time_from ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatuses - build select query: %v", ErrBuildQuery, err)
	}
	return r.query(ctx, "ListByStatuses", query, args)
}

func (r *Repository) query(ctx context.Context, method, query string, args []interface{}) ([]*domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, method, err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrScanRow, method, err)
	}
	return reservations, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res                  domain.Reservation
		createdAt, updatedAt sql.NullTime
	)
	if err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.LocationID,
		&res.TableNumber,
		&res.Date,
		&res.TimeFrom,
		&res.TimeTo,
		&res.GuestsNumber,
		&res.Status,
		&res.WaiterEmail,
		&res.CustomerName,
		&res.PreOrder,
		&res.FeedbackID,
		&res.Version,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	res.Date = domain.DateOnly(res.Date)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time
	return &res, nil
}
