package location

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий локаций ресторана (только чтение справочника)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория локаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает локацию по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"address",
		"description",
		"total_capacity",
		"average_occupancy",
		"image_url",
		"rating",
	).
		From("locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var loc domain.Location
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&loc.ID,
		&loc.Address,
		&loc.Description,
		&loc.TotalCapacity,
		&loc.AverageOccupancy,
		&loc.ImageURL,
		&loc.Rating,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan location: %v", ErrScanRow, err)
	}
	return &loc, nil
}

// Upsert создает или заменяет локацию
func (r *Repository) Upsert(ctx context.Context, loc *domain.Location) error {
	query, args, err := psqlbuilder.Insert("locations").
		Columns("id", "address", "description", "total_capacity", "average_occupancy", "image_url", "rating").
		Values(loc.ID, loc.Address, loc.Description, loc.TotalCapacity, loc.AverageOccupancy, loc.ImageURL, loc.Rating).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			address = EXCLUDED.address,
			description = EXCLUDED.description,
			total_capacity = EXCLUDED.total_capacity,
			average_occupancy = EXCLUDED.average_occupancy,
			image_url = EXCLUDED.image_url,
			rating = EXCLUDED.rating`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}
