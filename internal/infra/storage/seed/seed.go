// Package seed загружает справочники (локации, столики, официанты) из TOML файла.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ErrInvalidSeed возвращается при некорректном содержимом файла
var ErrInvalidSeed = errors.New("seed: invalid seed data")

// File структура seed файла
type File struct {
	Locations []Location `toml:"locations"`
	Tables    []Table    `toml:"tables"`
	Waiters   []Waiter   `toml:"waiters"`
}

type Location struct {
	ID               string  `toml:"id"`
	Address          string  `toml:"address"`
	Description      string  `toml:"description"`
	TotalCapacity    int     `toml:"total_capacity"`
	AverageOccupancy float64 `toml:"average_occupancy"`
	ImageURL         string  `toml:"image_url"`
	Rating           float64 `toml:"rating"`
}

type Table struct {
	LocationID    string    `toml:"location_id"`
	TableNumber   string    `toml:"table_number"`
	GuestCapacity int       `toml:"guest_capacity"`
	Slots         []DaySlot `toml:"slots"`
}

type Waiter struct {
	Email      string    `toml:"email"`
	Name       string    `toml:"name"`
	LocationID string    `toml:"location_id"`
	Slots      []DaySlot `toml:"slots"`
}

// DaySlot свободные слоты на дату.
// Дата задается как "YYYY-MM-DD" или относительно текущего дня: "today", "today+3".
// all = true означает все слоты каталога, иначе свободны только перечисленные time_slots.
type DaySlot struct {
	Date      string   `toml:"date"`
	TimeSlots []string `toml:"time_slots"`
	All       bool     `toml:"all"`
}

// Load читает seed файл
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("seed: decode %s: %w", path, err)
	}
	return &f, nil
}

// LocationUpserter запись локаций
type LocationUpserter interface {
	Upsert(ctx context.Context, loc *domain.Location) error
}

// TableUpserter запись столиков
type TableUpserter interface {
	Upsert(ctx context.Context, t *domain.Table) error
}

// WaiterUpserter запись официантов
type WaiterUpserter interface {
	Upsert(ctx context.Context, w *domain.Waiter) error
}

// Target хранилища, в которые применяется seed
type Target struct {
	Locations LocationUpserter
	Tables    TableUpserter
	Waiters   WaiterUpserter
}

// Apply записывает содержимое файла в хранилища. Относительные даты считаются от now.
func Apply(ctx context.Context, f *File, target Target, now time.Time) error {
	for i := range f.Locations {
		l := f.Locations[i]
		if l.ID == "" {
			return fmt.Errorf("%w: location #%d has no id", ErrInvalidSeed, i)
		}
		if err := target.Locations.Upsert(ctx, &domain.Location{
			ID:               l.ID,
			Address:          l.Address,
			Description:      l.Description,
			TotalCapacity:    l.TotalCapacity,
			AverageOccupancy: l.AverageOccupancy,
			ImageURL:         l.ImageURL,
			Rating:           l.Rating,
		}); err != nil {
			return fmt.Errorf("seed: location %s: %w", l.ID, err)
		}
	}

	for _, t := range f.Tables {
		if t.LocationID == "" || t.TableNumber == "" || t.GuestCapacity <= 0 {
			return fmt.Errorf("%w: table %q at %q", ErrInvalidSeed, t.TableNumber, t.LocationID)
		}
		slots, err := toSlotSet(t.Slots, now)
		if err != nil {
			return fmt.Errorf("seed: table %s/%s: %w", t.LocationID, t.TableNumber, err)
		}
		if err := target.Tables.Upsert(ctx, &domain.Table{
			LocationID:    t.LocationID,
			TableNumber:   t.TableNumber,
			GuestCapacity: t.GuestCapacity,
			Slots:         slots,
		}); err != nil {
			return fmt.Errorf("seed: table %s/%s: %w", t.LocationID, t.TableNumber, err)
		}
	}

	for _, w := range f.Waiters {
		if w.Email == "" || w.LocationID == "" {
			return fmt.Errorf("%w: waiter %q", ErrInvalidSeed, w.Email)
		}
		slots, err := toSlotSet(w.Slots, now)
		if err != nil {
			return fmt.Errorf("seed: waiter %s: %w", w.Email, err)
		}
		if err := target.Waiters.Upsert(ctx, &domain.Waiter{
			Email:      w.Email,
			Name:       w.Name,
			LocationID: w.LocationID,
			Slots:      slots,
		}); err != nil {
			return fmt.Errorf("seed: waiter %s: %w", w.Email, err)
		}
	}
	return nil
}

func toSlotSet(days []DaySlot, now time.Time) (domain.SlotSet, error) {
	set := domain.NewSlotSet()
	for _, d := range days {
		date, err := resolveDate(d.Date, now)
		if err != nil {
			return domain.SlotSet{}, err
		}
		mask := domain.FullMask
		if !d.All {
			mask, err = domain.MaskFromLabels(d.TimeSlots)
			if err != nil {
				return domain.SlotSet{}, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
			}
		}
		set.SetDay(date, mask)
	}
	return set, nil
}

func resolveDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "today" {
		return domain.DateOnly(now), nil
	}
	if rest, ok := strings.CutPrefix(s, "today+"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("%w: bad relative date %q", ErrInvalidSeed, s)
		}
		return domain.DateOnly(now).AddDate(0, 0, n), nil
	}
	date, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", ErrInvalidSeed, s)
	}
	return date, nil
}
