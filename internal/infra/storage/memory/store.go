// Package memory хранит справочники и бронирования в памяти процесса.
// Используется драйвером storage.driver = "memory" и как фейк в тестах.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	locationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/location"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	tableRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/table"
	waiterRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/waiter"
)

// LocationRepository локации в памяти
type LocationRepository struct {
	mu        sync.RWMutex
	locations map[string]domain.Location
}

// NewLocationRepository создает пустой репозиторий локаций
func NewLocationRepository() *LocationRepository {
	return &LocationRepository{locations: make(map[string]domain.Location)}
}

// GetByID получает локацию по ID
func (r *LocationRepository) GetByID(_ context.Context, id string) (*domain.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loc, ok := r.locations[id]
	if !ok {
		return nil, locationRepo.ErrLocationNotFound
	}
	return &loc, nil
}

// Upsert создает или заменяет локацию
func (r *LocationRepository) Upsert(_ context.Context, loc *domain.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.locations[loc.ID] = *loc
	return nil
}

// TableRepository столики в памяти с версионированием слотов
type TableRepository struct {
	mu     sync.RWMutex
	tables map[string]domain.Table
}

// NewTableRepository создает пустой репозиторий столиков
func NewTableRepository() *TableRepository {
	return &TableRepository{tables: make(map[string]domain.Table)}
}

func tableID(locationID, tableNumber string) string {
	return locationID + "\x00" + tableNumber
}

func copyTable(t domain.Table) *domain.Table {
	t.Slots = t.Slots.Clone()
	return &t
}

// Get получает столик по локации и номеру
func (r *TableRepository) Get(_ context.Context, locationID, tableNumber string) (*domain.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tables[tableID(locationID, tableNumber)]
	if !ok {
		return nil, tableRepo.ErrTableNotFound
	}
	return copyTable(t), nil
}

// ListByLocation получает столики локации по номеру
func (r *TableRepository) ListByLocation(_ context.Context, locationID string) ([]*domain.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Table, 0)
	for _, t := range r.tables {
		if t.LocationID == locationID {
			out = append(out, copyTable(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TableNumber < out[j].TableNumber })
	return out, nil
}

// Upsert создает или заменяет столик
func (r *TableRepository) Upsert(_ context.Context, t *domain.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := tableID(t.LocationID, t.TableNumber)
	stored := *copyTable(*t)
	stored.Version = r.tables[id].Version + 1
	r.tables[id] = stored
	return nil
}

// UpdateSlots записывает слоты при совпадении версии
func (r *TableRepository) UpdateSlots(_ context.Context, locationID, tableNumber string, slots domain.SlotSet, expectedVersion int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := tableID(locationID, tableNumber)
	t, ok := r.tables[id]
	if !ok {
		return 0, tableRepo.ErrTableNotFound
	}
	if t.Version != expectedVersion {
		return 0, tableRepo.ErrVersionConflict
	}
	t.Slots = slots.Clone()
	t.Version++
	r.tables[id] = t
	return t.Version, nil
}

// WaiterRepository официанты в памяти
type WaiterRepository struct {
	mu      sync.RWMutex
	waiters map[string]domain.Waiter
}

// NewWaiterRepository создает пустой репозиторий официантов
func NewWaiterRepository() *WaiterRepository {
	return &WaiterRepository{waiters: make(map[string]domain.Waiter)}
}

func copyWaiter(w domain.Waiter) *domain.Waiter {
	w.Slots = w.Slots.Clone()
	return &w
}

// GetByEmail получает официанта по email
func (r *WaiterRepository) GetByEmail(_ context.Context, email string) (*domain.Waiter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.waiters[email]
	if !ok {
		return nil, waiterRepo.ErrWaiterNotFound
	}
	return copyWaiter(w), nil
}

// ListByLocation получает официантов локации по email
func (r *WaiterRepository) ListByLocation(_ context.Context, locationID string) ([]*domain.Waiter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Waiter, 0)
	for _, w := range r.waiters {
		if w.LocationID == locationID {
			out = append(out, copyWaiter(w))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// Upsert создает или заменяет официанта
func (r *WaiterRepository) Upsert(_ context.Context, w *domain.Waiter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *copyWaiter(*w)
	stored.Version = r.waiters[w.Email].Version + 1
	r.waiters[w.Email] = stored
	return nil
}

// UpdateSlots записывает слоты при совпадении версии
func (r *WaiterRepository) UpdateSlots(_ context.Context, email string, slots domain.SlotSet, expectedVersion int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.waiters[email]
	if !ok {
		return 0, waiterRepo.ErrWaiterNotFound
	}
	if w.Version != expectedVersion {
		return 0, waiterRepo.ErrVersionConflict
	}
	w.Slots = slots.Clone()
	w.Version++
	r.waiters[email] = w
	return w.Version, nil
}

// ReservationRepository бронирования в памяти
type ReservationRepository struct {
	mu           sync.RWMutex
	reservations map[string]domain.Reservation
	now          func() time.Time
}

// NewReservationRepository создает пустой репозиторий бронирований
func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{
		reservations: make(map[string]domain.Reservation),
		now:          time.Now,
	}
}

// Create сохраняет новое бронирование
func (r *ReservationRepository) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	res.CreatedAt = now
	res.UpdatedAt = now
	res.Version = 1
	r.reservations[res.ID] = *res
	return res, nil
}

// GetByID получает бронирование по ID
func (r *ReservationRepository) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return &res, nil
}

// Update перезаписывает изменяемые поля при совпадении версии
func (r *ReservationRepository) Update(_ context.Context, res *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.current(res.ID, res.Version)
	if err != nil {
		return err
	}
	stored.TimeFrom = res.TimeFrom
	stored.TimeTo = res.TimeTo
	stored.GuestsNumber = res.GuestsNumber
	stored.WaiterEmail = res.WaiterEmail
	stored.Status = res.Status
	stored.PreOrder = res.PreOrder
	stored.Version++
	stored.UpdatedAt = r.now()
	r.reservations[res.ID] = stored
	res.Version = stored.Version
	res.UpdatedAt = stored.UpdatedAt
	return nil
}

// UpdateStatus обновляет статус при совпадении версии
func (r *ReservationRepository) UpdateStatus(_ context.Context, id string, status domain.ReservationStatus, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.current(id, expectedVersion)
	if err != nil {
		return err
	}
	stored.Status = status
	stored.Version++
	stored.UpdatedAt = r.now()
	r.reservations[id] = stored
	return nil
}

// Delete удаляет бронирование при совпадении версии
func (r *ReservationRepository) Delete(_ context.Context, id string, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.current(id, expectedVersion); err != nil {
		return err
	}
	delete(r.reservations, id)
	return nil
}

// current возвращает запись, если ее версия равна ожидаемой. Вызывается под r.mu.
func (r *ReservationRepository) current(id string, expectedVersion int64) (domain.Reservation, error) {
	stored, ok := r.reservations[id]
	if !ok {
		return domain.Reservation{}, reservationRepo.ErrReservationNotFound
	}
	if stored.Version != expectedVersion {
		return domain.Reservation{}, reservationRepo.ErrVersionConflict
	}
	return stored, nil
}

// ListByUser бронирования клиента, новые сначала
func (r *ReservationRepository) ListByUser(_ context.Context, userID string) ([]*domain.Reservation, error) {
	out := r.filter(func(res *domain.Reservation) bool { return res.UserID == userID })
	sort.Slice(out, func(i, j int) bool { return later(out[i], out[j]) })
	return out, nil
}

// ListByWaiter бронирования официанта с фильтрами
func (r *ReservationRepository) ListByWaiter(_ context.Context, f domain.ReservationFilter) ([]*domain.Reservation, error) {
	out := r.filter(func(res *domain.Reservation) bool {
		if res.WaiterEmail != f.WaiterEmail {
			return false
		}
		if f.LocationID != "" && res.LocationID != f.LocationID {
			return false
		}
		if f.Date != nil && !domain.SameDay(res.Date, *f.Date) {
			return false
		}
		if !f.TimeFrom.IsZero() && f.TimeFrom != domain.AnyTime && res.TimeFrom != f.TimeFrom {
			return false
		}
		if f.TableNumber != "" && f.TableNumber != domain.AnyTable && res.TableNumber != f.TableNumber {
			return false
		}
		return len(f.Statuses) == 0 || hasStatus(f.Statuses, res.Status)
	})
	sort.Slice(out, func(i, j int) bool { return earlier(out[i], out[j]) })
	return out, nil
}

// ListByStatuses бронирования в указанных статусах
func (r *ReservationRepository) ListByStatuses(_ context.Context, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	out := r.filter(func(res *domain.Reservation) bool { return hasStatus(statuses, res.Status) })
	sort.Slice(out, func(i, j int) bool { return earlier(out[i], out[j]) })
	return out, nil
}

func (r *ReservationRepository) filter(keep func(*domain.Reservation) bool) []*domain.Reservation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Reservation, 0)
	for _, res := range r.reservations {
		res := res
		if keep(&res) {
			out = append(out, &res)
		}
	}
	return out
}

func hasStatus(statuses []domain.ReservationStatus, s domain.ReservationStatus) bool {
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

func earlier(a, b *domain.Reservation) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if a.TimeFrom != b.TimeFrom {
		return a.TimeFrom.IsBefore(b.TimeFrom)
	}
	if a.TableNumber != b.TableNumber {
		return a.TableNumber < b.TableNumber
	}
	return a.ID < b.ID
}

func later(a, b *domain.Reservation) bool {
	if a.ID == b.ID {
		return false
	}
	return !earlier(a, b)
}
