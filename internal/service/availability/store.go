package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	tableRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/table"
	waiterRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/waiter"
)

const defaultMaxRetries = 3

var errVersionConflict = errors.New("availability: version conflict")

// Store резервирует и освобождает слоты столиков и официантов.
//
// Каждое изменение: чтение, изменение и запись SlotSet одного владельца.
// Цикл выполняется под блокировкой ключа владельца, а запись проверяет версию;
// при конфликте версии цикл повторяется до maxRetries раз.
//
// Для столиков отсутствие даты в пределах горизонта бронирования означает,
// что свободны все слоты каталога. Для официантов отсутствие даты означает
// отсутствие смены.
type Store struct {
	tables       TableRepository
	waiters      WaiterRepository
	locker       Locker
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	horizonDays  int
	maxRetries   int
}

// Option настройка Store
type Option func(*Store)

// WithMetrics подключает счетчики конфликтов
func WithMetrics(m Metrics) Option {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTimeProvider подменяет часы (для тестов)
func WithTimeProvider(tp TimeProvider) Option {
	return func(s *Store) { s.timeProvider = tp }
}

// WithMaxRetries задает число повторов при конфликте версий
func WithMaxRetries(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// NewStore создает Store
func NewStore(
	tables TableRepository,
	waiters WaiterRepository,
	locker Locker,
	horizonDays int,
	logger Logger,
	opts ...Option,
) *Store {
	s := &Store{
		tables:       tables,
		waiters:      waiters,
		locker:       locker,
		metrics:      noopMetrics{},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		horizonDays:  horizonDays,
		maxRetries:   defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsFree проверяет, свободен ли слот у владельца на дату
func (s *Store) IsFree(ctx context.Context, owner domain.OwnerKey, date time.Time, label string) (bool, error) {
	idx, ok := domain.TimeSlotIndex(label)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrInvalidTimeSlot, label)
	}

	slots, _, err := s.load(ctx, owner)
	if err != nil {
		return false, err
	}
	mask, _ := s.effectiveDay(owner, slots, date)
	return mask.Has(idx), nil
}

// FreeSlots возвращает свободные слоты владельца на дату (явные или по умолчанию)
func (s *Store) FreeSlots(ctx context.Context, owner domain.OwnerKey, date time.Time) ([]domain.TimeSlot, error) {
	slots, _, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	mask, _ := s.effectiveDay(owner, slots, date)
	return mask.Slots(), nil
}

// TableFreeSlots то же, что FreeSlots, но для уже загруженного столика
func (s *Store) TableFreeSlots(table *domain.Table, date time.Time) []domain.TimeSlot {
	mask, _ := s.effectiveDay(table.Key(), table.Slots, date)
	return mask.Slots()
}

// DefaultAvailability все слоты каталога для дат в пределах горизонта
func (s *Store) DefaultAvailability(date, now time.Time) []domain.TimeSlot {
	if !domain.WithinHorizon(date, now, s.horizonDays) {
		return []domain.TimeSlot{}
	}
	return domain.AllTimeSlots()
}

// Reserve занимает слот. Слот должен быть свободен, доступность не придумывается:
// у официанта без смены на дату вернется ErrSlotNotOffered.
func (s *Store) Reserve(ctx context.Context, owner domain.OwnerKey, date time.Time, label string) error {
	idx, ok := domain.TimeSlotIndex(label)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTimeSlot, label)
	}

	return s.mutate(ctx, owner, func(slots *domain.SlotSet) (bool, error) {
		mask, recorded := s.effectiveDay(owner, *slots, date)
		if !recorded {
			if mask == 0 {
				return false, ErrSlotNotOffered
			}
			// Материализуем расписание столика по умолчанию
			slots.SetDay(date, mask)
		}
		if !slots.Take(date, idx) {
			return false, ErrSlotNotFree
		}
		return true, nil
	})
}

// Release возвращает слот. Идемпотентна; создает дату, если ее нет.
func (s *Store) Release(ctx context.Context, owner domain.OwnerKey, date time.Time, label string) error {
	idx, ok := domain.TimeSlotIndex(label)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTimeSlot, label)
	}

	return s.mutate(ctx, owner, func(slots *domain.SlotSet) (bool, error) {
		mask, recorded := s.effectiveDay(owner, *slots, date)
		if mask.Has(idx) {
			return false, nil
		}
		if !recorded && mask != 0 {
			slots.SetDay(date, mask)
		}
		slots.Put(date, idx)
		return true, nil
	})
}

// effectiveDay возвращает маску свободных слотов и признак явной записи даты
func (s *Store) effectiveDay(owner domain.OwnerKey, slots domain.SlotSet, date time.Time) (domain.SlotMask, bool) {
	if mask, ok := slots.Day(date); ok {
		return mask, true
	}
	if owner.Kind == domain.OwnerTable && domain.WithinHorizon(date, s.timeProvider.Now(), s.horizonDays) {
		return domain.FullMask, false
	}
	return 0, false
}

func (s *Store) mutate(ctx context.Context, owner domain.OwnerKey, change func(*domain.SlotSet) (bool, error)) error {
	unlock, err := s.locker.Lock(ctx, "slots:"+owner.String())
	if err != nil {
		return fmt.Errorf("%w: lock %s: %v", ErrInternal, owner, err)
	}
	defer unlock()

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		current, version, err := s.load(ctx, owner)
		if err != nil {
			return err
		}

		slots := current.Clone()
		changed, err := change(&slots)
		if err != nil || !changed {
			return err
		}

		err = s.save(ctx, owner, slots, version)
		if errors.Is(err, errVersionConflict) {
			s.metrics.IncSlotConflict(string(owner.Kind))
			s.logger.Warn("AvailabilityStore: version conflict on %s (attempt %d)", owner, attempt+1)
			continue
		}
		return err
	}

	s.logger.Error("AvailabilityStore: giving up on %s after %d conflicts", owner, s.maxRetries+1)
	return ErrTooManyConflicts
}

func (s *Store) load(ctx context.Context, owner domain.OwnerKey) (domain.SlotSet, int64, error) {
	switch owner.Kind {
	case domain.OwnerTable:
		t, err := s.tables.Get(ctx, owner.LocationID, owner.TableNumber)
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			return domain.SlotSet{}, 0, fmt.Errorf("%w: %s", ErrOwnerNotFound, owner)
		}
		if err != nil {
			return domain.SlotSet{}, 0, fmt.Errorf("%w: failed to load %s: %v", ErrInternal, owner, err)
		}
		return t.Slots, t.Version, nil

	case domain.OwnerWaiter:
		w, err := s.waiters.GetByEmail(ctx, owner.WaiterEmail)
		if errors.Is(err, waiterRepo.ErrWaiterNotFound) {
			return domain.SlotSet{}, 0, fmt.Errorf("%w: %s", ErrOwnerNotFound, owner)
		}
		if err != nil {
			return domain.SlotSet{}, 0, fmt.Errorf("%w: failed to load %s: %v", ErrInternal, owner, err)
		}
		return w.Slots, w.Version, nil
	}
	return domain.SlotSet{}, 0, fmt.Errorf("%w: unknown owner kind %q", ErrInternal, owner.Kind)
}

func (s *Store) save(ctx context.Context, owner domain.OwnerKey, slots domain.SlotSet, version int64) error {
	var err error
	switch owner.Kind {
	case domain.OwnerTable:
		_, err = s.tables.UpdateSlots(ctx, owner.LocationID, owner.TableNumber, slots, version)
		if errors.Is(err, tableRepo.ErrVersionConflict) {
			return errVersionConflict
		}
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			return fmt.Errorf("%w: %s", ErrOwnerNotFound, owner)
		}
	case domain.OwnerWaiter:
		_, err = s.waiters.UpdateSlots(ctx, owner.WaiterEmail, slots, version)
		if errors.Is(err, waiterRepo.ErrVersionConflict) {
			return errVersionConflict
		}
		if errors.Is(err, waiterRepo.ErrWaiterNotFound) {
			return fmt.Errorf("%w: %s", ErrOwnerNotFound, owner)
		}
	default:
		return fmt.Errorf("%w: unknown owner kind %q", ErrInternal, owner.Kind)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to save %s: %v", ErrInternal, owner, err)
	}
	return nil
}
