// Package memory хранилище в памяти процесса. Реализует те же репозитории,
// что и PostgreSQL, и менеджер транзакций со снимками: транзакция держит
// общий мьютекс от проверки до записи и откатывает изменения при ошибке.
// Подходит только для развёртывания в одном процессе и для тестов.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// TimeProvider источник времени для created_at/updated_at
type TimeProvider interface {
	Now() time.Time
}

type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }

type tables struct {
	salons       map[int64]*domain.Salon
	clients      map[int64]*domain.Client
	staff        map[int64]*domain.StaffMember
	services     map[int64]*domain.Service
	appointments map[int64]*domain.Appointment
	seq          map[string]int64
}

// Store данные всех репозиториев. Сущности хранятся копиями и заменяются
// целиком при записи, поэтому снимок копирует только карты.
type Store struct {
	mu    sync.Mutex
	data  tables
	clock TimeProvider
}

// NewStore создает пустое хранилище; clock может быть nil
func NewStore(clock TimeProvider) *Store {
	if clock == nil {
		clock = realTime{}
	}
	return &Store{
		data: tables{
			salons:       make(map[int64]*domain.Salon),
			clients:      make(map[int64]*domain.Client),
			staff:        make(map[int64]*domain.StaffMember),
			services:     make(map[int64]*domain.Service),
			appointments: make(map[int64]*domain.Appointment),
			seq:          make(map[string]int64),
		},
		clock: clock,
	}
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// lock захватывает мьютекс, если вызов не внутри транзакции
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) nextID(table string) int64 {
	s.data.seq[table]++
	return s.data.seq[table]
}

func (s *Store) snapshot() tables {
	return tables{
		salons:       maps.Clone(s.data.salons),
		clients:      maps.Clone(s.data.clients),
		staff:        maps.Clone(s.data.staff),
		services:     maps.Clone(s.data.services),
		appointments: maps.Clone(s.data.appointments),
		seq:          maps.Clone(s.data.seq),
	}
}

// PutSalon сохраняет салон (создание салонов вне ядра планирования)
func (s *Store) PutSalon(salon *domain.Salon) *domain.Salon {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *salon
	if c.ID == 0 {
		c.ID = s.nextID("salons")
	} else if c.ID > s.data.seq["salons"] {
		s.data.seq["salons"] = c.ID
	}
	now := s.clock.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	s.data.salons[c.ID] = &c

	out := c
	return &out
}

// PutClient сохраняет клиента (карточки клиентов ведёт другой сервис)
func (s *Store) PutClient(client *domain.Client) *domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := cloneClient(client)
	if c.ID == 0 {
		c.ID = s.nextID("clients")
	} else if c.ID > s.data.seq["clients"] {
		s.data.seq["clients"] = c.ID
	}
	c.CreatedAt = s.clock.Now()
	s.data.clients[c.ID] = c
	return cloneClient(c)
}

// TxManager менеджер транзакций хранилища
type TxManager struct {
	store *Store
}

// NewTxManager создает менеджер транзакций
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Do выполняет fn атомарно
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable выполняет fn атомарно; транзакции полностью упорядочены мьютексом
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет fn под мьютексом
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTx(ctx) {
		return fn(ctx)
	}

	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.data = snap
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.data = snap
		return err
	}
	return nil
}

func cloneClient(c *domain.Client) *domain.Client {
	out := *c
	if c.Phone != nil {
		phone := *c.Phone
		out.Phone = &phone
	}
	if c.Email != nil {
		email := *c.Email
		out.Email = &email
	}
	return &out
}

func cloneStaff(s *domain.StaffMember) *domain.StaffMember {
	out := *s
	for _, day := range []*domain.DaySchedule{
		&out.Schedule.Monday,
		&out.Schedule.Tuesday,
		&out.Schedule.Wednesday,
		&out.Schedule.Thursday,
		&out.Schedule.Friday,
		&out.Schedule.Saturday,
		&out.Schedule.Sunday,
	} {
		day.Breaks = slices.Clone(day.Breaks)
	}
	return &out
}

func cloneAppointment(a *domain.Appointment) *domain.Appointment {
	out := *a
	out.Notes = clonePtr(a.Notes)
	out.RescheduledFromID = clonePtr(a.RescheduledFromID)
	out.SupersededByID = clonePtr(a.SupersededByID)
	out.CancelledAt = clonePtr(a.CancelledAt)
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
