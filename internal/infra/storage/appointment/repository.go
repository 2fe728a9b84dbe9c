package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/infra/storage/pgerr"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/dbmetrics"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"salon_id",
	"client_id",
	"staff_member_id",
	"service_id",
	"appointment_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"buffer_before_minutes",
	"buffer_after_minutes",
	"status",
	"notes",
	"rescheduled_from_id",
	"superseded_by_id",
	"cancelled_at",
	"version",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую запись. Пересечение с удерживающей записью того же
// мастера отклоняется ограничением исключения и возвращается как конфликт.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"salon_id",
			"client_id",
			"staff_member_id",
			"service_id",
			"appointment_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"buffer_before_minutes",
			"buffer_after_minutes",
			"status",
			"notes",
			"rescheduled_from_id",
			"version",
		).
		Values(
			a.SalonID,
			a.ClientID,
			a.StaffMemberID,
			a.ServiceID,
			a.Date,
			a.StartTime,
			a.EndTime,
			a.DurationMinutes,
			a.BufferBeforeMinutes,
			a.BufferAfterMinutes,
			a.Status,
			a.Notes,
			a.RescheduledFromID,
			1,
		).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, pgerr.Wrap(ErrExecQuery, "Create - execute insert", err)
	}

	return a, nil
}

// GetByID получает запись салона по ID
func (r *Repository) GetByID(ctx context.Context, salonID, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "salon_id": salonID})

	// В транзакции блокируем строку до смены статуса
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, pgerr.Wrap(ErrScanRow, "GetByID - scan appointment", err)
	}

	return a, nil
}

// ListHoldingByStaff удерживающие записи мастера с даты from по to включительно.
// Нулевой to означает без верхней границы. В транзакции строки блокируются.
func (r *Repository) ListHoldingByStaff(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"staff_member_id": staffID}).
		Where(squirrel.Eq{"status": statusStrings(domain.HoldingStatuses)}).
		Where(squirrel.GtOrEq{"appointment_date": domain.DateOnly(from)}).
		OrderBy("appointment_date ASC", "start_time ASC")

	if !to.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": domain.DateOnly(to)})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListHoldingByStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgerr.Wrap(ErrExecQuery, "ListHoldingByStaff - execute query", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListByFilter записи салона с фильтрацией по мастеру, периоду и статусам
func (r *Repository) ListByFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"salon_id": filter.SalonID}).
		OrderBy("appointment_date ASC", "start_time ASC", "id ASC")

	if filter.StaffMemberID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_member_id": *filter.StaffMemberID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": domain.DateOnly(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": domain.DateOnly(*filter.EndDate)})
	}
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgerr.Wrap(ErrExecQuery, "ListByFilter - execute query", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Update сохраняет изменяемые поля записи, если версия в БД равна expectedVersion.
// Ноль затронутых строк означает конкурентное изменение.
func (r *Repository) Update(ctx context.Context, a *domain.Appointment, expectedVersion int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", a.Status).
		Set("notes", a.Notes).
		Set("superseded_by_id", a.SupersededByID).
		Set("cancelled_at", a.CancelledAt).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID, "salon_id": a.SalonID, "version": expectedVersion}).
		Suffix("RETURNING version, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.Version, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id=%d expected version=%d", ErrVersionMismatch, a.ID, expectedVersion)
	}
	if err != nil {
		return nil, pgerr.Wrap(ErrExecQuery, "Update - execute update", err)
	}

	return a, nil
}

// CountBillableCreated число записей салона, созданных в [from, to),
// без отменённых и перенесённых
func (r *Repository) CountBillableCreated(ctx context.Context, salonID int64, from, to time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Eq{"status": statusStrings(domain.BillableStatuses)}).
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": to}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountBillableCreated - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, pgerr.Wrap(ErrScanRow, "CountBillableCreated - scan count", err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.SalonID,
		&a.ClientID,
		&a.StaffMemberID,
		&a.ServiceID,
		&a.Date,
		&a.StartTime,
		&a.EndTime,
		&a.DurationMinutes,
		&a.BufferBeforeMinutes,
		&a.BufferAfterMinutes,
		&a.Status,
		&a.Notes,
		&a.RescheduledFromID,
		&a.SupersededByID,
		&a.CancelledAt,
		&a.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Date = domain.DateOnly(a.Date)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(ErrScanRow, "scanAppointments - rows error", err)
	}

	return appointments, nil
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
