package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/infra/storage/pgerr"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/dbmetrics"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/psqlbuilder"
)

const table = "services"

// Repository репозиторий услуг салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет услугу
func (r *Repository) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"salon_id",
			"name",
			"duration_minutes",
			"buffer_before_minutes",
			"buffer_after_minutes",
			"min_advance_days",
			"max_advance_days",
			"online_booking_enabled",
			"is_active",
		).
		Values(
			s.SalonID,
			s.Name,
			s.DurationMinutes,
			s.BufferBeforeMinutes,
			s.BufferAfterMinutes,
			s.MinAdvanceDays,
			s.MaxAdvanceDays,
			s.OnlineBookingEnabled,
			s.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, pgerr.Wrap(ErrExecQuery, "Create - execute insert", err)
	}

	return s, nil
}

// GetByID получает услугу салона по ID
func (r *Repository) GetByID(ctx context.Context, salonID, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"name",
		"duration_minutes",
		"buffer_before_minutes",
		"buffer_after_minutes",
		"min_advance_days",
		"max_advance_days",
		"online_booking_enabled",
		"is_active",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"id": id, "salon_id": salonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.SalonID,
		&s.Name,
		&s.DurationMinutes,
		&s.BufferBeforeMinutes,
		&s.BufferAfterMinutes,
		&s.MinAdvanceDays,
		&s.MaxAdvanceDays,
		&s.OnlineBookingEnabled,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, pgerr.Wrap(ErrScanRow, "GetByID - scan service", err)
	}

	return &s, nil
}

// Update сохраняет изменяемые поля услуги. Уже созданные записи хранят
// свою длительность и буферы и не затрагиваются.
func (r *Repository) Update(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", s.Name).
		Set("duration_minutes", s.DurationMinutes).
		Set("buffer_before_minutes", s.BufferBeforeMinutes).
		Set("buffer_after_minutes", s.BufferAfterMinutes).
		Set("min_advance_days", s.MinAdvanceDays).
		Set("max_advance_days", s.MaxAdvanceDays).
		Set("online_booking_enabled", s.OnlineBookingEnabled).
		Set("is_active", s.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID, "salon_id": s.SalonID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, pgerr.Wrap(ErrExecQuery, "Update - execute update", err)
	}

	return s, nil
}

// CountActive число активных услуг салона
func (r *Repository) CountActive(ctx context.Context, salonID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"salon_id": salonID, "is_active": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, pgerr.Wrap(ErrScanRow, "CountActive - scan count", err)
	}

	return count, nil
}
