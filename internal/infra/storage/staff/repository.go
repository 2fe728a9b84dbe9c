package staff

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/infra/storage/pgerr"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/dbmetrics"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/psqlbuilder"
)

const table = "staff_members"

var columns = []string{"id", "salon_id", "name", "color", "is_active", "schedule", "created_at", "updated_at"}

// Repository репозиторий мастеров. Расписание хранится в колонке JSONB.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет мастера
func (r *Repository) Create(ctx context.Context, s *domain.StaffMember) (*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	schedule, err := json.Marshal(s.Schedule)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal schedule: %v", ErrSchedule, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("salon_id", "name", "color", "is_active", "schedule").
		Values(s.SalonID, s.Name, s.Color, s.IsActive, string(schedule)).
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

// GetByID получает мастера салона по ID
func (r *Repository) GetByID(ctx context.Context, salonID, id int64) (*domain.StaffMember, error) {
	return r.get(ctx, salonID, id, false)
}

// LockByID получает мастера с блокировкой строки (SELECT ... FOR UPDATE).
// Вне транзакции равносилен GetByID. Блокировка сериализует проверку
// конфликтов и вставку записей одного мастера.
func (r *Repository) LockByID(ctx context.Context, salonID, id int64) (*domain.StaffMember, error) {
	return r.get(ctx, salonID, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, salonID, id int64, forUpdate bool) (*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "salon_id": salonID})
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.StaffMember
	var schedule []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.SalonID,
		&s.Name,
		&s.Color,
		&s.IsActive,
		&schedule,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, pgerr.Wrap(ErrScanRow, "GetByID - scan staff member", err)
	}

	if err := json.Unmarshal(schedule, &s.Schedule); err != nil {
		return nil, fmt.Errorf("%w: GetByID - unmarshal schedule id=%d: %v", ErrSchedule, id, err)
	}

	return &s, nil
}

// Update сохраняет имя, цвет, активность и расписание
func (r *Repository) Update(ctx context.Context, s *domain.StaffMember) (*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	schedule, err := json.Marshal(s.Schedule)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - marshal schedule: %v", ErrSchedule, err)
	}

	query, args, err := psqlbuilder.Update(table).
		Set("name", s.Name).
		Set("color", s.Color).
		Set("is_active", s.IsActive).
		Set("schedule", string(schedule)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID, "salon_id": s.SalonID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, pgerr.Wrap(ErrExecQuery, "Update - execute update", err)
	}

	return s, nil
}

// Delete удаляет мастера. История записей остаётся: ссылки на удалённого
// мастера допустимы только у завершённых записей, это проверяет сервис.
func (r *Repository) Delete(ctx context.Context, salonID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id, "salon_id": salonID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return pgerr.Wrap(ErrExecQuery, "Delete - execute delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return pgerr.Wrap(ErrExecQuery, "Delete - get rows affected", err)
	}
	if rowsAffected == 0 {
		return ErrStaffNotFound
	}

	return nil
}

// CountActive число активных мастеров салона
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
