package salon

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

// Repository чтение салонов. Профиль и подписку салона изменяет другой
// сервис, поэтому здесь только чтение.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает салон по ID вместе с сохранёнными лимитами тарифа
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"timezone",
		"plan",
		"max_appointments_per_month",
		"max_staff",
		"max_services",
		"allow_unconfirmed_completion",
		"created_at",
		"updated_at",
	).
		From("salons").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Salon
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.Timezone,
		&s.Plan,
		&s.Limits.MaxAppointmentsPerMonth,
		&s.Limits.MaxStaff,
		&s.Limits.MaxServices,
		&s.AllowUnconfirmedCompletion,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, pgerr.Wrap(ErrScanRow, "GetByID - scan salon", err)
	}

	return &s, nil
}
