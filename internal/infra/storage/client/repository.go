package client

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

// Repository чтение клиентов салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента салона по ID
func (r *Repository) GetByID(ctx context.Context, salonID, id int64) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "name", "phone", "email", "created_at").
		From("clients").
		Where(squirrel.Eq{"id": id, "salon_id": salonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Client
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.SalonID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, pgerr.Wrap(ErrScanRow, "GetByID - scan client", err)
	}

	return &c, nil
}
