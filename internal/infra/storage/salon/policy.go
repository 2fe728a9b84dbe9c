package salon

import (
	"context"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// Getter источник салонов (postgres или memory)
type Getter interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

// PolicyRepository включает завершение неподтверждённых записей для всех
// салонов, если это разрешено конфигурацией
type PolicyRepository struct {
	next                       Getter
	allowUnconfirmedCompletion bool
}

// WithCompletionPolicy оборачивает источник салонов
func WithCompletionPolicy(next Getter, allowUnconfirmedCompletion bool) *PolicyRepository {
	return &PolicyRepository{next: next, allowUnconfirmedCompletion: allowUnconfirmedCompletion}
}

// GetByID получает салон и применяет глобальную политику
func (r *PolicyRepository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	s, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.allowUnconfirmedCompletion && !s.AllowUnconfirmedCompletion {
		cp := *s
		cp.AllowUnconfirmedCompletion = true
		return &cp, nil
	}
	return s, nil
}
