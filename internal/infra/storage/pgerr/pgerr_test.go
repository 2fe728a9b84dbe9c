package pgerr

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/txmanager"
)

var errBase = errors.New("repo: failed to execute query")

func TestWrap(t *testing.T) {
	err := Wrap(errBase, "Create", &pq.Error{Code: CodeSerializationFailure})
	assert.ErrorIs(t, err, domain.ErrStaleWrite)
	assert.ErrorIs(t, err, txmanager.ErrSerialization)
	assert.NotErrorIs(t, err, errBase)

	err = Wrap(errBase, "Create", &pq.Error{Code: CodeExclusionViolation})
	assert.ErrorIs(t, err, domain.ErrConflict)

	var ce *domain.ConflictError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, domain.ConflictOverlapsAppointment, ce.Reason)

	err = Wrap(errBase, "Create", errors.New("connection refused"))
	assert.ErrorIs(t, err, errBase)
	assert.Equal(t, "", Code(err))
}
