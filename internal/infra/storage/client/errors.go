package client

import (
	"errors"
	"fmt"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = fmt.Errorf("%w: client.repository: client", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("client.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = fmt.Errorf("%w: client.repository: failed to scan row", domain.ErrUnavailable)
)
