package subscription

import "errors"

var (
	// ErrSubscriptionNotFound у салона нет подписки в сервисе подписок
	ErrSubscriptionNotFound = errors.New("subscription client: subscription not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("subscription client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("subscription client: invalid response")
)
