package notification

import "errors"

var (
	// ErrEncode не удалось сериализовать событие
	ErrEncode = errors.New("notification: failed to encode event")

	// ErrPublish не удалось опубликовать событие
	ErrPublish = errors.New("notification: failed to publish event")

	// ErrBufferFull очередь событий переполнена, событие отброшено
	ErrBufferFull = errors.New("notification: event buffer is full")

	// ErrClosed диспетчер или соединение уже закрыты
	ErrClosed = errors.New("notification: closed")

	// ErrNotConnected нет открытого канала RabbitMQ (идёт переподключение)
	ErrNotConnected = errors.New("notification: not connected")
)
