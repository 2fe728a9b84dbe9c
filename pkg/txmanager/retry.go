package txmanager

import "context"

// RetryPolicy повтор операции при конфликте конкурентной записи
type RetryPolicy struct {
	// Retries число повторов после первой попытки
	Retries int
	// Retryable решает, стоит ли повторять; по умолчанию IsSerializationFailure
	Retryable func(err error) bool
	// OnRetry вызывается перед каждым повтором
	OnRetry func(attempt int, err error)
}

// Run выполняет fn, повторяя её не более Retries раз. Повтор не выполняется,
// если контекст уже отменён.
func (p RetryPolicy) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsSerializationFailure
	}

	var err error
	for attempt := 0; ; attempt++ {
		err = fn(ctx)
		if err == nil || attempt >= p.Retries || !retryable(err) || ctx.Err() != nil {
			return err
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, err)
		}
	}
}
