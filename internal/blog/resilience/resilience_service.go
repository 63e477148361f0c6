package resilience

import (
	"context"
)

// ServiceResilience объединяет Circuit Breaker и повторные попытки для одного зависимого сервиса.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewServiceResilience создает обертку отказоустойчивости для сервиса.
func NewServiceResilience(serviceName string, cb CircuitBreakerConfig, retry RetryConfig) *ServiceResilience {
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, cb),
		retry:          NewRetry(serviceName, retry),
	}
}

// Name возвращает имя защищаемого сервиса.
func (r *ServiceResilience) Name() string {
	return r.serviceName
}

// State возвращает состояние Circuit Breaker.
func (r *ServiceResilience) State() CircuitState {
	return r.circuitBreaker.GetState()
}

// ExecuteWithResilience выполняет операцию с повторами внутри Circuit Breaker.
func (r *ServiceResilience) ExecuteWithResilience(ctx context.Context, operation func() error) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.retry.Execute(ctx, operation)
	})
}

// Execute выполняет операцию с результатом под защитой r.
func Execute[T any](ctx context.Context, r *ServiceResilience, operation func() (T, error)) (T, error) {
	var result T
	err := r.ExecuteWithResilience(ctx, func() error {
		var err error
		result, err = operation()
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
