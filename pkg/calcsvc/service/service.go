package service

import (
	"context"

	"github.com/go-kit/kit/log"
)

// Middleware describes a service (as opposed to endpoint) middleware.
type Middleware func(CalcsvcService) CalcsvcService

// CalcsvcService describes a service that multiplies and divides positive
// numbers. Operands are expected to have passed Validate.
type CalcsvcService interface {
	Multiply(ctx context.Context, a float64, b float64) (rs float64, err error)
	Divide(ctx context.Context, a float64, b float64) (rs float64, err error)
}

// the concrete implementation of service interface
type stubCalcsvcService struct {
	logger log.Logger
}

// New return a new instance of the service.
// If you want to add service middleware this is the place to put them.
func New(logger log.Logger) (s CalcsvcService) {
	var svc CalcsvcService
	{
		svc = &stubCalcsvcService{logger: logger}
		svc = LoggingMiddleware(logger)(svc)
	}
	return svc
}

// Implement the business logic of Multiply
func (ca *stubCalcsvcService) Multiply(ctx context.Context, a float64, b float64) (rs float64, err error) {
	return a * b, nil
}

// Implement the business logic of Divide
func (ca *stubCalcsvcService) Divide(ctx context.Context, a float64, b float64) (rs float64, err error) {
	// Validate already rejects b <= 0.
	if b == 0 {
		return 0, ErrZeroDivisor
	}
	return a / b, nil
}
