package endpoints

import "github.com/cage1016/gokitcalc/pkg/calcsvc/service"

var (
	_ Request = MultiplyRequest{}
	_ Request = DivideRequest{}
)

// Request is implemented by every request type; endpoints validate through it.
type Request interface {
	validate() (a float64, b float64, err error)
}

// MultiplyRequest collects the request parameters for the Multiply method.
// A and B hold the raw parameter values; empty means absent.
type MultiplyRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

func (r MultiplyRequest) validate() (float64, float64, error) {
	return service.Validate(r.A, r.B)
}

// DivideRequest collects the request parameters for the Divide method.
type DivideRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

func (r DivideRequest) validate() (float64, float64, error) {
	return service.Validate(r.A, r.B)
}
