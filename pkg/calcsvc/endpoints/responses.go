package endpoints

import (
	"net/http"

	httptransport "github.com/go-kit/kit/transport/http"
)

const contentTypeHTML = "text/html; charset=utf-8"

var (
	_ httptransport.Headerer = (*MultiplyResponse)(nil)

	_ httptransport.StatusCoder = (*MultiplyResponse)(nil)

	_ Failer = (*MultiplyResponse)(nil)

	_ httptransport.Headerer = (*DivideResponse)(nil)

	_ httptransport.StatusCoder = (*DivideResponse)(nil)

	_ Failer = (*DivideResponse)(nil)
)

// Failer may be implemented by response types that carry a business error.
// Business errors are rendered to the caller; they are not endpoint failures.
type Failer interface {
	Failed() error
}

// MultiplyResponse collects the response values for the Multiply method.
type MultiplyResponse struct {
	A   float64 `json:"a"`
	B   float64 `json:"b"`
	Rs  float64 `json:"rs"`
	Err error   `json:"err"`
}

func (r MultiplyResponse) StatusCode() int {
	return statusCode(r.Err)
}

func (r MultiplyResponse) Headers() http.Header {
	return http.Header{"Content-Type": []string{contentTypeHTML}}
}

func (r MultiplyResponse) Failed() error { return r.Err }

// DivideResponse collects the response values for the Divide method.
type DivideResponse struct {
	A   float64 `json:"a"`
	B   float64 `json:"b"`
	Rs  float64 `json:"rs"`
	Err error   `json:"err"`
}

func (r DivideResponse) StatusCode() int {
	return statusCode(r.Err)
}

func (r DivideResponse) Headers() http.Header {
	return http.Header{"Content-Type": []string{contentTypeHTML}}
}

func (r DivideResponse) Failed() error { return r.Err }

func statusCode(err error) int {
	if err != nil {
		return http.StatusBadRequest
	}
	return http.StatusOK
}
