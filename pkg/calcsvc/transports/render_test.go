package transports

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	doc := Render("<h1>Test</h1><p>content & more</p>", http.StatusOK)

	assert.Equal(t, http.StatusOK, doc.StatusCode)
	assert.Contains(t, doc.ContentType, "text/html")
	body := string(doc.Body)
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, `<meta charset="UTF-8">`)
	assert.Contains(t, body, `<div class="container">`)
	assert.Contains(t, body, "<h1>Test</h1><p>content & more</p>")
}

func TestRenderStatusCode(t *testing.T) {
	doc := Render("<h1>Error</h1>", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, doc.StatusCode)
	assert.Contains(t, doc.ContentType, "text/html")
}

func TestDocumentWriteTo(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, Render("<p>x</p>", http.StatusTeapot).WriteTo(rec))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<p>x</p>")
}

func TestFragments(t *testing.T) {
	assert.Equal(t,
		`<h1>Multiplication Result</h1><div class="result"><p>10 × 5 = 50</p></div>`,
		multiplication.fragment(10, 5, 50))
	assert.Equal(t,
		`<h1>Division Result</h1><div class="result"><p>10.5 ÷ 2.5 = 4.2</p></div>`,
		division.fragment(10.5, 2.5, 4.2))
	assert.Equal(t,
		`<h1>Error</h1><div class="error">a &lt;b&gt; &amp; c</div>`,
		errorFragment("a <b> & c"))
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{50, "50"},
		{10.5, "10.5"},
		{0.0001, "0.0001"},
		{9999999000000, "9999999000000"},
		{0.00001, "1e-05"},
		{2e-08, "2e-08"},
		{1234567890123456, "1234567890123456"},
		{1e16, "1e+16"},
		{1e21, "1e+21"},
		{1e300, "1e+300"},
		{2.5e300, "2.5e+300"},
		{math.Inf(1), "inf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in))
	}
}
