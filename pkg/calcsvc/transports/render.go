package transports

import (
	"bytes"
	"html"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"strings"
)

const contentTypeHTML = "text/html; charset=utf-8"

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Calculation Result</title>
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            max-width: 600px;
            margin: 50px auto;
            padding: 20px;
            background-color: #f5f5f5;
        }
        .container {
            background-color: white;
            border-radius: 8px;
            padding: 30px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
        }
        h1 {
            color: #333;
            text-align: center;
            margin-bottom: 20px;
        }
        .result {
            font-size: 24px;
            color: #0066cc;
            text-align: center;
            padding: 20px;
            background-color: #e8f4ff;
            border-radius: 5px;
            margin: 20px 0;
        }
        .error {
            font-size: 18px;
            color: #cc0000;
            text-align: center;
            padding: 20px;
            background-color: #ffe8e8;
            border-radius: 5px;
            margin: 20px 0;
        }
    </style>
</head>
<body>
    <div class="container">
        {{.}}
    </div>
</body>
</html>
`))

// Document is a complete HTML page ready to be written to a client.
type Document struct {
	ContentType string
	StatusCode  int
	Body        []byte
}

// Render wraps fragment in the page template. The fragment is inserted as is;
// escaping is the caller's job.
func Render(fragment string, statusCode int) Document {
	var buf bytes.Buffer
	// The only action prints template.HTML into a bytes.Buffer; it cannot fail.
	_ = page.Execute(&buf, template.HTML(fragment))
	return Document{
		ContentType: contentTypeHTML,
		StatusCode:  statusCode,
		Body:        buf.Bytes(),
	}
}

// WriteTo writes the document's headers, status code and body to w.
func (d Document) WriteTo(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", d.ContentType)
	w.WriteHeader(d.StatusCode)
	_, err := w.Write(d.Body)
	return err
}

type operation struct {
	title  string
	symbol string
}

var (
	multiplication = operation{title: "Multiplication Result", symbol: "×"}
	division       = operation{title: "Division Result", symbol: "÷"}
)

func (op operation) fragment(a, b, rs float64) string {
	return `<h1>` + op.title + `</h1><div class="result"><p>` +
		formatNumber(a) + " " + op.symbol + " " + formatNumber(b) + " = " + formatNumber(rs) +
		`</p></div>`
}

func errorFragment(msg string) string {
	return `<h1>Error</h1><div class="error">` + html.EscapeString(msg) + `</div>`
}

// formatNumber prints the shortest decimal that round-trips. Like Python's
// repr it switches to exponent form when the decimal exponent is below -4 or
// at least 16: 50, 10.5, 0.0001, 1e-05, 1e+16.
func formatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}
	e := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return e
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
