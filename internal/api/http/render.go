package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"reflect"
	"time"

	"github.com/i474232898/home-dashboard/internal/dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"formatTime":    formatTime,
	"formatMinutes": formatMinutes,
	"loadBadge":     loadBadge,
	"vehicleLabel":  vehicleLabel,
	"deref":         deref,
}).ParseFS(templateFS, "templates/dashboard.html"))

// pageData is the template context for the dashboard page.
type pageData struct {
	dashboard.ViewModel
	Device         string
	RefreshSeconds int
	Now            *time.Time
}

func renderPage(data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// deref unwraps a pointer for display; nil renders as an empty string.
func deref(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return v
	}
	if rv.IsNil() {
		return ""
	}
	return rv.Elem().Interface()
}
