package httpserver

import (
	"embed"
	"html/template"
	"io"
	"math"
	"strings"

	"github.com/labstack/echo/v4"
)

const excerptLength = 150

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// TemplateRenderer renders the embedded page templates for echo.
type TemplateRenderer struct {
	templates *template.Template
}

func newTemplateRenderer() (*TemplateRenderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"starIcons": starIcons,
		"excerpt":   excerpt,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: t}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func (s *Server) RegisterStaticRoutes() {
	s.Router.StaticFS("/static", echo.MustSubFS(staticFS, "static"))
}

// starIcons draws a five star rating with half star precision.
func starIcons(stars float64) string {
	full := int(math.Floor(stars))
	half := stars-float64(full) >= 0.5
	var b strings.Builder
	for i := 0; i < 5; i++ {
		switch {
		case i < full:
			b.WriteString("★")
		case i == full && half:
			b.WriteString("⯪")
		default:
			b.WriteString("☆")
		}
	}
	return b.String()
}

// excerpt shortens text to excerptLength runes.
func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLength {
		return text
	}
	return strings.TrimSpace(string(runes[:excerptLength])) + "..."
}
