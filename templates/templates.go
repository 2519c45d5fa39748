// Package templates holds the embedded HTML pages. Every page is
// parsed together with the shared layout; Render executes the layout,
// which pulls in the page's "content" block.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed *.html
var files embed.FS

var pageNames = []string{
	"index",
	"registration",
	"login",
	"forgot_password",
	"reset_password",
	"edit_task",
}

var pages = func() map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		parsed[name] = template.Must(template.ParseFS(files, "layout.html", name+".html"))
	}
	return parsed
}()

// Render executes the named page into w.
func Render(w io.Writer, name string, data any) error {
	t, ok := pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
