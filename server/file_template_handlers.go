package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/jrsteele09/diplomats-site/calendar"
)

//go:embed templates/*
var templateFiles embed.FS

const layoutTemplate = "layout.html"

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("Mon Jan 2, 2006")
	},
	"datetime": func(t time.Time) string {
		return t.Format("Mon Jan 2, 2006 3:04 PM")
	},
	"attending": func(e calendar.Event, email string) bool {
		return email != "" && e.IsAttending(email)
	},
}

// parsePages parses every page template together with the shared layout,
// keyed by file name.
func parsePages() (map[string]*template.Template, error) {
	fsys := TemplateFilesFS()
	names, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == layoutTemplate || strings.HasPrefix(path.Base(name), "_") {
			continue
		}
		tmpl, err := template.New(layoutTemplate).Funcs(templateFuncs).ParseFS(fsys, layoutTemplate, name)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}
