// Package web embeds the page templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"time"
)

//go:embed templates/*.html static/*
var files embed.FS

// Templates parses every page template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"date": func(t time.Time) string { return t.Format("Jan 2, 2006 15:04") },
	}).ParseFS(files, "templates/*.html")
}

// Static returns the static asset tree rooted at static/.
func Static() (fs.FS, error) {
	return fs.Sub(files, "static")
}
