package main

import (
	"html/template"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// LoadTemplates parses the player page templates.
func LoadTemplates(dir string) *template.Template {
	files, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		log.Fatal().Err(err).Str("dir", dir).Msg("bad templates path")
	}
	if len(files) == 0 {
		log.Fatal().Str("dir", dir).Msg("no templates found")
	}
	return template.Must(template.ParseFiles(files...))
}
