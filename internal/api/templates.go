// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package api

import (
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
)

// LoadTemplates parses all page templates from dir.
// Each page lives in its own file and defines a template named after
// the page (index, login, register, hasil, favorit, admin).
func LoadTemplates(dir string) (*template.Template, error) {
	pattern := filepath.Join(dir, "*.tmpl")

	tmpl, err := template.New("pages").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates from %s: %w", dir, err)
	}
	return tmpl, nil
}
