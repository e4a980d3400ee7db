package render

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"caret/config"
	"caret/editor"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	Language   string
	SourceFile string
	DocumentID string
	Blocks     int
}

func expandTemplate(ed *editor.Editor, name config.TemplateFieldName, field, src, lang string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		Title:      ed.Title(),
		Language:   lang,
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		DocumentID: ed.DocumentID(),
		Blocks:     len(ed.Blocks()),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
