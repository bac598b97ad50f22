package render

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"git.home.luguber.info/inful/styleguide/internal/docblock"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

var (
	ErrNoHeader = errors.New("no _header.html found in documentation assets, your css/header will not be included on the generated pages")
	ErrNoFooter = errors.New("no _footer.html found in documentation assets, this might be okay to ignore")
)

// PageData is exposed to header and footer templates.
type PageData struct {
	Title    string
	FileName string
	Blocks   []docblock.Meta
}

// Templates holds the optional header and footer templates.
type Templates struct {
	header *template.Template
	footer *template.Template
}

// LoadTemplates reads _header.html/header.html and _footer.html/footer.html
// from dir. Missing templates are reported as warnings, not errors.
func LoadTemplates(dir string) (*Templates, []error, error) {
	var warnings []error
	t := &Templates{}

	var err error
	t.header, err = loadFirst(dir, "header", "_header.html", "header.html")
	if err != nil {
		return nil, nil, err
	}
	if t.header == nil {
		warnings = append(warnings, ErrNoHeader)
	}

	t.footer, err = loadFirst(dir, "footer", "_footer.html", "footer.html")
	if err != nil {
		return nil, nil, err
	}
	if t.footer == nil {
		warnings = append(warnings, ErrNoFooter)
	}
	return t, warnings, nil
}

func loadFirst(dir, name string, candidates ...string) (*template.Template, error) {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "Could not read template").
				Fatal().
				WithContext("path", path).
				Build()
		}
		tpl, err := template.New(name).Option("missingkey=error").Parse(string(data))
		if err != nil {
			return nil, ferrors.RenderError("Could not parse template").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		return tpl, nil
	}
	return nil, nil
}

// Header renders the header template, empty when absent.
func (t *Templates) Header(data PageData) ([]byte, error) {
	return execute(t.header, data)
}

// Footer renders the footer template, empty when absent.
func (t *Templates) Footer(data PageData) ([]byte, error) {
	return execute(t.footer, data)
}

func execute(tpl *template.Template, data PageData) ([]byte, error) {
	if tpl == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
