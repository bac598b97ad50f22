package docblock

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// ErrMissingName marks a comment whose header has no name. Such comments are
// skipped with a warning rather than failing the build.
var ErrMissingName = errors.New("missing required name config value")

// The header is a "---" line, YAML content, and a closing "---" line.
var headerPattern = regexp.MustCompile(`(?ms)^\s*---\s(.*?)\s---$`)

// Parse splits a raw comment into its YAML header and markdown body.
//
// A comment without a header is not documentation and yields (nil, nil).
// A header that is not valid YAML mapping content is a fatal parse error
// carrying the header text. A header without a name yields a warning-severity
// error wrapping ErrMissingName.
func Parse(raw, source string) (*Block, error) {
	m := headerPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil, nil
	}
	header := m[1]
	markdown := strings.Replace(raw, m[0], "", 1)

	fields := map[string]any{}
	if err := yaml.Unmarshal([]byte(header), &fields); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "Could not parse YAML").
			Fatal().
			WithContext("header", header).
			WithContext("source", source).
			Build()
	}

	name := stringField(fields, "name")
	if name == "" {
		return nil, ferrors.WrapError(ErrMissingName, ferrors.CategoryValidation, "This documentation comment will be skipped").
			Warning().
			WithContext("fields", fields).
			WithContext("source", source).
			Build()
	}

	b := New(name, markdown)
	b.Parent = stringField(fields, "parent")
	b.Category = stringField(fields, "category")
	b.Title = stringField(fields, "title")
	b.Source = source
	return b, nil
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
