// Package scanner walks a source tree and lists the files that may carry
// documentation: stylesheets, scripts, and standalone markdown documents.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// Kind distinguishes comment-bearing sources from standalone markdown pages.
type Kind int

const (
	KindSource Kind = iota
	KindMarkdown
)

func (k Kind) String() string {
	if k == KindMarkdown {
		return "markdown"
	}
	return "source"
}

var supportedExtensions = map[string]Kind{
	".css":      KindSource,
	".scss":     KindSource,
	".less":     KindSource,
	".sass":     KindSource,
	".styl":     KindSource,
	".js":       KindSource,
	".md":       KindMarkdown,
	".markdown": KindMarkdown,
}

// SourceFile is one recognized file found by Scan.
type SourceFile struct {
	Path string // Absolute or root-joined path
	Dir  string // Directory containing the file
	Name string // Base name including extension
	Ext  string // Extension including the dot
	Kind Kind
}

// Read loads the file's contents.
func (f SourceFile) Read() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "Could not read source file").
			Fatal().
			WithContext("path", f.Path).
			Build()
	}
	return string(data), nil
}

// PageName is the output page identifier of a markdown document.
func (f SourceFile) PageName() string {
	return strings.TrimSuffix(f.Name, f.Ext) + ".html"
}

// Supported reports whether a file name has a recognized extension.
func Supported(name string) bool {
	_, ok := supportedExtensions[filepath.Ext(name)]
	return ok
}

// Scan lists recognized files under root. Directories are visited in
// pre-order (lexical within a level) starting with root itself; files are
// sorted by name within their directory. Hidden directories below root are
// skipped.
func Scan(root string) ([]SourceFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, unreadable(root, err)
	}
	if !info.IsDir() {
		return nil, unreadable(root, fmt.Errorf("%s is not a directory", root))
	}

	dirs, err := directories(root)
	if err != nil {
		return nil, err
	}

	var files []SourceFile
	for _, dir := range dirs {
		found, err := filesIn(dir)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func directories(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, unreadable(root, err)
	}
	return dirs, nil
}

func filesIn(dir string) ([]SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, unreadable(dir, err)
	}

	var files []SourceFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		kind, ok := supportedExtensions[ext]
		if !ok {
			continue
		}
		files = append(files, SourceFile{
			Path: filepath.Join(dir, entry.Name()),
			Dir:  dir,
			Name: entry.Name(),
			Ext:  ext,
			Kind: kind,
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func unreadable(path string, err error) error {
	return ferrors.WrapError(err, ferrors.CategoryFileSystem, "Can not read source directory, does it exist?").
		Fatal().
		WithContext("path", path).
		Build()
}
