// Package assets copies documentation assets and dependency directories
// into the build destination.
package assets

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// Result lists what was copied and the failures that were tolerated.
type Result struct {
	Copied   []string
	Warnings []error
}

func (r *Result) warn(err error, message, path string) {
	r.Warnings = append(r.Warnings, ferrors.WrapError(err, ferrors.CategoryFileSystem, message).
		Warning().
		WithContext("path", path).
		Build())
}

// CopyDependencies copies each dependency directory to
// <dest>/<basename>, replacing anything already there. Entries that are not
// directories are skipped.
func CopyDependencies(deps []string, dest string) Result {
	var res Result
	for _, dep := range deps {
		real, err := filepath.EvalSymlinks(dep)
		if err != nil {
			res.warn(err, "Could not copy dependency", dep)
			continue
		}
		info, err := os.Stat(real)
		if err != nil {
			res.warn(err, "Could not copy dependency", dep)
			continue
		}
		if !info.IsDir() {
			continue
		}
		target := filepath.Join(dest, filepath.Base(real))
		if err := replace(real, target); err != nil {
			res.warn(err, "Could not copy dependency", dep)
			continue
		}
		res.Copied = append(res.Copied, target)
	}
	return res
}

// CopyDocAssets copies every entry of dir whose name does not start with an
// underscore into dest. Underscore files are templates.
func CopyDocAssets(dir, dest string) Result {
	var res Result
	entries, err := os.ReadDir(dir)
	if err != nil {
		res.warn(err, "Could not read documentation assets", dir)
		return res
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "_") {
			continue
		}
		src := filepath.Join(dir, entry.Name())
		target := filepath.Join(dest, entry.Name())
		if err := replace(src, target); err != nil {
			res.warn(err, "Could not copy documentation asset", src)
			continue
		}
		res.Copied = append(res.Copied, target)
	}
	return res
}

func replace(src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return CopyDir(src, dst)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return copyFile(src, dst)
}

// CopyDir recursively copies a directory tree from src to dst.
func CopyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := CopyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

// copyFile copies a single file and preserves its permissions.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	return dstFile.Close()
}
