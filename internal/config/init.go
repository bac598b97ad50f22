package config

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

//go:embed scaffold
var scaffoldFS embed.FS

// Init writes an example configuration and documentation assets into dir.
// It refuses to overwrite an existing configuration unless force is set and
// returns the created paths relative to dir.
func Init(dir string, force bool) ([]string, error) {
	cfgPath := filepath.Join(dir, DefaultFileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return nil, ferrors.ConfigError("Refusing to overwrite existing configuration (use --force)").
			WithContext("path", cfgPath).
			Build()
	}

	root, err := fs.Sub(scaffoldFS, "scaffold")
	if err != nil {
		return nil, ferrors.InternalError("scaffold files are missing").WithCause(err).Build()
	}

	var created []string
	err = fs.WalkDir(root, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := fs.ReadFile(root, path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		created = append(created, path)
		return nil
	})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "Could not write scaffold files").
			Fatal().
			WithContext("dir", dir).
			Build()
	}
	return created, nil
}
