package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

var errNoEnvFile = errors.New("no .env file found")

// loadEnvFiles loads .env and .env.local from dir into the process
// environment. Existing variables are not overwritten.
func loadEnvFiles(dir string) error {
	var found []string
	for _, name := range []string{".env", ".env.local"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			found = append(found, p)
		}
	}
	if len(found) == 0 {
		return errNoEnvFile
	}
	return godotenv.Load(found...)
}
