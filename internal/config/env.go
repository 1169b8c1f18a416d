package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// envFiles are tried in order; the first one found is loaded.
var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads environment variables from the first .env file found in dir.
// Existing process environment variables are not overwritten.
func loadEnvFile(dir string) error {
	for _, name := range envFiles {
		p := name
		if dir != "" {
			p = dir + string(os.PathSeparator) + name
		}
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		slog.Debug("Loaded environment variables", "path", p)
		return nil
	}
	return fmt.Errorf("no .env file found")
}
