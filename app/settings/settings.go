// Package settings resolves where job-log keeps its data and loads the .env file from there
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/joho/godotenv"
)

const (
	// DefaultDir is the data directory used when JOB_LOG_DB_PATH is not set
	DefaultDir = "~/.job-log"
	// DBFileName is the database file inside data directory
	DBFileName = "jobs.db"
	// EnvFileName is the settings file inside default data directory
	EnvFileName = ".env"
)

// LoadEnv loads variables from the .env file in dir. Variables already set in the environment
// take precedence. Missing file is not an error.
func LoadEnv(dir string) error {
	envFile := filepath.Join(ExpandPath(dir), EnvFileName)
	if _, err := os.Stat(envFile); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	log.Printf("[DEBUG] loaded settings from %s", envFile)
	return nil
}

// DBFile makes sure data directory exists and returns the database file in it
func DBFile(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultDir
	}
	dataDir := ExpandPath(dir)
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to make data directory %s: %w", dataDir, err)
	}
	return filepath.Join(dataDir, DBFileName), nil
}

// ExpandPath expands environment variables and leading ~ in the path
func ExpandPath(p string) string {
	p = os.ExpandEnv(p)
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("[WARN] can't get home directory, %v", err)
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
