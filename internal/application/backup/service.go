// Package backup shells out to pg_dump and pg_restore. The artifact format is
// opaque to the rest of the application.
package backup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/tijara-app/tijara-api/pkg/logger"
)

// Timeout bounds one dump or restore run.
const Timeout = 10 * time.Minute

// Service produces and applies database backups.
type Service struct {
	pgDumpPath    string
	pgRestorePath string
	databaseURL   string
	dir           string
	log           *logger.Logger
}

// NewService builds the service. dir is where dump files land.
func NewService(pgDumpPath, pgRestorePath, databaseURL, dir string, log *logger.Logger) *Service {
	return &Service{
		pgDumpPath:    pgDumpPath,
		pgRestorePath: pgRestorePath,
		databaseURL:   databaseURL,
		dir:           dir,
		log:           log,
	}
}

// Create runs pg_dump in custom format and returns the artifact path.
func (s *Service) Create(ctx context.Context) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("backup dir: %w", err)
	}
	name := fmt.Sprintf("backup-%s.dump", time.Now().UTC().Format("20060102-150405"))
	path := filepath.Join(s.dir, name)

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.pgDumpPath, "--format=custom", "--file", path, s.databaseURL)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("pg_dump: %v: %s", err, out)
	}
	s.log.Info().Str("path", path).Msg("backup created")
	return path, nil
}

// Restore applies a dump file with pg_restore, replacing current objects.
func (s *Service) Restore(ctx context.Context, path string) error {
	// Only files inside the backup directory are accepted.
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir, err := filepath.Abs(s.dir)
	if err != nil {
		return err
	}
	if filepath.Dir(abs) != dir {
		return fmt.Errorf("restore path %s is outside the backup directory", path)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("backup file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.pgRestorePath, "--clean", "--if-exists", "--dbname", s.databaseURL, abs)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("pg_restore: %v: %s", err, out)
	}
	s.log.Info().Str("path", abs).Msg("backup restored")
	return nil
}

// List returns available dump files, newest first.
func (s *Service) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if !e.IsDir() && filepath.Ext(e.Name()) == ".dump" {
			out = append(out, e.Name())
		}
	}
	return out, nil
}
