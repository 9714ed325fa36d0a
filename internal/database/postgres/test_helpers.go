package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// applyMigrations replays the earnings schema migrations against a test
// container. Goose markers are stripped and only the Up half of each
// file runs; the container is thrown away, never rolled back.
func applyMigrations(ctx context.Context, t *testing.T, pool *pgxpool.Pool, migrationsDir string) error {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations dir: %w", err)
	}

	var migrationFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".sql") && !strings.HasSuffix(name, ".down.sql") {
			migrationFiles = append(migrationFiles, filepath.Join(migrationsDir, name))
		}
	}
	sort.Strings(migrationFiles)

	for _, file := range migrationFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		sql := strings.Replace(string(content), "-- +goose Up", "", 1)
		if downIdx := strings.Index(sql, "-- +goose Down"); downIdx != -1 {
			sql = sql[:downIdx]
		}
		sql = strings.TrimSpace(sql)

		t.Logf("applying migration %s", filepath.Base(file))
		if _, err := pool.Exec(ctx, sql); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}
	return nil
}
