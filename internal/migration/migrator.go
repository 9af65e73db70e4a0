package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fatih/color"

	"ntl/internal/config"
)

// Migrator prepares the history database
type Migrator interface {
	Run(ctx context.Context) error
}

// Schema is the list of statements that create the history tables, in order
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS ntl_runs (
		id           CHAR(36)     NOT NULL PRIMARY KEY,
		run_id       VARCHAR(64)  NOT NULL,
		result       VARCHAR(16)  NOT NULL,
		total        INT          NOT NULL,
		passed       INT          NOT NULL,
		failed       INT          NOT NULL,
		skipped      INT          NOT NULL,
		inconclusive INT          NOT NULL,
		start_time   DATETIME(3)  NULL,
		end_time     DATETIME(3)  NULL,
		duration_ms  BIGINT       NOT NULL,
		created_at   TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS ntl_nodes (
		run_uuid         CHAR(36)      NOT NULL,
		position         INT           NOT NULL,
		depth            INT           NOT NULL,
		kind             VARCHAR(16)   NOT NULL,
		name             VARCHAR(1024) NOT NULL,
		full_name        TEXT          NOT NULL,
		parent_full_name TEXT          NOT NULL,
		outcome          VARCHAR(16)   NOT NULL,
		total            INT           NOT NULL,
		passed           INT           NOT NULL,
		failed           INT           NOT NULL,
		skipped          INT           NOT NULL,
		inconclusive     INT           NOT NULL,
		duration_ms      BIGINT        NOT NULL,
		PRIMARY KEY (run_uuid, position),
		CONSTRAINT fk_ntl_nodes_run FOREIGN KEY (run_uuid) REFERENCES ntl_runs (id) ON DELETE CASCADE
	)`,
}

// SchemaMigrator creates the history database and its tables
type SchemaMigrator struct {
	config          *config.Config
	databaseManager *DatabaseManager
}

// NewSchemaMigrator creates a new SchemaMigrator
func NewSchemaMigrator(cfg *config.Config, dbManager *DatabaseManager) *SchemaMigrator {
	return &SchemaMigrator{
		config:          cfg,
		databaseManager: dbManager,
	}
}

// Run ensures the database exists and applies every schema statement
func (sm *SchemaMigrator) Run(ctx context.Context) error {
	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║               Running Database Migrations                  ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")

	startTime := time.Now()

	created, err := sm.databaseManager.EnsureDatabase(ctx)
	if err != nil {
		return fmt.Errorf("failed to check database: %w", err)
	}
	if created {
		color.White("Created database %s\n", sm.config.Database.Name)
	}

	db, err := sql.Open("mysql", sm.config.Database.DSN(true))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	for i, stmt := range Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			color.Red("✗ Migration %d/%d failed\n", i+1, len(Schema))
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
	}

	color.Green("✓ History schema ready in %s (%d statements)\n", sm.config.Database.Name, len(Schema))
	color.White("Duration: %s\n", time.Since(startTime).Round(time.Millisecond))
	return nil
}
