package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"ntl/internal/config"
	"ntl/internal/domain"
)

// NodeRow is one report-tree node as stored in the history tables
type NodeRow struct {
	Position       int
	Depth          int
	Kind           domain.Kind
	Name           string
	FullName       string
	ParentFullName string
	Outcome        string
	Counts         domain.Counts
	Duration       time.Duration
}

// HistoryStore publishes run trees to the MySQL history database
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore wraps an open database handle
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// OpenHistory connects to the configured history database
func OpenHistory(ctx context.Context, cfg *config.Config) (*HistoryStore, error) {
	db, err := sql.Open("mysql", cfg.Database.DSN(true))
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}
	return NewHistoryStore(db), nil
}

// Close releases the database handle
func (h *HistoryStore) Close() error {
	return h.db.Close()
}

// Publish stores run and all of its nodes in one transaction and returns
// the history id assigned to the run
func (h *HistoryStore) Publish(ctx context.Context, run *domain.Node) (string, error) {
	if run == nil || run.Kind != domain.KindRun {
		return "", fmt.Errorf("publish: expected a %s node", domain.KindRun)
	}

	id := uuid.NewString()
	rows := Flatten(run)

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ntl_runs (id, run_id, result, total, passed, failed, skipped, inconclusive, start_time, end_time, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, run.ID, string(run.Result), run.Total, run.Passed, run.Failed, run.Skipped, run.Inconclusive,
		nullTime(run.StartTime), nullTime(run.EndTime), run.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ntl_nodes (run_uuid, position, depth, kind, name, full_name, parent_full_name, outcome, total, passed, failed, skipped, inconclusive, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare node insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.ExecContext(ctx,
			id, row.Position, row.Depth, string(row.Kind), row.Name, row.FullName, row.ParentFullName, row.Outcome,
			row.Counts.Total, row.Counts.Passed, row.Counts.Failed, row.Counts.Skipped, row.Counts.Inconclusive,
			row.Duration.Milliseconds(),
		)
		if err != nil {
			return "", fmt.Errorf("insert node %s: %w", row.FullName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return id, nil
}

// Flatten lists the nodes below run depth-first, parents before children.
// The run node itself is stored in ntl_runs and is not included.
func Flatten(run *domain.Node) []NodeRow {
	var rows []NodeRow
	parents := []string{}

	run.Walk(func(node *domain.Node, depth int) bool {
		parents = parents[:depth]
		parents = append(parents, node.FullName)
		if depth == 0 {
			return true
		}

		row := NodeRow{
			Position:       len(rows),
			Depth:          depth,
			Kind:           node.Kind,
			Name:           node.Name,
			FullName:       node.FullName,
			ParentFullName: parents[depth-1],
			Outcome:        string(node.Result),
			Counts:         node.Counts,
			Duration:       node.Duration,
		}
		if depth == 1 {
			row.ParentFullName = ""
		}
		if node.Case != nil {
			row.Outcome = string(node.Case.Outcome)
		}
		rows = append(rows, row)
		return true
	})

	return rows
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
