// Package stats records per-layer population counts of a run into a sqlite
// database so runs can be compared after the fact.
package stats

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	_ "modernc.org/sqlite"

	"ml-gol/internal/sims/mlgol"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	grid_size  INTEGER NOT NULL,
	num_layers INTEGER NOT NULL,
	num_steps  INTEGER NOT NULL,
	density    REAL NOT NULL,
	seed       TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS populations (
	run_id TEXT NOT NULL REFERENCES runs(id),
	step   INTEGER NOT NULL,
	layer  INTEGER NOT NULL,
	alive  INTEGER NOT NULL,
	PRIMARY KEY (run_id, step, layer)
);
`

// Recorder is a StepObserver that stores one row per (step, layer).
type Recorder struct {
	db    *sql.DB
	runID string
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open stats db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create stats schema: %w", err)
	}
	return &Recorder{db: db}, nil
}

// BeginRun registers a new run and returns its identifier. Subsequent steps
// are recorded against it.
func (r *Recorder) BeginRun(cfg mlgol.Config) (string, error) {
	id := xid.New().String()
	_, err := r.db.Exec(
		`INSERT INTO runs (id, started_at, grid_size, num_layers, num_steps, density, seed) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339Nano), cfg.GridSize, cfg.NumLayers, cfg.NumSteps, cfg.Density,
		fmt.Sprint(cfg.Seed),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	r.runID = id
	return id, nil
}

// ObserveStep stores the population of every layer for step.
func (r *Recorder) ObserveStep(step int, layers *mlgol.LayerSet) error {
	if r.runID == "" {
		return fmt.Errorf("record step %d: no run started", step)
	}
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO populations (run_id, step, layer, alive) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for layer, alive := range layers.Populations() {
		if _, err := stmt.Exec(r.runID, step, layer, alive); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert population: %w", err)
		}
	}
	return tx.Commit()
}

// Populations returns the recorded alive counts of a run, indexed by step
// then layer.
func (r *Recorder) Populations(runID string) ([][]int, error) {
	rows, err := r.db.Query(`SELECT step, layer, alive FROM populations WHERE run_id = ? ORDER BY step, layer`, runID)
	if err != nil {
		return nil, fmt.Errorf("query populations: %w", err)
	}
	defer rows.Close()

	var out [][]int
	for rows.Next() {
		var step, layer, alive int
		if err := rows.Scan(&step, &layer, &alive); err != nil {
			return nil, fmt.Errorf("scan population: %w", err)
		}
		for len(out) <= step {
			out = append(out, nil)
		}
		out[step] = append(out[step], alive)
	}
	return out, rows.Err()
}

// Runs lists recorded run identifiers, oldest first.
func (r *Recorder) Runs() ([]string, error) {
	rows, err := r.db.Query(`SELECT id FROM runs ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the database.
func (r *Recorder) Close() error {
	return r.db.Close()
}
