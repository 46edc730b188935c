package results

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xrcheck/xrcheck/internal/harness"
)

// Run is one invocation of the suite against a runtime.
type Run struct {
	ID         string
	StartedAt  time.Time
	Runtime    string
	ViewConfig string
	Headless   bool
	Passed     int
	Failed     int
	Errored    int
}

// VerdictRow is a persisted scenario verdict.
type VerdictRow struct {
	RunID    string
	Scenario string
	Outcome  harness.Outcome
	Elapsed  time.Duration
	Detail   string
}

// ErrRunNotFound is returned when a run with the given ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// CreateRun inserts a new run with zeroed totals.
func (db *DB) CreateRun(run *Run) error {
	_, err := db.Exec(`
		INSERT INTO runs (id, started_at, runtime, view_config, headless)
		VALUES (?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.Runtime,
		run.ViewConfig,
		boolToInt(run.Headless),
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// FinishRun records the run's final totals.
func (db *DB) FinishRun(id string, passed, failed, errored int) error {
	res, err := db.Exec(
		"UPDATE runs SET passed = ?, failed = ?, errored = ? WHERE id = ?",
		passed, failed, errored, id,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// InsertVerdict persists one scenario verdict for a run. Failure and warning
// messages are flattened into the detail column for post-mortem reading.
func (db *DB) InsertVerdict(runID string, v harness.Verdict) error {
	var detail []string
	for _, f := range v.Failures {
		detail = append(detail, "FAIL: "+f)
	}
	for _, w := range v.Warnings {
		detail = append(detail, "WARN: "+w)
	}

	_, err := db.Exec(`
		INSERT INTO verdicts (run_id, scenario, outcome, elapsed_ms, detail)
		VALUES (?, ?, ?, ?, ?)`,
		runID,
		v.Scenario,
		string(v.Outcome),
		v.Elapsed.Milliseconds(),
		strings.Join(detail, "\n"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert verdict: %w", err)
	}
	return nil
}

// GetRun returns the run with the given ID.
func (db *DB) GetRun(id string) (*Run, error) {
	row := db.QueryRow(`
		SELECT id, started_at, runtime, view_config, headless, passed, failed, errored
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT id, started_at, runtime, view_config, headless, passed, failed, errored
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// FindRuns returns the runs whose IDs start with prefix, newest first.
func (db *DB) FindRuns(prefix string) ([]*Run, error) {
	rows, err := db.Query(`
		SELECT id, started_at, runtime, view_config, headless, passed, failed, errored
		FROM runs WHERE id LIKE ? || '%' ORDER BY started_at DESC`, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to find runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// ListVerdicts returns the verdicts of a run, ordered by scenario name.
func (db *DB) ListVerdicts(runID string) ([]*VerdictRow, error) {
	rows, err := db.Query(`
		SELECT run_id, scenario, outcome, elapsed_ms, detail
		FROM verdicts WHERE run_id = ? ORDER BY scenario`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list verdicts: %w", err)
	}
	defer rows.Close()

	var verdicts []*VerdictRow
	for rows.Next() {
		var v VerdictRow
		var outcome string
		var elapsedMS int64
		var detail sql.NullString
		if err := rows.Scan(&v.RunID, &v.Scenario, &outcome, &elapsedMS, &detail); err != nil {
			return nil, fmt.Errorf("failed to scan verdict: %w", err)
		}
		v.Outcome = harness.Outcome(outcome)
		v.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		v.Detail = detail.String
		verdicts = append(verdicts, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating verdicts: %w", err)
	}
	return verdicts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var startedAt string
	var headless int
	err := row.Scan(&run.ID, &startedAt, &run.Runtime, &run.ViewConfig,
		&headless, &run.Passed, &run.Failed, &run.Errored)
	if err != nil {
		return nil, err
	}
	run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid started_at %q: %w", startedAt, err)
	}
	run.Headless = headless != 0
	return &run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
