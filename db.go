package main

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"

	_ "github.com/lib/pq"

	"hypothesis_worker/hypothesis"
)

const sampleColumn = "value"

func buildDSNFromEnv() (string, error) {
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	user := os.Getenv("POSTGRES_USER")
	pass := os.Getenv("POSTGRES_PASSWORD")
	dbname := os.Getenv("POSTGRES_DB")
	if dbname == "" {
		if url := os.Getenv("DATABASE_URL"); url != "" {
			return url, nil
		}
		return "", errors.New("POSTGRES_DB not set; set env vars or DATABASE_URL")
	}
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "5432"
	}
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, dbname)
	return dsn, nil
}

// fetchComparison returns the two test runs a comparison row ties together.
func fetchComparison(db *sql.DB, id int64) (runA, runB int64, err error) {
	err = db.QueryRow("SELECT test_run_a_id, test_run_b_id FROM comparisons WHERE id = $1", id).Scan(&runA, &runB)
	if err == sql.ErrNoRows {
		return 0, 0, fmt.Errorf("comparisons id %d not found", id)
	}
	return runA, runB, err
}

func fetchTaskWindow(db *sql.DB, testRunID int64) (int, int, error) {
	const q = `
SELECT tasks.page, tasks.per_page
FROM tasks
JOIN handlers ON handlers.task_id = tasks.id
JOIN test_runs ON test_runs.handler_id = handlers.id
WHERE test_runs.id = $1
LIMIT 1`

	var page sql.NullInt64
	var perPage sql.NullInt64
	err := db.QueryRow(q, testRunID).Scan(&page, &perPage)
	if err != nil && err != sql.ErrNoRows {
		return 0, 0, err
	}

	pg := normalizePositiveInt(page.Int64, 1)
	pp := normalizePositiveInt(perPage.Int64, 1)
	return pg, pp, nil
}

// fetchSamples loads one page of samples as a single column table keyed by
// sample id. NULL values are skipped.
func fetchSamples(db *sql.DB, page, perPage int) (*hypothesis.Table, error) {
	limit, offset := windowLimitOffset(page, perPage)

	rows, err := db.Query("SELECT id, value FROM samples ORDER BY id ASC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	table := hypothesis.NewTable(sampleColumn)
	for rows.Next() {
		var id int64
		var v sql.NullFloat64
		if err := rows.Scan(&id, &v); err != nil {
			return nil, err
		}
		if v.Valid {
			if err := table.AddRow(id, v.Float64); err != nil {
				return nil, err
			}
		}
	}
	return table, rows.Err()
}

func fetchRunSamples(db *sql.DB, testRunID int64) (*hypothesis.Table, error) {
	page, perPage, err := fetchTaskWindow(db, testRunID)
	if err != nil {
		return nil, fmt.Errorf("task window for test_run %d: %w", testRunID, err)
	}
	return fetchSamples(db, page, perPage)
}

func windowLimitOffset(page, perPage int) (limit, offset int) {
	pp := perPage
	if pp <= 0 {
		pp = 1
	}
	pg := page
	if pg <= 0 {
		pg = 1
	}
	return pp, (pg - 1) * pp
}

func normalizePositiveInt(value int64, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return int(value)
}

func insertComparisonResult(db *sql.DB, comparisonID int64, c Comparison, durationSeconds float64, memoryBytes float64) error {
	const q = `
INSERT INTO comparison_results
  (comparison_id, mean_a, mean_b, welch_t, welch_df, p_value, two_sided, cohens_d, effect,
   mean_diff_low, mean_diff_high, removed_a, removed_b, duration, memory, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,NOW(),NOW())
`
	_, err := db.Exec(q,
		comparisonID,
		c.MeanA, c.MeanB,
		nullableFloat(c.Test.T), nullableFloat(c.Test.DF), nullableFloat(c.Test.P), c.Test.TwoSided,
		nullableFloat(c.CohensD), c.Effect.String(),
		c.DiffLow, c.DiffHigh, c.RemovedA, c.RemovedB,
		durationSeconds, memoryBytes,
	)
	return err
}

// nullableFloat maps NaN and infinities, which Postgres numeric columns
// reject, to NULL.
func nullableFloat(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
