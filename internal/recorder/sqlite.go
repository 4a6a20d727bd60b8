package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"SignalSentinel/internal/model"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.SugaredLogger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.SugaredLogger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets readers query history while runs are being written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			source       TEXT,
			symbol       TEXT,
			range_label  TEXT,
			start_date   TEXT,
			end_date     TEXT,
			outcome      TEXT,
			status       TEXT,
			short_window INTEGER,
			long_window  INTEGER,
			points       INTEGER,
			buys         INTEGER,
			sells        INTEGER,
			last_close   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON analysis_runs(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol ON analysis_runs(symbol)`,

		`CREATE TABLE IF NOT EXISTS signal_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     INTEGER NOT NULL REFERENCES analysis_runs(id),
			bar_date   TEXT,
			side       TEXT,
			close      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_run ON signal_events(run_id)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT,
			side      TEXT,
			bar_date  TEXT,
			close     REAL,
			sent      INTEGER,
			note      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_key ON alerts(symbol, side, bar_date)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := rec.At
	if at.IsZero() {
		at = time.Now()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO analysis_runs
		(timestamp, source, symbol, range_label, start_date, end_date, outcome, status,
		 short_window, long_window, points, buys, sells, last_close)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		at.Unix(), rec.Source, rec.Symbol, rec.RangeLabel, rec.Start, rec.End, rec.Outcome, rec.Status,
		rec.ShortWindow, rec.LongWindow, rec.Points, rec.Buys, rec.Sells, rec.LastClose,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}
	for _, ev := range rec.Events {
		if _, err := tx.Exec(`INSERT INTO signal_events (run_id, bar_date, side, close) VALUES (?,?,?,?)`,
			runID, ev.Time.Format("2006-01-02"), string(ev.Side), ev.Close); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordAlert(evt *AlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sent := 0
	if evt.Sent {
		sent = 1
	}
	_, err := r.db.Exec(`INSERT INTO alerts
		(timestamp, symbol, side, bar_date, close, sent, note)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, string(evt.Side), evt.Date.Format("2006-01-02"),
		evt.Close, sent, evt.Note,
	)
	return err
}

func (r *SQLiteRecorder) AlertSent(symbol string, side model.Side, date time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM alerts WHERE symbol = ? AND side = ? AND bar_date = ? AND sent = 1`,
		symbol, string(side), date.Format("2006-01-02")).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
