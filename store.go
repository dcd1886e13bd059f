package main

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DeliveryStore is the append-only log of every ball bowled. Entries get a
// per-match monotonic sequence number on append and are never updated or
// deleted. The live innings and player figures are a materialized view over
// this log and must stay reproducible from it.
type DeliveryStore interface {
	// AppendDelivery stores the delivery and returns it with Seq assigned.
	AppendDelivery(ctx context.Context, d Delivery) (Delivery, error)
	// ListDeliveries returns a match's deliveries ordered by
	// (innings, over, ball). Pass innings 0 for all innings.
	ListDeliveries(ctx context.Context, matchID, innings int) ([]Delivery, error)
	// CountDeliveries reports the total number of stored deliveries.
	CountDeliveries(ctx context.Context) (int, error)
	Close() error
}

func orderDeliveries(list []Delivery) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].InningsNumber != list[j].InningsNumber {
			return list[i].InningsNumber < list[j].InningsNumber
		}
		if list[i].OverNumber != list[j].OverNumber {
			return list[i].OverNumber < list[j].OverNumber
		}
		if list[i].BallNumber != list[j].BallNumber {
			return list[i].BallNumber < list[j].BallNumber
		}
		return list[i].Seq < list[j].Seq
	})
}

// memoryDeliveryStore keeps the log in process memory. It is the default
// when no DATABASE_PATH is configured and the backend for tests.
type memoryDeliveryStore struct {
	mu   sync.Mutex
	logs map[int][]Delivery
}

func newMemoryDeliveryStore() *memoryDeliveryStore {
	return &memoryDeliveryStore{logs: make(map[int][]Delivery)}
}

func (s *memoryDeliveryStore) AppendDelivery(_ context.Context, d Delivery) (Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.Seq = int64(len(s.logs[d.MatchID]) + 1)
	if d.RecordedAt.IsZero() {
		d.RecordedAt = time.Now().UTC()
	}
	s.logs[d.MatchID] = append(s.logs[d.MatchID], d)
	return d, nil
}

func (s *memoryDeliveryStore) ListDeliveries(_ context.Context, matchID, innings int) ([]Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]Delivery, 0, len(s.logs[matchID]))
	for _, d := range s.logs[matchID] {
		if innings != 0 && d.InningsNumber != innings {
			continue
		}
		list = append(list, d)
	}
	orderDeliveries(list)
	return list, nil
}

func (s *memoryDeliveryStore) CountDeliveries(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, log := range s.logs {
		total += len(log)
	}
	return total, nil
}

func (s *memoryDeliveryStore) Close() error { return nil }

// sqliteDeliveryStore persists the log with modernc.org/sqlite so an
// interrupted match can be replayed and audited after a restart.
type sqliteDeliveryStore struct {
	db *sql.DB
}

const deliverySchema = `
CREATE TABLE IF NOT EXISTS deliveries (
	match_id         INTEGER NOT NULL,
	seq              INTEGER NOT NULL,
	innings_number   INTEGER NOT NULL,
	over_number      INTEGER NOT NULL,
	ball_number      INTEGER NOT NULL,
	bowler_id        INTEGER NOT NULL,
	striker_id       INTEGER NOT NULL,
	non_striker_id   INTEGER NOT NULL DEFAULT 0,
	runs_scored      INTEGER NOT NULL DEFAULT 0,
	extra_type       TEXT    NOT NULL DEFAULT 'none',
	extra_runs       INTEGER NOT NULL DEFAULT 0,
	is_wicket        INTEGER NOT NULL DEFAULT 0,
	wicket_type      TEXT    NOT NULL DEFAULT '',
	wicket_player_id INTEGER NOT NULL DEFAULT 0,
	recorded_at      INTEGER NOT NULL,
	PRIMARY KEY (match_id, seq)
);
CREATE INDEX IF NOT EXISTS idx_deliveries_order
	ON deliveries (match_id, innings_number, over_number, ball_number);
`

func openSQLiteDeliveryStore(path string) (*sqliteDeliveryStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(deliverySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &sqliteDeliveryStore{db: db}, nil
}

func (s *sqliteDeliveryStore) AppendDelivery(ctx context.Context, d Delivery) (Delivery, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Delivery{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var next int64
	row := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM deliveries WHERE match_id = ?", d.MatchID)
	if err := row.Scan(&next); err != nil {
		return Delivery{}, fmt.Errorf("next seq: %w", err)
	}
	d.Seq = next
	if d.RecordedAt.IsZero() {
		d.RecordedAt = time.Now().UTC()
	}

	wicket := 0
	if d.IsWicket {
		wicket = 1
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO deliveries (
			match_id, seq, innings_number, over_number, ball_number,
			bowler_id, striker_id, non_striker_id, runs_scored,
			extra_type, extra_runs, is_wicket, wicket_type,
			wicket_player_id, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.MatchID, d.Seq, d.InningsNumber, d.OverNumber, d.BallNumber,
		d.BowlerID, d.StrikerID, d.NonStrikerID, d.RunsScored,
		d.ExtraType, d.ExtraRuns, wicket, d.WicketType,
		d.WicketPlayerID, d.RecordedAt.UnixMilli(),
	); err != nil {
		return Delivery{}, fmt.Errorf("append delivery: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Delivery{}, fmt.Errorf("commit: %w", err)
	}
	return d, nil
}

func (s *sqliteDeliveryStore) ListDeliveries(ctx context.Context, matchID, innings int) ([]Delivery, error) {
	query := `
		SELECT match_id, seq, innings_number, over_number, ball_number,
			bowler_id, striker_id, non_striker_id, runs_scored,
			extra_type, extra_runs, is_wicket, wicket_type,
			wicket_player_id, recorded_at
		FROM deliveries
		WHERE match_id = ?`
	args := []any{matchID}
	if innings != 0 {
		query += " AND innings_number = ?"
		args = append(args, innings)
	}
	query += " ORDER BY innings_number, over_number, ball_number, seq"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var list []Delivery
	for rows.Next() {
		var (
			d        Delivery
			wicket   int
			recorded int64
		)
		if err := rows.Scan(
			&d.MatchID, &d.Seq, &d.InningsNumber, &d.OverNumber, &d.BallNumber,
			&d.BowlerID, &d.StrikerID, &d.NonStrikerID, &d.RunsScored,
			&d.ExtraType, &d.ExtraRuns, &wicket, &d.WicketType,
			&d.WicketPlayerID, &recorded,
		); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d.IsWicket = wicket != 0
		d.RecordedAt = time.UnixMilli(recorded).UTC()
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deliveries: %w", err)
	}
	return list, nil
}

func (s *sqliteDeliveryStore) CountDeliveries(ctx context.Context) (int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM deliveries").Scan(&total); err != nil {
		return 0, fmt.Errorf("count deliveries: %w", err)
	}
	return total, nil
}

func (s *sqliteDeliveryStore) Close() error {
	return s.db.Close()
}
