package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// FileName is the journal database inside the data directory
const FileName = "journal.db"

// Store is the sqlite backed action journal.
// The database is opened and migrated on first use.
type Store struct {
	path string

	once    sync.Once
	db      *sql.DB
	openErr error
}

// NewStore creates a journal stored under the runtime data directory
func NewStore(cfg *config.RuntimeConfig) (*Store, func()) {
	s := &Store{path: filepath.Join(cfg.DataDir, FileName)}
	return s, s.Close
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

func (s *Store) conn() (*sql.DB, error) {
	s.once.Do(func() {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			s.openErr = fmt.Errorf("failed to create data directory: %w", err)
			return
		}
		dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", s.path)
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			s.openErr = fmt.Errorf("failed to open journal: %w", err)
			return
		}
		if err := migrate(db); err != nil {
			db.Close()
			s.openErr = fmt.Errorf("failed to migrate journal: %w", err)
			return
		}
		s.db = db
	})
	return s.db, s.openErr
}

// Close closes the database if it was opened
func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// Create inserts a new record, assigning an ID when missing
func (s *Store) Create(ctx context.Context, record *models.ActionRecord) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = record.CreatedAt
	}

	_, err = db.ExecContext(ctx, `INSERT INTO actions(id, kind, state, safeguard, sender, tx_hash, summary, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, string(record.Kind), string(record.State), record.SafeGuard.Hex(), record.Sender.Hex(),
		txHashColumn(record.TxHash), record.Summary, record.Error,
		record.CreatedAt.UnixMilli(), record.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert action: %w", err)
	}
	return nil
}

// Update persists the mutable fields of an existing record
func (s *Store) Update(ctx context.Context, record *models.ActionRecord) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}

	res, err := db.ExecContext(ctx, `UPDATE actions SET state=?, sender=?, tx_hash=?, error=?, updated_at=? WHERE id=?`,
		string(record.State), record.Sender.Hex(), txHashColumn(record.TxHash), record.Error,
		record.UpdatedAt.UnixMilli(), record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update action: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: action %s", domain.ErrNotFound, record.ID)
	}
	return nil
}

// List returns records newest first
func (s *Store) List(ctx context.Context, filter usecase.ActionFilter) ([]models.ActionRecord, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	query := `SELECT id, kind, state, safeguard, sender, tx_hash, summary, error, created_at, updated_at FROM actions`
	var args []any
	if filter.State != "" {
		query += ` WHERE state = ?`
		args = append(args, string(filter.State))
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	defer rows.Close()

	var records []models.ActionRecord
	for rows.Next() {
		var (
			r                    models.ActionRecord
			kind, state          string
			safeGuard, sender    string
			txHash               string
			createdAt, updatedAt int64
		)
		if err := rows.Scan(&r.ID, &kind, &state, &safeGuard, &sender, &txHash, &r.Summary, &r.Error, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		r.Kind = models.ActionKind(kind)
		r.State = models.ActionState(state)
		r.SafeGuard = common.HexToAddress(safeGuard)
		r.Sender = common.HexToAddress(sender)
		if txHash != "" {
			r.TxHash = common.HexToHash(txHash)
		}
		r.CreatedAt = time.UnixMilli(createdAt).UTC()
		r.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}

func txHashColumn(h common.Hash) string {
	if h == (common.Hash{}) {
		return ""
	}
	return h.Hex()
}

var _ usecase.ActionJournal = (*Store)(nil)
