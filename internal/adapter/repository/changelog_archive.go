package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/hugohenrick/emceep/pkg/logger"
)

// ArchiveFilter restringe a consulta ao arquivo do changelog
type ArchiveFilter struct {
	Type   event.ChangeType
	ItemID string
	Limit  int
}

// ChangelogArchive guarda uma cópia de cada entrada do changelog num banco
// SQLite, para consultas que não cabem no documento JSON.
type ChangelogArchive struct {
	db  *sql.DB
	log logger.Logger
	now func() time.Time
}

// NewChangelogArchive cria o arquivo sobre um banco já migrado
func NewChangelogArchive(db *sql.DB, log logger.Logger) *ChangelogArchive {
	return &ChangelogArchive{db: db, log: logger.OrNop(log), now: time.Now}
}

// Publish implementa event.ChangelogSink
func (a *ChangelogArchive) Publish(ctx context.Context, entry event.ChangelogEntry) error {
	if err := a.insert(ctx, a.db, entry); err != nil {
		return err
	}
	a.log.Debug("changelog entry archived", "entry_id", entry.ID, "type", entry.Type)
	return nil
}

// Backfill grava as entradas que ainda não estão no arquivo e retorna quantas
// foram inseridas.
func (a *ChangelogArchive) Backfill(ctx context.Context, entries []event.ChangelogEntry) (int, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	inserted := 0
	for _, entry := range entries {
		if entry.ID == "" {
			continue
		}
		res, err := a.insertOrIgnore(ctx, tx, entry)
		if err != nil {
			return 0, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("erro ao fazer commit: %w", err)
	}
	a.log.Info("changelog archive backfilled", "inserted", inserted, "total", len(entries))
	return inserted, nil
}

// List retorna as entradas arquivadas mais recentes primeiro
func (a *ChangelogArchive) List(ctx context.Context, filter ArchiveFilter) ([]event.ChangelogEntry, error) {
	var (
		where []string
		args  []any
	)
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.ItemID != "" {
		where = append(where, "item_id = ?")
		args = append(args, filter.ItemID)
	}

	query := "SELECT payload FROM changelog_archive"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY archived_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar arquivo do changelog: %w", err)
	}
	defer rows.Close()

	entries := make([]event.ChangelogEntry, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("erro ao ler entrada arquivada: %w", err)
		}
		var entry event.ChangelogEntry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			return nil, fmt.Errorf("erro ao decodificar entrada arquivada: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Count retorna quantas entradas existem por tipo
func (a *ChangelogArchive) Count(ctx context.Context) (map[event.ChangeType]int, error) {
	rows, err := a.db.QueryContext(ctx, "SELECT type, COUNT(*) FROM changelog_archive GROUP BY type")
	if err != nil {
		return nil, fmt.Errorf("erro ao contar entradas arquivadas: %w", err)
	}
	defer rows.Close()

	counts := make(map[event.ChangeType]int)
	for rows.Next() {
		var (
			changeType string
			n          int
		)
		if err := rows.Scan(&changeType, &n); err != nil {
			return nil, err
		}
		counts[event.ChangeType(changeType)] = n
	}
	return counts, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const archiveColumns = `(id, type, description, item_id, field, entry_key, old_value, new_value,
	person_id, message_sid, payload, occurred_at, archived_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (a *ChangelogArchive) insert(ctx context.Context, db execer, entry event.ChangelogEntry) error {
	args, err := a.archiveArgs(entry)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO changelog_archive "+archiveColumns, args...); err != nil {
		return fmt.Errorf("erro ao arquivar entrada %s: %w", entry.ID, err)
	}
	return nil
}

func (a *ChangelogArchive) insertOrIgnore(ctx context.Context, db execer, entry event.ChangelogEntry) (sql.Result, error) {
	args, err := a.archiveArgs(entry)
	if err != nil {
		return nil, err
	}
	res, err := db.ExecContext(ctx, "INSERT OR IGNORE INTO changelog_archive "+archiveColumns, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao arquivar entrada %s: %w", entry.ID, err)
	}
	return res, nil
}

func (a *ChangelogArchive) archiveArgs(entry event.ChangelogEntry) ([]any, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter entrada para JSON: %w", err)
	}
	return []any{
		entry.ID,
		string(entry.Type),
		nullable(entry.Description),
		nullable(entry.ItemID),
		nullable(entry.Field),
		nullable(entry.Key),
		nullable(event.Stringify(entry.OldValue)),
		nullable(event.Stringify(entry.NewValue)),
		nullable(detailString(entry.Details, "person_id")),
		nullable(detailString(entry.Details, "message_sid")),
		string(payload),
		entry.Timestamp,
		a.now().UnixNano(),
	}, nil
}

func detailString(details map[string]any, key string) string {
	if v, ok := details[key].(string); ok {
		return v
	}
	return ""
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ event.ChangelogSink = (*ChangelogArchive)(nil)
