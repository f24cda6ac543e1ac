package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("db: not found")

var errClosed = errors.New("database connection is closed")

// WorldDocument is a folder, actor or journal entry stored as JSON.
type WorldDocument struct {
	Kind     string
	ID       string
	Name     string
	FolderID string // empty for top-level documents
	Sort     int
	Data     string
}

// SceneDocument is a placeable (token, note, tile, sound) created on a scene.
type SceneDocument struct {
	ID        string
	SceneID   string
	Kind      string
	Data      string
	CreatedAt time.Time
}

// DropRecord is one row of drop_history.
type DropRecord struct {
	ID            int64
	CorrelationID string
	SceneID       string
	Handler       string // empty when no handler accepted the drop
	Handled       bool
	Status        string // "handled", "declined", "error"
	ErrorMessage  string
	DurationMS    int64
	CreatedAt     time.Time
}

// Drop statuses.
const (
	StatusHandled  = "handled"
	StatusDeclined = "declined"
	StatusError    = "error"
)

// Repository provides typed access to the tables. Drop records go through
// the AsyncWriter when one is started.
type Repository struct {
	db          *Database
	asyncWriter *AsyncWriter
	now         func() time.Time
}

// NewRepository wraps database. asyncWriter may be nil.
func NewRepository(database *Database, asyncWriter *AsyncWriter) *Repository {
	return &Repository{db: database, asyncWriter: asyncWriter, now: time.Now}
}

// PutWorldDocument inserts or replaces a world document.
func (r *Repository) PutWorldDocument(ctx context.Context, doc WorldDocument) error {
	if r.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	_, err := r.db.exec(ctx, `
		INSERT INTO world_documents (kind, id, name, folder_id, sort, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (kind, id) DO UPDATE SET
			name = excluded.name,
			folder_id = excluded.folder_id,
			sort = excluded.sort,
			data = excluded.data`,
		doc.Kind, doc.ID, doc.Name, doc.FolderID, doc.Sort, doc.Data, r.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to put %s %s: %w", doc.Kind, doc.ID, err)
	}
	return nil
}

// GetWorldDocument returns ErrNotFound when kind/id does not exist.
func (r *Repository) GetWorldDocument(ctx context.Context, kind, id string) (WorldDocument, error) {
	if r.db == nil {
		return WorldDocument{}, fmt.Errorf("database connection is nil")
	}
	doc := WorldDocument{Kind: kind, ID: id}
	err := r.db.queryRow(ctx, []any{&doc.Name, &doc.FolderID, &doc.Sort, &doc.Data}, `
		SELECT name, folder_id, sort, data FROM world_documents WHERE kind = ? AND id = ?`,
		kind, id)
	if errors.Is(err, sql.ErrNoRows) {
		return WorldDocument{}, fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		return WorldDocument{}, fmt.Errorf("failed to get %s %s: %w", kind, id, err)
	}
	return doc, nil
}

// ListWorldDocuments returns the documents of kind inside folderID, in sort order.
// An empty kind matches every kind.
func (r *Repository) ListWorldDocuments(ctx context.Context, folderID, kind string) ([]WorldDocument, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	rows, err := r.db.query(ctx, `
		SELECT kind, id, name, folder_id, sort, data
		FROM world_documents
		WHERE folder_id = ? AND (? = '' OR kind = ?)
		ORDER BY sort, rowid`,
		folderID, kind, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query world documents: %w", err)
	}
	defer rows.Close()

	var docs []WorldDocument
	for rows.Next() {
		var doc WorldDocument
		if err := rows.Scan(&doc.Kind, &doc.ID, &doc.Name, &doc.FolderID, &doc.Sort, &doc.Data); err != nil {
			return nil, fmt.Errorf("failed to scan world document row: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating world document rows: %w", err)
	}
	return docs, nil
}

// InsertSceneDocument stores one placeable.
func (r *Repository) InsertSceneDocument(ctx context.Context, doc SceneDocument) error {
	if r.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	_, err := r.db.exec(ctx, `
		INSERT INTO scene_documents (id, scene_id, kind, data, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		doc.ID, doc.SceneID, doc.Kind, doc.Data, r.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert %s %s: %w", doc.Kind, doc.ID, err)
	}
	return nil
}

// ListSceneDocuments returns the placeables of sceneID in creation order.
// An empty kind matches every kind.
func (r *Repository) ListSceneDocuments(ctx context.Context, sceneID, kind string) ([]SceneDocument, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	rows, err := r.db.query(ctx, `
		SELECT id, scene_id, kind, data, created_at
		FROM scene_documents
		WHERE scene_id = ? AND (? = '' OR kind = ?)
		ORDER BY rowid`,
		sceneID, kind, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query scene documents: %w", err)
	}
	defer rows.Close()

	var docs []SceneDocument
	for rows.Next() {
		var doc SceneDocument
		var createdAt int64
		if err := rows.Scan(&doc.ID, &doc.SceneID, &doc.Kind, &doc.Data, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan scene document row: %w", err)
		}
		doc.CreatedAt = time.UnixMilli(createdAt)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scene document rows: %w", err)
	}
	return docs, nil
}

// GetSetting reads a client setting. ok is false when it was never set.
func (r *Repository) GetSetting(ctx context.Context, scope, userID, key string) (value string, ok bool, err error) {
	if r.db == nil {
		return "", false, fmt.Errorf("database connection is nil")
	}
	err = r.db.queryRow(ctx, []any{&value}, `
		SELECT value FROM client_settings WHERE scope = ? AND user_id = ? AND key = ?`,
		scope, userID, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, true, nil
}

// PutSetting writes a client setting, replacing any previous value.
func (r *Repository) PutSetting(ctx context.Context, scope, userID, key, value string) error {
	if r.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	_, err := r.db.exec(ctx, `
		INSERT INTO client_settings (scope, user_id, key, value, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (scope, user_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		scope, userID, key, value, r.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// InsertDropRecord records a dispatch outcome. When the async writer is
// running and has room the write is queued and the returned id is 0.
func (r *Repository) InsertDropRecord(ctx context.Context, rec DropRecord) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.now()
	}

	if r.asyncWriter != nil && r.asyncWriter.IsStarted() {
		if r.asyncWriter.Write(rec) {
			return 0, nil
		}
		// full; fall through to a synchronous insert
	}
	return r.insertDropRecord(ctx, rec)
}

func (r *Repository) insertDropRecord(ctx context.Context, rec DropRecord) (int64, error) {
	result, err := r.db.exec(ctx, `
		INSERT INTO drop_history (
			correlation_id, scene_id, handler, handled, status,
			error_message, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.CorrelationID, rec.SceneID, rec.Handler, rec.Handled, rec.Status,
		rec.ErrorMessage, rec.DurationMS, rec.CreatedAt.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to insert drop record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return id, nil
}

// WriteDropRecord is the AsyncWriter handler for queued drop records.
func (r *Repository) WriteDropRecord(op WriteOperation) error {
	rec, ok := op.Data.(DropRecord)
	if !ok {
		return fmt.Errorf("unexpected write payload %T", op.Data)
	}
	_, err := r.insertDropRecord(context.Background(), rec)
	return err
}

// QueryRecentDrops returns the newest drop records first. limit <= 0 means 10.
func (r *Repository) QueryRecentDrops(ctx context.Context, limit int) ([]DropRecord, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.query(ctx, `
		SELECT id, correlation_id, scene_id, handler, handled, status,
			   error_message, duration_ms, created_at
		FROM drop_history
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query drop history: %w", err)
	}
	defer rows.Close()
	return scanDropRecords(rows)
}

// QueryDropsByCorrelationID returns the records of one dispatch.
func (r *Repository) QueryDropsByCorrelationID(ctx context.Context, correlationID string) ([]DropRecord, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	rows, err := r.db.query(ctx, `
		SELECT id, correlation_id, scene_id, handler, handled, status,
			   error_message, duration_ms, created_at
		FROM drop_history
		WHERE correlation_id = ?
		ORDER BY id`, correlationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query drop history: %w", err)
	}
	defer rows.Close()
	return scanDropRecords(rows)
}

func scanDropRecords(rows *sql.Rows) ([]DropRecord, error) {
	var records []DropRecord
	for rows.Next() {
		var rec DropRecord
		var createdAt int64
		err := rows.Scan(
			&rec.ID,
			&rec.CorrelationID,
			&rec.SceneID,
			&rec.Handler,
			&rec.Handled,
			&rec.Status,
			&rec.ErrorMessage,
			&rec.DurationMS,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan drop history row: %w", err)
		}
		rec.CreatedAt = time.UnixMilli(createdAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drop history rows: %w", err)
	}
	return records, nil
}
