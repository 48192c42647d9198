package sqlite

import (
	"database/sql"
	"time"

	"github.com/abayate/earthwise/internal/domain"
)

// ─── Notices ────────────────────────────────────────────────────────────────

// InsertNotice stores a notice and prunes the log to NoticesLimit
// newest rows. Returns the notice id.
func (d *DB) InsertNotice(n domain.Notice) (int64, error) {
	var href sql.NullString
	if n.Href != "" {
		href = sql.NullString{String: n.Href, Valid: true}
	}
	result, err := d.db.Exec(
		`INSERT INTO notices (type, title, body, href, created_at, shown)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		string(n.Type), n.Title, n.Body, href, n.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "insert notice", Err: err}
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, &domain.PersistenceError{Op: "insert notice", Err: err}
	}

	_, err = d.db.Exec(
		`DELETE FROM notices WHERE id NOT IN
		 (SELECT id FROM notices ORDER BY id DESC LIMIT ?)`,
		NoticesLimit,
	)
	if err != nil {
		return id, &domain.PersistenceError{Op: "prune notices", Err: err}
	}
	return id, nil
}

// ListPendingNotices returns unshown notices, oldest first.
func (d *DB) ListPendingNotices(limit int) ([]domain.Notice, error) {
	if limit <= 0 {
		limit = NoticesLimit
	}
	rows, err := d.db.Query(
		`SELECT id, type, title, body, href, created_at, shown
		 FROM notices WHERE shown = 0 ORDER BY id ASC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list notices", Err: err}
	}
	defer rows.Close()

	var notices []domain.Notice
	for rows.Next() {
		var n domain.Notice
		var typ string
		var href sql.NullString
		var createdAt int64
		if err := rows.Scan(&n.ID, &typ, &n.Title, &n.Body, &href, &createdAt, &n.Shown); err != nil {
			return nil, &domain.PersistenceError{Op: "scan notice", Err: err}
		}
		n.Type = domain.NoticeType(typ)
		n.Href = href.String
		n.CreatedAt = time.Unix(createdAt, 0)
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

// MarkNoticeShown marks a notice as shown (auto-dismiss).
func (d *DB) MarkNoticeShown(id int64) error {
	result, err := d.db.Exec(`UPDATE notices SET shown = 1 WHERE id = ?`, id)
	if err != nil {
		return &domain.PersistenceError{Op: "mark notice", Err: err}
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrNoticeNotFound
	}
	return nil
}
