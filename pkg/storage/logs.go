package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// AppendLog records an unsafe verdict. Logs are append-only: nothing
// in this package updates or deletes individual entries.
func (d *DB) AppendLog(ctx context.Context, l ContentLog) (ContentLog, error) {
	l.ID = uuid.New().String()
	if l.DetectedAt.IsZero() {
		l.DetectedAt = time.Now().UTC()
	}

	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO content_logs(id, profile_id, content_type, detected_at, is_safe, confidence, reasons, content_snippet, url)
		 VALUES(?,?,?,?,?,?,?,?,?)`,
		l.ID, l.ProfileID, l.ContentType, formatTime(l.DetectedAt),
		boolToInt(l.IsSafe), l.Confidence, encodeList(l.Reasons), l.ContentSnippet, nullIfEmpty(l.URL))
	if err != nil {
		return ContentLog{}, err
	}
	return l, nil
}

// ListLogsOptions controls selection when listing logs. ParentID is
// mandatory and scopes every query to that parent's profiles.
type ListLogsOptions struct {
	ParentID  string
	ProfileID string
	Keyword   string
	Limit     int
}

// ListLogs returns logs for a parent's profiles, newest first.
func (d *DB) ListLogs(ctx context.Context, opts ListLogsOptions) ([]ContentLog, error) {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}

	where := "WHERE p.parent_id = ?"
	args := []interface{}{opts.ParentID}
	if opts.ProfileID != "" {
		where += " AND l.profile_id = ?"
		args = append(args, opts.ProfileID)
	}
	if opts.Keyword != "" {
		where += " AND (l.content_snippet LIKE ? OR l.reasons LIKE ? OR l.url LIKE ?)"
		pattern := "%" + opts.Keyword + "%"
		args = append(args, pattern, pattern, pattern)
	}
	args = append(args, opts.Limit)

	q := `SELECT l.id, l.profile_id, p.name, l.content_type, l.detected_at, l.is_safe, l.confidence, l.reasons, l.content_snippet, l.url
	      FROM content_logs l JOIN profiles p ON p.id = l.profile_id ` +
		where + ` ORDER BY l.detected_at DESC, l.id LIMIT ?`

	rows, err := d.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []ContentLog{}
	for rows.Next() {
		var (
			l          ContentLog
			detectedAt string
			isSafe     int
			reasons    string
			urlNS      sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.ProfileID, &l.ProfileName, &l.ContentType, &detectedAt,
			&isSafe, &l.Confidence, &reasons, &l.ContentSnippet, &urlNS); err != nil {
			return nil, err
		}
		l.DetectedAt = parseTime(detectedAt)
		l.IsSafe = isSafe == 1
		l.Reasons = decodeList(reasons)
		l.URL = urlNS.String
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// GetStats counts logged detections per profile, across all parents.
func (d *DB) GetStats(ctx context.Context) ([]ProfileStats, error) {
	rows, err := d.sql.QueryContext(ctx, `
		SELECT p.id, p.name, COUNT(l.id)
		FROM profiles p
		LEFT JOIN content_logs l ON l.profile_id = p.id
		GROUP BY p.id, p.name
		ORDER BY p.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []ProfileStats
	for rows.Next() {
		var s ProfileStats
		if err := rows.Scan(&s.ProfileID, &s.ProfileName, &s.Detections); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
