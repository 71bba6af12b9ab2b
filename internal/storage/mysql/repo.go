// Package mysql serves the Hostaway export from a MySQL table, for
// deployments that load the dataset into a database instead of shipping the
// JSON file. It holds raw source records only.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"flex_reviews/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// UpsertRaw loads export records into the table. Used by seeding, not by the
// serving path (the API is read-only).
func (r *Repo) UpsertRaw(ctx context.Context, rs []domain.HostawayReview) error {
	for _, rec := range rs {
		cats, err := json.Marshal(rec.ReviewCategory)
		if err != nil {
			return fmt.Errorf("marshal categories for %d: %w", rec.ID, err)
		}
		var rating any
		if rec.Rating != nil {
			rating = *rec.Rating
		}
		if _, err := r.db.ExecContext(ctx, upsertRawSQL,
			rec.ID,
			rec.Type,
			rec.Status,
			rating,
			rec.PublicReview,
			string(cats),
			rec.SubmittedAt,
			rec.GuestName,
			rec.ListingName,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) ListRaw(ctx context.Context) ([]domain.HostawayReview, error) {
	rows, err := r.db.QueryContext(ctx, listRawSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	defer rows.Close()

	var out []domain.HostawayReview
	for rows.Next() {
		var (
			rec    domain.HostawayReview
			rating sql.NullFloat64
			cats   sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Type, &rec.Status, &rating, &rec.PublicReview, &cats, &rec.SubmittedAt, &rec.GuestName, &rec.ListingName); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", domain.ErrDataUnavailable, err)
		}
		if rating.Valid {
			v := rating.Float64
			rec.Rating = &v
		}
		if cats.Valid && cats.String != "" {
			if err := json.Unmarshal([]byte(cats.String), &rec.ReviewCategory); err != nil {
				return nil, fmt.Errorf("%w: categories for %d: %v", domain.ErrDataUnavailable, rec.ID, err)
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	return out, nil
}
