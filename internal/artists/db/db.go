package db

import (
	"context"
	"time"

	"fyyur/internal/database"
	"fyyur/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

var artistColumns = []string{
	"name", "city", "state", "phone", "genres", "image_link",
	"facebook_link", "website", "seeking_venue", "seeking_description",
}

// ---------------- ARTISTS ----------------

// CreateArtist inserts a and returns the id the database assigned.
func (d *DB) CreateArtist(ctx context.Context, a *models.Artist) (int64, error) {
	err := d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(a).Exec(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}

func (d *DB) GetArtistByID(ctx context.Context, id int64) (*models.Artist, error) {
	var artist models.Artist
	err := d.Bun.NewSelect().
		Model(&artist).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, database.NotFound(err)
	}
	return &artist, nil
}

// UpdateArtist overwrites every editable column of the artist with a.ID.
func (d *DB) UpdateArtist(ctx context.Context, a *models.Artist) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(a).
			Column(artistColumns...).
			WherePK().
			Exec(ctx)
		if err != nil {
			return err
		}
		return database.RowsAffected(res)
	})
}

// ArtistExists reports whether an artist with id is stored. db may be the
// pool or an open transaction.
func ArtistExists(ctx context.Context, db bun.IDB, id int64) (bool, error) {
	return db.NewSelect().
		Model((*models.Artist)(nil)).
		Where("id = ?", id).
		Exists(ctx)
}

// ---------------- LISTINGS ----------------

// ListArtists returns every artist in insertion order.
func (d *DB) ListArtists(ctx context.Context, now time.Time) ([]models.ArtistSummary, error) {
	return d.SearchArtists(ctx, "", now)
}

// SearchArtists returns artists whose name, city or state contains term,
// ignoring case, in insertion order. An empty term matches every artist.
func (d *DB) SearchArtists(ctx context.Context, term string, now time.Time) ([]models.ArtistSummary, error) {
	q := d.Bun.NewSelect().
		Model((*models.Artist)(nil)).
		Column("id", "name").
		OrderExpr("?TableAlias.id ASC")

	if term != "" {
		pattern := database.ContainsPattern(term)
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("lower(?TableAlias.name) LIKE ? ESCAPE '"+database.LikeEscape+"'", pattern).
				WhereOr("lower(?TableAlias.city) LIKE ? ESCAPE '"+database.LikeEscape+"'", pattern).
				WhereOr("lower(?TableAlias.state) LIKE ? ESCAPE '"+database.LikeEscape+"'", pattern)
		})
	}

	artists := []models.ArtistSummary{}
	if err := q.Scan(ctx, &artists); err != nil {
		return nil, err
	}

	ids := make([]int64, len(artists))
	for i, a := range artists {
		ids[i] = a.ID
	}
	counts, err := d.CountUpcomingByArtist(ctx, ids, now)
	if err != nil {
		return nil, err
	}
	for i := range artists {
		artists[i].NumUpcomingShows = counts[artists[i].ID]
	}
	return artists, nil
}

// ListRecentArtists returns the limit most recently listed artists, newest first.
func (d *DB) ListRecentArtists(ctx context.Context, limit int) ([]models.ArtistSummary, error) {
	artists := []models.ArtistSummary{}
	err := d.Bun.NewSelect().
		Model((*models.Artist)(nil)).
		Column("id", "name").
		OrderExpr("?TableAlias.id DESC").
		Limit(limit).
		Scan(ctx, &artists)
	if err != nil {
		return nil, err
	}
	return artists, nil
}

// ---------------- SHOWS ----------------

// ShowsForArtist returns the artist's shows with their venues, by start time.
func (d *DB) ShowsForArtist(ctx context.Context, artistID int64) ([]*models.Show, error) {
	var shows []*models.Show
	err := d.Bun.NewSelect().
		Model(&shows).
		Relation("Venue").
		Where("?TableAlias.artist_id = ?", artistID).
		OrderExpr("?TableAlias.start_time ASC, ?TableAlias.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return shows, nil
}

// CountUpcomingByArtist counts, per artist id, the shows starting after now.
func (d *DB) CountUpcomingByArtist(ctx context.Context, ids []int64, now time.Time) (map[int64]int, error) {
	counts := make(map[int64]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		ArtistID int64 `bun:"artist_id"`
		Num      int   `bun:"num"`
	}
	err := d.Bun.NewSelect().
		Model((*models.Show)(nil)).
		ColumnExpr("?TableAlias.artist_id AS artist_id").
		ColumnExpr("count(*) AS num").
		Where("?TableAlias.artist_id IN (?)", bun.In(ids)).
		Where("?TableAlias.start_time > ?", now.UTC()).
		GroupExpr("?TableAlias.artist_id").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.ArtistID] = r.Num
	}
	return counts, nil
}
