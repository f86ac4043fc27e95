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

// editable columns, everything except the primary key
var venueColumns = []string{
	"name", "city", "state", "address", "phone", "image_link",
	"facebook_link", "website", "genres", "seeking_talent", "seeking_description",
}

// ---------------- VENUES ----------------

// CreateVenue inserts v and returns the id the database assigned.
func (d *DB) CreateVenue(ctx context.Context, v *models.Venue) (int64, error) {
	err := d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(v).Exec(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	return v.ID, nil
}

// GetVenueByID fetches one venue.
func (d *DB) GetVenueByID(ctx context.Context, id int64) (*models.Venue, error) {
	var venue models.Venue
	err := d.Bun.NewSelect().
		Model(&venue).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, database.NotFound(err)
	}
	return &venue, nil
}

// UpdateVenue overwrites every editable column of the venue with v.ID.
func (d *DB) UpdateVenue(ctx context.Context, v *models.Venue) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(v).
			Column(venueColumns...).
			WherePK().
			Exec(ctx)
		if err != nil {
			return err
		}
		return database.RowsAffected(res)
	})
}

// DeleteVenue removes a venue and its shows in one transaction.
func (d *DB) DeleteVenue(ctx context.Context, id int64) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := VenueExists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return models.ErrNotFound
		}

		if _, err := tx.NewDelete().
			Model((*models.Show)(nil)).
			Where("venue_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewDelete().
			Model((*models.Venue)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		return database.RowsAffected(res)
	})
}

// VenueExists reports whether a venue with id is stored. db may be the
// pool or an open transaction.
func VenueExists(ctx context.Context, db bun.IDB, id int64) (bool, error) {
	return db.NewSelect().
		Model((*models.Venue)(nil)).
		Where("id = ?", id).
		Exists(ctx)
}

// ---------------- LISTINGS ----------------

// ListVenueAreas groups every venue by city and state, ordered by city then
// state, each venue carrying its number of shows after now.
func (d *DB) ListVenueAreas(ctx context.Context, now time.Time) ([]models.Area, error) {
	var venues []models.VenueSummary
	err := d.Bun.NewSelect().
		Model((*models.Venue)(nil)).
		Column("id", "name", "city", "state").
		OrderExpr("?TableAlias.city ASC, ?TableAlias.state ASC, ?TableAlias.id ASC").
		Scan(ctx, &venues)
	if err != nil {
		return nil, err
	}
	if err := d.fillUpcoming(ctx, venues, now); err != nil {
		return nil, err
	}

	areas := []models.Area{}
	for _, v := range venues {
		n := len(areas)
		if n == 0 || areas[n-1].City != v.City || areas[n-1].State != v.State {
			areas = append(areas, models.Area{City: v.City, State: v.State})
			n++
		}
		areas[n-1].Venues = append(areas[n-1].Venues, v)
	}
	return areas, nil
}

// SearchVenues returns venues whose name, city or state contains term,
// ignoring case, in insertion order. An empty term matches every venue.
func (d *DB) SearchVenues(ctx context.Context, term string, now time.Time) ([]models.VenueSummary, error) {
	q := d.Bun.NewSelect().
		Model((*models.Venue)(nil)).
		Column("id", "name", "city", "state").
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

	venues := []models.VenueSummary{}
	if err := q.Scan(ctx, &venues); err != nil {
		return nil, err
	}
	if err := d.fillUpcoming(ctx, venues, now); err != nil {
		return nil, err
	}
	return venues, nil
}

// ListRecentVenues returns the limit most recently listed venues, newest first.
func (d *DB) ListRecentVenues(ctx context.Context, limit int) ([]models.VenueSummary, error) {
	venues := []models.VenueSummary{}
	err := d.Bun.NewSelect().
		Model((*models.Venue)(nil)).
		Column("id", "name", "city", "state").
		OrderExpr("?TableAlias.id DESC").
		Limit(limit).
		Scan(ctx, &venues)
	if err != nil {
		return nil, err
	}
	return venues, nil
}

// ---------------- SHOWS ----------------

// ShowsForVenue returns the venue's shows with their artists, by start time.
func (d *DB) ShowsForVenue(ctx context.Context, venueID int64) ([]*models.Show, error) {
	var shows []*models.Show
	err := d.Bun.NewSelect().
		Model(&shows).
		Relation("Artist").
		Where("?TableAlias.venue_id = ?", venueID).
		OrderExpr("?TableAlias.start_time ASC, ?TableAlias.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return shows, nil
}

// CountUpcomingByVenue counts, per venue id, the shows starting after now.
// Venues without upcoming shows are absent from the map.
func (d *DB) CountUpcomingByVenue(ctx context.Context, ids []int64, now time.Time) (map[int64]int, error) {
	counts := make(map[int64]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		VenueID int64 `bun:"venue_id"`
		Num     int   `bun:"num"`
	}
	err := d.Bun.NewSelect().
		Model((*models.Show)(nil)).
		ColumnExpr("?TableAlias.venue_id AS venue_id").
		ColumnExpr("count(*) AS num").
		Where("?TableAlias.venue_id IN (?)", bun.In(ids)).
		Where("?TableAlias.start_time > ?", now.UTC()).
		GroupExpr("?TableAlias.venue_id").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.VenueID] = r.Num
	}
	return counts, nil
}

func (d *DB) fillUpcoming(ctx context.Context, venues []models.VenueSummary, now time.Time) error {
	ids := make([]int64, len(venues))
	for i, v := range venues {
		ids[i] = v.ID
	}
	counts, err := d.CountUpcomingByVenue(ctx, ids, now)
	if err != nil {
		return err
	}
	for i := range venues {
		venues[i].NumUpcomingShows = counts[venues[i].ID]
	}
	return nil
}
