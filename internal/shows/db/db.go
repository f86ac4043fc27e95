package db

import (
	"context"

	artistdb "fyyur/internal/artists/db"
	"fyyur/internal/models"
	venuedb "fyyur/internal/venues/db"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

// CreateShow inserts s after checking, in the same transaction, that both
// the venue and the artist exist. A dangling id yields
// models.ErrInvalidReference and nothing is written.
func (d *DB) CreateShow(ctx context.Context, s *models.Show) (int64, error) {
	err := d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		venueOK, err := venuedb.VenueExists(ctx, tx, s.VenueID)
		if err != nil {
			return err
		}
		artistOK, err := artistdb.ArtistExists(ctx, tx, s.ArtistID)
		if err != nil {
			return err
		}
		if !venueOK || !artistOK {
			return models.ErrInvalidReference
		}

		s.StartTime = s.StartTime.UTC()
		_, err = tx.NewInsert().Model(s).Exec(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	return s.ID, nil
}

// ListShows returns every show with its venue and artist, by start time.
func (d *DB) ListShows(ctx context.Context) ([]*models.Show, error) {
	shows := []*models.Show{}
	err := d.Bun.NewSelect().
		Model(&shows).
		Relation("Venue").
		Relation("Artist").
		OrderExpr("?TableAlias.start_time ASC, ?TableAlias.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return shows, nil
}
