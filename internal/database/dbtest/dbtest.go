// Package dbtest provides an in-memory SQLite bun.DB carrying the fyyur
// schema, for store, service and handler tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"fyyur/internal/models"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// New returns a fresh database with the venues, artists and shows tables.
// It is closed when the test ends.
func New(t testing.TB) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	// every pooled connection would otherwise get its own empty database
	sqldb.SetMaxOpenConns(1)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { bunDB.Close() })

	ctx := context.Background()
	if _, err := bunDB.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	for _, m := range []interface{}{(*models.Venue)(nil), (*models.Artist)(nil)} {
		if _, err := bunDB.NewCreateTable().Model(m).Exec(ctx); err != nil {
			t.Fatalf("Failed to create table for %T: %v", m, err)
		}
	}
	if _, err := bunDB.NewCreateTable().Model((*models.Show)(nil)).WithForeignKeys().Exec(ctx); err != nil {
		t.Fatalf("Failed to create shows table: %v", err)
	}

	return bunDB
}

// Venue inserts a venue with defaults for any field left empty.
func Venue(t testing.TB, db *bun.DB, v models.Venue) *models.Venue {
	t.Helper()
	if v.Name == "" {
		v.Name = "The Musical Hop"
	}
	if v.City == "" {
		v.City = "San Francisco"
	}
	if v.State == "" {
		v.State = "CA"
	}
	if v.Address == "" {
		v.Address = "1015 Folsom Street"
	}
	if v.Genres == nil {
		v.Genres = []string{"Jazz"}
	}
	if _, err := db.NewInsert().Model(&v).Exec(context.Background()); err != nil {
		t.Fatalf("Failed to insert venue: %v", err)
	}
	return &v
}

// Artist inserts an artist with defaults for any field left empty.
func Artist(t testing.TB, db *bun.DB, a models.Artist) *models.Artist {
	t.Helper()
	if a.Name == "" {
		a.Name = "Guns N Petals"
	}
	if a.City == "" {
		a.City = "San Francisco"
	}
	if a.State == "" {
		a.State = "CA"
	}
	if a.Genres == nil {
		a.Genres = []string{"Rock n Roll"}
	}
	if _, err := db.NewInsert().Model(&a).Exec(context.Background()); err != nil {
		t.Fatalf("Failed to insert artist: %v", err)
	}
	return &a
}

// Show inserts a show linking venueID and artistID at start.
func Show(t testing.TB, db *bun.DB, venueID, artistID int64, start time.Time) *models.Show {
	t.Helper()
	s := &models.Show{VenueID: venueID, ArtistID: artistID, StartTime: start.UTC()}
	if _, err := db.NewInsert().Model(s).Exec(context.Background()); err != nil {
		t.Fatalf("Failed to insert show: %v", err)
	}
	return s
}
