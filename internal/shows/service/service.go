package shows

import (
	"context"
	"errors"
	"fmt"

	"fyyur/internal/events"
	"fyyur/internal/logger"
	"fyyur/internal/models"
)

type ShowDBLayer interface {
	CreateShow(ctx context.Context, s *models.Show) (int64, error)
	ListShows(ctx context.Context) ([]*models.Show, error)
}

type ShowService struct {
	DB     ShowDBLayer
	Events events.Publisher
	Logger *logger.Logger
}

func NewShowService(db ShowDBLayer, pub events.Publisher, log *logger.Logger) *ShowService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &ShowService{DB: db, Events: pub, Logger: log}
}

// CreateShow books an artist at a venue. Unknown venue or artist ids are
// reported as models.ErrInvalidReference.
func (s *ShowService) CreateShow(ctx context.Context, show *models.Show) (int64, error) {
	id, err := s.DB.CreateShow(ctx, show)
	if err != nil {
		if errors.Is(err, models.ErrInvalidReference) {
			return 0, fmt.Errorf("venue %d or artist %d does not exist: %w", show.VenueID, show.ArtistID, err)
		}
		return 0, fmt.Errorf("failed to create show: %w", err)
	}

	if s.Logger != nil {
		s.Logger.LogListing("CREATE", "show", id, fmt.Sprintf("artist %d at venue %d", show.ArtistID, show.VenueID))
	}
	events.Emit(ctx, s.Events, s.Logger, events.New(events.ShowCreated, id, "", show))
	return id, nil
}

// ListShows returns every show flattened for the shows page.
func (s *ShowService) ListShows(ctx context.Context) ([]models.ShowRow, error) {
	shows, err := s.DB.ListShows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shows: %w", err)
	}

	rows := make([]models.ShowRow, 0, len(shows))
	for _, sh := range shows {
		row := models.ShowRow{
			ID:        sh.ID,
			VenueID:   sh.VenueID,
			ArtistID:  sh.ArtistID,
			StartTime: sh.StartTime,
		}
		if sh.Venue != nil {
			row.VenueName = sh.Venue.Name
		}
		if sh.Artist != nil {
			row.ArtistName = sh.Artist.Name
			row.ArtistImageLink = sh.Artist.ImageLink
		}
		rows = append(rows, row)
	}
	return rows, nil
}
