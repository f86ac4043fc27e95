package artists

import (
	"context"
	"fmt"
	"time"

	"fyyur/internal/events"
	"fyyur/internal/logger"
	"fyyur/internal/models"
	"fyyur/internal/schedule"
)

type ArtistDBLayer interface {
	CreateArtist(ctx context.Context, a *models.Artist) (int64, error)
	GetArtistByID(ctx context.Context, id int64) (*models.Artist, error)
	UpdateArtist(ctx context.Context, a *models.Artist) error
	ListArtists(ctx context.Context, now time.Time) ([]models.ArtistSummary, error)
	SearchArtists(ctx context.Context, term string, now time.Time) ([]models.ArtistSummary, error)
	ListRecentArtists(ctx context.Context, limit int) ([]models.ArtistSummary, error)
	ShowsForArtist(ctx context.Context, artistID int64) ([]*models.Show, error)
}

type ArtistService struct {
	DB     ArtistDBLayer
	Events events.Publisher
	Logger *logger.Logger
	Now    func() time.Time
}

func NewArtistService(db ArtistDBLayer, pub events.Publisher, log *logger.Logger) *ArtistService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &ArtistService{DB: db, Events: pub, Logger: log, Now: time.Now}
}

func (s *ArtistService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *ArtistService) CreateArtist(ctx context.Context, a *models.Artist) (int64, error) {
	id, err := s.DB.CreateArtist(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("failed to create artist %q: %w", a.Name, err)
	}
	if s.Logger != nil {
		s.Logger.LogListing("CREATE", "artist", id, a.Name)
	}
	events.Emit(ctx, s.Events, s.Logger, events.New(events.ArtistCreated, id, a.Name, a))
	return id, nil
}

// GetArtist loads an artist with its shows split into past and upcoming.
func (s *ArtistService) GetArtist(ctx context.Context, id int64) (*models.ArtistDetail, error) {
	artist, err := s.FindArtist(ctx, id)
	if err != nil {
		return nil, err
	}

	shows, err := s.DB.ShowsForArtist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load shows of artist %d: %w", id, err)
	}

	upcoming, past := schedule.Split(s.now(), schedule.ForArtist(shows))
	return &models.ArtistDetail{
		Artist:             *artist,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

func (s *ArtistService) FindArtist(ctx context.Context, id int64) (*models.Artist, error) {
	artist, err := s.DB.GetArtistByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("artist %d: %w", id, err)
	}
	return artist, nil
}

func (s *ArtistService) UpdateArtist(ctx context.Context, a *models.Artist) error {
	if err := s.DB.UpdateArtist(ctx, a); err != nil {
		return fmt.Errorf("failed to update artist %d: %w", a.ID, err)
	}
	if s.Logger != nil {
		s.Logger.LogListing("UPDATE", "artist", a.ID, a.Name)
	}
	events.Emit(ctx, s.Events, s.Logger, events.New(events.ArtistUpdated, a.ID, a.Name, a))
	return nil
}

func (s *ArtistService) ListArtists(ctx context.Context) ([]models.ArtistSummary, error) {
	artists, err := s.DB.ListArtists(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	return artists, nil
}

func (s *ArtistService) SearchArtists(ctx context.Context, term string) ([]models.ArtistSummary, error) {
	artists, err := s.DB.SearchArtists(ctx, term, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to search artists for %q: %w", term, err)
	}
	return artists, nil
}

func (s *ArtistService) RecentArtists(ctx context.Context, limit int) ([]models.ArtistSummary, error) {
	artists, err := s.DB.ListRecentArtists(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent artists: %w", err)
	}
	return artists, nil
}
