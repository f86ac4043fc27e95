package venues

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fyyur/internal/events"
	"fyyur/internal/logger"
	"fyyur/internal/models"
	"fyyur/internal/schedule"
)

type VenueDBLayer interface {
	CreateVenue(ctx context.Context, v *models.Venue) (int64, error)
	GetVenueByID(ctx context.Context, id int64) (*models.Venue, error)
	UpdateVenue(ctx context.Context, v *models.Venue) error
	DeleteVenue(ctx context.Context, id int64) error
	ListVenueAreas(ctx context.Context, now time.Time) ([]models.Area, error)
	SearchVenues(ctx context.Context, term string, now time.Time) ([]models.VenueSummary, error)
	ListRecentVenues(ctx context.Context, limit int) ([]models.VenueSummary, error)
	ShowsForVenue(ctx context.Context, venueID int64) ([]*models.Show, error)
}

type VenueService struct {
	DB     VenueDBLayer
	Events events.Publisher
	Logger *logger.Logger
	// Now is the clock shows are classified against.
	Now func() time.Time
}

func NewVenueService(db VenueDBLayer, pub events.Publisher, log *logger.Logger) *VenueService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &VenueService{DB: db, Events: pub, Logger: log, Now: time.Now}
}

func (s *VenueService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *VenueService) CreateVenue(ctx context.Context, v *models.Venue) (int64, error) {
	id, err := s.DB.CreateVenue(ctx, v)
	if err != nil {
		return 0, fmt.Errorf("failed to create venue %q: %w", v.Name, err)
	}
	s.logListing("CREATE", id, v.Name)
	events.Emit(ctx, s.Events, s.Logger, events.New(events.VenueCreated, id, v.Name, v))
	return id, nil
}

// GetVenue loads a venue with its shows split into past and upcoming.
func (s *VenueService) GetVenue(ctx context.Context, id int64) (*models.VenueDetail, error) {
	venue, err := s.FindVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	shows, err := s.DB.ShowsForVenue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load shows of venue %d: %w", id, err)
	}

	upcoming, past := schedule.Split(s.now(), schedule.ForVenue(shows))
	return &models.VenueDetail{
		Venue:              *venue,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// FindVenue loads the bare venue record, as the edit form needs it.
func (s *VenueService) FindVenue(ctx context.Context, id int64) (*models.Venue, error) {
	venue, err := s.DB.GetVenueByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("venue %d: %w", id, err)
	}
	return venue, nil
}

func (s *VenueService) UpdateVenue(ctx context.Context, v *models.Venue) error {
	if err := s.DB.UpdateVenue(ctx, v); err != nil {
		return fmt.Errorf("failed to update venue %d: %w", v.ID, err)
	}
	s.logListing("UPDATE", v.ID, v.Name)
	events.Emit(ctx, s.Events, s.Logger, events.New(events.VenueUpdated, v.ID, v.Name, v))
	return nil
}

// DeleteVenue removes the venue and every show booked there.
func (s *VenueService) DeleteVenue(ctx context.Context, id int64) error {
	if err := s.DB.DeleteVenue(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("venue %d: %w", id, err)
		}
		return fmt.Errorf("failed to delete venue %d: %w", id, err)
	}
	s.logListing("DELETE", id, "")
	events.Emit(ctx, s.Events, s.Logger, events.New(events.VenueDeleted, id, "", nil))
	return nil
}

// ListAreas returns venues grouped by city and state.
func (s *VenueService) ListAreas(ctx context.Context) ([]models.Area, error) {
	areas, err := s.DB.ListVenueAreas(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return areas, nil
}

func (s *VenueService) SearchVenues(ctx context.Context, term string) ([]models.VenueSummary, error) {
	venues, err := s.DB.SearchVenues(ctx, term, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to search venues for %q: %w", term, err)
	}
	return venues, nil
}

func (s *VenueService) RecentVenues(ctx context.Context, limit int) ([]models.VenueSummary, error) {
	venues, err := s.DB.ListRecentVenues(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent venues: %w", err)
	}
	return venues, nil
}

func (s *VenueService) logListing(action string, id int64, name string) {
	if s.Logger != nil {
		s.Logger.LogListing(action, "venue", id, name)
	}
}
