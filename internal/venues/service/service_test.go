package venues_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"fyyur/internal/events"
	"fyyur/internal/logger"
	"fyyur/internal/models"
	venues "fyyur/internal/venues/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockVenueDBLayer is a mock implementation of the VenueDBLayer interface
type MockVenueDBLayer struct {
	mock.Mock
}

func (m *MockVenueDBLayer) CreateVenue(ctx context.Context, v *models.Venue) (int64, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVenueDBLayer) GetVenueByID(ctx context.Context, id int64) (*models.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Venue), args.Error(1)
}

func (m *MockVenueDBLayer) UpdateVenue(ctx context.Context, v *models.Venue) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVenueDBLayer) DeleteVenue(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVenueDBLayer) ListVenueAreas(ctx context.Context, now time.Time) ([]models.Area, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Area), args.Error(1)
}

func (m *MockVenueDBLayer) SearchVenues(ctx context.Context, term string, now time.Time) ([]models.VenueSummary, error) {
	args := m.Called(ctx, term, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VenueSummary), args.Error(1)
}

func (m *MockVenueDBLayer) ListRecentVenues(ctx context.Context, limit int) ([]models.VenueSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VenueSummary), args.Error(1)
}

func (m *MockVenueDBLayer) ShowsForVenue(ctx context.Context, venueID int64) ([]*models.Show, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Show), args.Error(1)
}

// MockPublisher records published events
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evt events.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return nil
}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newService(db *MockVenueDBLayer, pub events.Publisher) *venues.VenueService {
	svc := venues.NewVenueService(db, pub, logger.NewWriterLogger(io.Discard))
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func TestCreateVenuePublishesEvent(t *testing.T) {
	mockDB := new(MockVenueDBLayer)
	pub := new(MockPublisher)
	svc := newService(mockDB, pub)

	venue := &models.Venue{Name: "The Musical Hop", City: "San Francisco", State: "CA", Address: "1015 Folsom Street"}
	mockDB.On("CreateVenue", mock.Anything, venue).Return(int64(1), nil)
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.VenueCreated && e.EntityID == 1 && e.Name == "The Musical Hop"
	})).Return(nil)

	id, err := svc.CreateVenue(context.Background(), venue)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	mockDB.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCreateVenueFailureSkipsEvent(t *testing.T) {
	mockDB := new(MockVenueDBLayer)
	pub := new(MockPublisher)
	svc := newService(mockDB, pub)

	venue := &models.Venue{Name: "The Musical Hop"}
	mockDB.On("CreateVenue", mock.Anything, venue).Return(int64(0), errors.New("disk full"))

	_, err := svc.CreateVenue(context.Background(), venue)
	assert.ErrorContains(t, err, "disk full")
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateVenueIgnoresPublishFailure(t *testing.T) {
	mockDB := new(MockVenueDBLayer)
	pub := new(MockPublisher)
	svc := newService(mockDB, pub)

	venue := &models.Venue{Name: "The Musical Hop"}
	mockDB.On("CreateVenue", mock.Anything, venue).Return(int64(5), nil)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	id, err := svc.CreateVenue(context.Background(), venue)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestGetVenueSplitsShows(t *testing.T) {
	mockDB := new(MockVenueDBLayer)
	svc := newService(mockDB, nil)

	venue := &models.Venue{ID: 3, Name: "Park Square Live Music & Coffee"}
	artist := &models.Artist{ID: 6, Name: "The Wild Sax Band", ImageLink: "https://example.com/sax.png"}
	shows := []*models.Show{
		{ID: 1, VenueID: 3, ArtistID: 6, StartTime: fixedNow.Add(-48 * time.Hour), Artist: artist},
		{ID: 2, VenueID: 3, ArtistID: 6, StartTime: fixedNow, Artist: artist},
		{ID: 3, VenueID: 3, ArtistID: 6, StartTime: fixedNow.Add(time.Hour), Artist: artist},
	}
	mockDB.On("GetVenueByID", mock.Anything, int64(3)).Return(venue, nil)
	mockDB.On("ShowsForVenue", mock.Anything, int64(3)).Return(shows, nil)

	detail, err := svc.GetVenue(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Park Square Live Music & Coffee", detail.Name)
	assert.Equal(t, 2, detail.PastShowsCount)
	assert.Equal(t, 1, detail.UpcomingShowsCount)
	require.Len(t, detail.UpcomingShows, 1)
	assert.Equal(t, int64(3), detail.UpcomingShows[0].ID)
	assert.Equal(t, int64(6), detail.UpcomingShows[0].CounterpartID)
	assert.Equal(t, "The Wild Sax Band", detail.UpcomingShows[0].CounterpartName)
	assert.Equal(t, "https://example.com/sax.png", detail.UpcomingShows[0].CounterpartImage)
	assert.Equal(t, int64(1), detail.PastShows[0].ID)
	assert.Equal(t, int64(2), detail.PastShows[1].ID)
}

func TestGetVenueNotFound(t *testing.T) {
	mockDB := new(MockVenueDBLayer)
	svc := newService(mockDB, nil)

	mockDB.On("GetVenueByID", mock.Anything, int64(42)).Return(nil, models.ErrNotFound)

	detail, err := svc.GetVenue(context.Background(), 42)
	assert.Nil(t, detail)
	assert.ErrorIs(t, err, models.ErrNotFound)
	mockDB.AssertNotCalled(t, "ShowsForVenue", mock.Anything, mock.Anything)
}

func TestUpdateVenue(t *testing.T) {
	mockDB := new(MockVenueDBLayer)
	pub := new(MockPublisher)
	svc := newService(mockDB, pub)

	venue := &models.Venue{ID: 2, Name: "The Dueling Pianos Bar"}
	mockDB.On("UpdateVenue", mock.Anything, venue).Return(nil)
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.VenueUpdated && e.EntityID == 2
	})).Return(nil)

	require.NoError(t, svc.UpdateVenue(context.Background(), venue))
	pub.AssertExpectations(t)

	missing := &models.Venue{ID: 99}
	mockDB.On("UpdateVenue", mock.Anything, missing).Return(models.ErrNotFound)
	assert.ErrorIs(t, svc.UpdateVenue(context.Background(), missing), models.ErrNotFound)
}

func TestDeleteVenue(t *testing.T) {
	mockDB := new(MockVenueDBLayer)
	pub := new(MockPublisher)
	svc := newService(mockDB, pub)

	mockDB.On("DeleteVenue", mock.Anything, int64(1)).Return(nil)
	mockDB.On("DeleteVenue", mock.Anything, int64(2)).Return(models.ErrNotFound)
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.VenueDeleted && e.EntityID == 1
	})).Return(nil).Once()

	assert.NoError(t, svc.DeleteVenue(context.Background(), 1))
	assert.ErrorIs(t, svc.DeleteVenue(context.Background(), 2), models.ErrNotFound)
	pub.AssertExpectations(t)
}

func TestSearchAndListUseClock(t *testing.T) {
	mockDB := new(MockVenueDBLayer)
	svc := newService(mockDB, nil)

	found := []models.VenueSummary{{ID: 1, Name: "The Musical Hop", NumUpcomingShows: 0}}
	mockDB.On("SearchVenues", mock.Anything, "Hop", fixedNow).Return(found, nil)
	mockDB.On("ListVenueAreas", mock.Anything, fixedNow).Return([]models.Area{{City: "San Francisco", State: "CA", Venues: found}}, nil)
	mockDB.On("ListRecentVenues", mock.Anything, 10).Return(found, nil)

	results, err := svc.SearchVenues(context.Background(), "Hop")
	require.NoError(t, err)
	assert.Len(t, results, 1)

	areas, err := svc.ListAreas(context.Background())
	require.NoError(t, err)
	assert.Len(t, areas, 1)

	recent, err := svc.RecentVenues(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, found, recent)

	mockDB.AssertExpectations(t)
}
