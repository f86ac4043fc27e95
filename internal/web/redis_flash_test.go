package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fyyur/internal/web"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisFlasherRoundTrip(t *testing.T) {
	mr, client := setupRedis(t)
	flasher := web.NewRedisFlasher(client, false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/shows/create", nil)
	require.NoError(t, flasher.Add(rec, req, web.Flash{Category: web.FlashSuccess, Message: "Show was successfully listed!"}))
	require.NoError(t, flasher.Add(rec, req, web.Flash{Category: web.FlashSuccess, Message: "again"}))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	sid := cookies[0].Value

	key := "fyyur:flash:" + sid
	assert.True(t, mr.Exists(key))
	assert.InDelta(t, (10 * time.Minute).Seconds(), mr.TTL(key).Seconds(), 1)

	next := httptest.NewRequest(http.MethodGet, "/shows", nil)
	next.AddCookie(&http.Cookie{Name: cookies[0].Name, Value: sid})

	flashes, err := flasher.Pop(httptest.NewRecorder(), next)
	require.NoError(t, err)
	require.Len(t, flashes, 2)
	assert.Equal(t, "Show was successfully listed!", flashes[0].Message)
	assert.Equal(t, "again", flashes[1].Message)
	assert.False(t, mr.Exists(key))

	flashes, err = flasher.Pop(httptest.NewRecorder(), next)
	require.NoError(t, err)
	assert.Empty(t, flashes)
}

func TestRedisFlasherExpires(t *testing.T) {
	mr, client := setupRedis(t)
	flasher := web.NewRedisFlasher(client, false)

	rec := httptest.NewRecorder()
	require.NoError(t, flasher.Add(rec, httptest.NewRequest(http.MethodPost, "/", nil), web.Flash{Message: "stale"}))

	mr.FastForward(11 * time.Minute)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	carryCookies(rec, next)
	flashes, err := flasher.Pop(httptest.NewRecorder(), next)
	require.NoError(t, err)
	assert.Empty(t, flashes)
}

func TestRedisFlasherIgnoresBadSession(t *testing.T) {
	_, client := setupRedis(t)
	flasher := web.NewRedisFlasher(client, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "fyyur_session", Value: "not-a-uuid"})

	flashes, err := flasher.Pop(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Empty(t, flashes)
}
