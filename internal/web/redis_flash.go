package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const sessionCookie = "fyyur_session"

// RedisFlasher keeps flashes server side in a Redis list per browser
// session. The browser only holds a random session id.
type RedisFlasher struct {
	Client *redis.Client
	TTL    time.Duration
	Secure bool
}

func NewRedisFlasher(client *redis.Client, secure bool) *RedisFlasher {
	return &RedisFlasher{Client: client, TTL: 10 * time.Minute, Secure: secure}
}

func flashKey(sessionID string) string {
	return "fyyur:flash:" + sessionID
}

func (f *RedisFlasher) Add(w http.ResponseWriter, r *http.Request, fl Flash) error {
	sid := f.session(r)
	if sid == "" {
		sid = uuid.New().String()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sid,
			Path:     "/",
			HttpOnly: true,
			Secure:   f.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		r.AddCookie(&http.Cookie{Name: sessionCookie, Value: sid})
	}

	payload, err := json.Marshal(fl)
	if err != nil {
		return err
	}

	ctx := r.Context()
	key := flashKey(sid)
	_, err = f.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		pipe.Expire(ctx, key, f.TTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store flash: %w", err)
	}
	return nil
}

func (f *RedisFlasher) Pop(w http.ResponseWriter, r *http.Request) ([]Flash, error) {
	sid := f.session(r)
	if sid == "" {
		return nil, nil
	}

	ctx := r.Context()
	key := flashKey(sid)
	var values *redis.StringSliceCmd
	_, err := f.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		values = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read flashes: %w", err)
	}

	flashes := make([]Flash, 0, len(values.Val()))
	for _, raw := range values.Val() {
		var fl Flash
		if err := json.Unmarshal([]byte(raw), &fl); err != nil {
			continue
		}
		flashes = append(flashes, fl)
	}
	return flashes, nil
}

func (f *RedisFlasher) session(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return ""
	}
	return cookie.Value
}
