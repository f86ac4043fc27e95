package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	FlashSuccess = "success"
	FlashError   = "danger"

	flashCookie = "fyyur_flash"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Flasher stores flashes between a redirect and the page it leads to.
type Flasher interface {
	Add(w http.ResponseWriter, r *http.Request, f Flash) error
	Pop(w http.ResponseWriter, r *http.Request) ([]Flash, error)
}

type flashClaims struct {
	Flashes []Flash `json:"flashes"`
	jwt.RegisteredClaims
}

// CookieFlasher keeps pending flashes in an HS256-signed cookie, so a
// client can read but never forge them.
type CookieFlasher struct {
	key    []byte
	maxAge time.Duration
	secure bool
}

func NewCookieFlasher(secretKey string, secure bool) *CookieFlasher {
	return &CookieFlasher{key: []byte(secretKey), maxAge: 10 * time.Minute, secure: secure}
}

// Add appends f to the flashes pending for this client, including any
// already added earlier in the same response.
func (c *CookieFlasher) Add(w http.ResponseWriter, r *http.Request, f Flash) error {
	flashes := c.pending(w, r)
	flashes = append(flashes, f)

	now := time.Now()
	claims := flashClaims{
		Flashes: flashes,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.maxAge)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return fmt.Errorf("failed to sign flash cookie: %w", err)
	}

	c.dropSetCookie(w)
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns the pending flashes and clears the cookie. A cookie that fails
// verification is dropped silently.
func (c *CookieFlasher) Pop(w http.ResponseWriter, r *http.Request) ([]Flash, error) {
	if _, err := r.Cookie(flashCookie); err != nil {
		return nil, nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.read(r), nil
}

// pending prefers a flash cookie already set on w over the one the request
// carried.
func (c *CookieFlasher) pending(w http.ResponseWriter, r *http.Request) []Flash {
	values := w.Header().Values("Set-Cookie")
	for i := len(values) - 1; i >= 0; i-- {
		cookie, err := http.ParseSetCookie(values[i])
		if err != nil || cookie.Name != flashCookie {
			continue
		}
		return c.decode(cookie.Value)
	}
	return c.read(r)
}

// dropSetCookie removes earlier flash cookies from w so only one is sent.
func (c *CookieFlasher) dropSetCookie(w http.ResponseWriter) {
	values := w.Header().Values("Set-Cookie")
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if cookie, err := http.ParseSetCookie(v); err == nil && cookie.Name == flashCookie {
			continue
		}
		kept = append(kept, v)
	}
	w.Header().Del("Set-Cookie")
	for _, v := range kept {
		w.Header().Add("Set-Cookie", v)
	}
}

func (c *CookieFlasher) read(r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	return c.decode(cookie.Value)
}

func (c *CookieFlasher) decode(value string) []Flash {
	if value == "" {
		return nil
	}

	claims := &flashClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		return c.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil
	}
	return claims.Flashes
}
