// Package share renders QR codes pointing at listing pages.
package share

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG edge length in pixels.
const DefaultSize = 256

type QRGenerator struct {
	baseURL string
	size    int
}

// NewQRGenerator builds absolute page links from baseURL. An empty baseURL
// falls back to the host of each request.
func NewQRGenerator(baseURL string) *QRGenerator {
	return &QRGenerator{baseURL: strings.TrimRight(baseURL, "/"), size: DefaultSize}
}

// PageURL is the absolute address of path as seen by the requester.
func (q *QRGenerator) PageURL(r *http.Request, path string) string {
	if q.baseURL != "" {
		return q.baseURL + path
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, r.Host, path)
}

// PNG encodes url as a QR code image.
func (q *QRGenerator) PNG(url string) ([]byte, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, q.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code for %s: %w", url, err)
	}
	return png, nil
}

// ServePNG writes the QR code for path.
func (q *QRGenerator) ServePNG(w http.ResponseWriter, r *http.Request, path string) error {
	png, err := q.PNG(q.PageURL(r, path))
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(png)
	return err
}
