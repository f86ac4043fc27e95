package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesEmbedPartials(t *testing.T) {
	var files []string
	err := fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Contains(t, files, "templates/pages/_shows.html")
	assert.Contains(t, files, "templates/forms/_fields.html")
	assert.Contains(t, files, "templates/layouts/main.html")
}

func TestNewRendererParsesEveryPage(t *testing.T) {
	r, err := NewRenderer(nil, nil)
	require.NoError(t, err)

	for _, name := range []string{"pages/show_venue", "pages/show_artist", "forms/venue", "forms/artist", "forms/show", "errors/404", "errors/405", "errors/500"} {
		assert.Contains(t, r.pages, name)
	}
	assert.NotContains(t, r.pages, "pages/_shows")
}
