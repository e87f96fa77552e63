package media

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestResolveVideoID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{"short link", "https://youtu.be/ABC123", "ABC123", true},
		{"short link with params", "https://youtu.be/ABC123?t=42", "ABC123", true},
		{"short link extra segments", "https://youtu.be/ABC123/extra", "ABC123", true},
		{"short link uppercase host", "https://YOUTU.BE/ABC123", "ABC123", true},
		{"short link without id", "https://youtu.be/", "", false},
		{"watch url", "https://www.youtube.com/watch?v=ABC123", "ABC123", true},
		{"watch url extra params", "https://www.youtube.com/watch?list=PL1&v=ABC123&t=3", "ABC123", true},
		{"empty v param", "https://www.youtube.com/watch?v=", "", false},
		{"embed url", "https://www.youtube.com/embed/ABC123", "ABC123", true},
		{"embed url nocookie", "https://www.youtube-nocookie.com/embed/ABC123?rel=0", "ABC123", true},
		{"embed without id", "https://www.youtube.com/embed/", "", false},
		{"channel page", "https://www.youtube.com/@someone", "", false},
		{"relative url", "youtu.be/ABC123", "", false},
		{"not a url", "not a url", "", false},
		{"empty", "", "", false},
		{"malformed", "http://[::1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ResolveVideoID(tt.url)
			assert.Equal(t, ok, tt.wantOK)
			assert.Equal(t, id, tt.wantID)
		})
	}
}

func TestResolveVideoID_ShapesAgree(t *testing.T) {
	urls := []string{
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
	}

	for _, u := range urls {
		id, ok := ResolveVideoID(u)
		assert.Assert(t, ok, u)
		assert.Equal(t, id, "dQw4w9WgXcQ", u)
	}
}

func TestResolveVideoID_Priority(t *testing.T) {
	// Short link wins over the query parameter.
	id, ok := ResolveVideoID("https://youtu.be/SHORT?v=QUERY")
	assert.Assert(t, ok)
	assert.Equal(t, id, "SHORT")

	// Query parameter wins over the embed path.
	id, ok = ResolveVideoID("https://www.youtube.com/embed/EMBED?v=QUERY")
	assert.Assert(t, ok)
	assert.Equal(t, id, "QUERY")
}

func TestProviderURLs(t *testing.T) {
	assert.Equal(t, ThumbnailURL("ABC123"), "https://i.ytimg.com/vi/ABC123/hqdefault.jpg")
	assert.Equal(t, EmbedURL("ABC123"), "https://www.youtube.com/embed/ABC123")
	assert.Equal(t, EmbedURL("a b"), "https://www.youtube.com/embed/a%20b")
}
