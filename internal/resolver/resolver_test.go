package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/podopus/podopus/internal/domain"
)

func TestResolvePrefersOpusOverMp3(t *testing.T) {
	// MP3 listed first: opus must still win.
	episode := domain.Episode{
		Title: "Episode 1",
		Enclosures: []domain.Enclosure{
			{URL: "https://cdn.example.com/ep1.mp3", MIMEType: "audio/mpeg"},
			{URL: "https://cdn.example.com/ep1.opus", MIMEType: "audio/ogg; codecs=opus"},
		},
	}

	src, ok := Resolve(episode)
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/ep1.opus", src.URL)
	assert.True(t, src.Native)
}

func TestResolveFallsBackToMp3(t *testing.T) {
	episode := domain.Episode{
		Enclosures: []domain.Enclosure{
			{URL: "https://cdn.example.com/ep2.mp3", MIMEType: "audio/mpeg"},
		},
	}

	src, ok := Resolve(episode)
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/ep2.mp3", src.URL)
	assert.False(t, src.Native)
}

func TestResolveIgnoresUnsupportedTypes(t *testing.T) {
	testCases := []struct {
		name       string
		enclosures []domain.Enclosure
	}{
		{name: "no enclosures", enclosures: nil},
		{
			name: "video only",
			enclosures: []domain.Enclosure{
				{URL: "https://cdn.example.com/ep3.mp4", MIMEType: "video/mp4"},
			},
		},
		{
			name: "aac only",
			enclosures: []domain.Enclosure{
				{URL: "https://cdn.example.com/ep3.m4a", MIMEType: "audio/aac"},
			},
		},
		{
			name: "empty mime type",
			enclosures: []domain.Enclosure{
				{URL: "https://cdn.example.com/ep3.bin", MIMEType: ""},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src, ok := Resolve(domain.Episode{Enclosures: tc.enclosures})
			assert.False(t, ok)
			assert.Empty(t, src.URL)
			assert.False(t, src.Native)
		})
	}
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	episode := domain.Episode{
		Enclosures: []domain.Enclosure{
			{URL: "https://cdn.example.com/ep4.ogg", MIMEType: "Audio/OGG"},
		},
	}

	src, ok := Resolve(episode)
	assert.True(t, ok)
	assert.True(t, src.Native)
}

func TestResolvePicksFirstMatchWithinTier(t *testing.T) {
	episode := domain.Episode{
		Enclosures: []domain.Enclosure{
			{URL: "https://cdn.example.com/a.mp3", MIMEType: "audio/mpeg"},
			{URL: "https://cdn.example.com/b.mp3", MIMEType: "audio/mp3"},
		},
	}

	src, ok := Resolve(episode)
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/a.mp3", src.URL)
}
