package slides_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemadeck/internal/slides"
)

func TestEmbeddedDeck(t *testing.T) {
	t.Parallel()

	deck, err := slides.Load()
	require.NoError(t, err)

	wantNav := []slides.Link{
		{Label: "1. Intro", Href: "/presentation/1-intro"},
		{Label: "2. Core Concepts", Href: "/presentation/2-core-concepts"},
		{Label: "3. Use Cases", Href: "/presentation/3-common-use-cases"},
		{Label: "4. Advanced", Href: "/presentation/4-advanced-features"},
	}
	assert.Equal(t, wantNav, deck.Nav())

	assert.Len(t, deck.Home.Features, 3)
	require.Len(t, deck.Home.Actions, 2)
	assert.Equal(t, "Start Presentation", deck.Home.Actions[0].Label)
	assert.Equal(t, "View Source", deck.Home.Actions[1].Label)
	assert.Equal(t, "Define a schema once, use it everywhere", deck.Home.Preview.Heading)

	intro, err := deck.Slide("1-intro")
	require.NoError(t, err)
	require.Len(t, intro.Sections, 1)
	assert.Equal(t, "What We'll Cover", intro.Sections[0].Heading)
	assert.Len(t, intro.Sections[0].Items, 4)
	assert.Nil(t, intro.Prev)
	require.NotNil(t, intro.Next)
	assert.Equal(t, "Start with Core Concepts →", intro.Next.Label)

	core, err := deck.Slide("2-core-concepts")
	require.NoError(t, err)
	assert.True(t, core.HasPlayground())
	assert.False(t, intro.HasPlayground())

	last, err := deck.Slide("4-advanced-features")
	require.NoError(t, err)
	require.NotNil(t, last.Next)
	assert.Equal(t, "/", last.Next.Href)
	assert.Contains(t, last.Next.Label, "Finish Presentation")

	for _, s := range deck.Slides {
		for _, sec := range s.Sections {
			assert.NotContains(t, sec.Code, "\t", "%s/%s snippets are space indented", s.Slug, sec.Heading)
		}
	}
}

func TestSlideNotFound(t *testing.T) {
	t.Parallel()

	deck := slides.MustLoad()
	_, err := deck.Slide("5-bonus")
	assert.ErrorIs(t, err, slides.ErrSlideNotFound)
}

func TestParseRejectsBadDecks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"no slides", "home:\n  title: x\n"},
		{"duplicate slug", "slides:\n  - slug: a\n    title: A\n  - slug: a\n    title: B\n"},
		{"missing title", "slides:\n  - slug: a\n"},
		{"unknown key", "slides:\n  - slug: a\n    title: A\n    colour: red\n"},
		{"not yaml", "slides: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := slides.Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, slides.ErrInvalidDeck)
		})
	}
}

func TestRunPlayground(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		valid bool
		msg   string
	}{
		{"", false, slides.PlaygroundMinMessage},
		{"Hi", false, slides.PlaygroundMinMessage},
		{"héé", true, "Valid!"},
		{"Hello World", true, "Valid!"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got := slides.RunPlayground(tt.in)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.msg, got.Message)
		})
	}

	assert.False(t, strings.HasSuffix(slides.RunPlayground("x").Message, ", "))
}
