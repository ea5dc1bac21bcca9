// Package slides holds the presentation content and the interactive
// playground shown on the core concepts slide.
package slides

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var content []byte

var (
	// ErrSlideNotFound is returned for unknown slugs.
	ErrSlideNotFound = errors.New("slides: slide not found")
	// ErrInvalidDeck is returned when content fails Validate.
	ErrInvalidDeck = errors.New("slides: invalid deck")
)

// Deck is the home page plus the ordered slides.
type Deck struct {
	Home   Home    `yaml:"home"`
	Slides []Slide `yaml:"slides"`
}

type Home struct {
	Title     string `yaml:"title"`
	Highlight string `yaml:"highlight"`
	Tagline   string `yaml:"tagline"`
	Features  []Item `yaml:"features"`
	Preview   Code   `yaml:"preview"`
	Actions   []Link `yaml:"actions"`
}

// Item is a titled blurb: a feature card or an agenda entry.
type Item struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	Icon  string `yaml:"icon"`
}

type Link struct {
	Label    string `yaml:"label"`
	Href     string `yaml:"href"`
	External bool   `yaml:"external"`
}

type Code struct {
	Heading  string `yaml:"heading"`
	Filename string `yaml:"filename"`
	Source   string `yaml:"source"`
}

// Section is one block of a slide. Playground marks where the interactive
// validator is rendered.
type Section struct {
	Heading    string `yaml:"heading"`
	Body       string `yaml:"body"`
	Code       string `yaml:"code"`
	Items      []Item `yaml:"items"`
	Playground bool   `yaml:"playground"`
}

type Slide struct {
	Slug     string    `yaml:"slug"`
	Number   int       `yaml:"number"`
	NavLabel string    `yaml:"nav_label"`
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"`
	Sections []Section `yaml:"sections"`
	Prev     *Link     `yaml:"prev"`
	Next     *Link     `yaml:"next"`
}

// Path returns the URL path of the slide.
func (s Slide) Path() string {
	return "/presentation/" + s.Slug
}

// Label returns the navigation label, such as "1. Intro".
func (s Slide) Label() string {
	return strconv.Itoa(s.Number) + ". " + s.NavLabel
}

// HasPlayground reports whether any section hosts the playground.
func (s Slide) HasPlayground() bool {
	for _, sec := range s.Sections {
		if sec.Playground {
			return true
		}
	}
	return false
}

// Load parses the embedded content.
func Load() (*Deck, error) {
	return Parse(content)
}

// MustLoad is Load that panics on error.
func MustLoad() *Deck {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}

// Parse decodes and validates a deck. Unknown keys are rejected.
func Parse(data []byte) (*Deck, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var d Deck
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDeck, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks that slugs are unique and every slide has a title.
func (d *Deck) Validate() error {
	if len(d.Slides) == 0 {
		return fmt.Errorf("%w: no slides", ErrInvalidDeck)
	}
	seen := make(map[string]bool, len(d.Slides))
	var errs []error
	for i, s := range d.Slides {
		if s.Slug == "" {
			errs = append(errs, fmt.Errorf("slide %d: empty slug", i))
		} else if seen[s.Slug] {
			errs = append(errs, fmt.Errorf("slide %d: duplicate slug %q", i, s.Slug))
		}
		seen[s.Slug] = true
		if s.Title == "" {
			errs = append(errs, fmt.Errorf("slide %q: empty title", s.Slug))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDeck, errors.Join(errs...))
	}
	return nil
}

// Slide returns the slide with slug.
func (d *Deck) Slide(slug string) (Slide, error) {
	for _, s := range d.Slides {
		if s.Slug == slug {
			return s, nil
		}
	}
	return Slide{}, fmt.Errorf("%w: %q", ErrSlideNotFound, slug)
}

// Nav returns one link per slide in order.
func (d *Deck) Nav() []Link {
	links := make([]Link, len(d.Slides))
	for i, s := range d.Slides {
		links[i] = Link{Label: s.Label(), Href: s.Path()}
	}
	return links
}
