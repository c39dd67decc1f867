// Package textblob shapes text into positioned glyph runs that can be
// recorded by a drawing canvas and measured for bounds.
//
// Shaping uses the HarfBuzz port from go-text/typesetting. Bidirectional
// text is split into directional runs with golang.org/x/text/unicode/bidi
// before shaping.
package textblob

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/compositor"
)

// ErrEmptyFontData is returned when a shaper is created without font bytes.
var ErrEmptyFontData = errors.New("textblob: empty font data")

// Direction is the writing direction of a run.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

// Glyph is one shaped glyph positioned relative to the blob origin on the
// baseline.
type Glyph struct {
	ID      uint32
	Cluster int
	X, Y    float64
	Advance float64
}

// Run is a maximal span of text with a single direction, in visual order.
type Run struct {
	Text      string
	Direction Direction
	// X is the pen position where the run starts.
	X       float64
	Advance float64
	Glyphs  []Glyph
}

// Blob is immutable shaped text.
type Blob struct {
	text    string
	size    float64
	runs    []Run
	advance float64
	ascent  float64
	descent float64
	shaper  *Shaper
}

// Text returns the source text.
func (b *Blob) Text() string { return b.text }

// Size returns the font size in pixels.
func (b *Blob) Size() float64 { return b.size }

// Runs returns the shaped runs in visual order.
func (b *Blob) Runs() []Run { return b.runs }

// Advance returns the total horizontal advance.
func (b *Blob) Advance() float64 { return b.advance }

// Bounds returns the blob bounds relative to its baseline origin.
func (b *Blob) Bounds() compositor.Rect {
	if b.advance == 0 {
		return compositor.Rect{}
	}
	return compositor.Rect{Left: 0, Top: -b.ascent, Right: b.advance, Bottom: b.descent}
}

// Font returns the parsed font used to rasterize the blob.
func (b *Blob) Font() *opentype.Font { return b.shaper.sfnt }

// Shaper shapes text with one font. It is safe for concurrent use.
type Shaper struct {
	font *font.Font
	sfnt *opentype.Font

	pool sync.Pool
}

// NewShaper parses TrueType or OpenType font data.
func NewShaper(data []byte) (*Shaper, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("textblob: parse font: %w", err)
	}
	sf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("textblob: parse font: %w", err)
	}
	return &Shaper{
		font: face.Font,
		sfnt: sf,
		pool: sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
	}, nil
}

var (
	defaultOnce   sync.Once
	defaultShaper *Shaper
	defaultErr    error
)

// DefaultShaper returns a shaper for the Go Regular font.
func DefaultShaper() (*Shaper, error) {
	defaultOnce.Do(func() {
		defaultShaper, defaultErr = NewShaper(goregular.TTF)
	})
	return defaultShaper, defaultErr
}

// Shape shapes text at size pixels with the default font.
func Shape(text string, size float64) (*Blob, error) {
	s, err := DefaultShaper()
	if err != nil {
		return nil, err
	}
	return s.Shape(text, size)
}

// Shape shapes text at size pixels.
func (s *Shaper) Shape(text string, size float64) (*Blob, error) {
	ascent, descent, err := s.lineMetrics(size)
	if err != nil {
		return nil, err
	}
	b := &Blob{text: text, size: size, ascent: ascent, descent: descent, shaper: s}
	if text == "" {
		return b, nil
	}

	x := 0.0
	for _, seg := range splitDirectional(text) {
		run := s.shapeRun(seg.text, seg.dir, size)
		run.X = x
		for i := range run.Glyphs {
			run.Glyphs[i].X += x
		}
		x += run.Advance
		b.runs = append(b.runs, run)
	}
	b.advance = x
	return b, nil
}

func (s *Shaper) shapeRun(text string, dir Direction, size float64) Run {
	runes := []rune(text)
	d := di.DirectionLTR
	if dir == RightToLeft {
		d = di.DirectionRTL
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: d,
		Face:      font.NewFace(s.font),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.pool.Put(hb)

	run := Run{Text: text, Direction: dir, Glyphs: make([]Glyph, 0, len(out.Glyphs))}
	pen := 0.0
	for _, g := range out.Glyphs {
		adv := fixedToFloat(g.Advance)
		run.Glyphs = append(run.Glyphs, Glyph{
			ID:      uint32(g.GlyphID),
			Cluster: g.TextIndex(),
			X:       pen + fixedToFloat(g.XOffset),
			Y:       -fixedToFloat(g.YOffset),
			Advance: adv,
		})
		pen += adv
	}
	run.Advance = pen
	return run
}

func (s *Shaper) lineMetrics(size float64) (ascent, descent float64, err error) {
	face, err := opentype.NewFace(s.sfnt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: xfont.HintingNone})
	if err != nil {
		return 0, 0, fmt.Errorf("textblob: create face: %w", err)
	}
	defer face.Close()
	m := face.Metrics()
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent), nil
}

type segment struct {
	text string
	dir  Direction
}

// splitDirectional splits text into runs of uniform direction in visual
// order. Text the bidi algorithm cannot order is kept as one LTR run.
func splitDirectional(text string) []segment {
	p := bidi.Paragraph{}
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return []segment{{text: text, dir: LeftToRight}}
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return []segment{{text: text, dir: LeftToRight}}
	}
	segs := make([]segment, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		dir := LeftToRight
		if run.Direction() == bidi.RightToLeft {
			dir = RightToLeft
		}
		if s := run.String(); s != "" {
			segs = append(segs, segment{text: s, dir: dir})
		}
	}
	if len(segs) == 0 {
		return []segment{{text: text, dir: LeftToRight}}
	}
	return segs
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
