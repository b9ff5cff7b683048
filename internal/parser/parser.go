// Package parser extracts structured daily readings from the upstream
// HTML pages.
//
// The upstream document carries a small set of structural markers: a
// lectionary container with the day's title heading, a paragraph with
// a "Lectionary: N" label, and one "verse block" per reading holding a
// name heading, an address link, and a content body. When the upstream
// markup drifts, extraction degrades to empty/default fields instead
// of failing.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/verbumdei/lectio/internal/liturgy"
	"github.com/verbumdei/lectio/internal/metrics"
)

// ErrParse is returned when the input is not parseable markup at all.
// Partially recognizable pages never produce it.
var ErrParse = errors.New("input is not parseable markup")

// Selectors for the upstream structural markers.
const (
	selectorTitle       = ".b-lectionary h2"
	selectorTitleLoose  = "h2"
	selectorLectionary  = ".b-lectionary p, .innerblock p"
	selectorVerseBlock  = ".b-verse"
	selectorVerseName   = "h3.name, .name"
	selectorVerseSource = ".address a"
	selectorVerseBody   = ".content-body"
)

var lectionaryPattern = regexp.MustCompile(`Lectionary:\s*(\d+)`)

// Parser turns raw markup into liturgy.DailyReadings. It is pure:
// the same markup and date always produce the same record.
type Parser struct {
	base *url.URL
}

// New creates a Parser. baseURL anchors relative citation links; an
// empty or unparseable base leaves relative links as published.
func New(baseURL string) *Parser {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}
	return &Parser{base: base}
}

// Parse extracts the daily readings record for date from markup.
func (p *Parser) Parse(markup []byte, date time.Time) (liturgy.DailyReadings, error) {
	start := time.Now()
	defer func() { metrics.ObserveParse(time.Since(start)) }()

	if len(bytes.TrimSpace(markup)) == 0 {
		return liturgy.DailyReadings{}, fmt.Errorf("%w: empty document", ErrParse)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return liturgy.DailyReadings{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	title := extractTitle(doc)
	return liturgy.DailyReadings{
		Date:        date.Format("2006-01-02"),
		DisplayDate: date.Format("Monday, January 2, 2006"),
		Title:       title,
		Season:      liturgy.ClassifySeason(title),
		Rank:        liturgy.ClassifyRank(title),
		Lectionary:  extractLectionary(doc),
		Readings:    p.extractReadings(doc),
	}, nil
}

// extractTitle returns the trimmed text of the liturgical title
// heading, or "" when the heading is absent.
func extractTitle(doc *goquery.Document) string {
	heading := doc.Find(selectorTitle).First()
	if heading.Length() == 0 {
		heading = doc.Find(selectorTitleLoose).First()
	}
	return strings.TrimSpace(heading.Text())
}

// extractLectionary returns the decimal number following the literal
// "Lectionary:" label, or "" when no paragraph carries one.
func extractLectionary(doc *goquery.Document) string {
	number := ""
	doc.Find(selectorLectionary).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		m := lectionaryPattern.FindStringSubmatch(s.Text())
		if m == nil {
			return true
		}
		number = m[1]
		return false
	})
	return number
}

// extractReadings walks every verse block in document order. Blocks
// missing both a name and a body are dropped; a missing address link
// yields empty reference fields.
func (p *Parser) extractReadings(doc *goquery.Document) []liturgy.Reading {
	readings := make([]liturgy.Reading, 0, 4)
	doc.Find(selectorVerseBlock).Each(func(_ int, block *goquery.Selection) {
		name := strings.TrimSpace(block.Find(selectorVerseName).First().Text())
		text := normalizeBody(block.Find(selectorVerseBody).First())
		if name == "" && text == "" {
			return
		}

		reading := liturgy.Reading{Name: name, Text: text}
		link := block.Find(selectorVerseSource).First()
		if link.Length() > 0 {
			reading.Reference = strings.TrimSpace(link.Text())
			if href, ok := link.Attr("href"); ok {
				reading.ReferenceURL = p.absoluteURL(href)
			}
		}
		readings = append(readings, reading)
	})
	return readings
}

// absoluteURL resolves href against the configured page base.
func (p *Parser) absoluteURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() || p.base == nil {
		return ref.String()
	}
	return p.base.ResolveReference(ref).String()
}

// normalizeBody flattens a content body into stable plain text:
// script/style subtrees are dropped, <br> becomes a newline, emphasis
// tags contribute only their inner text, and the result is split into
// trimmed paragraphs joined by a blank line. The transformation is
// idempotent, so re-parsing its own output reproduces it byte for
// byte.
func normalizeBody(body *goquery.Selection) string {
	if body.Length() == 0 {
		return ""
	}
	body.Find("script,style").Remove()
	body.Find("br").ReplaceWithHtml("\n")

	units := body.Find("p")
	if units.Length() == 0 {
		units = body
	}

	paragraphs := make([]string, 0, units.Length())
	units.Each(func(_ int, unit *goquery.Selection) {
		if text := collapseWhitespace(unit.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}

// collapseWhitespace trims every line and squeezes runs of blank lines
// down to a single separator, preserving intentional line breaks.
func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	pendingBlank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			pendingBlank = true
			continue
		}
		if pendingBlank && len(out) > 0 {
			out = append(out, "")
		}
		pendingBlank = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
