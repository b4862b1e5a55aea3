package feed

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/text/unicode/norm"
)

type compiledSelectors struct {
	header cascadia.Selector
	image  cascadia.Selector
	text   cascadia.Selector
}

func compileSelectors(s Selectors) (*compiledSelectors, error) {
	if s.ImageAttr == "" {
		return nil, fmt.Errorf("image attribute is required")
	}

	raw := map[string]string{
		"header": s.Header,
		"image":  s.Image,
		"text":   s.Text,
	}
	compiled := make(map[string]cascadia.Selector, len(raw))
	for name, selector := range raw {
		if selector == "" {
			return nil, fmt.Errorf("%s selector is required", name)
		}
		sel, err := cascadia.Compile(selector)
		if err != nil {
			return nil, fmt.Errorf("invalid %s selector %q: %w", name, selector, err)
		}
		compiled[name] = sel
	}

	return &compiledSelectors{
		header: compiled["header"],
		image:  compiled["image"],
		text:   compiled["text"],
	}, nil
}

// MarkupExtractor pulls the header, lead image and body text out of a
// turbo:content fragment.
type MarkupExtractor struct {
	selectors *compiledSelectors
	imageAttr string
	fallbacks Fallbacks
}

func NewMarkupExtractor(source *Source) (*MarkupExtractor, error) {
	selectors, err := compileSelectors(source.Selectors)
	if err != nil {
		return nil, err
	}

	return &MarkupExtractor{
		selectors: selectors,
		imageAttr: source.Selectors.ImageAttr,
		fallbacks: source.Fallbacks,
	}, nil
}

func (e *MarkupExtractor) fallback() Markup {
	return Markup{
		Header:   e.fallbacks.Header,
		ImageURL: e.fallbacks.Image,
		Text:     e.fallbacks.Text,
	}
}

// Run never fails. Absent content and unparseable markup both yield the
// fallbacks; each field is looked up independently of the others.
func (e *MarkupExtractor) Run(content *string) Markup {
	if content == nil {
		return e.fallback()
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(*content))
	if err != nil {
		slog.Warn("Failed to parse embedded markup", "error", err)
		return e.fallback()
	}

	return Markup{
		Header:   e.extractHeader(doc),
		ImageURL: e.extractImage(doc),
		Text:     e.extractText(doc),
	}
}

func (e *MarkupExtractor) extractHeader(doc *goquery.Document) string {
	return textOr(doc.FindMatcher(e.selectors.header).Text(), e.fallbacks.Header)
}

func (e *MarkupExtractor) extractImage(doc *goquery.Document) string {
	src, exists := doc.FindMatcher(e.selectors.image).Attr(e.imageAttr)
	if !exists {
		return e.fallbacks.Image
	}
	return textOr(src, e.fallbacks.Image)
}

func (e *MarkupExtractor) extractText(doc *goquery.Document) string {
	return textOr(doc.FindMatcher(e.selectors.text).Text(), e.fallbacks.Text)
}

func textOr(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return norm.NFC.String(value)
}
