package feed

import (
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

type Builder struct {
	markup    *MarkupExtractor
	fallbacks Fallbacks
}

func NewBuilder(source *Source) (*Builder, error) {
	markup, err := NewMarkupExtractor(source)
	if err != nil {
		return nil, err
	}

	return &Builder{
		markup:    markup,
		fallbacks: source.Fallbacks,
	}, nil
}

// Build assigns a fresh id and fills every field, falling back per field.
func (b *Builder) Build(entry RawEntry) (record Record) {
	id := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Record build panicked, using fallbacks", "id", id, "panic", r)
			record = b.fallbackRecord(id)
		}
	}()

	markup := b.markup.Run(entry.Content)

	return Record{
		ID:              id,
		Title:           b.stringOr(entry.Title, b.fallbacks.Title),
		Link:            b.stringOr(entry.Link, b.fallbacks.Link),
		PublicationDate: FormatDisplayDate(entry.PubDate, b.fallbacks.Date),
		Header:          markup.Header,
		ImageURL:        markup.ImageURL,
		TextContent:     markup.Text,
		OriginalDate:    rawOr(entry.PubDate, b.fallbacks.Date),
		ArticleText:     b.fallbacks.Article,
	}
}

func (b *Builder) fallbackRecord(id string) Record {
	return Record{
		ID:              id,
		Title:           b.fallbacks.Title,
		Link:            b.fallbacks.Link,
		PublicationDate: b.fallbacks.Date,
		Header:          b.fallbacks.Header,
		ImageURL:        b.fallbacks.Image,
		TextContent:     b.fallbacks.Text,
		OriginalDate:    b.fallbacks.Date,
		ArticleText:     b.fallbacks.Article,
	}
}

func (b *Builder) stringOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return norm.NFC.String(*value)
}

func rawOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}
