package feed

import (
	"testing"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	builder, err := NewBuilder(DefaultSource())
	if err != nil {
		t.Fatalf("NewBuilder() error: %v", err)
	}
	return builder
}

func TestBuilder_FullEntry(t *testing.T) {
	builder := newTestBuilder(t)

	content := `<header><h1>Шапка</h1></header><figure><img src="https://example.com/i.jpg"></figure><div class="t-redactor__text">Текст</div>`
	record := builder.Build(RawEntry{
		Title:   strPtr("Заголовок"),
		Link:    strPtr("https://example.com/post"),
		PubDate: strPtr("Mon, 15 Jan 2024 10:30:00 +0000"),
		Content: &content,
	})

	if record.ID == "" {
		t.Error("Expected id to be generated")
	}
	if record.Title != "Заголовок" {
		t.Errorf("Expected title 'Заголовок', got %q", record.Title)
	}
	if record.Link != "https://example.com/post" {
		t.Errorf("Expected link, got %q", record.Link)
	}
	if record.PublicationDate != "15 January 2024, 10:30" {
		t.Errorf("Expected formatted date, got %q", record.PublicationDate)
	}
	if record.OriginalDate != "Mon, 15 Jan 2024 10:30:00 +0000" {
		t.Errorf("Expected raw original date, got %q", record.OriginalDate)
	}
	if record.Header != "Шапка" || record.ImageURL != "https://example.com/i.jpg" || record.TextContent != "Текст" {
		t.Errorf("Unexpected markup fields: %+v", record)
	}
	if record.ArticleText != DefaultSource().Fallbacks.Article {
		t.Errorf("Expected article text fallback, got %q", record.ArticleText)
	}
}

func TestBuilder_EmptyEntry(t *testing.T) {
	builder := newTestBuilder(t)
	fallbacks := DefaultSource().Fallbacks

	record := builder.Build(RawEntry{})

	want := Record{
		ID:              record.ID,
		Title:           fallbacks.Title,
		Link:            fallbacks.Link,
		PublicationDate: fallbacks.Date,
		Header:          fallbacks.Header,
		ImageURL:        fallbacks.Image,
		TextContent:     fallbacks.Text,
		OriginalDate:    fallbacks.Date,
		ArticleText:     fallbacks.Article,
	}
	if record != want {
		t.Errorf("Build(empty) = %+v, want %+v", record, want)
	}
	if record.ID == "" {
		t.Error("Expected id even for empty entry")
	}
}

func TestBuilder_UnparseableDateKeepsRaw(t *testing.T) {
	builder := newTestBuilder(t)

	record := builder.Build(RawEntry{Title: strPtr("T"), PubDate: strPtr("someday")})

	if record.PublicationDate != DefaultSource().Fallbacks.Date {
		t.Errorf("Expected date fallback, got %q", record.PublicationDate)
	}
	if record.OriginalDate != "someday" {
		t.Errorf("Expected original date 'someday', got %q", record.OriginalDate)
	}
	if record.Title != "T" {
		t.Errorf("Expected title unaffected by date failure, got %q", record.Title)
	}
}

func TestBuilder_UniqueIDs(t *testing.T) {
	builder := newTestBuilder(t)
	entry := RawEntry{Title: strPtr("Same")}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := builder.Build(entry).ID
		if seen[id] {
			t.Fatalf("Duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
