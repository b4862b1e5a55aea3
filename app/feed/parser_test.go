package feed

import (
	"errors"
	"strings"
	"testing"
)

func TestParser_TurboFeed(t *testing.T) {
	parser := NewParser()

	entries, err := parser.Run([]byte(turboFeed))
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Title == nil || *first.Title != "Метро продлят до аэропорта" {
		t.Errorf("Unexpected first title: %v", first.Title)
	}
	if first.Link == nil || *first.Link != "https://ictransport.ru/tpost/metro" {
		t.Errorf("Unexpected first link: %v", first.Link)
	}
	if first.PubDate == nil || *first.PubDate != "Mon, 15 Jan 2024 10:30:00 +0000" {
		t.Errorf("Expected raw pubDate to be kept, got %v", first.PubDate)
	}
	if first.Content == nil || !strings.Contains(*first.Content, "t-redactor__text") {
		t.Errorf("Expected turbo:content markup, got %v", first.Content)
	}

	second := entries[1]
	if second.Content != nil {
		t.Errorf("Expected absent content for second entry, got %q", *second.Content)
	}
	if second.Title == nil || *second.Title != "Новые автобусы" {
		t.Errorf("Unexpected second title: %v", second.Title)
	}
}

func TestParser_MissingFields(t *testing.T) {
	data := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>T</title>
  <item><description>only a description</description></item>
  <item><title>  </title><link></link></item>
</channel></rss>`

	entries, err := NewParser().Run([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	for i, entry := range entries {
		if entry.Title != nil || entry.Link != nil || entry.PubDate != nil || entry.Content != nil {
			t.Errorf("Entry %d: expected all fields absent, got %+v", i, entry)
		}
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "no items",
			data:    `<?xml version="1.0"?><rss version="2.0"><channel><title>Empty</title></channel></rss>`,
			wantErr: ErrNoEntries,
		},
		{
			name:    "atom feed",
			data:    `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"><title>A</title><entry><title>E</title></entry></feed>`,
			wantErr: ErrNotRSS,
		},
		{
			name: "not xml",
			data: `{"items": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Run([]byte(tt.data))
			if err == nil {
				t.Fatal("Expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
