package feed

// Record is one normalized article held in the cache and returned by the API.
// Every field always carries a value: either real data or its fallback.
type Record struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Link            string `json:"link"`
	PublicationDate string `json:"pubDate"`
	Header          string `json:"header"`
	ImageURL        string `json:"imageUrl"`
	TextContent     string `json:"textContent"`
	// OriginalDate is the raw pubDate string. Sorting and range filtering
	// always parse this value, never PublicationDate.
	OriginalDate string `json:"originalDate"`
	ArticleText  string `json:"articleText"`
}

// RawEntry is a feed item as read from the document. A nil field means the
// element was absent or blank.
type RawEntry struct {
	Title   *string
	Link    *string
	PubDate *string
	Content *string
}

// Markup holds the values extracted from embedded turbo:content markup.
type Markup struct {
	Header   string
	ImageURL string
	Text     string
}

// Source profile types

type Source struct {
	Selectors Selectors      `yaml:"selectors"`
	Fallbacks Fallbacks      `yaml:"fallbacks"`
	Settings  SourceSettings `yaml:"settings"`
}

type Selectors struct {
	Header    string `yaml:"header"`
	Image     string `yaml:"image"`
	ImageAttr string `yaml:"image_attr"`
	Text      string `yaml:"text"`
}

type Fallbacks struct {
	Title   string `yaml:"title"`
	Link    string `yaml:"link"`
	Date    string `yaml:"date"`
	Header  string `yaml:"header"`
	Image   string `yaml:"image"`
	Text    string `yaml:"text"`
	Article string `yaml:"article"`
}

type SourceSettings struct {
	Timeout        int  `yaml:"timeout"`         // seconds
	ExtractContent bool `yaml:"extract_content"` // fetch linked pages for readable text
}
