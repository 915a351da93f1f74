package newsprint

import "time"

// Extraction holds the structured result of extracting a single HTML page.
// It is created whole by an Extractor and never mutated afterward.
type Extraction struct {
	// MainText is the whitespace-normalized text of the article body,
	// with navigation, ads, and other boilerplate removed. Empty when no
	// container on the page looked like article content.
	MainText string `json:"mainText"`

	// Description comes from page metadata (og:description, meta
	// description, ...), never from MainText.
	Description string `json:"description"`

	Metadata Metadata `json:"metadata"`

	// Images, Videos, and Links are enumerated from the whole page, in
	// document order, with URLs resolved to absolute form.
	Images []Image `json:"images"`
	Videos []Video `json:"videos"`
	Links  []Link  `json:"links"`

	// WordCount is the number of whitespace-delimited tokens in MainText.
	WordCount int `json:"wordCount"`

	// ReadingTime is the estimated reading time in minutes, always >= 1.
	ReadingTime int `json:"readingTime"`
}

// Metadata holds page metadata. Fields are pointers where absence is
// meaningful: a nil field means the page carried no usable source for it.
type Metadata struct {
	Title       string     `json:"title"`
	Author      *string    `json:"author"`
	PublishDate *time.Time `json:"publishDate"`

	// Language is an ISO-639-1-like code ("en", "pt").
	Language *string  `json:"language"`
	Category *string  `json:"category"`
	Tags     []string `json:"tags"`

	// WordCount and ReadingTime duplicate the Extraction fields so the
	// metadata can be consumed standalone.
	WordCount   int `json:"wordCount"`
	ReadingTime int `json:"readingTime"`
}

// Image is an image reference found on the page.
type Image struct {
	// URL is absolute, resolved against the page's base URL.
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`

	// Width and Height reflect declared markup attributes only; nil when
	// the markup declares none.
	Width  *int `json:"width"`
	Height *int `json:"height"`

	// IsMainImage is true for at most one image per extraction: the
	// og:image if resolvable, otherwise the first large in-content image.
	IsMainImage bool `json:"isMainImage"`
}

// PlatformKind identifies a video hosting platform.
type PlatformKind string

// Platform kinds.
const (
	PlatformYouTube PlatformKind = "youtube"
	PlatformVimeo   PlatformKind = "vimeo"
	PlatformDirect  PlatformKind = "direct"
	PlatformOther   PlatformKind = "other"
)

// Platform is a tagged variant: Host is populated only for PlatformOther,
// carrying the embed host that was not otherwise recognized.
type Platform struct {
	Kind PlatformKind `json:"kind"`
	Host string       `json:"host,omitempty"`
}

// Video is a video or video embed found on the page.
type Video struct {
	URL   string `json:"url"`
	Title string `json:"title"`

	// Duration is taken verbatim from markup when declared, never computed.
	Duration *string  `json:"duration"`
	Platform Platform `json:"platform"`
}

// Link is a hyperlink found on the page. Only http(s) links are reported.
type Link struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// IsExternal is true when the link host differs from the page host.
	IsExternal bool `json:"isExternal"`
}

// Extractor turns raw HTML into a structured Extraction.
type Extractor interface {
	// Extract processes raw HTML against the page's base URL.
	// It is a pure function: it never fetches, never retains the result,
	// and degrades field-by-field instead of failing on malformed input.
	// Relative URLs that cannot be resolved against baseURL drop the
	// affected item only.
	Extract(html string, baseURL string) (*Extraction, error)
}

// LanguageDetector guesses the language of a text sample.
// Used as a fallback when the page declares no language.
type LanguageDetector interface {
	// Detect returns an ISO 639-1 code for the text, or ok=false when
	// the text is too short or ambiguous to classify.
	Detect(text string) (code string, ok bool)
}
