// Package lingua implements newsprint.LanguageDetector using statistical
// language detection. It serves as the fallback for pages that declare no
// language in their markup.
package lingua

import (
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"

	"github.com/pkarbownik/newsprint"
)

// sampleLimit bounds how much text is fed to the detector. Detection
// accuracy plateaus long before this; the rest is wasted work.
const sampleLimit = 2000

// Ensure Detector implements newsprint.LanguageDetector at compile time.
var _ newsprint.LanguageDetector = (*Detector)(nil)

// Detector wraps a lingua language detector. Building one loads language
// models and is expensive; construct once and share.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector creates a Detector over all spoken languages lingua knows.
// The minimum relative distance filters out low-confidence guesses so
// ambiguous text reports no language instead of a wrong one.
func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllSpokenLanguages().
			WithMinimumRelativeDistance(0.1).
			Build(),
	}
}

// Detect returns the ISO 639-1 code of the text's language, or ok=false
// when the text is too short or ambiguous to classify.
func (d *Detector) Detect(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	if len(text) > sampleLimit {
		// Cut on a rune boundary so a multi-byte rune is never split.
		cut := sampleLimit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	lang, exists := d.detector.DetectLanguageOf(text)
	if !exists {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
