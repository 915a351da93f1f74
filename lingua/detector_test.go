package lingua_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkarbownik/newsprint/lingua"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	detector := lingua.NewDetector()

	t.Run("detects English prose", func(t *testing.T) {
		t.Parallel()

		code, ok := detector.Detect("The gravitational pull of the moon drags the ocean into two bulges, one facing the moon and one on the opposite side of the planet.")
		require.True(t, ok)
		assert.Equal(t, "en", code)
	})

	t.Run("detects German prose", func(t *testing.T) {
		t.Parallel()

		code, ok := detector.Detect("Die Anziehungskraft des Mondes zieht die Ozeane in zwei Wülste, einen dem Mond zugewandten und einen auf der gegenüberliegenden Seite des Planeten.")
		require.True(t, ok)
		assert.Equal(t, "de", code)
	})

	t.Run("handles multi-byte text longer than the sample window", func(t *testing.T) {
		t.Parallel()

		// Cyrillic is two bytes per rune, so a naive byte cut at the
		// sample limit would land mid-rune.
		sentence := "Притяжение Луны вытягивает океаны планеты в два горба. "
		text := strings.Repeat(sentence, 60)
		require.Greater(t, len(text), 2000)
		require.True(t, utf8.ValidString(text))

		code, ok := detector.Detect(text)
		require.True(t, ok)
		assert.Equal(t, "ru", code)
	})

	t.Run("reports no language for empty text", func(t *testing.T) {
		t.Parallel()

		_, ok := detector.Detect("   ")
		assert.False(t, ok)
	})
}
