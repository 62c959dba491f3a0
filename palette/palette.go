// Package palette extracts, orders and replaces hex colors in SVG source text.
//
// All functions are pure and safe for concurrent use.
package palette

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sokinpui/recolor/model"
)

var (
	// Inkscape/Sodipodi editor state and <metadata> often carry hex-looking
	// tokens that are not drawn colors.
	// Both namedview patterns stay inside a single opening tag so a match
	// never runs on into the drawing that follows it.
	namedviewSelfClosingRegex = regexp.MustCompile(`<sodipodi:namedview[^>]*/>`)
	namedviewBlockRegex       = regexp.MustCompile(`(?s)<sodipodi:namedview(?:[^>]*[^/>])?>.*?</sodipodi:namedview>`)
	metadataBlockRegex        = regexp.MustCompile(`(?s)<metadata.*?</metadata>`)

	// hexTokenRegex takes the whole hex run after '#'. Only runs of exactly 3
	// or 6 digits are colors; a longer run is never split into a shorter match.
	hexTokenRegex = regexp.MustCompile(`#[0-9a-fA-F]+`)
)

// ExtractColors returns the distinct colors used in svgContent, normalized to
// "#rrggbb" and ordered from darkest to lightest.
func ExtractColors(svgContent string) []model.HexColor {
	set := make(map[model.HexColor]struct{})
	collectColors(svgContent, set)
	return sortedColors(set)
}

// ExtractColorsFromMultiple returns the union of the colors of every file,
// ordered from darkest to lightest.
func ExtractColorsFromMultiple(svgs []model.SvgFile) []model.HexColor {
	set := make(map[model.HexColor]struct{})
	for _, svg := range svgs {
		collectColors(svg.Content, set)
	}
	return sortedColors(set)
}

// ReplaceColorInSvg replaces every case-insensitive occurrence of originalHex
// with replacementHex. When originalHex has a 3-digit form, occurrences of that
// form are replaced as well, using the 3-digit form of replacementHex if it has one.
// A match directly followed by another hex digit is left alone.
func ReplaceColorInSvg(svg string, originalHex, replacementHex model.HexColor) string {
	original := Normalize(originalHex)
	replacement := Normalize(replacementHex)

	result := replaceAllInsensitive(svg, original, replacement)

	if shortOriginal, ok := ShortHex(original); ok {
		shortReplacement, ok := ShortHex(replacement)
		if !ok {
			shortReplacement = replacement
		}
		result = replaceAllInsensitive(result, shortOriginal, shortReplacement)
	}
	return result
}

// ApplyMappings applies each mapping in order. Later mappings see the output
// of earlier ones.
func ApplyMappings(svg string, mappings []model.ColorMapping) string {
	for _, m := range mappings {
		svg = ReplaceColorInSvg(svg, m.Original, m.Replacement)
	}
	return svg
}

func stripEditorMetadata(svgContent string) string {
	cleaned := namedviewBlockRegex.ReplaceAllString(svgContent, "")
	cleaned = namedviewSelfClosingRegex.ReplaceAllString(cleaned, "")
	return metadataBlockRegex.ReplaceAllString(cleaned, "")
}

func collectColors(svgContent string, set map[model.HexColor]struct{}) {
	for _, token := range hexTokenRegex.FindAllString(stripEditorMetadata(svgContent), -1) {
		if digits := len(token) - 1; digits != 3 && digits != 6 {
			continue
		}
		set[Normalize(token)] = struct{}{}
	}
}

// sortedColors orders by luminance, then by hex string for equal luminance.
func sortedColors(set map[model.HexColor]struct{}) []model.HexColor {
	colors := make([]model.HexColor, 0, len(set))
	for c := range set {
		colors = append(colors, c)
	}

	keys := make(map[model.HexColor]int, len(colors))
	for _, c := range colors {
		keys[c] = luma(c)
	}
	sort.Slice(colors, func(i, j int) bool {
		if keys[colors[i]] != keys[colors[j]] {
			return keys[colors[i]] < keys[colors[j]]
		}
		return colors[i] < colors[j]
	})
	return colors
}

// replaceAllInsensitive swaps every ASCII case-insensitive occurrence of
// search that is not followed by another hex digit.
func replaceAllInsensitive(s, search, replacement string) string {
	if search == "" {
		return s
	}
	haystack, needle := asciiLower(s), asciiLower(search)

	var b strings.Builder
	last, from := 0, 0
	for {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(needle)
		if end < len(s) && isHexDigit(s[end]) {
			from = start + 1
			continue
		}
		b.WriteString(s[last:start])
		b.WriteString(replacement)
		last, from = end, end
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// asciiLower folds only A-Z so byte offsets line up with the input.
func asciiLower(s string) string {
	buf := []byte(s)
	for i, c := range buf {
		if 'A' <= c && c <= 'Z' {
			buf[i] = c + ('a' - 'A')
		}
	}
	return string(buf)
}
