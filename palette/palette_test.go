package palette_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/recolor/model"
	"github.com/sokinpui/recolor/palette"
)

func TestExtractColors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []model.HexColor
	}{
		{
			name:    "shorthand is expanded and lower-cased",
			content: "<svg fill='#ABC'/>",
			want:    []model.HexColor{"#aabbcc"},
		},
		{
			name:    "ordered by luminance regardless of input order",
			content: `<svg><rect fill="#ffffff"/><rect fill="#000000"/></svg>`,
			want:    []model.HexColor{"#000000", "#ffffff"},
		},
		{
			name:    "seven hex digits do not match",
			content: "<svg>#aabbccd</svg>",
			want:    []model.HexColor{},
		},
		{
			name:    "four hex digits do not match",
			content: "<svg>#abcd</svg>",
			want:    []model.HexColor{},
		},
		{
			name:    "eight digit alpha color does not match",
			content: `<svg fill="#aabbccdd"/>`,
			want:    []model.HexColor{},
		},
		{
			name:    "case-insensitive deduplication",
			content: `<path fill="#FF0000"/><path stroke="#ff0000"/><path fill="#f00"/>`,
			want:    []model.HexColor{"#ff0000"},
		},
		{
			name:    "no colors",
			content: "<svg><path d='M0 0'/></svg>",
			want:    []model.HexColor{},
		},
		{
			name:    "empty input",
			content: "",
			want:    []model.HexColor{},
		},
		{
			name:    "non-hex after hash",
			content: `<use href="#icon"/>`,
			want:    []model.HexColor{},
		},
		{
			name:    "inline style",
			content: `<path style="fill:#336699;stroke:#fff"/>`,
			want:    []model.HexColor{"#336699", "#ffffff"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, palette.ExtractColors(tt.content))
		})
	}
}

func TestExtractColorsStripsEditorMetadata(t *testing.T) {
	t.Run("metadata only", func(t *testing.T) {
		content := "<svg><metadata>\n<rdf:RDF>#123456</rdf:RDF>\n</metadata><path fill=\"#000\"/></svg>"
		assert.Equal(t, []model.HexColor{"#000000"}, palette.ExtractColors(content))
	})

	t.Run("metadata and attribute", func(t *testing.T) {
		content := `<svg><metadata>#123456</metadata><path fill="#123456"/></svg>`
		assert.Equal(t, []model.HexColor{"#123456"}, palette.ExtractColors(content))
	})

	t.Run("self-closing namedview", func(t *testing.T) {
		content := "<svg><sodipodi:namedview\n pagecolor=\"#ffffff\"\n bordercolor=\"#666666\" /><path fill=\"#ff0000\"/></svg>"
		assert.Equal(t, []model.HexColor{"#ff0000"}, palette.ExtractColors(content))
	})

	t.Run("namedview block", func(t *testing.T) {
		content := "<svg><sodipodi:namedview pagecolor=\"#eeeeee\">\n<x>#dddddd</x></sodipodi:namedview><path fill=\"#0000ff\"/></svg>"
		assert.Equal(t, []model.HexColor{"#0000ff"}, palette.ExtractColors(content))
	})

	t.Run("drawing after namedview block is kept", func(t *testing.T) {
		content := "<svg><sodipodi:namedview pagecolor=\"#ffffff\"></sodipodi:namedview>\n<path fill=\"#5294e2\"/><rect fill=\"#2aa198\"/></svg>"
		assert.Equal(t, []model.HexColor{"#2aa198", "#5294e2"}, palette.ExtractColors(content))
	})

	t.Run("self-closing namedview before a block", func(t *testing.T) {
		content := `<svg><sodipodi:namedview pagecolor="#eeeeee"/><path fill="#5294e2"/>` +
			`<sodipodi:namedview bordercolor="#666666"><x/></sodipodi:namedview><rect fill="#2aa198"/></svg>`
		assert.Equal(t, []model.HexColor{"#2aa198", "#5294e2"}, palette.ExtractColors(content))
	})
}

func TestExtractColorsIsIdempotent(t *testing.T) {
	content := `<svg><rect fill="#F0F"/><rect fill="#123abc"/><rect stroke="#000"/><rect fill="#fafafa"/></svg>`
	first := palette.ExtractColors(content)

	var b strings.Builder
	b.WriteString("<svg>")
	for _, c := range first {
		fmt.Fprintf(&b, `<rect fill="%s"/>`, c)
	}
	b.WriteString("</svg>")

	assert.Equal(t, first, palette.ExtractColors(b.String()))
}

func TestExtractColorsTieBreak(t *testing.T) {
	// #0b0100 and #000022 have the same luminance (3.876).
	require.Equal(t, palette.Luminance("#0b0100"), palette.Luminance("#000022"))

	content := `<a fill="#0b0100"/><a fill="#000022"/><a fill="#ffffff"/>`
	assert.Equal(t, []model.HexColor{"#000022", "#0b0100", "#ffffff"}, palette.ExtractColors(content))
}

func TestExtractColorsFromMultiple(t *testing.T) {
	t.Run("union across files", func(t *testing.T) {
		svgs := []model.SvgFile{{Content: "#fff"}, {Content: "#000"}}
		assert.Equal(t, []model.HexColor{"#000000", "#ffffff"}, palette.ExtractColorsFromMultiple(svgs))
	})

	t.Run("order of files does not matter", func(t *testing.T) {
		a := model.SvgFile{Path: "a.svg", Content: `<path fill="#808080"/><path fill="#FFF"/>`}
		b := model.SvgFile{Path: "b.svg", Content: `<path fill="#ffffff"/><path fill="#100"/>`}
		want := []model.HexColor{"#110000", "#808080", "#ffffff"}
		assert.Equal(t, want, palette.ExtractColorsFromMultiple([]model.SvgFile{a, b}))
		assert.Equal(t, want, palette.ExtractColorsFromMultiple([]model.SvgFile{b, a}))
	})

	t.Run("no files", func(t *testing.T) {
		assert.Empty(t, palette.ExtractColorsFromMultiple(nil))
	})
}

func TestReplaceColorInSvg(t *testing.T) {
	tests := []struct {
		name        string
		svg         string
		original    model.HexColor
		replacement model.HexColor
		want        string
	}{
		{
			name:        "shorthand to shorthand",
			svg:         "fill:#ABC;",
			original:    "#aabbcc",
			replacement: "#112233",
			want:        "fill:#123;",
		},
		{
			name:        "shorthand to full when replacement has no shorthand",
			svg:         "fill:#abc;",
			original:    "#aabbcc",
			replacement: "#123456",
			want:        "fill:#123456;",
		},
		{
			name:        "full form case-insensitive",
			svg:         `<path fill="#AaBbCc" stroke="#aabbcc"/>`,
			original:    "#aabbcc",
			replacement: "#123456",
			want:        `<path fill="#123456" stroke="#123456"/>`,
		},
		{
			name:        "alpha color left untouched",
			svg:         `<path fill="#aabbccdd"/>`,
			original:    "#aabbcc",
			replacement: "#112233",
			want:        `<path fill="#aabbccdd"/>`,
		},
		{
			name:        "no shorthand pass when original has no shorthand",
			svg:         `<path fill="#123456"/><path fill="#123"/>`,
			original:    "#123456",
			replacement: "#ffffff",
			want:        `<path fill="#ffffff"/><path fill="#123"/>`,
		},
		{
			name:        "absent color",
			svg:         `<path fill="#000000"/>`,
			original:    "#ffffff",
			replacement: "#111111",
			want:        `<path fill="#000000"/>`,
		},
		{
			name:        "replaces inside comments too",
			svg:         "<!-- #ff0000 --><path fill='#ff0000'/>",
			original:    "#ff0000",
			replacement: "#00ff00",
			want:        "<!-- #00ff00 --><path fill='#00ff00'/>",
		},
		{
			name:        "shorthand pass skips longer hex runs",
			svg:         "fill:#abcd;stroke:#abc;",
			original:    "#aabbcc",
			replacement: "#112233",
			want:        "fill:#abcd;stroke:#123;",
		},
		{
			name:        "match right before a longer run is retried later",
			svg:         "#AABBCCDD #AaBbCc",
			original:    "#aabbcc",
			replacement: "#010203",
			want:        "#AABBCCDD #010203",
		},
		{
			name:        "multi-byte text around a match",
			svg:         "<title>Ünïcode</title><path fill=\"#AABBCC\"/>",
			original:    "#aabbcc",
			replacement: "#010203",
			want:        "<title>Ünïcode</title><path fill=\"#010203\"/>",
		},
		{
			name:        "shorthand original is expanded first",
			svg:         `<path fill="#FFFFFF"/><path fill="#fff"/>`,
			original:    "#FFF",
			replacement: "#000000",
			want:        `<path fill="#000000"/><path fill="#000"/>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, palette.ReplaceColorInSvg(tt.svg, tt.original, tt.replacement))
		})
	}
}

func TestReplaceColorInSvgDoesNotMutateInput(t *testing.T) {
	file := model.SvgFile{Path: "a.svg", Content: `<path fill="#ff0000"/>`}
	out := palette.ReplaceColorInSvg(file.Content, "#ff0000", "#0000ff")
	assert.Equal(t, `<path fill="#0000ff"/>`, out)
	assert.Equal(t, `<path fill="#ff0000"/>`, file.Content)
}

func TestApplyMappings(t *testing.T) {
	svg := `<path fill="#ff0000"/><path fill="#00ff00"/><path fill="#0000ff"/>`

	t.Run("independent mappings", func(t *testing.T) {
		mappings := []model.ColorMapping{
			{Original: "#ff0000", Replacement: "#111111"},
			{Original: "#0000ff", Replacement: "#222222"},
		}
		assert.Equal(t,
			`<path fill="#111111"/><path fill="#00ff00"/><path fill="#222222"/>`,
			palette.ApplyMappings(svg, mappings))
	})

	t.Run("mappings chain in order", func(t *testing.T) {
		mappings := []model.ColorMapping{
			{Original: "#ff0000", Replacement: "#00ff00"},
			{Original: "#00ff00", Replacement: "#0000ff"},
		}
		assert.Equal(t,
			`<path fill="#0000ff"/><path fill="#0000ff"/><path fill="#0000ff"/>`,
			palette.ApplyMappings(svg, mappings))
	})

	t.Run("no mappings", func(t *testing.T) {
		assert.Equal(t, svg, palette.ApplyMappings(svg, nil))
	})
}

func TestParseHex(t *testing.T) {
	for _, in := range []string{"#abc", "#ABC", "#aabbcc", " #AABBCC "} {
		got, err := palette.ParseHex(in)
		require.NoError(t, err, in)
		assert.Equal(t, "#aabbcc", got)
	}

	for _, in := range []string{"", "abc", "#ab", "#abcd", "#aabbccdd", "#ggg", "aabbcc"} {
		_, err := palette.ParseHex(in)
		assert.ErrorIs(t, err, model.ErrInvalidHex, in)
	}
}

func TestShortHex(t *testing.T) {
	short, ok := palette.ShortHex("#AABBCC")
	require.True(t, ok)
	assert.Equal(t, "#abc", short)

	_, ok = palette.ShortHex("#aabbcd")
	assert.False(t, ok)
}

func TestLuminance(t *testing.T) {
	assert.Equal(t, 0.0, palette.Luminance("#000000"))
	assert.Equal(t, 255.0, palette.Luminance("#ffffff"))
	assert.InDelta(t, 0.299*255, palette.Luminance("#f00"), 1e-9)
	assert.InDelta(t, 0.587*255, palette.Luminance("#00ff00"), 1e-9)
}

func TestNearestName(t *testing.T) {
	assert.Equal(t, "Black", palette.NearestName("#010101"))
	assert.Equal(t, "White", palette.NearestName("#fefefe"))
	assert.Equal(t, "Red", palette.NearestName("#f00"))
	assert.Equal(t, "", palette.NearestName("nope"))
}
