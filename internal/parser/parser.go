package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sokinpui/recolor/model"
	"github.com/sokinpui/recolor/palette"
)

var (
	// mappingLineRegex accepts "#old -> #new", "#old => #new", "#old=#new",
	// "#old:#new", "#old,#new" and "#old #new".
	mappingLineRegex = regexp.MustCompile(
		`^(?P<original>#[0-9A-Za-z]+)\s*(?:->|=>|=|:|,)?\s*(?P<replacement>#[0-9A-Za-z]+)\s*[,;]?$`)

	fenceRegex = regexp.MustCompile("(?m)^\\s*(```|~~~)")
)

// ParseMappings reads color mappings, one per line. If content is markdown
// with code blocks, only the code blocks are read, so a mapping list can be
// pasted together with surrounding notes.
func ParseMappings(content string) ([]model.ColorMapping, error) {
	sections := []string{content}
	if fenceRegex.MatchString(content) {
		blocks, err := ExtractCodeBlocks([]byte(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse markdown: %w", err)
		}
		if len(blocks) > 0 {
			sections = blocks
		}
	}

	var mappings []model.ColorMapping
	for _, section := range sections {
		section = strings.ReplaceAll(section, "\r\n", "\n")
		for i, line := range strings.Split(section, "\n") {
			line = strings.TrimSpace(line)
			if isSkippable(line) {
				continue
			}
			mapping, err := ParseMapping(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			mappings = append(mappings, mapping)
		}
	}
	return mappings, nil
}

// ParseMapping parses a single "#old -> #new" pair.
func ParseMapping(s string) (model.ColorMapping, error) {
	match := mappingLineRegex.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return model.ColorMapping{}, fmt.Errorf("expected '#old -> #new', got %q", s)
	}

	result := make(map[string]string)
	for i, name := range mappingLineRegex.SubexpNames() {
		if i != 0 && name != "" {
			result[name] = match[i]
		}
	}

	original, err := palette.ParseHex(result["original"])
	if err != nil {
		return model.ColorMapping{}, err
	}
	replacement, err := palette.ParseHex(result["replacement"])
	if err != nil {
		return model.ColorMapping{}, err
	}
	return model.ColorMapping{Original: original, Replacement: replacement}, nil
}

// isSkippable reports blank lines, comments and headings. "# x" and "## x"
// are comments; "#abc" is a color.
func isSkippable(line string) bool {
	return line == "" ||
		line == "#" ||
		strings.HasPrefix(line, "//") ||
		strings.HasPrefix(line, "# ") ||
		strings.HasPrefix(line, "##")
}
