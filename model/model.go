package model

// HexColor is a color in "#rrggbb" form, always lower-case once normalized.
type HexColor = string

// SvgFile is an SVG file loaded into memory.
type SvgFile struct {
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	Content string `json:"content"`
}

// ColorMapping describes a single substitution request.
type ColorMapping struct {
	Original    HexColor `json:"original"`
	Replacement HexColor `json:"replacement"`
}

// ScanResult is the outcome of scanning a theme directory.
type ScanResult struct {
	SourceDir     string    `json:"source_dir"`
	PreviewSvgs   []SvgFile `json:"preview_svgs"`
	TotalSvgCount int       `json:"total_svg_count"`
	NonSvgCount   int       `json:"non_svg_count"`
}

// ExportResult is the outcome of exporting a recolored theme.
type ExportResult struct {
	OutputDir     string `json:"output_dir"`
	SvgsProcessed int    `json:"svgs_processed"`
	FilesCopied   int    `json:"files_copied"`
}

// Summary holds the results of an operation for display.
type Summary struct {
	Message  string         `json:"message,omitempty"`
	Scan     *ScanResult    `json:"scan,omitempty"`
	Colors   []HexColor     `json:"colors,omitempty"`
	Mappings []ColorMapping `json:"mappings,omitempty"`
	Export   *ExportResult  `json:"export,omitempty"`
	Reverted []string       `json:"reverted,omitempty"`
	Restored []string       `json:"restored,omitempty"`
}
