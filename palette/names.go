package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/sokinpui/recolor/model"
)

// Reference colors used to give extracted colors a readable name.
var namedColors = map[string]string{
	"Black":     "#000000",
	"White":     "#FFFFFF",
	"Red":       "#FF0000",
	"Green":     "#008000",
	"Blue":      "#0000FF",
	"Yellow":    "#FFFF00",
	"Cyan":      "#00FFFF",
	"Magenta":   "#FF00FF",
	"Gray":      "#808080",
	"Silver":    "#C0C0C0",
	"Maroon":    "#800000",
	"Olive":     "#808000",
	"Lime":      "#00FF00",
	"Teal":      "#008080",
	"Navy":      "#000080",
	"Purple":    "#800080",
	"Orange":    "#FFA500",
	"Pink":      "#FFC0CB",
	"Brown":     "#A52A2A",
	"Gold":      "#FFD700",
	"Beige":     "#F5F5DC",
	"Turquoise": "#40E0D0",
	"Lavender":  "#E6E6FA",
	"Chocolate": "#D2691E",
	"Coral":     "#FF7F50",
}

// NearestName returns the reference color name closest to hex in CIE Lab
// space, or "" if hex cannot be parsed.
func NearestName(hex model.HexColor) string {
	input, err := colorful.Hex(Normalize(hex))
	if err != nil {
		return ""
	}

	best, bestDistance := "", math.Inf(1)
	for name, ref := range namedColors {
		refColor, _ := colorful.Hex(ref)
		distance := input.DistanceLab(refColor)
		// Map order is random; the name breaks ties so results are stable.
		if distance < bestDistance || (distance == bestDistance && name < best) {
			best, bestDistance = name, distance
		}
	}
	return best
}
