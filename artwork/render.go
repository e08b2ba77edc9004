package artwork

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Render draws img as width x height terminal cells. Each cell shows two
// vertically stacked pixels using the upper half block.
func Render(img image.Image, width, height int) string {
	if img == nil || width <= 0 || height <= 0 {
		return ""
	}

	b := img.Bounds()
	if b.Empty() {
		return ""
	}

	sample := func(x, y int) lipgloss.Color {
		sx := b.Min.X + x*b.Dx()/width
		sy := b.Min.Y + y*b.Dy()/(height*2)
		r, g, bl, _ := img.At(sx, sy).RGBA()
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, bl>>8))
	}

	rows := make([]string, height)
	for row := 0; row < height; row++ {
		var line strings.Builder
		for x := 0; x < width; x++ {
			cell := lipgloss.NewStyle().
				Foreground(sample(x, row*2)).
				Background(sample(x, row*2+1))
			line.WriteString(cell.Render("▀"))
		}
		rows[row] = line.String()
	}
	return strings.Join(rows, "\n")
}
