// Package render draws color assignments as horizontal bar strips, one cell
// per car in sequence order, black cars dark.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"paintshop/internal/cqm"
)

const cellWidth = 8

var goldenRatio = (1 + math.Sqrt(5)) / 2

// Bars writes a grayscale PNG strip for an assignment. Pure with respect to
// the assignment; the only side effect is the written file.
func Bars(assignment cqm.Assignment, file string) error {
	if len(assignment) == 0 {
		return fmt.Errorf("cannot render an empty assignment")
	}

	width := len(assignment) * cellWidth
	height := int(math.Round(float64(width) / goldenRatio))
	if height < 1 {
		height = 1
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for i, value := range assignment {
		cell := color.Gray{Y: 255}
		if value == 1 {
			cell = color.Gray{Y: 0}
		}
		for x := i * cellWidth; x < (i+1)*cellWidth; x++ {
			for y := 0; y < height; y++ {
				img.SetGray(x, y, cell)
			}
		}
	}

	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	handle, err := os.Create(file)
	if err != nil {
		return err
	}
	defer handle.Close()

	return png.Encode(handle, img)
}
