package annotate

import (
	"fmt"
	"image"
)

// LayoutLines returns the baseline origin of each line. The first line sits
// on anchor; every later line drops by the measured height of the line
// above it plus gap.
func LayoutLines(lines []string, anchor image.Point, gap int, measure func(string) (image.Point, error)) ([]image.Point, error) {
	origins := make([]image.Point, 0, len(lines))
	y := anchor.Y
	for i := range lines {
		if i > 0 {
			size, err := measure(lines[i-1])
			if err != nil {
				return nil, fmt.Errorf("measure %q: %w", lines[i-1], err)
			}
			y += size.Y + gap
		}
		origins = append(origins, image.Pt(anchor.X, y))
	}
	return origins, nil
}
