package watermark

// Point is a mark anchor in page units, origin at the bottom-left corner
// of the page (PDF user space).
type Point struct {
	X float64
	Y float64
}

// TilePositions returns the anchors for the repeating background mark on a
// pageWidth×pageHeight page. Coverage runs from -pageWidth to 2×pageWidth
// (exclusive) at fixed strides, and equivalently for the height, so the
// marks stay full-bleed even if the page content is later cropped. Strides
// never scale with the page; only the number of anchors does.
func TilePositions(pageWidth, pageHeight, strideX, strideY float64) []Point {
	if pageWidth <= 0 || pageHeight <= 0 || strideX <= 0 || strideY <= 0 {
		return nil
	}

	var positions []Point
	for x := -pageWidth; x < pageWidth*2; x += strideX {
		for y := -pageHeight; y < pageHeight*2; y += strideY {
			positions = append(positions, Point{X: x, Y: y})
		}
	}
	return positions
}

// CenterFontSize returns the font size of the main centered mark: 13% of
// the smaller page dimension.
func CenterFontSize(pageWidth, pageHeight float64) float64 {
	return 0.13 * min(pageWidth, pageHeight)
}
