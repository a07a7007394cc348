// Package blob finds 4-connected regions of matching pixels.
package blob

import "image"

// Blob is a maximal 4-connected region of pixels satisfying a predicate.
type Blob struct {
	// Seed is the first pixel of the region in row-major order.
	Seed image.Point
	// Count is the number of pixels in the region.
	Count int
	// SumX and SumY accumulate the pixel coordinates.
	SumX, SumY int64
}

// Centroid returns the arithmetic mean of the region's pixel coordinates,
// truncated to integers.
func (b Blob) Centroid() image.Point {
	if b.Count == 0 {
		return b.Seed
	}
	return image.Point{
		X: int(b.SumX / int64(b.Count)),
		Y: int(b.SumY / int64(b.Count)),
	}
}

// offsets of the 4-connected neighborhood.
var (
	dx = [4]int{1, -1, 0, 0}
	dy = [4]int{0, 0, 1, -1}
)

// Detect scans a width×height grid in row-major order and returns every
// maximal 4-connected region of pixels for which match reports true, in the
// order their seeds are encountered. The predicate is evaluated exactly once
// per pixel; each call uses its own visited set.
func Detect(width, height int, match func(x, y int) bool) []Blob {
	if width <= 0 || height <= 0 {
		return nil
	}

	visited := make([]bool, width*height)
	var (
		blobs []Blob
		queue []image.Point
	)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if visited[i] {
				continue
			}
			visited[i] = true
			if !match(x, y) {
				continue
			}

			b := Blob{Seed: image.Point{X: x, Y: y}}
			queue = append(queue[:0], b.Seed)

			for head := 0; head < len(queue); head++ {
				pt := queue[head]
				b.Count++
				b.SumX += int64(pt.X)
				b.SumY += int64(pt.Y)

				for k := 0; k < 4; k++ {
					nx, ny := pt.X+dx[k], pt.Y+dy[k]
					if nx < 0 || nx >= width || ny < 0 || ny >= height {
						continue
					}
					j := ny*width + nx
					if visited[j] {
						continue
					}
					visited[j] = true
					if match(nx, ny) {
						queue = append(queue, image.Point{X: nx, Y: ny})
					}
				}
			}

			blobs = append(blobs, b)
		}
	}

	return blobs
}
