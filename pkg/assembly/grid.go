package assembly

import (
	"github.com/chewxy/math32"

	"github.com/apexpath/stationviz/pkg/scene"
)

// gridPoints generates the coordinates start, start+step, ... along one
// axis. The count is floor((end-start)/step)+1 for a positive span;
// empty and negative spans produce no points, never a negative count.
func gridPoints(start, step, end float32) []float32 {
	if step <= 0 || end <= start {
		return nil
	}
	count := int(math32.Floor((end-start)/step)) + 1
	pts := make([]float32, 0, count)
	for i := 0; i < count; i++ {
		pts = append(pts, start+float32(i)*step)
	}
	return pts
}

// gridXZ lays out instance offsets on a regular horizontal grid at the
// given local height. Drain holes and vent slots use this.
func gridXZ(startX, stepX, endX, startZ, stepZ, endZ, y float32) []scene.Vec3 {
	xs := gridPoints(startX, stepX, endX)
	zs := gridPoints(startZ, stepZ, endZ)
	if len(xs) == 0 || len(zs) == 0 {
		return nil
	}
	offsets := make([]scene.Vec3, 0, len(xs)*len(zs))
	for _, z := range zs {
		for _, x := range xs {
			offsets = append(offsets, scene.Vec3{X: x, Y: y, Z: z})
		}
	}
	return offsets
}

// gridXY lays out instance offsets on a vertical grid at the given
// local depth. Pegboard holes use this.
func gridXY(startX, stepX, endX, startY, stepY, endY, z float32) []scene.Vec3 {
	xs := gridPoints(startX, stepX, endX)
	ys := gridPoints(startY, stepY, endY)
	if len(xs) == 0 || len(ys) == 0 {
		return nil
	}
	offsets := make([]scene.Vec3, 0, len(xs)*len(ys))
	for _, y := range ys {
		for _, x := range xs {
			offsets = append(offsets, scene.Vec3{X: x, Y: y, Z: z})
		}
	}
	return offsets
}
