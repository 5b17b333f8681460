package strip

// binaryMask is a row-major foreground mask.
type binaryMask struct {
	width  int
	height int
	pix    []bool
}

func newBinaryMask(width, height int) *binaryMask {
	return &binaryMask{width: width, height: height, pix: make([]bool, width*height)}
}

// invertIfBorderDominant flips the mask when most border pixels are
// foreground, so that whatever surrounds the object is always background.
func (m *binaryMask) invertIfBorderDominant() {
	var fg, border int
	count := func(x, y int) {
		border++
		if m.pix[y*m.width+x] {
			fg++
		}
	}
	for x := 0; x < m.width; x++ {
		count(x, 0)
		if m.height > 1 {
			count(x, m.height-1)
		}
	}
	for y := 1; y < m.height-1; y++ {
		count(0, y)
		if m.width > 1 {
			count(m.width-1, y)
		}
	}
	if fg*2 <= border {
		return
	}
	for i := range m.pix {
		m.pix[i] = !m.pix[i]
	}
}

// component is one connected set of equal-valued mask pixels. Foreground
// components use 8-connectivity and background components 4-connectivity,
// the usual pairing that makes every background hole closed.
type component struct {
	foreground bool
	size       int
	touches    bool // reaches the image border
	// parent is the component directly above this component's first pixel
	// in raster order, or -1 on the top row. For a hole it is the enclosing
	// foreground component; for a foreground component it is the background
	// it sits in.
	parent int

	minX, minY, maxX, maxY int
}

// region is an outermost foreground object together with everything it
// encloses.
type region struct {
	box  BoundingBox
	area int
}

// externalRegions returns the outermost foreground objects of the mask in
// raster order of their first pixel. The area of each region counts its own
// pixels, its holes, and anything nested inside those holes, which is the
// area its outer contour encloses.
func externalRegions(m *binaryMask) []region {
	labels := make([]int, len(m.pix))
	for i := range labels {
		labels[i] = -1
	}

	var comps []component
	stack := make([]int, 0, 64)

	for start := range m.pix {
		if labels[start] >= 0 {
			continue
		}
		fg := m.pix[start]
		id := len(comps)
		sx, sy := start%m.width, start/m.width
		c := component{foreground: fg, parent: -1, minX: sx, minY: sy, maxX: sx, maxY: sy}
		if sy > 0 {
			c.parent = labels[start-m.width]
		}

		labels[start] = id
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := p%m.width, p/m.width

			c.size++
			if x == 0 || y == 0 || x == m.width-1 || y == m.height-1 {
				c.touches = true
			}
			if x < c.minX {
				c.minX = x
			}
			if x > c.maxX {
				c.maxX = x
			}
			if y > c.maxY {
				c.maxY = y
			}

			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if !fg && dx != 0 && dy != 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= m.width || ny >= m.height {
						continue
					}
					q := ny*m.width + nx
					if labels[q] < 0 && m.pix[q] == fg {
						labels[q] = id
						stack = append(stack, q)
					}
				}
			}
		}
		comps = append(comps, c)
	}

	// root maps every enclosed component to the outermost foreground
	// component around it; -1 marks open background.
	root := make([]int, len(comps))
	for i := range root {
		root[i] = -2
	}
	var resolve func(id int) int
	resolve = func(id int) int {
		if root[id] != -2 {
			return root[id]
		}
		c := comps[id]
		switch {
		case !c.foreground && c.touches:
			root[id] = -1
		case !c.foreground:
			root[id] = resolve(c.parent)
		case c.parent < 0:
			root[id] = id
		default:
			if r := resolve(c.parent); r >= 0 {
				root[id] = r
			} else {
				root[id] = id
			}
		}
		return root[id]
	}

	area := make(map[int]int)
	var order []int
	for id := range comps {
		r := resolve(id)
		if r < 0 {
			continue
		}
		if r == id {
			order = append(order, id)
		}
		area[r] += comps[id].size
	}

	regions := make([]region, 0, len(order))
	for _, id := range order {
		c := comps[id]
		regions = append(regions, region{
			box: BoundingBox{
				X:      c.minX,
				Y:      c.minY,
				Width:  c.maxX - c.minX + 1,
				Height: c.maxY - c.minY + 1,
			},
			area: area[id],
		})
	}
	return regions
}

// largestRegion returns the region with the greatest enclosed area. Equal
// areas keep the first region in raster order.
func largestRegion(regions []region) (region, bool) {
	if len(regions) == 0 {
		return region{}, false
	}
	best := regions[0]
	for _, r := range regions[1:] {
		if r.area > best.area {
			best = r
		}
	}
	return best, true
}
