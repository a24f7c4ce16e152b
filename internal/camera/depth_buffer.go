package camera

// DefaultDepthMargin lets sprites standing flush against a wall survive
// the per-column depth test.
const DefaultDepthMargin = 0.12

// DepthBuffer stores the wall distance drawn in every screen column.
type DepthBuffer struct {
	depths []float64
	margin float64
}

// NewDepthBuffer creates a buffer for a screen w columns wide.
func NewDepthBuffer(w int, margin float64) *DepthBuffer {
	if w < 0 {
		w = 0
	}
	return &DepthBuffer{depths: make([]float64, w), margin: margin}
}

// Width is the number of columns.
func (d *DepthBuffer) Width() int {
	return len(d.depths)
}

// Fill sets every column to depth.
func (d *DepthBuffer) Fill(depth float64) {
	for i := range d.depths {
		d.depths[i] = depth
	}
}

// Set records the wall depth of a column. Out-of-range columns are ignored.
func (d *DepthBuffer) Set(col int, depth float64) {
	if col >= 0 && col < len(d.depths) {
		d.depths[col] = depth
	}
}

// SetSpan records depth for columns [col, col+width).
func (d *DepthBuffer) SetSpan(col, width int, depth float64) {
	for i := col; i < col+width; i++ {
		d.Set(i, depth)
	}
}

// Visible reports whether something at depth is in front of the wall drawn
// in col.
func (d *DepthBuffer) Visible(col int, depth float64) bool {
	if col < 0 || col >= len(d.depths) {
		return false
	}
	return depth <= d.depths[col]+d.margin
}
