package dashboard

import (
	"math"

	"github.com/driftlab/pulseboard/internal/module"
)

// findOptimalPosition scans left to right, wrapping rows, until it finds a
// spot whose rectangle overlaps no existing module. Automatic placement
// never overlaps; manual drag may, by user choice.
//
// Caller must hold c.mu.
func (c *Core) findOptimalPosition(size module.Size) module.Position {
	padding := c.opts.Padding
	x, y := padding, padding

	for {
		pos := module.Position{X: x, Y: y}
		if !c.overlapsAny(pos, size) {
			return pos
		}
		x += size.Width + padding
		if x+size.Width > c.opts.MaxRowWidth {
			x = padding
			y += size.Height + padding
		}
	}
}

// overlapsAny reports whether the rectangle intersects any live module.
// Caller must hold c.mu.
func (c *Core) overlapsAny(pos module.Position, size module.Size) bool {
	for _, m := range c.modules {
		if m.Intersects(pos, size) {
			return true
		}
	}
	return false
}

// snapPosition rounds a position to the grid pitch when grid snap is on.
// Caller must hold c.mu.
func (c *Core) snapPosition(pos module.Position) module.Position {
	if !c.settings.Interaction.SnapToGrid || c.opts.GridSize <= 0 {
		return pos
	}
	grid := c.opts.GridSize
	pos.X = math.Round(pos.X/grid) * grid
	pos.Y = math.Round(pos.Y/grid) * grid
	return pos
}

// nextZIndex returns max(existing z)+1, or 1 when no modules exist.
// Caller must hold c.mu.
func (c *Core) nextZIndex() int {
	max := 0
	for _, m := range c.modules {
		if m.ZIndex > max {
			max = m.ZIndex
		}
	}
	return max + 1
}
