package render

import (
	"fmt"
	"strings"
	"sync"
)

// Icon shapes
const (
	ShapeCircle = "circle"
	ShapePin    = "pin"
)

// POI icon colors
const (
	poiCommentColor   = "#f39c12"
	poiNoCommentColor = "#7f8c8d"
)

type iconKey struct {
	shape string
	color string
}

// IconCache memoizes marker images by (shape, color)
type IconCache struct {
	mu    sync.Mutex
	icons map[iconKey]string
}

// NewIconCache creates an empty icon cache
func NewIconCache() *IconCache {
	return &IconCache{icons: make(map[iconKey]string)}
}

// IconID is the stable name of an icon, used in feature properties
func IconID(shape, color string) string {
	return shape + "-" + strings.TrimPrefix(strings.ToLower(color), "#")
}

// Get returns the icon id, building and caching the SVG on first use
func (c *IconCache) Get(shape, color string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := iconKey{shape: shape, color: strings.ToLower(color)}
	if _, ok := c.icons[key]; !ok {
		c.icons[key] = drawIcon(shape, key.color)
	}
	return IconID(shape, color)
}

// SVG returns a cached icon by id
func (c *IconCache) SVG(id string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, svg := range c.icons {
		if IconID(k.shape, k.color) == id {
			return svg, true
		}
	}
	return "", false
}

// All returns every cached icon keyed by id
func (c *IconCache) All() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]string, len(c.icons))
	for k, svg := range c.icons {
		out[IconID(k.shape, k.color)] = svg
	}
	return out
}

// Len returns the number of cached icons
func (c *IconCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.icons)
}

func drawIcon(shape, color string) string {
	switch shape {
	case ShapePin:
		return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="24" height="32" viewBox="0 0 24 32">`+
			`<path d="M12 0C5.4 0 0 5.4 0 12c0 9 12 20 12 20s12-11 12-20C24 5.4 18.6 0 12 0z" fill="%s" stroke="#ffffff" stroke-width="2"/>`+
			`<circle cx="12" cy="12" r="4" fill="#ffffff"/></svg>`, color)
	default:
		return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 16 16">`+
			`<circle cx="8" cy="8" r="6" fill="%s" stroke="#ffffff" stroke-width="2"/></svg>`, color)
	}
}
