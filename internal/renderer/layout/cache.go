package layout

// LineCache keeps the layouts of recently drawn lines of one pane. A cached
// layout is reused only while the line text is unchanged.
//
// LineCache is not safe for concurrent use; a pane is drawn from a single
// goroutine.
type LineCache struct {
	engine  *LayoutEngine
	limit   int
	tick    uint64
	entries map[uint32]*cachedLine
}

type cachedLine struct {
	text   string
	layout *LineLayout
	used   uint64
}

// NewLineCache creates a cache holding at most limit lines. A limit below 1
// holds a single line.
func NewLineCache(engine *LayoutEngine, limit int) *LineCache {
	return &LineCache{
		engine:  engine,
		limit:   max(limit, 1),
		entries: make(map[uint32]*cachedLine),
	}
}

// Get returns the layout of line, computing it when text differs from
// the cached copy.
func (c *LineCache) Get(line uint32, text string) *LineLayout {
	c.tick++
	if e, ok := c.entries[line]; ok && e.text == text {
		e.used = c.tick
		return e.layout
	}

	if _, ok := c.entries[line]; !ok && len(c.entries) >= c.limit {
		c.dropOldest()
	}
	l := c.engine.Layout(text, line)
	c.entries[line] = &cachedLine{text: text, layout: l, used: c.tick}
	return l
}

// InvalidateAll forgets every layout, as after the document is reloaded.
func (c *LineCache) InvalidateAll() {
	clear(c.entries)
}

// dropOldest evicts the least recently used line.
func (c *LineCache) dropOldest() {
	var (
		oldest uint32
		used   uint64
		found  bool
	)
	for line, e := range c.entries {
		if !found || e.used < used {
			oldest, used, found = line, e.used, true
		}
	}
	if found {
		delete(c.entries, oldest)
	}
}
