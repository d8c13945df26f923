package fontface

import "sync"

// Cache loads faces by file path and keeps them for reuse. Lookups are
// safe for concurrent use; the *Face values it hands out are shared, so
// callers shape through them from one goroutine at a time as usual.
type Cache struct {
	mu    sync.Mutex
	faces map[string]*Face
}

func NewCache() *Cache {
	return &Cache{faces: make(map[string]*Face)}
}

// Load returns the face for path, reading and parsing the file on the
// first request. Failed loads are not cached.
func (c *Cache) Load(path string) (*Face, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.faces[path]; ok {
		return f, nil
	}
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.faces[path] = f
	return f, nil
}

// Len reports the number of cached faces.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.faces)
}

// Clear drops all cached faces.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faces = make(map[string]*Face)
}
