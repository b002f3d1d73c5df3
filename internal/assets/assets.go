// Package assets handles model file lookup and caching.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Faultbox/posekit/pkg/loader"
)

// Manager resolves model names against search directories and caches the
// parsed results.
type Manager struct {
	dirs   []string
	loader *loader.Loader
	cache  *Cache
	mu     sync.RWMutex
}

// NewManager creates a new asset manager. A nil loader gets a default one.
func NewManager(l *loader.Loader) *Manager {
	if l == nil {
		l = &loader.Loader{}
	}
	return &Manager{
		loader: l,
		cache:  NewCache(),
	}
}

// AddDir adds a directory to the model search path.
// Directories are searched in reverse order (last added = highest priority).
func (m *Manager) AddDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("adding search dir %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding search dir %s: not a directory", path)
	}

	m.mu.Lock()
	m.dirs = append(m.dirs, path)
	m.mu.Unlock()

	return nil
}

// Load resolves a model name and returns the parsed model, using the cache
// when the name was loaded before.
func (m *Manager) Load(name string) (*loader.Model, error) {
	if model, ok := m.cache.Get(name); ok {
		return model, nil
	}

	path, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}
	model, err := m.loader.Load(path)
	if err != nil {
		return nil, err
	}

	m.cache.Set(name, model)
	return model, nil
}

// Resolve finds the file a model name refers to. Names without an extension
// also try .gltf and .glb. A path that exists outside the search dirs is
// accepted as-is.
func (m *Manager) Resolve(name string) (string, error) {
	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = append(candidates, name+".gltf", name+".glb")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.dirs) - 1; i >= 0; i-- {
		for _, c := range candidates {
			path := filepath.Join(m.dirs[i], c)
			if isFile(path) {
				return path, nil
			}
		}
	}
	for _, c := range candidates {
		if isFile(c) {
			return c, nil
		}
	}

	return "", fmt.Errorf("model not found: %s", name)
}

// Clear drops all cached models.
func (m *Manager) Clear() {
	m.cache.Clear()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Cache is a simple in-memory cache for parsed models.
type Cache struct {
	models map[string]*loader.Model
	mu     sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		models: make(map[string]*loader.Model),
	}
}

// Get retrieves a model from cache.
func (c *Cache) Get(key string) (*loader.Model, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	model, ok := c.models[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return model, ok
}

// Set stores a model in cache.
func (c *Cache) Set(key string, model *loader.Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.models[key] = model
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.models = make(map[string]*loader.Model)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
