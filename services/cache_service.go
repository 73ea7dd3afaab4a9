package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/Aman5012/Food-Nutrition-Analyzer/models"
)

// NutritionCache maps classifier labels to nutrition records. Get is a pure
// read and never fails; Put stores the record and persists the full mapping.
type NutritionCache interface {
	Get(label string) (*models.NutritionRecord, bool)
	Put(label string, rec *models.NutritionRecord)
}

// FileCache is the production cache: an in-memory map backed by a single
// JSON snapshot file. The file is rewritten wholesale on every Put so it
// stays inspectable and editable by hand.
type FileCache struct {
	path    string
	mu      sync.RWMutex
	entries map[string]*models.NutritionRecord
}

// NewFileCache loads the snapshot at path. A missing or unreadable file
// starts an empty cache; the process keeps going either way.
func NewFileCache(path string) *FileCache {
	c := &FileCache{
		path:    path,
		entries: make(map[string]*models.NutritionRecord),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Local nutrition DB not found, starting with a fresh cache: %v", err)
		return c
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		log.Printf("Local nutrition DB unreadable, starting with a fresh cache: %v", err)
		c.entries = make(map[string]*models.NutritionRecord)
		return c
	}

	log.Printf("Loaded %d entries from local nutrition DB (cache)", len(c.entries))
	return c
}

func (c *FileCache) Get(label string) (*models.NutritionRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.entries[label]
	return rec, ok
}

// Put inserts the entry, then rewrites the snapshot while still holding the
// lock so concurrent misses cannot interleave their writes. A failed write
// is logged and the in-memory entry kept; the running process still serves
// it even though a restart would lose it.
func (c *FileCache) Put(label string, rec *models.NutritionRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[label] = rec
	if err := c.persistLocked(); err != nil {
		log.Printf("Could not write local nutrition DB: %v", err)
	}
}

func (c *FileCache) persistLocked() error {
	data, err := json.MarshalIndent(c.entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal nutrition DB: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.path, err)
	}
	return nil
}

// MemoryCache keeps entries in memory only. It backs tests and any
// deployment that does not want a snapshot file.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*models.NutritionRecord
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*models.NutritionRecord)}
}

func (c *MemoryCache) Get(label string) (*models.NutritionRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.entries[label]
	return rec, ok
}

func (c *MemoryCache) Put(label string, rec *models.NutritionRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[label] = rec
}
