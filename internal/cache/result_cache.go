package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ResultCache guarda resultados de leitura serializados em msgpack.
// Cada entrada lembra as tabelas que tocou; uma escrita numa tabela
// invalida todas as entradas que a envolvem.
type ResultCache struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	byTable    map[string]map[string]struct{}
	maxEntries int
	ttl        time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	data      []byte
	tables    []string
	expiresAt time.Time
	lastUsed  time.Time
}

// New cria um cache com limite de entradas e TTL
func New(maxEntries int, ttl time.Duration) *ResultCache {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ResultCache{
		entries:    make(map[string]*entry),
		byTable:    make(map[string]map[string]struct{}),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

// Key deriva uma chave estável a partir da query e dos argumentos
func Key(query string, args []interface{}) (string, error) {
	h := sha256.New()
	h.Write([]byte(query))
	enc := msgpack.NewEncoder(h)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(args); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get decodifica a entrada em dest. Retorna false se ausente ou expirada.
func (c *ResultCache) Get(key string, dest interface{}) bool {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		c.misses.Add(1)
		return false
	}
	if err := msgpack.Unmarshal(e.data, dest); err != nil {
		c.misses.Add(1)
		return false
	}

	c.mu.Lock()
	e.lastUsed = time.Now()
	c.mu.Unlock()

	c.hits.Add(1)
	return true
}

// Set guarda value sob key, associado às tabelas lidas pela query
func (c *ResultCache) Set(key string, tables []string, value interface{}) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLRU()
	}

	now := time.Now()
	c.entries[key] = &entry{
		data:      data,
		tables:    tables,
		expiresAt: now.Add(c.ttl),
		lastUsed:  now,
	}
	for _, table := range tables {
		keys, ok := c.byTable[table]
		if !ok {
			keys = make(map[string]struct{})
			c.byTable[table] = keys
		}
		keys[key] = struct{}{}
	}
	return nil
}

// Invalidate remove todas as entradas que leram a tabela
func (c *ResultCache) Invalidate(table string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.byTable[table] {
		c.removeLocked(key)
	}
	delete(c.byTable, table)
}

// Clear esvazia o cache
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.byTable = make(map[string]map[string]struct{})
}

func (c *ResultCache) removeLocked(key string) {
	e, ok := c.entries[key]
	if !ok {
		return
	}
	delete(c.entries, key)
	for _, table := range e.tables {
		if keys, ok := c.byTable[table]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.byTable, table)
			}
		}
	}
}

// evictLRU remove o item menos usado recentemente
func (c *ResultCache) evictLRU() {
	var oldestKey string
	var oldestTime time.Time
	first := true

	for key, e := range c.entries {
		if first || e.lastUsed.Before(oldestTime) {
			oldestKey = key
			oldestTime = e.lastUsed
			first = false
		}
	}

	if oldestKey != "" {
		c.removeLocked(oldestKey)
	}
}

// Cleanup remove entradas expiradas
func (c *ResultCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			c.removeLocked(key)
		}
	}
}

// StartCleanup inicia uma goroutine que limpa o cache periodicamente
func (c *ResultCache) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Cleanup()
			}
		}
	}()
}

// Stats retorna tamanho, acertos e faltas
func (c *ResultCache) Stats() (size int, hits, misses int64) {
	c.mu.RLock()
	size = len(c.entries)
	c.mu.RUnlock()
	return size, c.hits.Load(), c.misses.Load()
}
