package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lowerCaser performs Unicode-correct lowercasing for cache keys.
var lowerCaser = cases.Lower(language.Und)

// NormalizePrompt derives the cache key from free-text input: surrounding
// whitespace trimmed, then lowercased.
func NormalizePrompt(prompt string) string {
	return lowerCaser.String(strings.TrimSpace(prompt))
}

// PromptCache memoizes backend responses keyed by normalized prompt text.
// The mapping lives in one JSON file whose key order records insertion
// order; the whole file is rewritten under a cache-wide mutex on every Set.
// There is no eviction, no size bound, and no TTL.
type PromptCache struct {
	path string
	mu   sync.Mutex
}

// NewPromptCache returns a cache backed by the given file path.
func NewPromptCache(path string) *PromptCache {
	return &PromptCache{path: path}
}

// Get returns the cached response for prompt, if any. Load failures are
// treated as a miss, matching the cache's best-effort role.
func (c *PromptCache) Get(prompt string) (string, bool) {
	entries, err := c.load()
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.key == NormalizePrompt(prompt) {
			return e.value, true
		}
	}
	return "", false
}

// Set writes or overwrites the normalized key's entry and rewrites the
// backing file. Overwriting keeps the key's original position; new keys
// append, so file order stays insertion order.
func (c *PromptCache) Set(prompt, response string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.load()
	if err != nil && !errors.Is(err, ErrCorruptData) {
		return err
	}
	key := NormalizePrompt(prompt)
	found := false
	for i := range entries {
		if entries[i].key == key {
			entries[i].value = response
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, cacheEntry{key: key, value: response})
	}
	return c.save(entries)
}

// RecentKeys returns up to n keys in insertion order, truncated to the most
// recent n (oldest of the retained keys first). n <= 0 yields nil.
func (c *PromptCache) RecentKeys(n int) []string {
	if n <= 0 {
		return nil
	}
	entries, err := c.load()
	if err != nil || len(entries) == 0 {
		return nil
	}
	start := 0
	if len(entries) > n {
		start = len(entries) - n
	}
	keys := make([]string, 0, len(entries)-start)
	for _, e := range entries[start:] {
		keys = append(keys, e.key)
	}
	return keys
}

// cacheEntry is one key/value pair in file order.
type cacheEntry struct {
	key   string
	value string
}

// load parses the backing file preserving key order. A missing file yields
// an empty slice; invalid JSON yields ErrCorruptData.
func (c *PromptCache) load() ([]cacheEntry, error) {
	raw, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptData, c.path, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: %s: top-level value is not an object", ErrCorruptData, c.path)
	}

	var entries []cacheEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptData, c.path, err)
		}
		key, _ := keyTok.(string)
		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: %s: value for %q: %v", ErrCorruptData, c.path, key, err)
		}
		entries = append(entries, cacheEntry{key: key, value: value})
	}
	return entries, nil
}

// save rewrites the backing file, emitting keys in slice order so insertion
// order survives the round trip.
func (c *PromptCache) save(entries []cacheEntry) error {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, e := range entries {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		k, err := json.Marshal(e.key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(e.value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
	}
	if len(entries) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return writeBytesAtomic(c.path, buf.Bytes())
}
