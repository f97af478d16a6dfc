package anonymizer

// Cache remembers the replacement generated for each original value so that
// repeated occurrences of the same original map to the same synthetic value
// within a run. The key is the original text, not the strategy that produced
// the replacement. Entries are never evicted; the cache lives exactly as long
// as the run that created it.
//
// A Cache is not safe for concurrent use. Pipelines running in parallel must
// hold separate instances or synchronize externally.
type Cache struct {
	entries map[string]string
}

// NewCache returns an empty relationship cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]string)}
}

// GetOrGenerate returns the replacement recorded for original. On first sight
// of original it invokes generate exactly once and stores the result.
func (c *Cache) GetOrGenerate(original string, generate func() string) string {
	if v, ok := c.entries[original]; ok {
		return v
	}
	v := generate()
	c.entries[original] = v
	return v
}

// Len reports how many distinct originals have been cached.
func (c *Cache) Len() int {
	return len(c.entries)
}
