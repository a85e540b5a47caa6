package activitydb

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryCollection is the fallback backend: one collection held in an
// in-process map, answering the same operations as the real database.
// It exists so the application keeps working when no database is
// reachable at startup; contents live and die with the process.
//
// Documents are deep-copied on the way in and out, so callers can never
// alias the stored state. An RWMutex guards the maps; the surrounding
// application is still expected to serialize writers per collection,
// but concurrent readers are safe.
type MemoryCollection struct {
	mu      sync.RWMutex
	name    string
	keys    []string // insertion order
	docs    map[string]map[string]any
	logger  Logger
	metrics Metrics
}

// NewMemoryCollection creates an empty fallback collection with no-op
// logging and metrics.
func NewMemoryCollection(name string) *MemoryCollection {
	return &MemoryCollection{
		name:    name,
		docs:    make(map[string]map[string]any),
		logger:  &NoOpLogger{},
		metrics: &NoOpMetrics{},
	}
}

// SetLogger updates the logger for this collection.
func (c *MemoryCollection) SetLogger(logger Logger) {
	c.logger = logger
}

// SetMetrics updates the metrics collector for this collection.
func (c *MemoryCollection) SetMetrics(metrics Metrics) {
	c.metrics = metrics
}

// Count returns the number of documents matching the filter. A nil or
// empty filter counts everything without evaluating predicates.
func (c *MemoryCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(filter) == 0 {
		return int64(len(c.keys)), nil
	}

	var n int64
	for _, key := range c.keys {
		if filter.Matches(Document{Key: key, Fields: c.docs[key]}) {
			n++
		}
	}
	return n, nil
}

// Insert stores the document under its key, silently overwriting any
// existing document at that key.
func (c *MemoryCollection) Insert(ctx context.Context, doc Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.docs[doc.Key]; !exists {
		c.keys = append(c.keys, doc.Key)
	}
	c.docs[doc.Key] = copyFields(doc.Fields)
	c.metrics.Increment(MetricInsertSuccess, "collection", c.name)
	return nil
}

// Find returns the documents matching the filter in insertion order.
// The result is recomputed per call and holds independent copies.
func (c *MemoryCollection) Find(ctx context.Context, filter Filter) ([]Document, error) {
	start := time.Now()
	c.mu.RLock()
	defer c.mu.RUnlock()

	var results []Document
	for _, key := range c.keys {
		doc := Document{Key: key, Fields: c.docs[key]}
		if doc.Schedule() == nil && len(filter) > 0 {
			c.logger.Debug("document has no schedule details, criteria compare against empty values",
				"collection", c.name, "key", key)
		}
		if !filter.Matches(doc) {
			continue
		}
		results = append(results, Document{Key: key, Fields: copyFields(c.docs[key])})
	}

	c.metrics.Timing(MetricFindDuration, time.Since(start), "collection", c.name)
	return results, nil
}

// FindOne returns the document for an exact key. Absence is reported
// via the bool, never as an error.
func (c *MemoryCollection) FindOne(ctx context.Context, key string) (Document, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fields, ok := c.docs[key]
	if !ok {
		return Document{}, false, nil
	}
	return Document{Key: key, Fields: copyFields(fields)}, true, nil
}

// Update applies one mutation to the document at the key and returns
// the modification count. An unknown key is a no-op reported as 0.
func (c *MemoryCollection) Update(ctx context.Context, key string, m Mutation) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fields, ok := c.docs[key]
	if !ok {
		return 0, nil
	}
	modified := m.apply(fields)
	c.metrics.Increment(MetricUpdateApplied, "collection", c.name)
	return modified, nil
}

// DistinctWeekdays returns the ascending-sorted set of weekday names
// referenced by any document's schedule.
func (c *MemoryCollection) DistinctWeekdays(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	for _, fields := range c.docs {
		for _, day := range asStringSlice(asFieldMap(fields[FieldScheduleDetails])[FieldDays]) {
			seen[day] = true
		}
	}

	days := make([]string, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Strings(days)
	return days, nil
}

// copyFields deep-copies a document field map.
func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = copyValue(v)
	}
	return out
}

// copyValue deep-copies the value shapes documents are made of: nested
// field maps, string lists, generic lists, and scalars. Scalars are
// immutable and returned as-is.
func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyFields(val)
	case []string:
		return append([]string{}, val...)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return val
	}
}
