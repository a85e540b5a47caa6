package activitydb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCollection binds the capability set to a Redis hash. Each
// document is stored as JSON under its key in one hash, with a
// companion list recording insertion order. Filters evaluate
// client-side against the decoded documents.
//
// This backend is only used when explicitly configured; the automatic
// selection path probes MongoDB and falls back to memory.
type RedisCollection struct {
	rdb     *redis.Client
	name    string
	metrics Metrics
}

// NewRedisCollection wraps an existing Redis client.
func NewRedisCollection(rdb *redis.Client, name string) *RedisCollection {
	return &RedisCollection{rdb: rdb, name: name, metrics: &NoOpMetrics{}}
}

// SetMetrics updates the metrics collector for this collection.
func (c *RedisCollection) SetMetrics(metrics Metrics) {
	c.metrics = metrics
}

func (c *RedisCollection) hashKey() string  { return "activitydb:" + c.name + ":docs" }
func (c *RedisCollection) orderKey() string { return "activitydb:" + c.name + ":order" }

// Count returns the number of documents matching the filter. A nil or
// empty filter is answered with HLEN without decoding anything.
func (c *RedisCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	if len(filter) == 0 {
		n, err := c.rdb.HLen(ctx, c.hashKey()).Result()
		if err != nil {
			return 0, fmt.Errorf("count %s: %w", c.name, err)
		}
		return n, nil
	}

	docs, err := c.all(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, doc := range docs {
		if filter.Matches(doc) {
			n++
		}
	}
	return n, nil
}

// Insert stores the document under its key, overwriting silently. The
// order list is only extended when the key is new to the hash.
func (c *RedisCollection) Insert(ctx context.Context, doc Document) error {
	data, err := json.Marshal(doc.Fields)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", c.name, doc.Key, err)
	}

	added, err := c.rdb.HSet(ctx, c.hashKey(), doc.Key, data).Result()
	if err != nil {
		return fmt.Errorf("insert %s/%s: %w", c.name, doc.Key, err)
	}
	if added > 0 {
		if err := c.rdb.RPush(ctx, c.orderKey(), doc.Key).Err(); err != nil {
			return fmt.Errorf("insert %s/%s: %w", c.name, doc.Key, err)
		}
	}
	c.metrics.Increment(MetricInsertSuccess, "collection", c.name)
	return nil
}

// Find returns the documents matching the filter in insertion order.
func (c *RedisCollection) Find(ctx context.Context, filter Filter) ([]Document, error) {
	start := time.Now()

	docs, err := c.all(ctx)
	if err != nil {
		return nil, err
	}

	var results []Document
	for _, doc := range docs {
		if filter.Matches(doc) {
			results = append(results, doc)
		}
	}

	c.metrics.Timing(MetricFindDuration, time.Since(start), "collection", c.name)
	return results, nil
}

// FindOne returns the document for an exact key.
func (c *RedisCollection) FindOne(ctx context.Context, key string) (Document, bool, error) {
	data, err := c.rdb.HGet(ctx, c.hashKey(), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Document{}, false, nil
	}
	if err != nil {
		return Document{}, false, fmt.Errorf("find one %s/%s: %w", c.name, key, err)
	}

	doc, err := c.decode(key, data)
	if err != nil {
		return Document{}, false, err
	}
	return doc, true, nil
}

// Update applies one mutation via read-modify-write. An unknown key
// reports 0.
func (c *RedisCollection) Update(ctx context.Context, key string, m Mutation) (int64, error) {
	doc, found, err := c.FindOne(ctx, key)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}

	modified := m.apply(doc.Fields)

	data, err := json.Marshal(doc.Fields)
	if err != nil {
		return 0, fmt.Errorf("encode %s/%s: %w", c.name, key, err)
	}
	if err := c.rdb.HSet(ctx, c.hashKey(), key, data).Err(); err != nil {
		return 0, fmt.Errorf("update %s/%s: %w", c.name, key, err)
	}
	c.metrics.Increment(MetricUpdateApplied, "collection", c.name)
	return modified, nil
}

// DistinctWeekdays returns the ascending-sorted set of weekday names
// referenced by any document's schedule.
func (c *RedisCollection) DistinctWeekdays(ctx context.Context) ([]string, error) {
	docs, err := c.all(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, doc := range docs {
		for _, day := range asStringSlice(doc.Schedule()[FieldDays]) {
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

// all loads every document in insertion order.
func (c *RedisCollection) all(ctx context.Context) ([]Document, error) {
	keys, err := c.rdb.LRange(ctx, c.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	raw, err := c.rdb.HMGet(ctx, c.hashKey(), keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.name, err)
	}

	docs := make([]Document, 0, len(keys))
	for i, key := range keys {
		data, ok := raw[i].(string)
		if !ok {
			continue // order entry without a hash field
		}
		doc, err := c.decode(key, []byte(data))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (c *RedisCollection) decode(key string, data []byte) (Document, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return Document{}, fmt.Errorf("decode %s/%s: %w", c.name, key, err)
	}
	return Document{Key: key, Fields: fields}, nil
}
