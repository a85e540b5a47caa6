package activitydb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoCollection binds the capability set to a real MongoDB
// collection. Filters and mutations are translated to their native
// operator form and evaluate server-side; documents are stored with
// the key as _id.
type MongoCollection struct {
	coll    *mongo.Collection
	metrics Metrics
}

// NewMongoCollection wraps an existing driver collection.
func NewMongoCollection(coll *mongo.Collection) *MongoCollection {
	return &MongoCollection{coll: coll, metrics: &NoOpMetrics{}}
}

// SetMetrics updates the metrics collector for this collection.
func (c *MongoCollection) SetMetrics(metrics Metrics) {
	c.metrics = metrics
}

// Count returns the number of documents matching the filter.
func (c *MongoCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, filter.bsonFilter())
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.coll.Name(), err)
	}
	return n, nil
}

// Insert stores the document under its key. A replace-with-upsert is
// used instead of a plain insert so duplicate keys overwrite silently,
// matching the fallback store.
func (c *MongoCollection) Insert(ctx context.Context, doc Document) error {
	fields := bson.M{"_id": doc.Key}
	for k, v := range doc.Fields {
		fields[k] = v
	}

	_, err := c.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: doc.Key}},
		fields,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("insert %s/%s: %w", c.coll.Name(), doc.Key, err)
	}
	c.metrics.Increment(MetricInsertSuccess, "collection", c.coll.Name())
	return nil
}

// Find returns the documents matching the filter in insertion order
// (MongoDB's natural order for unsorted queries).
func (c *MongoCollection) Find(ctx context.Context, filter Filter) ([]Document, error) {
	start := time.Now()

	cursor, err := c.coll.Find(ctx, filter.bsonFilter())
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var results []Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
		}
		results = append(results, documentFromBSON(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}

	c.metrics.Timing(MetricFindDuration, time.Since(start), "collection", c.coll.Name())
	return results, nil
}

// FindOne returns the document for an exact key. A missing document is
// reported via the bool, not as an error.
func (c *MongoCollection) FindOne(ctx context.Context, key string) (Document, bool, error) {
	var raw bson.M
	err := c.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Document{}, false, nil
	}
	if err != nil {
		return Document{}, false, fmt.Errorf("find one %s/%s: %w", c.coll.Name(), key, err)
	}
	return documentFromBSON(raw), true, nil
}

// Update applies one mutation to the document at the key and returns
// the driver's modified count. An unknown key reports 0.
func (c *MongoCollection) Update(ctx context.Context, key string, m Mutation) (int64, error) {
	res, err := c.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: key}}, m.bsonUpdate())
	if err != nil {
		return 0, fmt.Errorf("update %s/%s: %w", c.coll.Name(), key, err)
	}
	c.metrics.Increment(MetricUpdateApplied, "collection", c.coll.Name())
	return res.ModifiedCount, nil
}

// DistinctWeekdays runs the unwind/group/sort aggregation over the
// schedule weekday lists.
func (c *MongoCollection) DistinctWeekdays(ctx context.Context) ([]string, error) {
	daysPath := "$" + FieldScheduleDetails + "." + FieldDays
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: daysPath}},
		bson.D{{Key: "$group", Value: bson.D{{Key: "_id", Value: daysPath}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Day string `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", c.coll.Name(), err)
	}

	days := make([]string, 0, len(rows))
	for _, row := range rows {
		days = append(days, row.Day)
	}
	return days, nil
}

// documentFromBSON converts a decoded record into a Document, lifting
// the _id into the key and normalizing driver container types into the
// plain maps and slices the rest of the package works with.
func documentFromBSON(raw bson.M) Document {
	key, _ := raw["_id"].(string)
	fields := make(map[string]any, len(raw)-1)
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		fields[k] = normalizeBSONValue(v)
	}
	return Document{Key: key, Fields: fields}
}

// normalizeBSONValue flattens bson.D/bson.M/bson.A into map[string]any
// and []any so filter evaluation and callers see one representation
// regardless of backend.
func normalizeBSONValue(v any) any {
	switch val := v.(type) {
	case bson.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = normalizeBSONValue(e.Value)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeBSONValue(item)
		}
		return out
	case bson.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeBSONValue(item)
		}
		return out
	default:
		return val
	}
}
