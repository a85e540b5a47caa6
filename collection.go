package activitydb

import "context"

// Field names shared by every backend. The schedule substructure is the
// only nested document the query surface reaches into.
const (
	FieldScheduleDetails = "schedule_details"
	FieldDays            = "days"
	FieldStartTime       = "start_time"
	FieldEndTime         = "end_time"
	FieldParticipants    = "participants"
)

// Document is one record in a collection, identified by a unique key
// (activity name or account username).
type Document struct {
	Key    string
	Fields map[string]any
}

// Schedule returns the nested schedule substructure, or nil if the
// document has none. Filters treat a missing schedule as empty values.
func (d Document) Schedule() map[string]any {
	return asFieldMap(d.Fields[FieldScheduleDetails])
}

// Collection is the capability set shared by all backends. The backend
// selector binds each collection to exactly one implementation at
// startup; application code holds only this interface.
//
// Semantics all implementations must match:
//
//   - Count with a nil or empty filter counts every document.
//   - Insert silently overwrites any document already stored under the
//     same key.
//   - Find returns matching documents in insertion order, recomputed on
//     every call. Returned documents are independent copies.
//   - FindOne reports absence via the bool, never via an error.
//   - Update returns the number of modified documents (0 or 1). An
//     unknown key is a no-op, not an error.
type Collection interface {
	Count(ctx context.Context, filter Filter) (int64, error)
	Insert(ctx context.Context, doc Document) error
	Find(ctx context.Context, filter Filter) ([]Document, error)
	FindOne(ctx context.Context, key string) (Document, bool, error)
	Update(ctx context.Context, key string, m Mutation) (int64, error)

	// DistinctWeekdays returns the ascending-sorted set of weekday names
	// referenced by any document's schedule. It is the only aggregation
	// shape the application needs.
	DistinctWeekdays(ctx context.Context) ([]string, error)
}

// asFieldMap coerces a document value into a field map. Backends that
// round-trip through their wire format may hand back their own map
// types; all of them are map[string]any underneath.
func asFieldMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asStringSlice coerces a document value into a list of strings.
// In-memory documents hold []string, decoded documents hold []any.
func asStringSlice(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// asString coerces a scalar document value into a string, defaulting to
// "" so absent fields compare as less than everything.
func asString(v any) string {
	s, _ := v.(string)
	return s
}
