package activitydb

import "go.mongodb.org/mongo-driver/v2/bson"

// Mutation is one change applied to the document at a given key. Like
// the filter criteria, the set is closed: field merges, list appends,
// and list removals are the only write shapes the application issues.
type Mutation interface {
	// apply mutates the document's field map in place and returns the
	// modification count contribution (0 or 1). It is only invoked when
	// the key exists; missing keys short-circuit to 0 in the backend.
	apply(fields map[string]any) int64

	// bsonUpdate renders the mutation as a real-backend update document.
	bsonUpdate() bson.D
}

// SetFields merges the given fields into the document, overwriting
// existing values.
type SetFields map[string]any

func (m SetFields) apply(fields map[string]any) int64 {
	for k, v := range m {
		fields[k] = copyValue(v)
	}
	return 1
}

func (m SetFields) bsonUpdate() bson.D {
	return bson.D{{Key: "$set", Value: bson.M(m)}}
}

// AppendToList appends one value to a named list field, creating the
// list if it is absent.
type AppendToList struct {
	Field string
	Value any
}

func (m AppendToList) apply(fields map[string]any) int64 {
	switch list := fields[m.Field].(type) {
	case []string:
		if s, ok := m.Value.(string); ok {
			fields[m.Field] = append(list, s)
			return 1
		}
		// Mixed types force the generic representation.
		generic := make([]any, 0, len(list)+1)
		for _, item := range list {
			generic = append(generic, item)
		}
		fields[m.Field] = append(generic, copyValue(m.Value))
	case []any:
		fields[m.Field] = append(list, copyValue(m.Value))
	default:
		fields[m.Field] = []any{copyValue(m.Value)}
	}
	return 1
}

func (m AppendToList) bsonUpdate() bson.D {
	return bson.D{{Key: "$push", Value: bson.D{{Key: m.Field, Value: m.Value}}}}
}

// RemoveFromList removes the first occurrence of a value from a named
// list field. Removing a value that is not present, or naming a field
// that is not a list, is a no-op reported with a zero modification
// count.
type RemoveFromList struct {
	Field string
	Value any
}

func (m RemoveFromList) apply(fields map[string]any) int64 {
	switch list := fields[m.Field].(type) {
	case []string:
		want, ok := m.Value.(string)
		if !ok {
			return 0
		}
		for i, item := range list {
			if item == want {
				fields[m.Field] = append(append([]string{}, list[:i]...), list[i+1:]...)
				return 1
			}
		}
	case []any:
		for i, item := range list {
			if item == m.Value {
				fields[m.Field] = append(append([]any{}, list[:i]...), list[i+1:]...)
				return 1
			}
		}
	}
	return 0
}

func (m RemoveFromList) bsonUpdate() bson.D {
	return bson.D{{Key: "$pull", Value: bson.D{{Key: m.Field, Value: m.Value}}}}
}
