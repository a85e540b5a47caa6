package activitydb

import "go.mongodb.org/mongo-driver/v2/bson"

// Filter is an AND-combination of criteria. A nil or empty filter
// matches every document.
//
// The criterion set is deliberately closed: the application issues
// exactly three filter shapes (weekday membership, start-time floor,
// end-time ceiling), so they are modeled as concrete types instead of
// free-form field/operator maps. A filter shape that cannot be
// expressed here cannot be sent to a backend at all.
type Filter []Criterion

// Criterion is one predicate over a document's schedule substructure.
type Criterion interface {
	// matches evaluates the criterion against a document. Absent nested
	// fields behave as empty values: they never satisfy membership and
	// compare as less than every time string.
	matches(doc Document) bool

	// bsonElement renders the criterion in the real backend's native
	// filter form so it evaluates server-side.
	bsonElement() bson.E
}

// DaysAny matches documents whose schedule lists at least one of the
// given weekday names.
type DaysAny []string

func (c DaysAny) matches(doc Document) bool {
	days := asStringSlice(doc.Schedule()[FieldDays])
	for _, want := range c {
		for _, have := range days {
			if have == want {
				return true
			}
		}
	}
	return false
}

func (c DaysAny) bsonElement() bson.E {
	return bson.E{
		Key:   FieldScheduleDetails + "." + FieldDays,
		Value: bson.D{{Key: "$in", Value: []string(c)}},
	}
}

// StartsAtOrAfter matches documents whose schedule start time is at or
// after the given zero-padded "HH:MM" value. Times compare
// lexicographically.
type StartsAtOrAfter string

func (c StartsAtOrAfter) matches(doc Document) bool {
	return asString(doc.Schedule()[FieldStartTime]) >= string(c)
}

func (c StartsAtOrAfter) bsonElement() bson.E {
	return bson.E{
		Key:   FieldScheduleDetails + "." + FieldStartTime,
		Value: bson.D{{Key: "$gte", Value: string(c)}},
	}
}

// EndsAtOrBefore matches documents whose schedule end time is at or
// before the given zero-padded "HH:MM" value.
type EndsAtOrBefore string

func (c EndsAtOrBefore) matches(doc Document) bool {
	return asString(doc.Schedule()[FieldEndTime]) <= string(c)
}

func (c EndsAtOrBefore) bsonElement() bson.E {
	return bson.E{
		Key:   FieldScheduleDetails + "." + FieldEndTime,
		Value: bson.D{{Key: "$lte", Value: string(c)}},
	}
}

// Matches reports whether the document satisfies every criterion. The
// first failing criterion short-circuits evaluation.
func (f Filter) Matches(doc Document) bool {
	for _, c := range f {
		if !c.matches(doc) {
			return false
		}
	}
	return true
}

// bsonFilter renders the whole filter for the real backend. An empty
// filter renders as the match-all document.
func (f Filter) bsonFilter() bson.D {
	out := bson.D{}
	for _, c := range f {
		out = append(out, c.bsonElement())
	}
	return out
}
