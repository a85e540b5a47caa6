package activitydb

import (
	"context"
	"reflect"
	"testing"
)

func TestMemoryCollection_RoundTrip(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryCollection("activities")

	doc := scheduledDoc([]string{"Monday", "Friday"}, "15:15", "16:45")
	doc.Fields["description"] = "chess"
	doc.Fields[FieldParticipants] = []string{"michael@mergington.edu"}

	if err := coll.Insert(ctx, doc); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, found, err := coll.FindOne(ctx, doc.Key)
	if err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if !found {
		t.Fatal("expected document to be found")
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, doc)
	}

	// Mutating the returned copy must not leak into the store.
	got.Fields["description"] = "tampered"
	again, _, _ := coll.FindOne(ctx, doc.Key)
	if again.Fields["description"] != "chess" {
		t.Error("returned document aliases stored state")
	}
}

func TestMemoryCollection_FindOneMissing(t *testing.T) {
	coll := NewMemoryCollection("activities")

	_, found, err := coll.FindOne(context.Background(), "No Such Club")
	if err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if found {
		t.Error("expected absence, not an error and not a document")
	}
}

func TestMemoryCollection_InsertOverwritesDuplicateKey(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryCollection("activities")

	first := Document{Key: "Chess Club", Fields: map[string]any{"description": "v1"}}
	second := Document{Key: "Chess Club", Fields: map[string]any{"description": "v2"}}

	if err := coll.Insert(ctx, first); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := coll.Insert(ctx, second); err != nil {
		t.Fatalf("overwriting insert failed: %v", err)
	}

	n, _ := coll.Count(ctx, nil)
	if n != 1 {
		t.Errorf("expected 1 document after overwrite, got %d", n)
	}
	got, _, _ := coll.FindOne(ctx, "Chess Club")
	if got.Fields["description"] != "v2" {
		t.Errorf("expected overwritten value, got %v", got.Fields["description"])
	}
}

func TestMemoryCollection_FindPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryCollection("activities")

	keys := []string{"Zeta Club", "Alpha Club", "Mid Club"}
	for _, key := range keys {
		if err := coll.Insert(ctx, Document{Key: key, Fields: map[string]any{}}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	docs, err := coll.Find(ctx, nil)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	for i, doc := range docs {
		if doc.Key != keys[i] {
			t.Errorf("position %d: got %q, want %q", i, doc.Key, keys[i])
		}
	}
}

func TestMemoryCollection_CountWithFilter(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryCollection("activities")

	seedTestActivities(t, coll)

	n, err := coll.Count(ctx, Filter{DaysAny{"Saturday"}})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 Saturday activities, got %d", n)
	}

	all, _ := coll.Count(ctx, nil)
	if all != 3 {
		t.Errorf("expected 3 total, got %d", all)
	}
}

func TestMemoryCollection_UpdateMissingKey(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryCollection("activities")
	seedTestActivities(t, coll)

	before, _ := coll.Find(ctx, nil)

	n, err := coll.Update(ctx, "No Such Club", SetFields{"description": "x"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected modification count 0, got %d", n)
	}

	after, _ := coll.Find(ctx, nil)
	if !reflect.DeepEqual(before, after) {
		t.Error("update of missing key must leave the collection unchanged")
	}
}

func TestMemoryCollection_AppendThenRemoveRoundTrip(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryCollection("activities")

	original := []string{"a@mergington.edu", "b@mergington.edu"}
	doc := Document{Key: "Chess Club", Fields: map[string]any{
		FieldParticipants: append([]string{}, original...),
	}}
	if err := coll.Insert(ctx, doc); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	n, err := coll.Update(ctx, "Chess Club", AppendToList{Field: FieldParticipants, Value: "c@mergington.edu"})
	if err != nil || n != 1 {
		t.Fatalf("append: count=%d err=%v, want 1, nil", n, err)
	}

	n, err = coll.Update(ctx, "Chess Club", RemoveFromList{Field: FieldParticipants, Value: "c@mergington.edu"})
	if err != nil || n != 1 {
		t.Fatalf("remove: count=%d err=%v, want 1, nil", n, err)
	}

	got, _, _ := coll.FindOne(ctx, "Chess Club")
	if !reflect.DeepEqual(got.Fields[FieldParticipants], original) {
		t.Errorf("append+remove did not restore the list: got %v, want %v",
			got.Fields[FieldParticipants], original)
	}
}

func TestMemoryCollection_DistinctWeekdays(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryCollection("activities")
	seedTestActivities(t, coll)

	days, err := coll.DistinctWeekdays(ctx)
	if err != nil {
		t.Fatalf("DistinctWeekdays failed: %v", err)
	}

	want := []string{"Friday", "Monday", "Saturday"}
	if !reflect.DeepEqual(days, want) {
		t.Errorf("got %v, want %v", days, want)
	}
}

// seedTestActivities inserts three small activities: two on Saturday,
// one on Monday and Friday.
func seedTestActivities(t *testing.T, coll Collection) {
	t.Helper()
	ctx := context.Background()

	docs := []Document{
		scheduledDoc([]string{"Saturday"}, "10:00", "14:00"),
		scheduledDoc([]string{"Saturday"}, "13:00", "16:00"),
		scheduledDoc([]string{"Monday", "Friday"}, "15:15", "16:45"),
	}
	names := []string{"Robotics", "Olympiad", "Chess"}
	for i, doc := range docs {
		doc.Key = names[i]
		if err := coll.Insert(ctx, doc); err != nil {
			t.Fatalf("Insert %s failed: %v", doc.Key, err)
		}
	}
}
