package activitydb

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestSeed_PopulatesEmptyCollections(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, memoryConfig())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close(ctx)

	n, err := store.Activities.Count(ctx, nil)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if want := int64(len(DefaultActivities())); n != want {
		t.Errorf("expected %d activities, got %d", want, n)
	}

	n, err = store.Accounts.Count(ctx, nil)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if want := int64(len(DefaultAccounts())); n != want {
		t.Errorf("expected %d accounts, got %d", want, n)
	}
}

func TestSeed_HashesPasswordsOnce(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, memoryConfig())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close(ctx)

	doc, found, err := store.Accounts.FindOne(ctx, "principal")
	if err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if !found {
		t.Fatal("expected seeded principal account")
	}

	stored := asString(doc.Fields["password"])
	if stored == "admin789" {
		t.Fatal("plaintext password stored")
	}
	if !strings.HasPrefix(stored, "$argon2id$") {
		t.Fatalf("expected argon2id hash, got %q", stored)
	}

	ok, err := NewArgon2idHasher().Verify(stored, "admin789")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Error("stored hash does not verify against the seed credential")
	}
}

func TestSeed_IsIdempotent(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, memoryConfig())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close(ctx)

	before, err := store.Activities.Find(ctx, nil)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	accountsBefore, _ := store.Accounts.Find(ctx, nil)

	// Re-running seeding against non-empty collections is a no-op.
	if err := store.seed(ctx); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	after, _ := store.Activities.Find(ctx, nil)
	if !reflect.DeepEqual(before, after) {
		t.Error("re-seeding changed activity contents")
	}
	accountsAfter, _ := store.Accounts.Find(ctx, nil)
	if !reflect.DeepEqual(accountsBefore, accountsAfter) {
		t.Error("re-seeding changed account contents")
	}
}

func TestSeed_DistinctWeekdaysCoverFullWeek(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, memoryConfig())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close(ctx)

	days, err := store.Activities.DistinctWeekdays(ctx)
	if err != nil {
		t.Fatalf("DistinctWeekdays failed: %v", err)
	}

	want := []string{"Friday", "Monday", "Saturday", "Sunday", "Thursday", "Tuesday", "Wednesday"}
	if !reflect.DeepEqual(days, want) {
		t.Errorf("got %v, want %v", days, want)
	}
}

func TestSeed_QueryShapesAgainstDataset(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, memoryConfig())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close(ctx)

	// Weekend activities only.
	docs, err := store.Activities.Find(ctx, Filter{DaysAny{"Saturday", "Sunday"}})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	wantKeys := []string{"Weekend Robotics Workshop", "Science Olympiad", "Sunday Chess Tournament"}
	if len(docs) != len(wantKeys) {
		t.Fatalf("expected %d weekend activities, got %d", len(wantKeys), len(docs))
	}
	for i, doc := range docs {
		if doc.Key != wantKeys[i] {
			t.Errorf("position %d: got %q, want %q", i, doc.Key, wantKeys[i])
		}
	}

	// Evening activities: nothing in the dataset runs past 20:30
	// except Manga Maniacs.
	docs, err = store.Activities.Find(ctx, Filter{StartsAtOrAfter("18:00")})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(docs) != 1 || docs[0].Key != "Manga Maniacs" {
		t.Errorf("expected only Manga Maniacs after 18:00, got %v", docKeys(docs))
	}
}

func docKeys(docs []Document) []string {
	keys := make([]string, len(docs))
	for i, doc := range docs {
		keys[i] = doc.Key
	}
	return keys
}
