// Package activitydb is the data-access layer for the school
// activity-signup application: activity listings (schedule, capacity,
// participants) and teacher/admin accounts, seeded on first run.
//
// # Overview
//
// The package hides which storage engine is active behind one
// capability set. At startup the backend selector probes the configured
// document database with a bounded timeout; on success both collections
// bind to it, on failure they bind to an in-process store answering the
// same six operations. Application code holds Collection values and
// never learns which backend serves them.
//
//	cfg, _ := activitydb.ConfigFromEnv()
//	store, err := activitydb.Open(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close(ctx)
//
//	// Query activities on Tuesday afternoons.
//	docs, _ := store.Activities.Find(ctx, activitydb.Filter{
//	    activitydb.DaysAny{"Tuesday"},
//	    activitydb.StartsAtOrAfter("15:00"),
//	})
//
//	// Sign a student up.
//	store.Activities.Update(ctx, "Chess Club", activitydb.AppendToList{
//	    Field: activitydb.FieldParticipants,
//	    Value: "sam@mergington.edu",
//	})
//
// # Core concepts
//
// Collection: the capability set (count, insert, find, find-one,
// update, distinct weekdays) every backend satisfies.
//
// Filter and Mutation: closed unions of the query and write shapes the
// application issues. Anything outside them cannot be expressed.
//
// Store: the selector's result, holding the activities and accounts
// collections bound to one backend for the process lifetime.
//
// Observability follows the Logger and Metrics interfaces, with zap and
// Prometheus adapters included.
package activitydb
