package activitydb

import (
	"context"
	"fmt"
)

// SeedAccount is one staff account from the static initial dataset. The
// password is the plaintext demo credential; it is hashed exactly once,
// through the store's PasswordHasher, before insertion.
type SeedAccount struct {
	Username    string
	DisplayName string
	Password    string
	Role        string
}

// seed populates each collection from its static dataset if, and only
// if, the collection is currently empty. Re-running it against a
// non-empty collection is a no-op, so a process restart against a
// persistent backend never duplicates or resets data.
func (s *Store) seed(ctx context.Context) error {
	n, err := s.Activities.Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed activities: %w", err)
	}
	if n == 0 {
		for _, doc := range s.seedActivities {
			if err := s.Activities.Insert(ctx, doc); err != nil {
				return fmt.Errorf("seed activities: %w", err)
			}
			s.metrics.Increment(MetricSeedInserted, "collection", activitiesCollection)
		}
		s.logger.Info("seeded activities", "count", len(s.seedActivities))
	}

	n, err = s.Accounts.Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	if n == 0 {
		for _, acct := range s.seedAccounts {
			hash, err := s.hasher.Hash(acct.Password)
			if err != nil {
				return fmt.Errorf("seed accounts: hash %s: %w", acct.Username, err)
			}
			doc := Document{
				Key: acct.Username,
				Fields: map[string]any{
					"username":     acct.Username,
					"display_name": acct.DisplayName,
					"password":     hash,
					"role":         acct.Role,
				},
			}
			if err := s.Accounts.Insert(ctx, doc); err != nil {
				return fmt.Errorf("seed accounts: %w", err)
			}
			s.metrics.Increment(MetricSeedInserted, "collection", accountsCollection)
		}
		s.logger.Info("seeded accounts", "count", len(s.seedAccounts))
	}

	return nil
}
