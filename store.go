package activitydb

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names, matching the real database's layout.
const (
	activitiesCollection = "activities"
	accountsCollection   = "teachers"
)

// Store is the backend selector's result: both collections bound to one
// backend kind, decided exactly once at Open. The binding never changes
// for the process lifetime; there is no reconnection or retry, so a
// transient probe failure routes the process to the fallback for good.
//
// Application code reaches storage only through the two Collection
// fields and cannot observe which backend serves them.
type Store struct {
	Activities Collection
	Accounts   Collection

	kind    string
	logger  Logger
	metrics Metrics
	hasher  PasswordHasher

	seedActivities []Document
	seedAccounts   []SeedAccount

	mongoClient *mongo.Client
	redisClient *redis.Client
}

// Option configures a Store before the backend is bound.
type Option func(*Store)

// WithLogger sets the logger used by the selector and the fallback
// collections.
func WithLogger(logger Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(metrics Metrics) Option {
	return func(s *Store) { s.metrics = metrics }
}

// WithHasher replaces the password hashing collaborator used while
// seeding accounts.
func WithHasher(hasher PasswordHasher) Option {
	return func(s *Store) { s.hasher = hasher }
}

// WithSeedData replaces the static initial datasets.
func WithSeedData(activities []Document, accounts []SeedAccount) Option {
	return func(s *Store) {
		s.seedActivities = activities
		s.seedAccounts = accounts
	}
}

// Open runs the backend selection once: probe the configured real
// database with a bounded timeout, bind both collections to it on
// success, otherwise construct fresh in-memory collections. Either way
// the collections are then seeded if empty.
//
// The probe failure is absorbed here; it is logged and counted but
// never surfaced to callers.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Store{
		kind:           BackendMemory,
		logger:         &NoOpLogger{},
		metrics:        &NoOpMetrics{},
		hasher:         NewArgon2idHasher(),
		seedActivities: DefaultActivities(),
		seedAccounts:   DefaultAccounts(),
	}
	for _, opt := range opts {
		opt(s)
	}

	switch cfg.Backend {
	case BackendAuto, BackendMongo:
		if err := s.bindMongo(ctx, cfg); err != nil {
			s.fallBack(BackendMongo, err)
		}
	case BackendRedis:
		if err := s.bindRedis(ctx, cfg); err != nil {
			s.fallBack(BackendRedis, err)
		}
	case BackendMemory:
		s.bindMemory()
	}

	s.metrics.Gauge(MetricBackendSelected, 1, "backend", s.kind)
	s.logger.Info("backend bound", "backend", s.kind)

	if err := s.seed(ctx); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}

	return s, nil
}

// Kind reports which backend the selector bound.
func (s *Store) Kind() string {
	return s.kind
}

// Close releases the real-database client, if any. The fallback store
// holds no external resources.
func (s *Store) Close(ctx context.Context) error {
	if s.mongoClient != nil {
		return s.mongoClient.Disconnect(ctx)
	}
	if s.redisClient != nil {
		return s.redisClient.Close()
	}
	return nil
}

// fallBack absorbs a probe failure and binds the in-memory store.
func (s *Store) fallBack(probed string, err error) {
	s.logger.Warn("database unreachable, using in-memory fallback",
		"backend", probed, "error", err)
	s.metrics.Increment(MetricProbeFailure, "backend", probed)
	s.bindMemory()
}

func (s *Store) bindMemory() {
	activities := NewMemoryCollection(activitiesCollection)
	activities.SetLogger(s.logger)
	activities.SetMetrics(s.metrics)

	accounts := NewMemoryCollection(accountsCollection)
	accounts.SetLogger(s.logger)
	accounts.SetMetrics(s.metrics)

	s.kind = BackendMemory
	s.Activities = activities
	s.Accounts = accounts
}

func (s *Store) bindMongo(ctx context.Context, cfg Config) error {
	clientOpts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(cfg.ProbeTimeout).
		SetConnectTimeout(cfg.ProbeTimeout)

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return WithContext(ErrBackendUnavailable, map[string]interface{}{
			"backend": BackendMongo,
			"reason":  err.Error(),
		})
	}

	probeCtx, cancel := context.WithTimeout(ctx, cfg.ProbeTimeout)
	defer cancel()

	start := time.Now()
	err = client.Ping(probeCtx, readpref.Primary())
	s.metrics.Timing(MetricProbeDuration, time.Since(start), "backend", BackendMongo)
	if err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return WithContext(ErrBackendUnavailable, map[string]interface{}{
			"backend": BackendMongo,
			"reason":  err.Error(),
		})
	}

	db := client.Database(cfg.MongoDatabase)
	activities := NewMongoCollection(db.Collection(activitiesCollection))
	activities.SetMetrics(s.metrics)
	accounts := NewMongoCollection(db.Collection(accountsCollection))
	accounts.SetMetrics(s.metrics)

	s.mongoClient = client
	s.kind = BackendMongo
	s.Activities = activities
	s.Accounts = accounts
	return nil
}

func (s *Store) bindRedis(ctx context.Context, cfg Config) error {
	client := redis.NewClient(cfg.redisOptions())

	probeCtx, cancel := context.WithTimeout(ctx, cfg.ProbeTimeout)
	defer cancel()

	start := time.Now()
	err := client.Ping(probeCtx).Err()
	s.metrics.Timing(MetricProbeDuration, time.Since(start), "backend", BackendRedis)
	if err != nil {
		_ = client.Close()
		return WithContext(ErrBackendUnavailable, map[string]interface{}{
			"backend": BackendRedis,
			"reason":  err.Error(),
		})
	}

	activities := NewRedisCollection(client, activitiesCollection)
	activities.SetMetrics(s.metrics)
	accounts := NewRedisCollection(client, accountsCollection)
	accounts.SetMetrics(s.metrics)

	s.redisClient = client
	s.kind = BackendRedis
	s.Activities = activities
	s.Accounts = accounts
	return nil
}
