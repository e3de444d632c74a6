package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"starwars/domain/core/valueobjects"
	"starwars/domain/ports"
	"starwars/infrastructure/persistence/abstractions"
	pkgerrors "starwars/pkg/errors"
	"starwars/pkg/observability"

	"go.uber.org/zap"
)

var (
	_ ports.FilmStore   = (*Store[ports.FilmFields])(nil)
	_ ports.PlanetStore = (*Store[ports.PlanetFields])(nil)
)

// Option configures a Store
type Option func(*storeOptions)

type storeOptions struct {
	metrics *observability.Collector
	now     func() time.Time
}

// WithMetrics records every store operation on the given collector
func WithMetrics(metrics *observability.Collector) Option {
	return func(o *storeOptions) { o.metrics = metrics }
}

// WithClock overrides the time source used for created/edited
func WithClock(now func() time.Time) Option {
	return func(o *storeOptions) { o.now = now }
}

// Store is an in-memory entity store with the same behavior as the DynamoDB
// store. It backs local development and tests.
type Store[F any] struct {
	mu         sync.RWMutex
	collection abstractions.Collection[F]
	docs       map[string]ports.StoredDocument[F]
	keys       map[string]string // natural key -> document id
	peers      abstractions.PeerResolver
	logger     *zap.Logger
	metrics    *observability.Collector
	now        func() time.Time
}

// NewStore creates an empty store for collection. The peer resolver is set
// afterwards with SetPeer because the two collections reference each other.
func NewStore[F any](collection abstractions.Collection[F], logger *zap.Logger, opts ...Option) *Store[F] {
	options := storeOptions{now: time.Now}
	for _, opt := range opts {
		opt(&options)
	}

	return &Store[F]{
		collection: collection,
		docs:       make(map[string]ports.StoredDocument[F]),
		keys:       make(map[string]string),
		logger:     logger.With(zap.String("collection", collection.Name)),
		metrics:    options.metrics,
		now:        options.now,
	}
}

// SetPeer sets the collection peer references are resolved against
func (s *Store[F]) SetPeer(peer abstractions.PeerResolver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.peers = peer
}

// CountExisting returns how many of ids resolve to documents. Repeated ids
// are counted once.
func (s *Store[F]) CountExisting(_ context.Context, ids []string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(ids))
	found := 0
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := s.docs[id]; ok {
			found++
		}
	}
	return found, nil
}

// Persist validates fields, checks peer references and inserts the document
func (s *Store[F]) Persist(ctx context.Context, fields F) (id string, err error) {
	defer s.observe("persist")(&err)

	key := s.collection.NaturalKey(fields)
	s.logStart("persist", zap.String(s.collection.NaturalKeyField, key))

	if fields, err = s.validate(ctx, fields); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.keys[key]; taken {
		return "", s.duplicate(key)
	}

	now := s.now().UTC()
	id = valueobjects.NewEntityID().String()
	s.docs[id] = ports.StoredDocument[F]{ID: id, Fields: fields, Created: now, Edited: now}
	s.keys[key] = id

	return id, nil
}

// Update replaces the mutable fields of the document. Absent ids are a no-op.
func (s *Store[F]) Update(ctx context.Context, id string, fields F) (err error) {
	defer s.observe("update")(&err)

	key := s.collection.NaturalKey(fields)
	s.logStart("update", zap.String("id", id), zap.String(s.collection.NaturalKeyField, key))

	if id, err = s.collection.CanonicalID(id); err != nil {
		return err
	}
	if fields, err = s.validate(ctx, fields); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.docs[id]
	if !ok {
		return nil
	}

	previous := s.collection.NaturalKey(current.Fields)
	if previous != key {
		if _, taken := s.keys[key]; taken {
			return s.duplicate(key)
		}
		delete(s.keys, previous)
		s.keys[key] = id
	}

	s.docs[id] = ports.StoredDocument[F]{
		ID:      id,
		Fields:  fields,
		Created: current.Created,
		Edited:  s.now().UTC(),
	}
	return nil
}

// GetByID returns the document with the given id, or nil when absent
func (s *Store[F]) GetByID(ctx context.Context, id string) (doc *ports.StoredDocument[F], err error) {
	defer s.observe("get")(&err)

	s.logStart("get", zap.String("id", id))

	if id, err = s.collection.CanonicalID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	stored.Fields = s.collection.WithPeers(stored.Fields, slices.Clone(s.collection.Peers(stored.Fields)))
	return &stored, nil
}

// Remove deletes the document, releases its natural key and reports whether
// a document was deleted. Absent ids are a no-op.
func (s *Store[F]) Remove(ctx context.Context, id string) (removed bool, err error) {
	defer s.observe("remove")(&err)

	s.logStart("remove", zap.String("id", id))

	if id, err = s.collection.CanonicalID(id); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.docs[id]
	if !ok {
		return false, nil
	}
	delete(s.docs, id)
	delete(s.keys, s.collection.NaturalKey(current.Fields))
	return true, nil
}

// validate runs before the store lock is taken: the peer store may be
// validating against this one at the same time. It returns fields holding a
// private copy of the canonical peer ids.
func (s *Store[F]) validate(ctx context.Context, fields F) (F, error) {
	fields, err := s.collection.Normalize(fields)
	if err != nil {
		return fields, err
	}

	peers := s.collection.Peers(fields)
	if len(peers) == 0 {
		return fields, nil
	}

	s.mu.RLock()
	peer := s.peers
	s.mu.RUnlock()

	found := 0
	if peer != nil {
		if found, err = peer.CountExisting(ctx, peers); err != nil {
			return fields, err
		}
	}
	return fields, s.collection.CheckResolved(found, len(peers))
}

func (s *Store[F]) duplicate(key string) error {
	return pkgerrors.NewDuplicateEntityError(s.collection.Resource, s.collection.NaturalKeyField, key)
}

func (s *Store[F]) logStart(method string, fields ...zap.Field) {
	s.logger.Info("Executing store operation", append([]zap.Field{
		zap.String("resource", s.collection.Resource),
		zap.String("method", method),
	}, fields...)...)
}

func (s *Store[F]) observe(operation string) func(*error) {
	start := time.Now()
	return func(err *error) {
		s.metrics.RecordStoreOperation(s.collection.Name, operation, pkgerrors.OutcomeOf(*err), time.Since(start))
	}
}
