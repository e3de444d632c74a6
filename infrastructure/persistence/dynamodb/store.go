package dynamodb

import (
	"context"
	"fmt"
	"maps"
	"time"

	"starwars/domain/core/valueobjects"
	"starwars/domain/ports"
	"starwars/infrastructure/persistence/abstractions"
	pkgerrors "starwars/pkg/errors"
	"starwars/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	keyAttribute = "id"
	refAttribute = "ref"
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

// Store is a DynamoDB backed entity store for one collection. Documents and
// their natural key locks share the collection table: a lock item has the id
// "<key field>#<value>" and points at its document through "ref".
type Store[F any] struct {
	client     DynamoDBAPI
	collection abstractions.Collection[F]
	table      string
	peers      abstractions.PeerResolver
	logger     *zap.Logger
	metrics    *observability.Collector
	now        func() time.Time
}

// NewStore creates a store for collection using tables named with tablePrefix.
// Peer references resolve directly against the peer table until SetPeer
// installs another resolver.
func NewStore[F any](client DynamoDBAPI, collection abstractions.Collection[F], tablePrefix string, logger *zap.Logger, opts ...Option) *Store[F] {
	options := storeOptions{now: time.Now}
	for _, opt := range opts {
		opt(&options)
	}

	return &Store[F]{
		client:     client,
		collection: collection,
		table:      collection.TableName(tablePrefix),
		peers:      tableResolver{client: client, table: collection.PeerTableName(tablePrefix)},
		logger:     logger.With(zap.String("collection", collection.Name)),
		metrics:    options.metrics,
		now:        options.now,
	}
}

// SetPeer sets the resolver peer references are checked against. It must be
// called before the store serves requests.
func (s *Store[F]) SetPeer(peer abstractions.PeerResolver) {
	s.peers = peer
}

// documentMeta holds the store maintained attributes of a document item
type documentMeta struct {
	ID      string    `dynamodbav:"id"`
	Created time.Time `dynamodbav:"created"`
	Edited  time.Time `dynamodbav:"edited"`
}

// Persist validates fields, checks peer references and inserts the document
// together with its natural key lock.
func (s *Store[F]) Persist(ctx context.Context, fields F) (id string, err error) {
	ctx, done := s.observe(ctx, "persist")
	defer func() { done(err) }()

	key := s.collection.NaturalKey(fields)
	s.logStart("persist", zap.String(s.collection.NaturalKeyField, key))

	if fields, err = s.validate(ctx, fields); err != nil {
		return "", s.fail("persist", key, err)
	}

	now := s.now().UTC()
	id = valueobjects.NewEntityID().String()

	item, err := s.marshalDocument(id, fields, now, now)
	if err != nil {
		return "", s.fail("persist", key, err)
	}

	absent, err := buildCondition(expression.AttributeNotExists(expression.Name(keyAttribute)))
	if err != nil {
		return "", s.fail("persist", key, err)
	}

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: s.conditionalPut(item, absent)},
			{Put: s.conditionalPut(s.lockItem(key, id), absent)},
		},
	})
	if err != nil {
		if codes, ok := cancellationCodes(err); ok && conditionFailedAt(codes, 1) {
			return "", s.duplicate(key)
		}
		return "", s.fail("persist", key, err)
	}

	return id, nil
}

// Update replaces the mutable fields of the document. created is kept and
// edited refreshed. An id that matches no document is a no-op. A changed
// natural key moves the lock in the same transaction.
func (s *Store[F]) Update(ctx context.Context, id string, fields F) (err error) {
	ctx, done := s.observe(ctx, "update")
	defer func() { done(err) }()

	key := s.collection.NaturalKey(fields)
	s.logStart("update", zap.String("id", id), zap.String(s.collection.NaturalKeyField, key))

	if id, err = s.collection.CanonicalID(id); err != nil {
		return err
	}
	if fields, err = s.validate(ctx, fields); err != nil {
		return s.fail("update", key, err)
	}

	current, err := s.getItem(ctx, id)
	if err != nil {
		return s.fail("update", key, err)
	}
	if current == nil {
		s.logger.Info("Document not found, nothing to update", zap.String("id", id))
		return nil
	}

	item, err := s.marshalDocument(id, fields, current.Created, s.now().UTC())
	if err != nil {
		return s.fail("update", key, err)
	}

	present, err := buildCondition(expression.AttributeExists(expression.Name(keyAttribute)))
	if err != nil {
		return s.fail("update", key, err)
	}
	items := []types.TransactWriteItem{{Put: s.conditionalPut(item, present)}}

	if previous := s.collection.NaturalKey(current.Fields); previous != key {
		owned, err := buildCondition(expression.Name(refAttribute).Equal(expression.Value(id)))
		if err != nil {
			return s.fail("update", key, err)
		}
		absent, err := buildCondition(expression.AttributeNotExists(expression.Name(keyAttribute)))
		if err != nil {
			return s.fail("update", key, err)
		}
		items = append(items,
			types.TransactWriteItem{Delete: s.conditionalDelete(s.lockKey(previous), owned)},
			types.TransactWriteItem{Put: s.conditionalPut(s.lockItem(key, id), absent)},
		)
	}

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if codes, ok := cancellationCodes(err); ok {
			switch {
			case conditionFailedAt(codes, 0):
				s.logger.Info("Document removed concurrently, nothing to update", zap.String("id", id))
				return nil
			case conditionFailedAt(codes, 2):
				return s.duplicate(key)
			}
		}
		return s.fail("update", key, err)
	}

	return nil
}

// GetByID returns the document with the given id, or nil when absent
func (s *Store[F]) GetByID(ctx context.Context, id string) (doc *ports.StoredDocument[F], err error) {
	ctx, done := s.observe(ctx, "get")
	defer func() { done(err) }()

	s.logStart("get", zap.String("id", id))

	if id, err = s.collection.CanonicalID(id); err != nil {
		return nil, err
	}

	doc, err = s.getItem(ctx, id)
	if err != nil {
		return nil, s.fail("get", id, err)
	}
	return doc, nil
}

// Remove deletes the document and its natural key lock and reports whether
// a document was deleted. Absent ids are a no-op.
func (s *Store[F]) Remove(ctx context.Context, id string) (removed bool, err error) {
	ctx, done := s.observe(ctx, "remove")
	defer func() { done(err) }()

	s.logStart("remove", zap.String("id", id))

	if id, err = s.collection.CanonicalID(id); err != nil {
		return false, err
	}

	current, err := s.getItem(ctx, id)
	if err != nil {
		return false, s.fail("remove", id, err)
	}
	if current == nil {
		return false, nil
	}

	present, err := buildCondition(expression.AttributeExists(expression.Name(keyAttribute)))
	if err != nil {
		return false, s.fail("remove", id, err)
	}
	owned, err := buildCondition(expression.Name(refAttribute).Equal(expression.Value(id)))
	if err != nil {
		return false, s.fail("remove", id, err)
	}

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Delete: s.conditionalDelete(itemKey(id), present)},
			{Delete: s.conditionalDelete(s.lockKey(s.collection.NaturalKey(current.Fields)), owned)},
		},
	})
	if err == nil {
		return true, nil
	}

	codes, ok := cancellationCodes(err)
	switch {
	case ok && conditionFailedAt(codes, 0):
		return false, nil
	case ok && conditionFailedAt(codes, 1):
		// The lock no longer belongs to this document; drop the document alone.
		s.logger.Warn("Natural key lock not owned by document", zap.String("id", id))
		_, err = s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName:                aws.String(s.table),
			Key:                      itemKey(id),
			ConditionExpression:      present.Condition(),
			ExpressionAttributeNames: present.Names(),
		})
		if err == nil {
			return true, nil
		}
		if IsConditionalFailure(err) {
			return false, nil
		}
	}
	return false, s.fail("remove", id, err)
}

func (s *Store[F]) getItem(ctx context.Context, id string) (*ports.StoredDocument[F], error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            itemKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return s.unmarshalDocument(out.Item)
}

func (s *Store[F]) marshalDocument(id string, fields F, created, edited time.Time) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMapWithOptions(fields, func(o *attributevalue.EncoderOptions) {
		o.TagKey = "json"
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", s.collection.ResourceName(), err)
	}

	meta, err := attributevalue.MarshalMap(documentMeta{ID: id, Created: created, Edited: edited})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s metadata: %w", s.collection.ResourceName(), err)
	}
	maps.Copy(item, meta)

	return item, nil
}

func (s *Store[F]) unmarshalDocument(item map[string]types.AttributeValue) (*ports.StoredDocument[F], error) {
	var fields F
	if err := attributevalue.UnmarshalMapWithOptions(item, &fields, func(o *attributevalue.DecoderOptions) {
		o.TagKey = "json"
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", s.collection.ResourceName(), err)
	}

	var meta documentMeta
	if err := attributevalue.UnmarshalMap(item, &meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s metadata: %w", s.collection.ResourceName(), err)
	}

	return &ports.StoredDocument[F]{
		ID:      meta.ID,
		Fields:  fields,
		Created: meta.Created,
		Edited:  meta.Edited,
	}, nil
}

func (s *Store[F]) lockKey(value string) map[string]types.AttributeValue {
	return itemKey(s.collection.NaturalKeyField + "#" + value)
}

func (s *Store[F]) lockItem(value, ref string) map[string]types.AttributeValue {
	item := s.lockKey(value)
	item[refAttribute] = &types.AttributeValueMemberS{Value: ref}
	return item
}

func (s *Store[F]) conditionalPut(item map[string]types.AttributeValue, cond expression.Expression) *types.Put {
	return &types.Put{
		TableName:                 aws.String(s.table),
		Item:                      item,
		ConditionExpression:       cond.Condition(),
		ExpressionAttributeNames:  cond.Names(),
		ExpressionAttributeValues: cond.Values(),
	}
}

func (s *Store[F]) conditionalDelete(key map[string]types.AttributeValue, cond expression.Expression) *types.Delete {
	return &types.Delete{
		TableName:                 aws.String(s.table),
		Key:                       key,
		ConditionExpression:       cond.Condition(),
		ExpressionAttributeNames:  cond.Names(),
		ExpressionAttributeValues: cond.Values(),
	}
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

// fail logs unexpected failures at Error and wraps them. Expected store
// outcomes are returned untouched.
func (s *Store[F]) fail(method, key string, err error) error {
	if pkgerrors.IsExpected(err) || pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation) {
		return err
	}

	s.logger.Error("Store operation failed",
		zap.String("resource", s.collection.Resource),
		zap.String("method", method),
		zap.String("key", key),
		zap.Error(err),
	)
	return fmt.Errorf("failed to %s %s: %w", method, s.collection.ResourceName(), err)
}

func (s *Store[F]) observe(ctx context.Context, operation string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx,
		fmt.Sprintf("store.%s.%s", s.collection.Name, operation),
		attribute.String("db.system", "dynamodb"),
		attribute.String("db.table", s.table),
	)

	return ctx, func(err error) {
		outcome := pkgerrors.OutcomeOf(err)
		span.SetAttributes(attribute.String("store.outcome", outcome))
		s.metrics.RecordStoreOperation(s.collection.Name, operation, outcome, time.Since(start))
		if pkgerrors.IsExpected(err) {
			span.End()
			return
		}
		observability.EndSpan(span, err)
	}
}

func itemKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		keyAttribute: &types.AttributeValueMemberS{Value: id},
	}
}

func buildCondition(cond expression.ConditionBuilder) (expression.Expression, error) {
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return expression.Expression{}, fmt.Errorf("failed to build condition: %w", err)
	}
	return expr, nil
}
