package resilience

import (
	"context"
	"errors"
	"time"

	"starwars/infrastructure/persistence/dynamodb"

	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig holds configuration for the circuit breaker
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns the configuration used for the DynamoDB client
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "dynamodb",
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// BreakerClient guards a DynamoDB client with a circuit breaker. Failed
// condition expressions and cancelled contexts are outcomes of the request,
// not of the backend, and never count towards tripping.
type BreakerClient struct {
	next dynamodb.DynamoDBAPI
	cb   *gobreaker.CircuitBreaker
}

var _ dynamodb.DynamoDBAPI = (*BreakerClient)(nil)

// NewBreakerClient wraps next with a circuit breaker
func NewBreakerClient(next dynamodb.DynamoDBAPI, config BreakerConfig, logger *zap.Logger) *BreakerClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: isSuccessful,
	})

	return &BreakerClient{next: next, cb: cb}
}

// State returns the current breaker state
func (c *BreakerClient) State() gobreaker.State {
	return c.cb.State()
}

func isSuccessful(err error) bool {
	return err == nil ||
		dynamodb.IsConditionalFailure(err) ||
		errors.Is(err, context.Canceled)
}

func execute[T any](cb *gobreaker.CircuitBreaker, call func() (T, error)) (T, error) {
	out, err := cb.Execute(func() (interface{}, error) {
		return call()
	})
	result, _ := out.(T)
	return result, err
}

func (c *BreakerClient) GetItem(ctx context.Context, params *awsdynamodb.GetItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.GetItemOutput, error) {
	return execute(c.cb, func() (*awsdynamodb.GetItemOutput, error) {
		return c.next.GetItem(ctx, params, optFns...)
	})
}

func (c *BreakerClient) DeleteItem(ctx context.Context, params *awsdynamodb.DeleteItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.DeleteItemOutput, error) {
	return execute(c.cb, func() (*awsdynamodb.DeleteItemOutput, error) {
		return c.next.DeleteItem(ctx, params, optFns...)
	})
}

func (c *BreakerClient) BatchGetItem(ctx context.Context, params *awsdynamodb.BatchGetItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.BatchGetItemOutput, error) {
	return execute(c.cb, func() (*awsdynamodb.BatchGetItemOutput, error) {
		return c.next.BatchGetItem(ctx, params, optFns...)
	})
}

func (c *BreakerClient) TransactWriteItems(ctx context.Context, params *awsdynamodb.TransactWriteItemsInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.TransactWriteItemsOutput, error) {
	return execute(c.cb, func() (*awsdynamodb.TransactWriteItemsOutput, error) {
		return c.next.TransactWriteItems(ctx, params, optFns...)
	})
}

func (c *BreakerClient) CreateTable(ctx context.Context, params *awsdynamodb.CreateTableInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.CreateTableOutput, error) {
	return execute(c.cb, func() (*awsdynamodb.CreateTableOutput, error) {
		return c.next.CreateTable(ctx, params, optFns...)
	})
}

func (c *BreakerClient) DescribeTable(ctx context.Context, params *awsdynamodb.DescribeTableInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.DescribeTableOutput, error) {
	return execute(c.cb, func() (*awsdynamodb.DescribeTableOutput, error) {
		return c.next.DescribeTable(ctx, params, optFns...)
	})
}

func (c *BreakerClient) DeleteTable(ctx context.Context, params *awsdynamodb.DeleteTableInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.DeleteTableOutput, error) {
	return execute(c.cb, func() (*awsdynamodb.DeleteTableOutput, error) {
		return c.next.DeleteTable(ctx, params, optFns...)
	})
}
