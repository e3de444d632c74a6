package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"starwars/infrastructure/persistence/abstractions"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ErrInvalidEnvironment is returned when collections would be dropped in
// production.
var ErrInvalidEnvironment = errors.New("drop/create collections unavailable for production")

const defaultTableWait = 2 * time.Minute

// Provisioner creates and drops the collection tables
type Provisioner struct {
	client      DynamoDBAPI
	prefix      string
	production  bool
	logger      *zap.Logger
	waitTimeout time.Duration
}

// NewProvisioner creates a provisioner for tables named with prefix
func NewProvisioner(client DynamoDBAPI, prefix string, production bool, logger *zap.Logger) *Provisioner {
	return &Provisioner{
		client:      client,
		prefix:      prefix,
		production:  production,
		logger:      logger,
		waitTimeout: defaultTableWait,
	}
}

// ConfigureCollections creates every missing collection table and waits for
// it to become active. Existing tables are left untouched.
func (p *Provisioner) ConfigureCollections(ctx context.Context) error {
	for _, def := range abstractions.Definitions() {
		table := def.TableName(p.prefix)

		_, err := p.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
		switch {
		case err == nil:
			p.logger.Info("Collection already created", zap.String("collection", def.Name), zap.String("table", table))
		case isTableNotFound(err):
			if err := p.createTable(ctx, table); err != nil {
				return err
			}
			p.logger.Info("Collection created", zap.String("collection", def.Name), zap.String("table", table))
		default:
			return fmt.Errorf("failed to describe table %s: %w", table, err)
		}

		// Natural key locks live in the collection table itself, so there is
		// no secondary index to maintain.
		p.logger.Info("Unique key configured",
			zap.String("collection", def.Name),
			zap.String("field", def.NaturalKeyField),
		)
	}
	return nil
}

// DropCollections deletes every collection table that exists. It refuses to
// run in production.
func (p *Provisioner) DropCollections(ctx context.Context) error {
	if p.production {
		return ErrInvalidEnvironment
	}

	for _, def := range abstractions.Definitions() {
		table := def.TableName(p.prefix)

		_, err := p.client.DeleteTable(ctx, &dynamodb.DeleteTableInput{TableName: aws.String(table)})
		if err != nil {
			if isTableNotFound(err) {
				p.logger.Info("Collection does not exist", zap.String("collection", def.Name))
				continue
			}
			return fmt.Errorf("failed to delete table %s: %w", table, err)
		}

		waiter := dynamodb.NewTableNotExistsWaiter(p.client)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, p.waitTimeout); err != nil {
			return fmt.Errorf("table %s was not deleted: %w", table, err)
		}
		p.logger.Info("Collection dropped", zap.String("collection", def.Name), zap.String("table", table))
	}
	return nil
}

func (p *Provisioner) createTable(ctx context.Context, table string) error {
	_, err := p.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(keyAttribute), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(keyAttribute), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(p.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, p.waitTimeout); err != nil {
		return fmt.Errorf("table %s did not become active: %w", table, err)
	}
	return nil
}
