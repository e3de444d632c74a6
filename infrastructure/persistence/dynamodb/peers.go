package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	// batchGetLimit is the BatchGetItem key limit per request
	batchGetLimit     = 100
	maxBatchGetRounds = 5
)

// CountExisting returns how many of ids resolve to documents in this
// collection. Repeated ids are counted once.
func (s *Store[F]) CountExisting(ctx context.Context, ids []string) (int, error) {
	return countExisting(ctx, s.client, s.table, ids)
}

// tableResolver counts peer documents straight from a table
type tableResolver struct {
	client DynamoDBAPI
	table  string
}

func (r tableResolver) CountExisting(ctx context.Context, ids []string) (int, error) {
	return countExisting(ctx, r.client, r.table, ids)
}

// validate checks the document schema and that every peer reference
// resolves. It returns fields with canonical peer ids.
func (s *Store[F]) validate(ctx context.Context, fields F) (F, error) {
	fields, err := s.collection.Normalize(fields)
	if err != nil {
		return fields, err
	}

	peers := s.collection.Peers(fields)
	if len(peers) == 0 {
		return fields, nil
	}

	found, err := s.peers.CountExisting(ctx, peers)
	if err != nil {
		return fields, err
	}
	return fields, s.collection.CheckResolved(found, len(peers))
}

func countExisting(ctx context.Context, client DynamoDBAPI, table string, ids []string) (int, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return 0, nil
	}

	projection, err := expression.NewBuilder().
		WithProjection(expression.NamesList(expression.Name(keyAttribute))).
		Build()
	if err != nil {
		return 0, fmt.Errorf("failed to build projection: %w", err)
	}

	found := 0
	for start := 0; start < len(unique); start += batchGetLimit {
		end := min(start+batchGetLimit, len(unique))

		keys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, id := range unique[start:end] {
			keys = append(keys, itemKey(id))
		}

		request := map[string]types.KeysAndAttributes{
			table: {
				Keys:                     keys,
				ConsistentRead:           aws.Bool(true),
				ProjectionExpression:     projection.Projection(),
				ExpressionAttributeNames: projection.Names(),
			},
		}

		for round := 0; len(request) > 0; round++ {
			if round == maxBatchGetRounds {
				return 0, fmt.Errorf("unprocessed keys remain for table %s after %d rounds", table, round)
			}

			out, err := client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
			if err != nil {
				return 0, fmt.Errorf("failed to resolve references in %s: %w", table, err)
			}
			found += len(out.Responses[table])
			request = out.UnprocessedKeys
		}
	}

	return found, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
