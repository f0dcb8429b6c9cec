// dyndb/store.go
package dyndb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	batchSize               = 25
	defaultMaxBatchAttempts = 5
)

// batchBackoff é o intervalo base entre reenvios de UnprocessedItems.
var batchBackoff = 50 * time.Millisecond

type dynamoStore[T any] struct {
	client DynamoDBClient
	cfg    TableConfig[T]
}

// New cria um store reutilizável
func New[T any](client DynamoDBClient, cfg TableConfig[T]) Store[T] {
	if cfg.MaxBatchAttempts <= 0 {
		cfg.MaxBatchAttempts = defaultMaxBatchAttempts
	}
	return &dynamoStore[T]{
		client: client,
		cfg:    cfg,
	}
}

// Get item por chave primária
func (s *dynamoStore[T]) Get(ctx context.Context, hashKey, sortKey any) (*T, error) {
	key, err := s.key(hashKey, sortKey)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.cfg.TableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamostore: get failed: %w", err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var item T
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("dynamostore: unmarshal failed: %w", err)
	}
	return &item, nil
}

// Put item (upsert)
func (s *dynamoStore[T]) Put(ctx context.Context, item T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("dynamostore: marshal failed: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.cfg.TableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("dynamostore: put failed: %w", err)
	}
	return nil
}

// BatchPut — DynamoDB limita a 25 operações por BatchWriteItem
func (s *dynamoStore[T]) BatchPut(ctx context.Context, items []T) error {
	requests := make([]types.WriteRequest, 0, len(items))
	for _, item := range items {
		itemMap, err := attributevalue.MarshalMap(item)
		if err != nil {
			return fmt.Errorf("batchwrite: marshal put item failed: %w", err)
		}
		requests = append(requests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: itemMap},
		})
	}

	for i := 0; i < len(requests); i += batchSize {
		end := i + batchSize
		if end > len(requests) {
			end = len(requests)
		}
		if err := s.writeChunk(ctx, requests[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *dynamoStore[T]) writeChunk(ctx context.Context, pending []types.WriteRequest) error {
	for attempt := 1; ; attempt++ {
		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				s.cfg.TableName: pending,
			},
		})
		if err != nil {
			return fmt.Errorf("batchwrite failed: %w", err)
		}

		pending = out.UnprocessedItems[s.cfg.TableName]
		if len(pending) == 0 {
			return nil
		}
		if attempt >= s.cfg.MaxBatchAttempts {
			return fmt.Errorf("batchwrite: %d itens após %d tentativas: %w", len(pending), attempt, ErrUnprocessed)
		}

		// backoff exponencial simples
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(batchBackoff << (attempt - 1)):
		}
	}
}

func (s *dynamoStore[T]) key(hashKey, sortKey any) (map[string]types.AttributeValue, error) {
	hk, err := attributevalue.Marshal(hashKey)
	if err != nil {
		return nil, fmt.Errorf("dynamostore: invalid hash key: %w", err)
	}
	key := map[string]types.AttributeValue{s.cfg.HashKey: hk}

	if s.cfg.SortKey != "" && sortKey != nil {
		sk, err := attributevalue.Marshal(sortKey)
		if err != nil {
			return nil, fmt.Errorf("dynamostore: invalid sort key: %w", err)
		}
		key[s.cfg.SortKey] = sk
	}
	return key, nil
}
