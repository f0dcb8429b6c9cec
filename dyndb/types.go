// dyndb/types.go
package dyndb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrNotFound – erro padrão quando o item não existe
var ErrNotFound = errors.New("dyndb: item not found")

// ErrUnprocessed indica que itens continuaram pendentes após todas as tentativas do BatchWrite.
var ErrUnprocessed = errors.New("dyndb: unprocessed items remaining")

// DynamoDBClient interface para abstrair o cliente DynamoDB
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Store — interface principal (genérica)
type Store[T any] interface {
	Get(ctx context.Context, hashKey, sortKey any) (*T, error)
	Put(ctx context.Context, item T) error

	// BatchPut grava em lotes de 25, reenviando UnprocessedItems.
	BatchPut(ctx context.Context, items []T) error

	Query() *QueryBuilder[T]
}

// TableConfig — configuração da tabela
type TableConfig[T any] struct {
	TableName string
	HashKey   string
	SortKey   string // opcional

	// MaxBatchAttempts limita os reenvios de UnprocessedItems (padrão 5)
	MaxBatchAttempts int
}

// QueryBuilder — o builder fluente
type QueryBuilder[T any] struct {
	store       *dynamoStore[T]
	keyCond     *expression.KeyConditionBuilder
	filterCond  *expression.ConditionBuilder
	indexName   *string
	limit       *int32
	lastKey     map[string]types.AttributeValue
	scanForward *bool
	err         error
}
