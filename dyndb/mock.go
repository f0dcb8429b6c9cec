// dyndb/mock.go
package dyndb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// MockStore é um mock da interface Store[T] para testes de quem consome o store.
//
// Campos não definidos retornam valores neutros (Get retorna ErrNotFound).
type MockStore[T any] struct {
	GetFn      func(ctx context.Context, hashKey, sortKey any) (*T, error)
	PutFn      func(ctx context.Context, item T) error
	BatchPutFn func(ctx context.Context, items []T) error
	QueryFn    func() *QueryBuilder[T]
}

func (m *MockStore[T]) Get(ctx context.Context, hashKey, sortKey any) (*T, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, hashKey, sortKey)
	}
	return nil, ErrNotFound
}

func (m *MockStore[T]) Put(ctx context.Context, item T) error {
	if m.PutFn != nil {
		return m.PutFn(ctx, item)
	}
	return nil
}

func (m *MockStore[T]) BatchPut(ctx context.Context, items []T) error {
	if m.BatchPutFn != nil {
		return m.BatchPutFn(ctx, items)
	}
	return nil
}

// Query sem QueryFn usa um MockDynamoClient vazio (Exec retorna zero itens).
func (m *MockStore[T]) Query() *QueryBuilder[T] {
	if m.QueryFn != nil {
		return m.QueryFn()
	}
	return New[T](&MockDynamoClient{}, TableConfig[T]{}).Query()
}

// MockDynamoClient é um mock para a interface DynamoDBClient de baixo nível.
//
// Permite testar a lógica interna do `dynamoStore` sem tocar no AWS SDK.
type MockDynamoClient struct {
	GetItemFn        func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItemFn        func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	BatchWriteItemFn func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	QueryFn          func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

func (m *MockDynamoClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if m.GetItemFn != nil {
		return m.GetItemFn(ctx, params, optFns...)
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (m *MockDynamoClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if m.PutItemFn != nil {
		return m.PutItemFn(ctx, params, optFns...)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (m *MockDynamoClient) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	if m.BatchWriteItemFn != nil {
		return m.BatchWriteItemFn(ctx, params, optFns...)
	}
	return &dynamodb.BatchWriteItemOutput{}, nil
}

func (m *MockDynamoClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if m.QueryFn != nil {
		return m.QueryFn(ctx, params, optFns...)
	}
	return &dynamodb.QueryOutput{}, nil
}
