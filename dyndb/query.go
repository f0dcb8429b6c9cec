// dyndb/query.go
package dyndb

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Query inicia uma Query
func (s *dynamoStore[T]) Query() *QueryBuilder[T] {
	return &QueryBuilder[T]{
		store:       s,
		scanForward: aws.Bool(true),
	}
}

func (qb *QueryBuilder[T]) Index(name string) *QueryBuilder[T] {
	qb.indexName = aws.String(name)
	return qb
}

func (qb *QueryBuilder[T]) KeyEqual(key string, value any) *QueryBuilder[T] {
	qb.andKey(expression.KeyEqual(expression.Key(key), expression.Value(value)))
	return qb
}

func (qb *QueryBuilder[T]) KeyBeginsWith(key, prefix string) *QueryBuilder[T] {
	qb.andKey(expression.Key(key).BeginsWith(prefix))
	return qb
}

func (qb *QueryBuilder[T]) KeyBetween(key string, lower, upper any) *QueryBuilder[T] {
	qb.andKey(expression.Key(key).Between(expression.Value(lower), expression.Value(upper)))
	return qb
}

func (qb *QueryBuilder[T]) FilterEqual(field string, value any) *QueryBuilder[T] {
	cond := expression.Equal(expression.Name(field), expression.Value(value))
	if qb.filterCond == nil {
		qb.filterCond = &cond
	} else {
		tmp := qb.filterCond.And(cond)
		qb.filterCond = &tmp
	}
	return qb
}

func (qb *QueryBuilder[T]) Limit(n int32) *QueryBuilder[T] {
	qb.limit = &n
	return qb
}

// ScanForward false retorna os itens em ordem decrescente da sort key.
func (qb *QueryBuilder[T]) ScanForward(forward bool) *QueryBuilder[T] {
	qb.scanForward = &forward
	return qb
}

// LastKey continua a partir de um token devolvido por Exec.
func (qb *QueryBuilder[T]) LastKey(token string) *QueryBuilder[T] {
	if token == "" {
		return qb
	}
	key, err := decodeToken(token)
	if err != nil {
		qb.err = err
		return qb
	}
	qb.lastKey = key
	return qb
}

func (qb *QueryBuilder[T]) andKey(cond expression.KeyConditionBuilder) {
	if qb.keyCond == nil {
		qb.keyCond = &cond
		return
	}
	tmp := qb.keyCond.And(cond)
	qb.keyCond = &tmp
}

// Exec executa uma página da consulta e devolve o token da próxima ("" no fim).
func (qb *QueryBuilder[T]) Exec(ctx context.Context) ([]T, string, error) {
	input, err := qb.input()
	if err != nil {
		return nil, "", err
	}

	out, err := qb.store.client.Query(ctx, input)
	if err != nil {
		return nil, "", fmt.Errorf("dynamostore: query failed: %w", err)
	}

	items, err := unmarshalItems[T](out.Items)
	if err != nil {
		return nil, "", err
	}
	token, err := encodeToken(out.LastEvaluatedKey)
	if err != nil {
		return nil, "", err
	}
	return items, token, nil
}

// All percorre todas as páginas da consulta.
func (qb *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	input, err := qb.input()
	if err != nil {
		return nil, err
	}

	var result []T
	paginator := dynamodb.NewQueryPaginator(qb.store.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamostore: query failed: %w", err)
		}
		items, err := unmarshalItems[T](page.Items)
		if err != nil {
			return nil, err
		}
		result = append(result, items...)
	}
	return result, nil
}

func (qb *QueryBuilder[T]) input() (*dynamodb.QueryInput, error) {
	if qb.err != nil {
		return nil, qb.err
	}
	if qb.keyCond == nil {
		return nil, fmt.Errorf("dynamostore: query requires a key condition")
	}

	builder := expression.NewBuilder().WithKeyCondition(*qb.keyCond)
	if qb.filterCond != nil {
		builder = builder.WithFilter(*qb.filterCond)
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("dynamostore: build expression: %w", err)
	}

	return &dynamodb.QueryInput{
		TableName:                 aws.String(qb.store.cfg.TableName),
		IndexName:                 qb.indexName,
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     qb.limit,
		ScanIndexForward:          qb.scanForward,
		ExclusiveStartKey:         qb.lastKey,
	}, nil
}

func unmarshalItems[T any](items []map[string]types.AttributeValue) ([]T, error) {
	result := make([]T, 0, len(items))
	for _, item := range items {
		var t T
		if err := attributevalue.UnmarshalMap(item, &t); err != nil {
			return nil, fmt.Errorf("dynamostore: unmarshal failed: %w", err)
		}
		result = append(result, t)
	}
	return result, nil
}

// O token é a LastEvaluatedKey convertida para JSON simples e codificada em base64.
func encodeToken(lastKey map[string]types.AttributeValue) (string, error) {
	if len(lastKey) == 0 {
		return "", nil
	}
	var plain map[string]any
	if err := attributevalue.UnmarshalMap(lastKey, &plain); err != nil {
		return "", fmt.Errorf("dynamostore: encode token: %w", err)
	}
	b, err := json.Marshal(plain)
	if err != nil {
		return "", fmt.Errorf("dynamostore: encode token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func decodeToken(token string) (map[string]types.AttributeValue, error) {
	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("dynamostore: invalid token: %w", err)
	}
	var plain map[string]any
	if err := json.Unmarshal(data, &plain); err != nil {
		return nil, fmt.Errorf("dynamostore: invalid token: %w", err)
	}
	key, err := attributevalue.MarshalMap(plain)
	if err != nil {
		return nil, fmt.Errorf("dynamostore: invalid token: %w", err)
	}
	return key, nil
}
