// dyndb/query_test.go
package dyndb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func item(id, created, name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id":      &types.AttributeValueMemberS{Value: id},
		"created": &types.AttributeValueMemberS{Value: created},
		"name":    &types.AttributeValueMemberS{Value: name},
	}
}

func TestQuery_Exec_Success(t *testing.T) {
	t.Parallel()

	mockClient := &clientMock{}
	store := newTestStore(mockClient)

	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
		return *input.TableName == "test-table" &&
			input.IndexName != nil && *input.IndexName == "NameIndex" &&
			input.KeyConditionExpression != nil &&
			input.FilterExpression != nil &&
			*input.Limit == 10 &&
			!*input.ScanIndexForward
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			item("1", "a", "Item1"),
			item("1", "b", "Item2"),
		},
	}, nil)

	results, token, err := store.Query().
		Index("NameIndex").
		KeyEqual("id", "1").
		KeyBeginsWith("created", "20").
		FilterEqual("name", "Item1").
		Limit(10).
		ScanForward(false).
		Exec(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Item1", results[0].Name)
	assert.Equal(t, "Item2", results[1].Name)
	assert.Empty(t, token)
	mockClient.AssertExpectations(t)
}

func TestQuery_Exec_PaginationToken(t *testing.T) {
	t.Parallel()

	mockClient := &clientMock{}
	store := newTestStore(mockClient)

	lastKey := map[string]types.AttributeValue{
		"id":      &types.AttributeValueMemberS{Value: "1"},
		"created": &types.AttributeValueMemberS{Value: "a"},
	}

	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return in.ExclusiveStartKey == nil
	})).Return(&dynamodb.QueryOutput{
		Items:            []map[string]types.AttributeValue{item("1", "a", "first")},
		LastEvaluatedKey: lastKey,
	}, nil).Once()

	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		created, ok := in.ExclusiveStartKey["created"].(*types.AttributeValueMemberS)
		return ok && created.Value == "a"
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{item("1", "b", "second")},
	}, nil).Once()

	first, token, err := store.Query().KeyEqual("id", "1").Limit(1).Exec(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.NotEmpty(t, token)

	second, next, err := store.Query().KeyEqual("id", "1").Limit(1).LastKey(token).Exec(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "second", second[0].Name)
	assert.Empty(t, next)
	mockClient.AssertExpectations(t)
}

func TestQuery_InvalidToken(t *testing.T) {
	t.Parallel()

	store := newTestStore(&clientMock{})
	_, _, err := store.Query().KeyEqual("id", "1").LastKey("%%%").Exec(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestQuery_RequiresKeyCondition(t *testing.T) {
	t.Parallel()

	store := newTestStore(&clientMock{})
	_, _, err := store.Query().FilterEqual("name", "x").Exec(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key condition")
}

func TestQuery_All_FollowsPages(t *testing.T) {
	t.Parallel()

	mockClient := &clientMock{}
	store := newTestStore(mockClient)

	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return in.ExclusiveStartKey == nil
	})).Return(&dynamodb.QueryOutput{
		Items:            []map[string]types.AttributeValue{item("1", "a", "p1")},
		LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "1"}},
	}, nil).Once()
	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return in.ExclusiveStartKey != nil
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{item("1", "b", "p2")},
	}, nil).Once()

	all, err := store.Query().KeyEqual("id", "1").All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "p2", all[1].Name)
}

func TestQuery_ClientError(t *testing.T) {
	t.Parallel()

	mockClient := &clientMock{}
	mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	_, _, err := newTestStore(mockClient).Query().KeyEqual("id", "1").Exec(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query failed")
}
