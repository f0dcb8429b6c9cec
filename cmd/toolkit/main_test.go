package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/template-service/pkg/clients"
	"github.com/raywall/template-service/pkg/config"
	"github.com/raywall/template-service/pkg/fixtures"
)

// MockDynamoDB sobrescreve apenas os métodos usados pelos comandos.
type MockDynamoDB struct {
	clients.DynamoDBAPI
	CreateTableFunc    func(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	BatchWriteItemFunc func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

func (m *MockDynamoDB) CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	return m.CreateTableFunc(ctx, params, optFns...)
}

func (m *MockDynamoDB) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	return m.BatchWriteItemFunc(ctx, params, optFns...)
}

func testSettings() *config.Settings {
	return &config.Settings{
		Environment: "staging",
		APIVersion:  "1",
		AWS:         config.AWSConf{Region: "us-east-1", AccessKeyID: "AKIAABCD1234", SecretAccessKey: "very-secret"},
		Server:      config.ServerConf{Runtime: config.RuntimeLocal, Port: 8000},
	}
}

func stub(t *testing.T, settings *config.Settings, loadErr error, client clients.DynamoDBAPI) {
	t.Helper()
	origLoad, origDynamo := loadSettings, newDynamoDB
	loadSettings = func(ctx context.Context) (*config.Settings, error) { return settings, loadErr }
	newDynamoDB = func(ctx context.Context, s *config.Settings) (clients.DynamoDBAPI, error) { return client, nil }
	t.Cleanup(func() { loadSettings, newDynamoDB = origLoad, origDynamo })
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, run(context.Background(), nil, &out))
	assert.Contains(t, out.String(), "validate")

	out.Reset()
	assert.Equal(t, 1, run(context.Background(), []string{"deploy"}, &out))
	assert.Contains(t, out.String(), "Comando desconhecido")
}

func TestRunValidate_HappyPath(t *testing.T) {
	stub(t, testSettings(), nil, nil)

	var out bytes.Buffer
	code := run(context.Background(), []string{"validate", "-format", "yaml"}, &out)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "environment: staging")
	assert.Contains(t, out.String(), "****1234")
	assert.NotContains(t, out.String(), "very-secret")
	assert.Contains(t, out.String(), "Configuração Válida")
}

func TestRunValidate_JSON(t *testing.T) {
	stub(t, testSettings(), nil, nil)

	var out bytes.Buffer
	code := run(context.Background(), []string{"validate", "-format", "json"}, &out)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), `"Environment": "staging"`)
	assert.NotContains(t, out.String(), "very-secret")
}

func TestRunValidate_Invalid(t *testing.T) {
	stub(t, nil, errors.New("campo 'Settings.Server.Port' falhou na regra 'required_if'"), nil)

	var out bytes.Buffer
	assert.Equal(t, 1, run(context.Background(), []string{"validate"}, &out))
	assert.Contains(t, out.String(), "required_if")
}

func TestRunCreateTable(t *testing.T) {
	t.Run("Cria", func(t *testing.T) {
		var input *dynamodb.CreateTableInput
		stub(t, testSettings(), nil, &MockDynamoDB{
			CreateTableFunc: func(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
				input = params
				return &dynamodb.CreateTableOutput{}, nil
			},
		})

		var out bytes.Buffer
		assert.Equal(t, 0, run(context.Background(), []string{"create-table", "-wait", "0"}, &out))
		require.NotNil(t, input)
		assert.Equal(t, fixtures.TableName, *input.TableName)
		assert.Contains(t, out.String(), "criada")
	})

	t.Run("Já existe", func(t *testing.T) {
		stub(t, testSettings(), nil, &MockDynamoDB{
			CreateTableFunc: func(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
				return nil, &types.ResourceInUseException{}
			},
		})

		var out bytes.Buffer
		assert.Equal(t, 0, run(context.Background(), []string{"create-table", "-wait", "0"}, &out))
		assert.Contains(t, out.String(), "já existe")
	})
}

func TestRunSeed(t *testing.T) {
	written := 0
	stub(t, testSettings(), nil, &MockDynamoDB{
		BatchWriteItemFunc: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			written += len(params.RequestItems[fixtures.TableName])
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	})

	var out bytes.Buffer
	assert.Equal(t, 0, run(context.Background(), []string{"seed", "-seed", "1"}, &out))
	assert.Equal(t, fixtures.NumEnrollments, written)
	assert.Contains(t, out.String(), "50 itens gravados")
}

func TestRun_BadFlag(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), []string{"seed", "-seed", "abc"}, &out))
}
