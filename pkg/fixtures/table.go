package fixtures

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
)

// TableAPI é o necessário para criar a tabela e aguardar que fique ativa.
type TableAPI interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

var _ TableAPI = (*dynamodb.Client)(nil)

func throughput() *types.ProvisionedThroughput {
	return &types.ProvisionedThroughput{
		ReadCapacityUnits:  aws.Int64(10),
		WriteCapacityUnits: aws.Int64(10),
	}
}

// TableDefinition descreve a tabela: HASH StudentId, RANGE CreatedAt,
// LSI SubjectIndex (StudentId, Subject) e GSI TeacherIdIndex (TeacherId, CreatedAt).
func TableDefinition() *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName: aws.String(TableName),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(AttrStudentID), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(AttrCreatedAt), KeyType: types.KeyTypeRange},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(AttrStudentID), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(AttrCreatedAt), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(AttrSubject), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(AttrTeacherID), AttributeType: types.ScalarAttributeTypeS},
		},
		LocalSecondaryIndexes: []types.LocalSecondaryIndex{
			{
				IndexName: aws.String(SubjectIndex),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String(AttrStudentID), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String(AttrSubject), KeyType: types.KeyTypeRange},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(TeacherIDIndex),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String(AttrTeacherID), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String(AttrCreatedAt), KeyType: types.KeyTypeRange},
				},
				Projection:            &types.Projection{ProjectionType: types.ProjectionTypeAll},
				ProvisionedThroughput: throughput(),
			},
		},
		ProvisionedThroughput: throughput(),
	}
}

// CreateTable cria a tabela e aguarda até maxWait para que fique ativa.
// Se a tabela já existir, retorna created=false sem erro.
func CreateTable(ctx context.Context, client TableAPI, maxWait time.Duration) (created bool, err error) {
	logger := log.With().Str("table", TableName).Logger()

	_, err = client.CreateTable(ctx, TableDefinition())
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			logger.Warn().Msg("Tabela já existe")
			return false, nil
		}
		return false, fmt.Errorf("erro ao criar tabela %s: %w", TableName, err)
	}

	if maxWait > 0 {
		logger.Info().Msg("Aguardando tabela ficar ativa...")
		waiter := dynamodb.NewTableExistsWaiter(client)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(TableName)}, maxWait); err != nil {
			return true, fmt.Errorf("tabela %s não ficou ativa: %w", TableName, err)
		}
	}

	logger.Info().Msg("Tabela criada")
	return true, nil
}
