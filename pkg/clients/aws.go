package clients

import (
	"context"
	"fmt"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/raywall/template-service/dyndb"
	"github.com/raywall/template-service/pkg/config"
)

// DynamoDBAPI é o subconjunto do SDK usado pela aplicação (health check,
// criação da tabela de fixtures e o store genérico).
type DynamoDBAPI interface {
	dyndb.DynamoDBClient
	ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// ObjectAPI lê objetos do S3.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// PresignAPI gera URLs pré-assinadas (SigV4) para upload e download.
type PresignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3 agrupa o cliente de objetos e o presigner criados a partir da mesma config.
type S3 struct {
	Objects   ObjectAPI
	Presigner PresignAPI
}

// Compile-time checks: os clientes do SDK satisfazem as interfaces estreitas.
var (
	_ DynamoDBAPI = (*dynamodb.Client)(nil)
	_ ObjectAPI   = (*s3.Client)(nil)
	_ PresignAPI  = (*s3.PresignClient)(nil)
)

const (
	DynamoDBName = "DynamoDB"
	S3Name       = "S3"
)

// withTimeout troca o cliente HTTP por um com prazo por tentativa.
// timeout 0 mantém o cliente padrão do SDK.
func withTimeout(timeout time.Duration) func(*awsconfig.LoadOptions) error {
	return func(o *awsconfig.LoadOptions) error {
		if timeout > 0 {
			o.HTTPClient = awshttp.NewBuildableClient().WithTimeout(timeout)
		}
		return nil
	}
}

// NewDynamoDB cria o holder do DynamoDB. Um por processo: inicializado no
// startup e fechado no shutdown.
func NewDynamoDB(settings *config.Settings) *Holder[DynamoDBAPI] {
	return NewHolder(DynamoDBName, func(ctx context.Context) (DynamoDBAPI, error) {
		cfg, err := settings.AWS.LoadAWSConfig(ctx,
			awsconfig.WithRetryMaxAttempts(settings.Clients.DynamoDBMaxAttempts),
			withTimeout(settings.Clients.DynamoDBTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("erro config aws: %w", err)
		}
		return dynamodb.NewFromConfig(cfg), nil
	})
}

// NewS3 cria um holder do S3. É construído por requisição.
func NewS3(settings *config.Settings) *Holder[S3] {
	return NewHolder(S3Name, func(ctx context.Context) (S3, error) {
		cfg, err := settings.AWS.LoadAWSConfig(ctx, withTimeout(settings.Clients.S3Timeout))
		if err != nil {
			return S3{}, fmt.Errorf("erro config aws: %w", err)
		}
		client := s3.NewFromConfig(cfg, func(o *s3.Options) {
			// Endpoints locais (localstack/minio) não resolvem virtual-host
			o.UsePathStyle = settings.AWS.EndpointURL != ""
		})
		return S3{
			Objects:   client,
			Presigner: s3.NewPresignClient(client),
		}, nil
	})
}
