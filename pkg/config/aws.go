package config

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// LoadAWSConfig monta o aws.Config a partir das configurações. Sem chaves
// explícitas, a resolução de credenciais fica com a cadeia padrão do SDK.
func (a AWSConf) LoadAWSConfig(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if a.Region != "" {
		opts = append(opts, awsconfig.WithRegion(a.Region))
	}
	if a.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(a.AccessKeyID, a.SecretAccessKey, ""),
		))
	}
	if a.EndpointURL != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(a.EndpointURL))
	}
	opts = append(opts, optFns...)

	return awsconfig.LoadDefaultConfig(ctx, opts...)
}
