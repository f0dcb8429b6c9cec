package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/subosito/gotenv"
)

// Interfaces para abstrair o SDK da AWS (Permite Mocking)
type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type ParameterClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

var (
	_ SecretsClient   = (*secretsmanager.Client)(nil)
	_ ParameterClient = (*ssm.Client)(nil)
)

// fetchSecretValues lê um segredo JSON ({"CHAVE": "valor"}) do Secrets Manager.
func fetchSecretValues(ctx context.Context, client SecretsClient, secretID string) (map[string]string, error) {
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return nil, fmt.Errorf("erro no SecretsManager: %w", err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("segredo %s não possui SecretString", secretID)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(*out.SecretString), &raw); err != nil {
		return nil, fmt.Errorf("segredo %s não é um objeto JSON: %w", secretID, err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		values[k] = fmt.Sprint(v)
	}
	return values, nil
}

// fetchParameterValues lê um parâmetro do SSM contendo texto no formato .env
func fetchParameterValues(ctx context.Context, client ParameterClient, name string) (map[string]string, error) {
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("erro no SSM GetParameter: %w", err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return nil, fmt.Errorf("parâmetro %s sem valor", name)
	}

	env, err := gotenv.StrictParse(bytes.NewBufferString(*out.Parameter.Value))
	if err != nil {
		return nil, fmt.Errorf("parâmetro %s inválido: %w", name, err)
	}
	return env, nil
}
