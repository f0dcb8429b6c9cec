package config

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/template-service/envloader"
)

// --- Mocks ---

type MockSSM struct {
	GetParameterFunc func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

func (m *MockSSM) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	return m.GetParameterFunc(ctx, params, optFns...)
}

type MockSecrets struct {
	GetSecretValueFunc func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

func (m *MockSecrets) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	return m.GetSecretValueFunc(ctx, params, optFns...)
}

// fakeFS simula o sistema de arquivos para o Loader
func fakeFS(files map[string]string) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		if content, ok := files[name]; ok {
			return []byte(content), nil
		}
		return nil, fs.ErrNotExist
	}
}

func newTestLoader(env map[string]string, files map[string]string) *Loader {
	return &Loader{
		Lookup:   envloader.MapLookup(env),
		ReadFile: fakeFS(files),
	}
}

// --- Testes ---

func TestLoad_Defaults(t *testing.T) {
	settings, err := newTestLoader(nil, nil).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "development", settings.Environment)
	assert.False(t, settings.Debug)
	assert.Equal(t, "1", settings.APIVersion)
	assert.Equal(t, "/v1", settings.RoutePrefix())
	assert.Equal(t, "", settings.AWS.Region)
	assert.False(t, settings.AWS.HasStaticCredentials())
	assert.Equal(t, 3, settings.Clients.DynamoDBMaxAttempts)
	assert.Equal(t, 5*time.Second, settings.Clients.DynamoDBTimeout)
	assert.Equal(t, 30*time.Second, settings.Clients.S3Timeout)
	assert.Equal(t, RuntimeLocal, settings.Server.Runtime)
	assert.Equal(t, ":8000", settings.Server.Addr())
	assert.Equal(t, 10*time.Second, settings.Server.ShutdownTimeout)
	assert.Equal(t, "json", settings.Logging.Format)
	assert.Equal(t, DefaultBucket, settings.S3.DefaultBucket)
}

func TestLoad_EnvironmentFiles(t *testing.T) {
	env := map[string]string{
		"ENVIRONMENT": "staging",
		"API_VERSION": "2",
		"EXTRA_VAR":   "ignored",
	}
	files := map[string]string{
		"config/env/template-service.staging.env": "API_VERSION=9\nAWS_REGION=sa-east-1\nDEBUG=true\n",
		"config/secrets/secret-template-service.env": "AWS_ACCESS_KEY_ID=AKIAEXAMPLE1234\nAWS_SECRET_ACCESS_KEY=secret\nAWS_REGION=us-east-1\n",
		"config/env/template-service.production.env": "API_VERSION=3\n",
	}

	settings, err := newTestLoader(env, files).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "staging", settings.Environment)
	assert.Equal(t, "2", settings.APIVersion, "ambiente do processo tem prioridade")
	assert.Equal(t, "sa-east-1", settings.AWS.Region, "arquivo do ambiente vence o de segredos")
	assert.True(t, settings.Debug)
	assert.True(t, settings.AWS.HasStaticCredentials())
	assert.Equal(t, "secret", settings.AWS.SecretAccessKey)
}

func TestLoad_RemoteSources(t *testing.T) {
	secret := `{"AWS_REGION": "eu-west-1", "DEBUG": true, "PORT": 9000}`
	param := "API_VERSION=4\nAWS_REGION=ap-south-1\nLOG_FORMAT=console\n"

	loader := newTestLoader(map[string]string{
		"CONFIG_SECRET_ID":      "template/settings",
		"CONFIG_PARAMETER_NAME": "/template/settings",
	}, nil)
	loader.Secrets = &MockSecrets{
		GetSecretValueFunc: func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
			assert.Equal(t, "template/settings", *params.SecretId)
			return &secretsmanager.GetSecretValueOutput{SecretString: &secret}, nil
		},
	}
	loader.Parameters = &MockSSM{
		GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
			assert.Equal(t, "/template/settings", *params.Name)
			assert.True(t, *params.WithDecryption)
			return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: &param}}, nil
		},
	}

	settings, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", settings.AWS.Region, "Secrets Manager vence o SSM")
	assert.True(t, settings.Debug)
	assert.Equal(t, 9000, settings.Server.Port)
	assert.Equal(t, "4", settings.APIVersion)
	assert.Equal(t, "console", settings.Logging.Format)
}

func TestLoad_RemoteSourceFailure(t *testing.T) {
	loader := newTestLoader(map[string]string{"CONFIG_SECRET_ID": "missing"}, nil)
	loader.Secrets = &MockSecrets{
		GetSecretValueFunc: func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
			return nil, errors.New("AccessDenied")
		},
	}

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SecretsManager")
}

func TestLoad_YAMLFile(t *testing.T) {
	files := map[string]string{
		"/etc/template/settings.yaml": "ENVIRONMENT: qa\nDEBUG: true\nPORT: 8081\nS3_DEFAULT_BUCKET: my-bucket\n",
	}
	settings, err := newTestLoader(map[string]string{
		"CONFIG_FILE_PATH": "/etc/template/settings.yaml",
		"PORT":             "8082",
	}, files).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "qa", settings.Environment)
	assert.True(t, settings.Debug)
	assert.Equal(t, 8082, settings.Server.Port)
	assert.Equal(t, "my-bucket", settings.S3.DefaultBucket)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("arquivo .env invalido", func(t *testing.T) {
		files := map[string]string{"config/env/template-service.development.env": "NOT A VALID LINE"}
		_, err := newTestLoader(nil, files).Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("arquivo YAML ausente", func(t *testing.T) {
		_, err := newTestLoader(map[string]string{"CONFIG_FILE_PATH": "nope.yaml"}, nil).Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("conversao de tipo", func(t *testing.T) {
		_, err := newTestLoader(map[string]string{"PORT": "abc"}, nil).Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PORT")
	})

	t.Run("validacao", func(t *testing.T) {
		_, err := newTestLoader(map[string]string{"RUNTIME": "k8s"}, nil).Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Runtime")
	})
}

func TestSettings_Redacted(t *testing.T) {
	s := Settings{AWS: AWSConf{AccessKeyID: "AKIAEXAMPLE1234", SecretAccessKey: "very-secret"}}

	r := s.Redacted()
	assert.Equal(t, "****1234", r.AWS.AccessKeyID)
	assert.Equal(t, "****", r.AWS.SecretAccessKey)
	assert.Equal(t, "very-secret", s.AWS.SecretAccessKey, "original não é alterado")

	out, err := s.YAML()
	require.NoError(t, err)
	assert.NotContains(t, string(out), "very-secret")
	assert.Contains(t, string(out), "****1234")
}
