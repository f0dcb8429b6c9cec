package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"

	"github.com/raywall/template-service/envloader"
)

const (
	serviceName = "template-service"
)

// EnvFilePath retorna o arquivo .env do ambiente (ex: config/env/template-service.staging.env).
func EnvFilePath(dir, environment string) string {
	return filepath.Join(dir, "env", fmt.Sprintf("%s.%s.env", serviceName, environment))
}

// SecretsFilePath retorna o arquivo .env de segredos locais.
func SecretsFilePath(dir string) string {
	return filepath.Join(dir, "secrets", fmt.Sprintf("secret-%s.env", serviceName))
}

// Loader monta as Settings combinando, em ordem de prioridade:
// ambiente do processo, arquivo .env do ambiente, arquivo de segredos,
// segredo do Secrets Manager, parâmetro do SSM, arquivo YAML e defaults.
type Loader struct {
	Lookup     envloader.LookupFunc
	ReadFile   func(name string) ([]byte, error)
	Secrets    SecretsClient
	Parameters ParameterClient
	Validator  *SettingsValidator
}

// NewLoader cria um Loader com as fontes reais do processo.
func NewLoader() *Loader {
	return &Loader{
		Lookup:    os.LookupEnv,
		ReadFile:  os.ReadFile,
		Validator: NewValidator(),
	}
}

// Load é um atalho para NewLoader().Load(ctx).
func Load(ctx context.Context) (*Settings, error) {
	return NewLoader().Load(ctx)
}

// Load resolve e valida as Settings. Chaves desconhecidas são toleradas.
func (l *Loader) Load(ctx context.Context) (*Settings, error) {
	l.defaults()

	var sources SourcesConf
	env := l.Lookup
	if err := envloader.LoadWithLookup(&sources, env); err != nil {
		return nil, err
	}

	environment := DefaultEnvironment
	if v, ok := env("ENVIRONMENT"); ok && v != "" {
		environment = v
	}

	envFile, err := l.readDotEnv(EnvFilePath(sources.Dir, environment))
	if err != nil {
		return nil, err
	}
	secretsFile, err := l.readDotEnv(SecretsFilePath(sources.Dir))
	if err != nil {
		return nil, err
	}

	local := envloader.Chain(env, envloader.MapLookup(envFile), envloader.MapLookup(secretsFile))

	// As fontes remotas podem ser apontadas pelos arquivos locais
	if err := envloader.LoadWithLookup(&sources, local); err != nil {
		return nil, err
	}

	remote, err := l.loadRemote(ctx, sources, local)
	if err != nil {
		return nil, err
	}

	fileValues, err := l.readYAML(sources.FilePath)
	if err != nil {
		return nil, err
	}

	chain := envloader.Chain(append([]envloader.LookupFunc{local}, append(remote, envloader.MapLookup(fileValues))...)...)

	settings := &Settings{}
	if err := envloader.LoadWithLookup(settings, chain); err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração: %w", err)
	}

	if err := l.Validator.Validate(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (l *Loader) defaults() {
	if l.Lookup == nil {
		l.Lookup = os.LookupEnv
	}
	if l.ReadFile == nil {
		l.ReadFile = os.ReadFile
	}
	if l.Validator == nil {
		l.Validator = NewValidator()
	}
}

func (l *Loader) loadRemote(ctx context.Context, sources SourcesConf, lookup envloader.LookupFunc) ([]envloader.LookupFunc, error) {
	var remote []envloader.LookupFunc
	if sources.SecretID == "" && sources.ParameterName == "" {
		return remote, nil
	}

	if err := l.remoteClients(ctx, sources, lookup); err != nil {
		return nil, err
	}

	if sources.SecretID != "" {
		values, err := fetchSecretValues(ctx, l.Secrets, sources.SecretID)
		if err != nil {
			return nil, err
		}
		remote = append(remote, envloader.MapLookup(values))
	}

	if sources.ParameterName != "" {
		values, err := fetchParameterValues(ctx, l.Parameters, sources.ParameterName)
		if err != nil {
			return nil, err
		}
		remote = append(remote, envloader.MapLookup(values))
	}
	return remote, nil
}

// remoteClients cria os clientes reais apenas quando não foram injetados.
func (l *Loader) remoteClients(ctx context.Context, sources SourcesConf, lookup envloader.LookupFunc) error {
	if (sources.SecretID == "" || l.Secrets != nil) && (sources.ParameterName == "" || l.Parameters != nil) {
		return nil
	}

	var awsConf AWSConf
	if err := envloader.LoadWithLookup(&awsConf, lookup); err != nil {
		return err
	}
	cfg, err := awsConf.LoadAWSConfig(ctx)
	if err != nil {
		return fmt.Errorf("erro config aws: %w", err)
	}

	if l.Secrets == nil {
		l.Secrets = secretsmanager.NewFromConfig(cfg)
	}
	if l.Parameters == nil {
		l.Parameters = ssm.NewFromConfig(cfg)
	}
	return nil
}

func (l *Loader) readDotEnv(path string) (map[string]string, error) {
	data, err := l.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao ler %s: %w", path, err)
	}

	env, err := gotenv.StrictParse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("erro parse %s: %w", path, err)
	}
	return env, nil
}

// readYAML lê um arquivo YAML plano com as mesmas chaves das variáveis de ambiente.
func (l *Loader) readYAML(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := l.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler %s: %w", path, err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("erro parse YAML %s: %w", path, err)
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
