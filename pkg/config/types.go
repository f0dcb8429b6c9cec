package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Valores padrão compartilhados entre loader, CLI e testes.
const (
	DefaultEnvironment = "development"
	DefaultAPIVersion  = "1"
	DefaultBucket      = "stg-poc-python-template-service"

	RuntimeLocal  = "local"
	RuntimeLambda = "lambda"
)

// Settings é o registro imutável de configuração do processo.
// É carregado uma única vez no boot e compartilhado apenas para leitura.
type Settings struct {
	Environment string      `yaml:"environment" env:"ENVIRONMENT" envDefault:"development" validate:"required"`
	Debug       bool        `yaml:"debug" env:"DEBUG" envDefault:"false"`
	APIVersion  string      `yaml:"api_version" env:"API_VERSION" envDefault:"1" validate:"required,excludesall=/"`
	AWS         AWSConf     `yaml:"aws"`
	Clients     ClientsConf `yaml:"clients"`
	Server      ServerConf  `yaml:"server"`
	Logging     LoggingConf `yaml:"logging"`
	Metrics     MetricsConf `yaml:"metrics"`
	S3          S3Conf      `yaml:"s3"`
	Sources     SourcesConf `yaml:"sources"`
}

// AWSConf agrupa região e credenciais. Campos vazios fazem o SDK cair na
// cadeia padrão de credenciais do ambiente (IAM role, profile, etc).
type AWSConf struct {
	Region          string `yaml:"region" env:"AWS_REGION"`
	AccessKeyID     string `yaml:"access_key_id" env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"AWS_SECRET_ACCESS_KEY" validate:"required_with=AccessKeyID"`
	EndpointURL     string `yaml:"endpoint_url" env:"AWS_ENDPOINT_URL" validate:"omitempty,url"`
}

// HasStaticCredentials indica se as chaves explícitas devem ser usadas.
func (a AWSConf) HasStaticCredentials() bool {
	return a.AccessKeyID != "" && a.SecretAccessKey != ""
}

// ClientsConf controla o ciclo de vida dos clientes AWS.
type ClientsConf struct {
	DynamoDBMaxAttempts int    `yaml:"dynamodb_max_attempts" env:"DYNAMODB_MAX_ATTEMPTS" envDefault:"3" validate:"gte=1,lte=10"`
	RefreshQueueURL     string `yaml:"refresh_queue_url" env:"CLIENT_REFRESH_QUEUE_URL" validate:"omitempty,url"`
	// Limite de cada tentativa HTTP; 0 deixa o cliente do SDK sem timeout.
	DynamoDBTimeout time.Duration `yaml:"dynamodb_timeout" env:"DYNAMODB_TIMEOUT" envDefault:"5s" validate:"gte=0"`
	S3Timeout       time.Duration `yaml:"s3_timeout" env:"S3_TIMEOUT" envDefault:"30s" validate:"gte=0"`
}

// ServerConf define o runtime e o listener HTTP.
type ServerConf struct {
	Runtime         string        `yaml:"runtime" env:"RUNTIME" envDefault:"local" validate:"required,oneof=local lambda"`
	Port            int           `yaml:"port" env:"PORT" envDefault:"8000" validate:"required_if=Runtime local,gte=0,lte=65535"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gte=0"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled" env:"LOG_ENABLED" envDefault:"true"`
	Format  string `yaml:"format" env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool   `yaml:"enabled" env:"DD_ENABLED" envDefault:"false"`
	Addr      string `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string `yaml:"namespace" env:"DD_NAMESPACE" envDefault:"template_service."`
}

type S3Conf struct {
	DefaultBucket string `yaml:"default_bucket" env:"S3_DEFAULT_BUCKET" envDefault:"stg-poc-python-template-service" validate:"required"`
}

// SourcesConf aponta para fontes extras de configuração.
type SourcesConf struct {
	Dir           string `yaml:"dir" env:"CONFIG_DIR" envDefault:"config"`
	SecretID      string `yaml:"secret_id" env:"CONFIG_SECRET_ID"`
	ParameterName string `yaml:"parameter_name" env:"CONFIG_PARAMETER_NAME"`
	FilePath      string `yaml:"file_path" env:"CONFIG_FILE_PATH"`
}

// RoutePrefix retorna o prefixo versionado das rotas (ex: /v1).
func (s *Settings) RoutePrefix() string {
	return fmt.Sprintf("/v%s", s.APIVersion)
}

// Addr retorna o endereço do listener HTTP.
func (s ServerConf) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Redacted retorna uma cópia sem credenciais, própria para logs e relatórios.
func (s Settings) Redacted() Settings {
	if s.AWS.SecretAccessKey != "" {
		s.AWS.SecretAccessKey = "****"
	}
	if n := len(s.AWS.AccessKeyID); n > 4 {
		s.AWS.AccessKeyID = "****" + s.AWS.AccessKeyID[n-4:]
	}
	return s
}

// YAML serializa as configurações efetivas (já mascaradas).
func (s Settings) YAML() ([]byte, error) {
	return yaml.Marshal(s.Redacted())
}
