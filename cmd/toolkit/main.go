package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/raywall/template-service/pkg/clients"
	"github.com/raywall/template-service/pkg/config"
	"github.com/raywall/template-service/pkg/fixtures"
	"github.com/raywall/template-service/pkg/logger"
)

var (
	// Variáveis injetáveis para mocking
	loadSettings = config.Load
	newDynamoDB  = func(ctx context.Context, settings *config.Settings) (clients.DynamoDBAPI, error) {
		return clients.NewDynamoDB(settings).Client(ctx)
	}
)

const usage = "Comandos esperados: validate | create-table | seed"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout))
}

func run(ctx context.Context, args []string, out io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(out, usage)
		return 1
	}

	switch args[0] {
	case "validate":
		cmd := flag.NewFlagSet("validate", flag.ContinueOnError)
		cmd.SetOutput(out)
		format := cmd.String("format", envOr("OUTPUT_FORMAT", "yaml"), "Formato do relatório: yaml ou json")
		if err := cmd.Parse(args[1:]); err != nil {
			return 2
		}
		return runValidate(ctx, out, *format)

	case "create-table":
		cmd := flag.NewFlagSet("create-table", flag.ContinueOnError)
		cmd.SetOutput(out)
		wait := cmd.Duration("wait", 5*time.Minute, "Tempo máximo aguardando a tabela ficar ativa (0 não aguarda)")
		if err := cmd.Parse(args[1:]); err != nil {
			return 2
		}
		return runCreateTable(ctx, out, *wait)

	case "seed":
		cmd := flag.NewFlagSet("seed", flag.ContinueOnError)
		cmd.SetOutput(out)
		seed := cmd.Int64("seed", 0, "Semente do gerador aleatório (0 usa o relógio)")
		if err := cmd.Parse(args[1:]); err != nil {
			return 2
		}
		return runSeed(ctx, out, *seed)

	default:
		fmt.Fprintf(out, "Comando desconhecido: %s\n%s\n", args[0], usage)
		return 1
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func load(ctx context.Context, out io.Writer) (*config.Settings, bool) {
	settings, err := loadSettings(ctx)
	if err != nil {
		fmt.Fprintf(out, "❌ Erro de Carregamento/Estrutura:\n%v\n", err)
		return nil, false
	}
	logger.Configure(settings)
	return settings, true
}

func runValidate(ctx context.Context, out io.Writer, format string) int {
	fmt.Fprintln(out, "🔍 Analisando configuração ...")

	settings, ok := load(ctx, out)
	if !ok {
		return 1
	}

	switch format {
	case "json":
		report, _ := json.MarshalIndent(settings.Redacted(), "", "  ")
		fmt.Fprintln(out, string(report))
	default:
		report, err := settings.YAML()
		if err != nil {
			fmt.Fprintf(out, "❌ Erro interno ao gerar relatório: %v\n", err)
			return 1
		}
		fmt.Fprint(out, string(report))
	}

	fmt.Fprintln(out, "✅ Configuração Válida e Pronta para Deploy!")
	return 0
}

func dynamo(ctx context.Context, out io.Writer) (clients.DynamoDBAPI, bool) {
	settings, ok := load(ctx, out)
	if !ok {
		return nil, false
	}
	client, err := newDynamoDB(ctx, settings)
	if err != nil {
		fmt.Fprintf(out, "❌ Erro ao criar cliente DynamoDB: %v\n", err)
		return nil, false
	}
	return client, true
}

func runCreateTable(ctx context.Context, out io.Writer, wait time.Duration) int {
	client, ok := dynamo(ctx, out)
	if !ok {
		return 1
	}

	created, err := fixtures.CreateTable(ctx, client, wait)
	if err != nil {
		fmt.Fprintf(out, "❌ %v\n", err)
		return 1
	}
	if !created {
		fmt.Fprintf(out, "ℹ️  Tabela %s já existe\n", fixtures.TableName)
		return 0
	}
	fmt.Fprintf(out, "✅ Tabela %s criada\n", fixtures.TableName)
	return 0
}

func runSeed(ctx context.Context, out io.Writer, seed int64) int {
	client, ok := dynamo(ctx, out)
	if !ok {
		return 1
	}

	fmt.Fprintln(out, "🎲 Gerando dados de exemplo...")
	items, err := fixtures.NewSeeder(fixtures.NewStore(client), seed).Seed(ctx)
	if err != nil {
		fmt.Fprintf(out, "❌ %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "✅ %d itens gravados em '%s'!\n", len(items), fixtures.TableName)
	return 0
}
