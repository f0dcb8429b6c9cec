// Package template_service é o serviço HTTP de referência para AWS: health
// check do DynamoDB e geração de URLs pré-assinadas do S3, rodando como
// servidor local ou como Lambda atrás do API Gateway.
//
// Visão Geral:
// O módulo é organizado em camadas pequenas e testáveis:
// 1. Configuração (pkg/config + envloader): env, arquivos .env por ambiente,
// YAML opcional e overlay remoto via Secrets Manager / SSM.
// 2. Clientes (pkg/clients): holders com ciclo de vida explícito para os
// clientes do SDK (inicializar, obter, fechar, reinicializar).
// 3. Serviços (pkg/health, pkg/storage): regras de negócio sobre os clientes.
// 4. Transporte (pkg/transport): router gorilla/mux, middleware de
// observabilidade, adaptador Lambda e listener SQS de refresh de clientes.
// 5. Persistência (dyndb + pkg/fixtures): store genérico tipado sobre
// DynamoDB e a tabela de exemplo StudentTeacherRelationships.
//
// Executáveis:
//
//   - cmd/server: sobe o serviço (RUNTIME=local ou RUNTIME=lambda).
//   - cmd/toolkit: validate | create-table | seed.
//
// Exemplo de Início Rápido:
//
//	settings, err := config.Load(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	logger.Configure(settings)
//
//	application, err := app.New(settings)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := application.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer application.Stop(context.Background())
//
//	server := transport.NewServer(settings, application.Handler)
//	_ = server.Run(ctx)
package template_service
