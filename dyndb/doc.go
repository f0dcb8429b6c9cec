// Package dyndb fornece uma abstração genérica e fortemente tipada sobre o
// AWS DynamoDB Go SDK (v2).
//
// O pacote oferece a interface `Store[T]` (Get, Put, BatchPut e Query) e o
// `QueryBuilder[T]`, que monta KeyConditionExpression e FilterExpression
// de forma fluente, inclusive sobre índices locais e globais.
//
// BatchPut divide os itens em lotes de 25 e reenvia UnprocessedItems com
// backoff exponencial até TableConfig.MaxBatchAttempts. Exec devolve um
// token opaco (base64) para continuar a paginação; All percorre todas as
// páginas.
//
// Exemplo:
//
//	type Enrollment struct {
//		StudentId string `dynamodbav:"StudentId"`
//		CreatedAt string `dynamodbav:"CreatedAt"`
//		TeacherId string `dynamodbav:"TeacherId"`
//	}
//
//	store := dyndb.New(client, dyndb.TableConfig[Enrollment]{
//		TableName: "poc-StudentTeacherRelationships",
//		HashKey:   "StudentId",
//		SortKey:   "CreatedAt",
//	})
//
//	items, err := store.Query().
//		Index("TeacherIdIndex").
//		KeyEqual("TeacherId", "t-1").
//		ScanForward(false).
//		All(ctx)
//
// `MockStore` e `MockDynamoClient` permitem testar consumidores sem o SDK.
package dyndb
