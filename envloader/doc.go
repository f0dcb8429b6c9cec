// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Package envloader carrega variáveis de ambiente diretamente para campos de
// uma struct Go, usando as tags `env` e `envDefault`.
//
// Visão Geral:
// O `envloader` utiliza reflection para inspecionar a struct de configuração e
// mapear chaves para campos tipados. Suporta string, int, uint, bool, float,
// time.Duration, ponteiros para esses tipos (campos opcionais) e structs
// aninhadas (incluindo ponteiros para structs).
//
// Fontes:
// `Load` lê do ambiente do processo. `LoadWithLookup` aceita qualquer
// `LookupFunc`, e `Chain` combina várias fontes em ordem de prioridade, o que
// permite sobrepor ambiente, arquivos .env e segredos remotos sem chamar
// os.Setenv.
//
// Exemplo:
//
//	type Settings struct {
//	    Environment string  `env:"ENVIRONMENT" envDefault:"development"`
//	    Region      *string `env:"AWS_REGION"`
//	}
//
//	var s Settings
//	lookup := envloader.Chain(os.LookupEnv, envloader.MapLookup(fromFile))
//	if err := envloader.LoadWithLookup(&s, lookup); err != nil {
//	    log.Fatal(err)
//	}
//
// Chaves desconhecidas nas fontes são ignoradas.
package envloader
