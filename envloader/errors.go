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
package envloader

import (
	"fmt"
	"reflect"
)

// InvalidConfigError indica que Load recebeu algo que não é ponteiro para struct.
type InvalidConfigError struct {
	Value reflect.Type
}

func (e *InvalidConfigError) Error() string {
	if e.Value.Kind() != reflect.Ptr {
		return fmt.Sprintf("envloader: config must be a pointer to struct, got %s", e.Value.Kind())
	}
	return fmt.Sprintf("envloader: config must be a pointer to struct, got pointer to %s", e.Value.Elem().Kind())
}

// FieldError associa uma falha de conversão ao campo e à chave consultada.
// FromDefault diferencia um valor vindo das fontes (env, arquivos, SSM,
// Secrets Manager) de um envDefault inválido na própria struct.
type FieldError struct {
	FieldName   string
	EnvVar      string
	Value       string
	FromDefault bool
	Err         error
}

func (e *FieldError) Error() string {
	origin := "value"
	if e.FromDefault {
		origin = "envDefault"
	}
	return fmt.Sprintf("envloader: field %s: invalid %s %q for %s: %v",
		e.FieldName, origin, e.Value, e.EnvVar, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// DurationError é devolvido quando um campo time.Duration (ou *time.Duration)
// recebe texto que time.ParseDuration não aceita, como "10" sem unidade.
type DurationError struct {
	Value string
	Err   error
}

func (e *DurationError) Error() string {
	return fmt.Sprintf("invalid duration %q, expected a number with unit such as \"500ms\", \"10s\" or \"1m\"", e.Value)
}

func (e *DurationError) Unwrap() error {
	return e.Err
}

// UnsupportedTypeError indica um campo de tipo sem conversão (slice, map, interface).
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type %s", e.Type)
}
