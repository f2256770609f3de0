// Package mapper reúne os helpers genéricos usados na conversão entre
// entidades persistidas e DTOs, e na checagem de campos obrigatórios.
package mapper

import "strings"

// Field descreve um campo obrigatório de um DTO e se ele veio preenchido.
type Field struct {
	Name    string
	Present bool
}

// Required monta um Field a partir de um ponteiro: nil significa ausente.
func Required[T any](name string, v *T) Field {
	return Field{Name: name, Present: v != nil}
}

// Missing devolve os nomes dos campos ausentes, na ordem informada.
func Missing(fields ...Field) []string {
	var missing []string
	for _, f := range fields {
		if !f.Present {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// MissingMessage formata a lista de campos ausentes para a mensagem de erro.
func MissingMessage(missing []string) string {
	return "A requisição recebida não possui o formato correto. Campos ausentes: " + strings.Join(missing, ", ")
}

// Map aplica fn a cada item. Nunca devolve nil, para que a lista vazia
// seja serializada como [] e não como null.
func Map[E any, D any](items []E, fn func(E) D) []D {
	out := make([]D, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

// Ptr devolve o endereço de uma cópia de v.
func Ptr[T any](v T) *T {
	return &v
}

// Value desreferencia p, devolvendo o zero value quando p é nil.
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
