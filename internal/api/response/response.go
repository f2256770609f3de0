// Package response concentra a escrita das respostas HTTP: JSON de sucesso,
// corpo de erro padronizado e leitura de parâmetros e payloads.
package response

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"winestore/internal/domain"
	apperror "winestore/internal/errors"
	"winestore/internal/pkg/logger"
)

// JSON escreve data com o status informado.
func JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

// NoContent responde 204 sem corpo.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error traduz err para {code, category, message}. Erros 5xx são logados
// como erro; os demais em debug.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	JSON(w, r, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// IDParam lê o parâmetro de rota {id} como inteiro.
func IDParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewBadRequestError(fmt.Sprintf("O ID informado (%q) não é um número válido.", raw))
	}
	return id, nil
}

// Decode lê o corpo JSON em v.
func Decode(r *http.Request, v interface{}) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return apperror.NewBadRequestError("Payload inválido. Verifique o formato JSON.")
	}
	return nil
}
