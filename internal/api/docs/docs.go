// Package docs registra o documento OpenAPI da API no registro do swag,
// de onde o http-swagger o serve em /swagger/doc.json.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var doc string

type openAPIDoc struct{}

func (openAPIDoc) ReadDoc() string { return doc }

func init() {
	swag.Register(swag.Name, openAPIDoc{})
}
