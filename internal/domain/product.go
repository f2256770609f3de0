package domain

import "winestore/internal/mapper"

// Product representa o vinho do catálogo (a Entidade persistida).
// As três referências são entidades vivas, já resolvidas no momento da escrita.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Year        int     `json:"year"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`

	Winery  Winery  `json:"winery"`
	Variety Variety `json:"variety"`
	Type    Type    `json:"type"`
}

// ProductDTO é o formato de escrita do Produto: referências por ID.
// Ponteiros distinguem "campo ausente" de zero value.
type ProductDTO struct {
	ID          *int     `json:"id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Year        *int     `json:"year"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	IDWinery    *int     `json:"idWinery"`
	IDVariety   *int     `json:"idVariety"`
	IDType      *int     `json:"idType"`
}

// ProductProjection é a projeção de leitura desnormalizada: os campos do
// Produto mais os nomes (não os IDs) da vinícola, variedade e tipo.
// Produzida apenas por consultas, nunca persistida.
type ProductProjection struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Year        int     `json:"year"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	WineryName  string  `json:"wineryName"`
	VarietyName string  `json:"varietyName"`
	TypeName    string  `json:"typeName"`
}

// RequiredFields lista os campos obrigatórios do DTO de escrita.
func (d ProductDTO) RequiredFields() []mapper.Field {
	return []mapper.Field{
		mapper.Required("name", d.Name),
		mapper.Required("description", d.Description),
		mapper.Required("image", d.Image),
		mapper.Required("year", d.Year),
		mapper.Required("price", d.Price),
		mapper.Required("stock", d.Stock),
		mapper.Required("idWinery", d.IDWinery),
		mapper.Required("idVariety", d.IDVariety),
		mapper.Required("idType", d.IDType),
	}
}

// ProductToDTO converte a entidade para o formato de escrita.
func ProductToDTO(p Product) ProductDTO {
	return ProductDTO{
		ID:          mapper.Ptr(p.ID),
		Name:        mapper.Ptr(p.Name),
		Description: mapper.Ptr(p.Description),
		Image:       mapper.Ptr(p.Image),
		Year:        mapper.Ptr(p.Year),
		Price:       mapper.Ptr(p.Price),
		Stock:       mapper.Ptr(p.Stock),
		IDWinery:    mapper.Ptr(p.Winery.ID),
		IDVariety:   mapper.Ptr(p.Variety.ID),
		IDType:      mapper.Ptr(p.Type.ID),
	}
}

// ProductFromDTO monta a entidade a partir do DTO e das referências já resolvidas.
// Não valida nada: quem chama já garantiu os campos obrigatórios.
func ProductFromDTO(id int, d ProductDTO, winery Winery, variety Variety, wineType Type) Product {
	return Product{
		ID:          id,
		Name:        mapper.Value(d.Name),
		Description: mapper.Value(d.Description),
		Image:       mapper.Value(d.Image),
		Year:        mapper.Value(d.Year),
		Price:       mapper.Value(d.Price),
		Stock:       mapper.Value(d.Stock),
		Winery:      winery,
		Variety:     variety,
		Type:        wineType,
	}
}

// ProjectProduct desnormaliza uma entidade com referências carregadas.
func ProjectProduct(p Product) ProductProjection {
	return ProductProjection{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Year:        p.Year,
		Price:       p.Price,
		Stock:       p.Stock,
		WineryName:  p.Winery.Name,
		VarietyName: p.Variety.Name,
		TypeName:    p.Type.Name,
	}
}
