package domain

import "winestore/internal/mapper"

// Winery representa a vinícola produtora de um Produto.
type Winery struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Variety representa a variedade da uva (e.g., Carmenere, Malbec).
type Variety struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Type representa o tipo do vinho (e.g., Tinto, Branco, Rosé).
type Type struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// WineryDTO é o formato de transporte de Winery.
type WineryDTO struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

// VarietyDTO é o formato de transporte de Variety.
type VarietyDTO struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

// TypeDTO é o formato de transporte de Type.
type TypeDTO struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

func WineryToDTO(w Winery) WineryDTO {
	return WineryDTO{ID: mapper.Ptr(w.ID), Name: mapper.Ptr(w.Name)}
}

func WineryFromDTO(id int, d WineryDTO) Winery {
	return Winery{ID: id, Name: mapper.Value(d.Name)}
}

func (d WineryDTO) RequiredFields() []mapper.Field {
	return []mapper.Field{mapper.Required("name", d.Name)}
}

func VarietyToDTO(v Variety) VarietyDTO {
	return VarietyDTO{ID: mapper.Ptr(v.ID), Name: mapper.Ptr(v.Name)}
}

func VarietyFromDTO(id int, d VarietyDTO) Variety {
	return Variety{ID: id, Name: mapper.Value(d.Name)}
}

func (d VarietyDTO) RequiredFields() []mapper.Field {
	return []mapper.Field{mapper.Required("name", d.Name)}
}

func TypeToDTO(t Type) TypeDTO {
	return TypeDTO{ID: mapper.Ptr(t.ID), Name: mapper.Ptr(t.Name)}
}

func TypeFromDTO(id int, d TypeDTO) Type {
	return Type{ID: id, Name: mapper.Value(d.Name)}
}

func (d TypeDTO) RequiredFields() []mapper.Field {
	return []mapper.Field{mapper.Required("name", d.Name)}
}
