package domain

import "winestore/internal/mapper"

// Order representa o pedido de um cliente.
type Order struct {
	ID              int     `json:"id"`
	IDCustomer      int     `json:"idCustomer"`
	Amount          float64 `json:"amount"`
	ShippingAddress string  `json:"shippingAddress"`
	OrderEmail      string  `json:"orderEmail"`
}

// OrderDTO é o formato de transporte de Order.
type OrderDTO struct {
	ID              *int     `json:"id"`
	IDCustomer      *int     `json:"idCustomer"`
	Amount          *float64 `json:"amount"`
	ShippingAddress *string  `json:"shippingAddress"`
	OrderEmail      *string  `json:"orderEmail"`
}

// OrderDetails é a linha de um pedido: qual produto, preço e quantidade.
// Guarda apenas os IDs; a existência é checada na escrita.
type OrderDetails struct {
	ID        int     `json:"id"`
	IDOrder   int     `json:"idOrder"`
	IDProduct int     `json:"idProduct"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderDetailsDTO é o formato de transporte de OrderDetails.
type OrderDetailsDTO struct {
	ID        *int     `json:"id"`
	IDOrder   *int     `json:"idOrder"`
	IDProduct *int     `json:"idProduct"`
	Price     *float64 `json:"price"`
	Quantity  *int     `json:"quantity"`
}

func (d OrderDTO) RequiredFields() []mapper.Field {
	return []mapper.Field{
		mapper.Required("idCustomer", d.IDCustomer),
		mapper.Required("amount", d.Amount),
		mapper.Required("shippingAddress", d.ShippingAddress),
		mapper.Required("orderEmail", d.OrderEmail),
	}
}

func OrderToDTO(o Order) OrderDTO {
	return OrderDTO{
		ID:              mapper.Ptr(o.ID),
		IDCustomer:      mapper.Ptr(o.IDCustomer),
		Amount:          mapper.Ptr(o.Amount),
		ShippingAddress: mapper.Ptr(o.ShippingAddress),
		OrderEmail:      mapper.Ptr(o.OrderEmail),
	}
}

func OrderFromDTO(id int, d OrderDTO) Order {
	return Order{
		ID:              id,
		IDCustomer:      mapper.Value(d.IDCustomer),
		Amount:          mapper.Value(d.Amount),
		ShippingAddress: mapper.Value(d.ShippingAddress),
		OrderEmail:      mapper.Value(d.OrderEmail),
	}
}

func (d OrderDetailsDTO) RequiredFields() []mapper.Field {
	return []mapper.Field{
		mapper.Required("idOrder", d.IDOrder),
		mapper.Required("idProduct", d.IDProduct),
		mapper.Required("price", d.Price),
		mapper.Required("quantity", d.Quantity),
	}
}

func OrderDetailsToDTO(od OrderDetails) OrderDetailsDTO {
	return OrderDetailsDTO{
		ID:        mapper.Ptr(od.ID),
		IDOrder:   mapper.Ptr(od.IDOrder),
		IDProduct: mapper.Ptr(od.IDProduct),
		Price:     mapper.Ptr(od.Price),
		Quantity:  mapper.Ptr(od.Quantity),
	}
}

func OrderDetailsFromDTO(id int, d OrderDetailsDTO) OrderDetails {
	return OrderDetails{
		ID:        id,
		IDOrder:   mapper.Value(d.IDOrder),
		IDProduct: mapper.Value(d.IDProduct),
		Price:     mapper.Value(d.Price),
		Quantity:  mapper.Value(d.Quantity),
	}
}
