package domain

type CreateOrderItem struct {
	MenuItemID          string  `json:"menu_item_id"`
	Name                string  `json:"name,omitempty"`
	Price               float64 `json:"price,omitempty"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
}

type CreateOrderRequest struct {
	TableID      string            `json:"table_id"`
	TableNumber  int               `json:"table_number"`
	CustomerName string            `json:"customer_name,omitempty"`
	Items        []CreateOrderItem `json:"items"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
