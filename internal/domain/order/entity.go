package order

import (
	"time"

	"github.com/petsalon/salon-api/internal/pkg/sqltypes"
)

// Status represents order status
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Item is one line of an order
type Item struct {
	Name     string `json:"name" validate:"required,max=200"`
	Price    *int   `json:"price" validate:"required,gte=0"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

// Order represents a shop order (matches orders table)
type Order struct {
	ID            int64                   `db:"id"`
	CustomerName  string                  `db:"customer_name"`
	CustomerPhone string                  `db:"customer_phone"`
	TotalAmount   int                     `db:"total_amount"`
	Status        Status                  `db:"status"`
	Items         sqltypes.JSONList[Item] `db:"items_json"`
	CreatedAt     time.Time               `db:"created_at"`
}

// ItemResponse is an order line in API responses
type ItemResponse struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// OrderResponse for API response
type OrderResponse struct {
	ID            int64          `json:"id"`
	CustomerName  string         `json:"customer_name"`
	CustomerPhone string         `json:"customer_phone"`
	TotalAmount   int            `json:"total_amount"`
	Status        Status         `json:"status"`
	Items         []ItemResponse `json:"items"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ToResponse converts entity to response
func (o *Order) ToResponse() OrderResponse {
	items := make([]ItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = ItemResponse{Name: it.Name, Quantity: it.Quantity}
		if it.Price != nil {
			items[i].Price = *it.Price
		}
	}

	return OrderResponse{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		Items:         items,
		CreatedAt:     o.CreatedAt,
	}
}
