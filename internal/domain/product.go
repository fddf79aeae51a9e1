package domain

import "time"

// Product is a catalog entry with audit fields recording who created and
// last modified it.
type Product struct {
	ID          int64     `json:"id"`
	ProductName string    `json:"product_name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	ModifiedBy  string    `json:"modified_by"`
	CreatedOn   time.Time `json:"created_on"`
	ModifiedOn  time.Time `json:"modified_on"`
	ItemCount   int       `json:"item_count"`
}

// Item is a stock line belonging to exactly one product.
type Item struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	ItemName  string    `json:"item_name"`
	Quantity  int       `json:"quantity"`
	CreatedOn time.Time `json:"created_on"`
}
