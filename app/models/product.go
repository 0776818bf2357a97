package models

// Product is a catalog entry. Price is in minor currency units (cents).
// Stock is only ever decremented when a payment is confirmed by webhook,
// never at cart or checkout time.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	Description string `json:"description"`
}
