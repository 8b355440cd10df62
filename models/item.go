package models

// Item is a single line of an expense.
type Item struct {
	ID       string  `json:"item_id" bson:"item_id"`
	Name     string  `json:"item_name" bson:"item_name"`
	Price    float64 `json:"item_price" bson:"item_price"`
	Quantity int     `json:"item_quantity" bson:"item_quantity"`
}

// Subtotal returns price times quantity.
func (i Item) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
