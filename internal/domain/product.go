package domain

// Product is a catalog entry. ID is assigned by the document store and is
// never persisted as part of the body.
type Product struct {
	ID          string  `json:"id,omitempty" bson:"-"`
	Title       string  `json:"title" bson:"title"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
	Category    string  `json:"category" bson:"category"`
	Image       string  `json:"image" bson:"image"`
	InStock     bool    `json:"in_stock" bson:"in_stock"`
}

// NewProduct returns a Product with the defaults applied before decoding.
func NewProduct() Product {
	return Product{InStock: true}
}

// DemoProducts returns the catalog inserted by the seed endpoint.
func DemoProducts() []Product {
	return []Product{
		{
			Title:       "Wireless Headphones",
			Description: "Noise-cancelling over-ear headphones with 30h battery.",
			Price:       129.99,
			Category:    "Electronics",
			Image:       "https://images.unsplash.com/photo-1518449007433-7db30f2f8bb3?q=80&w=1400&auto=format&fit=crop",
			InStock:     true,
		},
		{
			Title:       "Smart Watch",
			Description: "Fitness tracking, notifications, and heart-rate monitor.",
			Price:       199.0,
			Category:    "Gadgets",
			Image:       "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?q=80&w=1400&auto=format&fit=crop",
			InStock:     true,
		},
		{
			Title:       "Espresso Maker",
			Description: "Compact espresso machine for rich, cafe-style shots.",
			Price:       89.5,
			Category:    "Home",
			Image:       "https://images.unsplash.com/photo-1503481766315-7a586b20f66d?q=80&w=1400&auto=format&fit=crop",
			InStock:     true,
		},
		{
			Title:       "Running Shoes",
			Description: "Lightweight, breathable shoes for daily training.",
			Price:       74.99,
			Category:    "Apparel",
			Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?q=80&w=1400&auto=format&fit=crop",
			InStock:     true,
		},
	}
}
