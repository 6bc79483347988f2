package models

// Product represents a product in the catalog.
type Product struct {
	ID          uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"type:varchar(255);not null"`
	Description string  `json:"description" gorm:"type:text;not null"`
	Price       float64 `json:"price" gorm:"type:numeric(12,4);not null"`
	Quantity    int     `json:"quantity" gorm:"not null"`
}

// TableName returns the table name for Product model.
func (Product) TableName() string {
	return "products"
}

// Assign copies the caller-owned fields of src into p, leaving the ID untouched.
func (p *Product) Assign(src Product) {
	p.Name = src.Name
	p.Description = src.Description
	p.Price = src.Price
	p.Quantity = src.Quantity
}
