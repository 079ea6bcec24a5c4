package category

// Category groups catalog products.
type Category struct {
	ID           int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}
