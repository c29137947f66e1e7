package dto

type CreateShopInput struct {
	Name        string
	Description string
	Address     string
	Phone       string
	Email       string
	Website     string
	LogoURL     string
}

type UpdateShopInput struct {
	ID          string
	Name        string
	Description string
	Address     string
	Phone       string
	Email       string
	Website     string
	LogoURL     string
}

type ShopFilters struct {
	SearchQuery string
	Page        int
	PageSize    int
}

// ShopStatistics summarizes a shop's catalog footprint.
type ShopStatistics struct {
	ShopID           string         `json:"shop_id"`
	TotalProducts    int            `json:"total_products"`
	ProductsByStatus map[string]int `json:"products_by_status"`
	CategoriesUsed   int            `json:"categories_used"`
}
