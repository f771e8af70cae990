package response

import "github.com/shopspring/decimal"

type Restaurant struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Cuisine      string          `json:"cuisine"`
	Rating       decimal.Decimal `json:"rating"`
	DeliveryTime string          `json:"deliveryTime"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee"`
	Image        string          `json:"image"`
	IsOpen       bool            `json:"isOpen"`
}

type MenuItem struct {
	ID           string          `json:"id"`
	RestaurantID string          `json:"restaurantId"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image"`
	Category     string          `json:"category"`
	IsAvailable  bool            `json:"isAvailable"`
}
