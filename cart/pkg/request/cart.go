package request

type AddItem struct {
	MenuItemID string `validate:"required" json:"menuItemId"`
}

// UpdateQuantity accepts zero and negative quantities; both remove the line.
type UpdateQuantity struct {
	Quantity *int `validate:"required" json:"quantity"`
}

type Checkout struct {
	UserID string `validate:"required" json:"userId"`
}
