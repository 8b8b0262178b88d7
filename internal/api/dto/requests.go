package dto

// CheckoutCustomer identifies the customer on a checkout request.
type CheckoutCustomer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// CheckoutAddress is the delivery address on a checkout request.
type CheckoutAddress struct {
	Governorate string `json:"governorate"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2,omitempty"`
}

// CheckoutItem is one requested line. Only the product ID and quantity are
// accepted; prices always come from the catalog.
type CheckoutItem struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// CheckoutRequest is the POST /api/checkout body.
type CheckoutRequest struct {
	Customer   CheckoutCustomer `json:"customer"`
	Address    CheckoutAddress  `json:"address"`
	Items      []CheckoutItem   `json:"items"`
	CouponCode string           `json:"coupon_code,omitempty"`
	Notes      string           `json:"notes,omitempty"`
	Currency   string           `json:"currency,omitempty"`
	Locale     string           `json:"locale,omitempty"`
}

// CartAddRequest is the POST /api/cart/items body.
type CartAddRequest struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// CartQtyRequest is the PUT /api/cart/items/{productID} body.
type CartQtyRequest struct {
	Qty int `json:"qty"`
}

// WishlistToggleRequest is the POST /api/wishlist body.
type WishlistToggleRequest struct {
	ProductID string `json:"product_id"`
}
