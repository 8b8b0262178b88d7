package storage

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrOrderNotFound   = errors.New("order not found")
)
