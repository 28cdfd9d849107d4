package service

import "errors"

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrNotBookingOwner    = errors.New("booking belongs to another user")
	ErrNotStaff           = errors.New("user is not restaurant staff")
)
