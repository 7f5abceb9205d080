package domain

import "fmt"

type DeliveryMode string

const (
	DeliveryModeDelivery DeliveryMode = "delivery"
	DeliveryModePickup   DeliveryMode = "pickup"
)

func ParseDeliveryMode(s string) (DeliveryMode, error) {
	switch DeliveryMode(s) {
	case DeliveryModeDelivery, DeliveryModePickup:
		return DeliveryMode(s), nil
	}
	return "", fmt.Errorf("unknown delivery mode %q", s)
}

type Country string

const (
	CountryMexico Country = "mexico"
	CountryUSA    Country = "usa"
)

func ParseCountry(s string) (Country, error) {
	switch Country(s) {
	case CountryMexico, CountryUSA:
		return Country(s), nil
	}
	return "", fmt.Errorf("unknown country %q", s)
}

// CustomerInfo is the checkout contact block. Address is required only for
// delivery orders; Phone is stored normalized once validation passes.
type CustomerInfo struct {
	Name         string       `json:"name"`
	Phone        string       `json:"phone"`
	DeliveryMode DeliveryMode `json:"deliveryMode"`
	Address      string       `json:"address,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	Country      Country      `json:"country"`
}
