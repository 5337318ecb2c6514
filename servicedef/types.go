package servicedef

import (
	"math"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// I18nString is a localized text keyed by language code ("ua", "pl", "en", "by").
type I18nString map[string]string

type Category struct {
	Name    I18nString `json:"name,omitempty"`
	Visible bool       `json:"visible"`
}

type CategoryOrder struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

type Item struct {
	CategoryID     string     `json:"category_id,omitempty"`
	Name           I18nString `json:"name,omitempty"`
	Description    I18nString `json:"description,omitempty"`
	Price          float64    `json:"price"`
	PackagingPrice float64    `json:"packaging_price"`
	Available      bool       `json:"available"`
}

type ItemUpdate struct {
	Name  I18nString `json:"name,omitempty"`
	Price float64    `json:"price,omitempty"`
}

type Availability struct {
	Available bool `json:"available"`
}

type OpeningHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type Banking struct {
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	SwiftCode     string `json:"swift_code"`
	TaxID         string `json:"tax_id"`
}

type Location struct {
	Name                 string                  `json:"name,omitempty"`
	Address              string                  `json:"address,omitempty"`
	Phone                string                  `json:"phone,omitempty"`
	Hours                map[string]OpeningHours `json:"hours,omitempty"`
	Socials              map[string]string       `json:"socials,omitempty"`
	Banking              *Banking                `json:"banking,omitempty"`
	EstablishmentEnabled ldvalue.OptionalBool    `json:"establishment_enabled,omitzero"`
}

type DeliverySetting struct {
	Method      string  `json:"method"`
	Enabled     bool    `json:"enabled"`
	DeliveryFee float64 `json:"delivery_fee"`
	Name        string  `json:"name,omitempty"`
}

type MediaSignParams struct {
	Folder         string   `json:"folder,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Transformation string   `json:"transformation,omitempty"`
}

// TelegramLogin is the proof-of-identity payload accepted by the login endpoint.
type TelegramLogin struct {
	ID           int64  `json:"id" yaml:"id"`
	FirstName    string `json:"first_name" yaml:"first_name"`
	LastName     string `json:"last_name" yaml:"last_name"`
	Username     string `json:"username" yaml:"username"`
	AuthDate     int64  `json:"auth_date" yaml:"-"`
	Hash         string `json:"hash" yaml:"hash"`
	LanguageCode string `json:"language_code,omitempty" yaml:"language_code"`
}

type Customer struct {
	Name  string                 `json:"name"`
	Phone string                 `json:"phone"`
	Email ldvalue.OptionalString `json:"email,omitzero"`
}

type Delivery struct {
	Type          string  `json:"type"`
	Address       string  `json:"address,omitempty"`
	DeliveryFee   float64 `json:"delivery_fee"`
	EstimatedTime string  `json:"estimated_time,omitempty"`
}

type OrderLine struct {
	ItemID         string     `json:"item_id"`
	Name           I18nString `json:"name"`
	Price          float64    `json:"price"`
	PackagingPrice float64    `json:"packaging_price"`
	Quantity       int        `json:"quantity"`
	Subtotal       float64    `json:"subtotal"`
}

type Order struct {
	Customer    Customer    `json:"customer"`
	Items       []OrderLine `json:"items"`
	LocationID  string      `json:"location_id"`
	Delivery    Delivery    `json:"delivery"`
	Source      string      `json:"source,omitempty"`
	Subtotal    float64     `json:"subtotal"`
	DeliveryFee float64     `json:"delivery_fee"`
	Total       float64     `json:"total"`
	Notes       string      `json:"notes,omitempty"`
}

type StatusUpdate struct {
	Status string `json:"status"`
}

// Money rounds an amount to whole cents.
func Money(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// NewOrderLine computes the line subtotal as (price + packaging) * quantity.
func NewOrderLine(itemID string, name I18nString, price, packaging float64, quantity int) OrderLine {
	return OrderLine{
		ItemID:         itemID,
		Name:           name,
		Price:          price,
		PackagingPrice: packaging,
		Quantity:       quantity,
		Subtotal:       Money((price + packaging) * float64(quantity)),
	}
}

// NewOrder computes the order subtotal from its lines and the total from the subtotal and the
// delivery fee.
func NewOrder(customer Customer, locationID string, delivery Delivery, lines ...OrderLine) Order {
	var subtotal float64
	for _, l := range lines {
		subtotal += l.Subtotal
	}
	subtotal = Money(subtotal)
	return Order{
		Customer:    customer,
		Items:       lines,
		LocationID:  locationID,
		Delivery:    delivery,
		Subtotal:    subtotal,
		DeliveryFee: delivery.DeliveryFee,
		Total:       Money(subtotal + delivery.DeliveryFee),
	}
}
