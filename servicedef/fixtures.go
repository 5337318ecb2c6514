package servicedef

import (
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultLocationID is the location that orders reference when the backend does not list any.
const DefaultLocationID = "loc_1"

// MenuItem is one of the dishes that the harness puts on the menu before ordering from it.
type MenuItem struct {
	Key         string
	Name        I18nString
	Description I18nString
	Price       float64
	Packaging   float64
}

var (
	Borscht = MenuItem{
		Key: "borscht",
		Name: I18nString{
			"ua": "Борщ український з м'ясом",
			"pl": "Barszcz ukraiński z mięsem",
			"en": "Ukrainian Borscht with Meat",
		},
		Description: I18nString{
			"ua": "Традиційний український борщ з яловичиною та сметаною",
			"pl": "Tradycyjny ukraiński barszcz z wołowiną i śmietaną",
			"en": "Traditional Ukrainian borscht with beef and sour cream",
		},
		Price:     65,
		Packaging: 3,
	}
	Pizza = MenuItem{
		Key: "pizza",
		Name: I18nString{
			"ua": "Піца Маргарита",
			"pl": "Pizza Margherita",
			"en": "Margherita Pizza",
		},
		Description: I18nString{
			"ua": "Класична піца з томатами, моцарелою та базиліком",
			"pl": "Klasyczna pizza z pomidorami, mozzarellą i bazylią",
			"en": "Classic pizza with tomatoes, mozzarella and basil",
		},
		Price:     180,
		Packaging: 5,
	}
	Bread = MenuItem{
		Key: "bread",
		Name: I18nString{
			"ua": "Хліб житній домашній",
			"pl": "Chleb żytni domowy",
			"en": "Homemade Rye Bread",
		},
		Description: I18nString{
			"ua": "Свіжий житній хліб власного виробництва",
			"pl": "Świeży chleb żytni własnej produkcji",
			"en": "Fresh homemade rye bread",
		},
		Price:     25,
		Packaging: 2,
	}
)

// Menu is the set of items created by the items scenario, in creation order.
var Menu = []MenuItem{Borscht, Pizza, Bread}

// AsItem builds the creation request for this menu item in the given category.
func (m MenuItem) AsItem(categoryID string) Item {
	return Item{
		CategoryID:     categoryID,
		Name:           m.Name,
		Description:    m.Description,
		Price:          m.Price,
		PackagingPrice: m.Packaging,
		Available:      true,
	}
}

// Line builds an order line for this menu item.
func (m MenuItem) Line(itemID string, quantity int) OrderLine {
	return NewOrderLine(itemID, m.Name, m.Price, m.Packaging, quantity)
}

func MenuCategory() Category {
	return Category{
		Name: I18nString{
			"ua": "Тестові страви для замовлень",
			"pl": "Testowe dania do zamówień",
			"en": "Test Dishes for Orders",
			"by": "Тэставыя стравы для заказаў",
		},
		Visible: true,
	}
}

func UpdatedCategory() Category {
	return Category{
		Name: I18nString{
			"ua": "Оновлена категорія",
			"pl": "Zaktualizowana kategoria",
			"en": "Updated Category",
		},
		Visible: false,
	}
}

// ThrowawayCategory is created only to be deleted again by the same scenario.
func ThrowawayCategory(tag string) Category {
	return Category{Name: I18nString{"ua": "Тимчасова " + tag, "en": "Temporary " + tag}, Visible: false}
}

func UpdatedItem() ItemUpdate {
	return ItemUpdate{
		Name: I18nString{
			"ua": "Оновлений товар",
			"pl": "Zaktualizowany produkt",
			"en": "Updated Item",
		},
		Price: 29.99,
	}
}

func ThrowawayItem(categoryID, tag string) Item {
	return Item{
		CategoryID: categoryID,
		Name:       I18nString{"ua": "Тимчасовий " + tag, "en": "Temporary " + tag},
		Price:      1,
		Available:  false,
	}
}

func weeklyHours(weekday, friday, saturday, sunday OpeningHours) map[string]OpeningHours {
	return map[string]OpeningHours{
		"mon": weekday, "tue": weekday, "wed": weekday, "thu": weekday,
		"fri": friday, "sat": saturday, "sun": sunday,
	}
}

// LocationDetails is a full location update including banking information.
func LocationDetails() Location {
	return Location{
		Name:    "ROBOT Kitchen",
		Address: "вул. Роботизації, 42, Київ, Україна",
		Phone:   "+380441234567",
		Hours: weeklyHours(
			OpeningHours{"08:00", "23:00"},
			OpeningHours{"08:00", "24:00"},
			OpeningHours{"09:00", "24:00"},
			OpeningHours{"09:00", "22:00"},
		),
		Socials: map[string]string{
			"facebook":  "https://facebook.com/robotkitchen",
			"instagram": "https://instagram.com/robotkitchen_ua",
			"tiktok":    "https://tiktok.com/@robotkitchen",
		},
		Banking: &Banking{
			AccountNumber: "UA123456789012345678901234567",
			BankName:      "ПриватБанк",
			SwiftCode:     "PBANUA2X",
			TaxID:         "12345678",
		},
		EstablishmentEnabled: ldvalue.NewOptionalBool(true),
	}
}

// EstablishmentToggle is a partial location update that only switches the establishment on or off.
func EstablishmentToggle(enabled bool) Location {
	return Location{EstablishmentEnabled: ldvalue.NewOptionalBool(enabled)}
}

func DefaultDeliveryMethods() []DeliverySetting {
	return []DeliverySetting{
		{Method: "pickup", Enabled: true, DeliveryFee: 0},
		{Method: "courier", Enabled: true, DeliveryFee: 5},
		{Method: "self", Enabled: false, DeliveryFee: 0},
	}
}

func CustomDeliveryMethods() []DeliverySetting {
	return []DeliverySetting{
		{Method: "pickup", Enabled: true, DeliveryFee: 0, Name: "Самовивіз"},
		{Method: "courier", Enabled: true, DeliveryFee: 25, Name: "Кур'єрська доставка"},
		{Method: "drone", Enabled: true, DeliveryFee: 15, Name: "Доставка дроном"},
		{Method: "robot", Enabled: true, DeliveryFee: 10, Name: "Доставка роботом"},
	}
}

func PickupOnlyDelivery() []DeliverySetting {
	return []DeliverySetting{
		{Method: "pickup", Enabled: true, DeliveryFee: 0, Name: "Тільки самовивіз"},
	}
}

func MediaUploadParams() MediaSignParams {
	return MediaSignParams{
		Folder:         "robot_images",
		Tags:           []string{"robot", "chef", "ui"},
		Transformation: "c_fill,w_400,h_400",
	}
}

// LoginPayload stamps the configured login with the current time.
func LoginPayload(login TelegramLogin, now time.Time) TelegramLogin {
	login.AuthDate = now.Unix()
	return login
}

// DefaultLogin is used when the configuration does not provide one.
func DefaultLogin() TelegramLogin {
	return TelegramLogin{
		ID:        123456789,
		FirstName: "Test",
		LastName:  "Admin",
		Username:  "testadmin",
		Hash:      "test_hash_value",
	}
}

// CourierOrder orders two borscht and one bread for courier delivery: its subtotal is 163.00 and
// its total 193.00.
func CourierOrder(locationID, borschtID, breadID string) Order {
	order := NewOrder(
		Customer{
			Name:  "Олександр Петренко",
			Phone: "+380671234567",
			Email: ldvalue.NewOptionalString("oleksandr.petrenko@example.com"),
		},
		locationID,
		Delivery{Type: "courier", Address: "вул. Хрещатик, 1, Київ, 01001", DeliveryFee: 30, EstimatedTime: "45 хвилин"},
		Borscht.Line(borschtID, 2),
		Bread.Line(breadID, 1),
	)
	order.Notes = "Дзвонити за 10 хвилин до прибуття"
	return order
}

func PickupOrder(locationID, pizzaID string) Order {
	order := NewOrder(
		Customer{Name: "Марія Іваненко", Phone: "+380501234567"},
		locationID,
		Delivery{Type: "pickup"},
		Pizza.Line(pizzaID, 1),
	)
	order.Notes = "Самовивіз о 18:00"
	return order
}

// MinimalOrder has a single line of the given item and no delivery fee.
func MinimalOrder(locationID, itemID string) Order {
	return NewOrder(
		Customer{Name: "Test User", Phone: "+380123456789"},
		locationID,
		Delivery{Type: "pickup"},
		NewOrderLine(itemID, I18nString{"ua": "Тест", "pl": "Test", "en": "Test"}, 10, 0, 1),
	)
}
