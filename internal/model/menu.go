package model

import "github.com/shopspring/decimal"

// MenuCategory groups menu items on the menu list.
type MenuCategory string

const (
	MenuFood    MenuCategory = "food"
	MenuDrink   MenuCategory = "drink"
	MenuDessert MenuCategory = "dessert"
)

// Ingredient is one recipe line. Unit prices may be fractional (0.15 per ml),
// so quantity and price stay exact until the total is rounded to Money.
type Ingredient struct {
	Name      string
	Quantity  decimal.Decimal
	Unit      string
	UnitPrice decimal.Decimal
}

// LineCost returns quantity * unit price, unrounded.
func (i Ingredient) LineCost() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// MenuItem is a sellable dish or drink with its recipe.
type MenuItem struct {
	ID                 string
	Name               string
	Category           MenuCategory
	Emoji              string
	Price              Money
	Ingredients        []Ingredient
	MonthlySalesVolume int
}
