package catalog

import "fmt"

// ChildKind names one of the name-only collections attached to an item.
type ChildKind string

const (
	ChildTags        ChildKind = "tags"
	ChildIngredients ChildKind = "ingredients"
)

// ChildKinds lists every child collection in write order.
func ChildKinds() []ChildKind { return []ChildKind{ChildTags, ChildIngredients} }

// Category describes where one kind of catalog item lives in storage.
// All storage access for items goes through these names; no code path
// hardcodes a category's tables.
type Category struct {
	Name            string // singular, used in messages ("food")
	Plural          string // route segment ("foods")
	ItemTable       string
	TagTable        string
	IngredientTable string
	OwnerColumn     string // item -> users.id
	ParentColumn    string // tag/ingredient -> item.id
}

var (
	Food = Category{
		Name:            "food",
		Plural:          "foods",
		ItemTable:       "foods",
		TagTable:        "food_tags",
		IngredientTable: "food_ingredients",
		OwnerColumn:     "user_id",
		ParentColumn:    "food_id",
	}
	Drink = Category{
		Name:            "drink",
		Plural:          "drinks",
		ItemTable:       "drinks",
		TagTable:        "drink_tags",
		IngredientTable: "drink_ingredients",
		OwnerColumn:     "user_id",
		ParentColumn:    "drink_id",
	}
	Dessert = Category{
		Name:            "dessert",
		Plural:          "desserts",
		ItemTable:       "desserts",
		TagTable:        "dessert_tags",
		IngredientTable: "dessert_ingredients",
		OwnerColumn:     "user_id",
		ParentColumn:    "dessert_id",
	}
)

func Categories() []Category { return []Category{Food, Drink, Dessert} }

func (c Category) ChildTable(kind ChildKind) string {
	switch kind {
	case ChildTags:
		return c.TagTable
	case ChildIngredients:
		return c.IngredientTable
	default:
		panic(fmt.Sprintf("catalog: unknown child kind %q", kind))
	}
}
