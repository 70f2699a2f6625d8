package catalog

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// MaxNameLength is the VARCHAR size of item names, categories, images and
// child names.
const MaxNameLength = 255

// PriceScale and PriceLimit mirror the DECIMAL(10,2) price column.
const PriceScale = 2

var PriceLimit = decimal.NewFromInt(100_000_000)

func init() {
	// Prices go out as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Item is one catalog row. The same struct backs every category; the owner
// column is aliased to owner_id on read.
type Item struct {
	ID          uint            `gorm:"column:id" json:"id"`
	Name        string          `gorm:"column:name" json:"name"`
	Category    string          `gorm:"column:category" json:"category"`
	Description string          `gorm:"column:description" json:"description"`
	Price       decimal.Decimal `gorm:"column:price" json:"price"`
	Image       *string         `gorm:"column:img" json:"img"`
	OwnerID     uint            `gorm:"column:owner_id" json:"user_id"`
	CreatedAt   time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

// ItemWithAggregates is a list entry: child names joined with ",".
type ItemWithAggregates struct {
	Item
	Tags        string `json:"tags"`
	Ingredients string `json:"ingredients"`
}

// ItemWithChildren is a detail view with child names in insertion order.
type ItemWithChildren struct {
	Item
	Tags        []string `json:"tags"`
	Ingredients []string `json:"ingredients"`
}

// Payload is the create/update request body. Field order is the validation
// order.
type Payload struct {
	Name        string           `json:"name" validate:"notblank,max=255"`
	Category    string           `json:"category" validate:"notblank,max=255"`
	Description string           `json:"description" validate:"notblank"`
	Price       *decimal.Decimal `json:"price" validate:"required,gt=0,money"`
	Tags        []string         `json:"tags" validate:"required,min=1,dive,notblank,max=255"`
	Ingredients []string         `json:"ingredients" validate:"required,min=1,dive,notblank,max=255"`
	Image       *string          `json:"image" validate:"omitempty,max=255"`
}

// UnmarshalJSON takes price only from a JSON number. A quoted, boolean or
// null price decodes as absent, so validation rejects it as not a number.
func (p *Payload) UnmarshalJSON(data []byte) error {
	type plain Payload
	aux := struct {
		*plain
		Price json.RawMessage `json:"price"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Price = nil
	raw := bytes.TrimSpace(aux.Price)
	if len(raw) == 0 || raw[0] == '"' {
		return nil
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return nil
	}
	p.Price = &d
	return nil
}

// Names returns the submitted names for kind.
func (p Payload) Names(kind ChildKind) []string {
	if kind == ChildTags {
		return p.Tags
	}
	return p.Ingredients
}
