package services

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/foodexplorer-backend/internal/domain/catalog"
	"github.com/yungbote/foodexplorer-backend/internal/platform/apierr"
)

func validPayload() catalog.Payload {
	price := decimal.NewFromInt(10)
	return catalog.Payload{
		Name:        "Bolo",
		Category:    "doce",
		Description: "x",
		Price:       &price,
		Tags:        []string{"festa"},
		Ingredients: []string{"farinha", "ovo"},
	}
}

func TestValidatePayloadAcceptsValid(t *testing.T) {
	for _, cat := range catalog.Categories() {
		assert.NoError(t, ValidatePayload(cat, validPayload()), cat.Name)
	}
}

func TestValidatePayloadReportsFirstViolationInOrder(t *testing.T) {
	zero := decimal.Zero
	negative := decimal.NewFromInt(-3)
	longImage := string(make([]byte, 256))
	longName := strings.Repeat("a", 256)
	tinyPrice := decimal.RequireFromString("0.001")
	hugePrice := decimal.RequireFromString("123456789012.5")
	limitPrice := decimal.NewFromInt(100_000_000)
	const moneyMsg = "food price must have at most 2 decimal places and be less than 100000000"

	cases := []struct {
		name   string
		mutate func(p *catalog.Payload)
		want   string
	}{
		{"blank name wins over everything", func(p *catalog.Payload) {
			p.Name = "  "
			p.Category = ""
			p.Price = nil
			p.Tags = nil
		}, "food name is required and cannot be empty"},
		{"category before description", func(p *catalog.Payload) {
			p.Category = ""
			p.Description = ""
		}, "food category is required and cannot be empty"},
		{"description", func(p *catalog.Payload) { p.Description = "\t" }, "food description is required and cannot be empty"},
		{"missing price", func(p *catalog.Payload) { p.Price = nil }, "food price must be a number greater than zero"},
		{"zero price", func(p *catalog.Payload) { p.Price = &zero }, "food price must be a number greater than zero"},
		{"negative price before tags", func(p *catalog.Payload) {
			p.Price = &negative
			p.Tags = nil
		}, "food price must be a number greater than zero"},
		{"sub-cent price", func(p *catalog.Payload) { p.Price = &tinyPrice }, moneyMsg},
		{"price too large", func(p *catalog.Payload) { p.Price = &hugePrice }, moneyMsg},
		{"price at column limit", func(p *catalog.Payload) { p.Price = &limitPrice }, moneyMsg},
		{"name too long", func(p *catalog.Payload) { p.Name = longName }, "food name must be at most 255 characters"},
		{"category too long", func(p *catalog.Payload) { p.Category = longName }, "food category must be at most 255 characters"},
		{"tag too long", func(p *catalog.Payload) { p.Tags = []string{"ok", longName} }, "food tags must be at most 255 characters each"},
		{"ingredient too long", func(p *catalog.Payload) { p.Ingredients = []string{longName} }, "food ingredients must be at most 255 characters each"},
		{"empty tags", func(p *catalog.Payload) { p.Tags = []string{} }, "food must have at least one tag"},
		{"blank tag", func(p *catalog.Payload) { p.Tags = []string{"ok", " "} }, "food tags cannot contain empty names"},
		{"missing ingredients", func(p *catalog.Payload) { p.Ingredients = nil }, "food must have at least one ingredient"},
		{"blank ingredient", func(p *catalog.Payload) { p.Ingredients = []string{""} }, "food ingredients cannot contain empty names"},
		{"image too long", func(p *catalog.Payload) { p.Image = &longImage }, "food image must be at most 255 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPayload()
			tc.mutate(&p)

			err := ValidatePayload(catalog.Food, p)
			require.Error(t, err)
			apiErr, ok := apierr.As(err)
			require.True(t, ok)
			assert.Equal(t, apierr.CodeValidation, apiErr.Code)
			assert.Equal(t, 400, apiErr.Status)
			assert.Equal(t, tc.want, apiErr.Message)
		})
	}
}

func TestValidatePayloadUsesCategoryName(t *testing.T) {
	p := validPayload()
	p.Name = ""
	err := ValidatePayload(catalog.Dessert, p)
	assert.EqualError(t, err, "dessert name is required and cannot be empty")
}

func TestValidatePayloadAcceptsColumnBoundaries(t *testing.T) {
	maxName := strings.Repeat("é", 255)
	for _, raw := range []string{"0.01", "0.10", "99999999.99", "12.5"} {
		price := decimal.RequireFromString(raw)
		p := validPayload()
		p.Price = &price
		p.Name = maxName
		p.Tags = []string{maxName}
		assert.NoError(t, ValidatePayload(catalog.Drink, p), raw)
	}
}
