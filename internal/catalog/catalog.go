// Package catalog orders and searches listings taken from the inventory
// store. Every function works on a copy of its input.
package catalog

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/safar/coronas-ledger/internal/models"
)

type ItemField string

const (
	ItemByName        ItemField = "name"
	ItemByDescription ItemField = "description"
	ItemByMaterial    ItemField = "material"
	ItemByValue       ItemField = "value"
	ItemByWeight      ItemField = "weight"
)

type CustomerField string

const (
	CustomerByName     CustomerField = "name"
	CustomerByRace     CustomerField = "race"
	CustomerByLocation CustomerField = "location"
)

type MerchantField string

const (
	MerchantByName     MerchantField = "name"
	MerchantByType     MerchantField = "type"
	MerchantByLocation MerchantField = "location"
)

// SortItems orders entries by name, value or weight. Other fields fall back
// to name.
func SortItems(entries []models.StockEntry, by ItemField, descending bool) []models.StockEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b models.StockEntry) int {
		var c int
		switch by {
		case ItemByValue:
			c = a.Item.Value.Cmp(b.Item.Value)
		case ItemByWeight:
			c = cmp.Compare(a.Item.Weight, b.Item.Weight)
		default:
			c = compareFold(a.Item.Name, b.Item.Name)
		}
		if descending {
			return -c
		}
		return c
	})
	return out
}

func SortCustomers(customers []models.Customer, by CustomerField, descending bool) []models.Customer {
	out := slices.Clone(customers)
	slices.SortStableFunc(out, func(a, b models.Customer) int {
		c := compareFold(customerField(a, by), customerField(b, by))
		if descending {
			return -c
		}
		return c
	})
	return out
}

func SortMerchants(merchants []models.Merchant, by MerchantField, descending bool) []models.Merchant {
	out := slices.Clone(merchants)
	slices.SortStableFunc(out, func(a, b models.Merchant) int {
		c := compareFold(merchantField(a, by), merchantField(b, by))
		if descending {
			return -c
		}
		return c
	})
	return out
}

// SearchItems keeps entries whose chosen attribute contains term, ignoring
// case. Numeric fields are matched on their printed form.
func SearchItems(entries []models.StockEntry, by ItemField, term string) []models.StockEntry {
	var out []models.StockEntry
	for _, e := range entries {
		if containsFold(itemField(e.Item, by), term) {
			out = append(out, e)
		}
	}
	return out
}

func SearchCustomers(customers []models.Customer, by CustomerField, term string) []models.Customer {
	var out []models.Customer
	for _, c := range customers {
		if containsFold(customerField(c, by), term) {
			out = append(out, c)
		}
	}
	return out
}

func SearchMerchants(merchants []models.Merchant, by MerchantField, term string) []models.Merchant {
	var out []models.Merchant
	for _, m := range merchants {
		if containsFold(merchantField(m, by), term) {
			out = append(out, m)
		}
	}
	return out
}

func itemField(item models.Item, by ItemField) string {
	switch by {
	case ItemByDescription:
		return item.Description
	case ItemByMaterial:
		return item.Material
	case ItemByValue:
		return item.Value.String()
	case ItemByWeight:
		return FormatWeight(item.Weight)
	default:
		return item.Name
	}
}

func customerField(c models.Customer, by CustomerField) string {
	switch by {
	case CustomerByRace:
		return c.Race
	case CustomerByLocation:
		return c.Location
	default:
		return c.Name
	}
}

func merchantField(m models.Merchant, by MerchantField) string {
	switch by {
	case MerchantByType:
		return m.Type
	case MerchantByLocation:
		return m.Location
	default:
		return m.Name
	}
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(term)))
}

// FormatWeight prints a weight without trailing zeros.
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
