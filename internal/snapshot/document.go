package snapshot

import (
	"github.com/safar/coronas-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// Document is the persisted catalog. Its JSON keys are fixed: bienes for
// goods, mercaderes for merchants, clientes for customers.
type Document struct {
	Bienes     []ItemRecord     `json:"bienes" yaml:"bienes" validate:"dive"`
	Mercaderes []MerchantRecord `json:"mercaderes" yaml:"mercaderes" validate:"dive"`
	Clientes   []CustomerRecord `json:"clientes" yaml:"clientes" validate:"dive"`
}

type ItemRecord struct {
	ID          string  `json:"id" yaml:"id" validate:"required"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Material    string  `json:"material" yaml:"material"`
	Weight      float64 `json:"weight" yaml:"weight" validate:"gte=0"`
	Value       float64 `json:"value" yaml:"value" validate:"gte=0"`
}

type MerchantRecord struct {
	ID       string `json:"id" yaml:"id" validate:"required"`
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Location string `json:"location" yaml:"location"`
}

type CustomerRecord struct {
	ID       string `json:"id" yaml:"id" validate:"required"`
	Name     string `json:"name" yaml:"name"`
	Race     string `json:"race" yaml:"race"`
	Location string `json:"location" yaml:"location"`
}

// Empty returns a document whose three arrays encode as [] rather than null.
func Empty() Document {
	return Document{
		Bienes:     []ItemRecord{},
		Mercaderes: []MerchantRecord{},
		Clientes:   []CustomerRecord{},
	}
}

func (d *Document) normalize() {
	if d.Bienes == nil {
		d.Bienes = []ItemRecord{}
	}
	if d.Mercaderes == nil {
		d.Mercaderes = []MerchantRecord{}
	}
	if d.Clientes == nil {
		d.Clientes = []CustomerRecord{}
	}
}

func (r ItemRecord) Item() models.Item {
	return models.Item{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Material:    r.Material,
		Weight:      r.Weight,
		Value:       decimal.NewFromFloat(r.Value),
	}
}

func NewItemRecord(item models.Item) ItemRecord {
	value, _ := item.Value.Float64()
	return ItemRecord{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Material:    item.Material,
		Weight:      item.Weight,
		Value:       value,
	}
}

func (r MerchantRecord) Merchant() models.Merchant {
	return models.Merchant{ID: r.ID, Name: r.Name, Type: r.Type, Location: r.Location}
}

func NewMerchantRecord(m models.Merchant) MerchantRecord {
	return MerchantRecord{ID: m.ID, Name: m.Name, Type: m.Type, Location: m.Location}
}

func (r CustomerRecord) Customer() models.Customer {
	return models.Customer{ID: r.ID, Name: r.Name, Race: r.Race, Location: r.Location}
}

func NewCustomerRecord(c models.Customer) CustomerRecord {
	return CustomerRecord{ID: c.ID, Name: c.Name, Race: c.Race, Location: c.Location}
}
