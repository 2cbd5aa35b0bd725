package inventory

import (
	"slices"

	"github.com/safar/coronas-ledger/internal/models"
	"go.uber.org/zap"
)

// AddCustomer appends without a duplicate check; the caller decides how to
// report an id that is already taken.
func (s *Store) AddCustomer(customer models.Customer) {
	s.customers = append(s.customers, customer)
	s.logger.Debug("customer added", zap.String("customer_id", customer.ID))
}

func (s *Store) RemoveCustomer(id string) bool {
	i := slices.IndexFunc(s.customers, func(c models.Customer) bool { return c.ID == id })
	if i < 0 {
		return false
	}
	s.customers = slices.Delete(s.customers, i, i+1)
	s.logger.Debug("customer removed", zap.String("customer_id", id))
	return true
}

func (s *Store) ListCustomers() []models.Customer {
	return slices.Clone(s.customers)
}

func (s *Store) FindCustomer(id string) (models.Customer, bool) {
	i := slices.IndexFunc(s.customers, func(c models.Customer) bool { return c.ID == id })
	if i < 0 {
		return models.Customer{}, false
	}
	return s.customers[i], true
}

func (s *Store) UpdateCustomer(customer models.Customer) bool {
	i := slices.IndexFunc(s.customers, func(c models.Customer) bool { return c.ID == customer.ID })
	if i < 0 {
		return false
	}
	s.customers[i] = customer
	return true
}

// AddMerchant appends without a duplicate check, like AddCustomer.
func (s *Store) AddMerchant(merchant models.Merchant) {
	s.merchants = append(s.merchants, merchant)
	s.logger.Debug("merchant added", zap.String("merchant_id", merchant.ID))
}

func (s *Store) RemoveMerchant(id string) bool {
	i := slices.IndexFunc(s.merchants, func(m models.Merchant) bool { return m.ID == id })
	if i < 0 {
		return false
	}
	s.merchants = slices.Delete(s.merchants, i, i+1)
	s.logger.Debug("merchant removed", zap.String("merchant_id", id))
	return true
}

func (s *Store) ListMerchants() []models.Merchant {
	return slices.Clone(s.merchants)
}

func (s *Store) FindMerchant(id string) (models.Merchant, bool) {
	i := slices.IndexFunc(s.merchants, func(m models.Merchant) bool { return m.ID == id })
	if i < 0 {
		return models.Merchant{}, false
	}
	return s.merchants[i], true
}

func (s *Store) UpdateMerchant(merchant models.Merchant) bool {
	i := slices.IndexFunc(s.merchants, func(m models.Merchant) bool { return m.ID == merchant.ID })
	if i < 0 {
		return false
	}
	s.merchants[i] = merchant
	return true
}

// ResolveParticipant looks the id up among customers first, then merchants.
func (s *Store) ResolveParticipant(id string) (models.Participant, bool) {
	if c, ok := s.FindCustomer(id); ok {
		return c, true
	}
	if m, ok := s.FindMerchant(id); ok {
		return m, true
	}
	return nil, false
}
