package menu

import (
	"context"

	"github.com/safar/coronas-ledger/internal/catalog"
	"github.com/safar/coronas-ledger/internal/models"
)

func (m *Menu) customersMenu(ctx context.Context) error {
	actions := []func(context.Context) error{
		m.addCustomer,
		m.removeCustomer,
		m.modifyCustomer,
		m.listCustomers,
		m.orderCustomers,
		m.searchCustomers,
	}
	choice, err := m.p.choose("Clientes", []string{
		"Añadir cliente", "Eliminar cliente", "Modificar cliente", "Ver clientes",
		"Ordenar clientes", "Buscar clientes", "Volver",
	})
	if err != nil || choice == len(actions) {
		return err
	}
	return actions[choice](ctx)
}

func (m *Menu) addCustomer(ctx context.Context) error {
	id, err := m.p.askRequired("ID del cliente:")
	if err != nil {
		return err
	}
	if _, ok := m.store.FindCustomer(id); ok {
		m.p.println("Ya existe un cliente con ese ID.")
		return nil
	}

	c := models.Customer{ID: id}
	if c.Name, err = m.p.askRequired("Nombre del cliente:"); err != nil {
		return err
	}
	if c.Race, err = m.p.ask("Raza del cliente:"); err != nil {
		return err
	}
	if c.Location, err = m.p.ask("Ubicación del cliente:"); err != nil {
		return err
	}

	m.store.AddCustomer(c)
	m.p.println("Cliente añadido con éxito.")
	m.persist(ctx)
	return nil
}

func (m *Menu) removeCustomer(ctx context.Context) error {
	id, err := m.p.askRequired("ID del cliente que deseas eliminar:")
	if err != nil {
		return err
	}
	if !m.store.RemoveCustomer(id) {
		m.p.println("No se encontró un cliente con ese ID.")
		return nil
	}
	m.p.println("Cliente eliminado con éxito.")
	m.persist(ctx)
	return nil
}

func (m *Menu) modifyCustomer(ctx context.Context) error {
	id, err := m.p.askRequired("ID del cliente a modificar:")
	if err != nil {
		return err
	}
	c, ok := m.store.FindCustomer(id)
	if !ok {
		m.p.println("No se encontró un cliente con ese ID.")
		return nil
	}

	if c.Name, err = m.p.askDefault("Nuevo nombre", c.Name); err != nil {
		return err
	}
	if c.Race, err = m.p.askDefault("Nueva raza", c.Race); err != nil {
		return err
	}
	if c.Location, err = m.p.askDefault("Nueva ubicación", c.Location); err != nil {
		return err
	}

	m.store.UpdateCustomer(c)
	m.p.println("Cliente modificado con éxito.")
	m.persist(ctx)
	return nil
}

func (m *Menu) listCustomers(context.Context) error {
	renderCustomers(m.p.out, m.store.ListCustomers())
	return nil
}

func (m *Menu) orderCustomers(context.Context) error {
	fields := []catalog.CustomerField{catalog.CustomerByName, catalog.CustomerByRace}
	choice, err := m.p.choose("Ordenar clientes por", []string{"Nombre", "Raza"})
	if err != nil {
		return err
	}
	descending, err := m.askDescending()
	if err != nil {
		return err
	}
	renderCustomers(m.p.out, catalog.SortCustomers(m.store.ListCustomers(), fields[choice], descending))
	return nil
}

func (m *Menu) searchCustomers(context.Context) error {
	fields := []catalog.CustomerField{catalog.CustomerByName, catalog.CustomerByRace, catalog.CustomerByLocation}
	choice, err := m.p.choose("Buscar clientes por", []string{"Nombre", "Raza", "Ubicación"})
	if err != nil {
		return err
	}
	term, err := m.p.ask("Texto a buscar:")
	if err != nil {
		return err
	}
	renderCustomers(m.p.out, catalog.SearchCustomers(m.store.ListCustomers(), fields[choice], term))
	return nil
}

func (m *Menu) merchantsMenu(ctx context.Context) error {
	actions := []func(context.Context) error{
		m.addMerchant,
		m.removeMerchant,
		m.modifyMerchant,
		m.listMerchants,
		m.orderMerchants,
		m.searchMerchants,
	}
	choice, err := m.p.choose("Mercaderes", []string{
		"Añadir mercader", "Eliminar mercader", "Modificar mercader", "Ver mercaderes",
		"Ordenar mercaderes", "Buscar mercaderes", "Volver",
	})
	if err != nil || choice == len(actions) {
		return err
	}
	return actions[choice](ctx)
}

func (m *Menu) addMerchant(ctx context.Context) error {
	id, err := m.p.askRequired("ID del mercader:")
	if err != nil {
		return err
	}
	if _, ok := m.store.FindMerchant(id); ok {
		m.p.println("Ya existe un mercader con ese ID.")
		return nil
	}

	merchant := models.Merchant{ID: id}
	if merchant.Name, err = m.p.askRequired("Nombre del mercader:"); err != nil {
		return err
	}
	if merchant.Type, err = m.p.ask("Tipo:"); err != nil {
		return err
	}
	if merchant.Location, err = m.p.ask("Ubicación:"); err != nil {
		return err
	}

	m.store.AddMerchant(merchant)
	m.p.println("Mercader añadido con éxito.")
	m.persist(ctx)
	return nil
}

func (m *Menu) removeMerchant(ctx context.Context) error {
	id, err := m.p.askRequired("ID del mercader que deseas eliminar:")
	if err != nil {
		return err
	}
	if !m.store.RemoveMerchant(id) {
		m.p.println("No se encontró un mercader con ese ID.")
		return nil
	}
	m.p.println("Mercader eliminado con éxito.")
	m.persist(ctx)
	return nil
}

func (m *Menu) modifyMerchant(ctx context.Context) error {
	id, err := m.p.askRequired("ID del mercader a modificar:")
	if err != nil {
		return err
	}
	merchant, ok := m.store.FindMerchant(id)
	if !ok {
		m.p.println("No se encontró un mercader con ese ID.")
		return nil
	}

	if merchant.Name, err = m.p.askDefault("Nuevo nombre", merchant.Name); err != nil {
		return err
	}
	if merchant.Type, err = m.p.askDefault("Nuevo tipo", merchant.Type); err != nil {
		return err
	}
	if merchant.Location, err = m.p.askDefault("Nueva ubicación", merchant.Location); err != nil {
		return err
	}

	m.store.UpdateMerchant(merchant)
	m.p.println("Mercader modificado con éxito.")
	m.persist(ctx)
	return nil
}

func (m *Menu) listMerchants(context.Context) error {
	renderMerchants(m.p.out, m.store.ListMerchants())
	return nil
}

func (m *Menu) orderMerchants(context.Context) error {
	fields := []catalog.MerchantField{catalog.MerchantByName, catalog.MerchantByType}
	choice, err := m.p.choose("Ordenar mercaderes por", []string{"Nombre", "Tipo"})
	if err != nil {
		return err
	}
	descending, err := m.askDescending()
	if err != nil {
		return err
	}
	renderMerchants(m.p.out, catalog.SortMerchants(m.store.ListMerchants(), fields[choice], descending))
	return nil
}

func (m *Menu) searchMerchants(context.Context) error {
	fields := []catalog.MerchantField{catalog.MerchantByName, catalog.MerchantByType, catalog.MerchantByLocation}
	choice, err := m.p.choose("Buscar mercaderes por", []string{"Nombre", "Tipo", "Ubicación"})
	if err != nil {
		return err
	}
	term, err := m.p.ask("Texto a buscar:")
	if err != nil {
		return err
	}
	renderMerchants(m.p.out, catalog.SearchMerchants(m.store.ListMerchants(), fields[choice], term))
	return nil
}
