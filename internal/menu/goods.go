package menu

import (
	"context"
	"fmt"

	"github.com/safar/coronas-ledger/internal/catalog"
	"github.com/safar/coronas-ledger/internal/models"
)

func (m *Menu) goodsMenu(ctx context.Context) error {
	actions := []func(context.Context) error{
		m.addGood,
		m.removeGood,
		m.modifyGood,
		m.listGoods,
		m.orderGoods,
		m.searchGoods,
	}
	choice, err := m.p.choose("Bienes", []string{
		"Añadir bien", "Eliminar bien", "Modificar bien", "Ver bienes",
		"Ordenar bienes", "Buscar bienes", "Volver",
	})
	if err != nil || choice == len(actions) {
		return err
	}
	return actions[choice](ctx)
}

func (m *Menu) addGood(ctx context.Context) error {
	id, err := m.p.askRequired("ID del bien:")
	if err != nil {
		return err
	}

	if existing, ok := m.store.KnownItem(id); ok {
		m.p.printf("El bien %q ya existe en el inventario (%d unidades).\n", existing.Name, m.store.TotalUnits(id))
		extra, err := m.p.askPositiveInt("¿Cuántas unidades deseas añadir al stock existente?")
		if err != nil {
			return err
		}
		m.store.AddItem(existing, extra)
		m.p.printf("Se han añadido %d unidades al bien %q.\n", extra, existing.Name)
		m.persist(ctx)
		return nil
	}

	item, err := m.askNewItem(id)
	if err != nil {
		return err
	}
	quantity, err := m.p.askPositiveInt("Cantidad en stock:")
	if err != nil {
		return err
	}
	m.store.AddItem(item, quantity)
	m.p.println("Bien añadido con éxito al inventario.")
	m.persist(ctx)
	return nil
}

// askNewItem prompts every attribute of a good that is not in stock yet.
func (m *Menu) askNewItem(id string) (models.Item, error) {
	item := models.Item{ID: id}
	var err error
	if item.Name, err = m.p.askRequired("Nombre del bien:"); err != nil {
		return models.Item{}, err
	}
	if item.Description, err = m.p.ask("Descripción:"); err != nil {
		return models.Item{}, err
	}
	if item.Material, err = m.p.ask("Material:"); err != nil {
		return models.Item{}, err
	}
	if item.Weight, err = m.p.askNonNegativeFloat("Peso:", nil); err != nil {
		return models.Item{}, err
	}
	if item.Value, err = m.p.askNonNegativeDecimal("Valor en coronas:", nil); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (m *Menu) removeGood(ctx context.Context) error {
	id, err := m.p.askRequired("ID del bien que deseas eliminar:")
	if err != nil {
		return err
	}
	entry, ok := m.store.FindItem(id)
	if !ok {
		known, isKnown := m.store.KnownItem(id)
		if !isKnown {
			m.p.println("No se encontró un bien con ese ID.")
			return nil
		}
		drop, err := m.p.confirm(fmt.Sprintf("El bien %q no tiene stock. ¿Eliminarlo del catálogo?", known.Name))
		if err != nil || !drop {
			return err
		}
		m.store.DeleteItem(id)
		m.p.printf("Bien %q eliminado del inventario.\n", known.Name)
		m.persist(ctx)
		return nil
	}

	mode, err := m.p.choose(
		fmt.Sprintf("¿Deseas eliminar completamente %q o solo una cantidad específica?", entry.Item.Name),
		[]string{"Eliminar todo", "Eliminar cantidad"})
	if err != nil {
		return err
	}

	if mode == 0 {
		m.store.DeleteItem(id)
		m.p.printf("Bien %q eliminado del inventario.\n", entry.Item.Name)
		m.persist(ctx)
		return nil
	}

	quantity, err := m.p.askPositiveInt(fmt.Sprintf("¿Cuántas unidades deseas eliminar? (Stock actual: %d)", entry.Quantity))
	if err != nil {
		return err
	}
	if !m.store.RemoveItem(id, quantity) {
		m.p.printf("Cantidad inválida. Debe ser un número mayor que 0 y menor o igual a %d.\n", entry.Quantity)
		return nil
	}
	m.p.printf("Se han eliminado %d unidades de %q.\n", quantity, entry.Item.Name)
	m.persist(ctx)
	return nil
}

func (m *Menu) modifyGood(ctx context.Context) error {
	id, err := m.p.askRequired("ID del bien a modificar:")
	if err != nil {
		return err
	}
	current, ok := m.store.KnownItem(id)
	if !ok {
		m.p.println("No se encontró un bien con ese ID.")
		return nil
	}

	item := current
	if item.Name, err = m.p.askDefault("Nuevo nombre", item.Name); err != nil {
		return err
	}
	if item.Description, err = m.p.askDefault("Nueva descripción", item.Description); err != nil {
		return err
	}
	if item.Material, err = m.p.askDefault("Nuevo material", item.Material); err != nil {
		return err
	}
	if item.Weight, err = m.p.askNonNegativeFloat("Nuevo peso", &current.Weight); err != nil {
		return err
	}
	if item.Value, err = m.p.askNonNegativeDecimal("Nuevo valor", &current.Value); err != nil {
		return err
	}

	m.store.UpdateItem(item)
	m.p.println("Bien modificado con éxito.")
	m.persist(ctx)
	return nil
}

func (m *Menu) listGoods(context.Context) error {
	renderStock(m.p.out, m.store.ListStock())
	return nil
}

func (m *Menu) orderGoods(context.Context) error {
	fields := []catalog.ItemField{catalog.ItemByName, catalog.ItemByValue, catalog.ItemByWeight}
	choice, err := m.p.choose("Ordenar bienes por", []string{"Nombre", "Valor", "Peso"})
	if err != nil {
		return err
	}
	descending, err := m.askDescending()
	if err != nil {
		return err
	}
	renderStock(m.p.out, catalog.SortItems(m.store.ListStock(), fields[choice], descending))
	return nil
}

func (m *Menu) searchGoods(context.Context) error {
	fields := []catalog.ItemField{
		catalog.ItemByName, catalog.ItemByDescription, catalog.ItemByMaterial,
		catalog.ItemByValue, catalog.ItemByWeight,
	}
	choice, err := m.p.choose("Buscar bienes por", []string{"Nombre", "Descripción", "Material", "Valor", "Peso"})
	if err != nil {
		return err
	}
	term, err := m.p.ask("Texto a buscar:")
	if err != nil {
		return err
	}
	renderStock(m.p.out, catalog.SearchItems(m.store.ListStock(), fields[choice], term))
	return nil
}

func (m *Menu) askDescending() (bool, error) {
	choice, err := m.p.choose("Sentido", []string{"Ascendente", "Descendente"})
	return choice == 1, err
}
