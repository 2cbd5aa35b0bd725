package menu

import (
	"context"

	"github.com/safar/coronas-ledger/internal/models"
	"go.uber.org/zap"
)

var transactionTypes = []models.TransactionType{
	models.TransactionSale,
	models.TransactionPurchase,
	models.TransactionReturn,
}

func (m *Menu) transactionsMenu(ctx context.Context) error {
	actions := []func(context.Context) error{
		m.registerTransaction,
		m.removeTransaction,
		m.listTransactions,
		m.searchTransactions,
	}
	choice, err := m.p.choose("Transacciones", []string{
		"Registrar transacción", "Eliminar transacción", "Ver transacciones",
		"Buscar transacciones", "Volver",
	})
	if err != nil || choice == len(actions) {
		return err
	}
	return actions[choice](ctx)
}

func (m *Menu) chooseType(title string) (models.TransactionType, error) {
	labels := make([]string, 0, len(transactionTypes))
	for _, t := range transactionTypes {
		labels = append(labels, typeLabels[t])
	}
	choice, err := m.p.choose(title, labels)
	if err != nil {
		return "", err
	}
	return transactionTypes[choice], nil
}

func (m *Menu) registerTransaction(ctx context.Context) error {
	txType, err := m.chooseType("Tipo de transacción")
	if err != nil {
		return err
	}

	participantID, err := m.p.askRequired("ID del cliente o mercader:")
	if err != nil {
		return err
	}
	participant, ok := m.store.ResolveParticipant(participantID)
	if !ok {
		m.p.println("No se encontró un cliente ni un mercader con ese ID.")
		return nil
	}

	var lines []models.LineItem
	for {
		line, ok, err := m.askLine(txType)
		if err != nil {
			return err
		}
		if ok {
			lines = append(lines, line)
		}
		more, err := m.p.confirm("¿Añadir otro bien?")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	if len(lines) == 0 {
		m.p.println("La transacción necesita al menos un bien. Operación cancelada.")
		return nil
	}

	short, hasShort := m.firstShortLine(txType, lines)
	tx, ok := m.ledger.Register(participant, lines, txType)
	if !ok {
		if hasShort {
			m.p.printf("No hay suficiente stock para %s.\n", short.Item.Name)
		} else {
			m.p.println("No hay suficiente stock para completar la transacción.")
		}
		m.logger.Info("transaction refused",
			zap.String("type", string(txType)),
			zap.String("participant_id", participantID))
		m.persist(ctx)
		return nil
	}

	m.p.printf("Transacción %s registrada con éxito. Total: %s.\n", tx.ID, coronas(tx.TotalAmount))
	m.persist(ctx)
	return nil
}

// askLine prompts one item id and quantity. Purchases may introduce a good
// that is not in stock yet.
func (m *Menu) askLine(txType models.TransactionType) (models.LineItem, bool, error) {
	id, err := m.p.askRequired("ID del bien:")
	if err != nil {
		return models.LineItem{}, false, err
	}

	var item models.Item
	if known, ok := m.store.KnownItem(id); ok {
		item = known
	} else if txType == models.TransactionPurchase {
		isNew, err := m.p.confirm("El bien no está en stock. ¿Es un bien nuevo?")
		if err != nil {
			return models.LineItem{}, false, err
		}
		if !isNew {
			return models.LineItem{}, false, nil
		}
		if item, err = m.askNewItem(id); err != nil {
			return models.LineItem{}, false, err
		}
	} else {
		m.p.println("No se encontró un bien con ese ID.")
		return models.LineItem{}, false, nil
	}

	quantity, err := m.p.askPositiveInt("Cantidad de " + item.Name + ":")
	if err != nil {
		return models.LineItem{}, false, err
	}
	return models.LineItem{Item: item, Quantity: quantity}, true, nil
}

// firstShortLine finds the first outflow line the current stock cannot
// cover once the earlier lines of the same transaction are taken out.
func (m *Menu) firstShortLine(txType models.TransactionType, lines []models.LineItem) (models.LineItem, bool) {
	if !txType.Outflow() {
		return models.LineItem{}, false
	}
	taken := make(map[string]int)
	for _, line := range lines {
		available := m.store.TotalUnits(line.Item.ID) - taken[line.Item.ID]
		if available < line.Quantity {
			return line, true
		}
		taken[line.Item.ID] += line.Quantity
	}
	return models.LineItem{}, false
}

func (m *Menu) removeTransaction(ctx context.Context) error {
	id, err := m.p.askRequired("ID de la transacción a eliminar:")
	if err != nil {
		return err
	}
	if !m.ledger.Remove(id) {
		m.p.println("No se encontró una transacción con ese ID.")
		return nil
	}
	m.p.println("Transacción eliminada con éxito.")
	m.persist(ctx)
	return nil
}

func (m *Menu) listTransactions(context.Context) error {
	renderTransactions(m.p.out, m.ledger.History())
	return nil
}

func (m *Menu) searchTransactions(context.Context) error {
	choice, err := m.p.choose("Buscar transacciones por", []string{"Fecha (AAAA-MM-DD)", "ID del participante", "Tipo"})
	if err != nil {
		return err
	}

	var found []models.Transaction
	switch choice {
	case 0:
		term, err := m.p.askRequired("Fecha o parte de ella:")
		if err != nil {
			return err
		}
		found = m.ledger.SearchByDate(term)
	case 1:
		id, err := m.p.askRequired("ID del participante:")
		if err != nil {
			return err
		}
		found = m.ledger.HistoryByParticipant(id)
	case 2:
		t, err := m.chooseType("Tipo")
		if err != nil {
			return err
		}
		found = m.ledger.SearchByType(t)
	}
	renderTransactions(m.p.out, found)
	return nil
}
