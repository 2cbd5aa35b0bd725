package menu

import "context"

func (m *Menu) reportsMenu(context.Context) error {
	choice, err := m.p.choose("Informes", []string{
		"Ingresos totales", "Gastos totales", "Bienes más vendidos",
		"Historial de un participante", "Volver",
	})
	if err != nil {
		return err
	}

	switch choice {
	case 0:
		m.p.printf("Ingresos totales por ventas: %s\n", coronas(m.ledger.TotalIncome()))
	case 1:
		m.p.printf("Gastos totales por compras: %s\n", coronas(m.ledger.TotalExpenses()))
	case 2:
		renderTopSold(m.p.out, m.ledger.TopSoldItems(m.topSoldLimit))
	case 3:
		id, err := m.p.askRequired("ID del cliente o mercader:")
		if err != nil {
			return err
		}
		renderTransactions(m.p.out, m.ledger.HistoryByParticipant(id))
	}
	return nil
}
