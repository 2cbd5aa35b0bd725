package menu

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/safar/coronas-ledger/internal/catalog"
	"github.com/safar/coronas-ledger/internal/ledger"
	"github.com/safar/coronas-ledger/internal/models"
	"github.com/shopspring/decimal"
)

const timestampLayout = "2006-01-02 15:04"

func coronas(d decimal.Decimal) string {
	return d.StringFixed(2) + " coronas"
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func renderStock(out io.Writer, entries []models.StockEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No hay bienes en el inventario.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tNOMBRE\tDESCRIPCIÓN\tMATERIAL\tPESO\tVALOR\tCANTIDAD")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			e.Item.ID, e.Item.Name, e.Item.Description, e.Item.Material,
			catalog.FormatWeight(e.Item.Weight), coronas(e.Item.Value), e.Quantity)
	}
	w.Flush()
}

func renderCustomers(out io.Writer, customers []models.Customer) {
	if len(customers) == 0 {
		fmt.Fprintln(out, "No hay clientes registrados.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tNOMBRE\tRAZA\tUBICACIÓN")
	for _, c := range customers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Race, c.Location)
	}
	w.Flush()
}

func renderMerchants(out io.Writer, merchants []models.Merchant) {
	if len(merchants) == 0 {
		fmt.Fprintln(out, "No hay mercaderes registrados.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tNOMBRE\tTIPO\tUBICACIÓN")
	for _, m := range merchants {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Type, m.Location)
	}
	w.Flush()
}

var typeLabels = map[models.TransactionType]string{
	models.TransactionSale:     "venta",
	models.TransactionPurchase: "compra",
	models.TransactionReturn:   "devolución",
}

var kindLabels = map[models.ParticipantKind]string{
	models.KindCustomer: "cliente",
	models.KindMerchant: "mercader",
}

func renderTransactions(out io.Writer, txs []models.Transaction) {
	if len(txs) == 0 {
		fmt.Fprintln(out, "No hay transacciones registradas.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tFECHA\tTIPO\tPARTICIPANTE\tBIENES\tTOTAL")
	for _, tx := range txs {
		participant := "-"
		if tx.Participant != nil {
			participant = fmt.Sprintf("%s %s (%s)", kindLabels[tx.Participant.Kind()],
				tx.Participant.DisplayName(), tx.Participant.ParticipantID())
		}
		lines := make([]string, 0, len(tx.Items))
		for _, line := range tx.Items {
			lines = append(lines, fmt.Sprintf("%s x%d", line.Item.Name, line.Quantity))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date.Format(timestampLayout), typeLabels[tx.Type], participant,
			strings.Join(lines, ", "), coronas(tx.TotalAmount))
	}
	w.Flush()
}

func renderTopSold(out io.Writer, sales []ledger.ItemSales) {
	if len(sales) == 0 {
		fmt.Fprintln(out, "Todavía no se ha vendido ningún bien.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "#\tID\tNOMBRE\tUNIDADES")
	for i, s := range sales {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", i+1, s.Item.ID, s.Item.Name, s.Quantity)
	}
	w.Flush()
}
