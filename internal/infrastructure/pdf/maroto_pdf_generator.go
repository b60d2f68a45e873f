// Package pdf genera los documentos imprimibles del punto de venta con Maroto v2:
// la factura de una venta y el estado de cuenta de un cliente o proveedor.
//
// Layout de la factura (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT         │  N° Venta + Fecha + Estado  │
//	│  EMPRESA: Dirección / Tel / Email                            │
//	│  CLIENTE: Nombre                                             │
//	│  TABLA: Cant | Descripción | P.Unit | IVA | Subtotal         │
//	│  TOTALES: Subtotal / Impuestos / Descuento / Total / Saldo   │
//	│  PAGOS + pie de recibo + código de barras                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/application/billing"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/ledger"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var (
	_ billing.ReceiptPDFGenerator  = (*MarotoPDFGenerator)(nil)
	_ ledger.StatementPDFGenerator = (*MarotoPDFGenerator)(nil)
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa los generadores de factura y estado de cuenta.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

func newDocument(title string, company *entity.Company) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(company.Name, true).
		Build()
	return maroto.New(cfg)
}

func render(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateSalePDF genera la factura de la venta.
func (g *MarotoPDFGenerator) GenerateSalePDF(_ context.Context, company *entity.Company, sale *entity.Sale) ([]byte, error) {
	cur := company.Currency
	m := newDocument("Factura "+sale.OrderID, company)

	m.AddRows(headerRow(company, "FACTURA DE VENTA", sale.OrderID,
		"Fecha: "+sale.Date.Format("02/01/2006 15:04"), statusLabel(sale.Status)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRow(company))
	m.AddRows(partyRow("CLIENTE", nonEmpty(sale.CustomerName, "Cliente de mostrador")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(
		heading{"Cant.", 1, align.Center},
		heading{"Descripción", 5, align.Left},
		heading{"Precio Unit.", 2, align.Right},
		heading{"IVA%", 1, align.Center},
		heading{"Subtotal", 3, align.Right},
	))
	for _, l := range sale.Lines {
		m.AddRows(row.New(7).Add(
			cell(1, l.Quantity.String(), align.Center),
			cell(5, l.ItemName, align.Left),
			cell(2, money.Plain(l.UnitPrice), align.Right),
			cell(1, l.TaxRate.StringFixed(0)+"%", align.Center),
			cell(3, money.Plain(l.Subtotal), align.Right),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(cur, []total{
		{"Subtotal:", sale.Subtotal, false},
		{"Impuestos:", sale.TaxTotal, false},
		{"Descuento:", sale.Discount.Neg(), false},
		{"TOTAL:", sale.Total, true},
		{"Pagado:", sale.Paid, false},
		{"Saldo:", sale.Due, true},
	})...)

	if len(sale.Payments) > 0 {
		m.AddRows(sectionTitle("PAGOS"))
		for _, p := range sale.Payments {
			m.AddRows(row.New(5).Add(
				cell(3, p.Date.Format("02/01/2006"), align.Left),
				cell(3, p.Method, align.Left),
				cell(3, p.Reference, align.Left),
				cell(3, money.Format(p.Amount, cur), align.Right),
			))
		}
	}

	m.AddRows(line.NewRow(3))
	if company.ReceiptFooter != "" {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New(company.ReceiptFooter, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}
	m.AddRows(row.New(15).Add(
		col.New(4),
		col.New(4).Add(code.NewBar(sale.OrderID, props.Barcode{Percent: 90, Center: true})),
		col.New(4),
	))
	return render(m)
}

// GenerateStatementPDF genera el estado de cuenta: saldo inicial, movimientos y saldo final.
func (g *MarotoPDFGenerator) GenerateStatementPDF(_ context.Context, company *entity.Company, st *dto.StatementResponse) ([]byte, error) {
	cur := company.Currency
	m := newDocument("Estado de cuenta "+st.PartyName, company)

	partyLabel := "CLIENTE"
	if st.PartyType == entity.PartySupplier {
		partyLabel = "PROVEEDOR"
	}
	m.AddRows(headerRow(company, "ESTADO DE CUENTA", st.PartyName, "", ""))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRow(company))
	m.AddRows(partyRow(partyLabel, st.PartyName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(
		heading{"Fecha", 2, align.Left},
		heading{"Referencia", 2, align.Left},
		heading{"Detalle", 2, align.Left},
		heading{"Debe", 2, align.Right},
		heading{"Haber", 2, align.Right},
		heading{"Saldo", 2, align.Right},
	))
	m.AddRows(row.New(6).Add(
		cell(6, "Saldo inicial", align.Left),
		col.New(4),
		cell(2, money.Plain(st.OpeningBalance), align.Right),
	))
	for _, e := range st.Entries {
		m.AddRows(row.New(6).Add(
			cell(2, e.Date.Format("02/01/2006"), align.Left),
			cell(2, e.Reference, align.Left),
			cell(2, nonEmpty(e.Description, e.Kind), align.Left),
			cell(2, blankIfZero(e.Debit), align.Right),
			cell(2, blankIfZero(e.Credit), align.Right),
			cell(2, money.Plain(e.Balance), align.Right),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(cur, []total{
		{"Total debe:", st.TotalDebit, false},
		{"Total haber:", st.TotalCredit, false},
		{"SALDO FINAL:", st.ClosingBalance, true},
	})...)
	return render(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + NIT (izq) y título, número y fecha (der).
func headerRow(company *entity.Company, title, number, date, status string) core.Row {
	right := []core.Component{
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
		text.New(number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6}),
	}
	if date != "" {
		right = append(right, text.New(date, props.Text{Size: 8, Align: align.Right, Top: 12, Color: colorGray}))
	}
	if status != "" {
		right = append(right, text.New(status, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 16, Color: colorRed}))
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("NIT: "+nonEmpty(company.TaxID, "—"), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(right...),
	)
}

func companyRow(company *entity.Company) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
			nonEmpty(company.Address, "—"),
			nonEmpty(company.Phone, "—"),
			nonEmpty(company.Email, "—"),
		), props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

func partyRow(label, name string) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
	))
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

type heading struct {
	label string
	size  int
	align align.Type
}

func tableHeaderRow(cols ...heading) core.Row {
	out := make([]core.Col, 0, len(cols))
	for _, h := range cols {
		out = append(out, col.New(h.size).Add(text.New(h.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: h.align, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(out...)
}

func cell(size int, value string, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

type total struct {
	label string
	value decimal.Decimal
	grand bool
}

// totalsRows: bloque de totales alineado a la derecha, una fila por concepto.
func totalsRows(cur string, totals []total) []core.Row {
	rows := make([]core.Row, 0, len(totals))
	for _, t := range totals {
		p := props.Text{Size: 9, Align: align.Right, Right: 1}
		if t.grand {
			p = props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1}
		}
		rows = append(rows, row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(t.label, p)),
			col.New(3).Add(text.New(money.Format(t.value, cur), p)),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(status string) string {
	switch status {
	case entity.DocStatusPending:
		return "PENDIENTE DE PAGO"
	case entity.DocStatusCancelled:
		return "ANULADA"
	case entity.DocStatusReturn:
		return "DEVUELTA"
	default:
		return ""
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func blankIfZero(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return money.Plain(d)
}
