// Package pdf renders invoice documents with Maroto v2.
//
// A4 layout, right-aligned for RTL reading:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: business name           │  document № + date       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  counterparty account name + phone                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: total | price | qty | product                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: subtotal / discount / tax / TOTAL / paid           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 16, Green: 84, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Document titles per invoice type.
var typeTitles = map[string]string{
	entity.InvoiceTypeSale:           "فاتورة مبيعات",
	entity.InvoiceTypePurchase:       "فاتورة مشتريات",
	entity.InvoiceTypeSaleReturn:     "مرتجع مبيعات",
	entity.InvoiceTypePurchaseReturn: "مرتجع مشتريات",
}

// LineItem is one rendered table row.
type LineItem struct {
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// Document carries everything the renderer needs.
type Document struct {
	Invoice      *entity.Invoice
	Account      *entity.Account
	BusinessName string
	Currency     string
	Lines        []LineItem
}

// InvoiceGenerator renders invoice PDFs.
type InvoiceGenerator struct{}

func NewInvoiceGenerator() *InvoiceGenerator { return &InvoiceGenerator{} }

// Generate renders the document and returns the PDF bytes.
func (g *InvoiceGenerator) Generate(_ context.Context, doc Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(typeTitles[doc.Invoice.Type], true).
		WithAuthor(doc.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(accountRow(doc.Account))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(doc.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return out.GetBytes(), nil
}

func headerRow(doc Document) core.Row {
	title := typeTitles[doc.Invoice.Type]
	date := doc.Invoice.Date.Format("02/01/2006")

	return row.New(18).Add(
		col.New(6).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("#%d", doc.Invoice.Number), props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 7,
			}),
			text.New(date, props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(6).Add(
			text.New(doc.BusinessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
		),
	)
}

func accountRow(account *entity.Account) core.Row {
	contact := account.Phone
	if contact == "" {
		contact = "-"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(account.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(contact, props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	// Columns run right-to-left: product on the right edge.
	return row.New(8).Add(
		h("الإجمالي", 3, align.Left),
		h("السعر", 2, align.Left),
		h("الكمية", 2, align.Center),
		h("الصنف", 5, align.Right),
	)
}

func tableRows(lines []LineItem) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(7).Add(
			col.New(3).Add(text.New(
				l.Total.StringFixed(2),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				l.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Left, Top: 1},
			)),
			col.New(2).Add(text.New(
				l.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return out
}

func totalsRow(doc Document) core.Row {
	inv := doc.Invoice
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Top: top,
		})
	}
	value := func(d decimal.Decimal, top float64) core.Component {
		return text.New(d.StringFixed(2)+" "+doc.Currency, props.Text{
			Size: 9, Align: align.Left, Left: 1, Top: top,
		})
	}

	labels := col.New(4).Add(
		label("المجموع:", 1),
		label("الخصم:", 7),
		label("الضريبه:", 13),
		text.New("الإجمالي:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 20,
		}),
		label("المدفوع:", 27),
	)
	values := col.New(4).Add(
		value(inv.Subtotal, 1),
		value(inv.Discount, 7),
		value(inv.Tax, 13),
		text.New(inv.Total.StringFixed(2)+" "+doc.Currency, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Left,
			Color: colorPrimary, Left: 1, Top: 20,
		}),
		value(inv.Paid, 27),
	)
	return row.New(34).Add(col.New(4), values, labels)
}
