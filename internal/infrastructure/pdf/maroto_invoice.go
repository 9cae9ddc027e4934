// Package pdf renders the printable clinic invoice.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Clinic name  │  Bill number + Date                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PATIENT: Name + contact                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Description | Unit price | Line total         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / Tax / TOTAL DUE                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: payment status + legend                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	appbilling "github.com/clinicore/clinic-api/internal/application/billing"
	"github.com/clinicore/clinic-api/internal/domain/billing"
	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/pkg/money"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 96, Blue: 100}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appbilling.InvoicePDFGenerator = (*MarotoInvoiceGenerator)(nil)

// MarotoInvoiceGenerator implements billing.InvoicePDFGenerator with Maroto v2.
type MarotoInvoiceGenerator struct {
	clinicName string
}

// NewMarotoInvoiceGenerator constructs the generator. clinicName appears in the header.
func NewMarotoInvoiceGenerator(clinicName string) *MarotoInvoiceGenerator {
	if clinicName == "" {
		clinicName = "clinicore"
	}
	return &MarotoInvoiceGenerator{clinicName: clinicName}
}

// GenerateInvoicePDF renders the invoice and returns its bytes.
func (g *MarotoInvoiceGenerator) GenerateInvoicePDF(
	_ context.Context,
	bill *entity.Bill,
	patient *entity.Patient,
	items []*entity.BillItem,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+bill.Number, true).
		WithAuthor(g.clinicName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.clinicName, bill))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(patientRow(patient))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(bill))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(bill))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: clinic name (left), bill number and date (right).
func headerRow(clinicName string, bill *entity.Bill) core.Row {
	date := bill.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(clinicName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Clinic invoice", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(bill.Number, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// patientRow: billed patient and contact details.
func patientRow(patient *entity.Patient) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BILLED TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(patient.FullName(), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Phone: %s   |   Email: %s",
				nonEmpty(patient.Phone, "—"),
				nonEmpty(patient.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: header of the line item table.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Description", 6, align.Left),
		h("Unit price", 2, align.Right),
		h("Line total", 3, align.Right),
	)
}

// tableItemRows: one row per bill line.
func tableItemRows(items []*entity.BillItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				strconv.FormatInt(it.Quantity, 10),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+money.Display(it.UnitPriceCents),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+money.Display(it.LineTotalCents),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: right-aligned totals block.
func totalsRow(bill *entity.Bill) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	taxLabel := fmt.Sprintf("Tax (%d%%):", billing.TaxRatePercent)
	return row.New(26).Add(
		col.New(3),
		col.New(4).Add(
			label("Subtotal:"),
			label(taxLabel),
			grandLabel("TOTAL DUE:"),
		),
		col.New(4).Add(
			value("$"+money.Display(bill.SubtotalCents)),
			value("$"+money.Display(bill.TaxCents)),
			grandValue("$"+money.Display(bill.TotalCents)),
		),
		col.New(1),
	)
}

// footerRow: payment status and keep-this-document legend.
func footerRow(bill *entity.Bill) core.Row {
	status := "Payment status: " + bill.Status
	if bill.PaymentMethod != "" {
		status += " (" + bill.PaymentMethod + ")"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(status, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Please keep this document for your records. Contact the front desk for billing questions.",
				props.Text{Size: 6.5, Color: colorGray, Top: 7},
			),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
