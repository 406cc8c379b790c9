// Package pdf implementa la generación de los documentos del negocio con
// Maroto v2: cotización de cliente, orden de compra al proveedor y recibo de
// anticipo.
//
// Layout común de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Benetti Home  │  Clave de proyecto + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE / PROVEEDOR                                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / IVA / TOTAL / Anticipo      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
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

	"github.com/benettihome/operaciones-api/internal/application/ports"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 60, Green: 50, Blue: 40}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.DocumentRenderer = (*MarotoRenderer)(nil)

// MarotoRenderer implementa ports.DocumentRenderer usando Maroto v2.
type MarotoRenderer struct {
	businessName string
	logoPath     string
}

// NewMarotoRenderer construye el renderer. Con logoPath vacío el encabezado
// lleva solo el nombre del negocio.
func NewMarotoRenderer(businessName, logoPath string) *MarotoRenderer {
	if businessName == "" {
		businessName = "Benetti Home"
	}
	return &MarotoRenderer{businessName: businessName, logoPath: logoPath}
}

func (g *MarotoRenderer) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.businessName, true).
		Build()
	return maroto.New(cfg)
}

// RenderClientQuote genera el PDF de cotización de cliente.
func (g *MarotoRenderer) RenderClientQuote(data ports.ClientQuoteData) ([]byte, error) {
	m := g.newDocument("Cotización " + data.ProjectKey)

	m.AddRows(g.headerRow("COTIZACIÓN", data.ProjectKey, data.IssuedAt.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("CLIENTE", data.CustomerName, "Referencia: "+data.Reference))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(data.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(quoteTotalsRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar cotización: %w", err)
	}
	return doc.GetBytes(), nil
}

// RenderPurchaseOrder genera el PDF de orden de compra al proveedor.
func (g *MarotoRenderer) RenderPurchaseOrder(data ports.PurchaseOrderData) ([]byte, error) {
	m := g.newDocument(fmt.Sprintf("Orden de compra %d", data.OrderID))

	m.AddRows(g.headerRow("ORDEN DE COMPRA", data.ProjectKey, data.IssuedAt.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("PROVEEDOR", data.ProviderName, "Marca: "+data.BrandName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(data.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(grandTotalRow("TOTAL:", data.Total, data.Currency))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar orden de compra: %w", err)
	}
	return doc.GetBytes(), nil
}

// RenderAdvanceReceipt genera el recibo de anticipo con el importe en letra.
func (g *MarotoRenderer) RenderAdvanceReceipt(data ports.AdvanceReceiptData) ([]byte, error) {
	m := g.newDocument(fmt.Sprintf("Recibo de anticipo %s-%d", data.ProjectKey, data.ConsecutiveID))

	m.AddRows(g.headerRow(
		fmt.Sprintf("RECIBO DE ANTICIPO N° %d", data.ConsecutiveID),
		data.ProjectKey,
		data.PaymentDate.Format("02/01/2006"),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("RECIBIMOS DE", data.CustomerName, "Método de pago: "+nonEmpty(data.Method, "—")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(row.New(20).Add(
		col.New(12).Add(
			text.New("LA CANTIDAD DE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("$%s %s", money(data.Amount), data.Currency), props.Text{
				Style: fontstyle.Bold, Size: 14, Top: 7,
			}),
			text.New(data.AmountInWords, props.Text{
				Size: 8, Top: 15, Color: colorGray,
			}),
		),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Este recibo ampara el anticipo aplicado a la cuenta por cobrar del proyecto "+data.ProjectKey+".",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: logo + negocio (izq) y tipo de documento + clave + fecha (der).
func (g *MarotoRenderer) headerRow(kind, projectKey, date string) core.Row {
	nameCol := col.New(5).Add(
		text.New(g.businessName, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
		text.New("Importación y venta de mobiliario", props.Text{
			Size: 9, Top: 9, Color: colorGray,
		}),
	)
	metaCol := col.New(5).Add(
		text.New(kind, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right,
			Color: colorPrimary, Top: 1,
		}),
		text.New("Proyecto "+projectKey, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
		}),
		text.New("Fecha: "+date, props.Text{
			Size: 8, Align: align.Right, Top: 14, Color: colorGray,
		}),
	)
	if g.logoPath != "" {
		logoCol := col.New(2).Add(image.NewFromFile(g.logoPath, props.Rect{
			Center: true, Percent: 90,
		}))
		return row.New(18).Add(logoCol, nameCol, metaCol)
	}
	return row.New(18).Add(col.New(2), nameCol, metaCol)
}

// partyRow: bloque de contraparte (cliente o proveedor).
func partyRow(label, name, detail string) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(name, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableLineRows: una fila por línea de producto.
func tableLineRows(lines []ports.QuoteLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				l.Quantity.StringFixed(0),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+money(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+money(l.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// quoteTotalsRow: bloque de totales de la cotización.
func quoteTotalsRow(data ports.ClientQuoteData) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(d decimal.Decimal) core.Component {
		return text.New("$"+money(d), props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(34).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("Descuento:"),
			label("IVA:"),
			text.New("TOTAL "+string(data.Currency)+":", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2,
			}),
			label("Anticipo requerido:"),
		),
		col.New(3).Add(
			value(data.Subtotal),
			value(data.Discount),
			value(data.IVA),
			text.New("$"+money(data.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1,
			}),
			value(data.Advance),
		),
		col.New(3),
	)
}

// grandTotalRow: total único (orden de compra).
func grandTotalRow(label string, total decimal.Decimal, c entity.Currency) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})),
		col.New(3).Add(text.New(fmt.Sprintf("$%s %s", money(total), c), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea un decimal con separador de miles y dos decimales.
// Ej: 25000 → "25,000.00"
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	intPart, decPart := s, ""
	if i := len(s) - 3; i > 0 && s[i] == '.' {
		intPart, decPart = s[:i], s[i:]
	}
	neg := false
	if len(intPart) > 0 && intPart[0] == '-' {
		neg = true
		intPart = intPart[1:]
	}
	n := len(intPart)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i := 0; i < n; i++ {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, intPart[i])
		}
		intPart = string(buf)
	}
	if neg {
		intPart = "-" + intPart
	}
	return intPart + decPart
}
