package pdf

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benettihome/operaciones-api/internal/application/ports"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
)

func writeTestLogo(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 60, G: 50, B: 40, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func orderData() ports.PurchaseOrderData {
	return ports.PurchaseOrderData{
		ProjectKey:   "12P",
		OrderID:      1,
		ProviderName: "Proveedor Uno",
		BrandName:    "Marca Uno",
		Currency:     entity.CurrencyEUR,
		Total:        decimal.NewFromInt(8620),
		Lines: []ports.QuoteLine{
			{ProductName: "Producto 1", Quantity: decimal.NewFromInt(2),
				UnitPrice: decimal.NewFromInt(4310), Subtotal: decimal.NewFromInt(8620)},
		},
		IssuedAt: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestRenderPurchaseOrder_SinLogo(t *testing.T) {
	g := NewMarotoRenderer("Benetti Home", "")

	doc, err := g.RenderPurchaseOrder(orderData())
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestRenderPurchaseOrder_ConLogo(t *testing.T) {
	g := NewMarotoRenderer("Benetti Home", writeTestLogo(t))

	doc, err := g.RenderPurchaseOrder(orderData())
	require.NoError(t, err, "el logo configurado se incrusta en el encabezado")
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestRenderClientQuote_ConLogo(t *testing.T) {
	g := NewMarotoRenderer("Benetti Home", writeTestLogo(t))

	doc, err := g.RenderClientQuote(ports.ClientQuoteData{
		ProjectKey:   "12P",
		Reference:    "12S",
		CustomerName: "Cliente Uno",
		Currency:     entity.CurrencyEUR,
		Subtotal:     decimal.NewFromInt(8620),
		IVA:          decimal.NewFromInt(1380),
		Total:        decimal.NewFromInt(10000),
		Advance:      decimal.NewFromInt(3000),
		Lines: []ports.QuoteLine{
			{ProductName: "Producto 1", Quantity: decimal.NewFromInt(2),
				UnitPrice: decimal.NewFromInt(4310), Subtotal: decimal.NewFromInt(8620)},
		},
		IssuedAt: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestMoney_Formato(t *testing.T) {
	cases := map[string]string{
		"0":         "0.00",
		"999":       "999.00",
		"1000":      "1,000.00",
		"25000":     "25,000.00",
		"1234567.5": "1,234,567.50",
		"-4310":     "-4,310.00",
	}
	for in, want := range cases {
		d, err := decimal.NewFromString(in)
		require.NoError(t, err)
		assert.Equal(t, want, money(d), "formato de %s", in)
	}
}
