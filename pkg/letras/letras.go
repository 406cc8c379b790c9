// Package letras convierte montos a su representación en palabras en español,
// como se imprime en los recibos de anticipo ("TRES MIL QUINIENTOS PESOS 00/100 MN").
package letras

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var unidades = []string{"", "UN", "DOS", "TRES", "CUATRO", "CINCO", "SEIS", "SIETE", "OCHO", "NUEVE"}

var especiales = map[int64]string{
	10: "DIEZ", 11: "ONCE", 12: "DOCE", 13: "TRECE", 14: "CATORCE", 15: "QUINCE",
	16: "DIECISEIS", 17: "DIECISIETE", 18: "DIECIOCHO", 19: "DIECINUEVE",
	20: "VEINTE", 21: "VEINTIUN", 22: "VEINTIDOS", 23: "VEINTITRES", 24: "VEINTICUATRO",
	25: "VEINTICINCO", 26: "VEINTISEIS", 27: "VEINTISIETE", 28: "VEINTIOCHO", 29: "VEINTINUEVE",
}

var decenas = []string{"", "", "", "TREINTA", "CUARENTA", "CINCUENTA", "SESENTA", "SETENTA", "OCHENTA", "NOVENTA"}

var centenas = []string{"", "CIENTO", "DOSCIENTOS", "TRESCIENTOS", "CUATROCIENTOS",
	"QUINIENTOS", "SEISCIENTOS", "SETECIENTOS", "OCHOCIENTOS", "NOVECIENTOS"}

// Words devuelve la parte entera de n en palabras (mayúsculas, hasta miles de millones).
func Words(n int64) string {
	if n == 0 {
		return "CERO"
	}
	if n < 0 {
		return "MENOS " + Words(-n)
	}
	var parts []string
	if millones := n / 1_000_000; millones > 0 {
		if millones == 1 {
			parts = append(parts, "UN MILLON")
		} else {
			parts = append(parts, hastaMiles(millones)+" MILLONES")
		}
		n %= 1_000_000
	}
	if n > 0 {
		parts = append(parts, hastaMiles(n))
	}
	return strings.Join(parts, " ")
}

func hastaMiles(n int64) string {
	var parts []string
	if miles := n / 1000; miles > 0 {
		if miles == 1 {
			parts = append(parts, "MIL")
		} else {
			parts = append(parts, hastaCientos(miles)+" MIL")
		}
		n %= 1000
	}
	if n > 0 {
		parts = append(parts, hastaCientos(n))
	}
	return strings.Join(parts, " ")
}

func hastaCientos(n int64) string {
	if n == 100 {
		return "CIEN"
	}
	var parts []string
	if c := n / 100; c > 0 {
		parts = append(parts, centenas[c])
		n %= 100
	}
	if n > 0 {
		if s, ok := especiales[n]; ok {
			parts = append(parts, s)
		} else if n < 10 {
			parts = append(parts, unidades[n])
		} else {
			d, u := n/10, n%10
			if u == 0 {
				parts = append(parts, decenas[d])
			} else {
				parts = append(parts, decenas[d]+" Y "+unidades[u])
			}
		}
	}
	return strings.Join(parts, " ")
}

// Monto formatea un importe para recibo: palabras de la parte entera más la
// fracción en centavos, en el formato legal mexicano "NN/100 MN".
func Monto(amount decimal.Decimal) string {
	entero := amount.IntPart()
	cents := amount.Sub(decimal.NewFromInt(entero)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if cents < 0 {
		cents = -cents
	}
	return fmt.Sprintf("%s %02d/100 MN", Words(entero), cents)
}
