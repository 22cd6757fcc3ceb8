package currency

import (
	"fmt"
	"math"
)

// Symbol returns the display symbol for a currency code. Unknown codes
// fall back to "$" so formatted output always carries a symbol.
func Symbol(code string) string {
	switch code {
	case "USD":
		return "$"
	case "INR":
		return "₹"
	default:
		return "$"
	}
}

// FormatAmount renders an amount as "<symbol><thousands-separated integer>",
// e.g. FormatAmount(1234.56, "USD") == "$1,235".
func FormatAmount(amount float64, code string) string {
	rounded := math.Round(amount)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	intStr := fmt.Sprintf("%.0f", rounded)
	formatted := addThousandsSeparator(intStr, ",")

	result := Symbol(code) + formatted
	if negative {
		result = "-" + result
	}

	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
