package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"nativedelight/internal/cart"
)

const messagingBaseURL = "https://wa.me/"

// uriComponentUnescaper leaves the characters encodeURIComponent keeps literal.
var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// OrderMessage renders the chat message for the given lines. Amounts always
// carry two decimals.
func OrderMessage(lines []cart.Line, total decimal.Decimal, currency string) string {
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, fmt.Sprintf("%s (Qty: %d) - %s%s",
			line.Name, line.Quantity, currency, line.Subtotal().StringFixed(2)))
	}

	var b strings.Builder
	b.WriteString("Order Details:\n")
	b.WriteString(strings.Join(rendered, "\n"))
	b.WriteString("\nTotal: ")
	b.WriteString(currency)
	b.WriteString(total.StringFixed(2))
	b.WriteString("\nPlease confirm my order.")
	return b.String()
}

// DeepLink builds the chat deep link. Non-digits are stripped from the
// destination so "+234 814..." and "234814..." address the same chat.
func DeepLink(destination, body string) string {
	return messagingBaseURL + digitsOnly(destination) + "?text=" + encodeURIComponent(body)
}

func encodeURIComponent(s string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(s))
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
