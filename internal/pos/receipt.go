package pos

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const receiptWidth = 40

// Receipt renders a plain-text receipt for the order, sized for a 40-column
// thermal printer.
func Receipt(o Order, storeName string) string {
	p := message.NewPrinter(language.AmericanEnglish)
	var b strings.Builder

	center := func(s string) {
		pad := (receiptWidth - len(s)) / 2
		if pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(s)
		b.WriteByte('\n')
	}
	rule := func() {
		b.WriteString(strings.Repeat("-", receiptWidth))
		b.WriteByte('\n')
	}
	line := func(left, right string) {
		gap := receiptWidth - len(left) - len(right)
		if gap < 1 {
			gap = 1
		}
		b.WriteString(left)
		b.WriteString(strings.Repeat(" ", gap))
		b.WriteString(right)
		b.WriteByte('\n')
	}

	center(storeName)
	center(o.Timestamp.Format("2006-01-02 15:04:05"))
	center("Order " + o.ID)
	if o.CustomerName != "" {
		center("Customer: " + o.CustomerName)
	}
	rule()
	for _, item := range o.Items {
		line(
			p.Sprintf("%s x%d", item.ProductName, item.Quantity),
			p.Sprintf("$%.2f", item.Subtotal),
		)
	}
	rule()
	line("Subtotal", p.Sprintf("$%.2f", o.Total))
	line("Tax", p.Sprintf("$%.2f", o.Tax))
	if o.Discount > 0 {
		line("Discount", p.Sprintf("-$%.2f", o.Discount))
	}
	line("Total", p.Sprintf("$%.2f", o.FinalTotal))
	rule()
	line("Paid by", string(o.PaymentMethod))
	center("Thank you!")
	return b.String()
}
