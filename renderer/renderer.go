// Package renderer turns portfolio reports into markdown documents.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/foliotrack/foliotrack"
)

//go:embed templates/*.md
var templates embed.FS

// render executes one of the embedded templates against data. Rendering
// errors are returned as the document body: reports are for humans, a broken
// template should be visible, not fatal.
func render(file string, data any) string {
	content, err := templates.ReadFile("templates/" + file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}
	tmpl, err := template.New(file).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", file, err)
	}
	return b.String()
}

// activeRow is the pre-formatted view of one Active.
type activeRow struct {
	Symbol      string
	Quantity    string
	AverageCost string
	Price       string
	Value       string
	MonthChange string
	YearChange  string
}

// Actives renders the holdings report for a date.
func Actives(on foliotrack.Date, actives []foliotrack.Active, cash, total foliotrack.Money) string {
	view := struct {
		Date  string
		Rows  []activeRow
		Cash  string
		Total string
	}{
		Date:  on.String(),
		Cash:  cash.String(),
		Total: total.String(),
	}
	for _, a := range actives {
		view.Rows = append(view.Rows, activeRow{
			Symbol:      a.Symbol,
			Quantity:    a.Quantity.String(),
			AverageCost: a.AverageCost.String(),
			Price:       a.Price.String(),
			Value:       a.Value.String(),
			MonthChange: fmt.Sprintf("%+.2f%%", a.MonthChange),
			YearChange:  fmt.Sprintf("%+.2f%%", a.YearChange),
		})
	}
	return render("actives.md", view)
}

// transactionRow is the pre-formatted view of one Transaction.
type transactionRow struct {
	ID       int64
	Date     string
	Type     string
	Symbol   string
	Quantity string
	Price    string
}

// Transactions renders the operation history, in ascending-ID order.
func Transactions(txs []foliotrack.Transaction) string {
	view := struct{ Rows []transactionRow }{}
	for _, tx := range txs {
		view.Rows = append(view.Rows, transactionRow{
			ID:       tx.ID,
			Date:     tx.Date.String(),
			Type:     string(tx.Type()),
			Symbol:   tx.Symbol,
			Quantity: tx.Quantity.String(),
			Price:    tx.Price.String(),
		})
	}
	return render("transactions.md", view)
}

// Transaction renders a single transaction to a one-line summary.
func Transaction(tx foliotrack.Transaction) string {
	switch tx.Type() {
	case foliotrack.TxBuy:
		return fmt.Sprintf("Bought %s of %s at %s each", tx.Quantity, tx.Symbol, tx.Price)
	case foliotrack.TxSell:
		return fmt.Sprintf("Sold %s of %s at %s each", tx.Quantity.Neg(), tx.Symbol, tx.Price)
	default:
		return fmt.Sprintf("Moved %s of cash", tx.Quantity)
	}
}

// seriesRow is the pre-formatted view of one series Point.
type seriesRow struct {
	Date  string
	Value string
}

// Series renders a valuation (or profit) series as a dated table.
func Series(title string, points []foliotrack.Point) string {
	view := struct {
		Title string
		Rows  []seriesRow
	}{Title: title}
	for _, pt := range points {
		view.Rows = append(view.Rows, seriesRow{Date: pt.Date.String(), Value: pt.Value.String()})
	}
	return render("series.md", view)
}
