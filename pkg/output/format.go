// Package output provides utilities for formatting and displaying projection results.
package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ostolop/rent-vs-buy/internal/projection"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(result *projection.Result) {
	fmt.Print(PrettyString(result))
}

// PrettyString renders the projection as a human-readable report.
func PrettyString(result *projection.Result) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	horizon := len(result.Buy) - 1
	fmt.Fprintf(&b, "--- Buy vs rent projection over %d years ---\n\n", horizon)
	p.Fprintf(&b, "Stamp duty £%.2f, monthly mortgage payment £%.2f\n\n",
		result.StampDuty, result.MonthlyMortgagePayment)

	b.WriteString("Buying:\n")
	b.WriteString("Year | Cash Flow | Bank Balance | Property Value | Mortgage Balance | Equity\n")
	b.WriteString("____ | _________ | ____________ | ______________ | ________________ | ______\n")
	for _, record := range result.Buy {
		p.Fprintf(&b, "%4d | %.2f | %.2f | %.2f | %.2f | %.2f\n",
			record.Year, record.CashFlow, record.BankBalance,
			record.PropertyValue, record.MortgageBalance, record.Equity)
	}

	b.WriteString("\nRenting:\n")
	b.WriteString("Year | Cash Flow | Bank Balance | Investment Balance\n")
	b.WriteString("____ | _________ | ____________ | __________________\n")
	for _, record := range result.Rent {
		p.Fprintf(&b, "%4d | %.2f | %.2f | %.2f\n",
			record.Year, record.CashFlow, record.BankBalance, record.InvestmentBalance)
	}

	sale := result.Sale
	fmt.Fprintf(&b, "\nSale in year %d:\n", horizon)
	p.Fprintf(&b, "  Selling price:      £%.2f\n", sale.SellingPrice)
	p.Fprintf(&b, "  Agent fees:         £%.2f\n", sale.AgentFees)
	p.Fprintf(&b, "  Mortgage repaid:    £%.2f\n", sale.MortgageRepaid)
	p.Fprintf(&b, "  Capital gain:       £%.2f\n", sale.CapitalGain)
	p.Fprintf(&b, "  Interest deduction: £%.2f\n", sale.InterestDeduction)
	p.Fprintf(&b, "  Capital gains tax:  £%.2f\n", sale.CapitalGainsTax)
	p.Fprintf(&b, "  Net proceeds:       £%.2f\n", sale.NetProceeds)

	rec := result.Recommendation
	fmt.Fprintf(&b, "\nRecommendation: %s (NPV favours %s)\n", rec.Verdict, rec.NPVVerdict)
	for _, line := range rec.Summary {
		fmt.Fprintf(&b, "  %s\n", line)
	}

	return b.String()
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(result *projection.Result) {
	fmt.Print(CsvString(result))
}

// CsvString renders both trajectories as one long-format CSV table.
func CsvString(result *projection.Result) string {
	var b strings.Builder

	b.WriteString(`"strategy","year","cash_flow","bank_balance","property_value","mortgage_balance","equity","investment_balance","components"`)
	b.WriteString("\n")
	writeCsvRows(&b, "buy", result.Buy)
	writeCsvRows(&b, "rent", result.Rent)

	return b.String()
}

func writeCsvRows(b *strings.Builder, strategy string, records []projection.YearRecord) {
	for _, record := range records {
		fmt.Fprintf(b, `"%s","%d","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%s"`,
			strategy, record.Year, record.CashFlow, record.BankBalance,
			record.PropertyValue, record.MortgageBalance, record.Equity,
			record.InvestmentBalance, componentsString(record.Components))
		b.WriteString("\n")
	}
}

// componentsString joins the component lines in name order so the output is
// stable across runs.
func componentsString(components map[string]float64) string {
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%.2f", name, components[name]))
	}
	return strings.Join(parts, ";")
}
