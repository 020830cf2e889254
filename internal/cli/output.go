package cli

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders numbers with thousands separators so large kg totals
// stay readable in terminal reports.
var printer = message.NewPrinter(language.English)

func formatKg(kg float64) string {
	return printer.Sprintf("%.2f", kg)
}

func formatTonnes(tonnes float64) string {
	return printer.Sprintf("%.5f", tonnes)
}
