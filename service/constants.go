package service

const (
	MonthsPerYear = 12
	percent       = 100.0

	// Texto mostrado cuando un valor no cabe en un float64
	OverflowText = "(value too large)"

	DefaultLocale   = "pt-BR"
	DefaultCurrency = "BRL"
)
