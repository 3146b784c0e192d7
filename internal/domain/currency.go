package domain

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// SupportedCurrencies is the closed catalog of currencies a goal or a user
// preference may reference.
var SupportedCurrencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CHF", Symbol: "Fr", Name: "Swiss Franc"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "BRL", Symbol: "R$", Name: "Brazilian Real"},
	{Code: "XOF", Symbol: "CFA", Name: "West African CFA Franc"},
}

var DefaultCurrency = SupportedCurrencies[0]

func CurrencyByCode(code string) (Currency, bool) {
	for _, c := range SupportedCurrencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}
