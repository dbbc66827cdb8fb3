package service

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"abinterior/models"
)

const countryCode = "+91"

// NormalizePhone prefixes the country code unless it is already there.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" || strings.HasPrefix(phone, countryCode) {
		return phone
	}
	return countryCode + phone
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func validateContact(ve *models.ValidationError, name, phone string) {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < 2 {
		ve.Add("name", "Name must be at least 2 characters.")
	}
	if countDigits(phone) < 10 {
		ve.Add("phone", "Phone number must be at least 10 digits.")
	}
}

func validateCustomerFields(ve *models.ValidationError, f models.CustomerFields) {
	validateContact(ve, f.Name, f.Phone)
	if utf8.RuneCountInString(strings.TrimSpace(f.Address)) < 5 {
		ve.Add("address", "Address must be at least 5 characters.")
	}
}

func validateAmount(ve *models.ValidationError, field string, amount float64) {
	if !(amount > 0) || math.IsInf(amount, 1) {
		ve.Add(field, "Amount must be greater than 0.")
	}
}

// validOpeningAmount reports whether an amount may seed a new ledger: zero or a
// finite positive number.
func validOpeningAmount(amount float64) bool {
	return amount >= 0 && !math.IsInf(amount, 1)
}

// buildTransaction validates a payment payload and returns the ledger entry it describes.
func buildTransaction(in models.PaymentInput) (models.Transaction, error) {
	ve := models.NewValidationError()
	validateAmount(ve, "amount", in.Amount)
	if !in.Type.Valid() {
		ve.Add("type", "Type must be DEBIT or CREDIT.")
	}
	if !in.Mode.Valid() {
		ve.Add("mode", "Mode must be one of CASH, UPI, CARD, OTHER.")
	}
	date, err := models.ParseLedgerDate(in.Date)
	if err != nil {
		ve.Add("date", "A valid date is required.")
	}
	if ve.HasErrors() {
		return models.Transaction{}, ve
	}

	return models.Transaction{
		Date:       models.FormatLedgerDate(date),
		Amount:     in.Amount,
		Type:       in.Type,
		Mode:       in.Mode,
		BillNumber: strings.TrimSpace(in.BillNumber),
		Notes:      strings.TrimSpace(in.Notes),
	}, nil
}

func trimFields(f models.CustomerFields) models.CustomerFields {
	return models.CustomerFields{
		Name:       strings.TrimSpace(f.Name),
		Phone:      strings.TrimSpace(f.Phone),
		Address:    strings.TrimSpace(f.Address),
		BillNumber: strings.TrimSpace(f.BillNumber),
	}
}
