package models

// Card is one synthesized test card record. A record is created fresh
// per generation, is never mutated afterwards, and has no persistent
// identity of its own.
type Card struct {
	Number          string `json:"cardNumber"`
	FormattedNumber string `json:"cardNumberFormatted"`
	ExpiryMonth     string `json:"expiryMonth"`
	ExpiryYear      string `json:"expiryYear"`
	CVV             string `json:"cvc"`
	Brand           string `json:"brand"`
	Bank            string `json:"bank"`
	Country         string `json:"country"`
	Type            string `json:"type"`
}

// ExpiryDate returns the MM/YY form expected by form-filling consumers.
func (c *Card) ExpiryDate() string {
	return c.ExpiryMonth + "/" + c.ExpiryYear
}

// ExpiryYYMM returns the YYMM form used by the card log and ISO 8583.
func (c *Card) ExpiryYYMM() string {
	return c.ExpiryYear + c.ExpiryMonth
}

// Line returns the bulk-listing form: ungrouped digits, expiry, cvv.
func (c *Card) Line() string {
	return c.Number + "|" + c.ExpiryDate() + "|" + c.CVV
}
