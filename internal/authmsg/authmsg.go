// Package authmsg packs synthesized cards into ISO 8583 0100
// authorization request messages, so QA suites can replay generated
// test traffic against stub acquirers.
package authmsg

import (
	"fmt"
	"math/rand"

	"github.com/moov-io/iso8583"
	"github.com/moov-io/iso8583/specs"

	"github.com/cardhelper/cardforge/internal/expiry"
	"github.com/cardhelper/cardforge/internal/luhn"
)

// Request describes one test authorization.
type Request struct {
	PAN        string
	ExpiryYYMM string
	Amount     int64 // minor units
	Currency   string // numeric code, e.g. "840"
	STAN       string // 6 digits; random when empty
}

// Pack builds a 0100 message over the ASCII '87 spec and returns its
// wire bytes.
func Pack(req Request) ([]byte, error) {
	if !luhn.IsDigits(req.PAN) || req.PAN == "" {
		return nil, fmt.Errorf("pan must be digits")
	}
	if err := expiry.ValidateYYMM(req.ExpiryYYMM); err != nil {
		return nil, fmt.Errorf("expiry: %w", err)
	}
	stan := req.STAN
	if stan == "" {
		stan = randomSTAN()
	}

	msg := iso8583.NewMessage(specs.Spec87ASCII)
	msg.MTI("0100")
	if err := msg.Field(2, req.PAN); err != nil {
		return nil, fmt.Errorf("pan field: %w", err)
	}
	if err := msg.Field(3, "000000"); err != nil {
		return nil, fmt.Errorf("processing code field: %w", err)
	}
	if err := msg.Field(4, fmt.Sprintf("%012d", req.Amount)); err != nil {
		return nil, fmt.Errorf("amount field: %w", err)
	}
	if err := msg.Field(11, stan); err != nil {
		return nil, fmt.Errorf("stan field: %w", err)
	}
	if err := msg.Field(14, req.ExpiryYYMM); err != nil {
		return nil, fmt.Errorf("expiry field: %w", err)
	}
	if req.Currency != "" {
		if err := msg.Field(49, req.Currency); err != nil {
			return nil, fmt.Errorf("currency field: %w", err)
		}
	}

	raw, err := msg.Pack()
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}
	return raw, nil
}

func randomSTAN() string {
	var s [6]byte
	for i := range s {
		s[i] = byte('0' + rand.Intn(10))
	}
	return string(s[:])
}
