package timemarket

import (
	"math/big"
)

// Identity is an opaque marketplace participant address. Identities are
// compared byte-wise; the ledger attaches no further meaning to them.
type Identity string

// TimeToken is a sellable unit of time. Seller and Description are
// immutable after mint; HoursAvailable is the only field the ledger
// ever rewrites.
type TimeToken struct {
	Seller         Identity `json:"seller"`
	HourlyRate     *big.Int `json:"hourly_rate"`
	HoursAvailable uint32   `json:"hours_available"`
	Description    string   `json:"description"`
}

// Cost is the settlement amount for purchasing the given number of
// hours: HourlyRate * hours, computed in big.Int so a full 128-bit rate
// cannot overflow.
func (t *TimeToken) Cost(hours uint32) *big.Int {
	rate := t.HourlyRate
	if rate == nil {
		rate = new(big.Int)
	}
	return new(big.Int).Mul(rate, new(big.Int).SetUint64(uint64(hours)))
}
