package types

import (
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
)

// Balance is an unsigned 128-bit token amount, stored big-endian so
// that it serializes as a fixed-size array.
type Balance [16]byte

// BalanceFromUint64 converts v into a Balance.
func BalanceFromUint64(v uint64) Balance {
	b, _ := NewBalance(uint256.NewInt(v))
	return b
}

// NewBalance converts v into a Balance. It fails if v does not fit
// into 128 bits.
func NewBalance(v *uint256.Int) (Balance, error) {
	var b Balance
	if v.BitLen() > 128 {
		return b, fmt.Errorf("balance %s overflows 128 bits", v.Dec())
	}
	full := v.Bytes32()
	copy(b[:], full[16:])
	return b, nil
}

// ParseBalance parses a decimal amount.
func ParseBalance(s string) (Balance, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Balance{}, fmt.Errorf("balance %q: %w", s, err)
	}
	return NewBalance(v)
}

// Int returns the amount as a fresh 256-bit integer.
func (b Balance) Int() *uint256.Int {
	return new(uint256.Int).SetBytes(b[:])
}

// Add returns b+other. The boolean reports a 128-bit overflow.
func (b Balance) Add(other Balance) (Balance, bool) {
	sum := new(uint256.Int).Add(b.Int(), other.Int())
	res, err := NewBalance(sum)
	if err != nil {
		return Balance{}, true
	}
	return res, false
}

func (b Balance) IsZero() bool {
	return b == Balance{}
}

func (b Balance) String() string {
	return b.Int().Dec()
}

func (b Balance) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(b.String())), nil
}

func (b *Balance) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		// Small amounts are sometimes sent as bare numbers.
		s = string(data)
	}
	parsed, err := ParseBalance(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
