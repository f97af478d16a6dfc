package anonymizer

import "strings"

// Strategy identifies one of the supported anonymization methods.
type Strategy int

const (
	FakeEmail Strategy = iota
	FakeName
	FakePhone
	FakeAddress
	MaskCreditCard
	MaskSSN
	Hash
	Skip
)

// String returns the canonical identifier for the strategy.
func (s Strategy) String() string {
	switch s {
	case FakeEmail:
		return "fake_email"
	case FakeName:
		return "fake_name"
	case FakePhone:
		return "fake_phone"
	case FakeAddress:
		return "fake_address"
	case MaskCreditCard:
		return "mask_credit_card"
	case MaskSSN:
		return "mask_ssn"
	case Hash:
		return "hash"
	case Skip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParseStrategy resolves a configured method identifier to its Strategy.
// Identifiers are case-insensitive and each method accepts a short alias.
// Unrecognized identifiers report ok=false so the caller can drop the rule.
func ParseStrategy(s string) (Strategy, bool) {
	switch strings.ToLower(s) {
	case "fake_email", "email":
		return FakeEmail, true
	case "fake_name", "name":
		return FakeName, true
	case "fake_phone", "phone":
		return FakePhone, true
	case "fake_address", "address":
		return FakeAddress, true
	case "mask_credit_card", "credit_card":
		return MaskCreditCard, true
	case "mask_ssn", "ssn":
		return MaskSSN, true
	case "hash":
		return Hash, true
	case "skip":
		return Skip, true
	default:
		return Skip, false
	}
}
