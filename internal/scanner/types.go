package scanner

// Category classifies a detected PII-looking span.
type Category int

const (
	Email Category = iota
	Phone
	CreditCard
)

// String returns a short label for the category.
func (c Category) String() string {
	switch c {
	case Email:
		return "email"
	case Phone:
		return "phone"
	case CreditCard:
		return "credit_card"
	default:
		return "unknown"
	}
}

// Match is one detected span within a line. Matches are recomputed on every
// scan and never retained past the line that produced them.
type Match struct {
	Value    string
	Start    int
	End      int
	Category Category
}

// Report holds line-level tallies from a scan-only pass over a dump. Each
// category counter is the number of lines with at least one match, not the
// number of matches.
type Report struct {
	EmailLines      int
	PhoneLines      int
	CreditCardLines int
	TotalLines      int
}

// Total returns the sum of the per-category line counters.
func (r Report) Total() int {
	return r.EmailLines + r.PhoneLines + r.CreditCardLines
}
