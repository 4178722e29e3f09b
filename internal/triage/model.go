package triage

// Category is the classified topic of a ticket.
type Category string

const (
	// CategoryBilling covers charges, refunds, invoices and subscriptions
	CategoryBilling Category = "billing"

	// CategoryBug covers defects, crashes and anything that stopped working
	CategoryBug Category = "bug"

	// CategoryFeature covers requests for new or changed behavior
	CategoryFeature Category = "feature"

	// CategoryOther is used when no category keyword matched
	CategoryOther Category = "other"
)

// Categories lists every category in tie-break priority order, other last.
var Categories = []Category{CategoryBug, CategoryBilling, CategoryFeature, CategoryOther}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBilling, CategoryBug, CategoryFeature, CategoryOther:
		return true
	}
	return false
}

// Urgency is the classified priority of a ticket.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Urgencies lists every urgency from lowest to highest.
var Urgencies = []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh}

// Valid reports whether u is one of the defined urgencies.
func (u Urgency) Valid() bool {
	return u.rank() > 0
}

// AtLeast reports whether u is as urgent as other or more.
func (u Urgency) AtLeast(other Urgency) bool {
	return u.rank() >= other.rank()
}

func (u Urgency) rank() int {
	switch u {
	case UrgencyLow:
		return 1
	case UrgencyMedium:
		return 2
	case UrgencyHigh:
		return 3
	}
	return 0
}

// ParseUrgency maps a case-sensitive name to an Urgency.
func ParseUrgency(s string) (Urgency, bool) {
	u := Urgency(s)
	return u, u.Valid()
}

// Request is the body accepted by the triage endpoint.
type Request struct {
	Text string `json:"text"`
}

// Result is the outcome of classifying one ticket.
type Result struct {
	Category  Category `json:"category"`
	Urgency   Urgency  `json:"urgency"`
	Rationale string   `json:"rationale"`
}

// Outcome pairs a Result with the ID assigned to the triage call.
type Outcome struct {
	ID     string
	Result Result
}
