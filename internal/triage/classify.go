package triage

import (
	"fmt"
	"strings"
)

var apostrophes = strings.NewReplacer("‘", "'", "’", "'")

// Classify assigns a category, urgency and rationale to ticket text.
// It is pure: the same text always yields the same Result.
func Classify(text string) (*Result, error) {
	norm := normalize(text)
	if norm == "" {
		return nil, &ValidationError{Field: "text", Err: ErrEmptyText}
	}

	category, matched := categorize(norm)
	urgency, reason := assessUrgency(norm, category)

	return &Result{
		Category:  category,
		Urgency:   urgency,
		Rationale: rationale(category, matched, urgency, reason),
	}, nil
}

// normalize lowercases text, folds typographic apostrophes and collapses whitespace.
func normalize(text string) string {
	return strings.Join(strings.Fields(apostrophes.Replace(strings.ToLower(text))), " ")
}

// categorize scores each category by keyword occurrences. Ties go to the
// category listed first in Categories.
func categorize(text string) (Category, []string) {
	best, bestScore := CategoryOther, 0
	for _, c := range Categories {
		set, ok := categoryKeywords[c]
		if !ok {
			continue
		}
		if score := set.count(text); score > bestScore {
			best, bestScore = c, score
		}
	}
	if best == CategoryOther {
		return best, nil
	}
	return best, categoryKeywords[best].find(text)
}

func assessUrgency(text string, category Category) (Urgency, string) {
	// "not urgent" and friends must not count as high signals
	masked := lowSignals.mask(text)
	high := highSignals.find(masked)
	medium := mediumSignals.find(masked)

	switch category {
	case CategoryBilling:
		if m := doubleChargeSignals.find(text); len(m) > 0 {
			return UrgencyHigh, "duplicate or incorrect charge detected " + parenList(m)
		}
		if len(high) > 0 {
			return UrgencyHigh, "urgency signals found " + parenList(high)
		}
		return UrgencyMedium, "billing issues default to medium"

	case CategoryBug:
		if m := bugImpactSignals.find(masked); len(m) > 0 {
			return UrgencyHigh, "service impact detected " + parenList(m)
		}
		if len(high) > 0 {
			return UrgencyHigh, "urgency signals found " + parenList(high)
		}
		if m := bugMinorSignals.find(text); len(m) > 0 && len(medium) == 0 {
			return UrgencyLow, "minor issue signals found " + parenList(m)
		}
		if len(medium) > 0 {
			return UrgencyMedium, "moderate impact signals found " + parenList(medium)
		}
		return UrgencyMedium, "bugs default to medium"

	case CategoryFeature:
		if len(high) > 0 {
			return UrgencyHigh, "urgency signals found " + parenList(high)
		}
		if len(medium) > 0 {
			return UrgencyMedium, "time pressure signals found " + parenList(medium)
		}
		return UrgencyLow, "feature requests default to low"
	}

	if len(high) > 0 {
		return UrgencyHigh, "urgency signals found " + parenList(high)
	}
	if len(medium) > 0 {
		return UrgencyMedium, "time pressure signals found " + parenList(medium)
	}
	if m := lowSignals.find(text); len(m) > 0 {
		return UrgencyLow, "low priority signals found " + parenList(m)
	}
	return UrgencyMedium, "no urgency signals found, defaulting to medium"
}

func rationale(category Category, matched []string, urgency Urgency, reason string) string {
	why := "no category keywords matched"
	if len(matched) > 0 {
		why = fmt.Sprintf("matched %s keywords %s", category, quoteList(matched))
	}
	return fmt.Sprintf("Classified as %s with %s urgency: %s; %s.", category, urgency, why, reason)
}

func quoteList(words []string) string {
	q := make([]string, len(words))
	for i, w := range words {
		q[i] = `"` + w + `"`
	}
	return strings.Join(q, ", ")
}

func parenList(words []string) string {
	return "(" + quoteList(words) + ")"
}
