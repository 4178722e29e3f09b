package triage

import (
	"regexp"
	"strings"
)

// Keywords are matched on word boundaries against normalized text. A trailing
// '*' marks a stem that also matches any continuation of the word; short roots
// like "fee" or "bill" spell out their inflections instead. Phrases are listed
// before the single words they contain so the longer match wins.

var categoryKeywords = map[Category]*keywordSet{
	CategoryBilling: newKeywordSet(
		"charged twice", "double charge", "double charged", "double-charged", "overcharg*",
		"credit card", "charge", "charged", "charges", "charging", "bill", "billed", "billing",
		"bills", "payment*", "pay", "paid", "refund*", "invoice*", "receipt*", "subscription*",
		"card", "price", "prices", "priced", "pricing", "cost", "costs", "costing", "costly",
		"transaction*", "plan", "money", "fee", "fees", "discount*", "coupon*",
	),
	CategoryBug: newKeywordSet(
		"not working", "doesn't work", "does not work", "stopped working", "won't load",
		"won't start", "blank screen", "crash*", "error*", "bug*", "broken", "fail*",
		"glitch*", "freez*", "froze*", "hang", "hangs", "hanging", "hung", "slow*", "defect*", "malfunction*",
		"exception*", "timeout*", "timed out",
	),
	CategoryFeature: newKeywordSet(
		"feature request*", "new feature*", "would be great", "would be nice", "would love",
		"would like", "could you add", "please add", "support for", "option to", "ability to",
		"add", "adding", "enhancement*", "improvement*", "improve", "suggest*", "request*",
		"idea", "ideas", "proposal*", "wish*", "integrat*",
	),
}

var (
	highSignals = newKeywordSet(
		"data loss", "lost data", "locked out", "can't access", "cannot access", "can not access",
		"can't log in", "cannot log in", "can't login", "cannot login", "is down", "production down",
		"urgent*", "asap", "immediately", "critical*", "emergency", "outage*", "security", "hacked",
	)

	mediumSignals = newKeywordSet(
		"this week", "can't proceed", "cannot proceed", "soon", "today", "important", "blocking",
		"blocker", "blocked", "stuck", "deadline*",
	)

	// lowSignals also masks negated high signals such as "not urgent".
	lowSignals = newKeywordSet(
		"not urgent", "not critical", "not an emergency", "no rush", "low priority", "nice to have",
		"whenever", "minor", "cosmetic*", "typo", "typos",
	)

	doubleChargeSignals = newKeywordSet(
		"charged twice", "charged two times", "charged again", "billed twice", "double charge",
		"double charged", "double-charged", "duplicate charge", "duplicate charges",
		"duplicate payment*", "overcharg*", "over-charg*", "wrong amount",
	)

	bugImpactSignals = newKeywordSet(
		"not working", "doesn't work", "does not work", "stopped working", "won't load",
		"won't start", "data loss", "can't access", "cannot access", "crash*", "broken", "unusable",
	)

	bugMinorSignals = newKeywordSet(
		"slow*", "glitch*", "minor", "cosmetic*", "typo", "typos", "misalign*", "flicker*",
	)
)

// keywordSet is a compiled alternation of keywords.
type keywordSet struct {
	re *regexp.Regexp
}

func newKeywordSet(keywords ...string) *keywordSet {
	alts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if stem, ok := strings.CutSuffix(kw, "*"); ok {
			alts = append(alts, regexp.QuoteMeta(stem)+`\w*`)
			continue
		}
		alts = append(alts, regexp.QuoteMeta(kw)+`\b`)
	}
	return &keywordSet{re: regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)`)}
}

// count returns the number of non-overlapping keyword occurrences in text.
func (k *keywordSet) count(text string) int {
	return len(k.re.FindAllStringIndex(text, -1))
}

// find returns the distinct matched words in order of first appearance.
func (k *keywordSet) find(text string) []string {
	all := k.re.FindAllString(text, -1)
	if len(all) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(all))
	out := make([]string, 0, len(all))
	for _, m := range all {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// mask blanks out every keyword occurrence in text.
func (k *keywordSet) mask(text string) string {
	return k.re.ReplaceAllString(text, " ")
}
