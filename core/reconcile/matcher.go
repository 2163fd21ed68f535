package reconcile

import (
	"strings"

	"scouting-hub/core/roster"
	"scouting-hub/core/utils"
)

// Match tiers, strongest first.
const (
	tierNone   = 0
	tierPrefix = 1
	tierShort  = 2
	tierExact  = 3
)

var (
	surnameNormalizer = strings.NewReplacer(" ", "_", "Ñ", "N", ",", "")
	givenNormalizer   = strings.NewReplacer("Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ü", "U")
)

// candidate is a roster record with its precomputed patterns.
type candidate struct {
	record  roster.Record
	surname string
	full    string
	short   string
	folded  string
	used    bool
}

// score orders candidates for one asset key.
type score struct {
	tier   int
	tokens int
}

func (s score) beats(o score) bool {
	if s.tier != o.tier {
		return s.tier > o.tier
	}
	return s.tokens > o.tokens
}

// Matcher pairs asset keys with roster records. A record can be claimed once.
type Matcher struct {
	candidates []*candidate
}

// NewMatcher prepares records for matching. Records without a name never match.
func NewMatcher(records []roster.Record) *Matcher {
	m := &Matcher{candidates: make([]*candidate, 0, len(records))}
	for _, rec := range records {
		if strings.TrimSpace(rec.FullName) == "" {
			continue
		}
		name := rec.Name()
		surname := NormalizeSurname(name.Surname)
		if surname == "" {
			continue
		}
		given := NormalizeGiven(name.Given)

		c := &candidate{
			record:  rec,
			surname: surname,
			full:    surname + "_" + given,
			folded:  utils.FoldUpper(rec.FullName),
		}
		if r := []rune(given); len(r) > 1 {
			c.short = surname + "_" + string(r[0])
		}
		m.candidates = append(m.candidates, c)
	}
	return m
}

// NormalizeSurname uppercases, joins words with "_", maps Ñ to N and drops commas.
func NormalizeSurname(s string) string {
	return surnameNormalizer.Replace(strings.ToUpper(strings.TrimSpace(s)))
}

// NormalizeGiven uppercases and strips accents.
func NormalizeGiven(s string) string {
	return givenNormalizer.Replace(strings.ToUpper(strings.TrimSpace(s)))
}

// AssetKey is the uppercased file name without extension.
func AssetKey(fileName string) string {
	return strings.ToUpper(baseName(fileName))
}

// Claim finds the best unused record for assetKey and marks it used.
func (m *Matcher) Claim(assetKey string) (roster.Record, bool) {
	tokens := keyTokens(assetKey)

	var (
		best      *candidate
		bestScore score
	)
	for _, c := range m.candidates {
		if c.used {
			continue
		}
		s := c.score(assetKey, tokens)
		if s.tier == tierNone {
			continue
		}
		// Strictly better only: earlier roster rows win ties
		if best == nil || s.beats(bestScore) {
			best, bestScore = c, s
		}
	}

	if best == nil {
		return roster.Record{}, false
	}
	best.used = true
	return best.record, true
}

// remaining is the number of records not yet claimed.
func (m *Matcher) remaining() int {
	n := 0
	for _, c := range m.candidates {
		if !c.used {
			n++
		}
	}
	return n
}

func (c *candidate) score(assetKey string, tokens []string) score {
	tier := tierNone
	switch {
	case assetKey == c.full:
		tier = tierExact
	case c.short != "" && assetKey == c.short:
		tier = tierShort
	case strings.HasPrefix(assetKey, c.surname+"_"):
		tier = tierPrefix
	}
	if tier == tierNone {
		return score{}
	}

	s := score{tier: tier}
	for _, tok := range tokens {
		if strings.Contains(c.folded, tok) {
			s.tokens++
		}
	}
	return s
}

func keyTokens(assetKey string) []string {
	var out []string
	for _, tok := range strings.Split(utils.FoldUpper(assetKey), "_") {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
