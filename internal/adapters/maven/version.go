package maven

import (
	"slices"
	"strings"
	"unicode"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/zerr"
)

var qualifierRanks = map[string]int{
	"alpha":     0,
	"a":         0,
	"beta":      1,
	"b":         1,
	"milestone": 2,
	"m":         2,
	"rc":        3,
	"cr":        3,
	"snapshot":  4,
	"":          5,
	"ga":        5,
	"final":     5,
	"release":   5,
	"sp":        6,
}

const unknownQualifierRank = 7

type versionItem struct {
	numeric bool
	value   string
}

func parseVersionItems(v string) []versionItem {
	var items []versionItem
	var cur strings.Builder
	curDigit := false
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		s := cur.String()
		if curDigit {
			s = strings.TrimLeft(s, "0")
		}
		items = append(items, versionItem{numeric: curDigit, value: s})
		cur.Reset()
	}
	for _, r := range strings.ToLower(v) {
		switch {
		case r == '.' || r == '-' || r == '_':
			flush()
		case unicode.IsDigit(r):
			if cur.Len() > 0 && !curDigit {
				flush()
			}
			curDigit = true
			cur.WriteRune(r)
		default:
			if cur.Len() > 0 && curDigit {
				flush()
			}
			curDigit = false
			cur.WriteRune(r)
		}
	}
	flush()
	return items
}

func compareNumeric(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

func compareQualifier(a, b string) int {
	ra, oka := qualifierRanks[a]
	rb, okb := qualifierRanks[b]
	if !oka {
		ra = unknownQualifierRank
	}
	if !okb {
		rb = unknownQualifierRank
	}
	if ra != rb {
		return ra - rb
	}
	if !oka && !okb {
		return strings.Compare(a, b)
	}
	return 0
}

// compareItem compares two items; a nil item stands for a missing trailing component.
func compareItem(a, b *versionItem) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -compareItem(b, nil)
	case b == nil:
		if a.numeric {
			return compareNumeric(a.value, "")
		}
		return compareQualifier(a.value, "")
	case a.numeric && b.numeric:
		return compareNumeric(a.value, b.value)
	case a.numeric:
		return 1
	case b.numeric:
		return -1
	default:
		return compareQualifier(a.value, b.value)
	}
}

// CompareVersions orders Maven versions: numeric components compare numerically and
// qualifiers rank alpha < beta < milestone < rc < snapshot < release < sp.
func CompareVersions(a, b string) int {
	ia, ib := parseVersionItems(a), parseVersionItems(b)
	for i := range max(len(ia), len(ib)) {
		var x, y *versionItem
		if i < len(ia) {
			x = &ia[i]
		}
		if i < len(ib) {
			y = &ib[i]
		}
		if c := compareItem(x, y); c != 0 {
			return c
		}
	}
	return 0
}

// IsVersionRange reports whether v is a range specification such as "[1.0,2.0)".
func IsVersionRange(v string) bool {
	return strings.HasPrefix(v, "[") || strings.HasPrefix(v, "(")
}

type versionBound struct {
	lower, upper         string
	lowerIncl, upperIncl bool
}

func (b versionBound) contains(v string) bool {
	if b.lower != "" {
		c := CompareVersions(v, b.lower)
		if c < 0 || (c == 0 && !b.lowerIncl) {
			return false
		}
	}
	if b.upper != "" {
		c := CompareVersions(v, b.upper)
		if c > 0 || (c == 0 && !b.upperIncl) {
			return false
		}
	}
	return true
}

// VersionRange is a union of version intervals.
type VersionRange struct {
	spec   string
	bounds []versionBound
}

// ParseVersionRange parses a range such as "[1.0,2.0)", "(,1.0]", "[1.5]" or "[1,2),[3,)".
func ParseVersionRange(spec string) (VersionRange, error) {
	fail := func(reason string) (VersionRange, error) {
		return VersionRange{}, zerr.With(zerr.With(zerr.Wrap(domain.ErrResolution, "parse version range"), "range", spec), "reason", reason)
	}

	r := VersionRange{spec: spec}
	rest := strings.TrimSpace(spec)
	for rest != "" {
		if rest[0] != '[' && rest[0] != '(' {
			return fail("expected '[' or '('")
		}
		end := strings.IndexAny(rest, "])")
		if end < 0 {
			return fail("unterminated range")
		}
		body := rest[1:end]
		b := versionBound{lowerIncl: rest[0] == '[', upperIncl: rest[end] == ']'}
		lower, upper, hasComma := strings.Cut(body, ",")
		if !hasComma {
			if !b.lowerIncl || !b.upperIncl || strings.TrimSpace(body) == "" {
				return fail("single version must be written as [v]")
			}
			b.lower, b.upper = strings.TrimSpace(body), strings.TrimSpace(body)
		} else {
			b.lower, b.upper = strings.TrimSpace(lower), strings.TrimSpace(upper)
			if b.lower != "" && b.upper != "" && CompareVersions(b.lower, b.upper) > 0 {
				return fail("lower bound exceeds upper bound")
			}
		}
		r.bounds = append(r.bounds, b)

		rest = strings.TrimSpace(rest[end+1:])
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ","))
	}
	if len(r.bounds) == 0 {
		return fail("empty range")
	}
	return r, nil
}

// Contains reports whether v lies in the range.
func (r VersionRange) Contains(v string) bool {
	return slices.ContainsFunc(r.bounds, func(b versionBound) bool { return b.contains(v) })
}

// Highest returns the highest of versions inside the range.
func (r VersionRange) Highest(versions []string) (string, error) {
	var best string
	for _, v := range versions {
		if r.Contains(v) && (best == "" || CompareVersions(v, best) > 0) {
			best = v
		}
	}
	if best == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrVersionRangeUnsatisfied, "select version"), "range", r.spec)
	}
	return best, nil
}

func (r VersionRange) String() string { return r.spec }
