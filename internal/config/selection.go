package config

import "sort"

// Selection keys with dedicated meaning. Any other key names a metadata
// field matched against a comma-separated list of wildcard patterns.
const (
	KeyInclude   = "include"
	KeyExclude   = "exclude"
	KeyDateRange = "daterange"
	KeyLength    = "length"
	KeyCountry   = "country"
	KeyProvince  = "province"
)

// Field is a metadata column restricted to a list of patterns.
type Field struct {
	Name  string
	Value string
}

// Selection holds the raw selection criteria as given by the user.
// Empty strings mean "not set".
type Selection struct {
	Include   string
	Exclude   string
	DateRange string
	Length    string
	Fields    []Field
}

// SelectionFrom extracts selection criteria from configuration values.
// Country and province come first, other fields follow in key order.
func SelectionFrom(v Values) Selection {
	s := Selection{
		Include:   v.String(KeyInclude),
		Exclude:   v.String(KeyExclude),
		DateRange: v.String(KeyDateRange),
		Length:    v.String(KeyLength),
	}

	for _, k := range []string{KeyCountry, KeyProvince} {
		if val := v.String(k); val != "" {
			s.Fields = append(s.Fields, Field{Name: k, Value: val})
		}
	}

	var extra []string
	for k := range v {
		switch k {
		case KeyInclude, KeyExclude, KeyDateRange, KeyLength, KeyCountry, KeyProvince:
			continue
		}
		extra = append(extra, k)
	}
	sort.Strings(extra)
	for _, k := range extra {
		if val := v.String(k); val != "" {
			s.Fields = append(s.Fields, Field{Name: k, Value: val})
		}
	}

	return s
}

// Field returns the value for the named field, or "".
func (s Selection) Field(name string) string {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Merge overlays the non-empty entries of over onto s.
func (s Selection) Merge(over Selection) Selection {
	out := Selection{
		Include:   pick(over.Include, s.Include),
		Exclude:   pick(over.Exclude, s.Exclude),
		DateRange: pick(over.DateRange, s.DateRange),
		Length:    pick(over.Length, s.Length),
	}

	seen := make(map[string]bool)
	for _, f := range s.Fields {
		val := f.Value
		if o := over.Field(f.Name); o != "" {
			val = o
		}
		out.Fields = append(out.Fields, Field{Name: f.Name, Value: val})
		seen[f.Name] = true
	}
	for _, f := range over.Fields {
		if !seen[f.Name] && f.Value != "" {
			out.Fields = append(out.Fields, f)
		}
	}

	return out
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
