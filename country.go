package atletiek

import "strings"

// Country is a country the upstream competition search can be scoped to.
type Country string

// Countries supported by the competition search.
const (
	CountryBE Country = "BE"
	CountryBQ Country = "BQ"
	CountryCW Country = "CW"
	CountryFR Country = "FR"
	CountryDE Country = "DE"
	CountryIL Country = "IL"
	CountryNL Country = "NL"
	CountrySX Country = "SX"
	CountryZA Country = "ZA"
	CountryCH Country = "CH"
	CountryGB Country = "GB"
	CountryUS Country = "US"
)

// DefaultCountry is used when no country is given.
const DefaultCountry = CountryNL

var countries = map[Country]struct{}{
	CountryBE: {}, CountryBQ: {}, CountryCW: {}, CountryFR: {},
	CountryDE: {}, CountryIL: {}, CountryNL: {}, CountrySX: {},
	CountryZA: {}, CountryCH: {}, CountryGB: {}, CountryUS: {},
}

// ParseCountry parses a two-letter country code, case-insensitively.
// An empty string yields DefaultCountry.
func ParseCountry(s string) (Country, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultCountry, nil
	}
	c := Country(s)
	if _, ok := countries[c]; !ok {
		return "", Errorf(EINVALID, "country abbreviation (%s): not in available countries", s)
	}
	return c, nil
}
