package scrape

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/atletiek"
)

// DefaultBaseURL is the upstream site.
const DefaultBaseURL = "https://www.atletiek.nu"

// athleteAppVersion is the mobile app version the athlete search endpoint
// expects.
const athleteAppVersion = "1.16"

// urlBuilder renders upstream URLs for request keys.
type urlBuilder struct {
	base string
}

func (b urlBuilder) competitions(key atletiek.RequestKey) string {
	v := url.Values{}
	v.Set("page", "search")
	v.Set("do", "events")
	v.Set("country", string(key.Country))
	v.Add("event_soort[]", "in")
	v.Add("event_soort[]", "out")
	v.Set("search", key.Query)
	v.Set("startDate", strconv.FormatInt(key.Start.Time().Unix(), 10))
	v.Set("endDate", strconv.FormatInt(key.End.Time().Unix(), 10))
	return b.join("/feeder.php") + "?" + v.Encode()
}

func (b urlBuilder) athletes(key atletiek.RequestKey) string {
	v := url.Values{}
	v.Set("page", "athletes")
	v.Set("do", "searchresults")
	v.Set("name", key.Query)
	v.Set("language", "en_GB")
	v.Set("version", athleteAppVersion)
	v.Set("improvePerformance", "0")
	return b.join("/athleteapp.php") + "?" + v.Encode()
}

func (b urlBuilder) competitionEvents(key atletiek.RequestKey) string {
	return b.join(fmt.Sprintf("/wedstrijd/tijdschema/%d/", key.ID))
}

func (b urlBuilder) registrations(key atletiek.RequestKey) string {
	return b.join(fmt.Sprintf("/wedstrijd/atleten/%d/", key.ID))
}

func (b urlBuilder) results(key atletiek.RequestKey) string {
	return b.join(fmt.Sprintf("/atleet/main/%d/", key.ID))
}

func (b urlBuilder) profile(key atletiek.RequestKey) string {
	return b.join(fmt.Sprintf("/atleet/profiel/%d/", key.ID))
}

func (b urlBuilder) join(path string) string {
	return strings.TrimSuffix(b.base, "/") + path
}
