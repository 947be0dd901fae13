package goquery_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/atletiek"
	"github.com/fwojciec/atletiek/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registrationsHeader = `<table class="deelnemerstabel">
<thead><tr><th>Bib</th><th>Naam</th><th>Categorie</th><th>Vereniging</th><th>Team</th><th>Estafette</th><th>Onderdelen</th></tr></thead>
<tbody>`

const registrationsFooter = `</tbody></table>`

func TestExtractor_ExtractRegistrations(t *testing.T) {
	t.Parallel()

	t.Run("reads the registration table", func(t *testing.T) {
		t.Parallel()

		html := registrationsHeader + `
<tr id="deelnemer_6051234">
	<td><span>44</span></td>
	<td><a href="/atleet/main/6051234/">Jan Jansen</a></td>
	<td>MSEN</td>
	<td><span title="Atletiekvereniging Venlo">AV Venlo</span></td>
	<td></td>
	<td></td>
	<td><span class="tipped" title="Status: Checked-in">400m</span> <span class="tipped" title="Status: Checked-in">400m_f</span></td>
</tr>
<tr id="deelnemer_6051235">
	<td></td>
	<td>Piet Pietersen <span class="bm">BM</span></td>
	<td>M35</td>
	<td>Hercules</td>
	<td>Masters A</td>
	<td><a href="/wedstrijd/estafetteteam/38436/991/">Hercules 1</a></td>
	<td>60m<br>Verspringen<br>+2 onderdelen</td>
</tr>
<tr id="deelnemer_6051236">
	<td>12</td>
	<td>Kees Keessen</td>
	<td>MJU18</td>
	<td>AV Venlo</td>
	<td></td>
	<td></td>
	<td><span class="tipped" title="Status: Slapend">100m</span><span class="tipped" title="Afgemeld">200m</span></td>
</tr>
<tr><td>no id</td></tr>
` + registrationsFooter

		got, err := goquery.NewExtractor().ExtractRegistrations(html)
		require.NoError(t, err)
		require.Len(t, got, 3)

		bib := uint32(44)
		assert.Equal(t, &atletiek.Registration{
			ParticipantID: 6051234,
			Name:          "Jan Jansen",
			Category:      "MSEN",
			ClubShort:     "AV Venlo",
			ClubLong:      "Atletiekvereniging Venlo",
			Events: []atletiek.EventEntry{
				{Name: "400m", Status: atletiek.EventStatusCheckedIn},
				{Name: "400m_f", Status: atletiek.EventStatusCheckedIn},
			},
			BibNumber: &bib,
		}, got[0])

		team := "Masters A"
		assert.Equal(t, &atletiek.Registration{
			ParticipantID:    6051235,
			Name:             "Piet Pietersen",
			Category:         "M35",
			ClubShort:        "Hercules",
			ClubLong:         "Hercules",
			TeamName:         &team,
			RelayTeams:       []atletiek.RelayTeam{{ID: 991, Name: "Hercules 1"}},
			OutOfCompetition: true,
			Events: []atletiek.EventEntry{
				{Name: "60m", Status: atletiek.EventStatusUnknown},
				{Name: "Verspringen", Status: atletiek.EventStatusUnknown},
			},
		}, got[1])

		require.NotNil(t, got[2].BibNumber)
		assert.Equal(t, uint32(12), *got[2].BibNumber)
		assert.True(t, got[2].HasEvent("100m", atletiek.EventStatusUnknown))
		assert.True(t, got[2].HasEvent("200m", atletiek.EventStatusCancelled))
	})

	t.Run("logs unexpected statuses and skipped rows", func(t *testing.T) {
		t.Parallel()

		html := registrationsHeader + `
<tr id="deelnemer_6051236">
	<td>12</td>
	<td>Kees Keessen</td>
	<td>MJU18</td>
	<td>AV Venlo</td>
	<td></td>
	<td></td>
	<td><span class="tipped" title="Status: Slapend">100m</span></td>
</tr>
<tr id="deelnemer_"><td>13</td><td>Zonder Id</td></tr>
` + registrationsFooter

		var buf bytes.Buffer
		got, err := newLoggedExtractor(&buf).ExtractRegistrations(html)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].HasEvent("100m", atletiek.EventStatusUnknown))

		logs := buf.String()
		assert.Contains(t, logs, `level=WARN msg="unexpected event status" status="Status: Slapend" event=100m participant=6051236`)
		assert.Contains(t, logs, `level=WARN msg="skipping registration row without participant id"`)
	})

	t.Run("merges repeated participant rows", func(t *testing.T) {
		t.Parallel()

		html := registrationsHeader + `
<tr id="deelnemer_1"><td></td><td>Jan Jansen</td><td>MSEN</td><td>AV Venlo</td><td></td><td></td><td><span class="tipped" title="Geaccepteerd">100m</span></td></tr>
<tr id="deelnemer_1"><td></td><td>Jan Jansen</td><td>MSEN</td><td>AV Venlo</td><td></td><td></td><td><span class="tipped" title="Geaccepteerd">100m</span><span class="tipped" title="Reserve">200m</span></td></tr>
` + registrationsFooter

		got, err := goquery.NewExtractor().ExtractRegistrations(html)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, []atletiek.EventEntry{
			{Name: "100m", Status: atletiek.EventStatusAccepted},
			{Name: "200m", Status: atletiek.EventStatusReserve},
		}, got[0].Events)
	})

	t.Run("reads a large list without duplicates", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString(registrationsHeader)
		for i := 1; i <= 220; i++ {
			fmt.Fprintf(&b, `<tr id="deelnemer_%d"><td>%d</td><td>Atleet %d</td><td>MSEN</td><td>AV Venlo</td><td></td><td></td><td><span class="tipped" title="Status: Accepted">60m</span></td></tr>`, 38000+i, i, i)
		}
		b.WriteString(registrationsFooter)

		got, err := goquery.NewExtractor().ExtractRegistrations(b.String())
		require.NoError(t, err)
		require.Len(t, got, 220)

		seen := make(map[uint32]bool)
		for _, reg := range got {
			assert.False(t, seen[reg.ParticipantID], "duplicate participant %d", reg.ParticipantID)
			seen[reg.ParticipantID] = true
		}
		assert.Equal(t, uint32(38220), got[219].ParticipantID)
		assert.Equal(t, "Atleet 220", got[219].Name)
	})

	t.Run("reads columns by header, not position", func(t *testing.T) {
		t.Parallel()

		html := `<table class="deelnemerstabel">
<thead><tr><th>Name</th><th>Events</th><th>Club</th><th>Category</th></tr></thead>
<tbody><tr id="p-77"><td>Anna de Vries</td><td>Hoogspringen</td><td>AV Venlo</td><td>VSEN</td></tr></tbody>
</table>`

		got, err := goquery.NewExtractor().ExtractRegistrations(html)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, uint32(77), got[0].ParticipantID)
		assert.Equal(t, "Anna de Vries", got[0].Name)
		assert.Equal(t, "VSEN", got[0].Category)
		assert.Equal(t, "AV Venlo", got[0].ClubShort)
		assert.Equal(t, []atletiek.EventEntry{{Name: "Hoogspringen", Status: atletiek.EventStatusUnknown}}, got[0].Events)
		assert.Nil(t, got[0].BibNumber)
	})

	t.Run("reads the escaped script layout", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><script class="list-content-registrations" type="text/template">
&lt;ul&gt;
&lt;li&gt;&lt;a href="?page=deelnemer&deelnemer_id=555"&gt;&lt;div class="item-inner"&gt;&lt;div class="item-title"&gt;Jan Jansen&lt;br&gt;MSEN | AV Venlo&lt;/div&gt;&lt;div class="item-after"&gt;100m&lt;br&gt;Kogelstoten&lt;/div&gt;&lt;/div&gt;&lt;/a&gt;&lt;/li&gt;
&lt;li&gt;&lt;a href="?page=deelnemer&deelnemer_id=556"&gt;&lt;div class="item-inner"&gt;&lt;div class="item-title"&gt;Piet Pietersen&lt;br&gt;M35 | Hercules | Masters A&lt;/div&gt;&lt;/div&gt;&lt;/a&gt;&lt;/li&gt;
&lt;li&gt;&lt;a href="?page=elders"&gt;&lt;div class="item-inner"&gt;&lt;div class="item-title"&gt;Zonder Id&lt;br&gt;M35 | Hercules&lt;/div&gt;&lt;/div&gt;&lt;/a&gt;&lt;/li&gt;
&lt;/ul&gt;
</script></body></html>`

		got, err := goquery.NewExtractor().ExtractRegistrations(html)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, &atletiek.Registration{
			ParticipantID: 555,
			Name:          "Jan Jansen",
			Category:      "MSEN",
			ClubShort:     "AV Venlo",
			ClubLong:      "AV Venlo",
			Events: []atletiek.EventEntry{
				{Name: "100m", Status: atletiek.EventStatusUnknown},
				{Name: "Kogelstoten", Status: atletiek.EventStatusUnknown},
			},
		}, got[0])

		require.NotNil(t, got[1].TeamName)
		assert.Equal(t, "Masters A", *got[1].TeamName)
		assert.Equal(t, "Hercules", got[1].ClubShort)
	})

	t.Run("returns ENOTFOUND when there is no registration list", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().ExtractRegistrations(`<html><body><h1>Inschrijvingen</h1></body></html>`)
		require.Error(t, err)
		assert.Equal(t, atletiek.ENOTFOUND, atletiek.ErrorCode(err))
	})
}
