package goquery_test

import (
	"testing"

	"github.com/fwojciec/atletiek"
	"github.com/fwojciec/atletiek/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_ExtractAthletes(t *testing.T) {
	t.Parallel()

	t.Run("reads athletes from the search list", func(t *testing.T) {
		t.Parallel()

		html := `<div class="list-athletes"><ul>
<li><a href="#" onclick="selectAthlete('koppel_id=1734217')"><div class="item-inner"><div class="item-title">Marith  Siekman<br><span class="subtext">16 years | AV Venlo</span></div></div></a></li>
<li><a href="#" onclick="selectAthlete('koppel_id=42')"><div class="item-inner"><div class="item-title">Jan Jansen<br><span class="subtext">34 years | Atletiekvereniging Apeldoorn | Masters</span></div></div></a></li>
<li><a href="#" onclick="noop()"><div class="item-inner"><div class="item-title">Missing Id<br>20 years | AV Venlo</div></div></a></li>
<li><a href="#" onclick="selectAthlete('koppel_id=7')"><div class="item-inner"><div class="item-title">No Club</div></div></a></li>
</ul></div>`

		got, err := goquery.NewExtractor().ExtractAthletes(html)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, &atletiek.AthleteSummary{ID: 1734217, Name: "Marith Siekman", ClubName: "AV Venlo", Age: 16}, got[0])
		assert.Equal(t, &atletiek.AthleteSummary{ID: 42, Name: "Jan Jansen", ClubName: "Atletiekvereniging Apeldoorn | Masters", Age: 34}, got[1])
	})

	t.Run("returns an empty list when nothing matches", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewExtractor().ExtractAthletes(`<div class="list-athletes"><ul></ul></div>`)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
