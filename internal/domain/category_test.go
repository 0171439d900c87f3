package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Category
	}{
		{"thunderstorm abbreviation", "TSTM WIND", CategoryThunderLightning},
		{"lightning", "LIGHTNING", CategoryThunderLightning},
		{"tornado", "TORNADO", CategoryTornado},
		{"tornado typo", "TORNDAO", CategoryTornado},
		{"funnel cloud", "FUNNEL CLOUD", CategoryTornado},
		{"blizzard", "BLIZZARD", CategorySnow},
		{"heavy snow", "HEAVY SNOW", CategorySnow},
		{"flash flood", "FLASH FLOOD", CategoryFlood},
		{"fld abbreviation", "URBAN FLD", CategoryFlood},
		{"dam break", "DAM BREAK", CategoryFlood},
		{"high wind", "HIGH WIND", CategoryWind},
		{"wnd abbreviation", "WND", CategoryWind},
		{"microburst", "DRY MICROBURST", CategoryWind},
		{"drought", "DROUGHT", CategoryHeat},
		{"excessive heat", "EXCESSIVE HEAT", CategoryHeat},
		{"hail", "SMALL HAIL", CategoryHail},
		{"hurricane", "HURRICANE OPAL", CategoryHurricane},
		{"tropical storm", "TROPICAL STORM GORDON", CategoryHurricane},
		{"heavy rain", "HEAVY RAIN", CategoryRain},
		{"precipitation typo", "NORMAL PERCIPITATION", CategoryRain},
		{"wild fire", "WILD/FOREST FIRE", CategorySmokeFire},
		{"landslide", "LANDSLIDE", CategoryLandslideAvalanche},
		{"avalanche", "AVALANCHE", CategoryLandslideAvalanche},
		{"rip current", "RIP CURRENT", CategorySeaOcean},
		{"marine accident", "MARINE ACCIDENT", CategorySeaOcean},
		{"extreme cold", "EXTREME COLD", CategoryCold},
		{"ice storm", "ICE STORM", CategoryCold},
		{"dense fog", "DENSE FOG", CategoryFog},
		{"unmatched", "VOLCANIC ASH", CategoryOther},
		{"empty string", "", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.raw))
		})
	}
}

// Rule order is part of the contract: a label matching several rules must
// classify by the earliest one.
func TestClassify_FirstMatchWins(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Category
	}{
		{"flood before wind", "FLOOD WIND", CategoryFlood},
		{"thunder before wind", "THUNDERSTORM WINDS", CategoryThunderLightning},
		{"wind before heat", "HIGH WIND AND HIGH TIDES", CategoryWind},
		{"snow before cold", "SNOW AND ICE", CategorySnow},
		{"heat before fire", "DRY WEATHER FIRE", CategoryHeat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.raw))
		})
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	for _, raw := range []string{"TORNADO", "tornado", "Tornado", "Torndao"} {
		assert.Equal(t, CategoryTornado, Classify(raw), "input %q", raw)
	}
}

func TestCategorySlug(t *testing.T) {
	assert.Equal(t, "thunder-lightning", CategoryThunderLightning.Slug())
	assert.Equal(t, "landslide-avalanche", CategoryLandslideAvalanche.Slug())
	assert.Equal(t, "tornado", CategoryTornado.Slug())
}
