package domain

import "strings"

// Category is one of the 15 canonical event categories that every raw
// EVTYPE label normalizes to. CategoryOther is the catch-all for labels
// matching no classification rule.
type Category string

const (
	CategoryThunderLightning    Category = "Thunder/Lightning"
	CategoryTornado             Category = "Tornado"
	CategorySnow                Category = "Snow"
	CategoryFlood               Category = "Flood"
	CategoryWind                Category = "Wind"
	CategoryHeat                Category = "Heat"
	CategoryHail                Category = "Hail"
	CategoryHurricane           Category = "Hurricane"
	CategoryRain                Category = "Rain"
	CategorySmokeFire           Category = "Smoke/Fire"
	CategoryLandslideAvalanche  Category = "Landslide/Avalanche"
	CategorySeaOcean            Category = "Sea/Ocean"
	CategoryCold                Category = "Cold"
	CategoryFog                 Category = "Fog"
	CategoryOther               Category = "Other"
)

// Slug returns a lowercase identifier safe for message keys and metric
// labels, e.g. "Thunder/Lightning" -> "thunder-lightning".
func (c Category) Slug() string {
	s := strings.ToLower(string(c))
	s = strings.ReplaceAll(s, "/", "-")
	return strings.ReplaceAll(s, " ", "-")
}

// classificationRule pairs a set of case-insensitive substring patterns with
// the category they map to.
type classificationRule struct {
	category Category
	patterns []string
}

// classificationRules is evaluated top to bottom; the first rule with a
// matching pattern wins and evaluation stops. Rule order is part of the
// contract: "FLASH FLOOD WINDS" contains both a Flood and a Wind token and
// must classify as Flood because the Flood rule comes first. Do not reorder.
var classificationRules = []classificationRule{
	{CategoryThunderLightning, []string{"lightning", "thunder", "tstm"}},
	{CategoryTornado, []string{"funnel", "tornado", "torndao"}},
	{CategorySnow, []string{"blizzard", "sleet", "snow"}},
	{CategoryFlood, []string{"dam break", "dam failure", "fld", "fldg", "flood", "stream", "surf", "swells", "tsunami", "water"}},
	{CategoryWind, []string{"wind", "wnd", "gustnado", "downburst", "microburst"}},
	{CategoryHeat, []string{"driest", "drought", "dry", "dust", "heat", "high", "hot", "warm"}},
	{CategoryHail, []string{"hail"}},
	{CategoryHurricane, []string{"hurricane", "tropical storm", "typhoon"}},
	{CategoryRain, []string{"depression", "percipi", "preci", "rain", "shower", "wet"}},
	{CategorySmokeFire, []string{"fire", "smoke"}},
	{CategoryLandslideAvalanche, []string{"land", "slide", "avalanc"}},
	{CategorySeaOcean, []string{"current", "marine", "rough seas", "tide", "wave"}},
	{CategoryCold, []string{"chill", "cold", "cool", "freez", "frost", "glaze", "hypothermia", "ice", "icy", "low"}},
	{CategoryFog, []string{"fog"}},
}

// Classify maps a raw free-text EVTYPE label to its canonical category.
// Matching is case-insensitive substring containment, first-match-wins over
// the ordered rule list; labels matching no rule classify as CategoryOther.
// Total over all strings, including the empty string.
func Classify(rawEventType string) Category {
	label := strings.ToLower(rawEventType)
	for _, rule := range classificationRules {
		for _, pattern := range rule.patterns {
			if strings.Contains(label, pattern) {
				return rule.category
			}
		}
	}
	return CategoryOther
}
