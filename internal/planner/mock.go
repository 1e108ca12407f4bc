package planner

import (
	"fmt"
	"time"

	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/google/uuid"
)

const (
	mockDays      = 3
	hopMinutes    = 30
	dateLayout    = "2006-01-02"
	imageTemplate = "https://picsum.photos/seed/poi%d/320/180"
)

type poiSeed struct {
	seed int
	name string
	tags []string
	stay int
}

var poiPools = map[string][]poiSeed{
	"culture": {
		{1, "Palace Museum", []string{"culture", "history"}, 180},
		{2, "National Museum", []string{"culture", "history"}, 120},
		{3, "Nanluoguxiang", []string{"culture", "food"}, 90},
		{4, "Summer Palace", []string{"culture", "nature"}, 150},
		{5, "Lama Temple", []string{"culture", "religion"}, 90},
	},
	"nature": {
		{10, "West Lake", []string{"nature", "leisure"}, 120},
		{11, "Lingyin Temple", []string{"nature", "culture"}, 90},
		{12, "Xixi Wetland", []string{"nature", "ecology"}, 180},
		{13, "Nine Creeks", []string{"nature", "hiking"}, 90},
		{14, "Longjing Village", []string{"nature", "food"}, 120},
	},
	"relax": {
		{20, "Seaside Boardwalk", []string{"leisure", "nature"}, 90},
		{21, "Hot Spring Hotel", []string{"leisure", "rest"}, 180},
		{22, "Old Town Stroll", []string{"leisure", "culture"}, 120},
		{23, "Coffee House", []string{"leisure", "food"}, 60},
		{24, "Night Market", []string{"food", "shopping"}, 90},
	},
}

var variantThemes = []struct {
	id, name, theme string
}{
	{"a", "Plan A (culture first)", "culture"},
	{"b", "Plan B (nature first)", "nature"},
	{"c", "Plan C (easy going)", "relax"},
}

func emptyVariants() []models.AiPlanVariant {
	out := make([]models.AiPlanVariant, len(variantThemes))
	for i, v := range variantThemes {
		out[i] = models.AiPlanVariant{ID: v.id, Name: v.name, Days: []models.AiDayPlan{}}
	}
	return out
}

// dayDuration is the sum of stays plus a fixed hop between consecutive stops.
func dayDuration(items []models.AiPoiItem) int {
	total := 0
	for _, it := range items {
		total += it.StayMinutes
	}
	if len(items) > 1 {
		total += hopMinutes * (len(items) - 1)
	}
	return total
}

func mockPOI(s poiSeed) models.AiPoiItem {
	return models.AiPoiItem{
		ID:          uuid.NewString(),
		Image:       fmt.Sprintf(imageTemplate, s.seed),
		Name:        s.name,
		StayMinutes: s.stay,
		Tags:        append([]string(nil), s.tags...),
	}
}

// mockDaysFor lays out three days from start, alternating two and three
// stops a day out of the theme's pool.
func mockDaysFor(theme string, start time.Time) []models.AiDayPlan {
	pool := poiPools[theme]
	days := make([]models.AiDayPlan, 0, mockDays)
	for i := 0; i < mockDays; i++ {
		n := 2 + i%2
		items := make([]models.AiPoiItem, 0, n)
		for j := 0; j < n; j++ {
			items = append(items, mockPOI(pool[(i*2+j)%len(pool)]))
		}
		days = append(days, models.AiDayPlan{
			DayIndex:        i + 1,
			Date:            start.AddDate(0, 0, i).Format(dateLayout),
			DurationMinutes: dayDuration(items),
			DistanceKm:      float64(12 + i*8),
			CommuteMinutes:  20 + i*10,
			Items:           items,
		})
	}
	return days
}

func mockVariants(start time.Time) []models.AiPlanVariant {
	out := emptyVariants()
	for i, v := range variantThemes {
		out[i].Days = mockDaysFor(v.theme, start)
	}
	return out
}
