package timeline

type Category struct {
	Key         string
	Name        string
	Description string
}

// 타임라인 9개 카테고리, 순서 고정
var categories = []Category{
	{Key: "0_birth", Name: "Birth", Description: "Birth (Time, Location, etc.)"},
	{Key: "1_early_childhood", Name: "Early Childhood", Description: "0-6 years old experiences"},
	{Key: "2_primary_edu", Name: "Primary Education", Description: "Primary/Secondary Education & Events"},
	{Key: "3_higher_edu", Name: "Higher Education", Description: "Higher Education & Events"},
	{Key: "4_family", Name: "Family", Description: "Family Relations"},
	{Key: "5_social", Name: "Social", Description: "Social Relations (Friends)"},
	{Key: "6_work", Name: "Work", Description: "Work History"},
	{Key: "7_locations", Name: "Locations", Description: "Locations (Residence, Work, Past)"},
	{Key: "8_assets", Name: "Assets", Description: "Assets"},
}

func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func Keys() []string {
	keys := make([]string, len(categories))
	for i, c := range categories {
		keys[i] = c.Key
	}
	return keys
}

func GetCategory(key string) (Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}
