// Package categorize maps free-text transaction descriptions to spending
// categories using ordered keyword rules.
package categorize

import "strings"

// Other is the fallback category for descriptions matching no rule.
const Other = "Other"

type rule struct {
	category string
	keywords []string
}

// Rule order is a priority chain: the first rule with any keyword matching
// the description wins. Do not reorder; "food ticket" must classify as
// Food, not Travel, because Food is checked first.
var rules = []rule{
	{"Food", []string{
		"swiggy", "zomato", "restaurant", "cafe", "starbucks", "kfc",
		"mcdonalds", "burger", "pizza", "dining", "lunch", "dinner",
		"breakfast", "food",
	}},
	{"Travel", []string{
		"uber", "ola", "rapido", "train", "metro", "flight", "airline",
		"bus", "ticket", "fuel", "petrol", "diesel", "parking", "toll",
		"travel", "cab",
	}},
	{"Shopping", []string{
		"amazon", "flipkart", "myntra", "ajio", "zara", "h&m", "nike",
		"adidas", "mall", "store", "mart", "supermarket", "grocery",
		"blinkit", "zepto", "instamart", "shop",
	}},
	{"Utilities", []string{
		"electricity", "bill", "water", "gas", "internet", "wifi",
		"broadband", "mobile", "recharge", "dth", "subscription",
		"postpaid", "prepaid",
	}},
	{"Entertainment", []string{
		"netflix", "spotify", "prime", "movie", "cinema", "bookmyshow",
		"game", "steam", "playstation", "xbox", "entertainment",
	}},
	{"Health", []string{
		"pharmacy", "doctor", "hospital", "med", "clinic", "gym",
		"fitness", "health", "medicine",
	}},
	{"Rent", []string{"rent", "housing", "maintenance"}},
}

// Categorize returns the category for a transaction description. It is a
// total function: any input yields a label, defaulting to Other.
func Categorize(description string) string {
	description = strings.ToLower(description)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(description, kw) {
				return r.category
			}
		}
	}
	return Other
}

// Categories returns the closed category set in priority order, with Other
// last. The returned slice is a copy.
func Categories() []string {
	out := make([]string, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.category)
	}
	return append(out, Other)
}
