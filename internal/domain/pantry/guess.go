package pantry

import "strings"

// Keyword tables for classifying free-text names during bulk add. Matching is
// substring-based on the folded name, first hit wins.

var nonVegKeywords = []string{
	"chicken", "mutton", "goat", "lamb", "beef", "pork", "fish", "prawn",
	"shrimp", "seafood", "turkey", "bacon", "sausage",
}

var dietNonVegKeywords = []string{
	"chicken", "mutton", "goat", "lamb", "beef", "pork", "fish", "prawn",
	"shrimp", "seafood", "turkey", "bacon", "sausage", "ham", "salami",
	"anchovy", "tuna",
}

var dairyKeywords = []string{
	"milk", "paneer", "cheese", "yogurt", "curd", "butter", "ghee", "cream",
}

var vegKeywords = []string{
	"tomato", "onion", "potato", "carrot", "spinach", "capsicum", "pepper",
	"cucumber", "cabbage", "cauliflower", "broccoli", "okra", "bhindi",
	"brinjal", "eggplant",
}

var fruitKeywords = []string{
	"banana", "apple", "mango", "orange", "grape", "berries", "strawberry",
	"pineapple", "pear", "papaya",
}

var grainKeywords = []string{
	"rice", "flour", "atta", "wheat", "maida", "bread", "pasta", "noodle",
	"quinoa", "oats", "poha", "suji", "semolina",
}

var condimentKeywords = []string{
	"salt", "sugar", "ketchup", "sauce", "vinegar", "soy", "mustard",
	"pickle", "masala", "spice", "chilli", "chili", "turmeric", "cumin",
	"coriander", "garam",
}

// GuessCategory maps a free-text name onto a Category. Meat and eggs land
// under protein so the schema stays consistent with the dietary tags.
func GuessCategory(name string) Category {
	n := strings.ToLower(name)
	switch {
	case containsAny(n, nonVegKeywords):
		return CategoryProtein
	case strings.Contains(n, "egg"):
		return CategoryProtein
	case containsAny(n, dairyKeywords):
		return CategoryDairy
	case containsAny(n, vegKeywords):
		return CategoryVeg
	case containsAny(n, fruitKeywords):
		return CategoryFruit
	case containsAny(n, grainKeywords):
		return CategoryGrain
	case containsAny(n, condimentKeywords):
		return CategoryCondiment
	default:
		return CategoryOther
	}
}

// GuessDietTag maps a free-text name onto a DietTag, defaulting to veg.
func GuessDietTag(name string) DietTag {
	n := strings.ToLower(name)
	switch {
	case containsAny(n, dietNonVegKeywords):
		return DietTagNonVeg
	case strings.Contains(n, "egg"):
		return DietTagEggsOK
	default:
		return DietTagVeg
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
