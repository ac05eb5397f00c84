package recipe

// Dietary preference values accepted by the generation form. "none" is a
// valid preference here even though stored rows never carry it.
const (
	DietaryNone   = "none"
	DietaryVeg    = "veg"
	DietaryEggsOK = "eggs-ok"
	DietaryVegan  = "vegan"
	DietaryNonVeg = "non-veg"
)

// DietaryChoices lists the selectable preferences in UI order.
var DietaryChoices = []string{DietaryNone, DietaryVeg, DietaryEggsOK, DietaryVegan, DietaryNonVeg}

// GenerationParams are the user constraints for one recipe-generation run.
type GenerationParams struct {
	Dietary       string `validate:"required,oneof=none veg eggs-ok vegan non-veg"`
	TimeLimit     int    `validate:"min=10,max=120"`
	Servings      int    `validate:"min=1,max=8"`
	Cuisine       string `validate:"required,max=128"`
	NumOptions    int    `validate:"min=1,max=3"`
	ExcludeNonVeg bool
	ExcludeEggs   bool
	ExcludeDairy  bool
}

// DefaultGenerationParams returns the form defaults: veg, 30 minutes, two
// servings, Indian cuisine, two options, with exclusions derived from the
// dietary preference.
func DefaultGenerationParams() GenerationParams {
	p := GenerationParams{
		Dietary:    DietaryVeg,
		TimeLimit:  30,
		Servings:   2,
		Cuisine:    "Indian",
		NumOptions: 2,
	}
	p.ApplyDietaryDefaults()
	return p
}

// ApplyDietaryDefaults derives the exclusion flags from the dietary
// preference: veg and vegan exclude non-veg, vegan additionally excludes
// eggs and dairy. Explicitly set flags are OR-ed in, never cleared.
func (p *GenerationParams) ApplyDietaryDefaults() {
	if p.Dietary == DietaryVeg || p.Dietary == DietaryVegan {
		p.ExcludeNonVeg = true
	}
	if p.Dietary == DietaryVegan {
		p.ExcludeEggs = true
		p.ExcludeDairy = true
	}
}
