// Package catalog loads the static game data (items, recipes, facility
// types) from YAML files and cross-validates references before handing
// typed registries to the engine.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gravitas-games/foundry/internal/facility"
	"github.com/gravitas-games/foundry/internal/item"
	"github.com/gravitas-games/foundry/internal/recipe"
)

// ItemFile is the on-disk shape of items.yaml.
type ItemFile struct {
	Items []item.Details `yaml:"items"`
}

// RecipeDef is the on-disk shape of one recipe.
type RecipeDef struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Category  string         `yaml:"category,omitempty"`
	Time      float64        `yaml:"time"`
	In        map[string]int `yaml:"in,omitempty"`
	Out       map[string]int `yaml:"out"`
	Producers []string       `yaml:"producers,omitempty"`
	Flags     []string       `yaml:"flags,omitempty"`
}

// RecipeFile is the on-disk shape of recipes.yaml.
type RecipeFile struct {
	Recipes []RecipeDef `yaml:"recipes"`
}

// FacilityDef is the on-disk shape of one facility type.
type FacilityDef struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Class          string   `yaml:"class"`
	Energy         string   `yaml:"energy"`
	BasePowerKW    float64  `yaml:"base_power_kw,omitempty"`
	PowerOutputKW  float64  `yaml:"power_output_kw,omitempty"`
	SolarDayRatio  float64  `yaml:"solar_day_ratio,omitempty"`
	CraftingSpeed  float64  `yaml:"crafting_speed,omitempty"`
	FuelCategories []string `yaml:"fuel_categories,omitempty"`
	MaxFuelStack   int      `yaml:"max_fuel_stack,omitempty"`
}

// FacilityFile is the on-disk shape of facilities.yaml.
type FacilityFile struct {
	Facilities []FacilityDef `yaml:"facilities"`
}

// Catalogs bundles the three loaded registries.
type Catalogs struct {
	Items      *item.Registry
	Recipes    *recipe.Index
	Facilities *facility.Registry
}

// Load reads and validates all three catalogs.
func Load(itemsPath, recipesPath, facilitiesPath string) (*Catalogs, error) {
	items, err := loadItems(itemsPath)
	if err != nil {
		return nil, err
	}
	facilities, err := loadFacilities(facilitiesPath)
	if err != nil {
		return nil, err
	}
	recipes, err := loadRecipes(recipesPath, items, facilities)
	if err != nil {
		return nil, err
	}
	return &Catalogs{Items: items, Recipes: recipes, Facilities: facilities}, nil
}

func loadItems(path string) (*item.Registry, error) {
	var f ItemFile
	if err := readYAML(path, &f); err != nil {
		return nil, err
	}
	reg := item.NewRegistry()
	for _, d := range f.Items {
		if err := reg.Register(d); err != nil {
			return nil, fmt.Errorf("items catalog: %w", err)
		}
	}
	return reg, nil
}

func loadFacilities(path string) (*facility.Registry, error) {
	var f FacilityFile
	if err := readYAML(path, &f); err != nil {
		return nil, err
	}
	reg := facility.NewRegistry()
	for _, d := range f.Facilities {
		t, err := d.toType()
		if err != nil {
			return nil, fmt.Errorf("facilities catalog: %w", err)
		}
		if err := reg.Register(t); err != nil {
			return nil, fmt.Errorf("facilities catalog: %w", err)
		}
	}
	return reg, nil
}

func loadRecipes(path string, items *item.Registry, facilities *facility.Registry) (*recipe.Index, error) {
	var f RecipeFile
	if err := readYAML(path, &f); err != nil {
		return nil, err
	}
	idx := recipe.NewIndex()
	for _, d := range f.Recipes {
		r, err := d.toRecipe()
		if err != nil {
			return nil, fmt.Errorf("recipes catalog: %w", err)
		}
		for id := range r.In {
			if _, ok := items.Lookup(id); !ok {
				return nil, fmt.Errorf("recipe %s: unknown input item %s", r.ID, id)
			}
		}
		for id := range r.Out {
			if _, ok := items.Lookup(id); !ok {
				return nil, fmt.Errorf("recipe %s: unknown output item %s", r.ID, id)
			}
		}
		for _, p := range r.Producers {
			if facilities.Lookup(facility.TypeID(p)) == nil {
				return nil, fmt.Errorf("recipe %s: unknown producer %s", r.ID, p)
			}
		}
		if err := idx.Register(r); err != nil {
			return nil, fmt.Errorf("recipes catalog: %w", err)
		}
	}
	return idx, nil
}

func (d RecipeDef) toRecipe() (*recipe.Recipe, error) {
	r := &recipe.Recipe{
		ID:        recipe.ID(d.ID),
		Name:      d.Name,
		Category:  d.Category,
		Time:      d.Time,
		In:        make(map[item.ID]int, len(d.In)),
		Out:       make(map[item.ID]int, len(d.Out)),
		Producers: d.Producers,
	}
	for id, qty := range d.In {
		r.In[item.ID(id)] = qty
	}
	for id, qty := range d.Out {
		r.Out[item.ID(id)] = qty
	}
	for _, flag := range d.Flags {
		switch flag {
		case "manual":
			r.Flags |= recipe.FlagManual
		case "mining":
			r.Flags |= recipe.FlagMining
		case "recycling":
			r.Flags |= recipe.FlagRecycling
		case "technology":
			r.Flags |= recipe.FlagTechnology
		default:
			return nil, fmt.Errorf("recipe %s: unknown flag %q", d.ID, flag)
		}
	}
	return r, nil
}

func (d FacilityDef) toType() (*facility.Type, error) {
	class, err := parseClass(d.Class)
	if err != nil {
		return nil, fmt.Errorf("facility %s: %w", d.ID, err)
	}
	energy, err := parseEnergy(d.Energy)
	if err != nil {
		return nil, fmt.Errorf("facility %s: %w", d.ID, err)
	}
	t := &facility.Type{
		ID:            facility.TypeID(d.ID),
		Name:          d.Name,
		Class:         class,
		Energy:        energy,
		BasePowerKW:   d.BasePowerKW,
		PowerOutputKW: d.PowerOutputKW,
		SolarDayRatio: d.SolarDayRatio,
		CraftingSpeed: d.CraftingSpeed,
		MaxFuelStack:  d.MaxFuelStack,
	}
	for _, c := range d.FuelCategories {
		t.FuelCategories = append(t.FuelCategories, item.FuelCategory(c))
	}
	return t, nil
}

func parseClass(s string) (facility.EntityClass, error) {
	switch s {
	case "mining-drill":
		return facility.ClassMiningDrill, nil
	case "furnace":
		return facility.ClassFurnace, nil
	case "assembler":
		return facility.ClassAssembler, nil
	case "boiler":
		return facility.ClassBoiler, nil
	case "steam-engine":
		return facility.ClassSteamEngine, nil
	case "solar-panel":
		return facility.ClassSolarPanel, nil
	case "inserter":
		return facility.ClassInserter, nil
	case "belt":
		return facility.ClassBelt, nil
	case "lab":
		return facility.ClassLab, nil
	case "other":
		return facility.ClassOther, nil
	default:
		return 0, fmt.Errorf("unknown class %q", s)
	}
}

func parseEnergy(s string) (facility.EnergySource, error) {
	switch s {
	case "", "none":
		return facility.SourceNone, nil
	case "electric":
		return facility.SourceElectric, nil
	case "burner":
		return facility.SourceBurner, nil
	default:
		return 0, fmt.Errorf("unknown energy source %q", s)
	}
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
