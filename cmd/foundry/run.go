package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/gravitas-games/foundry/internal/catalog"
	"github.com/gravitas-games/foundry/internal/config"
	"github.com/gravitas-games/foundry/internal/craft"
	"github.com/gravitas-games/foundry/internal/facility"
	"github.com/gravitas-games/foundry/internal/item"
	"github.com/gravitas-games/foundry/internal/power"
	"github.com/gravitas-games/foundry/internal/recipe"
	"github.com/gravitas-games/foundry/internal/sim"
)

func newRunCmd() *cobra.Command {
	var (
		seconds   float64
		craftItem string
		craftQty  int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation for a fixed duration and report",
		Run: func(cmd *cobra.Command, args []string) {
			runSimulation(seconds, craftItem, craftQty)
		},
	}
	cmd.Flags().Float64Var(&seconds, "seconds", 60, "simulated seconds to advance")
	cmd.Flags().StringVar(&craftItem, "craft", "automation-science-pack", "item to hand-craft during the run")
	cmd.Flags().IntVar(&craftQty, "qty", 2, "quantity to hand-craft")
	return cmd
}

func runSimulation(seconds float64, craftItem string, craftQty int) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cats, err := catalog.Load(cfg.Data.Items, cfg.Data.Recipes, cfg.Data.Facilities)
	if err != nil {
		log.Fatalf("Failed to load catalogs: %v", err)
	}

	bus := sim.NewBus()
	engine := sim.New(cfg, cats.Items, cats.Recipes, cats.Facilities, bus)

	eventColor := color.New(color.FgYellow)
	bus.Subscribe(func(ev sim.Event) {
		eventColor.Printf("[%7.2fs] %s", ev.Time, ev.Type)
		if ev.Item != "" {
			eventColor.Printf(" item=%s", ev.Item)
		}
		if ev.FacilityID != "" {
			eventColor.Printf(" facility=%s", ev.FacilityID)
		}
		eventColor.Println()
	})

	if err := seedFactory(engine); err != nil {
		log.Fatalf("Failed to set up factory: %v", err)
	}

	titleColor := color.New(color.FgCyan, color.Bold)
	titleColor.Println("\n⚙ Foundry Simulation")
	fmt.Printf("Tick rate: %d Hz, duration: %.0fs\n\n", cfg.Simulation.TickRate, seconds)

	res := engine.RequestCraft(item.ID(craftItem), craftQty)
	if res.OK {
		fmt.Printf("Craft request accepted for %dx %s\n\n", craftQty, craftItem)
	} else {
		fmt.Printf("Craft request rejected: %s\n\n", res.Reason)
	}

	dt := cfg.Simulation.TickSeconds()
	for t := 0.0; t < seconds; t += dt {
		engine.Advance(dt)
	}

	printBalance(engine.Balance())
	printFacilities(engine)
	printQueue(engine.Queue())
	printInventory(engine.Store())
}

// seedFactory places a small starter layout and stocks the shared store so
// a run produces visible activity out of the box.
func seedFactory(e *sim.Engine) error {
	e.Store().AddAll(map[item.ID]int{
		"iron-ore":     60,
		"copper-ore":   40,
		"coal":         40,
		"stone":        20,
		"iron-plate":   20,
		"copper-plate": 10,
	})

	layout := []struct {
		id     string
		typeID facility.TypeID
		count  int
		recipe string
	}{
		{"drill-1", "burner-mining-drill", 2, "iron-ore-mining"},
		{"drill-2", "burner-mining-drill", 1, "coal-mining"},
		{"furnace-1", "stone-furnace", 2, "iron-plate"},
		{"furnace-2", "stone-furnace", 1, "copper-plate"},
		{"boiler-1", "boiler", 1, ""},
		{"engine-1", "steam-engine", 2, ""},
		{"asm-1", "assembling-machine-1", 1, "iron-gear-wheel"},
	}
	for _, p := range layout {
		if _, err := e.PlaceFacility(p.id, p.typeID, p.count); err != nil {
			return err
		}
		if p.recipe != "" {
			if err := e.AssignRecipe(p.id, recipe.ID(p.recipe)); err != nil {
				return err
			}
		}
	}
	return nil
}

func printBalance(b power.Balance) {
	statusColor := color.New(color.FgGreen, color.Bold)
	if b.Status == power.StatusDeficit {
		statusColor = color.New(color.FgRed, color.Bold)
	}
	fmt.Println("\n⚡ Power Grid:")
	fmt.Printf("   Generation: %.0f kW / capacity %.0f kW\n", b.ActualGeneration, b.GenerationCapacity)
	fmt.Printf("   Demand:     %.0f kW (satisfied %.0f%%)\n", b.ConsumptionDemand, b.SatisfactionRatio*100)
	statusColor.Printf("   Status:     %s\n", b.Status)
}

func printFacilities(e *sim.Engine) {
	fmt.Println("\n🏭 Facilities:")
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"ID", "Type", "Count", "Status", "Efficiency", "Recipe", "Progress", "Fuel"}),
	)
	for _, inst := range e.Instances() {
		rec, prog := "-", "-"
		if inst.Production != nil {
			rec = string(inst.Production.RecipeID)
			prog = fmt.Sprintf("%.0f%%", inst.Production.Progress*100)
		}
		fuelCell := "-"
		if b := e.Fuel().Buffer(inst.ID); b != nil {
			slot := b.Slots[0]
			if slot.Empty() {
				fuelCell = "empty"
			} else {
				fuelCell = fmt.Sprintf("%dx %s", slot.Quantity, slot.ItemID)
			}
		}
		table.Append([]string{
			inst.ID,
			string(inst.TypeID),
			fmt.Sprintf("%d", inst.Count),
			inst.Status.String(),
			fmt.Sprintf("%.0f%%", inst.Efficiency*100),
			rec,
			prog,
			fuelCell,
		})
	}
	table.Render()
}

func printQueue(q *craft.Queue) {
	fmt.Printf("\n📋 Crafting Queue (%d tasks):\n", q.Len())
	if q.Len() == 0 {
		fmt.Println("   empty")
		return
	}
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Task", "Item", "Qty", "Status", "Progress", "Chain"}),
	)
	for _, t := range q.Tasks() {
		chain := "-"
		if t.ChainID != "" {
			chain = t.ChainID[:8]
			if t.Intermediate {
				chain += " (step)"
			}
		}
		table.Append([]string{
			t.ID[:8],
			string(t.ItemID),
			fmt.Sprintf("%d", t.Quantity),
			t.Status.String(),
			fmt.Sprintf("%.0f%%", t.Progress),
			chain,
		})
	}
	table.Render()
}

func printInventory(s *item.Store) {
	fmt.Println("\n📦 Inventory:")
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Item", "Amount"}),
	)
	for _, id := range s.SortedIDs() {
		table.Append([]string{string(id), fmt.Sprintf("%d", s.GetAmount(id))})
	}
	table.Render()
}
