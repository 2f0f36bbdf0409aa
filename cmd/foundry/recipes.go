package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/gravitas-games/foundry/internal/catalog"
	"github.com/gravitas-games/foundry/internal/config"
	"github.com/gravitas-games/foundry/internal/item"
	"github.com/gravitas-games/foundry/internal/recipe"
)

func newRecipesCmd() *cobra.Command {
	var itemID string
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "List the recipe catalog or inspect one item's cost",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load(configPath)
			if err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}
			cats, err := catalog.Load(cfg.Data.Items, cfg.Data.Recipes, cfg.Data.Facilities)
			if err != nil {
				log.Fatalf("Failed to load catalogs: %v", err)
			}
			if itemID != "" {
				inspectItem(cats.Recipes, item.ID(itemID))
				return
			}
			listRecipes(cats.Recipes)
		},
	}
	cmd.Flags().StringVar(&itemID, "item", "", "show cost breakdown for one item")
	return cmd
}

func listRecipes(idx *recipe.Index) {
	titleColor := color.New(color.FgCyan, color.Bold)
	titleColor.Printf("\n📖 Recipe Catalog (%d recipes)\n", idx.Count())

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Recipe", "Category", "Time", "Inputs", "Outputs", "Producers", "Flags"}),
	)
	for _, r := range idx.All() {
		table.Append([]string{
			string(r.ID),
			r.Category,
			fmt.Sprintf("%.1fs", r.Time),
			formatStacks(r.In),
			formatStacks(r.Out),
			strings.Join(r.Producers, ", "),
			r.Flags.String(),
		})
	}
	table.Render()
}

func inspectItem(idx *recipe.Index, id item.ID) {
	titleColor := color.New(color.FgCyan, color.Bold)
	titleColor.Printf("\n🔍 %s\n", id)

	producers := idx.ThatProduce(id)
	if len(producers) == 0 {
		fmt.Println("   no producing recipe (raw material)")
		return
	}
	for _, r := range producers {
		fmt.Printf("   produced by %s (%.1fs", r.ID, r.Time)
		if rate := r.OutputRate(id); rate > 0 {
			fmt.Printf(", %.2f/s", rate)
		}
		fmt.Println(")")
	}

	cost := idx.CostOf(id)
	fmt.Printf("\n   Complexity score: %d\n", idx.ComplexityScore(producers[0].ID))
	fmt.Println("\n   Cost per unit:")
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Kind", "Item", "Qty"}),
	)
	for _, in := range sortedKeys(cost.Direct) {
		table.Append([]string{"direct", string(in), fmt.Sprintf("%d", cost.Direct[in])})
	}
	for _, in := range sortedKeys(cost.Raw) {
		table.Append([]string{"raw", string(in), fmt.Sprintf("%d", cost.Raw[in])})
	}
	table.Render()

	if users := idx.ThatUse(id); len(users) > 0 {
		fmt.Println("\n   Used by:")
		for _, r := range users {
			fmt.Printf("     %s\n", r.ID)
		}
	}
}

func formatStacks(m map[item.ID]int) string {
	parts := make([]string, 0, len(m))
	for _, id := range sortedKeys(m) {
		parts = append(parts, fmt.Sprintf("%dx %s", m[id], id))
	}
	return strings.Join(parts, ", ")
}

func sortedKeys(m map[item.ID]int) []item.ID {
	keys := make([]item.ID, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
