package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "foundry",
		Short: "Factory production and resource simulation engine",
		Long: `Runs the factory simulation core: crafting queues, dependency
resolution, fuel buffers and the electrical grid, driven at a fixed tick
rate from YAML catalogs.`,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./configs/foundry.yaml", "path to config file")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newRecipesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
