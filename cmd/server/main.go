// Package main is the entry point for the pokedex-api gateway
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokedex-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "pokedex-api",
	Short: "Pokedex API gateway",
	Long:  `Pokedex API serves Pokémon species from PokeAPI, optionally with descriptions translated by FunTranslations.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
