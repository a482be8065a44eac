// Package main is the entry point for the rpg-forge server and tools
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-forge/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-forge",
	Short: "RPG Forge creature and item generator",
	Long:  `RPG Forge generates D&D 5e creatures and magic items with an LLM and serves them over HTTP and MCP.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
