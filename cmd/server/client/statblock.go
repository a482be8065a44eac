package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var statBlockVersion int

var statBlockCmd = &cobra.Command{
	Use:   "statblock [creature|item] [id]",
	Short: "Render the stat block of a stored creature or item",
	Args:  cobra.ExactArgs(2),
	RunE:  showStatBlock,
}

func init() {
	statBlockCmd.Flags().IntVar(&statBlockVersion, "version", 0, "older version to render")
}

func showStatBlock(cmd *cobra.Command, args []string) error {
	var collection string
	switch args[0] {
	case "creature":
		collection = "creatures"
	case "item":
		collection = "items"
	default:
		return fmt.Errorf("unknown record kind %q, expected creature or item", args[0])
	}

	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[1])
	}

	path := fmt.Sprintf("/v1alpha1/%s/%d/statblock?format=markdown", collection, id)
	if statBlockVersion > 0 {
		path += fmt.Sprintf("&version=%d", statBlockVersion)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	md, err := newAPIClient().markdown(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to fetch stat block: %w", err)
	}
	return renderMarkdown(cmd.OutOrStdout(), md, rawOutput)
}
