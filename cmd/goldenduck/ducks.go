package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/golden-duck/internal/duck"
)

var ducksCmd = &cobra.Command{
	Use:   "ducks",
	Short: "List available ducks",
	Long:  `Shows the duck skins the client knows, with the id sent to the backend.`,
	Run:   runDucks,
}

func runDucks(_ *cobra.Command, _ []string) {
	fmt.Println("Available ducks:")
	fmt.Println()

	// Calculate column widths
	maxKeyLen := 3 // "Key" header
	for _, d := range duck.Catalog {
		if len(d.Key) > maxKeyLen {
			maxKeyLen = len(d.Key)
		}
	}

	fmt.Printf("  %-3s  %-*s  %s\n", "ID", maxKeyLen, "Key", "Name")
	fmt.Printf("  %-3s  %-*s  %s\n", "--", maxKeyLen, "---", "----")

	for _, d := range duck.Catalog {
		fmt.Printf("  %-3d  %-*s  %s\n", d.ID, maxKeyLen, d.Key, d.Name)
	}

	fmt.Println()
	fmt.Println("Run 'goldenduck play --duck <name>' to fly one.")
}
