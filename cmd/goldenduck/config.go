package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/golden-duck/internal/config"
)

var flagConfigDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the game tuning",
	Long: `Print the game tuning the client would use, as YAML.

The tuning is looked up in this order: --config, ~/.goldenduck/configs/duck.yaml,
./configs/duck.yaml, then the built-in defaults. Save the output of
--default as a starting point for your own file.

Examples:
  goldenduck config
  goldenduck config --default > ~/.goldenduck/configs/duck.yaml`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the built-in default file")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefault {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg := loadDuckConfig()
	out, err := yaml.Marshal(cfg)
	if err != nil {
		fail("encoding config: %v", err)
	}
	fmt.Print(string(out))

	b := loadBackend()
	token := "(not set)"
	if b.Token != "" {
		token = "(set)"
	}
	fmt.Fprintf(os.Stderr, "\n# backend: %s  token: %s  timeout: %s\n", b.APIURL, token, b.Timeout)
}
