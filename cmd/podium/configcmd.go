package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podium/internal/config"
	"podium/internal/debate"
)

var (
	listPoliticians bool
	listFormats     bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration, rosters, and formats",
	RunE:  showConfig,
}

func init() {
	configCmd.Flags().BoolVar(&listPoliticians, "list-politicians", false, "List the configured politician roster")
	configCmd.Flags().BoolVar(&listFormats, "list-formats", false, "List the supported debate formats")
}

func showConfig(cmd *cobra.Command, args []string) error {
	if listPoliticians {
		fmt.Println(headerStyle.Render("Politicians"))
		for _, info := range appConfig.Politicians {
			fmt.Printf("  %-10s %s\n", info.ID, info.Name)
		}
		return nil
	}

	if listFormats {
		fmt.Println(headerStyle.Render("Formats"))
		for _, name := range []debate.FormatName{debate.TownHall, debate.HeadToHead, debate.Panel} {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	fmt.Println(headerStyle.Render("Configuration"))
	fmt.Printf("  Config file:    %s\n", config.ConfigPath())
	fmt.Printf("  Data dir:       %s\n", appConfig.Paths.DataDir)
	fmt.Printf("  Knowledge dir:  %s\n", orNone(appConfig.Paths.KnowledgeDir))
	fmt.Printf("  Format:         %s\n", appConfig.Defaults.Format)
	fmt.Printf("  Max turns:      %d\n", appConfig.Defaults.MaxTurns)
	fmt.Printf("  Topic interval: %d\n", appConfig.Defaults.TopicInterval)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
