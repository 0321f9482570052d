package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rulesExportPath string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and export the rule set",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the active rule set",
	RunE:  runRulesList,
}

var rulesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active rule set to a JSON file",
	RunE:  runRulesExport,
}

func init() {
	rulesExportCmd.Flags().StringVar(&rulesExportPath, "out", "rules.json", "output file path")

	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesExportCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	defer log.Sync()

	rules := loadRuleSet(cfg, log)

	fmt.Printf("%-28s %-13s %-20s %6s  %s\n", "NAME", "INTENT", "CATEGORY", "WEIGHT", "ENABLED")
	for _, r := range rules.Rules() {
		fmt.Printf("%-28s %-13s %-20s %6.1f  %v\n", r.Name, r.Intent, r.Category, r.Weight, r.Enabled)
	}
	return nil
}

func runRulesExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	defer log.Sync()

	rules := loadRuleSet(cfg, log)
	if err := rules.Save(rulesExportPath); err != nil {
		return err
	}
	fmt.Printf("Wrote %d rules to %s\n", rules.Len(), rulesExportPath)
	return nil
}
