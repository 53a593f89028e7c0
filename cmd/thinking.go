package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var thinkingCmd = &cobra.Command{
	Use:   "thinking [on|off]",
	Short: "Show or set the global thinking display mode",
	Long: `Without an argument, prints whether thinking mode is enabled. With "on"
or "off", sets the flag and saves it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runThinking,
}

func init() {
	rootCmd.AddCommand(thinkingCmd)
}

func runThinking(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		state := "off"
		if store.Thinking {
			state = "on"
		}
		fmt.Printf("thinking: %s\n", state)
		return nil
	}

	switch args[0] {
	case "on":
		store.Thinking = true
	case "off":
		store.Thinking = false
	default:
		return fmt.Errorf("invalid argument %q: expected on or off", args[0])
	}

	if err := store.Save(); err != nil {
		return err
	}
	printSuccess("thinking %s", args[0])
	return nil
}
