package main

import (
	"github.com/spf13/cobra"
)

var displaysCmd = &cobra.Command{
	Use:   "displays",
	Short: "List connected displays",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		displays, appErr := a.ctrl.Displays(cmd.Context())
		if appErr != nil {
			return appErr
		}
		return printJSON(displays)
	},
}

var audioCmd = &cobra.Command{
	Use:   "audio",
	Short: "List audio devices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		devices, appErr := a.ctrl.AudioDevices(cmd.Context())
		if appErr != nil {
			return appErr
		}
		return printJSON(devices)
	},
}

func init() {
	rootCmd.AddCommand(displaysCmd)
	rootCmd.AddCommand(audioCmd)
}
