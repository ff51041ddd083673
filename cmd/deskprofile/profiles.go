package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/micro-nova/deskprofile/internal/models"
)

var profilesCmd = &cobra.Command{
	Use:     "profiles",
	Aliases: []string{"profile", "p"},
	Short:   "Manage saved profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		profiles, appErr := a.ctrl.Profiles()
		if appErr != nil {
			return appErr
		}
		return printJSON(profiles)
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		p, appErr := a.ctrl.GetProfile(args[0])
		if appErr != nil {
			return appErr
		}
		return printJSON(p)
	},
}

var saveOpts struct {
	id           string
	name         string
	output       string
	input        string
	outputVolume uint32
	inputVolume  uint32
}

var profilesSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current display layout with the given audio settings",
	Long: `Captures the connected displays and stores them as a profile together with
the audio devices and volumes given as flags. An existing profile with the
same --id is replaced.`,
	Args: cobra.NoArgs,
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

		p := models.Profile{
			ID:       saveOpts.id,
			Name:     saveOpts.name,
			Displays: displays,
			AudioSettings: models.AudioSettings{
				OutputVolume: min(saveOpts.outputVolume, 100),
				InputVolume:  min(saveOpts.inputVolume, 100),
			},
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		if saveOpts.output != "" {
			p.AudioSettings.OutputDevice = models.StringPtr(saveOpts.output)
		}
		if saveOpts.input != "" {
			p.AudioSettings.InputDevice = models.StringPtr(saveOpts.input)
		}

		saved, appErr := a.ctrl.SaveProfile(cmd.Context(), p)
		if appErr != nil {
			return appErr
		}
		return printJSON(saved)
	},
}

var profilesDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a profile (unknown ids are ignored)",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		if appErr := a.ctrl.DeleteProfile(cmd.Context(), args[0]); appErr != nil {
			return appErr
		}
		return nil
	},
}

var profilesApplyCmd = &cobra.Command{
	Use:   "apply <id>",
	Short: "Apply a profile's display layout and audio settings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		result, appErr := a.ctrl.ApplyProfile(cmd.Context(), args[0])
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		if appErr != nil {
			return appErr
		}
		fmt.Printf("applied %s\n", args[0])
		return nil
	},
}

func init() {
	f := profilesSaveCmd.Flags()
	f.StringVar(&saveOpts.id, "id", "", "profile id (default: random UUID)")
	f.StringVar(&saveOpts.name, "name", "", "profile name")
	f.StringVar(&saveOpts.output, "output", "", "output device id (see 'deskprofile audio')")
	f.StringVar(&saveOpts.input, "input", "", "input device id")
	f.Uint32Var(&saveOpts.outputVolume, "output-volume", 50, "output volume 0-100")
	f.Uint32Var(&saveOpts.inputVolume, "input-volume", 50, "input volume 0-100")
	_ = profilesSaveCmd.MarkFlagRequired("name")

	profilesCmd.AddCommand(profilesListCmd, profilesShowCmd, profilesSaveCmd, profilesDeleteCmd, profilesApplyCmd)
	rootCmd.AddCommand(profilesCmd)
}
