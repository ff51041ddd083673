package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/micro-nova/deskprofile/internal/identity"
	"github.com/micro-nova/deskprofile/internal/maintenance"
	"github.com/micro-nova/deskprofile/internal/models"
)

// system backs the API's info and backup endpoints.
type system struct {
	app   *app
	maint *maintenance.Service
}

func (s *system) Info() models.Info {
	return identity.Collect(s.app.dataDir, s.app.settings.Helpers)
}

func (s *system) Backup() (string, error) {
	return s.maint.RunBackupNow()
}

func (s *system) Backups() ([]string, error) {
	return s.maint.ListBackups()
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show host information and helper availability",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		return printJSON(identity.Collect(a.dataDir, a.settings.Helpers))
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy profiles.json into the backups directory now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		maint := maintenance.New(a.dataDir, a.settings.Backup.KeepDays)
		if list, _ := cmd.Flags().GetBool("list"); list {
			files, err := maint.ListBackups()
			if err != nil {
				return err
			}
			return printJSON(files)
		}

		file, err := maint.RunBackupNow()
		if err != nil {
			return err
		}
		fmt.Println(file)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	backupCmd.Flags().Bool("list", false, "list existing backups instead of creating one")
	rootCmd.AddCommand(backupCmd)
}
