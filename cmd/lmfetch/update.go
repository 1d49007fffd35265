package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/blackcoderx/lmfetch/pkg/config"
	"github.com/blackcoderx/lmfetch/pkg/release"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newChecker is swapped in tests
var newChecker = release.NewGitHubChecker

func init() {
	updateCmd.Flags().String("repo", config.DefaultReleaseRepo, "GitHub repository (owner/name) to look for releases in")
	updateCmd.Flags().BoolP("yes", "y", false, "update without asking")
	_ = viper.BindPFlag(config.KeyReleaseRepo, updateCmd.Flags().Lookup("repo"))

	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update lmfetch to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		checker := newChecker(cfg.ReleaseRepo)
		latest, err := checker.Newer(version)
		if errors.Is(err, release.ErrDevBuild) {
			fmt.Fprintln(out, "You are running a development version of lmfetch. Update is not supported.")
			return nil
		}
		if err != nil {
			return err
		}

		if latest == nil {
			fmt.Fprintln(out, "Current version is the latest")
			return nil
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Fprint(out, "Do you want to update to ", latest.Version, "? (y/n): ")
			input, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if strings.TrimSpace(input) != "y" {
				return nil
			}
		}

		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("could not locate executable path: %w", err)
		}
		if err := checker.Apply(latest, exe); err != nil {
			return err
		}

		fmt.Fprintln(out, "Successfully updated to version", latest.Version)
		return nil
	},
}
