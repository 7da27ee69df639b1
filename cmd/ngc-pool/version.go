package main

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version is the semantic version of the CLI. It can be overridden at build
// time via -ldflags.
var Version = "0.1.0-dev"

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of ngc-pool",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadSettings(cmd); err != nil {
			return err
		}
		banner, err := versionBanner(Version)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ngc-pool %s\n", banner)
		return nil
	},
}

// versionBanner colors the components of a semantic version
func versionBanner(version string) (string, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return "", fmt.Errorf("invalid version %q: %w", version, err)
	}
	banner := versionMajorColor.Sprint(v.Major()) + "." +
		versionMinorColor.Sprint(v.Minor()) + "." +
		versionPatchColor.Sprint(v.Patch())
	if pre := v.Prerelease(); pre != "" {
		banner += "-" + pre
	}
	if meta := v.Metadata(); meta != "" {
		banner += "+" + meta
	}
	return banner, nil
}
