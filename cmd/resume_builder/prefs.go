package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/settings"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change locally stored preferences",
	Long:  "Show every preference stored in the preferences file, or set one with 'prefs set <key> <true|false>'.",
	Args:  cobra.NoArgs,
	RunE:  runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <true|false>",
	Short: "Set one preference",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrefsSet,
}

var prefsFile string

func init() {
	prefsCmd.PersistentFlags().StringVar(&prefsFile, "file", "", "Preferences file (overrides config and PREFERENCES_FILE)")
	prefsCmd.AddCommand(prefsSetCmd)
	rootCmd.AddCommand(prefsCmd)
}

func openPrefs(ctx context.Context) (*settings.Store, error) {
	path := prefsFile
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.PreferencesFile
	}
	store := settings.NewStore(&settings.FileBackend{Path: path})
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func runPrefsShow(cmd *cobra.Command, _ []string) error {
	store, err := openPrefs(cmdContext(cmd))
	if err != nil {
		return err
	}
	values, err := store.All()
	if err != nil {
		return err
	}
	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintPreferences(values)
		return nil
	}
	for _, key := range settings.Keys() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%t\n", key, values[key])
	}
	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("invalid value %q: expected true or false", args[1])
	}

	ctx := cmdContext(cmd)
	store, err := openPrefs(ctx)
	if err != nil {
		return err
	}
	if err := store.SetBool(args[0], value); err != nil {
		return err
	}
	if err := store.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s=%t\n", args[0], value)
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
