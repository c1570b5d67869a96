// Package main is the entry point for the keywarden CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/keywarden/keywarden/internal/keybind"
	"github.com/keywarden/keywarden/internal/profile"
	"github.com/keywarden/keywarden/internal/settings"
	"github.com/keywarden/keywarden/internal/store"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "keywarden",
		Short:   "keywarden — live terminal keybinding interception",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	root.AddCommand(
		runCmd(),
		initCmd(),
		statusCmd(),
		keysCmd(),
		profilesCmd(),
	)

	return root
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the interactive workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create keywarden.toml in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			path, err := settings.InitFile(dir)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s\n", path)
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show a summary of the most recent session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showStatus()
		},
	}
}

func keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Inspect and change keybindings",
	}
	cmd.AddCommand(keysListCmd(), keysSetCmd(), keysResetCmd())
	return cmd
}

func keysListCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every action with its bound combo",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openSettings()
			if err != nil {
				return err
			}
			if asJSON {
				out, err := formatKeysJSON(st.Keymap())
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			}
			fmt.Print(formatKeysList(st.Keymap()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit machine-readable JSON")
	return cmd
}

func keysSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <action> <combo>",
		Short: "Bind an action to a key combination",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := keybind.ParseAction(args[0])
			if err != nil {
				return err
			}
			combo, err := keybind.ParseCombo(args[1])
			if err != nil {
				return err
			}

			st, _, err := openSettings()
			if err != nil {
				return err
			}
			conflicts, err := st.SetBinding(action, combo)
			if err != nil {
				return err
			}
			fmt.Printf("%s bound to %s\n", action, combo)
			for _, other := range conflicts {
				fmt.Printf("  warning: %s was already bound to %s\n", other, combo)
			}
			return nil
		},
	}
}

func keysResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset [action]",
		Short: "Restore an action (or every action) to its default combo",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			if !all && len(args) == 0 {
				return errors.New("pass an action name or --all")
			}

			st, _, err := openSettings()
			if err != nil {
				return err
			}

			actions := keybind.Actions()
			if !all {
				action, parseErr := keybind.ParseAction(args[0])
				if parseErr != nil {
					return parseErr
				}
				actions = []keybind.Action{action}
			}
			for _, action := range actions {
				if err := st.ResetBinding(action); err != nil {
					return err
				}
				fmt.Printf("%s reset to %s\n", action, st.Keymap().Lookup(action))
			}
			return nil
		},
	}
	cmd.Flags().Bool("all", false, "reset every action")
	return cmd
}

func profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage keymap profiles",
	}
	cmd.AddCommand(profilesListCmd(), profilesApplyCmd(), profilesNewCmd())
	return cmd
}

func profilesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List builtin and user profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cfgDir, err := openSettings()
			if err != nil {
				return err
			}
			profiles, err := profile.List(profileDir(st, cfgDir))
			if err != nil {
				return err
			}
			fmt.Print(formatProfilesList(profiles))
			return nil
		},
	}
}

func profilesApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <name>",
		Short: "Replace the current keybindings with a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cfgDir, err := openSettings()
			if err != nil {
				return err
			}
			p, err := profile.Load(profileDir(st, cfgDir), args[0])
			if err != nil {
				return err
			}
			if err := profile.Apply(st, p); err != nil {
				return err
			}
			fmt.Printf("Applied profile %s\n", p.Name)
			return nil
		},
	}
}

func profilesNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Save the current keybindings as a new profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cfgDir, err := openSettings()
			if err != nil {
				return err
			}
			path, err := profile.New(profileDir(st, cfgDir), args[0], st.Get().Config.Keybindings)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s\n", path)

			editor := os.Getenv("EDITOR")
			if editor == "" {
				return nil
			}
			return openEditor(editor, path)
		},
	}
}

// showStatus summarizes the newest session log.
func showStatus() error {
	st, cfgDir, err := openSettings()
	if err != nil {
		return err
	}
	logDir := filepath.Join(cfgDir, st.Get().Config.Log.Dir)

	path, err := store.LatestSession(logDir)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Println("No sessions recorded yet. Run 'keywarden' first.")
		return nil
	}
	if err != nil {
		return err
	}
	entries, err := store.ReadSession(path)
	if err != nil {
		return err
	}
	fmt.Print(formatStatus(store.Summarize(path, entries)))
	return nil
}

// profileDir resolves the configured profile directory relative to the
// config file.
func profileDir(st *settings.Store, cfgDir string) string {
	dir := st.Get().Config.Profiles.Dir
	if dir == "" {
		dir = "profiles"
	}
	return filepath.Join(cfgDir, dir)
}

// openEditor launches the given editor with the file path, connecting stdio.
func openEditor(editor, path string) error {
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
