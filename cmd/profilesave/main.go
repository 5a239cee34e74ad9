package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"profilesave/internal/app"
	"profilesave/internal/config"
	"profilesave/internal/profile"
	"profilesave/internal/prompt"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when none exists.
func loadConfig() (*config.Config, map[string]string, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.Load(defaults["config_path"], defaults["base_dir"])
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, defaults, nil
}

// newApp reads the config and creates a ProfileApp for user, or for the
// console session owner when user is empty. The caller must defer a.Close().
func newApp(user string) (*app.ProfileApp, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewProfileApp(cfg, user)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "profilesave [action=backup|restore path=DIR items=KEY,...]",
	Short: "Back up and restore per-user Office customizations",
	Long: `Back up and restore per-user Office customizations.

Called with key=value switches it runs one unattended backup or restore:

  profilesave action=backup path=D:\Backup items=Templates,Signatures

Unattended restores abort when an Office application is running.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		sw, err := parseSwitches(args)
		if err != nil {
			return err
		}

		a, err := newApp(sw.user)
		if err != nil {
			return err
		}
		defer a.Close()

		var report *profile.Report
		switch sw.action {
		case profile.ActionBackup:
			report, err = a.Backup(sw.path, sw.items)
		case profile.ActionRestore:
			report, err = a.Restore(sw.path, sw.items, profile.GuardAbort, nil)
		}
		printReport(cmd.OutOrStdout(), report)
		return err
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, defaults, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:      %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:       %s\n", cfg.LogDir)
		fmt.Printf("Backup Root:   %s\n", cfg.BackupRoot)
		fmt.Printf("Default Items: %s\n", strings.Join(cfg.DefaultItems, ","))
		fmt.Printf("Exclude:       %s\n", strings.Join(cfg.Copy.Exclude, ","))
		fmt.Printf("Applications:  %s\n", strings.Join(cfg.Guard.Applications, ","))
		fmt.Printf("History:       %s %s\n", cfg.History.Type, cfg.History.DataDir)
		return nil
	},
}

// backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy profile items into a backup directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		user, _ := cmd.Flags().GetString("user")
		itemList, _ := cmd.Flags().GetString("items")

		items, err := profile.ParseItemKeys(itemList)
		if err != nil {
			return err
		}

		a, err := newApp(user)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.Backup(path, items)
		printReport(cmd.OutOrStdout(), report)
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		return nil
	},
}

// restore command
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Copy profile items from a backup directory into the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		user, _ := cmd.Flags().GetString("user")
		itemList, _ := cmd.Flags().GetString("items")
		forceClose, _ := cmd.Flags().GetBool("force-close")
		yes, _ := cmd.Flags().GetBool("yes")

		items, err := profile.ParseItemKeys(itemList)
		if err != nil {
			return err
		}

		a, err := newApp(user)
		if err != nil {
			return err
		}
		defer a.Close()

		mode, confirm := guardMode(forceClose, yes, prompt.IsInteractive(os.Stdin), cmd.InOrStdin(), cmd.ErrOrStderr())
		report, err := a.Restore(path, items, mode, confirm)
		printReport(cmd.OutOrStdout(), report)
		if err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}
		return nil
	},
}

// items command
var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List supported items and whether they exist in the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")

		a, err := newApp(user)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Profile: %s\n\n", a.User())
		for _, d := range a.Catalog().Items() {
			mark := " "
			switch {
			case d.DetectErr != nil:
				mark = "!"
			case d.Detected:
				mark = "x"
			}
			fmt.Fprintf(out, "[%s] %-13s %-9s %s\n", mark, d.Key, d.Kind, d.SourcePath)
			if d.DetectErr != nil {
				fmt.Fprintf(out, "    %v\n", d.DetectErr)
			}
		}

		running, err := a.RunningApplications()
		if err != nil {
			return err
		}
		for _, p := range running {
			fmt.Fprintf(out, "\nrunning: %s (pid %d)", p.Name, p.PID)
		}
		if len(running) > 0 {
			fmt.Fprintln(out)
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View backup and restore history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		format, _ := cmd.Flags().GetString("format")

		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		h, err := app.OpenHistory(cfg)
		if err != nil {
			return err
		}
		defer h.Close()

		runs, err := h.ListRuns(limit)
		if err != nil {
			return err
		}
		return writeHistory(cmd.OutOrStdout(), runs, format)
	},
}

// guardMode picks how a restore treats running Office applications.
func guardMode(forceClose, yes, interactive bool, in io.Reader, out io.Writer) (profile.GuardMode, profile.Confirmer) {
	switch {
	case forceClose:
		return profile.GuardForceClose, nil
	case interactive || yes:
		return profile.GuardPrompt, func(q string) (bool, error) {
			return prompt.Confirm(prompt.Options{Yes: yes}, in, out, q)
		}
	default:
		return profile.GuardAbort, nil
	}
}

func printReport(w io.Writer, r *profile.Report) {
	if r == nil {
		return
	}
	for _, it := range r.Items {
		switch it.Outcome {
		case profile.OutcomeCopied:
			fmt.Fprintf(w, "%-13s %d file(s)\n", it.Key, it.Files)
		default:
			fmt.Fprintf(w, "%-13s %s: %s\n", it.Key, it.Outcome, it.Reason)
		}
	}
	fmt.Fprintf(w, "%s of %s: %d item(s), %d file(s)\n",
		r.Action, r.Root, len(r.Keys(profile.OutcomeCopied)), r.FileCount())
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	for _, c := range []*cobra.Command{backupCmd, restoreCmd} {
		c.Flags().StringP("path", "p", "", "Backup root directory (default: backup_root from config)")
		c.Flags().StringP("items", "i", "", "Comma-separated item keys (default: all)")
	}
	for _, c := range []*cobra.Command{backupCmd, restoreCmd, itemsCmd} {
		c.Flags().StringP("user", "u", "", "Account to operate on (default: console session owner)")
	}
	restoreCmd.Flags().Bool("force-close", false, "Terminate running Office applications without asking")
	restoreCmd.Flags().BoolP("yes", "y", false, "Answer yes to the close-applications prompt")

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show (0 for all)")
	historyCmd.Flags().StringP("format", "f", "text", "Output format: text or yaml")
}
