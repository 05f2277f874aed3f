package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/unitedstates/uscode/pkg/batch"
	"github.com/unitedstates/uscode/pkg/group"
	"github.com/unitedstates/uscode/pkg/model"
	"github.com/unitedstates/uscode/pkg/profile"
	"github.com/unitedstates/uscode/pkg/tree"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "uscode",
		Short: "US Code locator file parser",
		Long: `uscode reads GPO locator files of the United States Code and
rebuilds their structure.

It decodes the control-coded lines, groups them into titles, chapters and
sections, and infers the nested paragraph tree of each section from its
enumeration labels.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("profile", "", "Locator profile YAML (default: built-in US Code profile)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log placement decisions and other debug output")

	rootCmd.AddCommand(linesCmd())
	rootCmd.AddCommand(groupsCmd())
	rootCmd.AddCommand(treeCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(profilesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func sessionFor(cmd *cobra.Command) (*session, error) {
	profilePath, _ := cmd.Flags().GetString("profile")
	verbose, _ := cmd.Flags().GetBool("verbose")
	return newSession(profilePath, verbose)
}

func linesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lines FILE",
		Short: "Print the decoded lines of a locator file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFor(cmd)
			if err != nil {
				return err
			}
			lines, skipped, err := s.readLines(args[0])
			if err != nil {
				return err
			}

			for _, line := range lines {
				fmt.Printf("%-6s %q\n", line.CodeArg(), line.Text)
			}
			fmt.Fprintf(os.Stderr, "%d lines, %d skipped\n", len(lines), skipped)
			return nil
		},
	}
}

func groupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups FILE",
		Short: "Print the document grouping of a locator file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFor(cmd)
			if err != nil {
				return err
			}
			f, err := s.load(args[0])
			if err != nil {
				return err
			}

			for i, doc := range f.Documents {
				fmt.Printf("%4d  %-10s %-6s %d lines\n", i, model.KindOf(doc), docID(doc), doc.Len())
				for _, key := range doc.Keys() {
					fmt.Printf("        %-30q x%d\n", key.String(), len(doc.Docs[key]))
				}
			}
			fmt.Printf("\nTotal: %d documents, %d sections\n", len(f.Documents), len(f.Sections()))
			return nil
		},
	}
}

func docID(doc *group.Document) string {
	if doc.ID == (group.Key{}) {
		return "-"
	}
	return doc.ID.String()
}

func treeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the paragraph tree of one section",
		Long: `Build and print the paragraph tree of one section.

Example:
  uscode tree usc08.txt --section 1101
  uscode tree usc08.txt.xz --section 1101 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, _ := cmd.Flags().GetString("section")
			asJSON, _ := cmd.Flags().GetBool("json")

			if number == "" {
				return fmt.Errorf("--section flag is required")
			}

			s, err := sessionFor(cmd)
			if err != nil {
				return err
			}
			f, err := s.load(args[0])
			if err != nil {
				return err
			}
			section, ok := f.Section(number)
			if !ok {
				return fmt.Errorf("section %s not found in %s", number, args[0])
			}

			if asJSON {
				data, err := section.JSONWith(tree.WithRules(s.compiled.Rules), tree.WithLogger(s.log))
				if err != nil {
					return fmt.Errorf("section %s: %w", number, err)
				}
				fmt.Println(string(data))
				return nil
			}

			items, err := section.Items()
			if err != nil {
				return fmt.Errorf("section %s: %w", number, err)
			}
			builder := tree.NewBuilder(items, tree.WithRules(s.compiled.Rules), tree.WithLogger(s.log))
			t, err := builder.Build()
			if err != nil {
				return fmt.Errorf("section %s: %w", number, err)
			}

			name, _ := section.Name()
			fmt.Printf("§ %s. %s\n\n", number, name)
			if err := t.Render(os.Stdout); err != nil {
				return err
			}
			if pending := builder.PendingFootnotes(); len(pending) > 0 {
				fmt.Fprintf(os.Stderr, "unresolved footnotes: %s\n", strings.Join(pending, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringP("section", "s", "", "Section number")
	cmd.Flags().Bool("json", false, "Output the section as JSON")
	return cmd
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Build the tree of every section and report failures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, _ := cmd.Flags().GetInt("workers")
			failFast, _ := cmd.Flags().GetBool("fail-fast")
			asJSON, _ := cmd.Flags().GetBool("json")

			s, err := sessionFor(cmd)
			if err != nil {
				return err
			}
			f, err := s.load(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner := batch.NewRunner(batch.Config{Workers: workers, FailFast: failFast}, s.log,
				tree.WithRules(s.compiled.Rules))
			report := runner.Run(ctx, f.Sections())

			if asJSON {
				fmt.Println(batch.FormatReportJSON(report))
			} else {
				fmt.Print(batch.FormatReport(report))
			}
			if report.Failed > 0 && failFast {
				return fmt.Errorf("%d section(s) failed", report.Failed)
			}
			return nil
		},
	}

	cmd.Flags().IntP("workers", "w", batch.DefaultConfig().Workers, "Number of sections built concurrently")
	cmd.Flags().Bool("fail-fast", false, "Stop after the first failing section")
	cmd.Flags().Bool("json", false, "Output the report as JSON")
	return cmd
}

func profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles DIR",
		Short: "List the locator profiles in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetBool("watch")

			s, err := sessionFor(cmd)
			if err != nil {
				return err
			}

			registry := profile.NewRegistry(s.log)
			loadErr := registry.LoadDirectory(args[0])
			printProfiles(registry)
			if !watch {
				return loadErr
			}
			if loadErr != nil {
				fmt.Fprintln(os.Stderr, loadErr)
			}

			registry.SetOnChange(func(event string, p *profile.Profile) {
				fmt.Printf("\n%s:\n", event)
				printProfiles(registry)
			})
			if err := registry.Watch(); err != nil {
				return err
			}
			defer registry.StopWatch()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Printf("Watching %s (Ctrl-C to stop)\n", args[0])
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().Bool("watch", false, "Keep running and report profile changes")
	return cmd
}

func printProfiles(registry *profile.Registry) {
	fmt.Printf("%-20s %-10s %s\n", "NAME", "VERSION", "PATH")
	fmt.Println(strings.Repeat("─", 70))
	for _, p := range registry.List() {
		fmt.Printf("%-20s %-10s %s\n", p.Name, p.Version, p.Path)
	}
	fmt.Printf("\nTotal: %d profiles\n", registry.Count())
}
