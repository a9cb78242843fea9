package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"markhub-hq/custodian/pkg/cli"
	"markhub-hq/custodian/pkg/lifecycle/archive"
)

var archivesFlags struct {
	class  string
	limit  int
	output string
}

var archivesCmd = &cobra.Command{
	Use:   "archives",
	Short: "Query the archive index",
	Long: `Query the SQLite index of archived artifacts, most recently archived
first.

Examples:
  # Most recent archives
  custodian archives

  # Audit artifacts only
  custodian archives --class audit

  # Export as JSON
  custodian archives --output json --limit 500`,
	RunE: runArchives,
}

func init() {
	rootCmd.AddCommand(archivesCmd)

	archivesCmd.Flags().StringVar(&archivesFlags.class, "class", "", "only show artifacts of this log class")
	archivesCmd.Flags().IntVar(&archivesFlags.limit, "limit", 100, "maximum number of entries")
	archivesCmd.Flags().StringVarP(&archivesFlags.output, "output", "o", "text", "output format (text, json)")
}

func runArchives(cmd *cobra.Command, args []string) error {
	cfg, err := initCommand()
	if err != nil {
		return err
	}

	if !cfg.Archive.Enabled {
		return cli.NewConfigError("archive.enabled", "archiving is not enabled")
	}

	idx, err := archive.OpenIndex(cfg.Archive.IndexPath)
	if err != nil {
		return cli.NewCommandError("archives", err)
	}
	defer idx.Close()

	entries, err := idx.List(context.Background(), archivesFlags.class, archivesFlags.limit)
	if err != nil {
		return cli.NewCommandError("archives", err)
	}

	if cli.OutputFormat(archivesFlags.output) == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, entries)
	}

	if len(entries) == 0 {
		fmt.Println("no archived artifacts")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCLASS\tROTATED\tARCHIVED\tSIZE\tPATH")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			e.Name, e.Class,
			e.RotatedAt.Format("2006-01-02"),
			e.ArchivedAt.Format("2006-01-02"),
			e.Size, e.ArchivePath)
	}
	return w.Flush()
}
