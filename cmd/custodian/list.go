package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"markhub-hq/custodian/pkg/cli"
	"markhub-hq/custodian/pkg/config"
	"markhub-hq/custodian/pkg/lifecycle/retention"
)

var listFlags struct {
	class  string
	output string
}

// listedArtifact is one rotated artifact as shown by the list command.
type listedArtifact struct {
	Name      string    `json:"name"`
	Class     string    `json:"class"`
	RotatedAt time.Time `json:"rotated_at"`
	Size      int64     `json:"size"`
	Expired   bool      `json:"expired"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List rotated artifacts in the log directory",
	Long: `List the rotated artifacts the cleanup pass would consider, newest
first, with each artifact's class, rotation date, and whether it is past
its retention cutoff. Live log files are not listed; they are never
eligible for cleanup.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listFlags.class, "class", "", "only show artifacts of this log class")
	listCmd.Flags().StringVarP(&listFlags.output, "output", "o", "text", "output format (text, json)")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := initCommand()
	if err != nil {
		return err
	}

	policy, err := retention.NewPolicy(cfg)
	if err != nil {
		return cli.NewCommandError("list", err)
	}

	entries, err := os.ReadDir(cfg.Logs.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("log directory does not exist; nothing to list")
			return nil
		}
		return cli.NewCommandError("list", fmt.Errorf("failed to read log directory %q: %w", cfg.Logs.Directory, err))
	}

	now := time.Now()
	var artifacts []listedArtifact
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		a, ok := retention.ParseArtifact(entry.Name(), info.Size(), info.ModTime())
		if !ok {
			continue
		}
		if listFlags.class != "" && a.Class != listFlags.class {
			continue
		}
		a.Path = filepath.Join(cfg.Logs.Directory, a.Name)
		artifacts = append(artifacts, listedArtifact{
			Name:      a.Name,
			Class:     a.Class,
			RotatedAt: a.RotatedAt,
			Size:      a.Size,
			Expired:   policy.Expired(a, now),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].RotatedAt.After(artifacts[j].RotatedAt)
	})

	if cli.OutputFormat(listFlags.output) == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, artifacts)
	}

	if len(artifacts) == 0 {
		fmt.Println("no rotated artifacts")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCLASS\tROTATED\tSIZE\tEXPIRED")
	for _, a := range artifacts {
		expired := ""
		if a.Expired {
			expired = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			a.Name, a.Class, a.RotatedAt.Format("2006-01-02"),
			config.FormatSize(a.Size), expired)
	}
	return w.Flush()
}
