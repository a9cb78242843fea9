package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"markhub-hq/custodian/pkg/cli"
	"markhub-hq/custodian/pkg/config"
	"markhub-hq/custodian/pkg/lifecycle/archive"
	"markhub-hq/custodian/pkg/lifecycle/retention"
	"markhub-hq/custodian/pkg/lifecycle/rotation"
)

var statusFlags struct {
	output string
}

// classStatus is the effective retention and live-file state for one log
// class.
type classStatus struct {
	Class         string    `json:"class"`
	BaseDays      int       `json:"base_days"`
	EffectiveDays int       `json:"effective_days"`
	Cutoff        time.Time `json:"cutoff"`
	LiveFile      string    `json:"live_file"`
	LiveSize      int64     `json:"live_size,omitempty"`
	LiveModified  time.Time `json:"live_modified,omitempty"`
}

// statusReport is the payload of the status command.
type statusReport struct {
	Environment   string        `json:"environment"`
	LogDirectory  string        `json:"log_directory"`
	EngineBinary  string        `json:"engine_binary"`
	StateFile     string        `json:"state_file"`
	StateReady    bool          `json:"state_ready"`
	StateError    string        `json:"state_error,omitempty"`
	ArchiveCount  int64         `json:"archive_count,omitempty"`
	ArchivedTo    string        `json:"archived_to,omitempty"`
	Retention     []classStatus `json:"retention"`
	MaxTotalSize  string        `json:"max_total_size,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show effective retention policy and state store readiness",
	Long: `Show the effective retention policy per log class, with the environment
multiplier already applied, plus the rotation state store's readiness and
the archive index size when archiving is enabled.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusFlags.output, "output", "o", "text", "output format (text, json)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := initCommand()
	if err != nil {
		return err
	}

	policy, err := retention.NewPolicy(cfg)
	if err != nil {
		return cli.NewCommandError("status", err)
	}

	report := statusReport{
		Environment:  cfg.Environment,
		LogDirectory: cfg.Logs.Directory,
		EngineBinary: cfg.Rotation.EngineBinary,
		StateFile:    cfg.Rotation.StateFile,
		StateReady:   true,
		MaxTotalSize: cfg.Retention.MaxTotalSize,
	}

	store := rotation.NewStateStore(cfg.Rotation.StateFile)
	if err := store.EnsureReady(); err != nil {
		report.StateReady = false
		report.StateError = err.Error()
	}

	now := time.Now()
	for _, class := range cfg.Logs.Classes {
		base, ok := cfg.Retention.Days[class]
		if !ok {
			base = cfg.Retention.DefaultDays
		}
		cs := classStatus{
			Class:         class,
			BaseDays:      base,
			EffectiveDays: policy.RetentionDays(class),
			Cutoff:        policy.CutoffFor(class, now),
			LiveFile:      fmt.Sprintf("%s_%s.log", class, cfg.Environment),
		}
		if info, err := os.Stat(filepath.Join(cfg.Logs.Directory, cs.LiveFile)); err == nil {
			cs.LiveSize = info.Size()
			cs.LiveModified = info.ModTime()
		}
		report.Retention = append(report.Retention, cs)
	}

	if cfg.Archive.Enabled {
		report.ArchivedTo = cfg.Archive.Directory
		if idx, err := archive.OpenIndex(cfg.Archive.IndexPath); err == nil {
			if count, err := idx.Count(context.Background()); err == nil {
				report.ArchiveCount = count
			}
			idx.Close()
		}
	}

	if cli.OutputFormat(statusFlags.output) == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, report)
	}

	fmt.Printf("environment:   %s\n", report.Environment)
	fmt.Printf("log directory: %s\n", report.LogDirectory)
	fmt.Printf("engine:        %s\n", report.EngineBinary)
	if report.StateReady {
		fmt.Printf("state file:    %s (ready)\n", report.StateFile)
	} else {
		fmt.Printf("state file:    %s (UNREADABLE: %s)\n", report.StateFile, report.StateError)
	}
	if cfg.Archive.Enabled {
		fmt.Printf("archive:       %s (%d artifacts indexed)\n", report.ArchivedTo, report.ArchiveCount)
	}
	if report.MaxTotalSize != "" {
		fmt.Printf("size bound:    %s\n", report.MaxTotalSize)
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CLASS\tBASE DAYS\tEFFECTIVE DAYS\tCUTOFF\tLIVE FILE\tSIZE\tMODIFIED")
	for _, c := range report.Retention {
		size, modified := "-", "-"
		if !c.LiveModified.IsZero() {
			size = config.FormatSize(c.LiveSize)
			modified = c.LiveModified.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
			c.Class, c.BaseDays, c.EffectiveDays, c.Cutoff.Format("2006-01-02"),
			c.LiveFile, size, modified)
	}
	return w.Flush()
}
