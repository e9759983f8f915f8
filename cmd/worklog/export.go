package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nhle/worklog/internal/transfer"
)

var (
	flagExportType  string
	flagExportFrom  string
	flagExportTo    string
	flagAttachments bool
	flagExportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export data to a portable archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		from, err := parseDate(flagExportFrom)
		if err != nil {
			return err
		}
		to, err := parseDate(flagExportTo)
		if err != nil {
			return err
		}

		exp := transfer.NewExporter(app.store, app.log)

		var m *transfer.Manifest
		switch flagExportType {
		case "full":
			m, err = exp.ExportFull(ctx, app.user.ID, from, to, flagAttachments)
		case "worklog":
			m, err = exp.ExportWorkLogData(ctx, app.user.ID, from, to, flagAttachments)
		case "system":
			if err := requireAdmin(); err != nil {
				return err
			}
			m, err = exp.ExportSystemData(ctx, app.user.ID)
		default:
			return fmt.Errorf("unknown export type %q, expected full, worklog, or system", flagExportType)
		}
		if err != nil {
			return err
		}

		attachments, err := exp.LoadAttachmentData(ctx, m)
		if err != nil {
			return err
		}
		archive, err := exp.BuildArchive(m, attachments)
		if err != nil {
			return err
		}

		out := flagExportOut
		if out == "" {
			out = fmt.Sprintf("worklog-export-%s-%s.zip",
				time.Now().Format("20060102"), uuid.NewString()[:8])
		}
		if err := os.WriteFile(out, archive, 0o644); err != nil {
			return fmt.Errorf("writing archive %s: %w", out, err)
		}

		fmt.Printf("Exported %d work logs and %d todos to %s (%s)\n",
			len(m.WorkLogs), len(m.Todos), out, humanize.Bytes(uint64(len(archive))))
		return nil
	},
}

func requireAdmin() error {
	if !app.user.IsAdmin() {
		return fmt.Errorf("user %q is not an admin; system data requires the admin role", app.user.Username)
	}
	return nil
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportType, "type", "t", "full", "Export type: full, worklog, or system")
	exportCmd.Flags().StringVar(&flagExportFrom, "from", "", "Start date (YYYY-MM-DD, inclusive)")
	exportCmd.Flags().StringVar(&flagExportTo, "to", "", "End date (YYYY-MM-DD, inclusive)")
	exportCmd.Flags().BoolVarP(&flagAttachments, "attachments", "a", false, "Embed attachment files in the archive")
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output file (default worklog-export-<date>-<id>.zip)")
	rootCmd.AddCommand(exportCmd)
}
