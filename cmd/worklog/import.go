package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nhle/worklog/internal/transfer"
)

var (
	flagImportType   string
	flagValidateType string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import data from an export archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := readArchiveFile(args[0])
		if err != nil {
			return err
		}

		im := transfer.NewImporter(app.store, app.log)

		var result *transfer.ImportResult
		switch flagImportType {
		case "full":
			result = im.Import(ctx, app.user.ID, data)
		case "worklog":
			result = im.ImportWorkLogData(ctx, app.user.ID, data)
		case "system":
			if err := requireAdmin(); err != nil {
				return err
			}
			result = im.ImportSystemData(ctx, app.user.ID, data)
		default:
			return fmt.Errorf("unknown import type %q, expected full, worklog, or system", flagImportType)
		}

		printResult(result)
		if !result.Success {
			return fmt.Errorf("import failed")
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Inspect an export archive without importing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readArchiveFile(args[0])
		if err != nil {
			return err
		}

		expected, err := exportTypeFor(flagValidateType)
		if err != nil {
			return err
		}

		im := transfer.NewImporter(app.store, app.log)
		result := im.Validate(data, expected)

		printResult(result)
		if !result.Success {
			return fmt.Errorf("archive is not valid")
		}
		return nil
	},
}

// readArchiveFile loads an archive from disk, enforcing the configured
// size cap before any parsing happens.
func readArchiveFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", path, err)
	}
	if limit := app.cfg.Export.MaxArchiveMB * 1024 * 1024; len(data) > limit {
		return nil, fmt.Errorf("archive is %s, larger than the %s limit",
			humanize.Bytes(uint64(len(data))), humanize.Bytes(uint64(limit)))
	}
	return data, nil
}

func exportTypeFor(name string) (string, error) {
	switch name {
	case "full":
		return transfer.ExportTypeFull, nil
	case "worklog":
		return transfer.ExportTypeWorkLog, nil
	case "system":
		return transfer.ExportTypeSystem, nil
	}
	return "", fmt.Errorf("unknown type %q, expected full, worklog, or system", name)
}

func printResult(result *transfer.ImportResult) {
	fmt.Println(result.Message)

	s := result.Statistics
	if created, skipped := s.ProjectsCreated+s.DepartmentsCreated+s.WorkTypesCreated+s.ProcessStatusesCreated+s.TodoCategoriesCreated,
		s.ProjectsSkipped+s.DepartmentsSkipped+s.WorkTypesSkipped+s.ProcessStatusesSkipped+s.TodoCategoriesSkipped; created+skipped > 0 {
		fmt.Printf("Reference data: %d created, %d already present\n", created, skipped)
	}
	if s.WorkLogsImported+s.WorkLogsFailed > 0 {
		fmt.Printf("Work logs: %d imported, %d failed\n", s.WorkLogsImported, s.WorkLogsFailed)
	}
	if s.TodosImported+s.TodosFailed > 0 {
		fmt.Printf("Todos: %d imported, %d failed (%d subtasks, %d comments, %d attachments)\n",
			s.TodosImported, s.TodosFailed, s.SubTasksImported, s.CommentsImported, s.AttachmentsImported)
	}

	for _, w := range result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Printf("error: %s\n", e)
	}
}

func init() {
	importCmd.Flags().StringVarP(&flagImportType, "type", "t", "full", "Import type: full, worklog, or system")
	validateCmd.Flags().StringVarP(&flagValidateType, "type", "t", "full", "Expected archive type: full, worklog, or system")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(validateCmd)
}
