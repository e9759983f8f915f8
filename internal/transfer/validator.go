package transfer

import (
	"fmt"
)

// Validate inspects archive bytes without touching the store. A malformed
// archive or manifest yields a failure result; a version or export-type
// mismatch only yields warnings, since the manifest parse is tolerant of
// both. The method never returns an error: every problem lands in the
// result.
func (im *Importer) Validate(archive []byte, expectedType string) *ImportResult {
	result := &ImportResult{}

	r, err := openArchive(archive)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("validation failed: %v", err))
		return result
	}
	m, err := decodeManifest(r)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("validation failed: %v", err))
		return result
	}

	if m.Version != FormatVersion {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("archive format version %q may not be compatible with %q", m.Version, FormatVersion))
	}
	if got := m.exportType(); got != expectedType {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("archive export type is %q, expected %q", got, expectedType))
	}

	result.Success = true
	result.Message = validationMessage(m)
	return result
}

// validationMessage summarizes what the archive holds. System archives
// report per-category lookup counts; everything else reports record counts.
func validationMessage(m *Manifest) string {
	if m.exportType() == ExportTypeSystem {
		ref := m.ReferenceData
		if ref == nil {
			ref = &ReferenceData{}
		}
		return fmt.Sprintf(
			"archive is valid: %d projects, %d departments, %d work types, %d process statuses, %d todo categories",
			len(ref.Projects), len(ref.Departments), len(ref.WorkTypes),
			len(ref.ProcessStatuses), len(ref.TodoCategories))
	}
	return fmt.Sprintf("archive is valid: %d work logs, %d todos", len(m.WorkLogs), len(m.Todos))
}
