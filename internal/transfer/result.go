package transfer

// ImportStatistics accumulates per-category counters over one import call.
// Counters only ever increase; each call owns its own instance.
type ImportStatistics struct {
	ProjectsCreated        int `json:"projectsCreated"`
	ProjectsSkipped        int `json:"projectsSkipped"`
	DepartmentsCreated     int `json:"departmentsCreated"`
	DepartmentsSkipped     int `json:"departmentsSkipped"`
	WorkTypesCreated       int `json:"workTypesCreated"`
	WorkTypesSkipped       int `json:"workTypesSkipped"`
	ProcessStatusesCreated int `json:"processStatusesCreated"`
	ProcessStatusesSkipped int `json:"processStatusesSkipped"`
	TodoCategoriesCreated  int `json:"todoCategoriesCreated"`
	TodoCategoriesSkipped  int `json:"todoCategoriesSkipped"`

	WorkLogsImported int `json:"workLogsImported"`
	WorkLogsFailed   int `json:"workLogsFailed"`

	TodosImported       int `json:"todosImported"`
	TodosFailed         int `json:"todosFailed"`
	SubTasksImported    int `json:"subTasksImported"`
	CommentsImported    int `json:"commentsImported"`
	AttachmentsImported int `json:"attachmentsImported"`
}

// ImportResult is the structured outcome of a validate or import call.
// Warnings never block an import; errors from validation do.
type ImportResult struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Statistics ImportStatistics `json:"statistics"`
	Errors     []string         `json:"errors,omitempty"`
	Warnings   []string         `json:"warnings,omitempty"`
}
