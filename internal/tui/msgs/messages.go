// Package msgs defines shared message types for TUI view transitions.
package msgs

// GoToListMsg returns to the task list.
type GoToListMsg struct{}

// OpenFormMsg opens the task form. An empty TaskID adds a new task.
type OpenFormMsg struct {
	TaskID string
}

// FormSubmittedMsg carries the raw form values.
type FormSubmittedMsg struct {
	TaskID   string
	Title    string
	Priority string
	Category string
	Tags     string
}

// PromptKind selects what a path prompt is for.
type PromptKind int

const (
	PromptImport PromptKind = iota
	PromptExport
)

// OpenPromptMsg opens the path prompt.
type OpenPromptMsg struct {
	Kind PromptKind
}

// PromptSubmittedMsg is sent when a path is entered.
type PromptSubmittedMsg struct {
	Kind  PromptKind
	Value string
}

// ImportReadMsg is sent once the import file has been read.
type ImportReadMsg struct {
	Path string
	Text string
	Err  error
}

// ExportDoneMsg is sent once the export file has been written.
type ExportDoneMsg struct {
	Path  string
	Count int
	Err   error
}

// CopyRequestMsg asks for the tasks JSON to be put on the clipboard.
type CopyRequestMsg struct{}

// CopiedMsg reports the outcome of a clipboard copy.
type CopiedMsg struct {
	Count int
	Err   error
}
