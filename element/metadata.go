package element

// Metadata carries per-element context attached by the partitioners.
// Zero values mean "absent"; JSON output omits them.
type Metadata struct {
	// Filename is the name of the source document as the caller knows it,
	// never the name of a transient conversion artifact.
	Filename      string `json:"filename,omitempty"`
	FileDirectory string `json:"file_directory,omitempty"`

	// Filetype is the MIME tag of the original source format. For documents
	// that went through a format conversion this stays the legacy tag, not
	// the intermediate one.
	Filetype string `json:"filetype,omitempty"`

	// LastModified is an RFC 3339 timestamp, or empty when unknown.
	LastModified string `json:"last_modified,omitempty"`

	PageNumber int      `json:"page_number,omitempty"`
	Languages  []string `json:"languages,omitempty"`

	// Emphasis captured from the source formatting, parallel slices of
	// text runs and their tags ("b", "i").
	EmphasizedTextContents []string `json:"emphasized_text_contents,omitempty"`
	EmphasizedTextTags     []string `json:"emphasized_text_tags,omitempty"`

	// TextAsHTML holds an HTML rendering for Table elements.
	TextAsHTML string `json:"text_as_html,omitempty"`

	// SheetName is set on elements extracted from spreadsheet sheets.
	SheetName string `json:"sheet_name,omitempty"`
}
