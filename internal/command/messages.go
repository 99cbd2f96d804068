package command

// User-facing strings.
const (
	titleError  = "error"
	titleNotice = "notice"

	msgEncoding         = "Encoding"
	msgEnterLineNumber  = "Enter line number"
	msgEnterFileName    = "Enter file name"
	msgNewFile          = "new file"
	msgOpenRecent       = "Open recent"
	msgClear            = "clear"
	msgRename           = "Rename"
	msgSyntax           = "Syntax"
	msgFileRenamed      = "file renamed"
	msgFileSaved        = "file saved"
	msgFolderAdded      = "folder added"
	msgFileNotSupported = "file is not supported"
	msgUnableToOpenFile = "unable to open file"
	msgUnableToOpenDir  = "unable to open folder"
	msgUnableToRename   = "unable to rename"
	msgUnableToSave     = "unable to save file"
	msgUnsupportedCodec = "unsupported encoding"
	msgReadOnly         = "file is read-only"
	msgSyntaxErrors     = "%s: %d syntax error(s)"

	iconClear = "icon clearclose"
)
