package constants

type (
	APIStatus   string
	TokenPrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	TokenPrefixUsedDelete TokenPrefix = "used_delete_token:"
)

const (
	// DateLayout is the only accepted format for the tanggal field.
	DateLayout = "2006-01-02"

	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)
