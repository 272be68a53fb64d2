package constants

const (
	StatusNotFound     = "Ground check not found"
	StatusInvalidID    = "Invalid ground check ID"
	StatusInvalidDate  = "Tanggal must be a valid date in YYYY-MM-DD format"
	StatusInvalidToken = "Delete confirmation expired or already used"
	StatusSaveFailed   = "Unable to save ground check"
	StatusDeleteFailed = "Unable to delete ground check"
	StatusLoadFailed   = "Unable to load ground check"
	StatusExportFailed = "Unable to export ground check"
	StatusTooManyReqs  = "Too many requests"
)
