package util

const (
	StorageNone  = "none"
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeCSV         = "text/csv"
	MimePlainText   = "text/plain"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedCSVExtensions = []string{".csv"}
	AllowedCSVMimeTypes  = []string{MimePlainText, MimeCSV, MimeOctetStream}
)
