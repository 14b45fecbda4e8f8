package util

const (
	DateFormat = "2006-01-02"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 作业附件允许的 MIME 类型
const (
	MimeImage       = "image/"
	MimePDF         = "application/pdf"
	MimeText        = "text/plain"
	MimeWord        = "application/msword"
	MimeWordOpenXML = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)
