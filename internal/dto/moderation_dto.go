package dto

type FileReportRequest struct {
	ContentKind string `json:"content_kind"`
	ContentID   string `json:"content_id"`
	Reason      string `json:"reason"`
}
