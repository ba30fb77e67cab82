package domain

// ResumeFile is an uploaded client resume, stored alongside the enrollment.
type ResumeFile struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"-"`
}
