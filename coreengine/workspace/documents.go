package workspace

// DocumentType classifies a claim document for viewer selection.
type DocumentType string

const (
	DocumentPDF   DocumentType = "pdf"
	DocumentImage DocumentType = "image"
	DocumentText  DocumentType = "text"
)

// Document is one uploaded artifact attached to a claim.
type Document struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Type       DocumentType `json:"type"`
	URL        string       `json:"url"`
	UploadedAt string       `json:"uploadedAt"`
}

// SampleDocuments returns the authored document set shown for every claim.
// Document upload is not modeled, so the set is shared.
func SampleDocuments() []Document {
	return []Document{
		{ID: "doc-1", Name: "FNOL_Form.pdf", Type: DocumentPDF, URL: "/sample-docs/fnol_form.pdf", UploadedAt: "15 Oct 2025, 23:42"},
		{ID: "doc-2", Name: "police_report.pdf", Type: DocumentPDF, URL: "/sample-docs/police_report.pdf", UploadedAt: "15 Oct 2025, 23:45"},
		{ID: "doc-3", Name: "repair_estimate.pdf", Type: DocumentPDF, URL: "/sample-docs/repair_estimate.pdf", UploadedAt: "15 Oct 2025, 23:47"},
		{ID: "doc-4", Name: "claimant_statement.txt", Type: DocumentText, URL: "/sample-docs/claimant_statement.txt", UploadedAt: "15 Oct 2025, 23:48"},
		{ID: "img-1", Name: "damage_front_1.png", Type: DocumentImage, URL: "/images/damage_front_1.png", UploadedAt: "15 Oct 2025, 23:50"},
		{ID: "img-2", Name: "damage_front_2.png", Type: DocumentImage, URL: "/images/damage_front_2.png", UploadedAt: "15 Oct 2025, 23:51"},
		{ID: "img-3", Name: "damage_headlight.png", Type: DocumentImage, URL: "/images/damage_headlight.png", UploadedAt: "15 Oct 2025, 23:52"},
		{ID: "img-4", Name: "damage_hood.png", Type: DocumentImage, URL: "/images/damage_hood.png", UploadedAt: "15 Oct 2025, 23:53"},
		{ID: "img-5", Name: "damage_side_view.png", Type: DocumentImage, URL: "/images/damage_side_view.png", UploadedAt: "15 Oct 2025, 23:54"},
	}
}
