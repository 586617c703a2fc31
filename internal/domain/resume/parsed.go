package resume

import "errors"

var (
	ErrInvalidFileType   = errors.New("invalid file type")
	ErrPasswordProtected = errors.New("document is password protected")
	ErrUnparseable       = errors.New("document could not be parsed")
	ErrTooLarge          = errors.New("document too large")
	ErrUnavailable       = errors.New("resume extraction unavailable")
)

type Document struct {
	Filename string
	Data     []byte
}

// Parsed is what the extraction service could read from a resume. Every
// field is optional.
type Parsed struct {
	Name       string       `json:"name,omitempty"`
	Email      string       `json:"email,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

type Experience struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	School       string `json:"school,omitempty"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartYear    int    `json:"start_year,omitempty"`
	EndYear      int    `json:"end_year,omitempty"`
}
