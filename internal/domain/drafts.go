package domain

// Drafts are the user-edited form payloads. They carry validation tags
// consumed by internal/validation, and an optional label tag naming the
// field in messages. A draft is merged into a record only after it validates.

type EmployeeDraft struct {
	Name       string   `json:"name" validate:"required,max=50"`
	Position   string   `json:"position" validate:"required,max=50"`
	Department string   `json:"department" validate:"required,max=50"`
	Email      string   `json:"email" validate:"required,email,max=100"`
	Phone      string   `json:"phone" validate:"min=10,max=10,numeric" label:"Phone number"`
	Mentor     string   `json:"mentor"`
	Progress   int      `json:"progress" validate:"min=0,max=100"`
	Skills     []string `json:"skills"`
	StartDate  string   `json:"startDate" validate:"omitempty,isodate,notfuture"`
}

// Record builds the employee this draft describes (id left zero).
func (d EmployeeDraft) Record() Employee {
	skills := append([]string{}, d.Skills...)
	return Employee{
		Name:       d.Name,
		Position:   d.Position,
		Department: d.Department,
		Email:      d.Email,
		Phone:      d.Phone,
		Mentor:     d.Mentor,
		Progress:   d.Progress,
		Skills:     skills,
		StartDate:  d.StartDate,
	}
}

// DocumentDraft describes an upload. FileName supplies the extension and
// type; SizeBytes is reported in megabytes.
type DocumentDraft struct {
	Name       string `json:"name" validate:"required,max=100" label:"Document name"`
	Category   string `json:"category" validate:"required,max=50"`
	UploadDate string `json:"uploadDate" validate:"required,isodate,notfuture"`
	FileName   string `json:"fileName" validate:"required"`
	SizeBytes  int64  `json:"sizeBytes" validate:"min=0"`
}

type LibraryDraft struct {
	Name        string `json:"name" validate:"required,max=50" label:"Library name"`
	Description string `json:"description" validate:"max=200"`
}

type TrainingDraft struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=250"`
	Date        string `json:"date" validate:"required,isodate"`
	Time        string `json:"time" validate:"required"`
	Location    string `json:"location" validate:"required,max=100"`
	Instructor  string `json:"instructor" validate:"required,max=50"`
}

type TaskDraft struct {
	Description string `json:"description" validate:"required,max=100" label:"Task description"`
	Completed   bool   `json:"completed"`
}

type FeedbackDraft struct {
	Rating   int    `json:"rating" validate:"min=1,max=5"`
	Feedback string `json:"feedback" validate:"max=500"`
}
