package domain

import "time"

// Kind names one entity collection. Each kind owns its own id space.
type Kind string

const (
	KindEmployee     Kind = "employee"
	KindDocument     Kind = "document"
	KindLibrary      Kind = "library"
	KindTraining     Kind = "training"
	KindChecklist    Kind = "checklist"
	KindTask         Kind = "task"
	KindNotification Kind = "notification"
	KindSkill        Kind = "skill"
	KindSetting      Kind = "notification_setting"
	KindPhase        Kind = "onboarding_phase"
	KindResource     Kind = "resource"
	KindProgress     Kind = "progress"
	KindFeedback     Kind = "feedback"
)

// Entity is implemented by every record held in a collection.
// WithID returns a copy carrying the given id; it never mutates the receiver.
type Entity[T any] interface {
	EntityID() int64
	WithID(id int64) T
}

type Employee struct {
	ID         int64    `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Position   string   `json:"position" yaml:"position"`
	Department string   `json:"department" yaml:"department"`
	Email      string   `json:"email" yaml:"email"`
	// Phone is digits only, e.g. "5551234567".
	Phone    string   `json:"phone" yaml:"phone"`
	Mentor   string   `json:"mentor" yaml:"mentor"`
	Progress int      `json:"progress" yaml:"progress"`
	Skills   []string `json:"skills" yaml:"skills"`
	// StartDate is "YYYY-MM-DD" or empty.
	StartDate string `json:"startDate" yaml:"startDate"`
}

func (e Employee) EntityID() int64 { return e.ID }

func (e Employee) WithID(id int64) Employee {
	e.ID = id
	e.Skills = append([]string(nil), e.Skills...)
	return e
}

// Document types detected from the uploaded file extension.
const (
	DocTypePDF         = "pdf"
	DocTypeImage       = "image"
	DocTypeSpreadsheet = "spreadsheet"
	DocTypeFile        = "file"
)

type Document struct {
	ID         int64  `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Type       string `json:"type" yaml:"type"`
	Size       string `json:"size" yaml:"size"`
	UploadedBy string `json:"uploadedBy" yaml:"uploadedBy"`
	UploadedAt string `json:"uploadedAt" yaml:"uploadedAt"`
	Category   string `json:"category" yaml:"category"`
	Content    string `json:"content" yaml:"content"`
}

func (d Document) EntityID() int64 { return d.ID }

func (d Document) WithID(id int64) Document {
	d.ID = id
	return d
}

// LibraryDocument is a document nested inside a resource library.
type LibraryDocument struct {
	ID         int64  `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Type       string `json:"type" yaml:"type"`
	Size       string `json:"size" yaml:"size"`
	UploadedAt string `json:"uploadedAt" yaml:"uploadedAt"`
}

type Library struct {
	ID          int64             `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Documents   []LibraryDocument `json:"documents" yaml:"documents"`
	// DocumentCount is derived from Documents; see WithDocuments.
	DocumentCount int `json:"documentCount" yaml:"documentCount"`
}

func (l Library) EntityID() int64 { return l.ID }

func (l Library) WithID(id int64) Library {
	l.ID = id
	return l.WithDocuments(l.Documents)
}

// WithDocuments returns a copy holding docs with DocumentCount recomputed.
func (l Library) WithDocuments(docs []LibraryDocument) Library {
	l.Documents = append([]LibraryDocument{}, docs...)
	l.DocumentCount = len(l.Documents)
	return l
}

// Training statuses.
const (
	TrainingUpcoming  = "upcoming"
	TrainingCompleted = "completed"
)

type Training struct {
	ID          int64  `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Date        string `json:"date" yaml:"date"`
	Time        string `json:"time" yaml:"time"`
	Location    string `json:"location" yaml:"location"`
	Instructor  string `json:"instructor" yaml:"instructor"`
	Attendees   int    `json:"attendees" yaml:"attendees"`
	Status      string `json:"status" yaml:"status"`
}

func (t Training) EntityID() int64 { return t.ID }

func (t Training) WithID(id int64) Training {
	t.ID = id
	return t
}

type Task struct {
	ID          int64  `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

func (t Task) EntityID() int64 { return t.ID }

func (t Task) WithID(id int64) Task {
	t.ID = id
	return t
}

type Checklist struct {
	ID    int64  `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Tasks []Task `json:"tasks" yaml:"tasks"`
	// Progress is derived from Tasks; see WithTasks.
	Progress int `json:"progress" yaml:"progress"`
}

func (c Checklist) EntityID() int64 { return c.ID }

func (c Checklist) WithID(id int64) Checklist {
	c.ID = id
	return c.WithTasks(c.Tasks)
}

// WithTasks returns a copy holding tasks with Progress recomputed.
func (c Checklist) WithTasks(tasks []Task) Checklist {
	c.Tasks = append([]Task{}, tasks...)
	done := 0
	for _, t := range c.Tasks {
		if t.Completed {
			done++
		}
	}
	c.Progress = Percent(done, len(c.Tasks))
	return c
}

// Notification types.
const (
	NotificationInfo     = "info"
	NotificationAlert    = "alert"
	NotificationReminder = "reminder"
	NotificationSuccess  = "success"
)

type Notification struct {
	ID      int64  `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Message string `json:"message" yaml:"message"`
	Type    string `json:"type" yaml:"type"`
	// Date is a local timestamp, "2006-01-02T15:04:05".
	Date string `json:"date" yaml:"date"`
	Read bool   `json:"read" yaml:"read"`
}

func (n Notification) EntityID() int64 { return n.ID }

func (n Notification) WithID(id int64) Notification {
	n.ID = id
	return n
}

type NotificationSetting struct {
	ID      int64  `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

type NotificationCategory struct {
	ID       int64                 `json:"id" yaml:"id"`
	Category string                `json:"category" yaml:"category"`
	Settings []NotificationSetting `json:"settings" yaml:"settings"`
}

func (c NotificationCategory) EntityID() int64 { return c.ID }

func (c NotificationCategory) WithID(id int64) NotificationCategory {
	c.ID = id
	c.Settings = append([]NotificationSetting{}, c.Settings...)
	return c
}

// OnboardingStep is either completed on Date or scheduled for Scheduled.
type OnboardingStep struct {
	ID        int64  `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
	Date      string `json:"date,omitempty" yaml:"date,omitempty"`
	Scheduled string `json:"scheduled,omitempty" yaml:"scheduled,omitempty"`
}

type OnboardingPhase struct {
	ID          int64            `json:"id" yaml:"id"`
	Title       string           `json:"title" yaml:"title"`
	Description string           `json:"description" yaml:"description"`
	Steps       []OnboardingStep `json:"steps" yaml:"steps"`
	Progress    int              `json:"progress" yaml:"progress"`
}

func (p OnboardingPhase) EntityID() int64 { return p.ID }

func (p OnboardingPhase) WithID(id int64) OnboardingPhase {
	p.ID = id
	return p.WithSteps(p.Steps)
}

// WithSteps returns a copy holding steps with Progress recomputed.
func (p OnboardingPhase) WithSteps(steps []OnboardingStep) OnboardingPhase {
	p.Steps = append([]OnboardingStep{}, steps...)
	done := 0
	for _, s := range p.Steps {
		if s.Completed {
			done++
		}
	}
	p.Progress = Percent(done, len(p.Steps))
	return p
}

// Complete reports whether every step in the phase is done.
func (p OnboardingPhase) Complete() bool { return p.Progress == 100 }

// Resource types.
const (
	ResourceDocument = "document"
	ResourceLink     = "link"
	ResourceContact  = "contact"
)

type Resource struct {
	ID          int64  `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
}

func (r Resource) EntityID() int64 { return r.ID }

func (r Resource) WithID(id int64) Resource {
	r.ID = id
	return r
}

type Course struct {
	Name     string `json:"name" yaml:"name"`
	Progress int    `json:"progress" yaml:"progress"`
}

// EmployeeProgress is the training report row for one employee.
type EmployeeProgress struct {
	ID      int64    `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Role    string   `json:"role" yaml:"role"`
	Avatar  string   `json:"avatar" yaml:"avatar"`
	Courses []Course `json:"courses" yaml:"courses"`
}

func (p EmployeeProgress) EntityID() int64 { return p.ID }

func (p EmployeeProgress) WithID(id int64) EmployeeProgress {
	p.ID = id
	p.Courses = append([]Course{}, p.Courses...)
	return p
}

// CompletedCourses counts courses at or above 100% progress.
func (p EmployeeProgress) CompletedCourses() int {
	n := 0
	for _, c := range p.Courses {
		if c.Progress >= 100 {
			n++
		}
	}
	return n
}

// Feedback is one submitted onboarding survey.
type Feedback struct {
	Rating      int       `json:"rating" yaml:"rating"`
	Feedback    string    `json:"feedback" yaml:"feedback"`
	SubmittedAt time.Time `json:"submittedAt" yaml:"submittedAt"`
}

// Percent returns round(100*done/total), or 0 for an empty set.
func Percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*done + total) / (2 * total)
}
