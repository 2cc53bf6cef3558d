// Package seed holds the sample data every session starts from.
package seed

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/csg33k/staffdesk/internal/domain"
)

// Data is one complete set of collections.
type Data struct {
	Employees     []domain.Employee             `json:"employees" yaml:"employees"`
	Mentors       []string                      `json:"mentors" yaml:"mentors"`
	Documents     []domain.Document             `json:"documents" yaml:"documents"`
	Libraries     []domain.Library              `json:"libraries" yaml:"libraries"`
	Trainings     []domain.Training             `json:"trainings" yaml:"trainings"`
	Checklists    []domain.Checklist            `json:"checklists" yaml:"checklists"`
	Progress      []domain.EmployeeProgress     `json:"progress" yaml:"progress"`
	Notifications []domain.Notification         `json:"notifications" yaml:"notifications"`
	Settings      []domain.NotificationCategory `json:"settings" yaml:"settings"`
	Phases        []domain.OnboardingPhase      `json:"phases" yaml:"phases"`
	Resources     []domain.Resource             `json:"resources" yaml:"resources"`
	// ActivePhase is the onboarding phase selected at start.
	ActivePhase int64 `json:"activePhase" yaml:"activePhase"`
}

// Load reads a YAML seed file. Sections absent from the file keep the
// defaults. Derived fields are recomputed regardless of what the file says.
func Load(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (Data, error) {
	d := Default()
	if err := yaml.NewDecoder(r).Decode(&d); err != nil && err != io.EOF {
		return Data{}, fmt.Errorf("decode seed: %w", err)
	}
	return d.normalize(), nil
}

// Encode writes d as YAML.
func (d Data) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

func (d Data) normalize() Data {
	for i, l := range d.Libraries {
		d.Libraries[i] = l.WithDocuments(l.Documents)
	}
	for i, c := range d.Checklists {
		d.Checklists[i] = c.WithTasks(c.Tasks)
	}
	for i, p := range d.Phases {
		d.Phases[i] = p.WithSteps(p.Steps)
	}
	return d
}

// Default returns a fresh copy of the built-in sample data.
func Default() Data {
	d := Data{
		Employees: []domain.Employee{
			{
				ID: 1, Name: "Alex Johnson", Position: "Software Developer", Department: "Engineering",
				Email: "alex.johnson@example.com", Phone: "5551234567", Mentor: "Sarah Williams",
				Progress: 75, Skills: []string{"JavaScript", "React", "Node.js"}, StartDate: "2023-01-15",
			},
			{
				ID: 2, Name: "Emily Davis", Position: "UX Designer", Department: "Design",
				Email: "emily.davis@example.com", Phone: "5559876543", Mentor: "Michael Brown",
				Progress: 60, Skills: []string{"UI/UX", "Figma", "User Research"}, StartDate: "2023-03-22",
			},
			{
				ID: 3, Name: "James Wilson", Position: "Product Manager", Department: "Product",
				Email: "james.wilson@example.com", Phone: "5554567890", Mentor: "Lisa Chen",
				Progress: 90, Skills: []string{"Product Strategy", "Agile", "Market Analysis"}, StartDate: "2022-11-10",
			},
		},
		Mentors: []string{"Sarah Williams", "Michael Brown", "Lisa Chen", "David Miller", "Jennifer Taylor"},
		Documents: []domain.Document{
			{
				ID: 1, Name: "Employee Handbook 2023.pdf", Type: domain.DocTypePDF, Size: "2.4 MB",
				UploadedBy: "Admin", UploadedAt: "2023-05-15", Category: "Policies",
				Content: "This comprehensive guide outlines all company policies, procedures, and expectations for employees. It includes information on benefits, time off, code of conduct, and more.",
			},
			{
				ID: 2, Name: "Onboarding Checklist.xlsx", Type: domain.DocTypeSpreadsheet, Size: "1.1 MB",
				UploadedBy: "HR Manager", UploadedAt: "2023-06-22", Category: "Onboarding",
				Content: "A detailed checklist for new employee onboarding, including IT setup, training requirements, paperwork, and introductory meetings.",
			},
			{
				ID: 3, Name: "Company Structure.png", Type: domain.DocTypeImage, Size: "3.7 MB",
				UploadedBy: "Admin", UploadedAt: "2023-04-10", Category: "Organization",
				Content: "An organizational chart showing the company's structure, departments, and reporting relationships.",
			},
			{
				ID: 4, Name: "Training Materials.pdf", Type: domain.DocTypePDF, Size: "5.2 MB",
				UploadedBy: "Training Manager", UploadedAt: "2023-07-05", Category: "Training",
				Content: "Training materials for new employees, including product knowledge, systems training, and company processes.",
			},
			{
				ID: 5, Name: "Benefits Overview.pdf", Type: domain.DocTypePDF, Size: "1.8 MB",
				UploadedBy: "HR Manager", UploadedAt: "2023-03-18", Category: "Benefits",
				Content: "An overview of employee benefits, including health insurance, retirement plans, and other perks offered by the company.",
			},
		},
		Libraries: []domain.Library{
			{ID: 1, Name: "HR Policies", Description: "Company policies and procedures", Documents: []domain.LibraryDocument{
				{ID: 1, Name: "Employee Handbook.pdf", Type: domain.DocTypePDF, Size: "2.4 MB", UploadedAt: "2023-05-15"},
				{ID: 2, Name: "Code of Conduct.pdf", Type: domain.DocTypePDF, Size: "1.2 MB", UploadedAt: "2023-04-10"},
				{ID: 3, Name: "Remote Work Policy.pdf", Type: domain.DocTypePDF, Size: "0.8 MB", UploadedAt: "2023-06-22"},
			}},
			{ID: 2, Name: "Training Materials", Description: "Resources for employee development", Documents: []domain.LibraryDocument{
				{ID: 1, Name: "New Hire Training.pdf", Type: domain.DocTypePDF, Size: "3.5 MB", UploadedAt: "2023-07-05"},
				{ID: 2, Name: "Leadership Development.pptx", Type: domain.DocTypeFile, Size: "4.2 MB", UploadedAt: "2023-06-15"},
				{ID: 3, Name: "Technical Skills Workshop.pdf", Type: domain.DocTypePDF, Size: "2.8 MB", UploadedAt: "2023-05-20"},
			}},
			{ID: 3, Name: "Onboarding Resources", Description: "Materials for new employees", Documents: []domain.LibraryDocument{
				{ID: 1, Name: "Welcome Guide.pdf", Type: domain.DocTypePDF, Size: "1.5 MB", UploadedAt: "2023-06-10"},
				{ID: 2, Name: "First Week Schedule.xlsx", Type: domain.DocTypeSpreadsheet, Size: "0.7 MB", UploadedAt: "2023-06-12"},
				{ID: 3, Name: "IT Setup Instructions.pdf", Type: domain.DocTypePDF, Size: "1.2 MB", UploadedAt: "2023-06-15"},
			}},
			{ID: 4, Name: "Technical Documentation", Description: "Technical guides and references", Documents: []domain.LibraryDocument{
				{ID: 1, Name: "API Documentation.pdf", Type: domain.DocTypePDF, Size: "4.5 MB", UploadedAt: "2023-05-25"},
				{ID: 2, Name: "System Architecture.png", Type: domain.DocTypeImage, Size: "2.3 MB", UploadedAt: "2023-04-18"},
				{ID: 3, Name: "Database Schema.pdf", Type: domain.DocTypePDF, Size: "3.1 MB", UploadedAt: "2023-06-05"},
			}},
		},
		Trainings: []domain.Training{
			{ID: 1, Title: "New Employee Orientation", Description: "Introduction to company policies and procedures",
				Date: "2023-08-15", Time: "09:00 - 12:00", Location: "Conference Room A", Instructor: "HR Team", Attendees: 8, Status: domain.TrainingUpcoming},
			{ID: 2, Title: "Leadership Development", Description: "Advanced leadership skills for managers",
				Date: "2023-08-22", Time: "13:00 - 17:00", Location: "Training Center", Instructor: "David Miller", Attendees: 12, Status: domain.TrainingUpcoming},
			{ID: 3, Title: "Technical Skills Workshop", Description: "Hands-on training for new software tools",
				Date: "2023-08-10", Time: "10:00 - 15:00", Location: "IT Lab", Instructor: "Tech Team", Attendees: 15, Status: domain.TrainingCompleted},
			{ID: 4, Title: "Customer Service Excellence", Description: "Best practices for customer interactions",
				Date: "2023-08-05", Time: "09:00 - 12:00", Location: "Conference Room B", Instructor: "Sarah Williams", Attendees: 10, Status: domain.TrainingCompleted},
		},
		Checklists: []domain.Checklist{
			{ID: 1, Title: "New Hire Onboarding", Tasks: []domain.Task{
				{ID: 1, Description: "Complete company orientation", Completed: true},
				{ID: 2, Description: "Set up workstation and accounts", Completed: true},
				{ID: 3, Description: "Review employee handbook", Completed: true},
				{ID: 4, Description: "Meet with department team"},
				{ID: 5, Description: "Complete required training modules"},
				{ID: 6, Description: "Schedule 30-day check-in"},
			}},
			{ID: 2, Title: "Project Management Certification", Tasks: []domain.Task{
				{ID: 1, Description: "Complete online course modules", Completed: true},
				{ID: 2, Description: "Submit practice assignments", Completed: true},
				{ID: 3, Description: "Participate in group discussions"},
				{ID: 4, Description: "Take practice exams"},
				{ID: 5, Description: "Schedule certification exam"},
			}},
			{ID: 3, Title: "Technical Skills Development", Tasks: []domain.Task{
				{ID: 1, Description: "Complete JavaScript fundamentals", Completed: true},
				{ID: 2, Description: "Build practice projects", Completed: true},
				{ID: 3, Description: "Review advanced concepts", Completed: true},
				{ID: 4, Description: "Participate in code review"},
				{ID: 5, Description: "Complete final assessment"},
			}},
		},
		Progress: []domain.EmployeeProgress{
			{ID: 1, Name: "Alex Johnson", Role: "Software Developer", Avatar: "AJ", Courses: []domain.Course{
				{Name: "JavaScript Advanced", Progress: 85}, {Name: "React Fundamentals", Progress: 60}, {Name: "Team Leadership", Progress: 40},
			}},
			{ID: 2, Name: "Emily Davis", Role: "UX Designer", Avatar: "ED", Courses: []domain.Course{
				{Name: "UI/UX Principles", Progress: 90}, {Name: "Design Systems", Progress: 75}, {Name: "User Research", Progress: 65},
			}},
			{ID: 3, Name: "James Wilson", Role: "Product Manager", Avatar: "JW", Courses: []domain.Course{
				{Name: "Product Strategy", Progress: 70}, {Name: "Agile Methodologies", Progress: 95}, {Name: "Market Analysis", Progress: 50},
			}},
		},
		Notifications: []domain.Notification{
			{ID: 1, Title: "New Training Available", Message: "A new leadership training course is now available. Register before August 15.",
				Type: domain.NotificationInfo, Date: "2023-08-01T10:30:00"},
			{ID: 2, Title: "Document Review Required", Message: "Please review and sign the updated company policy document by August 10.",
				Type: domain.NotificationAlert, Date: "2023-08-02T09:15:00"},
			{ID: 3, Title: "Meeting Reminder", Message: "Team meeting scheduled for tomorrow at 2:00 PM in Conference Room A. Please bring your project updates.",
				Type: domain.NotificationReminder, Date: "2023-08-03T14:30:00", Read: true},
			{ID: 4, Title: "Onboarding Progress Update", Message: "You have completed 75% of your onboarding tasks. Keep up the good work!",
				Type: domain.NotificationSuccess, Date: "2023-08-03T16:45:00", Read: true},
			{ID: 5, Title: "Feedback Requested", Message: "Please provide feedback on your recent training session by August 7.",
				Type: domain.NotificationInfo, Date: "2023-08-04T11:20:00"},
		},
		Settings: []domain.NotificationCategory{
			{ID: 1, Category: "Training & Development", Settings: []domain.NotificationSetting{
				{ID: 1, Name: "New Training Courses", Enabled: true}, {ID: 2, Name: "Training Reminders", Enabled: true}, {ID: 3, Name: "Certification Updates"},
			}},
			{ID: 2, Category: "Documents & Resources", Settings: []domain.NotificationSetting{
				{ID: 1, Name: "New Document Uploads", Enabled: true}, {ID: 2, Name: "Document Review Requests", Enabled: true}, {ID: 3, Name: "Resource Updates"},
			}},
			{ID: 3, Category: "Meetings & Events", Settings: []domain.NotificationSetting{
				{ID: 1, Name: "Meeting Invitations", Enabled: true}, {ID: 2, Name: "Meeting Reminders", Enabled: true}, {ID: 3, Name: "Event Announcements", Enabled: true},
			}},
			{ID: 4, Category: "Onboarding", Settings: []domain.NotificationSetting{
				{ID: 1, Name: "Task Reminders", Enabled: true}, {ID: 2, Name: "Progress Updates", Enabled: true}, {ID: 3, Name: "Feedback Requests"},
			}},
		},
		Phases: []domain.OnboardingPhase{
			{ID: 1, Title: "Pre-Boarding", Description: "Complete before your first day", Steps: []domain.OnboardingStep{
				{ID: 1, Title: "Accept Offer Letter", Completed: true, Date: "2023-07-15"},
				{ID: 2, Title: "Complete Background Check", Completed: true, Date: "2023-07-18"},
				{ID: 3, Title: "Submit Required Documents", Completed: true, Date: "2023-07-20"},
			}},
			{ID: 2, Title: "First Day", Description: "Your first day at the company", Steps: []domain.OnboardingStep{
				{ID: 1, Title: "Orientation Session", Completed: true, Date: "2023-08-01"},
				{ID: 2, Title: "IT Setup and Access", Completed: true, Date: "2023-08-01"},
				{ID: 3, Title: "Meet Your Team", Completed: true, Date: "2023-08-01"},
			}},
			{ID: 3, Title: "First Week", Description: "Getting familiar with the company", Steps: []domain.OnboardingStep{
				{ID: 1, Title: "Department Overview", Completed: true, Date: "2023-08-02"},
				{ID: 2, Title: "Training Sessions", Completed: true, Date: "2023-08-03"},
				{ID: 3, Title: "Project Introduction", Scheduled: "2023-08-05"},
			}},
			{ID: 4, Title: "First Month", Description: "Becoming part of the team", Steps: []domain.OnboardingStep{
				{ID: 1, Title: "Complete Required Training", Scheduled: "2023-08-15"},
				{ID: 2, Title: "First Project Assignment", Scheduled: "2023-08-20"},
				{ID: 3, Title: "30-Day Review Meeting", Scheduled: "2023-09-01"},
			}},
		},
		Resources: []domain.Resource{
			{ID: 1, Title: "Employee Handbook", Type: domain.ResourceDocument, Description: "Complete guide to company policies and procedures"},
			{ID: 2, Title: "Organization Chart", Type: domain.ResourceDocument, Description: "Overview of company structure and departments"},
			{ID: 3, Title: "Training Portal", Type: domain.ResourceLink, Description: "Access to all required training materials"},
			{ID: 4, Title: "IT Support", Type: domain.ResourceContact, Description: "Get help with technical issues"},
		},
		ActivePhase: 3,
	}
	return d.normalize()
}
