package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/staffdesk/internal/domain"
)

func fixedNow() time.Time { return time.Date(2024, 8, 5, 15, 30, 0, 0, time.Local) }

func validEmployee() domain.EmployeeDraft {
	return domain.EmployeeDraft{
		Name:       "Alex Johnson",
		Position:   "Software Developer",
		Department: "Engineering",
		Email:      "alex.johnson@company.com",
		Phone:      "5551234567",
		Progress:   75,
		StartDate:  "2024-07-15",
	}
}

func TestEmployeeDraftValid(t *testing.T) {
	v := New(fixedNow)
	assert.NoError(t, v.Struct(validEmployee()))

	d := validEmployee()
	d.StartDate = ""
	assert.NoError(t, v.Struct(d), "start date is optional")

	d.StartDate = "2024-08-05"
	assert.NoError(t, v.Struct(d), "today is not the future")
}

func TestEmployeeDraftFailures(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*domain.EmployeeDraft)
		field string
		want  string
	}{
		{"short phone", func(d *domain.EmployeeDraft) { d.Phone = "555123" }, "phone", "Phone number must be at least 10 digits"},
		{"long phone", func(d *domain.EmployeeDraft) { d.Phone = "555123456789" }, "phone", "Phone number cannot exceed 10 digits"},
		{"letters in phone", func(d *domain.EmployeeDraft) { d.Phone = "555123456x" }, "phone", "Phone number must contain only digits"},
		{"missing name", func(d *domain.EmployeeDraft) { d.Name = "" }, "name", "Name is required"},
		{"bad email", func(d *domain.EmployeeDraft) { d.Email = "nope" }, "email", "Invalid email address"},
		{"bad date", func(d *domain.EmployeeDraft) { d.StartDate = "07/15/2024" }, "startDate", "Invalid date format"},
		{"future date", func(d *domain.EmployeeDraft) { d.StartDate = "2024-08-06" }, "startDate", "Start date cannot be in the future"},
		{"progress over 100", func(d *domain.EmployeeDraft) { d.Progress = 101 }, "progress", "Progress must be at most 100"},
	}
	v := New(fixedNow)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validEmployee()
			tt.edit(&d)
			fe, ok := AsErrors(v.Struct(d))
			require.True(t, ok)
			assert.Equal(t, tt.want, fe[tt.field])
			assert.Len(t, fe, 1)
		})
	}
}

func TestLabelsAndOverrides(t *testing.T) {
	v := New(fixedNow)

	fe, ok := AsErrors(v.Struct(domain.LibraryDraft{}))
	require.True(t, ok)
	assert.Equal(t, "Library name is required", fe["name"])

	fe, ok = AsErrors(v.Struct(domain.FeedbackDraft{Rating: 0}))
	require.True(t, ok)
	assert.Equal(t, "Please select a rating", fe["rating"])

	fe, ok = AsErrors(v.Struct(&domain.DocumentDraft{Name: "x", Category: "y", FileName: "a.pdf", UploadDate: "2030-01-01"}))
	require.True(t, ok)
	assert.Equal(t, "Upload date cannot be in the future", fe["uploadDate"])
}

func TestErrorsString(t *testing.T) {
	e := Errors{"phone": "too short", "email": "bad"}
	assert.Equal(t, "email: bad; phone: too short", e.Error())
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Start date", humanize("startDate"))
	assert.Equal(t, "Name", humanize("name"))
}
