package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/csg33k/staffdesk/internal/collection"
	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/workflow"
)

// ListEmployees returns employees matching q over name, position and
// department. A blank q returns everyone.
func (d *Dashboard) ListEmployees(ctx context.Context, q string) ([]domain.Employee, error) {
	all, err := d.stores.Employees.List(ctx)
	if err != nil {
		return nil, err
	}
	return collection.Filter(all, q, collection.EmployeeFields), nil
}

func (d *Dashboard) GetEmployee(ctx context.Context, id int64) (domain.Employee, error) {
	return d.stores.Employees.Get(ctx, id)
}

func (d *Dashboard) Mentors() []string { return append([]string{}, d.mentors...) }

func (d *Dashboard) CreateEmployee(ctx context.Context, draft domain.EmployeeDraft) (domain.Employee, error) {
	var created domain.Employee
	err := d.employeeForm.Submit(ctx, normalizeEmployee(draft),
		func(ctx context.Context, draft domain.EmployeeDraft) (workflow.Outcome, error) {
			var err error
			created, err = d.stores.Employees.Add(ctx, draft.Record())
			if err != nil {
				return workflow.Outcome{}, err
			}
			d.observer.Mutation(domain.KindEmployee, "create")
			d.log.Info("employee created", "id", created.ID)
			return workflow.Outcome{
				Title:       "Employee added",
				Description: created.Name + " has been added successfully.",
			}, nil
		})
	return created, err
}

func (d *Dashboard) UpdateEmployee(ctx context.Context, id int64, draft domain.EmployeeDraft) (domain.Employee, error) {
	var updated domain.Employee
	err := d.employeeForm.Submit(ctx, normalizeEmployee(draft),
		func(ctx context.Context, draft domain.EmployeeDraft) (workflow.Outcome, error) {
			// Skill edits read-modify-write the same record under nested.
			d.nested.Lock()
			defer d.nested.Unlock()
			updated = draft.Record().WithID(id)
			if err := d.stores.Employees.Replace(ctx, id, updated); err != nil {
				return workflow.Outcome{}, err
			}
			d.observer.Mutation(domain.KindEmployee, "update")
			d.log.Info("employee updated", "id", id)
			return workflow.Outcome{
				Title:       "Employee updated",
				Description: updated.Name + "'s profile has been updated successfully.",
			}, nil
		})
	return updated, err
}

// normalizeEmployee strips formatting from the phone number and tidies skills.
func normalizeEmployee(d domain.EmployeeDraft) domain.EmployeeDraft {
	d.Phone = stripNonDigits(d.Phone)
	skills := make([]string, 0, len(d.Skills))
	for _, s := range d.Skills {
		s = strings.TrimSpace(s)
		if s != "" && !slices.Contains(skills, s) {
			skills = append(skills, s)
		}
	}
	d.Skills = skills
	return d
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AddSkill appends a trimmed skill. Blank and duplicate skills are rejected.
func (d *Dashboard) AddSkill(ctx context.Context, employeeID int64, skill string) (domain.Employee, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return domain.Employee{}, domain.ErrEmptySkill
	}
	d.nested.Lock()
	defer d.nested.Unlock()
	e, err := d.stores.Employees.Get(ctx, employeeID)
	if err != nil {
		return domain.Employee{}, err
	}
	if slices.Contains(e.Skills, skill) {
		return domain.Employee{}, fmt.Errorf("%q: %w", skill, domain.ErrDuplicateSkill)
	}
	e.Skills = append(e.Skills, skill)
	if err := d.stores.Employees.Replace(ctx, employeeID, e); err != nil {
		return domain.Employee{}, err
	}
	d.observer.Mutation(domain.KindSkill, "create")
	return e, nil
}

// RemoveSkill removes a skill immediately and offers an undo.
func (d *Dashboard) RemoveSkill(ctx context.Context, employeeID int64, skill string) (workflow.Event, error) {
	return d.Dispatch(ctx, workflow.Command{
		Type: workflow.Delete,
		Ref:  workflow.Ref{Kind: domain.KindSkill, ID: employeeID, Key: skill},
	})
}

type employeeTarget struct{ d *Dashboard }

func (t employeeTarget) Describe(ctx context.Context, ref workflow.Ref) (any, string, error) {
	e, err := t.d.stores.Employees.Get(ctx, ref.ID)
	if err != nil {
		return nil, "", err
	}
	return e, e.Name, nil
}

func (t employeeTarget) Remove(ctx context.Context, ref workflow.Ref) (workflow.RestoreFunc, error) {
	return removeAndRestore(ctx, t.d.stores.Employees, ref.ID)
}

type skillTarget struct{ d *Dashboard }

func (t skillTarget) Describe(ctx context.Context, ref workflow.Ref) (any, string, error) {
	e, err := t.d.stores.Employees.Get(ctx, ref.ID)
	if err != nil {
		return nil, "", err
	}
	if !slices.Contains(e.Skills, ref.Key) {
		return nil, "", fmt.Errorf("skill %q: %w", ref.Key, domain.ErrNotFound)
	}
	return ref.Key, fmt.Sprintf("%q", ref.Key), nil
}

func (t skillTarget) Remove(ctx context.Context, ref workflow.Ref) (workflow.RestoreFunc, error) {
	d := t.d
	d.nested.Lock()
	defer d.nested.Unlock()
	e, err := d.stores.Employees.Get(ctx, ref.ID)
	if err != nil {
		return nil, err
	}
	i := slices.Index(e.Skills, ref.Key)
	if i < 0 {
		return nil, fmt.Errorf("skill %q: %w", ref.Key, domain.ErrNotFound)
	}
	e.Skills = slices.Delete(e.Skills, i, i+1)
	if err := d.stores.Employees.Replace(ctx, ref.ID, e); err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		d.nested.Lock()
		defer d.nested.Unlock()
		cur, err := d.stores.Employees.Get(ctx, ref.ID)
		if err != nil {
			return err
		}
		if slices.Contains(cur.Skills, ref.Key) {
			return nil
		}
		cur.Skills = slices.Insert(cur.Skills, min(i, len(cur.Skills)), ref.Key)
		return d.stores.Employees.Replace(ctx, ref.ID, cur)
	}, nil
}
