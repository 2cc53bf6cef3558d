package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/csg33k/staffdesk/internal/collection"
	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/workflow"
)

func (d *Dashboard) ListTrainings(ctx context.Context, q string) ([]domain.Training, error) {
	all, err := d.stores.Trainings.List(ctx)
	if err != nil {
		return nil, err
	}
	return collection.Filter(all, q, collection.TrainingFields), nil
}

func (d *Dashboard) GetTraining(ctx context.Context, id int64) (domain.Training, error) {
	return d.stores.Trainings.Get(ctx, id)
}

// CreateTraining schedules a new upcoming training with no attendees.
func (d *Dashboard) CreateTraining(ctx context.Context, draft domain.TrainingDraft) (domain.Training, error) {
	var created domain.Training
	err := d.trainingForm.Submit(ctx, draft,
		func(ctx context.Context, draft domain.TrainingDraft) (workflow.Outcome, error) {
			var err error
			created, err = d.stores.Trainings.Add(ctx, domain.Training{
				Title:       draft.Title,
				Description: draft.Description,
				Date:        draft.Date,
				Time:        draft.Time,
				Location:    draft.Location,
				Instructor:  draft.Instructor,
				Status:      domain.TrainingUpcoming,
			})
			if err != nil {
				return workflow.Outcome{}, err
			}
			d.observer.Mutation(domain.KindTraining, "create")
			return workflow.Outcome{
				Title:       "Training added",
				Description: created.Title + " has been scheduled successfully.",
			}, nil
		})
	return created, err
}

// RegisterTraining registers the current user after the simulated round
// trip. A second registration, or one racing an in-flight registration for
// the same training, returns domain.ErrAlreadyRegistered.
func (d *Dashboard) RegisterTraining(ctx context.Context, id int64) error {
	tr, err := d.stores.Trainings.Get(ctx, id)
	if err != nil {
		return err
	}
	d.mu.Lock()
	if d.registering[id] || slices.Contains(d.registered, id) {
		d.mu.Unlock()
		return fmt.Errorf("training %d: %w", id, domain.ErrAlreadyRegistered)
	}
	d.registering[id] = true
	d.mu.Unlock()

	err = workflow.Wait(ctx, d.latency)

	d.mu.Lock()
	delete(d.registering, id)
	if err == nil {
		d.registered = append(d.registered, id)
	}
	d.mu.Unlock()
	if err != nil {
		return err
	}
	d.observer.Mutation(domain.KindTraining, "register")
	d.log.Info("training registration", "id", id, "title", tr.Title)
	d.feed.Success("Registration successful", "You have been registered for this training session.")
	return nil
}

// Registered lists training ids the user registered for, in order.
func (d *Dashboard) Registered() []int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int64{}, d.registered...)
}

// Registering reports whether a registration for id is in flight.
func (d *Dashboard) Registering(id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registering[id]
}

func (d *Dashboard) ListChecklists(ctx context.Context) ([]domain.Checklist, error) {
	return d.stores.Checklists.List(ctx)
}

func (d *Dashboard) GetChecklist(ctx context.Context, id int64) (domain.Checklist, error) {
	return d.stores.Checklists.Get(ctx, id)
}

// AddTask appends a task. Task ids are scoped to their checklist.
func (d *Dashboard) AddTask(ctx context.Context, checklistID int64, draft domain.TaskDraft) (domain.Checklist, error) {
	var updated domain.Checklist
	err := d.taskForm.Submit(ctx, draft,
		func(ctx context.Context, draft domain.TaskDraft) (workflow.Outcome, error) {
			d.nested.Lock()
			defer d.nested.Unlock()
			c, err := d.stores.Checklists.Get(ctx, checklistID)
			if err != nil {
				return workflow.Outcome{}, err
			}
			task := domain.Task{ID: d.nextTaskID(c), Description: draft.Description, Completed: draft.Completed}
			updated = c.WithTasks(collection.Append(c.Tasks, task))
			if err := d.stores.Checklists.Replace(ctx, checklistID, updated); err != nil {
				return workflow.Outcome{}, err
			}
			d.observer.Mutation(domain.KindTask, "create")
			return workflow.Outcome{
				Title:       "Task added",
				Description: "New task has been added to the checklist.",
			}, nil
		})
	return updated, err
}

// ToggleTask flips a task's completion and recomputes checklist progress.
func (d *Dashboard) ToggleTask(ctx context.Context, checklistID, taskID int64) (domain.Checklist, error) {
	d.nested.Lock()
	defer d.nested.Unlock()
	c, err := d.stores.Checklists.Get(ctx, checklistID)
	if err != nil {
		return domain.Checklist{}, err
	}
	i := collection.IndexOf(c.Tasks, taskID)
	if i < 0 {
		return domain.Checklist{}, fmt.Errorf("task %d: %w", taskID, domain.ErrNotFound)
	}
	t := c.Tasks[i]
	t.Completed = !t.Completed
	c = c.WithTasks(collection.ReplaceAt(c.Tasks, t, i))
	if err := d.stores.Checklists.Replace(ctx, checklistID, c); err != nil {
		return domain.Checklist{}, err
	}
	d.observer.Mutation(domain.KindTask, "update")
	d.feed.Success("Task updated", "Your progress has been saved.")
	return c, nil
}

// TrainingProgress is the per-employee course report.
func (d *Dashboard) TrainingProgress(ctx context.Context) ([]domain.EmployeeProgress, error) {
	return d.stores.Progress.List(ctx)
}

func (d *Dashboard) EmployeeProgress(ctx context.Context, id int64) (domain.EmployeeProgress, error) {
	return d.stores.Progress.Get(ctx, id)
}

type trainingTarget struct{ d *Dashboard }

func (t trainingTarget) Describe(ctx context.Context, ref workflow.Ref) (any, string, error) {
	tr, err := t.d.stores.Trainings.Get(ctx, ref.ID)
	if err != nil {
		return nil, "", err
	}
	return tr, fmt.Sprintf("%q", tr.Title), nil
}

func (t trainingTarget) Remove(ctx context.Context, ref workflow.Ref) (workflow.RestoreFunc, error) {
	return removeAndRestore(ctx, t.d.stores.Trainings, ref.ID)
}

// nextTaskID never reissues the id of a removed task, so its undo stays
// valid. Must be called with nested held.
func (d *Dashboard) nextTaskID(c domain.Checklist) int64 {
	id := max(collection.NextID(c.Tasks), d.taskSeq[c.ID]+1)
	d.taskSeq[c.ID] = id
	return id
}

// taskTarget addresses a task by its ID within checklist Parent. Removal
// and undo both recompute the checklist's progress.
type taskTarget struct{ d *Dashboard }

func (t taskTarget) Describe(ctx context.Context, ref workflow.Ref) (any, string, error) {
	c, err := t.d.stores.Checklists.Get(ctx, ref.Parent)
	if err != nil {
		return nil, "", err
	}
	i := collection.IndexOf(c.Tasks, ref.ID)
	if i < 0 {
		return nil, "", fmt.Errorf("task %d: %w", ref.ID, domain.ErrNotFound)
	}
	return c.Tasks[i], fmt.Sprintf("%q", c.Tasks[i].Description), nil
}

func (t taskTarget) Remove(ctx context.Context, ref workflow.Ref) (workflow.RestoreFunc, error) {
	d := t.d
	d.nested.Lock()
	defer d.nested.Unlock()
	c, err := d.stores.Checklists.Get(ctx, ref.Parent)
	if err != nil {
		return nil, err
	}
	i := collection.IndexOf(c.Tasks, ref.ID)
	if i < 0 {
		return nil, fmt.Errorf("task %d: %w", ref.ID, domain.ErrNotFound)
	}
	task := c.Tasks[i]
	if err := d.stores.Checklists.Replace(ctx, ref.Parent, c.WithTasks(collection.RemoveAt(c.Tasks, i))); err != nil {
		return nil, err
	}
	d.taskSeq[ref.Parent] = max(d.taskSeq[ref.Parent], task.ID)
	return func(ctx context.Context) error {
		d.nested.Lock()
		defer d.nested.Unlock()
		cur, err := d.stores.Checklists.Get(ctx, ref.Parent)
		if err != nil {
			return err
		}
		if collection.IndexOf(cur.Tasks, task.ID) >= 0 {
			return fmt.Errorf("task %d: %w", task.ID, domain.ErrDuplicateID)
		}
		return d.stores.Checklists.Replace(ctx, ref.Parent, cur.WithTasks(collection.InsertAt(cur.Tasks, task, i)))
	}, nil
}
