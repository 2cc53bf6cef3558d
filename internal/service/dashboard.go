// Package service composes the collection stores and the mutation workflow
// into the operations the dashboard exposes.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/ports"
	"github.com/csg33k/staffdesk/internal/toast"
	"github.com/csg33k/staffdesk/internal/validation"
	"github.com/csg33k/staffdesk/internal/workflow"
)

var ErrNoReports = errors.New("no report generator configured")

type Options struct {
	Stores      Stores
	Mentors     []string
	ActivePhase int64
	Clock       ports.Clock
	UndoWindow  time.Duration
	// Latency is the simulated round trip applied to form submissions
	// and training registration.
	Latency   time.Duration
	FeedLimit int
	Observer  workflow.Observer
	Reports   ports.ReportGenerator
	Logger    *slog.Logger
}

type Dashboard struct {
	stores   Stores
	mentors  []string
	clock    ports.Clock
	latency  time.Duration
	observer workflow.Observer
	reports  ports.ReportGenerator
	log      *slog.Logger

	feed    *toast.Feed
	undo    *workflow.Undoer
	reducer *workflow.Reducer

	employeeForm *workflow.Form[domain.EmployeeDraft]
	documentForm *workflow.Form[domain.DocumentDraft]
	libraryForm  *workflow.Form[domain.LibraryDraft]
	trainingForm *workflow.Form[domain.TrainingDraft]
	taskForm     *workflow.Form[domain.TaskDraft]
	feedbackForm *workflow.Form[domain.FeedbackDraft]

	// nested serialises read-modify-write of records holding child slices.
	nested sync.Mutex
	// taskSeq is the highest task id issued per checklist. Guarded by nested.
	taskSeq map[int64]int64

	mu          sync.Mutex
	registered  []int64
	registering map[int64]bool
	activePhase int64
	feedback    []domain.Feedback
}

func New(opts Options) *Dashboard {
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	if opts.Observer == nil {
		opts.Observer = workflow.NopObserver
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ActivePhase == 0 {
		opts.ActivePhase = 3
	}
	d := &Dashboard{
		stores:      opts.Stores,
		mentors:     append([]string{}, opts.Mentors...),
		clock:       opts.Clock,
		latency:     opts.Latency,
		observer:    opts.Observer,
		reports:     opts.Reports,
		log:         opts.Logger,
		feed:        toast.NewFeed(opts.FeedLimit, opts.Clock.Now),
		undo:        workflow.NewUndoer(opts.UndoWindow, opts.Clock),
		registering: map[int64]bool{},
		taskSeq:     map[int64]int64{},
		activePhase: opts.ActivePhase,
	}
	d.reducer = workflow.NewReducer(d.undo, d.feed, d.observer)

	check := validation.New(opts.Clock.Now)
	form := func(failure string, latency time.Duration) workflow.FormOptions {
		return workflow.FormOptions{
			Validator: check,
			Feed:      d.feed,
			Observer:  d.observer,
			Latency:   latency,
			Failure:   failure,
		}
	}
	d.employeeForm = workflow.NewForm[domain.EmployeeDraft]("employee",
		form("There was an error saving the employee. Please try again.", opts.Latency))
	d.documentForm = workflow.NewForm[domain.DocumentDraft]("document",
		form("There was an error uploading your document. Please try again.", opts.Latency))
	d.libraryForm = workflow.NewForm[domain.LibraryDraft]("library",
		form("There was an error creating the library. Please try again.", 0))
	d.trainingForm = workflow.NewForm[domain.TrainingDraft]("training",
		form("There was an error adding the training. Please try again.", 0))
	d.taskForm = workflow.NewForm[domain.TaskDraft]("task",
		form("There was an error adding the task. Please try again.", 0))
	d.feedbackForm = workflow.NewForm[domain.FeedbackDraft]("feedback",
		form("Please try again later.", opts.Latency))

	d.reducer.Register(domain.KindEmployee, "Employee", employeeTarget{d})
	d.reducer.Register(domain.KindSkill, "Skill", skillTarget{d})
	d.reducer.Register(domain.KindDocument, "Document", documentTarget{d})
	d.reducer.Register(domain.KindLibrary, "Library", libraryTarget{d})
	d.reducer.Register(domain.KindTraining, "Training", trainingTarget{d})
	d.reducer.Register(domain.KindTask, "Task", taskTarget{d})
	d.reducer.Register(domain.KindNotification, "Notification", notificationTarget{d})
	return d
}

// Dispatch runs a delete, undo or dismiss command.
func (d *Dashboard) Dispatch(ctx context.Context, cmd workflow.Command) (workflow.Event, error) {
	ev, err := d.reducer.Dispatch(ctx, cmd)
	if err != nil {
		d.log.Debug("command rejected", "type", cmd.Type, "kind", cmd.Ref.Kind, "id", cmd.Ref.ID, "error", err)
		return ev, err
	}
	d.log.Info("command applied", "type", cmd.Type, "event", ev.Type, "kind", ev.Ref.Kind, "id", ev.Ref.ID)
	return ev, nil
}

// PendingConfirmation returns what the gate of kind is holding, if anything.
func (d *Dashboard) PendingConfirmation(kind domain.Kind) (workflow.Pending, bool, error) {
	g, err := d.reducer.Gate(kind)
	if err != nil {
		return workflow.Pending{}, false, err
	}
	p, ok := g.Pending()
	return p, ok, nil
}

func (d *Dashboard) PendingUndos() []workflow.Offer { return d.undo.Pending() }

func (d *Dashboard) UndoWindow() time.Duration { return d.undo.Window() }

func (d *Dashboard) Toasts() []toast.Toast { return d.feed.List() }

// DismissToast closes a toast. Closing one that carries an Undo action also
// withdraws the undo, so the token cannot be redeemed afterwards.
func (d *Dashboard) DismissToast(ctx context.Context, id string) bool {
	t, ok := d.feed.Dismiss(id)
	if ok && t.Action != nil {
		// An already spent or expired token leaves nothing to withdraw.
		_, _ = d.Dispatch(ctx, workflow.Command{Type: workflow.Dismiss, Token: t.Action.Token})
	}
	return ok
}

// Run expires undo offers in the background until ctx is done.
func (d *Dashboard) Run(ctx context.Context, interval time.Duration) {
	d.reducer.Run(ctx, interval)
}

func (d *Dashboard) Sweep() int { return d.reducer.Sweep() }

// Summary is the landing page overview.
type Summary struct {
	Employees           int `json:"employees"`
	Documents           int `json:"documents"`
	Libraries           int `json:"libraries"`
	UpcomingTrainings   int `json:"upcomingTrainings"`
	UnreadNotifications int `json:"unreadNotifications"`
	OnboardingProgress  int `json:"onboardingProgress"`
}

func (d *Dashboard) Summary(ctx context.Context) (Summary, error) {
	var s Summary
	emps, err := d.stores.Employees.List(ctx)
	if err != nil {
		return s, err
	}
	docs, err := d.stores.Documents.List(ctx)
	if err != nil {
		return s, err
	}
	libs, err := d.stores.Libraries.List(ctx)
	if err != nil {
		return s, err
	}
	trs, err := d.stores.Trainings.List(ctx)
	if err != nil {
		return s, err
	}
	unread, err := d.UnreadCount(ctx)
	if err != nil {
		return s, err
	}
	phases, err := d.stores.Phases.List(ctx)
	if err != nil {
		return s, err
	}
	s.Employees, s.Documents, s.Libraries, s.UnreadNotifications = len(emps), len(docs), len(libs), unread
	for _, t := range trs {
		if t.Status == domain.TrainingUpcoming {
			s.UpcomingTrainings++
		}
	}
	done, total := 0, 0
	for _, p := range phases {
		for _, st := range p.Steps {
			total++
			if st.Completed {
				done++
			}
		}
	}
	s.OnboardingProgress = domain.Percent(done, total)
	return s, nil
}

// Report renders the training progress report to w.
func (d *Dashboard) Report(ctx context.Context, w io.Writer) error {
	if d.reports == nil {
		return ErrNoReports
	}
	emps, err := d.stores.Employees.List(ctx)
	if err != nil {
		return err
	}
	prog, err := d.stores.Progress.List(ctx)
	if err != nil {
		return err
	}
	return d.reports.Generate(ctx, emps, prog, w)
}
