package service

import (
	"context"
	"fmt"

	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/workflow"
)

func (d *Dashboard) Phases(ctx context.Context) ([]domain.OnboardingPhase, error) {
	return d.stores.Phases.List(ctx)
}

// ActivePhase returns the selected timeline phase.
func (d *Dashboard) ActivePhase(ctx context.Context) (domain.OnboardingPhase, error) {
	d.mu.Lock()
	id := d.activePhase
	d.mu.Unlock()
	return d.stores.Phases.Get(ctx, id)
}

func (d *Dashboard) SelectPhase(ctx context.Context, id int64) (domain.OnboardingPhase, error) {
	p, err := d.stores.Phases.Get(ctx, id)
	if err != nil {
		return domain.OnboardingPhase{}, err
	}
	d.mu.Lock()
	d.activePhase = id
	d.mu.Unlock()
	return p, nil
}

// CompleteStep marks an onboarding step done on today's date and
// recomputes the phase progress.
func (d *Dashboard) CompleteStep(ctx context.Context, phaseID, stepID int64) (domain.OnboardingPhase, error) {
	d.nested.Lock()
	defer d.nested.Unlock()
	p, err := d.stores.Phases.Get(ctx, phaseID)
	if err != nil {
		return domain.OnboardingPhase{}, err
	}
	i := -1
	for j, s := range p.Steps {
		if s.ID == stepID {
			i = j
			break
		}
	}
	if i < 0 {
		return domain.OnboardingPhase{}, fmt.Errorf("step %d: %w", stepID, domain.ErrNotFound)
	}
	if !p.Steps[i].Completed {
		p.Steps[i].Completed = true
		p.Steps[i].Date = d.clock.Now().Format("2006-01-02")
		p.Steps[i].Scheduled = ""
	}
	p = p.WithSteps(p.Steps)
	if err := d.stores.Phases.Replace(ctx, phaseID, p); err != nil {
		return domain.OnboardingPhase{}, err
	}
	d.observer.Mutation(domain.KindPhase, "update")
	return p, nil
}

// SubmitFeedback validates and records an onboarding survey.
func (d *Dashboard) SubmitFeedback(ctx context.Context, draft domain.FeedbackDraft) (domain.Feedback, error) {
	var fb domain.Feedback
	err := d.feedbackForm.Submit(ctx, draft,
		func(ctx context.Context, draft domain.FeedbackDraft) (workflow.Outcome, error) {
			fb = domain.Feedback{Rating: draft.Rating, Feedback: draft.Feedback, SubmittedAt: d.clock.Now()}
			d.mu.Lock()
			d.feedback = append(d.feedback, fb)
			d.mu.Unlock()
			d.observer.Mutation(domain.KindFeedback, "create")
			return workflow.Outcome{
				Title:       "Feedback submitted",
				Description: fmt.Sprintf("Thank you for your feedback! You rated your experience %d/5.", draft.Rating),
			}, nil
		})
	return fb, err
}

func (d *Dashboard) Feedback() []domain.Feedback {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Feedback{}, d.feedback...)
}

func (d *Dashboard) Resources(ctx context.Context) ([]domain.Resource, error) {
	return d.stores.Resources.List(ctx)
}

func (d *Dashboard) GetResource(ctx context.Context, id int64) (domain.Resource, error) {
	return d.stores.Resources.Get(ctx, id)
}
