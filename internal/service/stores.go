package service

import (
	"context"
	"fmt"

	"github.com/csg33k/staffdesk/internal/adapters/memory"
	"github.com/csg33k/staffdesk/internal/adapters/sqlite"
	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/ports"
	"github.com/csg33k/staffdesk/internal/seed"
)

// Stores is one collection per entity kind.
type Stores struct {
	Employees     ports.Collection[domain.Employee]
	Documents     ports.Collection[domain.Document]
	Libraries     ports.Collection[domain.Library]
	Trainings     ports.Collection[domain.Training]
	Checklists    ports.Collection[domain.Checklist]
	Progress      ports.Collection[domain.EmployeeProgress]
	Notifications ports.Collection[domain.Notification]
	Settings      ports.Collection[domain.NotificationCategory]
	Phases        ports.Collection[domain.OnboardingPhase]
	Resources     ports.Collection[domain.Resource]
}

func MemoryStores(d seed.Data) (Stores, error) {
	var s Stores
	var err error
	if s.Employees, err = newMemory(domain.KindEmployee, d.Employees); err != nil {
		return s, err
	}
	if s.Documents, err = newMemory(domain.KindDocument, d.Documents); err != nil {
		return s, err
	}
	if s.Libraries, err = newMemory(domain.KindLibrary, d.Libraries); err != nil {
		return s, err
	}
	if s.Trainings, err = newMemory(domain.KindTraining, d.Trainings); err != nil {
		return s, err
	}
	if s.Checklists, err = newMemory(domain.KindChecklist, d.Checklists); err != nil {
		return s, err
	}
	if s.Progress, err = newMemory(domain.KindProgress, d.Progress); err != nil {
		return s, err
	}
	if s.Notifications, err = newMemory(domain.KindNotification, d.Notifications); err != nil {
		return s, err
	}
	if s.Settings, err = newMemory(domain.KindSetting, d.Settings); err != nil {
		return s, err
	}
	if s.Phases, err = newMemory(domain.KindPhase, d.Phases); err != nil {
		return s, err
	}
	if s.Resources, err = newMemory(domain.KindResource, d.Resources); err != nil {
		return s, err
	}
	return s, nil
}

func newMemory[T domain.Entity[T]](kind domain.Kind, seed []T) (ports.Collection[T], error) {
	st, err := memory.New(kind, seed)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// SQLiteStores seeds every kind into db, replacing rows already there.
func SQLiteStores(ctx context.Context, db *sqlite.DB, d seed.Data) (Stores, error) {
	var s Stores
	var err error
	if s.Employees, err = newSQLite(ctx, db, domain.KindEmployee, d.Employees); err != nil {
		return s, err
	}
	if s.Documents, err = newSQLite(ctx, db, domain.KindDocument, d.Documents); err != nil {
		return s, err
	}
	if s.Libraries, err = newSQLite(ctx, db, domain.KindLibrary, d.Libraries); err != nil {
		return s, err
	}
	if s.Trainings, err = newSQLite(ctx, db, domain.KindTraining, d.Trainings); err != nil {
		return s, err
	}
	if s.Checklists, err = newSQLite(ctx, db, domain.KindChecklist, d.Checklists); err != nil {
		return s, err
	}
	if s.Progress, err = newSQLite(ctx, db, domain.KindProgress, d.Progress); err != nil {
		return s, err
	}
	if s.Notifications, err = newSQLite(ctx, db, domain.KindNotification, d.Notifications); err != nil {
		return s, err
	}
	if s.Settings, err = newSQLite(ctx, db, domain.KindSetting, d.Settings); err != nil {
		return s, err
	}
	if s.Phases, err = newSQLite(ctx, db, domain.KindPhase, d.Phases); err != nil {
		return s, err
	}
	if s.Resources, err = newSQLite(ctx, db, domain.KindResource, d.Resources); err != nil {
		return s, err
	}
	return s, nil
}

func newSQLite[T domain.Entity[T]](ctx context.Context, db *sqlite.DB, kind domain.Kind, seed []T) (ports.Collection[T], error) {
	c, err := sqlite.NewCollection(ctx, db, kind, seed)
	if err != nil {
		return nil, fmt.Errorf("sqlite %s: %w", kind, err)
	}
	return c, nil
}
