package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/csg33k/staffdesk/internal/collection"
	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/toast"
	"github.com/csg33k/staffdesk/internal/workflow"
)

func toastDefault(title, description string) toast.Toast {
	return toast.Toast{Kind: toast.KindDefault, Title: title, Description: description}
}

func (d *Dashboard) ListNotifications(ctx context.Context, q string) ([]domain.Notification, error) {
	all, err := d.stores.Notifications.List(ctx)
	if err != nil {
		return nil, err
	}
	return collection.Filter(all, q, collection.NotificationFields), nil
}

func (d *Dashboard) UnreadCount(ctx context.Context) (int, error) {
	all, err := d.stores.Notifications.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, x := range all {
		if !x.Read {
			n++
		}
	}
	return n, nil
}

func (d *Dashboard) MarkRead(ctx context.Context, id int64) (domain.Notification, error) {
	d.nested.Lock()
	defer d.nested.Unlock()
	n, err := d.stores.Notifications.Get(ctx, id)
	if err != nil {
		return domain.Notification{}, err
	}
	n.Read = true
	if err := d.stores.Notifications.Replace(ctx, id, n); err != nil {
		return domain.Notification{}, err
	}
	d.observer.Mutation(domain.KindNotification, "update")
	d.feed.Push(toastDefault("Notification marked as read", "The notification has been marked as read."))
	return n, nil
}

// MarkAllRead marks every notification read and returns how many changed.
func (d *Dashboard) MarkAllRead(ctx context.Context) (int, error) {
	d.nested.Lock()
	defer d.nested.Unlock()
	all, err := d.stores.Notifications.List(ctx)
	if err != nil {
		return 0, err
	}
	var unread []domain.Notification
	for _, n := range all {
		if !n.Read {
			n.Read = true
			unread = append(unread, n)
		}
	}
	if err := d.stores.Notifications.ReplaceAll(ctx, unread); err != nil {
		return 0, err
	}
	changed := len(unread)
	d.observer.Mutation(domain.KindNotification, "update")
	d.feed.Push(toastDefault("All notifications marked as read", "All notifications have been marked as read."))
	return changed, nil
}

// DeleteNotification removes a notification immediately and offers an undo.
func (d *Dashboard) DeleteNotification(ctx context.Context, id int64) (workflow.Event, error) {
	return d.Dispatch(ctx, workflow.Command{
		Type: workflow.Delete,
		Ref:  workflow.Ref{Kind: domain.KindNotification, ID: id},
	})
}

func (d *Dashboard) ListSettings(ctx context.Context) ([]domain.NotificationCategory, error) {
	return d.stores.Settings.List(ctx)
}

// ToggleSetting flips one notification setting inside its category.
func (d *Dashboard) ToggleSetting(ctx context.Context, categoryID, settingID int64) (domain.NotificationSetting, error) {
	d.nested.Lock()
	defer d.nested.Unlock()
	c, err := d.stores.Settings.Get(ctx, categoryID)
	if err != nil {
		return domain.NotificationSetting{}, err
	}
	i := -1
	for j, s := range c.Settings {
		if s.ID == settingID {
			i = j
			break
		}
	}
	if i < 0 {
		return domain.NotificationSetting{}, fmt.Errorf("setting %d: %w", settingID, domain.ErrNotFound)
	}
	c.Settings[i].Enabled = !c.Settings[i].Enabled
	s := c.Settings[i]
	if err := d.stores.Settings.Replace(ctx, categoryID, c); err != nil {
		return domain.NotificationSetting{}, err
	}
	d.observer.Mutation(domain.KindSetting, "update")
	state, when := "Disabled", "no longer"
	if s.Enabled {
		state, when = "Enabled", "now"
	}
	d.feed.Push(toastDefault(
		state+" "+s.Name,
		fmt.Sprintf("You will %s receive notifications for %s.", when, strings.ToLower(s.Name)),
	))
	return s, nil
}

type notificationTarget struct{ d *Dashboard }

func (t notificationTarget) Describe(ctx context.Context, ref workflow.Ref) (any, string, error) {
	n, err := t.d.stores.Notifications.Get(ctx, ref.ID)
	if err != nil {
		return nil, "", err
	}
	return n, fmt.Sprintf("%q", n.Title), nil
}

func (t notificationTarget) Remove(ctx context.Context, ref workflow.Ref) (workflow.RestoreFunc, error) {
	return removeAndRestore(ctx, t.d.stores.Notifications, ref.ID)
}
