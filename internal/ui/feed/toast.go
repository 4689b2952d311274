// Package feed renders award notifications as a stack of toasts that enter
// one after another on the same cadence the acknowledgements fire.
package feed

import (
	"time"

	"github.com/nhle/munchie/internal/model"
)

// ToastTitle is the heading shown on every award toast.
const ToastTitle = "Award Earned!"

// Toast is the rendering projection of one notification.
type Toast struct {
	Index          int
	NotificationID int
	AwardID        int
	Title          string
	Name           string
	Image          string
	Glyph          string

	// Delay is how long after the batch arrives the toast enters.
	Delay time.Duration
}

// Toasts projects notifications onto toasts, one per entry in order. An
// award id outside the catalog yields a toast with an empty name and image.
// Notifications already marked shown are still projected.
func Toasts(notifications []model.Notification, step time.Duration) []Toast {
	toasts := make([]Toast, 0, len(notifications))
	for i, n := range notifications {
		t := Toast{
			Index:          i,
			NotificationID: n.ID,
			AwardID:        n.AwardID,
			Title:          ToastTitle,
			Delay:          time.Duration(i) * step,
		}
		if entry, err := model.LookupAward(n.AwardID); err == nil {
			t.Name = entry.DisplayName
			t.Image = entry.Image
			t.Glyph = entry.Glyph
		}
		toasts = append(toasts, t)
	}
	return toasts
}
