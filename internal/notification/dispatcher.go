package notification

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

const (
	KindAppointmentBooked    = "APPOINTMENT_BOOKED"
	KindAppointmentConfirmed = "APPOINTMENT_CONFIRMED"
	KindAppointmentCancelled = "APPOINTMENT_CANCELLED"
)

// Dispatcher stores in-app notifications after an operation commits.
// Delivery is best effort: failures are logged and never surface.
type Dispatcher struct {
	db    *gorm.DB
	log   *zap.Logger
	queue chan models.Notification

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(db *gorm.DB, log *zap.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}

	d := &Dispatcher{
		db:    db,
		log:   log,
		queue: make(chan models.Notification, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for n := range d.queue {
		if err := d.db.WithContext(context.Background()).Create(&n).Error; err != nil {
			d.log.Error("notification write failed",
				zap.Uint("user_id", n.UserID),
				zap.String("kind", n.Kind),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Notify(n models.Notification) {
	if d == nil || n.UserID == 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- n:
	default:
		d.log.Warn("notification queue full, dropping", zap.String("kind", n.Kind))
	}
}

func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}

// ======================================================
// MESSAGES
// ======================================================

func Booked(operatorUserID uint, ap *models.Appointment, when string) models.Notification {
	return models.Notification{
		UserID:        operatorUserID,
		Kind:          KindAppointmentBooked,
		Title:         "New appointment",
		Body:          fmt.Sprintf("A new appointment was booked for %s.", when),
		AppointmentID: idPtr(ap.ID),
	}
}

func Confirmed(ap *models.Appointment, when string) models.Notification {
	return models.Notification{
		UserID:        ap.UserID,
		Kind:          KindAppointmentConfirmed,
		Title:         "Appointment confirmed",
		Body:          fmt.Sprintf("Your appointment on %s was confirmed.", when),
		AppointmentID: idPtr(ap.ID),
	}
}

func Cancelled(recipientID uint, ap *models.Appointment, when string) models.Notification {
	return models.Notification{
		UserID:        recipientID,
		Kind:          KindAppointmentCancelled,
		Title:         "Appointment cancelled",
		Body:          fmt.Sprintf("The appointment on %s was cancelled.", when),
		AppointmentID: idPtr(ap.ID),
	}
}

func (d *Dispatcher) List(ctx context.Context, userID uint, unreadOnly bool) ([]models.Notification, error) {
	if d == nil {
		return nil, nil
	}

	q := d.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}

	var list []models.Notification
	if err := q.Order("created_at DESC").Limit(100).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func idPtr(id uint) *uint {
	return &id
}
