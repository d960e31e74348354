package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"tablemate/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask wraps a payload into an asynq task scheduled at fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderClient enqueues booking reminders on the asynq queue.
type ReminderClient struct {
	client *asynq.Client
}

// NewReminderClient builds a client over the given Redis connection.
func NewReminderClient(opt asynq.RedisClientOpt) *ReminderClient {
	return &ReminderClient{client: asynq.NewClient(opt)}
}

// ScheduleBookingReminder queues a reminder two hours before the
// reservation, or at 09:00 on the day when the time is free text. A
// reservation already in the past gets no reminder.
func (c *ReminderClient) ScheduleBookingReminder(booking models.Booking) error {
	fireAt := reminderFireTime(booking)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		BookingID: booking.ID,
		AccountID: booking.AccountID,
		Title:     "Table reminder",
		Body: fmt.Sprintf("Your table at %s is set for %s at %s (party of %d).",
			booking.RestaurantName, booking.Date, booking.Time, booking.PartySize),
		FireDate: fireAt.Format(time.RFC3339),
	}

	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = c.client.Enqueue(task, opts...)
	return err
}

// Close releases the underlying asynq client.
func (c *ReminderClient) Close() error {
	return c.client.Close()
}

func reminderFireTime(booking models.Booking) time.Time {
	if at, err := time.ParseInLocation("2006-01-02 15:04", booking.Date+" "+booking.Time, time.Local); err == nil {
		return at.Add(-2 * time.Hour)
	}
	day, err := time.ParseInLocation("2006-01-02", booking.Date, time.Local)
	if err != nil {
		return time.Time{}
	}
	return day.Add(9 * time.Hour)
}
