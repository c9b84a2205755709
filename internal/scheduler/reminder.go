package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/services/task"
)

const reminderSpec = "0 0 * * *"

// Reminder runs the daily due-date sweep at midnight server time.
type Reminder struct {
	log         *logrus.Entry
	cron        *cron.Cron
	taskService *task.Service
}

func NewReminder(taskService *task.Service, log *logrus.Logger) *Reminder {
	return &Reminder{
		log:         logrus.NewEntry(log),
		cron:        cron.New(),
		taskService: taskService,
	}
}

func (r *Reminder) Start() error {
	const op = "scheduler.Reminder.Start"

	if _, err := r.cron.AddFunc(reminderSpec, r.run); err != nil {
		return err
	}
	r.cron.Start()
	r.log.WithField("operation", op).WithField("spec", reminderSpec).Info("due date reminder scheduled")
	return nil
}

func (r *Reminder) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Reminder) run() {
	const op = "scheduler.Reminder.run"
	log := r.log.WithField("operation", op)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := r.taskService.SendDueReminders(ctx, time.Now()); err != nil {
		log.WithError(err).Error("due date sweep failed")
		return
	}
	log.Info("due date sweep finished")
}
