package queue_tasks

import (
	"context"
	"encoding/json"

	"facemark.io/application/admission"
	"facemark.io/application/repository"
	"facemark.io/infrastructure/logger"
	mq_types "facemark.io/infrastructure/message_queue/types"
	"github.com/hibiken/asynq"
)

var HandleCounterSyncTaskName mq_types.Queues = "sync_attendance_counters"

// CounterSyncPayload re-applies a counter increment whose attendance record
// already landed. Returning an error makes asynq retry with backoff.
type CounterSyncPayload struct {
	Role     string
	PersonID string
	Subject  string
	Present  bool
}

func HandleCounterSyncTask(ctx context.Context, t *asynq.Task) error {
	var payload CounterSyncPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling counter sync payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	err = repository.NewAdmissionStore().IncrementCounters(ctx, admission.PersonRole(payload.Role), payload.PersonID, payload.Subject, payload.Present)
	if err != nil {
		logger.Error("counter sync retry failed", logger.LoggerOptions{
			Key:  "personID",
			Data: payload.PersonID,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	logger.Info("attendance counters reconciled", logger.LoggerOptions{
		Key:  "personID",
		Data: payload.PersonID,
	})
	return nil
}
