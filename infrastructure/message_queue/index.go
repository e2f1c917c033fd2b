package messagequeue

import (
	"encoding/json"

	"facemark.io/application/admission"
	"facemark.io/infrastructure/message_queue/asynq"
	queue_tasks "facemark.io/infrastructure/message_queue/tasks"
	mq_types "facemark.io/infrastructure/message_queue/types"
)

var TaskQueue mq_types.TaskQueueBroker = &asynq.AsynqBroker{}

func StartQueue() {
	TaskQueue.Start()
}

// CounterSyncScheduler hands failed counter increments to the task queue.
type CounterSyncScheduler struct{}

func (scheduler CounterSyncScheduler) ScheduleCounterSync(role admission.PersonRole, personID string, subject string, present bool) {
	payload, _ := json.Marshal(queue_tasks.CounterSyncPayload{
		Role:     string(role),
		PersonID: personID,
		Subject:  subject,
		Present:  present,
	})
	TaskQueue.Enqueue(mq_types.QueueTask{
		Name:      queue_tasks.HandleCounterSyncTaskName,
		Payload:   payload,
		Priority:  mq_types.High,
		ProcessIn: 5,
	})
}
