package queue_tasks

import (
	"context"
	"encoding/json"

	"facemark.io/application/repository"
	"facemark.io/infrastructure/logger"
	mq_types "facemark.io/infrastructure/message_queue/types"
	"facemark.io/infrastructure/messaging/emails"
	"github.com/hibiken/asynq"
)

var HandleNoticeBroadcastTaskName mq_types.Queues = "broadcast_notice"

type NoticeBroadcastPayload struct {
	NoticeID string
}

// Emails a posted notice to every active student in its target class. "all"
// targets the whole school.
func HandleNoticeBroadcastTask(ctx context.Context, t *asynq.Task) error {
	var payload NoticeBroadcastPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling notice broadcast payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	notice, err := repository.NoticeRepo().FindByID(payload.NoticeID)
	if err != nil {
		return err
	}
	if notice == nil {
		logger.Warning("notice scheduled for broadcast no longer exists", logger.LoggerOptions{
			Key:  "noticeID",
			Data: payload.NoticeID,
		})
		return nil
	}

	filter := map[string]any{"status": "active"}
	if notice.TargetClass != "" && notice.TargetClass != "all" {
		filter["studentClass"] = notice.TargetClass
	}
	students, err := repository.StudentRepo().FindMany(filter)
	if err != nil {
		return err
	}

	delivered := 0
	for _, student := range students {
		if student.Email == "" {
			continue
		}
		sent := emails.EmailService.SendEmail(student.Email, notice.Title, "notice_broadcast", map[string]any{
			"Title":    notice.Title,
			"Body":     notice.Description,
			"PostedBy": "FaceMark",
			"PostedAt": notice.CreatedAt.Format("Jan 2, 2006"),
		})
		if sent {
			delivered++
		}
	}
	logger.Info("notice broadcast completed", logger.LoggerOptions{
		Key:  "noticeID",
		Data: payload.NoticeID,
	}, logger.LoggerOptions{
		Key:  "delivered",
		Data: delivered,
	})
	return nil
}
