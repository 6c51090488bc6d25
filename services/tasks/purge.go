package tasks

import (
	"encoding/json"
	"time"

	"dockplan/config"
	"dockplan/models"

	"github.com/hibiken/asynq"
)

const TypeSchedulePurge = "schedule:purge"

// NewPurgeTask packs a purge payload into an asynq task. Purges are retried
// because they only reach the queue after a direct board update already failed.
func NewPurgeTask(payload models.PurgePayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSchedulePurge, b)
	opts := []asynq.Option{asynq.MaxRetry(10), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}

// Client is the producer side of the purge queue.
type Client struct {
	inner *asynq.Client
}

// NewClient connects a task producer to the queue Redis DB.
func NewClient() *Client {
	return &Client{inner: asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})}
}

// EnqueuePurge hands a failed assignment purge to the background worker.
func (c *Client) EnqueuePurge(payload models.PurgePayload) error {
	task, opts, err := NewPurgeTask(payload)
	if err != nil {
		return err
	}
	_, err = c.inner.Enqueue(task, opts...)
	return err
}

// Close releases the underlying queue connection.
func (c *Client) Close() error {
	return c.inner.Close()
}
