// cmd/worker/server.go
package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"

	"biteclub-backend/internal/shared"
	"biteclub-backend/pkg/container"
)

// asynqServer wraps asynq.Server with graceful shutdown
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates the Asynq server and registers task handlers
func setupAsynqServer(c *container.Container) *asynqServer {
	mux := asynq.NewServeMux()

	// Order tasks
	mux.HandleFunc(shared.TypeDispatchOrderCall, c.DispatchCallHandler.ProcessTask)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Queues: map[string]int{
				shared.QueueCalls:   10,
				shared.QueueDefault: 5,
			},
			Concurrency: 10,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq] Task failed - Type: %s, Error: %v", task.Type(), err)
			}),
		},
	)

	go func() {
		log.Println("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] Failed: %v", err)
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown stops task processing and waits for in-flight tasks
func (s *asynqServer) Shutdown() {
	log.Println("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Println("[Worker] Stopped")
}
