package nag

import (
	"context"
	"log"
	"time"
)

// Scheduler периодически запускает тик движка. Сбой одного тика
// логируется и не мешает следующим.
type Scheduler struct {
	engine *Engine
	period time.Duration
}

func NewScheduler(engine *Engine, period time.Duration) *Scheduler {
	if period <= 0 {
		period = time.Minute
	}
	return &Scheduler{engine: engine, period: period}
}

// Start запускает тикер в отдельной горутине до отмены ctx.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.period)
		defer ticker.Stop()

		log.Printf("INFO nag: scheduler started, period=%s", s.period)
		for {
			select {
			case <-ctx.Done():
				log.Printf("INFO nag: scheduler stopped")
				return
			case <-ticker.C:
				result, err := s.engine.Tick(ctx)
				if err != nil {
					log.Printf("WARN nag: tick failed: %v", err)
					continue
				}
				if result.Dispatched > 0 {
					log.Printf("INFO nag: tick dispatched=%d sent=%d pruned=%d",
						result.Dispatched, result.Sent, result.Pruned)
				}
			}
		}
	}()
}
