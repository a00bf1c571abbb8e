package jobs

import (
	"testing"

	"github.com/SevaSetu/sevasetu-backend/internal/storage"
)

func TestNotificationJobStartStop(t *testing.T) {
	job := NewNotificationJob(storage.NewMemoryStore(), nil, "")

	job.Start()
	if !job.isRunning.Load() {
		t.Fatal("job not marked running after Start")
	}

	// Second Start is a no-op while the scheduler goroutine is live
	job.Start()

	job.Stop()
	if job.isRunning.Load() {
		t.Error("job still marked running after Stop")
	}
}
