package routes

import (
	"sync"
	"testing"
	"time"
)

// Snapshots taken while the worker mutates a job must be consistent copies;
// run with -race to catch any unguarded access.
func TestSnapshotExportJobConcurrent(t *testing.T) {
	job := &exportJob{ID: "job-1", Resource: "payments", Status: "pending", CreatedAt: time.Now().Unix()}
	exportJobsMu.Lock()
	exportJobs[job.ID] = job
	exportJobsMu.Unlock()
	defer func() {
		exportJobsMu.Lock()
		delete(exportJobs, job.ID)
		exportJobsMu.Unlock()
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			setJobStatus(job, "processing", "")
			setJobStatus(job, "done", "")
		}
	}()

	for i := 0; i < 100; i++ {
		snap, _, ok := snapshotExportJob(job.ID)
		if !ok {
			t.Fatal("job disappeared mid-run")
		}
		switch snap.Status {
		case "pending", "processing", "done":
		default:
			t.Fatalf("unexpected status %q", snap.Status)
		}
	}
	wg.Wait()
}

func TestSnapshotExportJobMissing(t *testing.T) {
	if _, _, ok := snapshotExportJob("no-such-job"); ok {
		t.Fatal("expected miss for unknown job id")
	}
}
