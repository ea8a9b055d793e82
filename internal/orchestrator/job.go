// Package orchestrator schedules slice detection across a working set of
// items under a bounded concurrency limit, with cooperative pause and
// cancellation and per-item failure isolation.
package orchestrator

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Tera-Dark/ArtClipper-AI/internal/analyzer"
)

// JobStatus is the lifecycle state of one detection job. Only queued jobs
// are eligible for dispatch.
type JobStatus string

const (
	StatusIdle       JobStatus = "idle"
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusDone       JobStatus = "done"
	StatusError      JobStatus = "error"
)

// DetectMode selects the detection path for a job.
type DetectMode string

const (
	// ModeLocal runs the in-process pixel pipeline.
	ModeLocal DetectMode = "local"
	// ModeExternal sends the item to an external recognizer and normalizes
	// its response.
	ModeExternal DetectMode = "external"
)

// Job is one item of the batch working set.
type Job struct {
	ID     string
	Path   string
	Page   int
	Mode   DetectMode
	Status JobStatus

	// Threshold is the per-job gutter sensitivity (1-100).
	Threshold int

	Regions []analyzer.Region
	Err     error
}

// NewJob creates a queued job for one source item.
func NewJob(path string, page int, mode DetectMode, threshold int) Job {
	return Job{
		ID:        uuid.NewString(),
		Path:      path,
		Page:      page,
		Mode:      mode,
		Status:    StatusQueued,
		Threshold: threshold,
	}
}

// JobSet is the mutable working set shared between the orchestrator and
// external editors. Jobs may be added or removed while a run is in flight;
// the orchestrator re-validates existence before committing a result, so no
// coordination beyond this mutex is required.
type JobSet struct {
	mu   sync.Mutex
	jobs []*Job
}

// NewJobSet builds a working set from initial jobs.
func NewJobSet(jobs ...Job) *JobSet {
	s := &JobSet{}
	for _, j := range jobs {
		s.Add(j)
	}
	return s
}

// Add appends a job to the working set.
func (s *JobSet) Add(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j := job
	s.jobs = append(s.jobs, &j)
}

// Remove deletes a job by id. Removing a job mid-run makes the orchestrator
// silently drop its in-flight result.
func (s *JobSet) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, j := range s.jobs {
		if j.ID == id {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a copy of the job with the given id.
func (s *JobSet) Get(id string) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.ID == id {
			return *j, true
		}
	}
	return Job{}, false
}

// Jobs returns a snapshot copy of the whole working set in insertion order.
func (s *JobSet) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Job, len(s.jobs))
	for i, j := range s.jobs {
		out[i] = *j
	}
	return out
}

// Len reports the current working-set size.
func (s *JobSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// takeRound atomically selects up to limit queued jobs in FIFO order, marks
// them processing and returns copies for dispatch.
func (s *JobSet) takeRound(limit int) []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	var round []Job
	for _, j := range s.jobs {
		if len(round) >= limit {
			break
		}
		if j.Status != StatusQueued {
			continue
		}
		j.Status = StatusProcessing
		round = append(round, *j)
	}
	return round
}

// commit records a detection result against a job, re-checking that the job
// still exists: a concurrent external edit may have removed it, in which
// case the result is silently discarded.
func (s *JobSet) commit(id string, regions []analyzer.Region, err error) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.ID != id {
			continue
		}
		if err != nil {
			j.Status = StatusError
			j.Err = err
			j.Regions = nil
		} else {
			j.Status = StatusDone
			j.Err = nil
			j.Regions = regions
		}
		return *j, true
	}
	return Job{}, false
}

// requeueProcessing reverts any job still marked processing back to queued.
// Used when a cancelled round's results are discarded, so those jobs stay
// eligible for a fresh run.
func (s *JobSet) requeueProcessing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.Status == StatusProcessing {
			j.Status = StatusQueued
		}
	}
}
