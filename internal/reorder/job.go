package reorder

import (
	"context"

	"github.com/smartsort/inventory-backend/internal/cron"
)

const jobName = "reorder-scan"

type scanJob struct {
	service Service
}

// NewJob wraps the low-stock scan as a schedulable worker job.
func NewJob(service Service) cron.Job {
	return &scanJob{service: service}
}

func (j *scanJob) Name() string {
	return jobName
}

func (j *scanJob) Run(ctx context.Context) error {
	return j.service.Scan(ctx)
}
