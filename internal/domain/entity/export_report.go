package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
)

// TargetResult is the outcome of exporting a single target. Err is nil on
// success.
type TargetResult struct {
	TargetID        uuid.UUID
	Name            string
	OutputPath      string
	Files           []string
	FeaturesRead    int
	FeaturesWritten int
	Duration        time.Duration
	Err             error

	PublishedURLs []string
	PublishErr    error
}

func (r TargetResult) Succeeded() bool {
	return r.Err == nil
}

type ExportReport struct {
	SessionID  uuid.UUID
	Box        valueobject.ExtentBox
	Results    []TargetResult
	StartedAt  time.Time
	FinishedAt time.Time
}

func (r *ExportReport) Failed() []TargetResult {
	var out []TargetResult
	for _, res := range r.Results {
		if !res.Succeeded() {
			out = append(out, res)
		}
	}
	return out
}

func (r *ExportReport) Succeeded() []TargetResult {
	var out []TargetResult
	for _, res := range r.Results {
		if res.Succeeded() {
			out = append(out, res)
		}
	}
	return out
}

func (r *ExportReport) HasFailures() bool {
	return len(r.Failed()) > 0
}

// ExportRecord is the persisted form of one TargetResult.
type ExportRecord struct {
	ID              uuid.UUID
	SessionID       uuid.UUID
	TargetID        uuid.UUID
	TargetName      string
	OutputPath      string
	FeaturesRead    int
	FeaturesWritten int
	ErrorKind       string
	ErrorMessage    string
	Extent          valueobject.ExtentBox
	Duration        time.Duration
	CreatedAt       time.Time
}

func (r ExportRecord) Succeeded() bool {
	return r.ErrorKind == ""
}
