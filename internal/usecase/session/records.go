package session

import (
	"github.com/google/uuid"

	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/usecase/crop"
)

// Records flattens a report into one history record per target.
func Records(report *entity.ExportReport) []entity.ExportRecord {
	records := make([]entity.ExportRecord, 0, len(report.Results))
	for _, r := range report.Results {
		rec := entity.ExportRecord{
			ID:              uuid.New(),
			SessionID:       report.SessionID,
			TargetID:        r.TargetID,
			TargetName:      r.Name,
			OutputPath:      r.OutputPath,
			FeaturesRead:    r.FeaturesRead,
			FeaturesWritten: r.FeaturesWritten,
			Extent:          report.Box,
			Duration:        r.Duration,
			CreatedAt:       report.FinishedAt,
		}
		if r.Err != nil {
			rec.ErrorKind = crop.ErrorKind(r.Err)
			rec.ErrorMessage = r.Err.Error()
		}
		records = append(records, rec)
	}
	return records
}
