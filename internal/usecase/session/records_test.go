package session_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"

	"github.com/marcos-nsantos/geocrop/internal/domain"
	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
	"github.com/marcos-nsantos/geocrop/internal/usecase/session"
)

func TestRecords(t *testing.T) {
	sessionID := uuid.New()
	okID, failedID := uuid.New(), uuid.New()
	finished := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	box := valueobject.FromCorners(valueobject.NewGeoPoint(-34, -71), valueobject.NewGeoPoint(-33, -70))

	report := &entity.ExportReport{
		SessionID: sessionID,
		Box:       box,
		Results: []entity.TargetResult{
			{TargetID: okID, Name: "wells", OutputPath: "/out/wells.shp", FeaturesRead: 10, FeaturesWritten: 4, Duration: 25 * time.Millisecond},
			{TargetID: failedID, Name: "roads", OutputPath: "/out/roads.shp", FeaturesRead: 7, Err: fmt.Errorf("writing /out/roads.shp: %w", domain.ErrOutputExists)},
		},
		FinishedAt: finished,
	}

	want := []entity.ExportRecord{
		{
			SessionID: sessionID, TargetID: okID, TargetName: "wells", OutputPath: "/out/wells.shp",
			FeaturesRead: 10, FeaturesWritten: 4, Extent: box, Duration: 25 * time.Millisecond, CreatedAt: finished,
		},
		{
			SessionID: sessionID, TargetID: failedID, TargetName: "roads", OutputPath: "/out/roads.shp",
			FeaturesRead: 7, ErrorKind: "IOError", ErrorMessage: "writing /out/roads.shp: output dataset already exists",
			Extent: box, CreatedAt: finished,
		},
	}

	got := session.Records(report)

	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(entity.ExportRecord{}, "ID")); diff != "" {
		t.Errorf("Records() mismatch (-want +got):\n%s", diff)
	}
	for _, r := range got {
		if r.ID == uuid.Nil {
			t.Errorf("record for %s has no id", r.TargetName)
		}
	}
}
