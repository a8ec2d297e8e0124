// Package messaging publishes session events for map clients to render.
package messaging

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
	"github.com/marcos-nsantos/geocrop/internal/usecase/crop"
)

const subjectPrefix = "geocrop.sessions"

// Corner is a [lat, lng] pair.
type Corner [2]float64

type Rectangle struct {
	TargetID uuid.UUID `json:"target_id"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
	Corners  []Corner  `json:"corners"`
}

type SelectionEvent struct {
	SessionID  uuid.UUID   `json:"session_id"`
	Corners    []Corner    `json:"corners,omitempty"`
	Rectangles []Rectangle `json:"rectangles,omitempty"`
	Cleared    bool        `json:"cleared"`
	At         time.Time   `json:"at"`
}

type TargetOutcome struct {
	TargetID        uuid.UUID `json:"target_id"`
	Name            string    `json:"name"`
	OutputPath      string    `json:"output_path"`
	FeaturesWritten int       `json:"features_written"`
	ErrorKind       string    `json:"error_kind,omitempty"`
	Error           string    `json:"error,omitempty"`
}

type ExportEvent struct {
	SessionID uuid.UUID       `json:"session_id"`
	Corners   []Corner        `json:"corners"`
	Targets   []TargetOutcome `json:"targets"`
	At        time.Time       `json:"at"`
}

// ring closes the four box corners back onto the first one.
func ring(box valueobject.ExtentBox) []Corner {
	corners := box.Corners()
	out := make([]Corner, 0, len(corners)+1)
	for _, c := range corners {
		out = append(out, Corner{c.Lat, c.Lng})
	}
	return append(out, out[0])
}

func newSelectionEvent(sessionID uuid.UUID, box valueobject.ExtentBox, targets []*entity.CropTarget) SelectionEvent {
	corners := ring(box)
	ev := SelectionEvent{
		SessionID: sessionID,
		Corners:   corners,
		At:        time.Now().UTC(),
	}
	for _, t := range targets {
		ev.Rectangles = append(ev.Rectangles, Rectangle{
			TargetID: t.ID,
			Name:     t.Name,
			Color:    t.ColorHex(),
			Corners:  corners,
		})
	}
	return ev
}

func newExportEvent(report *entity.ExportReport) ExportEvent {
	ev := ExportEvent{
		SessionID: report.SessionID,
		Corners:   ring(report.Box),
		At:        report.FinishedAt,
	}
	for _, r := range report.Results {
		out := TargetOutcome{
			TargetID:        r.TargetID,
			Name:            r.Name,
			OutputPath:      r.OutputPath,
			FeaturesWritten: r.FeaturesWritten,
		}
		if r.Err != nil {
			out.ErrorKind = crop.ErrorKind(r.Err)
			out.Error = r.Err.Error()
		}
		ev.Targets = append(ev.Targets, out)
	}
	return ev
}

func selectionSubject(sessionID uuid.UUID) string {
	return subjectPrefix + "." + sessionID.String() + ".selection"
}

func exportSubject(sessionID uuid.UUID) string {
	return subjectPrefix + "." + sessionID.String() + ".export"
}
