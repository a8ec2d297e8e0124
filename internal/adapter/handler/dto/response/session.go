package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/domain/selection"
	"github.com/marcos-nsantos/geocrop/internal/domain/valueobject"
	"github.com/marcos-nsantos/geocrop/internal/pkg/pagination"
	"github.com/marcos-nsantos/geocrop/internal/usecase/crop"
	"github.com/marcos-nsantos/geocrop/internal/usecase/session"
)

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type BoxResponse struct {
	Min     PointResponse   `json:"min"`
	Max     PointResponse   `json:"max"`
	Corners []PointResponse `json:"corners"`
}

type CRSResponse struct {
	Code int    `json:"code,omitempty"`
	Name string `json:"name,omitempty"`
}

type TargetResponse struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Source      string       `json:"source"`
	Format      string       `json:"format"`
	CRS         CRSResponse  `json:"crs"`
	Selected    bool         `json:"selected"`
	Color       string       `json:"color"`
	OutputPath  string       `json:"output_path"`
	Extent      *BoxResponse `json:"extent,omitempty"`
	CurrentCrop *BoxResponse `json:"current_crop,omitempty"`
}

type SelectionResponse struct {
	State  string          `json:"state"`
	Buffer []PointResponse `json:"buffer"`
	Box    *BoxResponse    `json:"box,omitempty"`
}

type ViewportResponse struct {
	Center  PointResponse `json:"center"`
	Zoom    int           `json:"zoom"`
	MinZoom int           `json:"min_zoom"`
	MaxZoom int           `json:"max_zoom"`
}

type SessionResponse struct {
	ID         uuid.UUID         `json:"id"`
	Status     string            `json:"status"`
	Targets    []TargetResponse  `json:"targets"`
	Selection  SelectionResponse `json:"selection"`
	Viewport   ViewportResponse  `json:"viewport"`
	LastReport *ReportResponse   `json:"last_report,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	ClosedAt   *time.Time        `json:"closed_at,omitempty"`
}

type PaginationResponse struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

type SessionsListResponse struct {
	Sessions   []SessionResponse  `json:"sessions"`
	Pagination PaginationResponse `json:"pagination"`
}

type TargetResultResponse struct {
	TargetID        uuid.UUID `json:"target_id"`
	Name            string    `json:"name"`
	Status          string    `json:"status"`
	OutputPath      string    `json:"output_path,omitempty"`
	Files           []string  `json:"files,omitempty"`
	FeaturesRead    int       `json:"features_read"`
	FeaturesWritten int       `json:"features_written"`
	DurationMs      int64     `json:"duration_ms"`
	ErrorKind       string    `json:"error_kind,omitempty"`
	Error           string    `json:"error,omitempty"`
	PublishedURLs   []string  `json:"published_urls,omitempty"`
	PublishError    string    `json:"publish_error,omitempty"`
}

type ReportResponse struct {
	SessionID  uuid.UUID              `json:"session_id"`
	Box        BoxResponse            `json:"box"`
	Results    []TargetResultResponse `json:"results"`
	Succeeded  int                    `json:"succeeded"`
	Failed     int                    `json:"failed"`
	StartedAt  time.Time              `json:"started_at"`
	FinishedAt time.Time              `json:"finished_at"`
}

type ExportRecordResponse struct {
	ID              uuid.UUID   `json:"id"`
	TargetID        uuid.UUID   `json:"target_id"`
	TargetName      string      `json:"target_name"`
	OutputPath      string      `json:"output_path"`
	FeaturesRead    int         `json:"features_read"`
	FeaturesWritten int         `json:"features_written"`
	ErrorKind       string      `json:"error_kind,omitempty"`
	ErrorMessage    string      `json:"error_message,omitempty"`
	Extent          BoxResponse `json:"extent"`
	DurationMs      int64       `json:"duration_ms"`
	CreatedAt       time.Time   `json:"created_at"`
}

type HistoryResponse struct {
	Records []ExportRecordResponse `json:"records"`
}

func PointFrom(p valueobject.GeoPoint) PointResponse {
	return PointResponse{Lat: p.Lat, Lng: p.Lng}
}

func BoxFrom(b valueobject.ExtentBox) BoxResponse {
	corners := b.Corners()
	resp := BoxResponse{
		Min:     PointFrom(b.Min),
		Max:     PointFrom(b.Max),
		Corners: make([]PointResponse, 0, len(corners)),
	}
	for _, c := range corners {
		resp.Corners = append(resp.Corners, PointFrom(c))
	}
	return resp
}

func optionalBox(b *valueobject.ExtentBox) *BoxResponse {
	if b == nil {
		return nil
	}
	resp := BoxFrom(*b)
	return &resp
}

func TargetFromEntity(t *entity.CropTarget) TargetResponse {
	return TargetResponse{
		ID:          t.ID,
		Name:        t.Name,
		Source:      t.Source,
		Format:      t.Format,
		CRS:         CRSResponse{Code: t.NativeCRS.Code, Name: t.NativeCRS.Name},
		Selected:    t.Selected,
		Color:       t.ColorHex(),
		OutputPath:  t.OutputPath,
		Extent:      optionalBox(t.Extent),
		CurrentCrop: optionalBox(t.CurrentCrop),
	}
}

func SelectionFrom(v *session.SelectionView) SelectionResponse {
	resp := SelectionResponse{
		State:  v.State.String(),
		Buffer: make([]PointResponse, 0, len(v.Buffer)),
		Box:    optionalBox(v.Box),
	}
	for _, p := range v.Buffer {
		resp.Buffer = append(resp.Buffer, PointFrom(p))
	}
	return resp
}

func selectionFromMachine(m *selection.Machine) SelectionResponse {
	view := &session.SelectionView{State: m.State(), Buffer: m.Buffer()}
	if box, ok := m.Box(); ok {
		view.Box = &box
	}
	return SelectionFrom(view)
}

// SessionFromEntity snapshots s under its lock.
func SessionFromEntity(s *entity.Session) SessionResponse {
	s.Lock()
	defer s.Unlock()

	center, zoom := s.Viewport()
	resp := SessionResponse{
		ID:        s.ID,
		Status:    string(s.Status),
		Targets:   make([]TargetResponse, 0, len(s.Targets)),
		Selection: selectionFromMachine(s.Selection),
		Viewport: ViewportResponse{
			Center:  PointFrom(center),
			Zoom:    zoom,
			MinZoom: entity.MinZoom,
			MaxZoom: entity.MaxZoom,
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		ClosedAt:  s.ClosedAt,
	}
	for _, t := range s.Targets {
		resp.Targets = append(resp.Targets, TargetFromEntity(t))
	}
	if s.LastReport != nil {
		report := ReportFromEntity(s.LastReport)
		resp.LastReport = &report
	}
	return resp
}

func SessionsFromEntities(sessions []*entity.Session, info *pagination.Info) SessionsListResponse {
	resp := SessionsListResponse{
		Sessions: make([]SessionResponse, 0, len(sessions)),
		Pagination: PaginationResponse{
			Page:       info.Page,
			PerPage:    info.PerPage,
			TotalItems: info.TotalItems,
			TotalPages: info.TotalPages,
			HasNext:    info.HasNext,
			HasPrev:    info.HasPrev,
		},
	}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, SessionFromEntity(s))
	}
	return resp
}

func ReportFromEntity(r *entity.ExportReport) ReportResponse {
	resp := ReportResponse{
		SessionID:  r.SessionID,
		Box:        BoxFrom(r.Box),
		Results:    make([]TargetResultResponse, 0, len(r.Results)),
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
	for _, res := range r.Results {
		item := TargetResultResponse{
			TargetID:        res.TargetID,
			Name:            res.Name,
			Status:          "success",
			OutputPath:      res.OutputPath,
			Files:           res.Files,
			FeaturesRead:    res.FeaturesRead,
			FeaturesWritten: res.FeaturesWritten,
			DurationMs:      res.Duration.Milliseconds(),
			PublishedURLs:   res.PublishedURLs,
		}
		if res.Err != nil {
			item.Status = "failure"
			item.ErrorKind = crop.ErrorKind(res.Err)
			item.Error = res.Err.Error()
			resp.Failed++
		} else {
			resp.Succeeded++
		}
		if res.PublishErr != nil {
			item.PublishError = res.PublishErr.Error()
		}
		resp.Results = append(resp.Results, item)
	}
	return resp
}

func HistoryFromEntities(records []entity.ExportRecord) HistoryResponse {
	resp := HistoryResponse{Records: make([]ExportRecordResponse, 0, len(records))}
	for _, r := range records {
		resp.Records = append(resp.Records, ExportRecordResponse{
			ID:              r.ID,
			TargetID:        r.TargetID,
			TargetName:      r.TargetName,
			OutputPath:      r.OutputPath,
			FeaturesRead:    r.FeaturesRead,
			FeaturesWritten: r.FeaturesWritten,
			ErrorKind:       r.ErrorKind,
			ErrorMessage:    r.ErrorMessage,
			Extent:          BoxFrom(r.Extent),
			DurationMs:      r.Duration.Milliseconds(),
			CreatedAt:       r.CreatedAt,
		})
	}
	return resp
}
