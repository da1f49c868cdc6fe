package opik

import (
	"time"

	"github.com/google/uuid"

	serde "github.com/opikgo/serde"
)

// DatasetItemSource tells where a dataset item came from.
type DatasetItemSource string

const (
	DatasetItemSourceManual DatasetItemSource = "manual"
	DatasetItemSourceTrace  DatasetItemSource = "trace"
	DatasetItemSourceSpan   DatasetItemSource = "span"
	DatasetItemSourceSDK    DatasetItemSource = "sdk"
)

// ScoreSource tells who produced a feedback score.
type ScoreSource string

const (
	ScoreSourceUI            ScoreSource = "ui"
	ScoreSourceSDK           ScoreSource = "sdk"
	ScoreSourceOnlineScoring ScoreSource = "online_scoring"
)

// DatasetItem is a single row of a dataset.
type DatasetItem struct {
	ID              serde.Optional[string]           `json:"id"`
	TraceID         serde.Optional[string]           `json:"traceId"`
	SpanID          serde.Optional[string]           `json:"spanId"`
	Source          DatasetItemSource                `json:"source"`
	Data            any                              `json:"data"`
	ExperimentItems serde.Optional[[]ExperimentItem] `json:"experimentItems"`
	DatasetID       serde.Optional[string]           `json:"datasetId"`
	CreatedAt       serde.Optional[time.Time]        `json:"createdAt"`
	LastUpdatedAt   serde.Optional[time.Time]        `json:"lastUpdatedAt"`
	CreatedBy       serde.Optional[string]           `json:"createdBy"`
	LastUpdatedBy   serde.Optional[string]           `json:"lastUpdatedBy"`
}

// ExperimentItem links a dataset item to the trace an experiment produced
// for it.
type ExperimentItem struct {
	ID                 serde.Optional[string]           `json:"id"`
	ExperimentID       uuid.UUID                        `json:"experimentId"`
	DatasetItemID      uuid.UUID                        `json:"datasetItemId"`
	TraceID            string                           `json:"traceId"`
	Input              serde.Optional[any]              `json:"input"`
	Output             serde.Optional[any]              `json:"output"`
	FeedbackScores     serde.Optional[[]FeedbackScore]  `json:"feedbackScores"`
	Comments           serde.Optional[[]Comment]        `json:"comments"`
	TotalEstimatedCost serde.Optional[float64]          `json:"totalEstimatedCost"`
	Duration           serde.Optional[float64]          `json:"duration"`
	Usage              serde.Optional[map[string]int64] `json:"usage"`
	CreatedAt          serde.Optional[time.Time]        `json:"createdAt"`
	LastUpdatedAt      serde.Optional[time.Time]        `json:"lastUpdatedAt"`
	CreatedBy          serde.Optional[string]           `json:"createdBy"`
	LastUpdatedBy      serde.Optional[string]           `json:"lastUpdatedBy"`
}

// FeedbackScore is a named numeric score attached to a trace or span.
type FeedbackScore struct {
	Name          string                    `json:"name"`
	CategoryName  serde.Optional[string]    `json:"categoryName"`
	Value         float64                   `json:"value"`
	Reason        serde.Optional[string]    `json:"reason"`
	Source        ScoreSource               `json:"source"`
	CreatedAt     serde.Optional[time.Time] `json:"createdAt"`
	LastUpdatedAt serde.Optional[time.Time] `json:"lastUpdatedAt"`
	CreatedBy     serde.Optional[string]    `json:"createdBy"`
	LastUpdatedBy serde.Optional[string]    `json:"lastUpdatedBy"`
}

// Comment is free text left on an entity.
type Comment struct {
	ID            serde.Optional[string]    `json:"id"`
	Text          string                    `json:"text"`
	CreatedAt     serde.Optional[time.Time] `json:"createdAt"`
	LastUpdatedAt serde.Optional[time.Time] `json:"lastUpdatedAt"`
	CreatedBy     serde.Optional[string]    `json:"createdBy"`
	LastUpdatedBy serde.Optional[string]    `json:"lastUpdatedBy"`
}

// ErrorInfo describes an exception captured on a trace.
type ErrorInfo struct {
	ExceptionType string                 `json:"exceptionType"`
	Message       serde.Optional[string] `json:"message"`
	Traceback     string                 `json:"traceback"`
}

// TraceWrite is the write model of a trace.
//
// EndTime, ErrorInfo and TTFT are tri-state: absent leaves the stored value
// alone, null clears it.
type TraceWrite struct {
	ID            serde.Optional[string]                    `json:"id"`
	ProjectName   serde.Optional[string]                    `json:"projectName"`
	Name          serde.Optional[string]                    `json:"name"`
	StartTime     time.Time                                 `json:"startTime"`
	EndTime       serde.Optional[serde.Nullable[time.Time]] `json:"endTime"`
	Input         serde.Optional[any]                       `json:"input"`
	Output        serde.Optional[any]                       `json:"output"`
	Metadata      serde.Optional[any]                       `json:"metadata"`
	Tags          serde.Optional[[]string]                  `json:"tags"`
	ErrorInfo     serde.Optional[serde.Nullable[ErrorInfo]] `json:"errorInfo"`
	LastUpdatedAt serde.Optional[time.Time]                 `json:"lastUpdatedAt"`
	ThreadID      serde.Optional[string]                    `json:"threadId"`
	TTFT          serde.Optional[serde.Nullable[float64]]   `json:"ttft"`
}

// TraceBatchWrite carries several traces in one request body.
type TraceBatchWrite struct {
	Traces []TraceWrite `json:"traces"`
}

// DatasetItemBatch carries items for one dataset, addressed by name or id.
type DatasetItemBatch struct {
	DatasetName serde.Optional[string] `json:"datasetName"`
	DatasetID   serde.Optional[string] `json:"datasetId"`
	Items       []DatasetItem          `json:"items"`
}

// JSONSchema is a structured output format definition. Keys other than the
// declared ones are kept in Extra.
type JSONSchema struct {
	Name   serde.Optional[string]         `json:"name"`
	Strict serde.Optional[bool]           `json:"strict"`
	Schema serde.Optional[map[string]any] `json:"schema_"`
	Extra  map[string]any                 `json:"-"`
}
