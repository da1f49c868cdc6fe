package opik

import (
	"time"

	"github.com/google/uuid"

	serde "github.com/opikgo/serde"
	g "github.com/opikgo/serde/dsl"
)

// Schemas holds one schema per entity. Build it once with NewSchemas and pass
// it to whatever needs to convert payloads; the value is immutable.
type Schemas struct {
	DatasetItemSource serde.Schema[DatasetItemSource]
	ScoreSource       serde.Schema[ScoreSource]
	JSONNode          serde.Schema[any]

	DatasetItem      serde.Schema[DatasetItem]
	ExperimentItem   serde.Schema[ExperimentItem]
	FeedbackScore    serde.Schema[FeedbackScore]
	Comment          serde.Schema[Comment]
	ErrorInfo        serde.Schema[ErrorInfo]
	TraceWrite       serde.Schema[TraceWrite]
	TraceBatchWrite  serde.Schema[TraceBatchWrite]
	DatasetItemBatch serde.Schema[DatasetItemBatch]
	JSONSchema       serde.Schema[JSONSchema]

	entities []Entity
}

// NewSchemas builds every entity schema.
func NewSchemas() *Schemas {
	s := &Schemas{
		DatasetItemSource: g.Enum(DatasetItemSourceManual, DatasetItemSourceTrace, DatasetItemSourceSpan, DatasetItemSourceSDK),
		ScoreSource:       g.Enum(ScoreSourceUI, ScoreSourceSDK, ScoreSourceOnlineScoring),
		JSONNode:          g.Unknown(),
	}
	date := g.Date()

	s.FeedbackScore = g.ObjectOf(
		g.Field(func(f *FeedbackScore) *string { return &f.Name }, g.String()),
		g.Property("category_name", func(f *FeedbackScore) *serde.Optional[string] { return &f.CategoryName }, g.Optional(g.String())),
		g.Field(func(f *FeedbackScore) *float64 { return &f.Value }, g.Float()),
		g.Field(func(f *FeedbackScore) *serde.Optional[string] { return &f.Reason }, g.Optional(g.String())),
		g.Field(func(f *FeedbackScore) *ScoreSource { return &f.Source }, s.ScoreSource),
		g.Property("created_at", func(f *FeedbackScore) *serde.Optional[time.Time] { return &f.CreatedAt }, g.Optional(date)),
		g.Property("last_updated_at", func(f *FeedbackScore) *serde.Optional[time.Time] { return &f.LastUpdatedAt }, g.Optional(date)),
		g.Property("created_by", func(f *FeedbackScore) *serde.Optional[string] { return &f.CreatedBy }, g.Optional(g.String())),
		g.Property("last_updated_by", func(f *FeedbackScore) *serde.Optional[string] { return &f.LastUpdatedBy }, g.Optional(g.String())),
	).Title("FeedbackScore").MustBuild()

	s.Comment = g.ObjectOf(
		g.Field(func(c *Comment) *serde.Optional[string] { return &c.ID }, g.Optional(g.String())),
		g.Field(func(c *Comment) *string { return &c.Text }, g.String()),
		g.Property("created_at", func(c *Comment) *serde.Optional[time.Time] { return &c.CreatedAt }, g.Optional(date)),
		g.Property("last_updated_at", func(c *Comment) *serde.Optional[time.Time] { return &c.LastUpdatedAt }, g.Optional(date)),
		g.Property("created_by", func(c *Comment) *serde.Optional[string] { return &c.CreatedBy }, g.Optional(g.String())),
		g.Property("last_updated_by", func(c *Comment) *serde.Optional[string] { return &c.LastUpdatedBy }, g.Optional(g.String())),
	).Title("Comment").MustBuild()

	s.ExperimentItem = g.ObjectOf(
		g.Field(func(e *ExperimentItem) *serde.Optional[string] { return &e.ID }, g.Optional(g.String())),
		g.Property("experiment_id", func(e *ExperimentItem) *uuid.UUID { return &e.ExperimentID }, g.UUID()),
		g.Property("dataset_item_id", func(e *ExperimentItem) *uuid.UUID { return &e.DatasetItemID }, g.UUID()),
		g.Property("trace_id", func(e *ExperimentItem) *string { return &e.TraceID }, g.String()),
		g.Field(func(e *ExperimentItem) *serde.Optional[any] { return &e.Input }, g.Optional(s.JSONNode)),
		g.Field(func(e *ExperimentItem) *serde.Optional[any] { return &e.Output }, g.Optional(s.JSONNode)),
		g.Property("feedback_scores", func(e *ExperimentItem) *serde.Optional[[]FeedbackScore] { return &e.FeedbackScores }, g.Optional(g.List(s.FeedbackScore))),
		g.Field(func(e *ExperimentItem) *serde.Optional[[]Comment] { return &e.Comments }, g.Optional(g.List(s.Comment))),
		g.Property("total_estimated_cost", func(e *ExperimentItem) *serde.Optional[float64] { return &e.TotalEstimatedCost }, g.Optional(g.Float())),
		g.Field(func(e *ExperimentItem) *serde.Optional[float64] { return &e.Duration }, g.Optional(g.Float())),
		g.Field(func(e *ExperimentItem) *serde.Optional[map[string]int64] { return &e.Usage }, g.Optional(g.Record(g.Int()))),
		g.Property("created_at", func(e *ExperimentItem) *serde.Optional[time.Time] { return &e.CreatedAt }, g.Optional(date)),
		g.Property("last_updated_at", func(e *ExperimentItem) *serde.Optional[time.Time] { return &e.LastUpdatedAt }, g.Optional(date)),
		g.Property("created_by", func(e *ExperimentItem) *serde.Optional[string] { return &e.CreatedBy }, g.Optional(g.String())),
		g.Property("last_updated_by", func(e *ExperimentItem) *serde.Optional[string] { return &e.LastUpdatedBy }, g.Optional(g.String())),
	).Title("ExperimentItem").MustBuild()

	s.DatasetItem = g.ObjectOf(
		g.Field(func(d *DatasetItem) *serde.Optional[string] { return &d.ID }, g.Optional(g.String())),
		g.Property("trace_id", func(d *DatasetItem) *serde.Optional[string] { return &d.TraceID }, g.Optional(g.String())),
		g.Property("span_id", func(d *DatasetItem) *serde.Optional[string] { return &d.SpanID }, g.Optional(g.String())),
		g.Field(func(d *DatasetItem) *DatasetItemSource { return &d.Source }, s.DatasetItemSource),
		g.Field(func(d *DatasetItem) *any { return &d.Data }, s.JSONNode),
		g.Property("experiment_items", func(d *DatasetItem) *serde.Optional[[]ExperimentItem] { return &d.ExperimentItems }, g.Optional(g.List(s.ExperimentItem))),
		g.Property("dataset_id", func(d *DatasetItem) *serde.Optional[string] { return &d.DatasetID }, g.Optional(g.String())),
		g.Property("created_at", func(d *DatasetItem) *serde.Optional[time.Time] { return &d.CreatedAt }, g.Optional(date)),
		g.Property("last_updated_at", func(d *DatasetItem) *serde.Optional[time.Time] { return &d.LastUpdatedAt }, g.Optional(date)),
		g.Property("created_by", func(d *DatasetItem) *serde.Optional[string] { return &d.CreatedBy }, g.Optional(g.String())),
		g.Property("last_updated_by", func(d *DatasetItem) *serde.Optional[string] { return &d.LastUpdatedBy }, g.Optional(g.String())),
	).Title("DatasetItem").MustBuild()

	s.ErrorInfo = g.ObjectOf(
		g.Property("exception_type", func(e *ErrorInfo) *string { return &e.ExceptionType }, g.String()),
		g.Field(func(e *ErrorInfo) *serde.Optional[string] { return &e.Message }, g.Optional(g.String())),
		g.Field(func(e *ErrorInfo) *string { return &e.Traceback }, g.String()),
	).Title("ErrorInfo").MustBuild()

	s.TraceWrite = g.ObjectOf(
		g.Field(func(t *TraceWrite) *serde.Optional[string] { return &t.ID }, g.Optional(g.String())),
		g.Property("project_name", func(t *TraceWrite) *serde.Optional[string] { return &t.ProjectName }, g.Optional(g.String())),
		g.Field(func(t *TraceWrite) *serde.Optional[string] { return &t.Name }, g.Optional(g.String())),
		g.Property("start_time", func(t *TraceWrite) *time.Time { return &t.StartTime }, date),
		g.Property("end_time", func(t *TraceWrite) *serde.Optional[serde.Nullable[time.Time]] { return &t.EndTime }, g.OptionalNullable(date)),
		g.Field(func(t *TraceWrite) *serde.Optional[any] { return &t.Input }, g.Optional(s.JSONNode)),
		g.Field(func(t *TraceWrite) *serde.Optional[any] { return &t.Output }, g.Optional(s.JSONNode)),
		g.Field(func(t *TraceWrite) *serde.Optional[any] { return &t.Metadata }, g.Optional(s.JSONNode)),
		g.Field(func(t *TraceWrite) *serde.Optional[[]string] { return &t.Tags }, g.Optional(g.List(g.String()))),
		g.Property("error_info", func(t *TraceWrite) *serde.Optional[serde.Nullable[ErrorInfo]] { return &t.ErrorInfo }, g.OptionalNullable(s.ErrorInfo)),
		g.Property("last_updated_at", func(t *TraceWrite) *serde.Optional[time.Time] { return &t.LastUpdatedAt }, g.Optional(date)),
		g.Property("thread_id", func(t *TraceWrite) *serde.Optional[string] { return &t.ThreadID }, g.Optional(g.String())),
		g.Field(func(t *TraceWrite) *serde.Optional[serde.Nullable[float64]] { return &t.TTFT }, g.OptionalNullable(g.Float())),
	).Title("TraceWrite").MustBuild()

	s.TraceBatchWrite = g.ObjectOf(
		g.Field(func(b *TraceBatchWrite) *[]TraceWrite { return &b.Traces }, g.List(s.TraceWrite)),
	).Title("TraceBatchWrite").MustBuild()

	s.DatasetItemBatch = g.ObjectOf(
		g.Property("dataset_name", func(b *DatasetItemBatch) *serde.Optional[string] { return &b.DatasetName }, g.Optional(g.String())),
		g.Property("dataset_id", func(b *DatasetItemBatch) *serde.Optional[string] { return &b.DatasetID }, g.Optional(g.String())),
		g.Field(func(b *DatasetItemBatch) *[]DatasetItem { return &b.Items }, g.List(s.DatasetItem)),
	).Title("DatasetItemBatch").MustBuild()

	s.JSONSchema = g.ObjectOf(
		g.Field(func(j *JSONSchema) *serde.Optional[string] { return &j.Name }, g.Optional(g.String())),
		g.Field(func(j *JSONSchema) *serde.Optional[bool] { return &j.Strict }, g.Optional(g.Bool())),
		g.Property("schema", func(j *JSONSchema) *serde.Optional[map[string]any] { return &j.Schema }, g.Optional(g.Record(s.JSONNode))),
	).UnknownPassthrough(func(j *JSONSchema) *map[string]any { return &j.Extra }).
		Title("JsonSchema").
		MustBuild()

	s.entities = []Entity{
		entity("DatasetItem", s.DatasetItem),
		entity("DatasetItemBatch", s.DatasetItemBatch),
		entity("ExperimentItem", s.ExperimentItem),
		entity("FeedbackScore", s.FeedbackScore),
		entity("Comment", s.Comment),
		entity("ErrorInfo", s.ErrorInfo),
		entity("TraceWrite", s.TraceWrite),
		entity("TraceBatchWrite", s.TraceBatchWrite),
		entity("JsonSchema", s.JSONSchema),
	}
	return s
}
