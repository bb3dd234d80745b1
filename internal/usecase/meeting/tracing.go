package meeting

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "meeting-notes/meeting"

// Span names
const (
	spanCreate     = "meeting.create"
	spanTranscribe = "meeting.transcribe"
	spanSummarize  = "meeting.summarize"
	spanExport     = "meeting.export"
	spanCapture    = "meeting.capture"
)

// Span attribute keys
const (
	attrMeetingID   = "meeting_id"
	attrMeetingType = "meeting_type"
	attrSource      = "source"
	attrProvider    = "provider"
	attrOutcome     = "outcome"
	attrFallback    = "fallback"
	attrFormat      = "format"
	attrCaptureID   = "capture_id"
	attrFragments   = "fragments"
)

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan records err on span, if any, and ends it
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
