// Package result is the outcome every tool operation returns.
package result

import (
	"fmt"
	"strings"
)

// Kind classifies a failed or incomplete outcome.
type Kind string

const (
	KindClarification   Kind = "ClarificationNeeded"
	KindTransport       Kind = "TransportFailure"
	KindProtocol        Kind = "ProtocolError"
	KindGatewayRejected Kind = "GatewayRejected"
	KindInternal        Kind = "Internal"
)

// Status tags which variant a Result holds.
type Status string

const (
	StatusSuccess Status = "success"
	StatusEmpty   Status = "empty"
	StatusFailure Status = "failure"
)

// Field is one labelled value of a record, kept in display order.
type Field struct {
	Label string
	Value string
}

// Record is anything a normalizer projects out of a gateway response.
type Record interface {
	Fields() []Field
}

// Result is Success(records), Empty(reason) or Failure(kind, message).
type Result struct {
	Status  Status
	Title   string
	Records []Record
	Footer  []Field
	Reason  string
	Kind    Kind
	Message string
}

func Success(title string, records ...Record) Result {
	return Result{Status: StatusSuccess, Title: title, Records: records}
}

func Empty(reason string) Result {
	return Result{Status: StatusEmpty, Reason: reason}
}

func Failure(kind Kind, message string) Result {
	return Result{Status: StatusFailure, Kind: kind, Message: message}
}

func Failuref(kind Kind, format string, args ...any) Result {
	return Failure(kind, fmt.Sprintf(format, args...))
}

func Clarify(message string) Result {
	return Failure(KindClarification, message)
}

// WithFooter appends summary fields rendered after the records.
func (r Result) WithFooter(fields ...Field) Result {
	r.Footer = append(append([]Field(nil), r.Footer...), fields...)
	return r
}

func (r Result) IsSuccess() bool { return r.Status == StatusSuccess }
func (r Result) IsEmpty() bool   { return r.Status == StatusEmpty }
func (r Result) IsFailure() bool { return r.Status == StatusFailure }

// Text renders the result for a tool caller.
func (r Result) Text() string {
	switch r.Status {
	case StatusEmpty:
		return r.Reason
	case StatusFailure:
		if r.Kind == KindClarification {
			return "More information needed: " + r.Message
		}
		return fmt.Sprintf("%s: %s", r.Kind, r.Message)
	}

	var sb strings.Builder
	if r.Title != "" {
		sb.WriteString(r.Title)
		sb.WriteString("\n")
	}
	for _, rec := range r.Records {
		writeFields(&sb, rec.Fields(), ", ")
		sb.WriteString("\n")
	}
	if len(r.Footer) > 0 {
		sb.WriteString("\n")
		writeFields(&sb, r.Footer, "\n")
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func writeFields(sb *strings.Builder, fields []Field, sep string) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(f.Label)
		sb.WriteString(": ")
		sb.WriteString(f.Value)
	}
}

// OrNA returns "N/A" for empty values.
func OrNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
