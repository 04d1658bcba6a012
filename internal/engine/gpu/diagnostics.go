package gpu

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GL_DEBUG_* enum values from the KHR_debug extension. Kept here so the
// classifier does not depend on the GL bindings.
const (
	codeSourceAPI            = 0x8246
	codeSourceWindowSystem   = 0x8247
	codeSourceShaderCompiler = 0x8248
	codeSourceThirdParty     = 0x8249
	codeSourceApplication    = 0x824A
	codeSourceOther          = 0x824B

	codeTypeError              = 0x824C
	codeTypeDeprecatedBehavior = 0x824D
	codeTypeUndefinedBehavior  = 0x824E
	codeTypePortability        = 0x824F
	codeTypePerformance        = 0x8250
	codeTypeOther              = 0x8251
	codeTypeMarker             = 0x8268

	codeSeverityHigh         = 0x9146
	codeSeverityMedium       = 0x9147
	codeSeverityLow          = 0x9148
	codeSeverityNotification = 0x826B
)

// DebugSource is the origin category of a driver debug message.
type DebugSource int

const (
	SourceUnknown DebugSource = iota
	SourceAPI
	SourceWindowSystem
	SourceShaderCompiler
	SourceThirdParty
	SourceApplication
)

// SourceFromCode classifies a raw source enum. GL_DEBUG_SOURCE_OTHER and any
// unrecognized value map to SourceUnknown.
func SourceFromCode(code uint32) DebugSource {
	switch code {
	case codeSourceAPI:
		return SourceAPI
	case codeSourceWindowSystem:
		return SourceWindowSystem
	case codeSourceShaderCompiler:
		return SourceShaderCompiler
	case codeSourceThirdParty:
		return SourceThirdParty
	case codeSourceApplication:
		return SourceApplication
	default:
		return SourceUnknown
	}
}

func (s DebugSource) String() string {
	switch s {
	case SourceAPI:
		return "API"
	case SourceWindowSystem:
		return "WINDOW SYSTEM"
	case SourceShaderCompiler:
		return "SHADER COMPILER"
	case SourceThirdParty:
		return "THIRD PARTY"
	case SourceApplication:
		return "APPLICATION"
	default:
		return "UNKNOWN"
	}
}

// DebugType is the kind of event a debug message describes.
type DebugType int

const (
	TypeUnknown DebugType = iota
	TypeError
	TypeDeprecatedBehavior
	TypeUndefinedBehavior
	TypePortability
	TypePerformance
	TypeOther
	TypeMarker
)

// TypeFromCode classifies a raw type enum.
func TypeFromCode(code uint32) DebugType {
	switch code {
	case codeTypeError:
		return TypeError
	case codeTypeDeprecatedBehavior:
		return TypeDeprecatedBehavior
	case codeTypeUndefinedBehavior:
		return TypeUndefinedBehavior
	case codeTypePortability:
		return TypePortability
	case codeTypePerformance:
		return TypePerformance
	case codeTypeOther:
		return TypeOther
	case codeTypeMarker:
		return TypeMarker
	default:
		return TypeUnknown
	}
}

func (t DebugType) String() string {
	switch t {
	case TypeError:
		return "ERROR"
	case TypeDeprecatedBehavior:
		return "DEPRECATED BEHAVIOR"
	case TypeUndefinedBehavior:
		return "UNDEFINED BEHAVIOR"
	case TypePortability:
		return "PORTABILITY"
	case TypePerformance:
		return "PERFORMANCE"
	case TypeOther:
		return "OTHER"
	case TypeMarker:
		return "MARKER"
	default:
		return "UNKNOWN"
	}
}

// DebugSeverity is the driver-assigned importance of a debug message.
type DebugSeverity int

const (
	SeverityUnknown DebugSeverity = iota
	SeverityHigh
	SeverityMedium
	SeverityLow
	SeverityNotification
)

// SeverityFromCode classifies a raw severity enum.
func SeverityFromCode(code uint32) DebugSeverity {
	switch code {
	case codeSeverityHigh:
		return SeverityHigh
	case codeSeverityMedium:
		return SeverityMedium
	case codeSeverityLow:
		return SeverityLow
	case codeSeverityNotification:
		return SeverityNotification
	default:
		return SeverityUnknown
	}
}

func (s DebugSeverity) String() string {
	switch s {
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityLow:
		return "LOW"
	case SeverityNotification:
		return "NOTIFICATION"
	default:
		return "UNKNOWN"
	}
}

// Level maps a severity to the log level it is emitted at.
func (s DebugSeverity) Level() zapcore.Level {
	switch s {
	case SeverityHigh:
		return zapcore.ErrorLevel
	case SeverityMedium, SeverityLow:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// DebugMessage is one event from the driver's debug-output channel.
type DebugMessage struct {
	ID       uint32
	Source   DebugSource
	Type     DebugType
	Severity DebugSeverity
	Text     string
}

// ClassifyDebugMessage builds a DebugMessage from the raw values a debug
// callback receives.
func ClassifyDebugMessage(source, typ, id, severity uint32, text string) DebugMessage {
	return DebugMessage{
		ID:       id,
		Source:   SourceFromCode(source),
		Type:     TypeFromCode(typ),
		Severity: SeverityFromCode(severity),
		Text:     text,
	}
}

// String renders id, source, severity, type and text on one line.
func (m DebugMessage) String() string {
	return fmt.Sprintf("%d: %s %s %s %s", m.ID, m.Source, m.Severity, m.Type, m.Text)
}

// DebugSink receives driver debug messages. Receive may be called during any
// driver call on the context thread, including from inside another Receive.
type DebugSink interface {
	Receive(msg DebugMessage)
}

// LogSink writes debug messages to a zap logger at the level implied by their
// severity.
type LogSink struct {
	log *zap.Logger
}

// NewLogSink returns a sink writing to log.
func NewLogSink(log *zap.Logger) *LogSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogSink{log: log}
}

// Receive implements DebugSink.
func (s *LogSink) Receive(msg DebugMessage) {
	if ce := s.log.Check(msg.Severity.Level(), msg.String()); ce != nil {
		ce.Write(
			zap.Uint32("id", msg.ID),
			zap.Stringer("source", msg.Source),
			zap.Stringer("severity", msg.Severity),
			zap.Stringer("type", msg.Type),
		)
	}
}
