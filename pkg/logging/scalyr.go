package logging

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const scalyrEncoding = "scalyr"

var scalyrPool = buffer.NewPool()

func init() {
	if err := zap.RegisterEncoder(scalyrEncoding, func(cfg zapcore.EncoderConfig) (zapcore.Encoder, error) {
		return NewScalyrEncoder(cfg), nil
	}); err != nil {
		panic(err)
	}
}

// ScalyrEncoder writes one flat JSON object per entry with the keys Scalyr
// parses: timestamp, level, message, logger, file, line, function and stack.
// Fields added with With are kept across entries.
type ScalyrEncoder struct {
	*zapcore.MapObjectEncoder
	lineEnding string
}

// NewScalyrEncoder creates a Scalyr-compatible encoder
func NewScalyrEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	lineEnding := cfg.LineEnding
	if lineEnding == "" {
		lineEnding = zapcore.DefaultLineEnding
	}
	return &ScalyrEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder(), lineEnding: lineEnding}
}

// Clone copies the encoder with its context fields
func (e *ScalyrEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range e.Fields {
		clone.Fields[k] = v
	}
	return &ScalyrEncoder{MapObjectEncoder: clone, lineEnding: e.lineEnding}
}

// EncodeEntry encodes an entry with the context and call-site fields
func (e *ScalyrEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	obj := zapcore.NewMapObjectEncoder()
	for k, v := range e.Fields {
		obj.Fields[k] = v
	}
	for _, f := range fields {
		f.AddTo(obj)
	}

	obj.Fields["timestamp"] = entry.Time.UTC().Format(time.RFC3339Nano)
	obj.Fields["level"] = entry.Level.String()
	obj.Fields["message"] = entry.Message
	if entry.LoggerName != "" {
		obj.Fields["logger"] = entry.LoggerName
	}
	if entry.Caller.Defined {
		obj.Fields["file"] = entry.Caller.File
		obj.Fields["line"] = entry.Caller.Line
		obj.Fields["function"] = entry.Caller.Function
	}
	if entry.Stack != "" {
		obj.Fields["stack"] = entry.Stack
	}

	data, err := json.Marshal(obj.Fields)
	if err != nil {
		return nil, err
	}
	buf := scalyrPool.Get()
	buf.AppendBytes(data)
	buf.AppendString(e.lineEnding)
	return buf, nil
}
