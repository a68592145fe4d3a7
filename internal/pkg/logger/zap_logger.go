package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ILogger interface {
	Debug(module, message string, details map[string]interface{})
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
	Sync() error
}

// Keys lifted out of details into top-level fields so log lines can be
// filtered per session or pincode.
const (
	KeySessionID = "session_id"
	KeyPincode   = "pincode"
	KeyError     = "error"
)

type ZapLogger struct {
	logger *zap.Logger
}

func fileCore(logFilePath string, level zapcore.Level) zapcore.Core {
	rotator := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	return zapcore.NewCore(jsonEncoder(), zapcore.AddSync(rotator), level)
}

func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

// NewZapLogger writes JSON to a rotated file at info and above, and
// everything to stdout; colored console format outside production.
func NewZapLogger(logFilePath string, isProd bool) *ZapLogger {
	console := jsonEncoder()
	if !isProd {
		console = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	core := zapcore.NewTee(
		fileCore(logFilePath, zap.InfoLevel),
		zapcore.NewCore(console, zapcore.Lock(os.Stdout), zap.DebugLevel),
	)
	return &ZapLogger{logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2))}
}

// NewIsolatedLogger only writes to its file. The websocket hub uses it so
// connection churn stays out of the main log.
func NewIsolatedLogger(logFilePath string) *ZapLogger {
	return &ZapLogger{logger: zap.New(fileCore(logFilePath, zap.InfoLevel), zap.AddCaller(), zap.AddCallerSkip(2))}
}

func NewNopLogger() *ZapLogger {
	return &ZapLogger{logger: zap.NewNop()}
}

func (l *ZapLogger) Debug(module, message string, details map[string]interface{}) {
	l.log(zap.DebugLevel, module, message, details)
}

func (l *ZapLogger) Info(module, message string, details map[string]interface{}) {
	l.log(zap.InfoLevel, module, message, details)
}

func (l *ZapLogger) Warn(module, message string, details map[string]interface{}) {
	l.log(zap.WarnLevel, module, message, details)
}

func (l *ZapLogger) Error(module, message string, details map[string]interface{}) {
	l.log(zap.ErrorLevel, module, message, details)
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

func (l *ZapLogger) log(level zapcore.Level, module, message string, details map[string]interface{}) {
	ce := l.logger.Check(level, message)
	if ce == nil {
		return
	}

	fields := make([]zap.Field, 0, 4)
	fields = append(fields, zap.String("module", module))

	rest := make(map[string]interface{}, len(details))
	for k, v := range details {
		switch k {
		case KeySessionID, KeyPincode:
			fields = append(fields, zap.Any(k, v))
		case KeyError:
			if err, ok := v.(error); ok {
				fields = append(fields, zap.Error(err))
			} else {
				fields = append(fields, zap.Any(k, v))
			}
		default:
			rest[k] = v
		}
	}
	if len(rest) > 0 {
		fields = append(fields, zap.Any("details", rest))
	}

	ce.Write(fields...)
}
