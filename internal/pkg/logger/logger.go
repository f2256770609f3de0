package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
	// Sync descarrega os buffers antes do encerramento.
	Sync() error
}

// ZapLogger é a implementação concreta da interface Logger usando zap,
// com saída JSON (ou console) em stdout.
type ZapLogger struct {
	zap *zap.Logger
}

// NewLogger cria o Logger com o nível informado ("debug", "info", "warn", "error").
// Níveis desconhecidos caem para "info".
func NewLogger(level string) Logger {
	return NewLoggerWithFormat(level, "json")
}

// NewLoggerWithFormat permite escolher entre saída "json" e "console".
func NewLoggerWithFormat(level, format string) Logger {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if format == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), lvl)
	return &ZapLogger{zap: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}
}

// NewNop retorna um Logger que descarta tudo. Usado nos testes.
func NewNop() Logger {
	return &ZapLogger{zap: zap.NewNop()}
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

// Implementações da Interface Logger

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.zap.Debug(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.zap.Info(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.zap.Warn(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error) {
	l.zap.Error(msg, zap.Error(err))
}

// Fatal registra a mensagem e encerra o processo.
func (l *ZapLogger) Fatal(msg string, err error) {
	l.zap.Fatal(msg, zap.Error(err))
}

// Sync descarrega entradas pendentes; chamado no encerramento do main.
func (l *ZapLogger) Sync() error {
	return l.zap.Sync()
}
