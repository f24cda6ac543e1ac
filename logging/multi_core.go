package logging

import (
	"os"

	"go.uber.org/zap/zapcore"
)

// NewMultiCore tees a console core with a rotating JSON file core. The
// console uses the colored encoder in development and JSON otherwise. An empty
// filePath yields the console core alone.
func NewMultiCore(level zapcore.Level, filePath string, fileConfig FileWriterConfig, isDev bool) (zapcore.Core, error) {
	var consoleEncoder zapcore.Encoder
	if isDev {
		consoleEncoder = zapcore.NewConsoleEncoder(NewConsoleEncoderConfig())
	} else {
		consoleEncoder = zapcore.NewJSONEncoder(NewEncoderConfig())
	}
	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), level)

	if filePath == "" {
		return consoleCore, nil
	}

	fileWriter, err := NewFileWriterWithConfig(filePath, fileConfig)
	if err != nil {
		return nil, err
	}
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(NewEncoderConfig()), fileWriter, level)

	return zapcore.NewTee(consoleCore, fileCore), nil
}
