package lib

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LogDirectory = "logs"
	LogFileName  = "log"
)

// colors stay on even when stdout is not a terminal so the rotated
// log files match what an operator sees on screen
func init() {
	color.NoColor = false
}

// LoggerI is the leveled logging contract used across the backend
type LoggerI interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Fatal(msg string)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

const (
	DebugLevel int32 = -4
	InfoLevel  int32 = 0
	WarnLevel  int32 = 4
	ErrorLevel int32 = 8
)

var _ LoggerI = &Logger{}

// levelTag pairs a level's display prefix with its color
type levelTag struct {
	prefix string
	paint  func(format string, a ...interface{}) string
}

var levelTags = map[int32]levelTag{
	DebugLevel: {"DEBUG", color.BlueString},
	InfoLevel:  {"INFO", color.GreenString},
	WarnLevel:  {"WARN", color.YellowString},
	ErrorLevel: {"ERROR", color.RedString},
}

// LoggerConfig holds the minimum level and the output writer of a logger
type LoggerConfig struct {
	Level int32 `json:"level"`
	Out   io.Writer
}

// Logger is the concrete implementation of LoggerI
type Logger struct {
	level int32
	out   io.Writer
}

// NewLogger() creates a logger from the config; when the config carries no
// writer, output goes to stdout plus a rotated file under the data directory
func NewLogger(config LoggerConfig, dataDirPath ...string) LoggerI {
	out := config.Out
	if out == nil {
		dir := ""
		if len(dataDirPath) != 0 {
			dir = dataDirPath[0]
		}
		if dir == "" {
			dir = DefaultDataDirPath()
		}
		out = io.MultiWriter(os.Stdout, rotatedLogFile(dir))
	}
	return &Logger{level: config.Level, out: out}
}

// NewDefaultLogger() creates a stdout logger at the Debug level
func NewDefaultLogger() LoggerI {
	return NewLogger(LoggerConfig{Level: DebugLevel, Out: os.Stdout})
}

// NewNullLogger() creates a logger that discards all output
func NewNullLogger() LoggerI {
	return NewLogger(LoggerConfig{Level: DebugLevel, Out: io.Discard})
}

func (l *Logger) Debug(msg string) { l.log(DebugLevel, msg) }
func (l *Logger) Info(msg string)  { l.log(InfoLevel, msg) }
func (l *Logger) Warn(msg string)  { l.log(WarnLevel, msg) }
func (l *Logger) Error(msg string) { l.log(ErrorLevel, msg) }

// Fatal() logs at the Error level and terminates the program
func (l *Logger) Fatal(msg string) {
	l.log(ErrorLevel, msg)
	os.Exit(1)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(DebugLevel, fmt.Sprintf(format, args...))
}
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(InfoLevel, fmt.Sprintf(format, args...))
}
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(WarnLevel, fmt.Sprintf(format, args...))
}
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(ErrorLevel, fmt.Sprintf(format, args...))
}
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.Fatal(fmt.Sprintf(format, args...))
}

// log() writes one timestamped line when the level clears the threshold
func (l *Logger) log(level int32, msg string) {
	if level < l.level {
		return
	}
	tag := levelTags[level]
	line := fmt.Sprintf("%s %s\n",
		color.HiBlackString(time.Now().Format(time.StampMilli)),
		tag.paint("%s: %s", tag.prefix, msg))
	if _, err := l.out.Write([]byte(line)); err != nil {
		fmt.Println(err)
	}
}

// rotatedLogFile() opens the size-rotated log file under the data directory
func rotatedLogFile(dataDirPath string) io.Writer {
	if err := os.MkdirAll(filepath.Join(dataDirPath, LogDirectory), os.ModePerm); err != nil {
		panic(err)
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(dataDirPath, LogDirectory, LogFileName),
		MaxSize:    1, // megabytes
		MaxBackups: 1500,
		MaxAge:     14, // days
		Compress:   true,
	}
}
