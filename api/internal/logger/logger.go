package logger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"paygate/api/internal/config"
	"runtime"
	"strconv"

	"github.com/golang-cz/devslog"
	"github.com/google/uuid"
)

// Sink ships formatted log records, *nats.Conn satisfies it.
type Sink interface {
	Publish(subj string, data []byte) error
}

type Logger struct {
	sink Sink
}

func Init(config *config.Config) Logger {
	slogOpts := &slog.HandlerOptions{}

	if !config.Prod_env {
		slogOpts.Level = slog.LevelDebug
	}

	// new logger with options
	opts := &devslog.Options{
		HandlerOptions:    slogOpts,
		MaxSlicePrintSize: 4,
		SortKeys:          true,
		NewLineAfterLog:   true,
	}

	logger := slog.New(devslog.NewHandler(os.Stdout, opts))

	slog.SetDefault(logger)

	return Logger{}
}

// WithSink returns a copy of the logger that also ships every record to sink.
func (l Logger) WithSink(sink Sink) Logger {
	l.sink = sink
	return l
}

// example Info("address created", LS_PROVISIONING, false, "uid", "ID123", "currency", "eth")
func (l Logger) Info(message string, logStream Logstream, isTemplate bool, args ...any) {
	l.log(LL_INFO, message, logStream, isTemplate, true, args...)
}

// example Error("backend failed", LS_PROVISIONING, false, "uid", "ID123", "error", "error text")
func (l Logger) Error(message string, logStream Logstream, isTemplate bool, args ...any) {
	l.log(LL_ERROR, message, logStream, isTemplate, true, args...)
}

// Fatal ships synchronously so the record is out before the caller exits.
func (l Logger) Fatal(message string, logStream Logstream, isTemplate bool, args ...any) {
	l.log(LL_FATAL, message, logStream, isTemplate, false, args...)
}

func (l Logger) Debug(message string, args ...any) {
	_, file, line, _ := runtime.Caller(1)

	printLog(LL_DEBUG, message, file, line, args...)
}

func (l Logger) log(ll LogLevel, message string, logStream Logstream, isTemplate bool, async bool, args ...any) {
	skip := 2
	if isTemplate {
		skip = 3
	}

	pc, file, line, _ := runtime.Caller(skip)
	log, err := formatLog(ll, message, pc, file, line, args...)
	if err != nil {
		fmt.Printf("%s:%d: format log error: %v\n", file, line, err)
		return
	}

	printLog(ll, message, file, line, args...)

	if l.sink == nil {
		return
	}
	if async {
		go sendLog(l.sink, log, logStream)
		return
	}
	sendLog(l.sink, log, logStream)
}

func printLog(ll LogLevel, message string, file string, line int, args ...any) {
	args = append(args, "source", file+":"+strconv.Itoa(line))
	switch ll {
	case LL_ERROR:
		slog.Error(message, args...)
	case LL_INFO:
		slog.Info(message, args...)
	case LL_FATAL:
		slog.Error(message, args...)
	case LL_DEBUG:
		slog.Debug(message, args...)
	}

}

func sendLog(sink Sink, buffer []byte, logstream Logstream) {
	if err := sink.Publish(logstream.Subject(), buffer); err != nil {
		fmt.Println("Error sending:", err)
	}
}

func formatLog(ll LogLevel, message string, pc uintptr, file string, line int, args ...any) (log []byte, err error) {
	var callerFunc string
	if fn := runtime.FuncForPC(pc); fn != nil {
		callerFunc = fn.Name()
	}

	logMessage := LogMessage{
		Message:  message,
		LogLevel: ll.ToString(),
		Args:     make(map[string]interface{}),
		Source: Source{
			Function: callerFunc,
			File:     file,
			Line:     line,
		},
		AppInfo: AppInfo{
			Pid:       os.Getpid(),
			GoVersion: runtime.Version(),
		},
	}

	if len(args)%2 != 0 {
		return nil, fmt.Errorf("odd number of args: %d", len(args))
	}

	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			return nil, fmt.Errorf("the key must be a string: %v", args[i])
		}
		logMessage.Args[key] = args[i+1]
	}

	return json.Marshal(logMessage)
}

func AnyToStr(t any) string {
	return fmt.Sprintf("%v", t)
}

func GenErrorId() string {
	var errorId string
	uuid, err := uuid.NewRandom()
	if err != nil {
		errorId = NA
	} else {
		errorId = uuid.String()
	}
	return errorId
}
