package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	tmlog "github.com/tendermint/tendermint/libs/log"
)

const (
	FormatPlain = "plain"
	FormatJSON  = "json"
)

var (
	mtx       sync.RWMutex
	customLog = newLogger(os.Stdout, FormatPlain, "info")
	logFile   *os.File
)

func newLogger(w io.Writer, format, level string) tmlog.Logger {
	var l tmlog.Logger
	if format == FormatJSON {
		l = tmlog.NewTMJSONLogger(tmlog.NewSyncWriter(w))
	} else {
		l = tmlog.NewTMLogger(tmlog.NewSyncWriter(w))
	}

	opt, err := tmlog.AllowLevel(level)
	if err != nil {
		opt = tmlog.AllowInfo()
	}
	return tmlog.NewFilter(l, opt)
}

// InitLogger configures the process logger writing to stdout.
func InitLogger(format, level string) error {
	if format != FormatPlain && format != FormatJSON {
		return fmt.Errorf("unknown log format %q", format)
	}
	if _, err := tmlog.AllowLevel(level); err != nil {
		return err
	}

	mtx.Lock()
	defer mtx.Unlock()
	customLog = newLogger(os.Stdout, format, level)
	return nil
}

// ResetLogger redirects all output to a log file under home. An empty home
// falls back to $HOME/.oracled.
func ResetLogger(home, format, level string) (string, error) {
	if home == "" {
		osHome, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		home = filepath.Join(osHome, ".oracled")
	}

	dir := filepath.Join(home, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	name := fmt.Sprintf("%s.%d.log", filepath.Base(os.Args[0]), os.Getpid())
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}

	Infof("From now on, all logs will be written to %s", path)

	mtx.Lock()
	defer mtx.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file
	customLog = newLogger(file, format, level)
	return path, nil
}

// Logger returns the process logger for components that take a tendermint logger.
func Logger() tmlog.Logger {
	mtx.RLock()
	defer mtx.RUnlock()
	return customLog
}

func Debugf(format string, v ...any) {
	Logger().Debug(fmt.Sprintf(format, v...))
}

func Infof(format string, v ...any) {
	Logger().Info(fmt.Sprintf(format, v...))
}

func Errorf(format string, v ...any) {
	Logger().Error(fmt.Sprintf(format, v...))
}

func Fatalf(format string, v ...any) {
	Logger().Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}
