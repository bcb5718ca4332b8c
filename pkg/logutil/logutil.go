// Package logutil provides logging utilities.
//
// Every package that logs keeps its own *log.Logger obtained from GetLogger.
// All of them share one output, which discards everything until SetOutput or
// SetOutputFile is called.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	out     = io.Discard
	loggers []*log.Logger
	mutex   sync.Mutex
)

// GetLogger gets a logger with a prefix. The prefix is written between the
// timestamp and the message.
func GetLogger(prefix string) *log.Logger {
	mutex.Lock()
	defer mutex.Unlock()
	logger := log.New(out, prefix, log.LstdFlags|log.Lmsgprefix)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new io.Writer. If the old output was a file opened by SetOutputFile, it
// is closed.
func SetOutput(newout io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	if f, ok := out.(*os.File); ok && opened[f] {
		f.Close()
		delete(opened, f)
	}
	out = newout
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

var opened = map[*os.File]bool{}

// SetOutputFile redirects the output of all loggers obtained with GetLogger to
// the named file, which is created or truncated. If fname is empty, logging
// output is discarded.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	SetOutput(file)
	mutex.Lock()
	opened[file] = true
	mutex.Unlock()
	return nil
}
