package utils

import (
	"io"
	"sync"
)

type flusher interface {
	Flush() error
}

// FlushingWriter serializes writes to an output stream and flushes buffered streams after every write so prompts appear before input is read.
type FlushingWriter struct {
	destination io.Writer
	guard       sync.Mutex
}

// NewFlushingWriter wraps destination unless it is nil or already a FlushingWriter.
func NewFlushingWriter(destination io.Writer) io.Writer {
	switch typedDestination := destination.(type) {
	case nil:
		return io.Discard
	case *FlushingWriter:
		return typedDestination
	default:
		return &FlushingWriter{destination: destination}
	}
}

// Write forwards data to the destination and flushes it when supported.
func (writer *FlushingWriter) Write(data []byte) (int, error) {
	writer.guard.Lock()
	defer writer.guard.Unlock()

	writtenCount, writeError := writer.destination.Write(data)
	if writeError != nil {
		return writtenCount, writeError
	}

	if bufferedDestination, buffered := writer.destination.(flusher); buffered {
		return writtenCount, bufferedDestination.Flush()
	}
	return writtenCount, nil
}
