// SPDX-License-Identifier: MIT
// File: writer.go
// Role: Writer batches core.MatchRow values and appends them to a
// columnar output file (spec §4.5). It satisfies matcher.Sink.
package writer

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"github.com/insee-ban/parcelmatch/core"
)

// Writer accumulates rows and flushes them to the underlying parquet
// file every BatchSize rows and once more on Close. It writes to a
// temporary file beside the final path and renames into place only on a
// clean Close, so a failed run never leaves a partial output file at the
// requested path (spec §4.5's failure semantics).
type Writer struct {
	finalPath string
	tmpPath   string
	file      *os.File
	pw        *parquet.GenericWriter[matchRow]
	batchSize int
	buf       []matchRow
	logger    *zap.Logger
	rowsTotal int
}

// New creates a Writer for path, sized to flush every cfg.BatchSize rows.
func New(path string, cfg core.Config, logger *zap.Logger) (*Writer, error) {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrWriteFailed, tmpPath, err)
	}
	return &Writer{
		finalPath: path,
		tmpPath:   tmpPath,
		file:      f,
		pw:        parquet.NewGenericWriter[matchRow](f),
		batchSize: cfg.BatchSize,
		buf:       make([]matchRow, 0, cfg.BatchSize),
		logger:    logger,
	}, nil
}

// Write buffers rows, flushing to disk whenever the buffer reaches
// BatchSize. It implements matcher.Sink.
func (w *Writer) Write(rows []core.MatchRow) error {
	for _, r := range rows {
		w.buf = append(w.buf, matchRow{
			AddressID:  r.AddressID,
			ParcelID:   r.ParcelID,
			MatchType:  r.MatchType.String(),
			DistanceM:  r.DistanceM,
			Confidence: int32(r.Confidence),
		})
		if len(w.buf) >= w.batchSize {
			if err := w.flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Writer) flush() error {
	if len(w.buf) == 0 {
		return nil
	}
	if _, err := w.pw.Write(w.buf); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	w.rowsTotal += len(w.buf)
	if w.logger != nil {
		w.logger.Debug("writer flush", zap.Int("rows", len(w.buf)), zap.Int("rows_total", w.rowsTotal))
	}
	w.buf = w.buf[:0]
	return nil
}

// Close flushes any buffered rows, finalizes the parquet file, and
// atomically renames it into place. Close must be the last call made on
// a Writer that is being kept; call Abort instead to discard the run.
func (w *Writer) Close() error {
	if err := w.flush(); err != nil {
		_ = w.abortFiles()
		return err
	}
	if err := w.pw.Close(); err != nil {
		_ = w.abortFiles()
		return fmt.Errorf("%w: close parquet writer: %v", ErrWriteFailed, err)
	}
	if err := w.file.Close(); err != nil {
		_ = w.abortFiles()
		return fmt.Errorf("%w: close file: %v", ErrWriteFailed, err)
	}
	if err := os.Rename(w.tmpPath, w.finalPath); err != nil {
		return fmt.Errorf("%w: rename %s to %s: %v", ErrWriteFailed, w.tmpPath, w.finalPath, err)
	}
	if w.logger != nil {
		w.logger.Info("writer closed", zap.String("path", w.finalPath), zap.Int("rows_total", w.rowsTotal))
	}
	return nil
}

// Abort discards the in-progress output file; call it when the run
// failed before Close, so no partial file is left anywhere, including
// the temporary path.
func (w *Writer) Abort() error {
	_ = w.pw.Close()
	_ = w.file.Close()
	return w.abortFiles()
}

func (w *Writer) abortFiles() error {
	if err := os.Remove(w.tmpPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove %s: %v", ErrWriteFailed, w.tmpPath, err)
	}
	return nil
}
