package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/adlib-audio/translog/pkg/event"
)

// FileSource implements EventSource for reading from debug log files.
// Each line runs through the timestamp extractor and then the classifier;
// lines failing either stage contribute no event.
type FileSource struct {
	files      []string
	extractor  *TimestampExtractor
	classifier *Classifier

	currentFile    *os.File
	currentScanner *bufio.Scanner
	currentSource  string
	fileIndex      int
}

// NewFileSource creates an EventSource that reads from the given files in
// order, using the provided timestamp extractor.
func NewFileSource(files []string, extractor *TimestampExtractor) *FileSource {
	return &FileSource{
		files:      files,
		extractor:  extractor,
		classifier: NewClassifier(),
		fileIndex:  -1,
	}
}

// Next returns the next parsed event.
// Skips lines with no recognizable timestamp or no matching tag pattern.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*event.Event, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.currentScanner == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		if s.currentScanner.Scan() {
			line := s.currentScanner.Text()

			ts, err := s.extractor.Extract(line)
			if err != nil {
				// No timestamp, skip regardless of content.
				continue
			}

			ev, ok := s.classifier.Classify(ts, line)
			if !ok {
				continue
			}

			return ev, nil
		}

		if err := s.currentScanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		// Current file exhausted, try next.
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
	}
}

// Close releases resources. The file handle is closed on every exit path;
// Next closes each file as it is exhausted, and Close covers early
// termination.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}

	s.currentFile = f
	s.currentScanner = bufio.NewScanner(f)
	s.currentScanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	s.currentSource = path

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		s.currentScanner = nil
		return err
	}
	return nil
}
