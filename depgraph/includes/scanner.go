package includes

import (
	"fmt"

	"github.com/LegacyCodeHQ/headerscan/internal/diag"

	"github.com/charmbracelet/log"
)

// Scanner loads files and extracts their include targets.
type Scanner struct {
	loader    Loader
	extractor Extractor
	logger    *log.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExtractor replaces the default regex extractor.
func WithExtractor(extractor Extractor) Option {
	return func(s *Scanner) {
		if extractor != nil {
			s.extractor = extractor
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Scanner) {
		s.logger = diag.OrDiscard(logger)
	}
}

// NewScanner returns a Scanner reading content through loader.
func NewScanner(loader Loader, opts ...Option) *Scanner {
	s := &Scanner{
		loader:    loader,
		extractor: RegexExtractor{},
		logger:    diag.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanData returns the include targets found in data.
func (s *Scanner) ScanData(data []byte) ([]string, error) {
	return s.extractor.Extract(data)
}

// ScanFile loads filename and returns its include targets.
func (s *Scanner) ScanFile(filename string) ([]string, error) {
	data, err := s.loader.Load(filename)
	if err != nil {
		return nil, err
	}

	targets, err := s.ScanData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse includes in %s: %w", filename, err)
	}

	s.logger.Debug("Source scanned", "file", filename, "includes", targets)
	return targets, nil
}
