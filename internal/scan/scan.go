package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	clamd "github.com/dutchcoders/go-clamd"
)

var (
	// ErrInfected means the scanner reported a signature match.
	ErrInfected = errors.New("infected file")
	// ErrUnavailable means the scanner could not produce a verdict.
	ErrUnavailable = errors.New("scanner unavailable")
)

type streamScanner interface {
	ScanStream(r io.Reader, abort chan bool) (chan *clamd.ScanResult, error)
}

// ClamAV scans uploads through a clamd daemon using INSTREAM.
type ClamAV struct {
	client streamScanner
}

// NewClamAV returns a scanner for addr, e.g. "tcp://clamav:3310".
func NewClamAV(addr string) *ClamAV {
	addr = strings.TrimSpace(addr)
	if !strings.Contains(addr, "://") {
		addr = "tcp://" + addr
	}
	return &ClamAV{client: clamd.NewClamd(addr)}
}

// Scan streams r to clamd. It returns ErrInfected (wrapped with the signature name)
// on a match and ErrUnavailable when no verdict could be obtained.
func (s *ClamAV) Scan(ctx context.Context, r io.Reader) error {
	abort := make(chan bool)
	var once sync.Once
	stop := func() { once.Do(func() { close(abort) }) }
	defer stop()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			stop()
		case <-done:
		}
	}()

	results, err := s.client.ScanStream(r, abort)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var verdict error
	for res := range results {
		switch res.Status {
		case clamd.RES_FOUND:
			if verdict == nil || !errors.Is(verdict, ErrInfected) {
				verdict = fmt.Errorf("%w: %s", ErrInfected, res.Description)
			}
		case clamd.RES_ERROR, clamd.RES_PARSE_ERROR:
			if verdict == nil {
				verdict = fmt.Errorf("%w: %s", ErrUnavailable, res.Description)
			}
		}
	}
	if verdict == nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return verdict
}
