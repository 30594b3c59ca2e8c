package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultTTSURL is Google Translate's keyless text-to-speech endpoint
const DefaultTTSURL = "https://translate.google.com/translate_tts"

const ttsRequestTimeout = 10 * time.Second

// ErrEmptyText is returned when there is nothing to pronounce
var ErrEmptyText = errors.New("nothing to pronounce")

// TTSService turns vocabulary terms into cached MP3 pronunciations
type TTSService struct {
	audioDir string
	baseURL  string
	client   *http.Client
}

// Option customises a TTSService
type Option func(*TTSService)

// WithBaseURL points the service at another TTS endpoint
func WithBaseURL(u string) Option {
	return func(s *TTSService) { s.baseURL = u }
}

// WithHTTPClient replaces the HTTP client used for TTS requests
func WithHTTPClient(c *http.Client) Option {
	return func(s *TTSService) { s.client = c }
}

// NewTTSService creates a TTS service caching files under audioDir
func NewTTSService(audioDir string, opts ...Option) *TTSService {
	s := &TTSService{
		audioDir: audioDir,
		baseURL:  DefaultTTSURL,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pronunciation returns the path of an MP3 speaking text, generating it on
// first use. key names the cached file.
func (s *TTSService) Pronunciation(ctx context.Context, key, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}

	path := filepath.Join(s.audioDir, FileName(key))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}
	if err := s.fetch(ctx, text, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	slog.Debug("pronunciation cached", "key", key, "path", path)
	return path, nil
}

// FileName maps a cache key to a safe file name
func FileName(key string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(key)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return "vocab_" + b.String() + ".mp3"
}

func (s *TTSService) fetch(ctx context.Context, text, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "en")
	params.Set("client", "tw-ob")
	params.Set("textlen", strconv.Itoa(len(text)))

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// Google rejects requests without a browser user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// Write to a temp file first so a failed download never leaves a partial cache entry
	tmp, err := os.CreateTemp(s.audioDir, "tts-*.part")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return os.Rename(tmp.Name(), outputPath)
}
