package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/backend"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/speech"
)

const (
	// maxRecordingBytes covers a 30 second recording with room to spare
	maxRecordingBytes = 20 << 20

	twilioAPIBaseURL = "https://api.twilio.com"
	recordingsPrefix = "/2010-04-01/Accounts/"
)

// TwilioFetcher downloads recordings from the telephony provider with the
// account credentials. It only fetches recordings of its own account on the
// provider's API host.
type TwilioFetcher struct {
	client     *http.Client
	apiBase    *url.URL
	accountSID string
	authToken  string
	maxBytes   int64
}

// FetcherOption configures a TwilioFetcher
type FetcherOption func(*TwilioFetcher)

// WithAPIBaseURL replaces the provider API host, mostly for tests
func WithAPIBaseURL(baseURL string) FetcherOption {
	return func(f *TwilioFetcher) {
		if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
			f.apiBase = u
		}
	}
}

func NewTwilioFetcher(accountSID, authToken string, timeout time.Duration, opts ...FetcherOption) *TwilioFetcher {
	base, _ := url.Parse(twilioAPIBaseURL)
	f := &TwilioFetcher{
		client:     &http.Client{Timeout: timeout},
		apiBase:    base,
		accountSID: accountSID,
		authToken:  authToken,
		maxBytes:   maxRecordingBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the recording as WAV
func (f *TwilioFetcher) Fetch(ctx context.Context, recordingURL string) (speech.Audio, error) {
	const op = "voice.Fetch"

	u, err := f.recordingURL(recordingURL)
	if err != nil {
		return speech.Audio{}, backend.New(op, backend.InvalidInput, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return speech.Audio{}, backend.Wrap(op, fmt.Errorf("failed to create request: %w", err))
	}
	if f.accountSID != "" {
		req.SetBasicAuth(f.accountSID, f.authToken)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return speech.Audio{}, backend.Wrap(op, fmt.Errorf("failed to download recording: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return speech.Audio{}, backend.StatusError(op, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return speech.Audio{}, backend.Wrap(op, fmt.Errorf("failed to read recording: %w", err))
	}
	if int64(len(data)) > f.maxBytes {
		return speech.Audio{}, backend.New(op, backend.InvalidInput, fmt.Errorf("recording exceeds %d bytes", f.maxBytes))
	}
	if len(data) == 0 {
		return speech.Audio{}, backend.New(op, backend.InvalidInput, errors.New("empty recording"))
	}

	return speech.Audio{
		Data:        data,
		Filename:    "recording.wav",
		ContentType: "audio/wav",
	}, nil
}

// recordingURL checks that raw names a recording of this account on the
// provider API and returns it with the WAV extension
func (f *TwilioFetcher) recordingURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid recording URL %q", raw)
	}
	if u.Scheme != f.apiBase.Scheme || !strings.EqualFold(u.Host, f.apiBase.Host) || u.User != nil {
		return nil, fmt.Errorf("recording URL host %q is not the telephony API", u.Host)
	}

	prefix := recordingsPrefix
	if f.accountSID != "" {
		prefix += f.accountSID + "/Recordings/"
	}
	if !strings.HasPrefix(u.Path, prefix) || path.Clean(u.Path) != u.Path {
		return nil, fmt.Errorf("recording URL path %q is outside the account recordings", u.Path)
	}

	// The provider serves the recording in the format named by the extension
	if path.Ext(u.Path) == "" {
		u.Path += ".wav"
	}
	u.RawPath = ""
	return u, nil
}
