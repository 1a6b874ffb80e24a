package voice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/backend"
)

func TestTwilioFetcher_Fetch(t *testing.T) {
	const recordings = "/2010-04-01/Accounts/AC1/Recordings/"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC1" || pass != "token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case recordings + "RE1.wav":
			w.Header().Set("Content-Type", "audio/wav")
			w.Write([]byte("RIFF-data"))
		case recordings + "RE2.wav":
			w.WriteHeader(http.StatusOK)
		case recordings + "RE3.wav":
			w.Write([]byte(strings.Repeat("x", 64)))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	// Any request reaching this server is a credential leak
	var foreignHits atomic.Int32
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		foreignHits.Add(1)
		w.Write([]byte("RIFF-data"))
	}))
	defer foreign.Close()

	tests := []struct {
		name     string
		sid      string
		url      string
		want     string
		wantKind backend.ErrorKind
		wantErr  bool
	}{
		{
			name: "appends wav extension",
			sid:  "AC1",
			url:  srv.URL + recordings + "RE1",
			want: "RIFF-data",
		},
		{
			name: "keeps explicit extension",
			sid:  "AC1",
			url:  srv.URL + recordings + "RE1.wav",
			want: "RIFF-data",
		},
		{
			name:     "missing recording",
			sid:      "AC1",
			url:      srv.URL + recordings + "RE9",
			wantErr:  true,
			wantKind: backend.Unavailable,
		},
		{
			name:     "bad credentials",
			sid:      "AC2",
			url:      srv.URL + "/2010-04-01/Accounts/AC2/Recordings/RE1",
			wantErr:  true,
			wantKind: backend.Unavailable,
		},
		{
			name:     "empty recording",
			sid:      "AC1",
			url:      srv.URL + recordings + "RE2",
			wantErr:  true,
			wantKind: backend.InvalidInput,
		},
		{
			name:     "oversize recording",
			sid:      "AC1",
			url:      srv.URL + recordings + "RE3",
			wantErr:  true,
			wantKind: backend.InvalidInput,
		},
		{
			name:     "relative URL",
			sid:      "AC1",
			url:      recordings + "RE1",
			wantErr:  true,
			wantKind: backend.InvalidInput,
		},
		{
			name:     "foreign host",
			sid:      "AC1",
			url:      foreign.URL + recordings + "RE1",
			wantErr:  true,
			wantKind: backend.InvalidInput,
		},
		{
			name:     "another account",
			sid:      "AC1",
			url:      srv.URL + "/2010-04-01/Accounts/AC2/Recordings/RE1",
			wantErr:  true,
			wantKind: backend.InvalidInput,
		},
		{
			name:     "path escapes the recordings",
			sid:      "AC1",
			url:      srv.URL + recordings + "../Calls/CA1",
			wantErr:  true,
			wantKind: backend.InvalidInput,
		},
		{
			name:     "embedded user info",
			sid:      "AC1",
			url:      strings.Replace(srv.URL, "http://", "http://someone@", 1) + recordings + "RE1",
			wantErr:  true,
			wantKind: backend.InvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTwilioFetcher(tt.sid, "token", 5*time.Second, WithAPIBaseURL(srv.URL))
			f.maxBytes = 32

			audio, err := f.Fetch(context.Background(), tt.url)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, backend.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(audio.Data))
			assert.Equal(t, "recording.wav", audio.Filename)
			assert.Equal(t, "audio/wav", audio.ContentType)
		})
	}

	assert.Zero(t, foreignHits.Load(), "credentials were sent to a foreign host")
}

func TestNewTwilioFetcher_DefaultAPIHost(t *testing.T) {
	f := NewTwilioFetcher("AC1", "token", time.Second)

	assert.Equal(t, "https", f.apiBase.Scheme)
	assert.Equal(t, "api.twilio.com", f.apiBase.Host)
	assert.Equal(t, int64(maxRecordingBytes), f.maxBytes)

	_, err := f.Fetch(context.Background(), "https://recordings.example.com/2010-04-01/Accounts/AC1/Recordings/RE1")
	require.Error(t, err)
	assert.Equal(t, backend.InvalidInput, backend.KindOf(err))
}
