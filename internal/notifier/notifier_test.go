package notifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcess struct {
	pid        int
	executable string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 0 }
func (p fakeProcess) Executable() string { return p.executable }

func withFakeProcess(t *testing.T, proc ps.Process, err error) {
	t.Helper()
	original := findProcessFunc
	findProcessFunc = func(pid int) (ps.Process, error) { return proc, err }
	t.Cleanup(func() { findProcessFunc = original })
}

func writeLockfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clara-tray.lock")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	withFakeProcess(t, fakeProcess{pid: 4242, executable: "clara-tray"}, nil)

	path := writeLockfile(t, "8931|4242|s3cret\n")

	port, secret, err := findAndValidateTrayProcess(path)
	require.NoError(t, err)
	assert.Equal(t, "8931", port)
	assert.Equal(t, "s3cret", secret)
}

func TestFindAndValidateTrayProcess_MissingLockfile(t *testing.T) {
	_, _, err := findAndValidateTrayProcess(filepath.Join(t.TempDir(), "nope.lock"))
	assert.EqualError(t, err, "clara-tray is not running")
}

func TestFindAndValidateTrayProcess_MalformedLockfile(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"too few fields", "8931|4242"},
		{"empty port", "|4242|s3cret"},
		{"non-numeric port", "abc|4242|s3cret"},
		{"port out of range", "70000|4242|s3cret"},
		{"bad pid", "8931|abc|s3cret"},
		{"empty secret", "8931|4242| "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			withFakeProcess(t, fakeProcess{pid: 4242, executable: "clara-tray"}, nil)
			path := writeLockfile(t, tc.content)

			_, _, err := findAndValidateTrayProcess(path)
			assert.Error(t, err)
		})
	}
}

func TestFindAndValidateTrayProcess_DeadProcess(t *testing.T) {
	withFakeProcess(t, nil, nil)

	path := writeLockfile(t, "8931|4242|s3cret")

	_, _, err := findAndValidateTrayProcess(path)
	assert.EqualError(t, err, "clara-tray process not running")
}

func TestSendNotification(t *testing.T) {
	var gotSecret string
	var gotPayload WebhookPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Clara-Secret")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	err = sendNotification(u.Port(), "s3cret", WebhookPayload{Text: "Quick tidy?", DurationMs: 8000})
	require.NoError(t, err)
	assert.Equal(t, "s3cret", gotSecret)
	assert.Equal(t, "Quick tidy?", gotPayload.Text)
}

func TestSendNotification_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad secret", http.StatusUnauthorized)
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	err = sendNotification(u.Port(), "wrong", WebhookPayload{Text: "hi"})
	assert.ErrorContains(t, err, "status 401")
}

func TestFindAndValidateTrayProcess_WrongExecutable(t *testing.T) {
	withFakeProcess(t, fakeProcess{pid: 4242, executable: "definitely-not-the-tray"}, nil)

	path := writeLockfile(t, "8931|4242|s3cret")

	_, _, err := findAndValidateTrayProcess(path)
	assert.ErrorContains(t, err, "is not clara-tray")
}
