package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/lexicon-srs/internal/api"
	"github.com/phrazzld/lexicon-srs/internal/config"
	"github.com/phrazzld/lexicon-srs/internal/platform/logger"
	"github.com/phrazzld/lexicon-srs/internal/platform/migrations"
	"github.com/phrazzld/lexicon-srs/internal/platform/sqlite"
)

// isolatedOptions keeps config.Load away from files in the working directory.
func isolatedOptions(t *testing.T) config.Options {
	t.Helper()
	dir := t.TempDir()
	return config.Options{ConfigPaths: []string{dir}, DotEnvFile: filepath.Join(dir, ".env")}
}

func sqliteFileURL(t *testing.T) string {
	t.Helper()
	return "file:" + filepath.Join(t.TempDir(), "lexicon.db") + "?_foreign_keys=on"
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, f *cliFlags)
		wantErr bool
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, f *cliFlags) {
				assert.Empty(t, f.migrate)
				assert.Empty(t, f.importPath)
				assert.Equal(t, "A", f.importColumn)
				assert.Equal(t, 2, f.importStart)
			},
		},
		{
			name: "migrate",
			args: []string{"-migrate", "status"},
			check: func(t *testing.T, f *cliFlags) {
				assert.Equal(t, "status", f.migrate)
			},
		},
		{
			name: "import with column",
			args: []string{"-import", "words.xlsx", "-import-column", "C", "-import-sheet", "Lexicon"},
			check: func(t *testing.T, f *cliFlags) {
				assert.Equal(t, "words.xlsx", f.importPath)
				assert.Equal(t, "C", f.importColumn)
				assert.Equal(t, "Lexicon", f.importSheet)
			},
		},
		{name: "migrate and import", args: []string{"-migrate", "up", "-import", "x.csv"}, wantErr: true},
		{name: "stray argument", args: []string{"serve"}, wantErr: true},
		{name: "unknown flag", args: []string{"-verbose"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := parseFlags(tc.args)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.check(t, f)
		})
	}
}

func TestRunMigrateAndImport(t *testing.T) {
	ctx := context.Background()
	dbURL := sqliteFileURL(t)
	t.Setenv("LEXICON_DATABASE_URL", dbURL)
	opts := isolatedOptions(t)

	require.NoError(t, run(ctx, []string{"-migrate", "up"}, opts))
	assert.Error(t, run(ctx, []string{"-migrate", "sideways"}, opts))

	csvPath := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("id\n1001\n1002\n1001\n"), 0o600))
	require.NoError(t, run(ctx, []string{"-import", csvPath}, opts))

	db, err := sqlite.Open(ctx, dbURL)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	version, err := migrations.CurrentVersion(db.DB, migrations.DialectSQLite)
	require.NoError(t, err)
	assert.Greater(t, version, int64(0))

	words, err := sqlite.NewTransactor(db, nil).Stores().Words.List(ctx)
	require.NoError(t, err)
	require.Len(t, words, 2)
	for _, w := range words {
		assert.Equal(t, 0, w.IntervalIndex)
	}
}

func TestRunServesUntilCancelled(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	t.Setenv("LEXICON_DATABASE_URL", sqliteFileURL(t))
	t.Setenv("LEXICON_SERVER_PORT", fmt.Sprint(port))
	t.Setenv("LEXICON_REMINDER_CHECK_INTERVAL", "1h")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, nil, isolatedOptions(t)) }()

	healthURL := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	assert.Eventually(t, func() bool {
		resp, err := http.Get(healthURL)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestApplicationStudyFlow(t *testing.T) {
	ctx := context.Background()
	t.Setenv("LEXICON_DATABASE_URL", ":memory:")
	cfg, err := config.LoadWithOptions(isolatedOptions(t))
	require.NoError(t, err)

	var logs logger.TestLogBuffer
	log := logger.New(&logs, "debug")

	db, err := openDatabase(ctx, cfg.Database, log)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	require.NoError(t, migrations.Up(db.sql, cfg.Database.Driver, log))

	app, err := newApplication(cfg, log, db)
	require.NoError(t, err)
	require.NotNil(t, app.reminders, "reminders are enabled by default")

	srv := httptest.NewServer(api.NewRouter(app.studyService, log))
	defer srv.Close()

	post := func(path, body string) *http.Response {
		resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		return resp
	}
	getJSON := func(path string, v interface{}) {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}

	resp := post("/api/words", `{"ids":["w1","w2"]}`)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = post("/api/words/w1/answer", `{"quality":"good"}`)
	var answer api.AnswerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&answer))
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Greater(t, answer.Word.IntervalIndex, 0)
	assert.True(t, answer.Event.FirstExposure)

	resp = post("/api/words/unknown/answer", `{"quality":"good"}`)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var fresh api.WordListResponse
	getJSON("/api/words/new", &fresh)
	require.Equal(t, 1, fresh.Count)
	assert.Equal(t, "w2", fresh.Words[0].ID)

	var act api.ActivityResponse
	getJSON("/api/activity", &act)
	assert.Equal(t, 1, act.Summary.Today)
	assert.Equal(t, 1, act.Summary.New)

	// The recorded answer triggered a reminder check through the emitter.
	entries, err := logs.EntriesWithMessage("reminder thresholds changed")
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
