package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"jamesfarrell.me/youtube-to-blog/internal/batch"
	"jamesfarrell.me/youtube-to-blog/internal/config"
	"jamesfarrell.me/youtube-to-blog/internal/transcription"
)

const fakeYtDlpScript = `#!/bin/sh
for a in "$@"; do
  if [ "$a" = "-j" ]; then
    cat <<'JSON'
{"id":"Y9QfOPxmxVI","title":"My Video!","subtitles":{"en":[{"ext":"vtt","url":"https://example.com/en.vtt"}]},"automatic_captions":{}}
JSON
    exit 0
  fi
done
out=""
lang=""
while [ $# -gt 0 ]; do
  case "$1" in
    -o) out="$2"; shift ;;
    --sub-langs) lang="$2"; shift ;;
  esac
  shift
done
base=$(printf '%s' "$out" | sed 's/\.%(ext)s$//')
cat > "$base.$lang.vtt" <<'VTT'
WEBVTT

00:00:00.000 --> 00:00:02.000
Hello there

00:00:02.000 --> 00:00:04.000
Hello there

00:00:04.000 --> 00:00:06.000
General Kenobi

00:00:06.000 --> 00:00:08.000
General Kenobi
VTT
`

type cliEnv struct {
	dir        string
	cfg        config.Config
	configPath string
}

func setupCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake yt-dlp needs a POSIX shell")
	}
	dir := t.TempDir()
	ytdlp := filepath.Join(dir, "yt-dlp")
	require.NoError(t, os.WriteFile(ytdlp, []byte(fakeYtDlpScript), 0o755))

	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("SERVICE_API_KEY", "")
	t.Setenv("YT2BLOG_LANGUAGE", "")
	t.Setenv("YT2BLOG_LOG_LEVEL", "")

	cfg := config.Default()
	cfg.TranscriptsDir = filepath.Join(dir, "transcripts")
	cfg.BlogsDir = filepath.Join(dir, "blogs")
	cfg.SubtitlesDir = filepath.Join(dir, "temp_subtitles")
	cfg.InputFile = filepath.Join(dir, "input_url.txt")
	cfg.QueueFile = filepath.Join(dir, "input_url.csv")
	cfg.YtDlpPath = ytdlp
	cfg.Log.Format = "text"

	env := &cliEnv{dir: dir, cfg: cfg, configPath: filepath.Join(dir, "config.yaml")}
	env.writeConfig(t)
	return env
}

func (e *cliEnv) writeConfig(t *testing.T) {
	t.Helper()
	data, err := yaml.Marshal(e.cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(e.configPath, data, 0o644))
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func fakeOpenAI(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","model":"o1-preview",
			"choices":[{"index":0,"message":{"role":"assistant","content":"# Generated post"},"finish_reason":"stop"}]}`))
	}))
	t.Cleanup(srv.Close)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", srv.URL+"/v1")
}

func TestFetchCommand(t *testing.T) {
	env := setupCLIEnv(t)

	out, err := env.run(t, "fetch", "https://www.youtube.com/watch?v=Y9QfOPxmxVI", "not-a-url")
	require.NoError(t, err)
	assert.Contains(t, out, "transcribed\thttps://www.youtube.com/watch?v=Y9QfOPxmxVI\tMy-Video")
	assert.Contains(t, out, "failed\tnot-a-url")
	assert.Contains(t, out, "Summary: failed=1 transcribed=1")
	assert.Contains(t, out, "Processing completed.")

	data, err := os.ReadFile(filepath.Join(env.cfg.TranscriptsDir, "My-Video.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Hello there\nGeneral Kenobi", string(data))
	assert.NoDirExists(t, env.cfg.SubtitlesDir)
}

func TestFetchCommandAdjacentDedup(t *testing.T) {
	env := setupCLIEnv(t)
	env.cfg.Dedup = "adjacent"
	env.writeConfig(t)

	_, err := env.run(t, "fetch", "https://youtu.be/Y9QfOPxmxVI")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(env.cfg.TranscriptsDir, "My-Video.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Hello there\nGeneral Kenobi", string(data))
}

func TestFetchCommandNoURLs(t *testing.T) {
	env := setupCLIEnv(t)
	require.NoError(t, os.WriteFile(env.cfg.InputFile, []byte("\n\n"), 0o644))

	_, err := env.run(t, "fetch")
	assert.EqualError(t, err, "no URLs to process")
}

func TestFetchCommandUnavailableLanguage(t *testing.T) {
	env := setupCLIEnv(t)

	out, err := env.run(t, "--language", "de", "fetch", "https://youtu.be/Y9QfOPxmxVI")
	require.NoError(t, err)
	assert.Contains(t, out, "no-content\thttps://youtu.be/Y9QfOPxmxVI")
	assert.NoFileExists(t, filepath.Join(env.cfg.TranscriptsDir, "My-Video.txt"))
}

func TestBatchCommand(t *testing.T) {
	env := setupCLIEnv(t)
	fakeOpenAI(t)
	require.NoError(t, os.WriteFile(env.cfg.QueueFile, []byte("url,processed\nhttps://youtu.be/Y9QfOPxmxVI,False\nhttps://youtu.be/aaaaaaaaaaa,True\n"), 0o644))

	out, err := env.run(t, "batch")
	require.NoError(t, err)
	assert.Contains(t, out, "published\thttps://youtu.be/Y9QfOPxmxVI\tMy-Video")

	post, err := os.ReadFile(filepath.Join(env.cfg.BlogsDir, "My-Video.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Generated post", string(post))

	queue, err := os.ReadFile(env.cfg.QueueFile)
	require.NoError(t, err)
	assert.Equal(t, "url,processed\nhttps://youtu.be/Y9QfOPxmxVI,True\nhttps://youtu.be/aaaaaaaaaaa,True\n", string(queue))

	out, err = env.run(t, "batch")
	require.NoError(t, err)
	assert.Equal(t, "No pending URLs.\n", out)
}

func TestBatchCommandNeedsOpenAIKey(t *testing.T) {
	env := setupCLIEnv(t)
	require.NoError(t, os.WriteFile(env.cfg.QueueFile, []byte("url,processed\nhttps://youtu.be/Y9QfOPxmxVI,False\n"), 0o644))

	_, err := env.run(t, "batch")
	assert.ErrorContains(t, err, "OPENAI_API_KEY")

	out, err := env.run(t, "batch", "--transcripts-only")
	require.NoError(t, err)
	assert.Contains(t, out, "transcribed\thttps://youtu.be/Y9QfOPxmxVI")
}

func TestBlogCommand(t *testing.T) {
	env := setupCLIEnv(t)
	fakeOpenAI(t)
	transcript := filepath.Join(env.dir, "My-Video.txt")
	require.NoError(t, os.WriteFile(transcript, []byte("Hello there"), 0o644))

	out, err := env.run(t, "blog", transcript)
	require.NoError(t, err)
	dest := filepath.Join(env.cfg.BlogsDir, "My-Video.md")
	assert.Contains(t, out, "Blog post saved to "+dest)
	assert.FileExists(t, dest)

	explicit := filepath.Join(env.dir, "out", "post.md")
	_, err = env.run(t, "blog", transcript, "--out", explicit)
	require.NoError(t, err)
	assert.FileExists(t, explicit)
}

func TestBlogCommandPreview(t *testing.T) {
	env := setupCLIEnv(t)
	fakeOpenAI(t)
	transcript := filepath.Join(env.dir, "My-Video.txt")
	require.NoError(t, os.WriteFile(transcript, []byte("Hello there"), 0o644))

	out, err := env.run(t, "blog", transcript, "--preview")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated post")
}

func TestBlogCommandEmptyTranscript(t *testing.T) {
	env := setupCLIEnv(t)
	fakeOpenAI(t)
	transcript := filepath.Join(env.dir, "empty.txt")
	require.NoError(t, os.WriteFile(transcript, []byte("  \n"), 0o644))

	_, err := env.run(t, "blog", transcript)
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(env.cfg.BlogsDir, "empty.md"))
}

func TestInvalidConfiguration(t *testing.T) {
	env := setupCLIEnv(t)
	env.cfg.SubtitleFormat = "ass"
	env.writeConfig(t)

	_, err := env.run(t, "fetch", "https://youtu.be/Y9QfOPxmxVI")
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestServeRequiresAPIKey(t *testing.T) {
	env := setupCLIEnv(t)

	_, err := env.run(t, "serve")
	assert.ErrorContains(t, err, "SERVICE_API_KEY")
}

func TestWriteOutcomes(t *testing.T) {
	outcomes := []batch.Outcome{
		{URL: "https://youtu.be/aaaaaaaaaaa", Title: "First", Status: transcription.StatusTranscribed},
		{URL: "https://youtu.be/bbbbbbbbbbb", Status: transcription.StatusNoContent, Reason: "no captions in requested language"},
	}

	var plain bytes.Buffer
	writeOutcomes(&plain, outcomes, false)
	assert.Equal(t,
		"transcribed\thttps://youtu.be/aaaaaaaaaaa\tFirst\t\n"+
			"no-content\thttps://youtu.be/bbbbbbbbbbb\t\tno captions in requested language\n"+
			"Summary: no-content=1 transcribed=1\n",
		plain.String())

	var table bytes.Buffer
	writeOutcomes(&table, outcomes, true)
	lines := strings.Split(table.String(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "╭"))
	assert.Contains(t, table.String(), "STATUS")
	assert.Contains(t, table.String(), "https://youtu.be/aaaaaaaaaaa")

	var empty bytes.Buffer
	writeOutcomes(&empty, nil, false)
	assert.Empty(t, empty.String())
}
