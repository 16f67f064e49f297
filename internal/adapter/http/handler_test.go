package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"resume-optimizer/internal/adapter/repository"
	"resume-optimizer/internal/cleanup"
	"resume-optimizer/internal/domain"
	"resume-optimizer/internal/model"
	"resume-optimizer/internal/storage/local"
	"resume-optimizer/internal/usecase"
)

type stubOptimizer struct {
	calls int
}

func (s *stubOptimizer) OptimizeResume(context.Context, string, string) (*model.OptimizationResult, error) {
	s.calls++
	return &model.OptimizationResult{
		OptimizedResume: "姓名：张三\n教育背景：\n- 某大学",
		MatchScore:      82,
		Suggestions:     []string{"量化成果"},
	}, nil
}

func (s *stubOptimizer) CalculateMatchScore(context.Context, string, string) int {
	s.calls++
	return 70
}

type stubRenderer struct{}

func (stubRenderer) RenderHTMLToPDF(context.Context, string) ([]byte, error) {
	return []byte("%PDF-1.7 stub"), nil
}

type envelope struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	Data        json.RawMessage `json:"data"`
	DownloadURL string          `json:"downloadUrl"`
	FilePath    string          `json:"filePath"`
}

func newTestApp(t *testing.T) (*fiber.App, *stubOptimizer) {
	t.Helper()
	store, err := local.New(t.TempDir())
	if err != nil {
		t.Fatalf("local.New: %v", err)
	}
	opt := &stubOptimizer{}
	proc := usecase.NewProcessor(opt, stubRenderer{}, repository.NewMemoryResumeRepo(), store, cleanup.NewMemoryRegistry(), usecase.Config{})
	return NewApp(NewHandler(proc), AppConfig{}), opt
}

func do(t *testing.T, app *fiber.App, method, target string, body interface{}) (int, envelope, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp.StatusCode, env, raw
}

func TestGenerateMissingFieldsSkipsModel(t *testing.T) {
	app, opt := newTestApp(t)
	for _, body := range []map[string]string{
		{"originalResume": "resume"},
		{"jobDescription": "jd"},
		{"originalResume": "  ", "jobDescription": "jd"},
	} {
		status, env, _ := do(t, app, "POST", "/api/resume/generate", body)
		if status != fiber.StatusBadRequest || env.Success || env.Message != msgMissingInput {
			t.Fatalf("body %v: status=%d env=%+v", body, status, env)
		}
	}
	if opt.calls != 0 {
		t.Fatalf("model called %d times", opt.calls)
	}
}

func TestGenerateThenGet(t *testing.T) {
	app, _ := newTestApp(t)
	status, env, _ := do(t, app, "POST", "/api/resume/generate", map[string]string{
		"originalResume": "我的简历",
		"jobDescription": "后端工程师",
	})
	if status != fiber.StatusOK || !env.Success {
		t.Fatalf("status=%d env=%+v", status, env)
	}
	var data usecase.GenerateResult
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !strings.HasPrefix(data.ID, "resume_") || data.MatchScore != 82 || data.JobDescription != "后端工程师" {
		t.Fatalf("unexpected data %+v", data)
	}

	status, env, _ = do(t, app, "GET", "/api/resume/"+data.ID, nil)
	if status != fiber.StatusOK || !strings.Contains(string(env.Data), "某大学") {
		t.Fatalf("GET status=%d data=%s", status, env.Data)
	}
}

func TestGetUnknownResume(t *testing.T) {
	app, _ := newTestApp(t)
	status, env, _ := do(t, app, "GET", "/api/resume/nope", nil)
	if status != fiber.StatusNotFound || env.Success {
		t.Fatalf("status=%d env=%+v", status, env)
	}
}

func TestUpdate(t *testing.T) {
	app, _ := newTestApp(t)
	status, env, _ := do(t, app, "PUT", "/api/resume/r1", map[string]string{"content": ""})
	if status != fiber.StatusBadRequest || env.Message != msgMissingContent {
		t.Fatalf("status=%d env=%+v", status, env)
	}
	status, env, _ = do(t, app, "PUT", "/api/resume/r1", map[string]string{"content": "新内容"})
	if status != fiber.StatusOK || !strings.Contains(string(env.Data), `"content":"新内容"`) {
		t.Fatalf("status=%d data=%s", status, env.Data)
	}
}

func TestScore(t *testing.T) {
	app, _ := newTestApp(t)
	status, env, _ := do(t, app, "POST", "/api/resume/score", map[string]string{"originalResume": "r", "jobDescription": "j"})
	if status != fiber.StatusOK || string(env.Data) != `{"matchScore":70}` {
		t.Fatalf("status=%d data=%s", status, env.Data)
	}
}

func TestExportAndDownload(t *testing.T) {
	app, _ := newTestApp(t)

	status, env, _ := do(t, app, "POST", "/api/resume/r1/export", map[string]string{})
	if status != fiber.StatusBadRequest {
		t.Fatalf("export without content: status=%d", status)
	}

	status, env, _ = do(t, app, "POST", "/api/resume/r1/export", map[string]string{"content": "技能：\n- Go"})
	if status != fiber.StatusOK || !env.Success || env.FilePath == "" {
		t.Fatalf("status=%d env=%+v", status, env)
	}
	if !strings.HasPrefix(env.DownloadURL, "/api/resume/r1/download?file=resume_r1_") {
		t.Fatalf("downloadUrl = %q", env.DownloadURL)
	}

	req := httptest.NewRequest("GET", env.DownloadURL, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Fatalf("download status=%d body=%q", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, `attachment; filename="resume_r1.pdf"`) {
		t.Fatalf("Content-Disposition = %q", cd)
	}
}

func TestDownloadErrors(t *testing.T) {
	app, _ := newTestApp(t)

	status, env, _ := do(t, app, "GET", "/api/resume/r1/download", nil)
	if status != fiber.StatusBadRequest || env.Message != msgMissingFile {
		t.Fatalf("missing param: status=%d env=%+v", status, env)
	}

	status, env, _ = do(t, app, "GET", "/api/resume/r1/download?file=resume_r1_1.pdf", nil)
	if status != fiber.StatusNotFound || env.Message != msgFileNotFound {
		t.Fatalf("absent file: status=%d env=%+v", status, env)
	}

	status, _, _ = do(t, app, "GET", "/api/resume/r1/download?file="+url.QueryEscape("../secret.pdf"), nil)
	if status != fiber.StatusBadRequest {
		t.Fatalf("traversal: status=%d", status)
	}
}

func TestExtract(t *testing.T) {
	app, _ := newTestApp(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="cv.txt"`)
	h.Set("Content-Type", "text/plain")
	part, _ := mw.CreatePart(h)
	part.Write([]byte("姓名：张三\n"))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/resume/extract", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	defer resp.Body.Close()
	var env envelope
	json.NewDecoder(resp.Body).Decode(&env)
	if resp.StatusCode != fiber.StatusOK || string(env.Data) != `{"text":"姓名：张三"}` {
		t.Fatalf("status=%d data=%s", resp.StatusCode, env.Data)
	}

	status, env2, _ := do(t, app, "POST", "/api/resume/extract", map[string]string{})
	if status != fiber.StatusBadRequest || env2.Message != msgMissingFile {
		t.Fatalf("no file: status=%d env=%+v", status, env2)
	}
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	status, _, raw := do(t, app, "GET", "/health", nil)
	if status != fiber.StatusOK || !strings.Contains(string(raw), `"status":"ok"`) {
		t.Fatalf("status=%d body=%s", status, raw)
	}
}

type downRepo struct{}

func (downRepo) Save(context.Context, *domain.Resume) error { return errors.New("db down") }
func (downRepo) Get(context.Context, string) (*domain.Resume, error) {
	return nil, errors.New("db down")
}

func TestExportRepoOutageIsServerError(t *testing.T) {
	store, err := local.New(t.TempDir())
	if err != nil {
		t.Fatalf("local.New: %v", err)
	}
	proc := usecase.NewProcessor(&stubOptimizer{}, stubRenderer{}, downRepo{}, store, cleanup.NewMemoryRegistry(), usecase.Config{})
	app := NewApp(NewHandler(proc), AppConfig{})

	status, env, _ := do(t, app, "POST", "/api/resume/r1/export", map[string]string{"content": " "})
	if status != fiber.StatusInternalServerError || env.Message != msgExportFailed {
		t.Fatalf("status=%d env=%+v", status, env)
	}
}

func TestUpdatedResumeReadsBackEmptySuggestions(t *testing.T) {
	app, _ := newTestApp(t)
	if status, _, _ := do(t, app, "PUT", "/api/resume/r2", map[string]string{"content": "正文"}); status != fiber.StatusOK {
		t.Fatalf("PUT status=%d", status)
	}
	status, env, _ := do(t, app, "GET", "/api/resume/r2", nil)
	if status != fiber.StatusOK || !strings.Contains(string(env.Data), `"suggestions":[]`) {
		t.Fatalf("status=%d data=%s", status, env.Data)
	}
}
