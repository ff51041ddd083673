package api_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/micro-nova/deskprofile/internal/api"
	"github.com/micro-nova/deskprofile/internal/auth"
	"github.com/micro-nova/deskprofile/internal/config"
	"github.com/micro-nova/deskprofile/internal/controller"
	"github.com/micro-nova/deskprofile/internal/events"
	"github.com/micro-nova/deskprofile/internal/helper"
	"github.com/micro-nova/deskprofile/internal/maintenance"
	"github.com/micro-nova/deskprofile/internal/models"
	"github.com/micro-nova/deskprofile/internal/platform"
)

type fakeSystem struct {
	backupErr error
	backups   []string
}

func (f *fakeSystem) Info() models.Info {
	return models.Info{Hostname: "test-host", Version: "test", OS: "darwin/arm64", DataDir: "/tmp/dp"}
}

func (f *fakeSystem) Backup() (string, error) {
	if f.backupErr != nil {
		return "", f.backupErr
	}
	file := "/tmp/dp/backups/profiles-2024-01-01.json"
	f.backups = append(f.backups, file)
	return file, nil
}

func (f *fakeSystem) Backups() ([]string, error) {
	return append([]string{}, f.backups...), nil
}

type testEnv struct {
	srv  *httptest.Server
	fake *helper.Fake
	sys  *fakeSystem
	bus  *events.Bus
}

// newTestEnv spins up a full router on the darwin controllers with a fake
// helper runner.
func newTestEnv(t *testing.T, apiKey string) testEnv {
	t.Helper()

	fake := helper.NewFake()
	fake.Set("SwitchAudioSource", helper.Response{Stdout: []string{"Speakers", "Headphones"}})
	displays, audio := platform.New("darwin", fake, config.DefaultSettings().Helpers)

	bus := events.NewBus()
	ctrl := controller.New(config.NewMemStore(), displays, audio, bus)
	sys := &fakeSystem{}

	router := api.NewRouter(ctrl, auth.NewStaticService(apiKey), bus, sys)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return testEnv{srv: srv, fake: fake, sys: sys, bus: bus}
}

func newTestServer(t *testing.T) *httptest.Server {
	return newTestEnv(t, "").srv
}

// do is a convenience helper for making requests to the test server.
func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, bodyReader)
	if err != nil {
		t.Fatalf("NewRequest %s %s: %v", method, path, err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("Do %s %s: %v", method, path, err)
	}
	return resp
}

// decodeJSON reads and decodes a JSON response body into v.
func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
}

// requireStatus fails the test if the response status doesn't match.
func requireStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		t.Fatalf("status = %d, want %d; body: %s", resp.StatusCode, expected, body)
	}
}

func requireErrorCode(t *testing.T, resp *http.Response, status int, code string) {
	t.Helper()
	requireStatus(t, resp, status)
	var appErr models.AppError
	decodeJSON(t, resp, &appErr)
	if appErr.Code != code {
		t.Errorf("error code = %q, want %q (message %q)", appErr.Code, code, appErr.Message)
	}
}

const workJSON = `{
	"id": "a",
	"name": "Work",
	"displays": [{"id": 1, "name": "Display 1", "width": 1920, "height": 1080, "x": 0, "y": 0, "scale_factor": 1, "is_primary": true, "rotation": 0}],
	"audio_settings": {"output_device": "Speakers", "input_device": null, "output_volume": 50, "input_volume": 50},
	"created_at": "2024-01-01T00:00:00Z"
}`

// --- Tests ---

func TestGetDisplays(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "GET", "/api/displays", "")
	requireStatus(t, resp, http.StatusOK)

	var displays []models.DisplayInfo
	decodeJSON(t, resp, &displays)
	if len(displays) == 0 {
		t.Error("GET /api/displays: empty list")
	}
}

func TestGetAudioDevices(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "GET", "/api/audio/devices", "")
	requireStatus(t, resp, http.StatusOK)

	var devices []models.AudioDevice
	decodeJSON(t, resp, &devices)
	if len(devices) != 3 {
		t.Fatalf("expected 2 outputs plus the input placeholder, got %+v", devices)
	}
	if devices[0].ID != "Speakers" || devices[2].ID != models.DefaultInputID {
		t.Errorf("unexpected devices %+v", devices)
	}
}

func TestGetProfiles_Empty(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "GET", "/api/profiles", "")
	requireStatus(t, resp, http.StatusOK)

	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if strings.TrimSpace(string(body)) != "[]" {
		t.Errorf("GET /api/profiles on empty store = %s, want []", body)
	}
}

func TestProfileLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "POST", "/api/profiles", workJSON)
	requireStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = do(t, srv, "GET", "/api/profiles/a", "")
	requireStatus(t, resp, http.StatusOK)
	var p models.Profile
	decodeJSON(t, resp, &p)
	if p.Name != "Work" || len(p.Displays) != 1 {
		t.Errorf("unexpected profile %+v", p)
	}

	resp = do(t, srv, "DELETE", "/api/profiles/a", "")
	requireStatus(t, resp, http.StatusNoContent)
	resp.Body.Close()

	resp = do(t, srv, "GET", "/api/profiles/a", "")
	requireErrorCode(t, resp, http.StatusNotFound, "NOT_FOUND")
}

func TestSaveProfile_Upsert(t *testing.T) {
	srv := newTestServer(t)

	do(t, srv, "POST", "/api/profiles", workJSON).Body.Close()
	do(t, srv, "POST", "/api/profiles", strings.Replace(workJSON, `"Work"`, `"Home"`, 1)).Body.Close()

	resp := do(t, srv, "GET", "/api/profiles", "")
	requireStatus(t, resp, http.StatusOK)
	var profiles []models.Profile
	decodeJSON(t, resp, &profiles)
	if len(profiles) != 1 || profiles[0].Name != "Home" {
		t.Errorf("expected single renamed profile, got %+v", profiles)
	}
}

func TestSaveProfile_InvalidJSON(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "POST", "/api/profiles", `{not valid json`)
	requireErrorCode(t, resp, http.StatusBadRequest, "BAD_REQUEST")
}

func TestSaveProfile_MissingID(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "POST", "/api/profiles", `{"name": "No id"}`)
	requireErrorCode(t, resp, http.StatusBadRequest, "BAD_REQUEST")
}

func TestDeleteProfile_Unknown(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "DELETE", "/api/profiles/missing", "")
	requireStatus(t, resp, http.StatusNoContent)
	resp.Body.Close()
}

func TestApplyProfile(t *testing.T) {
	env := newTestEnv(t, "")

	do(t, env.srv, "POST", "/api/profiles", workJSON).Body.Close()

	resp := do(t, env.srv, "POST", "/api/profiles/a/apply", "")
	requireStatus(t, resp, http.StatusOK)
	var result models.ApplyResult
	decodeJSON(t, resp, &result)
	if result.ProfileID != "a" {
		t.Errorf("profile_id = %q", result.ProfileID)
	}

	var names []string
	for _, c := range env.fake.Calls() {
		names = append(names, c.Name)
	}
	if strings.Join(names, ",") != "displayplacer,SwitchAudioSource,osascript" {
		t.Errorf("unexpected helper calls %v", env.fake.Calls())
	}
}

func TestApplyProfile_NotFound(t *testing.T) {
	env := newTestEnv(t, "")

	resp := do(t, env.srv, "POST", "/api/profiles/missing/apply", "")
	requireErrorCode(t, resp, http.StatusNotFound, "NOT_FOUND")
	if calls := env.fake.Calls(); len(calls) != 0 {
		t.Errorf("expected no helper calls, got %v", calls)
	}
}

func TestApplyProfile_HelperFailed(t *testing.T) {
	env := newTestEnv(t, "")
	env.fake.SetMissing("displayplacer")

	do(t, env.srv, "POST", "/api/profiles", workJSON).Body.Close()

	resp := do(t, env.srv, "POST", "/api/profiles/a/apply", "")
	requireErrorCode(t, resp, http.StatusBadGateway, "HELPER_FAILED")
}

func TestInvoke_ExampleScenario(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "POST", "/api/invoke/save_profile", `{"profile": `+workJSON+`}`)
	requireStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = do(t, srv, "POST", "/api/invoke/get_profiles", "")
	requireStatus(t, resp, http.StatusOK)
	var profiles []models.Profile
	decodeJSON(t, resp, &profiles)
	if len(profiles) != 1 || profiles[0].ID != "a" {
		t.Fatalf("expected exactly profile a, got %+v", profiles)
	}

	resp = do(t, srv, "POST", "/api/invoke/delete_profile", `{"profile_id": "a"}`)
	requireStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = do(t, srv, "POST", "/api/invoke/get_profiles", "{}")
	requireStatus(t, resp, http.StatusOK)
	decodeJSON(t, resp, &profiles)
	if len(profiles) != 0 {
		t.Fatalf("expected empty list, got %+v", profiles)
	}

	resp = do(t, srv, "POST", "/api/invoke/apply_profile", `{"profile_id": "a"}`)
	requireErrorCode(t, resp, http.StatusNotFound, "NOT_FOUND")
}

func TestInvoke_Devices(t *testing.T) {
	srv := newTestServer(t)

	for _, cmd := range []string{"get_displays", "get_audio_devices"} {
		resp := do(t, srv, "POST", "/api/invoke/"+cmd, "")
		requireStatus(t, resp, http.StatusOK)
		var list []json.RawMessage
		decodeJSON(t, resp, &list)
		if len(list) == 0 {
			t.Errorf("%s returned an empty list", cmd)
		}
	}
}

func TestInvoke_MissingArgs(t *testing.T) {
	srv := newTestServer(t)

	for _, cmd := range []string{"save_profile", "delete_profile", "apply_profile"} {
		resp := do(t, srv, "POST", "/api/invoke/"+cmd, "{}")
		requireErrorCode(t, resp, http.StatusBadRequest, "BAD_REQUEST")
	}
}

func TestInvoke_UnknownCommand(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "POST", "/api/invoke/format_disk", "")
	requireErrorCode(t, resp, http.StatusNotFound, "NOT_FOUND")
}

func TestInvoke_InvalidJSON(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "POST", "/api/invoke/get_profiles", "{oops")
	requireErrorCode(t, resp, http.StatusBadRequest, "BAD_REQUEST")
}

func TestGetInfo(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "GET", "/api/info", "")
	requireStatus(t, resp, http.StatusOK)
	var info models.Info
	decodeJSON(t, resp, &info)
	if info.Hostname != "test-host" || info.Version == "" {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestBackup(t *testing.T) {
	env := newTestEnv(t, "")

	resp := do(t, env.srv, "POST", "/api/backup", "")
	requireStatus(t, resp, http.StatusOK)
	var body map[string]string
	decodeJSON(t, resp, &body)
	if !strings.HasSuffix(body["file"], ".json") {
		t.Errorf("unexpected backup response %v", body)
	}

	env.sys.backupErr = maintenance.ErrNothingToBackup
	resp = do(t, env.srv, "POST", "/api/backup", "")
	requireErrorCode(t, resp, http.StatusConflict, "CONFLICT")
}

func TestListBackups(t *testing.T) {
	env := newTestEnv(t, "")

	resp := do(t, env.srv, "GET", "/api/backups", "")
	requireStatus(t, resp, http.StatusOK)
	var files []string
	decodeJSON(t, resp, &files)
	if files == nil || len(files) != 0 {
		t.Errorf("expected an empty JSON array, got %v", files)
	}

	resp = do(t, env.srv, "POST", "/api/backup", "")
	requireStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = do(t, env.srv, "GET", "/api/backups", "")
	requireStatus(t, resp, http.StatusOK)
	decodeJSON(t, resp, &files)
	if len(files) != 1 || !strings.HasSuffix(files[0], "profiles-2024-01-01.json") {
		t.Errorf("unexpected backup list %v", files)
	}
}

func TestNotFound_JSON(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "GET", "/api/nonexistent", "")
	requireErrorCode(t, resp, http.StatusNotFound, "NOT_FOUND")
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "PATCH", "/api/profiles", `{}`)
	requireStatus(t, resp, http.StatusMethodNotAllowed)
	resp.Body.Close()
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "OPTIONS", "/api/profiles", "")
	requireStatus(t, resp, http.StatusNoContent)
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
	resp.Body.Close()
}

func TestAuth_RequiresKey(t *testing.T) {
	env := newTestEnv(t, "s3cret")

	resp := do(t, env.srv, "GET", "/api/profiles", "")
	requireErrorCode(t, resp, http.StatusUnauthorized, "UNAUTHORIZED")

	req, _ := http.NewRequest(http.MethodGet, env.srv.URL+"/api/profiles", nil)
	req.Header.Set("X-Api-Key", "s3cret")
	resp, err := env.srv.Client().Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	requireStatus(t, resp, http.StatusOK)
	resp.Body.Close()
}

func TestSSESubscribe(t *testing.T) {
	env := newTestEnv(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, env.srv.URL+"/api/subscribe", nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	client := &http.Client{
		Transport: &http.Transport{
			DisableCompression: true,
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	scanner := bufio.NewScanner(resp.Body)
	next := func() models.Event {
		t.Helper()
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var ev models.Event
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
				t.Fatalf("SSE data is not valid Event JSON: %v", err)
			}
			return ev
		}
		t.Fatal("SSE stream ended")
		return models.Event{}
	}

	if ev := next(); ev.Type != models.EventProfilesChanged {
		t.Errorf("initial event type = %q", ev.Type)
	}

	// The initial event is written after Subscribe, so the save below is seen.
	do(t, env.srv, "POST", "/api/profiles", workJSON).Body.Close()

	ev := next()
	if ev.Type != models.EventProfilesChanged || len(ev.Profiles) != 1 {
		t.Errorf("unexpected event %+v", ev)
	}
}
