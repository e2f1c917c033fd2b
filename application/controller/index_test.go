package controller

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"facemark.io/application/admission"
	"facemark.io/application/constants"
	"facemark.io/application/controller/dto"
	"facemark.io/application/interfaces"
	"facemark.io/application/repository"
	"facemark.io/entities"
	"facemark.io/infrastructure/database/connection/datastore"
	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("DB_PROVIDER", "memory")
	datastore.ConnectToDatabase()
	os.Exit(m.Run())
}

func responseBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := map[string]any{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("could not decode response %q: %v", recorder.Body.String(), err)
	}
	return body
}

func TestAdmissionErrorResponses(t *testing.T) {
	capture := func(err error) (int, map[string]any) {
		recorder := httptest.NewRecorder()
		ginCtx, _ := gin.CreateTestContext(recorder)
		respondAdmissionError(ginCtx, err)
		return recorder.Code, responseBody(t, recorder)
	}

	noFaceCode, noFaceBody := capture(admission.ErrNoFaceDetected)
	timeoutCode, timeoutBody := capture(admission.ErrExtractionTimeout)

	// a slow extractor reads like a missing face to the client
	if timeoutCode != noFaceCode {
		t.Errorf("expected status %d for a timeout, got %d", noFaceCode, timeoutCode)
	}
	if timeoutBody["message"] != noFaceBody["message"] {
		t.Errorf("timeout message %q diverges from %q", timeoutBody["message"], noFaceBody["message"])
	}
	if timeoutBody["response_code"] != float64(constants.NO_FACE_IN_IMAGE) {
		t.Errorf("expected response code %d, got %v", constants.NO_FACE_IN_IMAGE, timeoutBody["response_code"])
	}
}

func TestSearchStudents(t *testing.T) {
	seed := []entities.Student{
		{StudentID: "STU-201", Name: "Ada Lovelace", Email: "ada@school.edu", Status: "active"},
		{StudentID: "STU-202", Name: "Grace Hopper", Email: "grace@school.edu", Status: "active"},
	}
	for _, student := range seed {
		if _, err := repository.StudentRepo().CreateOne(student); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	search := func(query string) (int, map[string]any) {
		recorder := httptest.NewRecorder()
		ginCtx, _ := gin.CreateTestContext(recorder)
		SearchStudents(&interfaces.ApplicationContext[any]{
			Ctx:   ginCtx,
			Query: url.Values{"q": []string{query}},
		})
		return recorder.Code, responseBody(t, recorder)
	}

	code, body := search("lovelace")
	if code != 200 {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["body"].(map[string]any)["count"] != float64(1) {
		t.Errorf("expected a single hit for lovelace, got %v", body["body"])
	}

	// single-character queries are rejected before touching the store
	code, _ = search("a")
	if code != 400 {
		t.Errorf("expected 400 for a too-short query, got %d", code)
	}
}

func TestDeviceSyncWritesAuditLog(t *testing.T) {
	if _, err := repository.DeviceRepo().CreateOne(entities.Device{
		DeviceID:   "TERM-77",
		DeviceName: "Gate A terminal",
		DeviceType: "terminal",
		Status:     "online",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recorder := httptest.NewRecorder()
	ginCtx, _ := gin.CreateTestContext(recorder)
	SyncDevice(&interfaces.ApplicationContext[dto.DeviceSyncDTO]{
		Ctx: ginCtx,
		Body: &dto.DeviceSyncDTO{
			DeviceID:  "TERM-77",
			IPAddress: "10.0.0.4",
			Status:    "online",
		},
	})
	if recorder.Code != 200 {
		t.Fatalf("expected 200 from sync, got %d", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	ginCtx, _ = gin.CreateTestContext(recorder)
	FetchDeviceLogs(&interfaces.ApplicationContext[any]{
		Ctx:   ginCtx,
		Param: map[string]string{"deviceID": "TERM-77"},
		Query: url.Values{},
	})
	if recorder.Code != 200 {
		t.Fatalf("expected 200 from logs fetch, got %d", recorder.Code)
	}
	payload := responseBody(t, recorder)["body"].(map[string]any)
	if payload["total"] != float64(1) {
		t.Fatalf("expected one log entry, got %v", payload["total"])
	}
	entry := payload["logs"].([]any)[0].(map[string]any)
	if entry["event"] != "sync" || entry["ipAddress"] != "10.0.0.4" {
		t.Errorf("log entry not recorded as expected: %v", entry)
	}

	recorder = httptest.NewRecorder()
	ginCtx, _ = gin.CreateTestContext(recorder)
	FetchDeviceLogs(&interfaces.ApplicationContext[any]{
		Ctx:   ginCtx,
		Param: map[string]string{"deviceID": "TERM-404"},
		Query: url.Values{},
	})
	if recorder.Code != 404 {
		t.Errorf("expected 404 for an unregistered device, got %d", recorder.Code)
	}
}
