package admission

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"time"

	"facemark.io/application/constants"
	"facemark.io/entities"
	"facemark.io/infrastructure/database"
	"facemark.io/infrastructure/vision/types"
)

type fakeExtractor struct {
	vector types.FaceVector
	err    error
	calls  int
}

func (extractor *fakeExtractor) Extract(ctx context.Context, imageBytes []byte) (types.FaceVector, error) {
	extractor.calls++
	if extractor.err != nil {
		return nil, extractor.err
	}
	return extractor.vector, nil
}

func (extractor *fakeExtractor) Dimensions() int {
	return len(extractor.vector)
}

type fakeStore struct {
	persons  map[string]*Person
	records  []entities.AttendanceRecord
	counters map[string]map[string]int64

	// simulates the race where two submissions pass the read before either
	// insert lands; the unique index then decides
	skipDuplicateRead bool
	failCounters      bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		persons:  map[string]*Person{},
		counters: map[string]map[string]int64{},
	}
}

func personKey(role PersonRole, personID string) string {
	return string(role) + "/" + personID
}

func (store *fakeStore) addPerson(role PersonRole, personID string, name string, reference []float64) {
	store.persons[personKey(role, personID)] = &Person{
		ID:        personID,
		PersonID:  personID,
		Name:      name,
		Reference: reference,
	}
}

func (store *fakeStore) FindPerson(ctx context.Context, role PersonRole, personID string) (*Person, error) {
	person, ok := store.persons[personKey(role, personID)]
	if !ok {
		return nil, nil
	}
	copied := *person
	return &copied, nil
}

func (store *fakeStore) FindAttendance(ctx context.Context, personID string, subject string, from time.Time, to time.Time) (*entities.AttendanceRecord, error) {
	if store.skipDuplicateRead {
		return nil, nil
	}
	for i := range store.records {
		record := store.records[i]
		if record.StudentID == personID && record.Subject == subject &&
			!record.Day.Before(from) && record.Day.Before(to) {
			return &record, nil
		}
	}
	return nil, nil
}

func (store *fakeStore) InsertAttendance(ctx context.Context, record entities.AttendanceRecord) (*entities.AttendanceRecord, error) {
	for _, existing := range store.records {
		if existing.StudentID == record.StudentID && existing.Subject == record.Subject && existing.Day.Equal(record.Day) {
			return nil, database.ErrDuplicateKey
		}
	}
	store.records = append(store.records, record)
	return &record, nil
}

func (store *fakeStore) IncrementCounters(ctx context.Context, role PersonRole, personID string, subject string, present bool) error {
	if store.failCounters {
		return errors.New("counter write failed")
	}
	fields := store.counters[personID]
	if fields == nil {
		fields = map[string]int64{}
		store.counters[personID] = fields
	}
	fields["totalSessions"]++
	fields["subjectsTotal."+subject]++
	if present {
		fields["totalAttendance"]++
		fields["subjectsAttendance."+subject]++
	}
	return nil
}

func (store *fakeStore) SetReference(ctx context.Context, role PersonRole, personID string, vector []float64, imageRef string) error {
	person, ok := store.persons[personKey(role, personID)]
	if !ok {
		return errors.New("person not found")
	}
	person.Reference = vector
	return nil
}

type fakeScheduler struct {
	scheduled int
}

func (scheduler *fakeScheduler) ScheduleCounterSync(role PersonRole, personID string, subject string, present bool) {
	scheduler.scheduled++
}

// a real, decodable JPEG so the imaging stage passes. the fake extractor
// decides what face it "contains"
func testImagePayload(t *testing.T) string {
	t.Helper()
	canvas := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			canvas.Set(x, y, color.RGBA{R: 120, G: 90, B: 60, A: 255})
		}
	}
	var buffer bytes.Buffer
	if err := jpeg.Encode(&buffer, canvas, nil); err != nil {
		t.Fatalf("could not encode test image: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buffer.Bytes())
}

func testVector(seed float64) []float64 {
	vector := make([]float64, 128)
	for i := range vector {
		vector[i] = seed
	}
	return vector
}

func newTestService(store *fakeStore, extractor *fakeExtractor) *Service {
	return NewService(extractor, store, nil, nil, DefaultThreshold)
}

func TestAdmitLazyEnrollment(t *testing.T) {
	store := newFakeStore()
	store.addPerson(RoleStudent, "STU-1", "Asha Rao", nil)
	extractor := &fakeExtractor{vector: testVector(0.25)}
	service := newTestService(store, extractor)

	result, err := service.Admit(context.Background(), MarkParams{
		Role:     RoleStudent,
		PersonID: "STU-1",
		Subject:  "Physics",
		Image:    testImagePayload(t),
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !result.Enrolled {
		t.Error("expected the first submission to enroll the person")
	}
	if result.Distance != 0.0 {
		t.Errorf("expected the enrollment submission to report distance 0.0 but got %v", result.Distance)
	}
	if result.Record == nil || result.Record.Status != constants.ATTENDANCE_STATUS_PRESENT {
		t.Errorf("expected a persisted present record but got %+v", result.Record)
	}
	if result.Record.MatchDistance == nil || *result.Record.MatchDistance != 0.0 {
		t.Errorf("expected the record to carry distance 0.0 but got %v", result.Record.MatchDistance)
	}
	if len(store.persons[personKey(RoleStudent, "STU-1")].Reference) != 128 {
		t.Error("expected the probe to become the stored reference")
	}
	counters := store.counters["STU-1"]
	if counters["totalSessions"] != 1 || counters["totalAttendance"] != 1 {
		t.Errorf("expected both tallies at 1 but got %v", counters)
	}
	if counters["subjectsTotal.Physics"] != 1 || counters["subjectsAttendance.Physics"] != 1 {
		t.Errorf("expected subject tallies at 1 but got %v", counters)
	}
}

func TestAdmitSelfMatchAfterEnrollment(t *testing.T) {
	store := newFakeStore()
	store.addPerson(RoleStudent, "STU-1", "Asha Rao", testVector(0.25))
	extractor := &fakeExtractor{vector: testVector(0.25)}
	service := newTestService(store, extractor)

	result, err := service.Admit(context.Background(), MarkParams{
		Role:     RoleStudent,
		PersonID: "STU-1",
		Subject:  "Physics",
		Image:    testImagePayload(t),
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if result.Enrolled {
		t.Error("an already enrolled person must not be re-enrolled")
	}
	if result.Distance != 0.0 {
		t.Errorf("expected an exact self-match but got distance %v", result.Distance)
	}
}

func TestAdmitFaceMismatch(t *testing.T) {
	store := newFakeStore()
	store.addPerson(RoleStudent, "STU-1", "Asha Rao", testVector(0.9))
	extractor := &fakeExtractor{vector: testVector(0.1)}
	service := newTestService(store, extractor)

	_, err := service.Admit(context.Background(), MarkParams{
		Role:     RoleStudent,
		PersonID: "STU-1",
		Subject:  "Physics",
		Image:    testImagePayload(t),
	})
	if !errors.Is(err, ErrFaceMismatch) {
		t.Fatalf("expected ErrFaceMismatch but got %v", err)
	}
	if len(store.records) != 0 {
		t.Error("a rejected submission must not persist a record")
	}
	if len(store.counters) != 0 {
		t.Error("a rejected submission must not move counters")
	}
}

func TestAdmitRejectsSecondMarkSameDay(t *testing.T) {
	store := newFakeStore()
	store.addPerson(RoleStudent, "STU-1", "Asha Rao", nil)
	extractor := &fakeExtractor{vector: testVector(0.25)}
	service := newTestService(store, extractor)
	payload := testImagePayload(t)

	if _, err := service.Admit(context.Background(), MarkParams{
		Role: RoleStudent, PersonID: "STU-1", Subject: "Physics", Image: payload,
	}); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	_, err := service.Admit(context.Background(), MarkParams{
		Role: RoleStudent, PersonID: "STU-1", Subject: "Physics", Image: payload,
	})
	if !errors.Is(err, ErrAlreadyMarked) {
		t.Fatalf("expected ErrAlreadyMarked but got %v", err)
	}
	if len(store.records) != 1 {
		t.Errorf("expected exactly one record but found %d", len(store.records))
	}
}

func TestAdmitAllowsDifferentSubjectsSameDay(t *testing.T) {
	store := newFakeStore()
	store.addPerson(RoleStudent, "STU-1", "Asha Rao", nil)
	extractor := &fakeExtractor{vector: testVector(0.25)}
	service := newTestService(store, extractor)
	payload := testImagePayload(t)

	for _, subject := range []string{"Physics", "Chemistry"} {
		if _, err := service.Admit(context.Background(), MarkParams{
			Role: RoleStudent, PersonID: "STU-1", Subject: subject, Image: payload,
		}); err != nil {
			t.Fatalf("submission for %s failed: %v", subject, err)
		}
	}
	if len(store.records) != 2 {
		t.Errorf("expected two records but found %d", len(store.records))
	}
	counters := store.counters["STU-1"]
	if counters["totalSessions"] != 2 {
		t.Errorf("expected two sessions but got %v", counters["totalSessions"])
	}
}

func TestAdmitAllowsSameSubjectAcrossDays(t *testing.T) {
	store := newFakeStore()
	store.addPerson(RoleStudent, "STU-1", "Asha Rao", nil)
	extractor := &fakeExtractor{vector: testVector(0.25)}
	service := newTestService(store, extractor)
	payload := testImagePayload(t)

	dayOne := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	dayTwo := dayOne.AddDate(0, 0, 1)
	for _, at := range []time.Time{dayOne, dayTwo} {
		if _, err := service.Admit(context.Background(), MarkParams{
			Role: RoleStudent, PersonID: "STU-1", Subject: "Physics", Image: payload, At: at,
		}); err != nil {
			t.Fatalf("submission at %v failed: %v", at, err)
		}
	}
	if len(store.records) != 2 {
		t.Errorf("expected two records but found %d", len(store.records))
	}
}

func TestAdmitDuplicateWindowUsesUTCDay(t *testing.T) {
	store := newFakeStore()
	store.addPerson(RoleStudent, "STU-1", "Asha Rao", nil)
	extractor := &fakeExtractor{vector: testVector(0.25)}
	service := newTestService(store, extractor)
	payload := testImagePayload(t)

	// 23:50 and 00:10 UTC fall on different calendar days even though they
	// are twenty minutes apart
	late := time.Date(2026, 3, 2, 23, 50, 0, 0, time.UTC)
	early := late.Add(20 * time.Minute)
	if _, err := service.Admit(context.Background(), MarkParams{
		Role: RoleStudent, PersonID: "STU-1", Subject: "Physics", Image: payload, At: late,
	}); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if _, err := service.Admit(context.Background(), MarkParams{
		Role: RoleStudent, PersonID: "STU-1", Subject: "Physics", Image: payload, At: early,
	}); err != nil {
		t.Fatalf("submission after midnight should succeed but got %v", err)
	}
}

func TestAdmitMapsInsertCollisionToAlreadyMarked(t *testing.T) {
	store := newFakeStore()
	store.addPerson(RoleStudent, "STU-1", "Asha Rao", testVector(0.25))
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.records = append(store.records, entities.AttendanceRecord{
		StudentID: "STU-1",
		Subject:   "Physics",
		Day:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	})
	store.skipDuplicateRead = true
	extractor := &fakeExtractor{vector: testVector(0.25)}
	service := newTestService(store, extractor)

	_, err := service.Admit(context.Background(), MarkParams{
		Role: RoleStudent, PersonID: "STU-1", Subject: "Physics", Image: testImagePayload(t), At: at,
	})
	if !errors.Is(err, ErrAlreadyMarked) {
		t.Fatalf("expected ErrAlreadyMarked from the unique index but got %v", err)
	}
}

func TestAdmitRejections(t *testing.T) {
	table := []struct {
		name         string
		personID     string
		image        string
		extractorErr error
		expected     error
	}{
		{"unknown person", "GHOST", "unused", nil, ErrPersonNotFound},
		{"payload is not base64", "STU-1", "!!not-base64!!", nil, ErrInvalidImage},
		{"payload is not an image", "STU-1", base64.StdEncoding.EncodeToString([]byte("plain text")), nil, ErrInvalidImage},
		{"extractor rejects the image", "STU-1", "", types.ErrInvalidImage, ErrInvalidImage},
		{"no face in the image", "STU-1", "", types.ErrNoFaceDetected, ErrNoFaceDetected},
		{"extraction times out", "STU-1", "", types.ErrExtractionTimeout, ErrExtractionTimeout},
	}

	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			store := newFakeStore()
			store.addPerson(RoleStudent, "STU-1", "Asha Rao", nil)
			extractor := &fakeExtractor{vector: testVector(0.25), err: row.extractorErr}
			service := newTestService(store, extractor)

			image := row.image
			if image == "" {
				image = testImagePayload(t)
			}
			_, err := service.Admit(context.Background(), MarkParams{
				Role: RoleStudent, PersonID: row.personID, Subject: "Physics", Image: image,
			})
			if !errors.Is(err, row.expected) {
				t.Fatalf("expected %v but got %v", row.expected, err)
			}
			if len(store.records) != 0 {
				t.Error("a rejected submission must not persist a record")
			}
		})
	}
}

func TestAdmitDimensionMismatchSurfacesAsFaceMismatch(t *testing.T) {
	store := newFakeStore()
	store.addPerson(RoleStudent, "STU-1", "Asha Rao", []float64{0.1, 0.2, 0.3})
	extractor := &fakeExtractor{vector: testVector(0.25)}
	service := newTestService(store, extractor)

	_, err := service.Admit(context.Background(), MarkParams{
		Role: RoleStudent, PersonID: "STU-1", Subject: "Physics", Image: testImagePayload(t),
	})
	if !errors.Is(err, ErrFaceMismatch) {
		t.Fatalf("expected the mismatch to surface as ErrFaceMismatch but got %v", err)
	}
}

func TestAdmitSchedulesCounterRetryOnFailure(t *testing.T) {
	store := newFakeStore()
	store.addPerson(RoleStudent, "STU-1", "Asha Rao", nil)
	store.failCounters = true
	extractor := &fakeExtractor{vector: testVector(0.25)}
	scheduler := &fakeScheduler{}
	service := NewService(extractor, store, nil, scheduler, DefaultThreshold)

	result, err := service.Admit(context.Background(), MarkParams{
		Role: RoleStudent, PersonID: "STU-1", Subject: "Physics", Image: testImagePayload(t),
	})
	if err != nil {
		t.Fatalf("a counter failure must not fail the submission: %v", err)
	}
	if result.Record == nil {
		t.Fatal("expected the record to be persisted despite the counter failure")
	}
	if scheduler.scheduled != 1 {
		t.Errorf("expected one scheduled counter retry but got %d", scheduler.scheduled)
	}
}

func TestAdmitManual(t *testing.T) {
	t.Run("rejects unsupported status", func(t *testing.T) {
		service := newTestService(newFakeStore(), &fakeExtractor{})
		_, err := service.AdmitManual(context.Background(), ManualMarkParams{
			Role: RoleStudent, PersonID: "STU-1", Subject: "Physics", Status: "Late",
		})
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus but got %v", err)
		}
	})

	t.Run("absent mark counts the session but not the attendance", func(t *testing.T) {
		store := newFakeStore()
		store.addPerson(RoleStudent, "STU-1", "Asha Rao", nil)
		service := newTestService(store, &fakeExtractor{})

		record, err := service.AdmitManual(context.Background(), ManualMarkParams{
			Role: RoleStudent, PersonID: "STU-1", Subject: "Physics",
			Status: constants.ATTENDANCE_STATUS_ABSENT, Reason: "medical leave", MarkedBy: "TCH-9",
		})
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if record.MatchDistance != nil {
			t.Error("a manual record must not carry a match distance")
		}
		counters := store.counters["STU-1"]
		if counters["totalSessions"] != 1 || counters["totalAttendance"] != 0 {
			t.Errorf("expected one session and zero attendance but got %v", counters)
		}
	})

	t.Run("shares the duplicate window with the face path", func(t *testing.T) {
		store := newFakeStore()
		store.addPerson(RoleStudent, "STU-1", "Asha Rao", nil)
		extractor := &fakeExtractor{vector: testVector(0.25)}
		service := newTestService(store, extractor)

		if _, err := service.Admit(context.Background(), MarkParams{
			Role: RoleStudent, PersonID: "STU-1", Subject: "Physics", Image: testImagePayload(t),
		}); err != nil {
			t.Fatalf("face submission failed: %v", err)
		}
		_, err := service.AdmitManual(context.Background(), ManualMarkParams{
			Role: RoleStudent, PersonID: "STU-1", Subject: "Physics",
			Status: constants.ATTENDANCE_STATUS_PRESENT, MarkedBy: "TCH-9",
		})
		if !errors.Is(err, ErrAlreadyMarked) {
			t.Fatalf("expected ErrAlreadyMarked but got %v", err)
		}
	})
}

func TestEnrollReplacesReference(t *testing.T) {
	store := newFakeStore()
	store.addPerson(RoleStudent, "STU-1", "Asha Rao", testVector(0.9))
	extractor := &fakeExtractor{vector: testVector(0.25)}
	service := newTestService(store, extractor)

	if err := service.Enroll(context.Background(), RoleStudent, "STU-1", testImagePayload(t)); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	reference := store.persons[personKey(RoleStudent, "STU-1")].Reference
	if reference[0] != 0.25 {
		t.Errorf("expected the reference to be replaced but got %v", reference[0])
	}
	if len(store.records) != 0 {
		t.Error("enrollment must not create an attendance record")
	}
}

// A full cohort cycle: every student lazily enrolls on day one, then marks
// again on day two against the reference captured on day one.
func TestAdmitCohortAcrossTwoDays(t *testing.T) {
	const cohort = 100

	store := newFakeStore()
	extractor := &fakeExtractor{}
	service := newTestService(store, extractor)
	payload := testImagePayload(t)

	for i := 0; i < cohort; i++ {
		store.addPerson(RoleStudent, fmt.Sprintf("STU-%03d", i), fmt.Sprintf("Student %d", i), nil)
	}

	dayOne := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	dayTwo := dayOne.AddDate(0, 0, 1)
	for index, at := range []time.Time{dayOne, dayTwo} {
		day := index + 1
		for i := 0; i < cohort; i++ {
			extractor.vector = testVector(float64(i) / cohort)
			result, err := service.Admit(context.Background(), MarkParams{
				Role:     RoleStudent,
				PersonID: fmt.Sprintf("STU-%03d", i),
				Subject:  "Physics",
				Image:    payload,
				At:       at,
			})
			if err != nil {
				t.Fatalf("day %d submission for student %d failed: %v", day, i, err)
			}
			if day == 1 && !result.Enrolled {
				t.Fatalf("student %d should have enrolled on day one", i)
			}
			if day == 2 && result.Enrolled {
				t.Fatalf("student %d must not re-enroll on day two", i)
			}
		}
	}

	if len(store.records) != 2*cohort {
		t.Fatalf("expected %d records but found %d", 2*cohort, len(store.records))
	}
	for i := 0; i < cohort; i++ {
		counters := store.counters[fmt.Sprintf("STU-%03d", i)]
		if counters["totalSessions"] != 2 || counters["totalAttendance"] != 2 {
			t.Fatalf("student %d has wrong tallies: %v", i, counters)
		}
	}
}
