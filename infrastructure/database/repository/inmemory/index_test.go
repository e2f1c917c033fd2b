package inmemory

import (
	"errors"
	"testing"
	"time"

	"facemark.io/entities"
	"facemark.io/infrastructure/database"
)

func newAttendanceRepo() *MemoryRepository[entities.AttendanceRecord] {
	return New[entities.AttendanceRecord]("TestAttendance", [][]string{
		{"studentID", "subject", "day"},
	})
}

func record(studentID string, subject string, day time.Time) entities.AttendanceRecord {
	return entities.AttendanceRecord{
		StudentID: studentID,
		Subject:   subject,
		Day:       day,
		Timestamp: day.Add(9 * time.Hour),
		Status:    "Present",
		MarkedBy:  "student",
	}
}

func TestCreateOneAssignsIdentity(t *testing.T) {
	repo := newAttendanceRepo()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	created, err := repo.CreateOne(record("STU-001", "Mathematics", day))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected createdAt to be stamped")
	}

	fetched, err := repo.FindByID(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched == nil {
		t.Fatal("created record not found by id")
	}
	if fetched.StudentID != "STU-001" || fetched.Subject != "Mathematics" {
		t.Errorf("round trip mangled the record: %+v", fetched)
	}
}

func TestCreateOneEnforcesUniqueKeys(t *testing.T) {
	repo := newAttendanceRepo()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	if _, err := repo.CreateOne(record("STU-001", "Mathematics", day)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := repo.CreateOne(record("STU-001", "Mathematics", day))
	if !errors.Is(err, database.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	// any key component differing makes the insert legal again
	if _, err := repo.CreateOne(record("STU-001", "Physics", day)); err != nil {
		t.Errorf("different subject should insert: %v", err)
	}
	if _, err := repo.CreateOne(record("STU-002", "Mathematics", day)); err != nil {
		t.Errorf("different student should insert: %v", err)
	}
	if _, err := repo.CreateOne(record("STU-001", "Mathematics", day.AddDate(0, 0, 1))); err != nil {
		t.Errorf("different day should insert: %v", err)
	}
}

func TestFindOneByFilterSupportsDayWindows(t *testing.T) {
	repo := newAttendanceRepo()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if _, err := repo.CreateOne(record("STU-001", "Mathematics", day)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindOneByFilter(map[string]any{
		"studentID": "STU-001",
		"subject":   "Mathematics",
		"day": map[string]any{
			"$gte": day,
			"$lt":  day.AddDate(0, 0, 1),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil {
		t.Fatal("record inside the window was not matched")
	}

	missed, err := repo.FindOneByFilter(map[string]any{
		"studentID": "STU-001",
		"subject":   "Mathematics",
		"day": map[string]any{
			"$gte": day.AddDate(0, 0, 1),
			"$lt":  day.AddDate(0, 0, 2),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missed != nil {
		t.Fatal("record outside the window was matched")
	}
}

func TestFindManySortSkipLimit(t *testing.T) {
	repo := newAttendanceRepo()
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if _, err := repo.CreateOne(record("STU-001", "Mathematics", base.AddDate(0, 0, i))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	skip := int64(1)
	limit := int64(2)
	records, err := repo.FindMany(map[string]any{
		"studentID": "STU-001",
	}, database.FindOptions{
		Sort:  map[string]any{"day": -1},
		Skip:  &skip,
		Limit: &limit,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if !records[0].Day.After(records[1].Day) {
		t.Errorf("sort direction not honoured: %v then %v", records[0].Day, records[1].Day)
	}
	if records[0].Day.Equal(base.AddDate(0, 0, 4)) {
		t.Error("skip not applied, newest record still present")
	}
}

func TestFindManySupportsSearchFilters(t *testing.T) {
	repo := New[entities.Student]("TestStudentSearch", [][]string{{"studentID"}})
	seed := []entities.Student{
		{StudentID: "STU-001", Name: "Ada Lovelace", Email: "ada@school.edu", Status: "active"},
		{StudentID: "STU-002", Name: "Grace Hopper", Email: "grace@school.edu", Status: "active"},
		{StudentID: "STU-003", Name: "Alan Turing", Email: "alan@school.edu", Status: "active"},
	}
	for _, student := range seed {
		if _, err := repo.CreateOne(student); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	searchFilter := func(query string) map[string]any {
		pattern := map[string]any{"$regex": query, "$options": "i"}
		return map[string]any{
			"$or": []map[string]any{
				{"name": pattern},
				{"studentID": pattern},
				{"email": pattern},
			},
		}
	}

	// name and email both match the same document; it must come back once
	results, err := repo.FindMany(searchFilter("ADA"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].StudentID != "STU-001" {
		t.Fatalf("expected only Ada, got %+v", results)
	}

	// an id fragment matches every student regardless of case
	results, err = repo.FindMany(searchFilter("stu-00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected all 3 students, got %d", len(results))
	}

	results, err = repo.FindMany(searchFilter("nobody"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no matches, got %d", len(results))
	}
}

func TestUpdatePartialByFilterWithDottedPaths(t *testing.T) {
	repo := newAttendanceRepo()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	created, err := repo.CreateOne(record("STU-001", "Mathematics", day))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := repo.UpdatePartialByFilter(map[string]any{
		"studentID": "STU-001",
	}, map[string]any{
		"status": "Absent",
		"reason": "medical",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected 1 update, got %d", updated)
	}

	fetched, _ := repo.FindByID(created.ID)
	if fetched.Status != "Absent" || fetched.Reason != "medical" {
		t.Errorf("update not applied: %+v", fetched)
	}

	none, err := repo.UpdatePartialByFilter(map[string]any{
		"studentID": "STU-404",
	}, map[string]any{"status": "Absent"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if none != 0 {
		t.Errorf("expected 0 updates for missing record, got %d", none)
	}
}

func TestIncrementFieldsCreatesAndAdds(t *testing.T) {
	repo := New[entities.Student]("TestStudents", [][]string{{"studentID"}})
	if _, err := repo.CreateOne(entities.Student{
		StudentID:    "STU-001",
		Name:         "Ada",
		StudentClass: "SS2",
		Status:       "active",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		matched, err := repo.IncrementFields(map[string]any{
			"studentID": "STU-001",
		}, map[string]int64{
			"totalSessions":                  1,
			"subjectsTotal.Mathematics":      1,
			"totalAttendance":                1,
			"subjectsAttendance.Mathematics": 1,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if matched != 1 {
			t.Fatalf("expected 1 match, got %d", matched)
		}
	}

	student, err := repo.FindOneByFilter(map[string]any{"studentID": "STU-001"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if student.TotalSessions != 3 || student.TotalAttendance != 3 {
		t.Errorf("expected totals of 3, got sessions=%d attendance=%d", student.TotalSessions, student.TotalAttendance)
	}
	if student.SubjectsTotal["Mathematics"] != 3 {
		t.Errorf("expected per-subject total of 3, got %d", student.SubjectsTotal["Mathematics"])
	}
}

func TestDeleteByID(t *testing.T) {
	repo := newAttendanceRepo()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	created, err := repo.CreateOne(record("STU-001", "Mathematics", day))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deleted, err := repo.DeleteByID(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deletion, got %d", deleted)
	}

	gone, _ := repo.FindByID(created.ID)
	if gone != nil {
		t.Error("record still present after delete")
	}

	again, err := repo.DeleteByID(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != 0 {
		t.Errorf("expected 0 deletions the second time, got %d", again)
	}
}

func TestCountDocs(t *testing.T) {
	repo := newAttendanceRepo()
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		subject := "Mathematics"
		if i%2 == 1 {
			subject = "Physics"
		}
		if _, err := repo.CreateOne(record("STU-001", subject, base.AddDate(0, 0, i))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	count, err := repo.CountDocs(map[string]any{"subject": "Mathematics"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2, got %d", count)
	}
}
