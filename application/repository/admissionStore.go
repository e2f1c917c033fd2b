package repository

import (
	"context"
	"time"

	"facemark.io/application/admission"
	"facemark.io/entities"
)

// AdmissionStore adapts the generic entity repositories to the admission
// pipeline's storage contract. Students and teachers share the contract but
// live in separate collections, so every call routes on role.
type AdmissionStore struct{}

func NewAdmissionStore() *AdmissionStore {
	return &AdmissionStore{}
}

func (store *AdmissionStore) FindPerson(ctx context.Context, role admission.PersonRole, personID string) (*admission.Person, error) {
	if role == admission.RoleTeacher {
		teacher, err := TeacherRepo().FindOneByFilter(map[string]any{
			"teacherID": personID,
		})
		if err != nil || teacher == nil {
			return nil, err
		}
		return &admission.Person{
			ID:        teacher.ID,
			PersonID:  teacher.TeacherID,
			Name:      teacher.Name,
			Reference: teacher.FaceEncoding,
		}, nil
	}
	student, err := StudentRepo().FindOneByFilter(map[string]any{
		"studentID": personID,
	})
	if err != nil || student == nil {
		return nil, err
	}
	return &admission.Person{
		ID:        student.ID,
		PersonID:  student.StudentID,
		Name:      student.Name,
		Reference: student.FaceEncoding,
	}, nil
}

func (store *AdmissionStore) FindAttendance(ctx context.Context, personID string, subject string, from time.Time, to time.Time) (*entities.AttendanceRecord, error) {
	return AttendanceRepo().FindOneByFilter(map[string]any{
		"studentID": personID,
		"subject":   subject,
		"day": map[string]any{
			"$gte": from,
			"$lt":  to,
		},
	})
}

func (store *AdmissionStore) InsertAttendance(ctx context.Context, record entities.AttendanceRecord) (*entities.AttendanceRecord, error) {
	return AttendanceRepo().CreateOne(record)
}

func (store *AdmissionStore) IncrementCounters(ctx context.Context, role admission.PersonRole, personID string, subject string, present bool) error {
	// the session tally always moves. the attendance tally only moves for a
	// present mark, so the percentage reflects absences too
	fields := map[string]int64{
		"totalSessions":            1,
		"subjectsTotal." + subject: 1,
	}
	if present {
		fields["totalAttendance"] = 1
		fields["subjectsAttendance."+subject] = 1
	}
	var err error
	if role == admission.RoleTeacher {
		_, err = TeacherRepo().IncrementFields(map[string]any{"teacherID": personID}, fields)
	} else {
		_, err = StudentRepo().IncrementFields(map[string]any{"studentID": personID}, fields)
	}
	return err
}

func (store *AdmissionStore) SetReference(ctx context.Context, role admission.PersonRole, personID string, vector []float64, imageRef string) error {
	payload := map[string]any{
		"faceEncoding": vector,
		"faceImageRef": imageRef,
	}
	var err error
	if role == admission.RoleTeacher {
		_, err = TeacherRepo().UpdatePartialByFilter(map[string]any{"teacherID": personID}, payload)
	} else {
		_, err = StudentRepo().UpdatePartialByFilter(map[string]any{"studentID": personID}, payload)
	}
	return err
}

var _ admission.Store = (*AdmissionStore)(nil)
