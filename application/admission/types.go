package admission

import (
	"context"
	"errors"
	"time"

	"facemark.io/entities"
)

// Every way an attendance submission can be turned down. These are expected,
// user-facing outcomes returned as typed errors - only storage failures and
// contract violations surface as anything else.
var (
	ErrPersonNotFound    = errors.New("person not found")
	ErrAlreadyMarked     = errors.New("attendance already marked for this subject today")
	ErrInvalidImage      = errors.New("submitted image could not be decoded")
	ErrNoFaceDetected    = errors.New("no face detected in submitted image")
	ErrExtractionTimeout = errors.New("face extraction exceeded its time budget")
	ErrFaceMismatch      = errors.New("face does not match the enrolled reference")
	ErrInvalidStatus     = errors.New("unsupported attendance status")

	// a reference/probe length disagreement means the stored reference was
	// captured with a different model version or is corrupt. it must never
	// crash the request; callers surface it as a mismatch
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

type PersonRole string

const (
	RoleStudent PersonRole = "student"
	RoleTeacher PersonRole = "teacher"
)

// Person is the narrow view of a student or teacher the admission pipeline
// needs: identity plus the enrolled reference, if any.
type Person struct {
	ID        string
	PersonID  string
	Name      string
	Reference []float64
}

// Store is the persistence collaborator contract. FindPerson and
// FindAttendance return nil (not an error) when nothing matches.
// InsertAttendance returns database.ErrDuplicateKey when the storage-level
// uniqueness guard on (person, subject, day) fires.
type Store interface {
	FindPerson(ctx context.Context, role PersonRole, personID string) (*Person, error)
	FindAttendance(ctx context.Context, personID string, subject string, from time.Time, to time.Time) (*entities.AttendanceRecord, error)
	InsertAttendance(ctx context.Context, record entities.AttendanceRecord) (*entities.AttendanceRecord, error)
	IncrementCounters(ctx context.Context, role PersonRole, personID string, subject string, present bool) error
	SetReference(ctx context.Context, role PersonRole, personID string, vector []float64, imageRef string) error
}

// CounterRetryScheduler re-drives a counter increment that failed after its
// attendance record was already inserted. A record without counters is an
// acceptable transient state; the reverse is not, which is why the increment
// only ever runs after the insert and is retried until it lands.
type CounterRetryScheduler interface {
	ScheduleCounterSync(role PersonRole, personID string, subject string, present bool)
}

// ReferenceImageStore keeps the captured image a reference encoding was
// produced from, for audit and re-enrollment review.
type ReferenceImageStore interface {
	UploadBytes(ref string, data []byte) error
}

type MarkParams struct {
	Role     PersonRole
	PersonID string
	Subject  string
	// base64 image payload, optionally with a data URL prefix
	Image    string
	Location string
	// At defaults to the current time. The UTC calendar day derived from it
	// scopes the duplicate check.
	At time.Time
}

type ManualMarkParams struct {
	Role     PersonRole
	PersonID string
	Subject  string
	Date     time.Time
	Status   string
	Reason   string
	MarkedBy string
}
