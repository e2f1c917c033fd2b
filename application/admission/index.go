package admission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"facemark.io/application/constants"
	"facemark.io/application/utils"
	"facemark.io/entities"
	"facemark.io/infrastructure/database"
	"facemark.io/infrastructure/imaging"
	"facemark.io/infrastructure/logger"
	"facemark.io/infrastructure/vision/types"
)

// DefaultThreshold is the dlib-style Euclidean match cut-off. Distances at or
// below it count as the same person.
const DefaultThreshold = 0.6

// AdmissionResult reports an accepted submission. Distance is 0.0 exactly
// when the submission doubled as the person's enrollment.
type AdmissionResult struct {
	Record   *entities.AttendanceRecord
	Distance float64
	Enrolled bool
}

// Service runs the face-match admission pipeline. All collaborators are
// injected once at start up; the zero value is not usable.
type Service struct {
	Extractor types.EmbeddingExtractor
	Store     Store
	Images    ReferenceImageStore
	Retry     CounterRetryScheduler
	Threshold float64
}

func NewService(extractor types.EmbeddingExtractor, store Store, images ReferenceImageStore, retry CounterRetryScheduler, threshold float64) *Service {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Service{
		Extractor: extractor,
		Store:     store,
		Images:    images,
		Retry:     retry,
		Threshold: threshold,
	}
}

// Admit runs the full pipeline for one submission: look the person up, check
// the day's duplicate window, decode and normalise the image, extract an
// embedding, then either enroll (first submission) or compare. Stages run in
// that fixed order so each rejection reason is unambiguous; only after all of
// them pass is the record persisted and counters incremented.
func (s *Service) Admit(ctx context.Context, params MarkParams) (*AdmissionResult, error) {
	subject := utils.NormalizeSubjectName(params.Subject)
	at := params.At
	if at.IsZero() {
		at = time.Now()
	}
	day := utils.StartOfUTCDay(at)

	person, err := s.Store.FindPerson(ctx, params.Role, params.PersonID)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, ErrPersonNotFound
	}

	existing, err := s.Store.FindAttendance(ctx, person.PersonID, subject, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMarked
	}

	raw, err := imaging.DecodeBase64Payload(params.Image)
	if err != nil {
		return nil, ErrInvalidImage
	}
	normalized, err := imaging.NormalizeForExtraction(raw)
	if err != nil {
		return nil, ErrInvalidImage
	}

	probe, err := s.Extractor.Extract(ctx, normalized)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrInvalidImage):
			return nil, ErrInvalidImage
		case errors.Is(err, types.ErrNoFaceDetected):
			return nil, ErrNoFaceDetected
		case errors.Is(err, types.ErrExtractionTimeout):
			logger.Error("face extraction exceeded its budget", logger.LoggerOptions{
				Key:  "personID",
				Data: params.PersonID,
			})
			return nil, ErrExtractionTimeout
		default:
			return nil, err
		}
	}

	var distance float64
	enrolled := false
	decision, reference := ResolveEnrollment(person)
	switch decision {
	case SetAsReference:
		imageRef := s.storeReferenceImage(person.PersonID, normalized)
		if err := s.Store.SetReference(ctx, params.Role, person.PersonID, probe, imageRef); err != nil {
			return nil, err
		}
		distance = 0.0
		enrolled = true
	case CompareAgainst:
		matched, d, cmpErr := Compare([][]float64{reference}, probe, s.Threshold)
		if cmpErr != nil {
			if errors.Is(cmpErr, ErrDimensionMismatch) {
				// the stored reference was produced by a different model
				// version. operators need to see this, the submitter only
				// needs to know the match failed
				logger.Error("stored reference dimensionality does not match the extractor", logger.LoggerOptions{
					Key:  "personID",
					Data: person.PersonID,
				}, logger.LoggerOptions{
					Key:  "referenceLength",
					Data: len(reference),
				}, logger.LoggerOptions{
					Key:  "probeLength",
					Data: len(probe),
				})
				return nil, ErrFaceMismatch
			}
			return nil, cmpErr
		}
		if !matched {
			return nil, ErrFaceMismatch
		}
		distance = d
	}

	record := entities.AttendanceRecord{
		StudentID:     person.PersonID,
		StudentName:   person.Name,
		Subject:       subject,
		Day:           day,
		Timestamp:     at.UTC(),
		Status:        constants.ATTENDANCE_STATUS_PRESENT,
		Location:      params.Location,
		MatchDistance: utils.GetFloat64Pointer(distance),
		MarkedBy:      string(params.Role),
	}
	saved, err := s.Store.InsertAttendance(ctx, record)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			// a concurrent submission won the race. the unique index is the
			// authority, the earlier read was only an early exit
			return nil, ErrAlreadyMarked
		}
		return nil, err
	}

	s.applyCounters(ctx, params.Role, person.PersonID, subject, true)

	return &AdmissionResult{
		Record:   saved,
		Distance: distance,
		Enrolled: enrolled,
	}, nil
}

// AdmitManual records an attendance entry asserted by staff without a face
// check. It shares the duplicate window and counter semantics with Admit but
// never touches the vision pipeline, and the stored record carries no match
// distance.
func (s *Service) AdmitManual(ctx context.Context, params ManualMarkParams) (*entities.AttendanceRecord, error) {
	if params.Status != constants.ATTENDANCE_STATUS_PRESENT && params.Status != constants.ATTENDANCE_STATUS_ABSENT {
		return nil, ErrInvalidStatus
	}
	subject := utils.NormalizeSubjectName(params.Subject)
	at := params.Date
	if at.IsZero() {
		at = time.Now()
	}
	day := utils.StartOfUTCDay(at)

	person, err := s.Store.FindPerson(ctx, params.Role, params.PersonID)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, ErrPersonNotFound
	}

	existing, err := s.Store.FindAttendance(ctx, person.PersonID, subject, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMarked
	}

	record := entities.AttendanceRecord{
		StudentID:   person.PersonID,
		StudentName: person.Name,
		Subject:     subject,
		Day:         day,
		Timestamp:   at.UTC(),
		Status:      params.Status,
		Reason:      params.Reason,
		MarkedBy:    params.MarkedBy,
	}
	saved, err := s.Store.InsertAttendance(ctx, record)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, ErrAlreadyMarked
		}
		return nil, err
	}

	s.applyCounters(ctx, params.Role, person.PersonID, subject, params.Status == constants.ATTENDANCE_STATUS_PRESENT)

	return saved, nil
}

// Enroll captures or replaces a person's reference encoding without marking
// attendance. Staff use it to fix a bad lazy enrollment.
func (s *Service) Enroll(ctx context.Context, role PersonRole, personID string, image string) error {
	person, err := s.Store.FindPerson(ctx, role, personID)
	if err != nil {
		return err
	}
	if person == nil {
		return ErrPersonNotFound
	}

	raw, err := imaging.DecodeBase64Payload(image)
	if err != nil {
		return ErrInvalidImage
	}
	normalized, err := imaging.NormalizeForExtraction(raw)
	if err != nil {
		return ErrInvalidImage
	}

	vector, err := s.Extractor.Extract(ctx, normalized)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrInvalidImage):
			return ErrInvalidImage
		case errors.Is(err, types.ErrNoFaceDetected):
			return ErrNoFaceDetected
		case errors.Is(err, types.ErrExtractionTimeout):
			return ErrExtractionTimeout
		default:
			return err
		}
	}

	imageRef := s.storeReferenceImage(person.PersonID, normalized)
	return s.Store.SetReference(ctx, role, person.PersonID, vector, imageRef)
}

// applyCounters increments the person's attendance tallies. The record is
// already durable at this point, so a failed increment is queued for retry
// rather than failing the request.
func (s *Service) applyCounters(ctx context.Context, role PersonRole, personID string, subject string, present bool) {
	if err := s.Store.IncrementCounters(ctx, role, personID, subject, present); err != nil {
		logger.Error("attendance counters were not incremented, scheduling a retry", logger.LoggerOptions{
			Key:  "personID",
			Data: personID,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		if s.Retry != nil {
			s.Retry.ScheduleCounterSync(role, personID, subject, present)
		}
	}
}

func (s *Service) storeReferenceImage(personID string, data []byte) string {
	if s.Images == nil {
		return ""
	}
	ref := fmt.Sprintf("references/%s/%s.jpg", personID, utils.GenerateULIDString())
	if err := s.Images.UploadBytes(ref, data); err != nil {
		// the encoding is what matching runs on. losing the audit image is
		// log-worthy, not fatal
		logger.Warning("reference image upload failed", logger.LoggerOptions{
			Key:  "personID",
			Data: personID,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return ""
	}
	return ref
}
