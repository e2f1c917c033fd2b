package admission

// EnrollmentDecision says what to do with an incoming probe vector: adopt it
// as the person's reference, or verify it against the existing one.
type EnrollmentDecision int

const (
	// no reference exists yet. the probe becomes the reference and the
	// submission counts as an exact self-match with distance 0.0
	SetAsReference EnrollmentDecision = iota
	// a reference exists. the comparator decides
	CompareAgainst
)

// ResolveEnrollment implements lazy enrollment: the first probe ever
// submitted for a person doubles as their registration. This trades a real
// security weakness - the first submitter is trusted unconditionally, with
// no identity proof at that moment - for unattended self-service onboarding.
// Callers rely on that trade-off; do not "fix" it here.
func ResolveEnrollment(person *Person) (EnrollmentDecision, []float64) {
	if len(person.Reference) == 0 {
		return SetAsReference, nil
	}
	return CompareAgainst, person.Reference
}
