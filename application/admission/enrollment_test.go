package admission

import "testing"

func TestResolveEnrollment(t *testing.T) {
	t.Run("person without a reference is enrolled", func(t *testing.T) {
		decision, reference := ResolveEnrollment(&Person{PersonID: "STU-1"})
		if decision != SetAsReference {
			t.Errorf("expected SetAsReference but got %v", decision)
		}
		if reference != nil {
			t.Errorf("expected no reference but got %v", reference)
		}
	})

	t.Run("person with a reference is compared", func(t *testing.T) {
		enrolled := []float64{0.1, 0.2}
		decision, reference := ResolveEnrollment(&Person{PersonID: "STU-1", Reference: enrolled})
		if decision != CompareAgainst {
			t.Errorf("expected CompareAgainst but got %v", decision)
		}
		if len(reference) != len(enrolled) {
			t.Errorf("expected the enrolled reference but got %v", reference)
		}
	})
}
