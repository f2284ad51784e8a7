package validation

type AbstractValidator struct {
	failures []string
}

func (v *AbstractValidator) AddFailure(msg string) {
	v.failures = append(v.failures, msg)
}

func (v *AbstractValidator) Failures() []string {
	return v.failures
}
