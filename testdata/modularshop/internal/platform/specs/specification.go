package specs

type Specification[T any] struct{}

func (Specification[T]) IsSatisfiedBy(candidate T) bool {
	return false
}
