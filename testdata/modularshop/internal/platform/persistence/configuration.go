package persistence

type EntityBuilder[T any] struct {
	table string
}

func (b *EntityBuilder[T]) Table(name string) *EntityBuilder[T] {
	b.table = name
	return b
}

type EntityTypeConfiguration[T any] interface {
	Configure(builder *EntityBuilder[T])
}
