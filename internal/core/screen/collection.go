package screen

// Identified is any record the API addresses by a numeric id.
type Identified interface {
	GetID() int64
}

// Collection is the locally held copy of a fetched list. Mutations splice the
// changed record in place and never reorder the rest.
type Collection[T Identified] struct {
	items []T
}

func NewCollection[T Identified](items []T) *Collection[T] {
	c := &Collection[T]{items: make([]T, len(items))}
	copy(c.items, items)
	return c
}

// Items returns a copy of the held records in order.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Len() int { return len(c.items) }

func (c *Collection[T]) Append(item T) {
	c.items = append(c.items, item)
}

// Replace swaps the record with item's id for item. It reports whether a
// record was found.
func (c *Collection[T]) Replace(item T) bool {
	for i := range c.items {
		if c.items[i].GetID() == item.GetID() {
			c.items[i] = item
			return true
		}
	}
	return false
}

// Remove drops the record with id. It reports whether a record was found.
func (c *Collection[T]) Remove(id int64) bool {
	for i := range c.items {
		if c.items[i].GetID() == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Collection[T]) Find(id int64) (T, bool) {
	for _, it := range c.items {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the records for which keep is true, in order.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	out := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
