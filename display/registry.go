package display

// Registry is the depth-ordered list of shown objects. Objects with a lower
// depth are drawn first, so objects with a higher depth end up on top. Objects
// with the same depth are drawn in the order they were inserted.
//
// The registry does not own the objects in it: whoever created an object must
// remove it before dropping it.
type Registry[T Color] struct {
	lock    *Lock // line lock
	objects []Object[T]
}

// NewRegistry returns an empty registry.
func NewRegistry[T Color]() *Registry[T] {
	return &Registry[T]{
		lock: NewLock(),
	}
}

// LineLock returns the lock that guards the registry and the bounding boxes of
// all objects in it.
func (r *Registry[T]) LineLock() *Lock {
	return r.lock
}

// Insert adds the object with the given depth. It waits for the line lock, so
// it must not be called while the line lock is already held.
func (r *Registry[T]) Insert(obj Object[T], depth uint32) error {
	if obj == nil {
		return ErrNullObject
	}
	r.lock.LockTimeout(-1)
	defer r.lock.Unlock()
	return r.insert(obj, depth)
}

// Remove removes the object. Removing an object that is not in the registry
// returns ErrNotListed and leaves the registry unchanged.
func (r *Registry[T]) Remove(obj Object[T]) error {
	if obj == nil {
		return ErrNullObject
	}
	r.lock.LockTimeout(-1)
	defer r.lock.Unlock()
	return r.remove(obj)
}

// Len returns the number of objects in the registry.
func (r *Registry[T]) Len() int {
	r.lock.LockTimeout(-1)
	defer r.lock.Unlock()
	return len(r.objects)
}

// Objects returns a copy of the registry contents, from bottom to top.
func (r *Registry[T]) Objects() []Object[T] {
	r.lock.LockTimeout(-1)
	defer r.lock.Unlock()
	return append([]Object[T](nil), r.objects...)
}

// insert must be called with the line lock held.
func (r *Registry[T]) insert(obj Object[T], depth uint32) error {
	n := obj.node()
	if n.listed {
		return ErrAlreadyListed
	}

	// Find the first object with a greater depth. Inserting before it puts
	// the new object after all objects of the same depth.
	index := len(r.objects)
	for i, o := range r.objects {
		if o.node().depth > depth {
			index = i
			break
		}
	}
	r.objects = append(r.objects, nil)
	copy(r.objects[index+1:], r.objects[index:])
	r.objects[index] = obj

	n.depth = depth
	n.listed = true
	return nil
}

// remove must be called with the line lock held.
func (r *Registry[T]) remove(obj Object[T]) error {
	n := obj.node()
	if !n.listed {
		return ErrNotListed
	}
	for i, o := range r.objects {
		if o.node() == n {
			copy(r.objects[i:], r.objects[i+1:])
			r.objects[len(r.objects)-1] = nil
			r.objects = r.objects[:len(r.objects)-1]
			n.listed = false
			return nil
		}
	}
	// The object says it is listed, but it is listed in a different registry.
	return ErrNotListed
}

// drawRow composites screen row y into buf, bottom to top. The line lock
// must be held.
func (r *Registry[T]) drawRow(buf []T, y int) {
	for _, obj := range r.objects {
		b := obj.node().bounds
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		obj.DrawRow(buf, y)
	}
}

// drawColumn composites screen column x into buf, bottom to top. The line
// lock must be held.
func (r *Registry[T]) drawColumn(buf []T, x int) {
	for _, obj := range r.objects {
		b := obj.node().bounds
		if x < b.Min.X || x >= b.Max.X {
			continue
		}
		obj.DrawColumn(buf, x)
	}
}
