package accountview

// Ref is an immutable borrow of account data.
//
// A Ref owns one unit of the record's immutable borrow capacity until
// Release runs. Release is idempotent and safe to defer. The Map, TryMap
// and FilterMap functions transfer the release obligation to the derived
// guard, so release still happens exactly once no matter how many times a
// guard is re-sliced.
type Ref struct {
	data  []byte
	state *byte
	// released is set once the borrow has been returned, or once the
	// release obligation has moved to a derived guard.
	released bool
}

// Bytes returns the borrowed bytes. The slice must not be written to and
// must not be retained past Release.
func (r *Ref) Bytes() []byte {
	return r.data
}

// Len returns the length of the borrowed bytes.
func (r *Ref) Len() int {
	return len(r.data)
}

// Release returns the borrow to the record. Calling Release more than
// once, or after the guard was consumed by a map operation, is a no-op.
func (r *Ref) Release() {
	if r.released {
		return
	}
	r.released = true
	// Give the immutable borrow slot back.
	*r.state++
}

// MapRef derives a guard over a sub-view of the borrowed bytes. The
// release obligation moves to the returned guard; the original guard is
// consumed and must no longer be used.
func MapRef(orig *Ref, f func([]byte) []byte) *Ref {
	mapped := &Ref{data: f(orig.data), state: orig.state}
	orig.released = true
	return mapped
}

// TryMapRef derives a guard over a sub-view of the borrowed bytes,
// consuming the original on success. On failure the original guard is
// returned unchanged and still holds its borrow.
func TryMapRef(orig *Ref, f func([]byte) ([]byte, error)) (*Ref, error) {
	sub, err := f(orig.data)
	if err != nil {
		return orig, err
	}
	mapped := &Ref{data: sub, state: orig.state}
	orig.released = true
	return mapped, nil
}

// FilterMapRef derives a guard over a sub-view of the borrowed bytes,
// consuming the original when f accepts. When f rejects, the original
// guard is returned unchanged and still holds its borrow.
func FilterMapRef(orig *Ref, f func([]byte) ([]byte, bool)) (*Ref, bool) {
	sub, ok := f(orig.data)
	if !ok {
		return orig, false
	}
	mapped := &Ref{data: sub, state: orig.state}
	orig.released = true
	return mapped, true
}

// RefMut is the exclusive mutable borrow of account data.
//
// While a RefMut is live no other borrow of the record's data can be
// taken. Release is idempotent and safe to defer; the map functions
// transfer the release obligation exactly like their Ref counterparts.
type RefMut struct {
	data     []byte
	state    *byte
	released bool
}

// Bytes returns the borrowed bytes for reading and writing. The slice
// must not be retained past Release.
func (r *RefMut) Bytes() []byte {
	return r.data
}

// Len returns the length of the borrowed bytes.
func (r *RefMut) Len() int {
	return len(r.data)
}

// Release returns the mutable borrow to the record. Calling Release more
// than once, or after the guard was consumed by a map operation, is a
// no-op.
func (r *RefMut) Release() {
	if r.released {
		return
	}
	r.released = true
	// Exclusivity means no immutable slots were in flight, so restoring
	// full capacity directly is correct.
	*r.state = NotBorrowed
}

// MapRefMut derives a guard over a sub-view of the borrowed bytes. The
// release obligation moves to the returned guard; the original guard is
// consumed and must no longer be used.
func MapRefMut(orig *RefMut, f func([]byte) []byte) *RefMut {
	mapped := &RefMut{data: f(orig.data), state: orig.state}
	orig.released = true
	return mapped
}

// TryMapRefMut derives a guard over a sub-view of the borrowed bytes,
// consuming the original on success. On failure the original guard is
// returned unchanged and still holds its borrow.
func TryMapRefMut(orig *RefMut, f func([]byte) ([]byte, error)) (*RefMut, error) {
	sub, err := f(orig.data)
	if err != nil {
		return orig, err
	}
	mapped := &RefMut{data: sub, state: orig.state}
	orig.released = true
	return mapped, nil
}

// FilterMapRefMut derives a guard over a sub-view of the borrowed bytes,
// consuming the original when f accepts. When f rejects, the original
// guard is returned unchanged and still holds its borrow.
func FilterMapRefMut(orig *RefMut, f func([]byte) ([]byte, bool)) (*RefMut, bool) {
	sub, ok := f(orig.data)
	if !ok {
		return orig, false
	}
	mapped := &RefMut{data: sub, state: orig.state}
	orig.released = true
	return mapped, true
}
