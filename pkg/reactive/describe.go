package reactive

// Describe attaches a human-readable description to r and returns r. The
// description appears in String, in diagnostics and in observer events. It is
// only kept in builds with the reactivedebug tag.
func Describe[T any](r *Reactive[T], desc string) *Reactive[T] {
	setDescription(r.id, desc)
	return r
}

// DescriptionOf returns the description attached to r with Describe.
func DescriptionOf[T any](r *Reactive[T]) string {
	return description(r.id)
}
