package reactive

// NodeInfo identifies a reactive to observers.
type NodeInfo struct {
	ID          uint64
	Kind        Kind
	Description string
}

// Observer receives engine events. Implementations must not read or write
// reactives from their callbacks.
type Observer interface {
	// ComputeStarted is called before a formula or accessor getter runs.
	ComputeStarted(info NodeInfo)

	// ComputeFinished is called after the computation returns. err is nil on
	// success, a *UserError for caught failures, or a non-user error when an
	// infallible computation panicked.
	ComputeFinished(info NodeInfo, err error)

	// Written is called after every Write, with its returned error.
	Written(info NodeInfo, err error)

	// Poisoned is called when a property read on a deeply constant value
	// fails and a ConstantError child is created.
	Poisoned(info NodeInfo, err error)
}

type observerEntry struct {
	o Observer
}

var observers []*observerEntry

// Observe registers o for engine events. The returned function unregisters
// it.
func Observe(o Observer) (unregister func()) {
	entry := &observerEntry{o: o}
	observers = append(observers, entry)
	return func() {
		for i, e := range observers {
			if e == entry {
				observers = append(observers[:i:i], observers[i+1:]...)
				return
			}
		}
	}
}

func notifyComputeStarted(info NodeInfo) {
	for _, e := range observers {
		e.o.ComputeStarted(info)
	}
}

func notifyComputeFinished(info NodeInfo, err error) {
	for _, e := range observers {
		e.o.ComputeFinished(info, err)
	}
}

func notifyWritten(info NodeInfo, err error) {
	for _, e := range observers {
		e.o.Written(info, err)
	}
}

func notifyPoisoned(info NodeInfo, err error) {
	for _, e := range observers {
		e.o.Poisoned(info, err)
	}
}
