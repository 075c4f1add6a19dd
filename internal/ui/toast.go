package ui

// ToastSeverity selects toast colouring.
type ToastSeverity uint8

const (
	ToastInfo ToastSeverity = iota
	ToastSuccess
	ToastError
)

var toastIcons = map[ToastSeverity]rune{
	ToastInfo:    'i',
	ToastSuccess: '✓',
	ToastError:   '✗',
}

type toast struct {
	Title      string
	Detail     string
	Severity   ToastSeverity
	FramesLeft int
}

// toastQueue holds the visible toasts, newest last.
type toastQueue struct {
	items []toast
	max   int
}

func (q *toastQueue) push(t toast) {
	q.items = append(q.items, t)
	if q.max > 0 && len(q.items) > q.max {
		q.items = q.items[len(q.items)-q.max:]
	}
}

// tick counts every toast down one frame and drops the expired ones.
func (q *toastQueue) tick() {
	kept := q.items[:0]
	for _, t := range q.items {
		t.FramesLeft--
		if t.FramesLeft > 0 {
			kept = append(kept, t)
		}
	}
	q.items = kept
}
