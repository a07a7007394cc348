package celpaint

// Listener receives change notifications from a Sequence. Callbacks run
// synchronously on the goroutine that triggered the change.
type Listener interface {
	// SequenceLoaded is called after every Load with the final frame count.
	SequenceLoaded(count int)
	// CurrentIndexChanged is called when the current frame changes.
	CurrentIndexChanged(index int)
	// CountChanged is called when the number of frames may have changed.
	CountChanged(count int)
	// CurrentImageChanged is called when the pixels shown for the current
	// frame change, either by navigation or by modification.
	CurrentImageChanged(img *Pixmap)
	// ImageModified is called once per modified frame.
	ImageModified(index int, img *Pixmap)
}

// NopListener ignores every notification. Embed it to implement only the
// callbacks of interest.
type NopListener struct{}

func (NopListener) SequenceLoaded(int)          {}
func (NopListener) CurrentIndexChanged(int)     {}
func (NopListener) CountChanged(int)            {}
func (NopListener) CurrentImageChanged(*Pixmap) {}
func (NopListener) ImageModified(int, *Pixmap)  {}
