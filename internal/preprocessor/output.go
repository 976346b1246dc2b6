package preprocessor

// initialOutputCapacity is the accumulator's starting size; growth
// doubles from here.
const initialOutputCapacity = 4096

// outputBuffer accumulates expanded output. It grows by doubling,
// with any single growth step clamped to the configured maximum; an
// append that does not fit even at the clamped capacity fails.
// Appended text is never modified afterwards.
type outputBuffer struct {
	buf []byte
	max int
}

func newOutputBuffer(max int) outputBuffer {
	return outputBuffer{
		buf: make([]byte, 0, initialOutputCapacity),
		max: max,
	}
}

// append adds text to the buffer, reporting false when the maximum
// output size cannot accommodate it.
func (o *outputBuffer) append(text string) bool {
	needed := len(o.buf) + len(text)
	if needed > cap(o.buf) {
		newCap := cap(o.buf) * 2
		if newCap < needed {
			newCap = needed * 2
		}
		if newCap > o.max {
			newCap = o.max
		}
		if needed > newCap {
			return false
		}
		grown := make([]byte, len(o.buf), newCap)
		copy(grown, o.buf)
		o.buf = grown
	}
	o.buf = append(o.buf, text...)
	return true
}

func (o *outputBuffer) len() int {
	return len(o.buf)
}

func (o *outputBuffer) String() string {
	return string(o.buf)
}
