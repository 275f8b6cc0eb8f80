package rng

// Source is the draw interface model kernels program against, satisfied
// by *State directly and by Recorder/Mirror for antithetic replay.
type Source interface {
	NextUniform() float64
	NextNormal() float64
}

// Recorder wraps a *State and remembers every uniform and normal draw it
// serves, in order, so a Mirror can later replay the same path shape
// with each draw's antithetic counterpart (1-u for uniforms, -z for
// normals) without consuming any further randomness from the underlying
// generator.
type Recorder struct {
	st  *State
	log []recordedDraw
}

type drawKind int

const (
	drawUniform drawKind = iota
	drawNormal
)

type recordedDraw struct {
	kind  drawKind
	value float64
}

// NewRecorder returns a Recorder over st.
func NewRecorder(st *State) *Recorder {
	return &Recorder{st: st}
}

func (r *Recorder) NextUniform() float64 {
	u := r.st.NextUniform()
	r.log = append(r.log, recordedDraw{drawUniform, u})
	return u
}

func (r *Recorder) NextNormal() float64 {
	z := r.st.NextNormal()
	r.log = append(r.log, recordedDraw{drawNormal, z})
	return z
}

// Mirror returns the antithetic counterpart source: replaying this
// Recorder's draw log with each uniform complemented to 1-u and each
// normal negated to -z. It consumes no randomness from the underlying
// generator.
func (r *Recorder) Mirror() *Mirror {
	return &Mirror{log: r.log}
}

// Reset discards the recorded log so the Recorder can be reused for the
// next path.
func (r *Recorder) Reset() {
	r.log = r.log[:0]
}

// Mirror replays a Recorder's draw log, returning each draw's antithetic
// counterpart in the same order it was originally recorded.
type Mirror struct {
	log []recordedDraw
	pos int
}

func (m *Mirror) NextUniform() float64 {
	d := m.log[m.pos]
	m.pos++
	return 1.0 - d.value
}

func (m *Mirror) NextNormal() float64 {
	d := m.log[m.pos]
	m.pos++
	return -d.value
}
