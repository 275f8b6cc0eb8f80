package rng

import "testing"

func TestSeedNonZero(t *testing.T) {
	for _, seed := range []uint64{0, 1, 42, ^uint64(0)} {
		st := Seed(seed)
		w := st.Words()
		if w[0]|w[1]|w[2]|w[3] == 0 {
			t.Fatalf("seed %d produced all-zero state", seed)
		}
	}
}

func TestUniformRange(t *testing.T) {
	st := Seed(1)
	const n = 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		u := st.NextUniform()
		if u < 0 || u >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, u)
		}
		sum += u
	}
	mean := sum / n
	if mean < 0.49 || mean > 0.51 {
		t.Errorf("empirical mean %v outside 0.5+-0.01", mean)
	}
}

func TestNormalMoments(t *testing.T) {
	st := Seed(2)
	const n = 100000
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		z := st.NextNormal()
		sum += z
		sumSq += z * z
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	if mean < -0.02 || mean > 0.02 {
		t.Errorf("empirical mean %v outside 0+-0.02", mean)
	}
	if variance < 0.98 || variance > 1.02 {
		t.Errorf("empirical variance %v outside 1+-0.02", variance)
	}
}

func TestJumpDisjoint(t *testing.T) {
	base := Seed(42)
	jumped := base.Jumped()

	baseCopy := base
	jumpedCopy := jumped

	for i := 0; i < 100; i++ {
		if baseCopy.NextUint64() == jumpedCopy.NextUint64() {
			t.Fatalf("output %d collided between base and jumped stream", i)
		}
	}
}

func TestJumpDeterministic(t *testing.T) {
	base := Seed(7)
	a := base.Jumped()
	b := base.Jumped()
	if a.Words() != b.Words() {
		t.Fatalf("Jump is not deterministic: %v != %v", a.Words(), b.Words())
	}
}

func TestJumpNSequential(t *testing.T) {
	base := Seed(7)
	direct := base.JumpN(3)

	stepwise := base
	stepwise.Jump()
	stepwise.Jump()
	stepwise.Jump()

	if direct.Words() != stepwise.Words() {
		t.Fatalf("JumpN(3) != three sequential Jump calls")
	}
}
