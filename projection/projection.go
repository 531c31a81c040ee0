// SPDX-License-Identifier: MIT
// Package projection: eager computation of the shared trace terms.
//
// Trace identities (M = I − P, P = XCX', C = (X'X)⁻¹, B = WX, A = W'X, G = X'B):
//
//	tr(MW)    = tr(W) − tr(C·G)                        tr(W) = 0 by the W contract
//	tr(MWMW)  = tr(WW) − 2·tr(C·A'B) + tr(CG·CG)
//	tr(MWMW') = tr(WW') − tr(C·A'A) − tr(C·B'B) + tr(CG·C·G')
//
// Derivation sketch for the second-order terms: expand (I−P)W(I−P)W and use
// cyclic permutation to sandwich every P between X-derived k-dimensional
// factors, e.g. tr(PWW) = tr(C·X'WWX) = tr(C·A'B) and
// tr(PWPW') = tr(C·G·C·G'). All surviving factors are k×k or n×k.

package projection

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/mariaalice-souza/spreg/weights"
)

// MaxConditionNumber bounds the acceptable condition number of the Cholesky
// factor of X'X; beyond it the design matrix is treated as effectively
// rank-deficient and New fails with ErrSingular.
const MaxConditionNumber = 1e13

// Operation name constants for unified error wrapping.
const (
	opNew      = "New"
	opQuadForm = "QuadFormM"
	opCrossM   = "CrossM"
)

// projErrorf wraps err with an operation tag, preserving the sentinel via %w.
func projErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Algebra holds the one-time products and traces shared by every statistic
// engine. Immutable after New; safe for concurrent reads.
type Algebra struct {
	n, k int

	x *mat.Dense    // design matrix X (n×k), read-only
	c *mat.SymDense // C = (X'X)⁻¹ (k×k)
	b *mat.Dense    // B = WX   (n×k)
	a *mat.Dense    // A = W'X  (n×k)
	g *mat.Dense    // G = X'WX (k×k)

	trMW    float64 // tr(MW)
	trMWMW  float64 // tr(MWMW)
	trMWMWT float64 // tr(MWMW')
	t       float64 // T = tr(WW + W'W)
}

// New validates (X, W), factorizes X'X once, forms the sparse-dense products
// and evaluates every shared trace.
//
// Errors:
//   - ErrNilOperand        — nil X or W.
//   - ErrDimensionMismatch — rows(X) != n(W).
//   - ErrDegreesOfFreedom  — n−k ≤ 0 or n−k+2 ≤ 0.
//   - ErrSingular          — X'X not positive definite or condition number
//     above MaxConditionNumber.
//
// Complexity: O(nnz·k) for the sparse-dense products, O(n·k²) for the Gram
// matrix, O(k³) for the factorization and the k×k trace products.
func New(x *mat.Dense, w *weights.Matrix) (*Algebra, error) {
	if x == nil || w == nil {
		return nil, projErrorf(opNew, ErrNilOperand)
	}
	n, k := x.Dims()
	if n != w.N() {
		return nil, projErrorf(opNew, ErrDimensionMismatch)
	}
	if n-k <= 0 || n-k+2 <= 0 {
		return nil, projErrorf(opNew, ErrDegreesOfFreedom)
	}

	// Gram matrix and its Cholesky factorization (the rank/conditioning check).
	xtx := mat.NewSymDense(k, nil)
	xtx.SymOuterK(1, x.T())
	var chol mat.Cholesky
	if ok := chol.Factorize(xtx); !ok {
		return nil, projErrorf(opNew, ErrSingular)
	}
	if chol.Cond() > MaxConditionNumber {
		return nil, projErrorf(opNew, ErrSingular)
	}
	c := mat.NewSymDense(k, nil)
	if err := chol.InverseTo(c); err != nil {
		return nil, projErrorf(opNew, ErrSingular)
	}

	// Sparse-dense products: B = WX, A = W'X, then G = X'B.
	b, err := w.LagDense(x)
	if err != nil {
		return nil, projErrorf(opNew, err)
	}
	a, err := w.LagTransposeDense(x)
	if err != nil {
		return nil, projErrorf(opNew, err)
	}
	var g mat.Dense
	g.Mul(x.T(), b)

	al := &Algebra{n: n, k: k, x: x, c: c, b: b, a: a, g: &g}
	al.computeTraces(w)

	return al, nil
}

// computeTraces fills the shared trace fields from k×k products only.
func (al *Algebra) computeTraces(w *weights.Matrix) {
	var cg mat.Dense // C·G
	cg.Mul(al.c, al.g)

	// tr(MW) = tr(W) − tr(C·G); tr(W) = 0 because w_ii = 0 by contract.
	al.trMW = -traceDense(&cg)

	// tr(MWMW) = tr(WW) − 2·tr(C·A'B) + tr(CG·CG)
	var atb, catb, cgcg mat.Dense
	atb.Mul(al.a.T(), al.b)
	catb.Mul(al.c, &atb)
	cgcg.Mul(&cg, &cg)
	al.trMWMW = w.TraceWW() - 2*traceDense(&catb) + traceDense(&cgcg)

	// tr(MWMW') = tr(WW') − tr(C·A'A) − tr(C·B'B) + tr(CG·C·G')
	var ata, cata, btb, cbtb, cgc, cgcgt mat.Dense
	ata.Mul(al.a.T(), al.a)
	cata.Mul(al.c, &ata)
	btb.Mul(al.b.T(), al.b)
	cbtb.Mul(al.c, &btb)
	cgc.Mul(&cg, al.c)
	cgcgt.Mul(&cgc, al.g.T())
	al.trMWMWT = w.TraceWWT() - traceDense(&cata) - traceDense(&cbtb) + traceDense(&cgcgt)

	// T = tr(WW + W'W), straight off the sparse structure.
	al.t = w.TraceTerm()
}

// traceDense sums the diagonal of a square dense matrix.
func traceDense(m *mat.Dense) float64 {
	r, _ := m.Dims()
	var s float64
	for i := 0; i < r; i++ {
		s += m.At(i, i)
	}

	return s
}

// N returns the sample size n.
func (al *Algebra) N() int { return al.n }

// K returns the number of regressors k (constant included).
func (al *Algebra) K() int { return al.k }

// TraceMW returns tr(MW).
func (al *Algebra) TraceMW() float64 { return al.trMW }

// TraceMWMW returns tr(MWMW).
func (al *Algebra) TraceMWMW() float64 { return al.trMWMW }

// TraceMWMWT returns tr(MWMW').
func (al *Algebra) TraceMWMWT() float64 { return al.trMWMWT }

// TraceTerm returns T = tr(WW + W'W).
func (al *Algebra) TraceTerm() float64 { return al.t }

// LagX returns B = WX. The caller must treat the result as read-only.
func (al *Algebra) LagX() *mat.Dense { return al.b }

// QuadFormM evaluates the projected inner product u'Mv = u'v − (X'u)'C(X'v)
// without forming M. Fails with ErrDimensionMismatch unless both vectors have
// length n.
//
// Complexity: O(n·k).
func (al *Algebra) QuadFormM(u, v []float64) (float64, error) {
	if len(u) != al.n || len(v) != al.n {
		return 0, projErrorf(opQuadForm, ErrDimensionMismatch)
	}

	xu := al.xtVec(u) // X'u (k)
	xv := al.xtVec(v) // X'v (k)

	var cxv mat.VecDense
	cxv.MulVec(al.c, mat.NewVecDense(al.k, xv))

	return floats.Dot(u, v) - mat.Dot(mat.NewVecDense(al.k, xu), &cxv), nil
}

// CrossM evaluates U'MV = U'V − (X'U)'C(X'V) for dense operands with n rows.
// The result is p×q for U: n×p, V: n×q. Fails with ErrDimensionMismatch when
// either operand does not have n rows.
//
// Complexity: O(n·k·(p+q) + k·p·q).
func (al *Algebra) CrossM(u, v *mat.Dense) (*mat.Dense, error) {
	ur, uc := u.Dims()
	vr, vc := v.Dims()
	if ur != al.n || vr != al.n {
		return nil, projErrorf(opCrossM, ErrDimensionMismatch)
	}

	// U'V.
	out := mat.NewDense(uc, vc, nil)
	out.Mul(u.T(), v)

	// (X'U)'C(X'V).
	var xtu, xtv, cxv, corr mat.Dense
	xtu.Mul(al.x.T(), u) // k×p
	xtv.Mul(al.x.T(), v) // k×q
	cxv.Mul(al.c, &xtv)  // k×q
	corr.Mul(xtu.T(), &cxv)

	out.Sub(out, &corr)

	return out, nil
}

// xtVec computes X'u for a length-n vector, returning a fresh length-k slice.
func (al *Algebra) xtVec(u []float64) []float64 {
	out := make([]float64, al.k)
	var i, j int
	for i = 0; i < al.n; i++ {
		ui := u[i]
		if ui == 0 {
			continue
		}
		row := al.x.RawRowView(i)
		for j = 0; j < al.k; j++ {
			out[j] += row[j] * ui
		}
	}

	return out
}
