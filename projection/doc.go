// SPDX-License-Identifier: MIT

// Package projection evaluates trace identities over the regression projection
// matrix M = I − X(X'X)⁻¹X' without ever materializing any n×n matrix.
//
// The central observation is the cyclic-permutation identity
//
//	tr(MW) = tr(W) − tr[(X'X)⁻¹ · X'WX]
//
// and its second-order relatives: every trace the spatial diagnostic tests
// need — tr(MW), tr(MWMW), tr(MWMW') — reduces to expressions in the k×k
// inverse C = (X'X)⁻¹ (factorized once) and the sparse-dense products
// B = WX, A = W'X, G = X'WX. Each product costs O(n·density·k); nothing here
// is O(n²) or O(n³) in n.
//
// An Algebra is computed eagerly by New and is immutable afterwards, so the
// statistic engines can read it concurrently without synchronization.
//
// Quadratic forms in M (u'Mv = u'v − (X'u)'C(X'v)) are exposed through
// QuadFormM and CrossM for the engines that need projections of WXβ and WX₀.
package projection
