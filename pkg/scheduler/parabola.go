package scheduler

import "golang.org/x/exp/constraints"

// fitParabola derives the coefficients a, b, c of the parabola y = a*x^2 +
// b*x + c passing through three support points. Generic over the float
// kind so it can serve either the scheduler's float64 budget fit or a
// float32 caller without a conversion at the call site.
func fitParabola[F constraints.Float](x1, y1, x2, y2, x3, y3 F) (a, b, c F) {
	denom := (x1 - x2) * (x1 - x3) * (x2 - x3)
	a = (x3*(y2-y1) + x2*(y1-y3) + x1*(y3-y2)) / denom
	b = (x3*x3*(y1-y2) + x2*x2*(y3-y1) + x1*x1*(y2-y3)) / denom
	c = (x2*x3*(x2-x3)*y1 + x3*x1*(x3-x1)*y2 + x1*x2*(x1-x2)*y3) / denom
	return a, b, c
}
