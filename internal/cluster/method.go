package cluster

import (
	"fmt"
	"math"
)

// Method is a linkage method.
type Method int

// Linkage methods.
const (
	Single Method = iota
	Complete
	Average
	Weighted
	Centroid
	Median
	Ward
)

var methodNames = [...]string{
	Single:   "single",
	Complete: "complete",
	Average:  "average",
	Weighted: "weighted",
	Centroid: "centroid",
	Median:   "median",
	Ward:     "ward",
}

// Methods returns the valid method names in their fixed order.
func Methods() []string {
	names := make([]string, len(methodNames))
	copy(names, methodNames[:])
	return names
}

// ParseMethod maps a method name to its Method.
func ParseMethod(name string) (Method, error) {
	for m, n := range methodNames {
		if n == name {
			return Method(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// Euclidean reports whether the method's update rule assumes distances
// between points of a Euclidean space. Without that, merge distances may
// decrease along the tree.
func (m Method) Euclidean() bool {
	return m == Centroid || m == Median || m == Ward
}

// update gives the distance from the cluster merged out of x and y to a third
// cluster i. dxi, dyi and dxy are the current distances, nx, ny and ni the
// cluster sizes.
type update func(dxi, dyi, dxy float64, nx, ny, ni int) float64

var updates = map[Method]update{
	Single: func(dxi, dyi, _ float64, _, _, _ int) float64 {
		return math.Min(dxi, dyi)
	},
	Complete: func(dxi, dyi, _ float64, _, _, _ int) float64 {
		return math.Max(dxi, dyi)
	},
	Average: func(dxi, dyi, _ float64, nx, ny, _ int) float64 {
		fx, fy := float64(nx), float64(ny)
		return (fx*dxi + fy*dyi) / (fx + fy)
	},
	Weighted: func(dxi, dyi, _ float64, _, _, _ int) float64 {
		return 0.5 * (dxi + dyi)
	},
	Centroid: func(dxi, dyi, dxy float64, nx, ny, _ int) float64 {
		fx, fy := float64(nx), float64(ny)
		fxy := fx + fy
		return root((fx*dxi*dxi + fy*dyi*dyi - fx*fy*dxy*dxy/fxy) / fxy)
	},
	Median: func(dxi, dyi, dxy float64, _, _, _ int) float64 {
		return root(0.5*(dxi*dxi+dyi*dyi) - 0.25*dxy*dxy)
	},
	Ward: func(dxi, dyi, dxy float64, nx, ny, ni int) float64 {
		fx, fy, fi := float64(nx), float64(ny), float64(ni)
		t := 1 / (fx + fy + fi)
		return root((fi+fx)*t*dxi*dxi + (fi+fy)*t*dyi*dyi - fi*t*dxy*dxy)
	},
}

// root clamps the small negative values rounding leaves behind, and the
// larger ones non-Euclidean input produces.
func root(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}
