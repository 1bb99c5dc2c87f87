package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/echoflaresat/raytrace/vectors"
)

var ErrInvalidVector = errors.New("config: vector must be three comma-separated numbers")

// vecValue is a flag.Value for "x,y,z".
type vecValue struct {
	v *vectors.Vec3
}

func (f *vecValue) String() string {
	if f.v == nil {
		return ""
	}
	return FormatVec(*f.v)
}

func (f *vecValue) Set(s string) error {
	v, err := ParseVec(s)
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

func ParseVec(s string) (vectors.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return vectors.Vec3{}, fmt.Errorf("%w: %q", ErrInvalidVector, s)
	}
	var xyz [3]float64
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return vectors.Vec3{}, fmt.Errorf("%w: %q", ErrInvalidVector, s)
		}
		xyz[i] = x
	}
	return vectors.New(xyz[0], xyz[1], xyz[2]), nil
}

func FormatVec(v vectors.Vec3) string {
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	return f(v.X) + "," + f(v.Y) + "," + f(v.Z)
}
