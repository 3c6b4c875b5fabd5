/*
Package iccgen synthesizes ICC display profiles from a white point, three
primary chromaticities and a parametric tone response curve.

The whole pipeline is a pure function of its Inputs: the RGB to XYZ matrix is
derived from the primaries, chromatically adapted to the D50 profile
connection space and serialized, together with the tone curves and text
tags, into a version 4 (or version 2) matrix/TRC profile.

	in, _ := iccgen.Preset("display-p3")
	in.Created = time.Now()
	data, err := iccgen.BuildAndSerialize(in)
*/
package iccgen

import "fmt"

type GeneratorVersion struct {
	Major, Minor, Patch uint
}

func (v GeneratorVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

var Version = GeneratorVersion{1, 0, 0}
