// Package telecalc computes telescope and eyepiece optics: focal ratio,
// resolving power and useful magnification range per telescope, and
// magnification, true field and exit pupil for every telescope and eyepiece pairing.
//
//	calc, _ := telecalc.New(telecalc.WithPrometheus(prometheus.DefaultRegisterer))
//	rep, _ := calc.Compare(ctx,
//	    []telecalc.TelescopeSpec{{Name: "Dob", Aperture: telecalc.In(8), FocalLength: telecalc.MM(1200)}},
//	    []telecalc.EyepieceSpec{{Name: "Plossl", ApparentFOV: 52, FocalLength: telecalc.MM(25)}},
//	)
//	_ = calc.Render(os.Stdout, rep, "text")
//
// A single pairing can be evaluated without building a report:
//
//	p, _ := calc.Pair(scope, eyepiece)
//	fmt.Printf("%.0fx, %.2f deg\n", p.Magnification, p.TrueFieldDeg)
package telecalc
