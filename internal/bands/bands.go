// Package bands classifies numeric material properties into the qualitative
// labels used in prompt text. Every prompt section that describes a number
// in words goes through this package so one prompt never labels the same
// value two different ways.
package bands

import "fmt"

// Lightness bands for LAB L*.
const (
	LightnessDark   = "DARK"
	LightnessMedium = "MEDIUM"
	LightnessLight  = "LIGHT"
)

// Reflectivity bands.
const (
	ReflectivityMatte  = "MATTE"
	ReflectivitySatin  = "SATIN"
	ReflectivityGloss  = "GLOSS"
	ReflectivityChrome = "CHROME"
)

// Metallic flake bands.
const (
	FlakeNone   = "NONE"
	FlakeFine   = "FINE"
	FlakeMedium = "MEDIUM"
	FlakeHeavy  = "HEAVY"
)

type band struct {
	below float64
	label string
}

var lightnessBands = []band{
	{30, LightnessDark},
	{60, LightnessMedium},
}

var reflectivityBands = []band{
	{0.3, ReflectivityMatte},
	{0.6, ReflectivitySatin},
	{0.9, ReflectivityGloss},
}

var flakeBands = []band{
	{0.1, FlakeNone},
	{0.4, FlakeFine},
	{0.7, FlakeMedium},
}

func classify(v float64, table []band, top string) string {
	for _, b := range table {
		if v < b.below {
			return b.label
		}
	}
	return top
}

// Lightness: L<30 DARK, 30<=L<60 MEDIUM, L>=60 LIGHT.
func Lightness(l float64) string {
	return classify(l, lightnessBands, LightnessLight)
}

// Reflectivity: <0.3 MATTE, <0.6 SATIN, <0.9 GLOSS, >=0.9 CHROME.
func Reflectivity(r float64) string {
	return classify(r, reflectivityBands, ReflectivityChrome)
}

// Flake: <0.1 NONE, <0.4 FINE, <0.7 MEDIUM, >=0.7 HEAVY.
func Flake(f float64) string {
	return classify(f, flakeBands, FlakeHeavy)
}

// Hue describes which way the a*/b* axes lean, e.g. "red-leaning, yellow-leaning".
// Values within ±2 of zero are treated as neutral on that axis.
func Hue(a, b float64) string {
	const neutral = 2.0
	var ax, bx string
	switch {
	case a > neutral:
		ax = "red-leaning"
	case a < -neutral:
		ax = "green-leaning"
	default:
		ax = "neutral red/green"
	}
	switch {
	case b > neutral:
		bx = "yellow-leaning"
	case b < -neutral:
		bx = "blue-leaning"
	default:
		bx = "neutral yellow/blue"
	}
	return ax + ", " + bx
}

// DescribeReflectivity formats a value with its band, e.g. "0.92 (CHROME band)".
func DescribeReflectivity(r float64) string {
	return fmt.Sprintf("%.2f (%s band)", r, Reflectivity(r))
}

// DescribeFlake formats a flake density with its band.
func DescribeFlake(f float64) string {
	return fmt.Sprintf("%.2f (%s flake)", f, Flake(f))
}

// DescribeLAB formats LAB values with the lightness band and hue lean.
func DescribeLAB(l, a, b float64) string {
	return fmt.Sprintf("L*=%.1f a*=%.1f b*=%.1f (%s; %s)", l, a, b, Lightness(l), Hue(a, b))
}
