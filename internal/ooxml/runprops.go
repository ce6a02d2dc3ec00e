package ooxml

import (
	"math"
	"strconv"

	"github.com/beevik/etree"
)

// rPrOrder is the CT_RPr child sequence. Word rejects run properties that
// are out of order, so new children are inserted at their schema position.
var rPrOrder = map[string]int{}

func init() {
	sequence := []string{
		"rStyle", "rFonts", "b", "bCs", "i", "iCs", "caps", "smallCaps",
		"strike", "dstrike", "outline", "shadow", "emboss", "imprint",
		"noProof", "snapToGrid", "vanish", "webHidden", "color", "spacing",
		"w", "kern", "position", "sz", "szCs", "highlight", "u", "effect",
		"bdr", "shd", "fitText", "vertAlign", "rtl", "cs", "em", "lang",
		"eastAsianLayout", "specVanish", "oMath",
	}
	for i, name := range sequence {
		rPrOrder[name] = i
	}
}

var themeFontAttrs = []string{"asciiTheme", "hAnsiTheme", "eastAsiaTheme", "cstheme"}

func (r *run) props(create bool) *etree.Element {
	for _, child := range r.el.ChildElements() {
		if r.d.is(child, "rPr") {
			return child
		}
	}
	if !create {
		return nil
	}
	rPr := etree.NewElement(r.d.name("rPr"))
	r.el.InsertChildAt(0, rPr)
	return rPr
}

func (r *run) prop(local string) *etree.Element {
	rPr := r.props(false)
	if rPr == nil {
		return nil
	}
	return r.d.child(rPr, local)
}

// ensureProp returns the named rPr child, inserting it in schema order.
func (r *run) ensureProp(local string) *etree.Element {
	rPr := r.props(true)
	if existing := r.d.child(rPr, local); existing != nil {
		return existing
	}
	el := etree.NewElement(r.d.name(local))
	rank, known := rPrOrder[local]
	for _, child := range rPr.ChildElements() {
		childRank, ok := rPrOrder[child.Tag]
		if known && ok && child.Space == r.d.ns && childRank > rank {
			rPr.InsertChildAt(child.Index(), el)
			return el
		}
	}
	rPr.AddChild(el)
	return el
}

func (r *run) FontName() string {
	fonts := r.prop("rFonts")
	if fonts == nil {
		return ""
	}
	return fonts.SelectAttrValue(r.d.name("ascii"), "")
}

// SetFontName sets the ascii, hAnsi and complex-script fonts and drops theme
// font references, which would otherwise take precedence.
func (r *run) SetFontName(name string) {
	fonts := r.ensureProp("rFonts")
	for _, attr := range themeFontAttrs {
		fonts.RemoveAttr(r.d.name(attr))
	}
	for _, attr := range []string{"ascii", "hAnsi", "cs"} {
		fonts.CreateAttr(r.d.name(attr), name)
	}
}

func (r *run) Bold() bool {
	b := r.prop("b")
	if b == nil {
		return false
	}
	return onOff(r.d.val(b))
}

func (r *run) SetBold(bold bool) {
	b := r.ensureProp("b")
	if bold {
		b.RemoveAttr(r.d.name("val"))
		return
	}
	b.CreateAttr(r.d.name("val"), "0")
}

// Size reports the explicit size in points; sz is stored in half-points.
func (r *run) Size() float64 {
	sz := r.prop("sz")
	if sz == nil {
		return 0
	}
	halfPoints, err := strconv.Atoi(r.d.val(sz))
	if err != nil {
		return 0
	}
	return float64(halfPoints) / 2
}

func (r *run) SetSize(points float64) {
	halfPoints := strconv.Itoa(int(math.Round(points * 2)))
	r.ensureProp("sz").CreateAttr(r.d.name("val"), halfPoints)
	r.ensureProp("szCs").CreateAttr(r.d.name("val"), halfPoints)
}

func onOff(v string) bool {
	switch v {
	case "0", "false", "off":
		return false
	default:
		return true
	}
}
