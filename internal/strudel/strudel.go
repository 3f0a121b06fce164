// Package strudel renders generated patterns as Strudel mini-notation
// for live-coding playback at strudel.cc.
package strudel

import (
	"fmt"
	"math"
	"strings"

	"github.com/dygy/beatgen/internal/pattern"
)

// Generator converts patterns to Strudel code
type Generator struct {
	quantize int // grid slots per 4/4 bar (16 = sixteenth notes)
}

// NewGenerator creates a generator with the given quantization
func NewGenerator(quantize int) *Generator {
	if quantize <= 0 {
		quantize = 16
	}
	return &Generator{quantize: quantize}
}

// soundName maps a drum voice to its Strudel sample name
func soundName(v pattern.Voice) string {
	switch v {
	case pattern.Kick:
		return "bd"
	case pattern.Snare:
		return "sd"
	case pattern.HiHatClosed:
		return "hh"
	case pattern.HiHatOpen:
		return "oh"
	case pattern.TomHigh:
		return "ht"
	case pattern.TomMid:
		return "mt"
	case pattern.TomLow:
		return "lt"
	case pattern.Crash:
		return "cr"
	case pattern.Ride:
		return "rd"
	default:
		return "~"
	}
}

// StyleKit returns the default drum kit for a generation style.
func StyleKit(s pattern.Style) DrumKit {
	switch s {
	case pattern.StyleElectronic:
		return DrumKitTR909
	case pattern.StyleLofi:
		return DrumKitLofi
	case pattern.StyleJazz, pattern.StyleLatin:
		return DrumKitAcoustic
	default:
		return DrumKitAcoustic
	}
}

// Render produces a complete Strudel snippet: tempo line plus a stack
// of per-voice s() patterns mapped onto the kit's bank.
func (g *Generator) Render(p *pattern.Pattern, kit DrumKit) string {
	if len(p.Hits) == 0 {
		return ""
	}

	bank := drumKitBanks[kit]

	beatsPerBar := p.TimeSignature.BeatsPerBar()
	numBars := int(math.Round(p.LengthInBeats / beatsPerBar))
	if numBars < 1 {
		numBars = 1
	}
	slotsPerBeat := float64(g.quantize) / 4
	slotsPerBar := int(math.Round(beatsPerBar * slotsPerBeat))

	grouped := p.HitsByVoice()

	var lines []string

	// Kick and snare first, then the combined hat line, toms high to
	// low, cymbals last.
	if line := g.voiceLine(grouped[pattern.Kick], pattern.Kick, slotsPerBeat, slotsPerBar, numBars, bank); line != "" {
		lines = append(lines, line)
	}
	if line := g.voiceLine(grouped[pattern.Snare], pattern.Snare, slotsPerBeat, slotsPerBar, numBars, bank); line != "" {
		lines = append(lines, line)
	}
	if line := g.hatLine(grouped[pattern.HiHatClosed], grouped[pattern.HiHatOpen], slotsPerBeat, slotsPerBar, numBars, bank); line != "" {
		lines = append(lines, line)
	}
	for _, v := range []pattern.Voice{pattern.TomHigh, pattern.TomMid, pattern.TomLow, pattern.Crash, pattern.Ride} {
		if line := g.voiceLine(grouped[v], v, slotsPerBeat, slotsPerBar, numBars, bank); line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("setcpm(%d/4)\n\n", p.BPM))

	if len(lines) == 1 {
		sb.WriteString(lines[0])
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString("stack(\n")
	for i, line := range lines {
		sb.WriteString("  " + line)
		if i < len(lines)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(").room(0.2)\n")
	return sb.String()
}

// voiceLine builds one s() pattern for a single voice
func (g *Generator) voiceLine(hits []pattern.Hit, v pattern.Voice, slotsPerBeat float64, slotsPerBar, numBars int, bank string) string {
	if len(hits) == 0 {
		return ""
	}

	totalSlots := slotsPerBar * numBars
	slots := make([]bool, totalSlots)
	for _, h := range hits {
		slot := int(math.Round(h.Time * slotsPerBeat))
		if slot >= 0 && slot < totalSlots {
			slots[slot] = true
		}
	}

	sound := soundName(v)
	var bars []string
	for bar := 0; bar < numBars; bar++ {
		var barParts []string
		barHasHits := false
		for i := bar * slotsPerBar; i < (bar+1)*slotsPerBar; i++ {
			if slots[i] {
				barParts = append(barParts, sound)
				barHasHits = true
			} else {
				barParts = append(barParts, "~")
			}
		}
		if barHasHits {
			bars = append(bars, simplifyDrumPattern(barParts))
		}
	}
	if len(bars) == 0 {
		return ""
	}

	out := fmt.Sprintf("s(\"%s\")", strings.Join(bars, " | "))
	if bank != "" {
		out += fmt.Sprintf(".bank(\"%s\")", bank)
	}
	return out
}

// hatLine combines closed and open hats into one pattern, with cut(1)
// so the open hat chokes the closed one.
func (g *Generator) hatLine(hhHits, ohHits []pattern.Hit, slotsPerBeat float64, slotsPerBar, numBars int, bank string) string {
	if len(hhHits) == 0 && len(ohHits) == 0 {
		return ""
	}

	totalSlots := slotsPerBar * numBars
	hhSlots := make([]bool, totalSlots)
	ohSlots := make([]bool, totalSlots)
	for _, h := range hhHits {
		slot := int(math.Round(h.Time * slotsPerBeat))
		if slot >= 0 && slot < totalSlots {
			hhSlots[slot] = true
		}
	}
	for _, h := range ohHits {
		slot := int(math.Round(h.Time * slotsPerBeat))
		if slot >= 0 && slot < totalSlots {
			ohSlots[slot] = true
		}
	}

	var bars []string
	for bar := 0; bar < numBars; bar++ {
		var barParts []string
		barHasHits := false
		for i := bar * slotsPerBar; i < (bar+1)*slotsPerBar; i++ {
			switch {
			case ohSlots[i]:
				barParts = append(barParts, "oh")
				barHasHits = true
			case hhSlots[i]:
				barParts = append(barParts, "hh")
				barHasHits = true
			default:
				barParts = append(barParts, "~")
			}
		}
		if barHasHits {
			bars = append(bars, simplifyDrumPattern(barParts))
		}
	}
	if len(bars) == 0 {
		return ""
	}

	out := fmt.Sprintf("s(\"%s\")", strings.Join(bars, " | "))
	if bank != "" {
		out += fmt.Sprintf(".bank(\"%s\")", bank)
	}
	return out + ".cut(1)"
}

// simplifyDrumPattern reduces consecutive rests in drum patterns
func simplifyDrumPattern(parts []string) string {
	if len(parts) == 0 {
		return "~"
	}

	var result []string
	restCount := 0
	for _, p := range parts {
		if p == "~" {
			restCount++
			continue
		}
		if restCount > 0 {
			if restCount == 1 {
				result = append(result, "~")
			} else {
				result = append(result, fmt.Sprintf("~*%d", restCount))
			}
			restCount = 0
		}
		result = append(result, p)
	}
	if restCount > 0 {
		if restCount == 1 {
			result = append(result, "~")
		} else {
			result = append(result, fmt.Sprintf("~*%d", restCount))
		}
	}

	return strings.Join(result, " ")
}
