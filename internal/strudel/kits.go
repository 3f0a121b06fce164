package strudel

import "strings"

// DrumKit defines preset drum sound mappings
type DrumKit string

const (
	DrumKitTR808    DrumKit = "tr808"
	DrumKitTR909    DrumKit = "tr909"
	DrumKitLinn     DrumKit = "linn"
	DrumKitAcoustic DrumKit = "acoustic"
	DrumKitLofi     DrumKit = "lofi"
)

// drumKitBanks maps drum kits to their .bank() name
var drumKitBanks = map[DrumKit]string{
	DrumKitTR808:    "RolandTR808",
	DrumKitTR909:    "RolandTR909",
	DrumKitLinn:     "LinnDrum",
	DrumKitAcoustic: "AlesisSR16",
	DrumKitLofi:     "CasioRZ1",
}

// AvailableDrumKits returns list of available drum kits
func AvailableDrumKits() []DrumKit {
	return []DrumKit{
		DrumKitTR808,
		DrumKitTR909,
		DrumKitLinn,
		DrumKitAcoustic,
		DrumKitLofi,
	}
}

// DrumKitDescription returns a description for each drum kit
func DrumKitDescription(kit DrumKit) string {
	descriptions := map[DrumKit]string{
		DrumKitTR808:    "Roland TR-808 drum machine - classic hip-hop/electronic",
		DrumKitTR909:    "Roland TR-909 drum machine - house/techno",
		DrumKitLinn:     "LinnDrum - 80s pop/R&B",
		DrumKitAcoustic: "Acoustic drum kit samples",
		DrumKitLofi:     "Lo-fi/vintage drum machine",
	}
	return descriptions[kit]
}

// ParseDrumKit converts a string to DrumKit
func ParseDrumKit(s string) DrumKit {
	switch strings.ToLower(s) {
	case "tr808", "808":
		return DrumKitTR808
	case "tr909", "909":
		return DrumKitTR909
	case "linn", "linndrum":
		return DrumKitLinn
	case "acoustic":
		return DrumKitAcoustic
	case "lofi", "lo-fi":
		return DrumKitLofi
	default:
		return DrumKitTR808
	}
}
