package engine

import "math"

// ShotName returns the commentary label for a shot direction.
// 0 degrees is straight back down the pitch; positive angles go to the off
// side for a right-handed batter, negative to the leg side.
func ShotName(hAngleDeg float64, aerial bool) string {
	angle := NormalizeAngle(hAngleDeg)
	abs := math.Abs(angle)
	offside := angle >= 0

	switch {
	case abs <= 15:
		if aerial {
			return "lofted straight"
		}
		return "driven straight"
	case abs <= 45:
		if offside {
			if aerial {
				return "lofted over cover"
			}
			return "driven through cover"
		}
		if aerial {
			return "lofted over midwicket"
		}
		return "flicked through midwicket"
	case abs <= 75:
		if offside {
			if aerial {
				return "cut in the air"
			}
			return "cut"
		}
		if aerial {
			return "hooked"
		}
		return "pulled"
	case abs <= 105:
		if offside {
			if aerial {
				return "upper cut"
			}
			return "square cut"
		}
		if aerial {
			return "swept in the air"
		}
		return "swept"
	case abs <= 135:
		if offside {
			if aerial {
				return "edged"
			}
			return "late cut"
		}
		if aerial {
			return "flicked fine"
		}
		return "glanced fine"
	default:
		if aerial {
			return "edged in the air"
		}
		return "edged behind"
	}
}

// capitalize upper-cases the first byte of an ASCII shot name.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
