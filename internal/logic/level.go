package logic

// LevelFromDistance converts a filtered sensor-to-surface distance into
// a water level height. The sensor sits above the tank with a dead zone
// below it, so the distance is offset by the dead zone before being
// subtracted from the tank height. The result is clamped to
// [0, tankHeightMm]: noise near the tank extremes is expected and not
// an error.
func LevelFromDistance(distanceMm, tankHeightMm, deadZoneMm int) int {
	level := tankHeightMm - (distanceMm - deadZoneMm)
	if level < 0 {
		return 0
	}
	if level > tankHeightMm {
		return tankHeightMm
	}
	return level
}
