package engine

// InstallGuidance returns setup instructions shown when no engine is
// available at all.
func InstallGuidance() string {
	return `No speech engine is installed. To install one:

  # espeak-ng (smallest, streams straight to aplay)
  sudo apt install espeak-ng alsa-utils

  # SVOX Pico (more natural voice)
  sudo apt install libttspico-utils alsa-utils

The builtin engine needs no external tools but requires pisay to be built
with the SVOX Pico library (libttspico-dev) present.`
}
