package pm

import "os/exec"

// Probe reports whether an executable is discoverable. The production
// implementation consults PATH; tests inject fakes.
type Probe interface {
	LookPath(file string) (string, error)
}

// SystemProbe discovers executables on the real PATH.
type SystemProbe struct{}

// LookPath delegates to exec.LookPath.
func (SystemProbe) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Preferences captures the user's package manager choice flags.
type Preferences struct {
	Yarn bool
	Pnpm bool
}

// Resolve picks the package manager for a run. Yarn wins when preferred
// and discoverable, then pnpm, then npm. The second result is false
// when npm itself was not discoverable and the caller should warn that
// npm is being assumed anyway.
func Resolve(prefs Preferences, probe Probe) (Manager, bool) {
	if prefs.Yarn && discoverable(probe, Yarn) {
		return Yarn, true
	}
	if prefs.Pnpm && discoverable(probe, Pnpm) {
		return Pnpm, true
	}
	if discoverable(probe, Npm) {
		return Npm, true
	}
	return Npm, false
}

func discoverable(probe Probe, m Manager) bool {
	_, err := probe.LookPath(string(m))
	return err == nil
}
