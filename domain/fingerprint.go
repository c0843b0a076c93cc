package domain

// Fingerprint bundles device attributes used for cross-device identity
// resolution. Every section is optional and passed through unvalidated.
type Fingerprint struct {
	Device      *Device      `json:"device,omitempty"`
	OS          *OS          `json:"os,omitempty"`
	Display     *Display     `json:"display,omitempty"`
	Hardware    *Hardware    `json:"hardware,omitempty"`
	Environment *Environment `json:"environment,omitempty"`
	DesktopData *DesktopData `json:"desktop_data,omitempty"`
}

type Device struct {
	Model        string `json:"model,omitempty"`
	Type         string `json:"type,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
}

type OS struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

type Display struct {
	Resolution string  `json:"resolution,omitempty"`
	Density    float64 `json:"density,omitempty"`
}

type Hardware struct {
	CPU    string `json:"cpu,omitempty"`
	Cores  int    `json:"cores,omitempty"`
	GPU    string `json:"gpu,omitempty"`
	Memory int    `json:"memory,omitempty"`
}

type Environment struct {
	Language string `json:"language,omitempty"`
	Timezone string `json:"timezone,omitempty"`
	Region   string `json:"region,omitempty"`
}

// DesktopData mirrors the user-agent client hints reported by desktop
// browsers. FormFactors and WOW64 are always emitted.
type DesktopData struct {
	FormFactors     []string `json:"form_factors"`
	Architecture    string   `json:"architecture,omitempty"`
	Bitness         string   `json:"bitness,omitempty"`
	PlatformVersion string   `json:"platform_version,omitempty"`
	WOW64           bool     `json:"wow64"`
}

func (f *Fingerprint) IsEmpty() bool {
	return f.Normalize() == nil
}

// Normalize returns a copy of f without empty sections, or nil when no
// section carries data.
func (f *Fingerprint) Normalize() *Fingerprint {
	if f == nil {
		return nil
	}

	out := &Fingerprint{}
	empty := true
	if f.Device != nil && *f.Device != (Device{}) {
		d := *f.Device
		out.Device, empty = &d, false
	}
	if f.OS != nil && *f.OS != (OS{}) {
		o := *f.OS
		out.OS, empty = &o, false
	}
	if f.Display != nil && *f.Display != (Display{}) {
		d := *f.Display
		out.Display, empty = &d, false
	}
	if f.Hardware != nil && *f.Hardware != (Hardware{}) {
		h := *f.Hardware
		out.Hardware, empty = &h, false
	}
	if f.Environment != nil && *f.Environment != (Environment{}) {
		e := *f.Environment
		out.Environment, empty = &e, false
	}
	if f.DesktopData != nil && !f.DesktopData.isZero() {
		d := *f.DesktopData
		d.FormFactors = append(make([]string, 0, len(d.FormFactors)), d.FormFactors...)
		out.DesktopData, empty = &d, false
	}

	if empty {
		return nil
	}
	return out
}

func (d *DesktopData) isZero() bool {
	return len(d.FormFactors) == 0 &&
		d.Architecture == "" &&
		d.Bitness == "" &&
		d.PlatformVersion == "" &&
		!d.WOW64
}
