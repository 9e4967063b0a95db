package key

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Platform is the OS family used for modifier reinterpretation.
// It is resolved once at startup and passed in, so the policy functions
// behave the same on every host.
type Platform uint8

const (
	// PlatformOther covers every non-Darwin target.
	PlatformOther Platform = iota

	// PlatformDarwin covers macOS and iOS.
	PlatformDarwin
)

// Parse errors for platform and option-as-alt names.
var (
	ErrUnknownPlatform    = errors.New("unknown platform")
	ErrUnknownOptionAsAlt = errors.New("unknown option-as-alt value")
)

// HostPlatform returns the platform family of the running binary.
func HostPlatform() Platform {
	return platformForGOOS(runtime.GOOS)
}

func platformForGOOS(goos string) Platform {
	switch goos {
	case "darwin", "ios":
		return PlatformDarwin
	default:
		return PlatformOther
	}
}

// ParsePlatform parses a platform name. "auto" and "" resolve to the host.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return HostPlatform(), nil
	case "darwin", "macos":
		return PlatformDarwin, nil
	case "other":
		return PlatformOther, nil
	default:
		return PlatformOther, fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
}

// String returns the platform name.
func (p Platform) String() string {
	switch p {
	case PlatformDarwin:
		return "darwin"
	case PlatformOther:
		return "other"
	default:
		return fmt.Sprintf("Platform(%d)", p)
	}
}

// OptionAsAlt controls whether the macOS option key acts as alt for
// keybindings instead of composing characters.
type OptionAsAlt uint8

const (
	// OptionAsAltFalse leaves option to the OS for text composition.
	OptionAsAltFalse OptionAsAlt = iota

	// OptionAsAltTrue treats both option keys as alt.
	OptionAsAltTrue

	// OptionAsAltLeft treats only the left option key as alt.
	OptionAsAltLeft

	// OptionAsAltRight treats only the right option key as alt.
	OptionAsAltRight
)

// ParseOptionAsAlt parses "false", "true", "left" or "right".
func ParseOptionAsAlt(s string) (OptionAsAlt, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "false", "":
		return OptionAsAltFalse, nil
	case "true":
		return OptionAsAltTrue, nil
	case "left":
		return OptionAsAltLeft, nil
	case "right":
		return OptionAsAltRight, nil
	default:
		return OptionAsAltFalse, fmt.Errorf("%w: %q", ErrUnknownOptionAsAlt, s)
	}
}

// String returns the config name of the policy.
func (o OptionAsAlt) String() string {
	switch o {
	case OptionAsAltFalse:
		return "false"
	case OptionAsAltTrue:
		return "true"
	case OptionAsAltLeft:
		return "left"
	case OptionAsAltRight:
		return "right"
	default:
		return fmt.Sprintf("OptionAsAlt(%d)", o)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o OptionAsAlt) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *OptionAsAlt) UnmarshalText(text []byte) error {
	v, err := ParseOptionAsAlt(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// CtrlOrSuper returns m with the platform's primary modifier set:
// super on Darwin, ctrl elsewhere. All other bits are left alone.
// Useful for default bindings such as copy and paste.
func CtrlOrSuper(p Platform, m Mods) Mods {
	if p == PlatformDarwin {
		return m.With(ModSuper)
	}
	return m.With(ModCtrl)
}
