package models

import (
	"fmt"
	"slices"
)

// Tool names of the voice-command catalog.
const (
	ToolNavigate       = "navigate"
	ToolHapticFeedback = "haptic_feedback"
	ToolCameraControl  = "camera_control"
)

type Screen string

const (
	ScreenCamera   Screen = "camera"
	ScreenHaptic   Screen = "haptic"
	ScreenSettings Screen = "settings"
	ScreenHome     Screen = "home"
)

// Screens lists the navigate targets in declaration order.
var Screens = []Screen{ScreenCamera, ScreenHaptic, ScreenSettings, ScreenHome}

type Emotion string

const (
	EmotionNeutral Emotion = "neutral"
	EmotionHappy   Emotion = "happy"
	EmotionAngry   Emotion = "angry"
	EmotionSad     Emotion = "sad"
)

var Emotions = []Emotion{EmotionNeutral, EmotionHappy, EmotionAngry, EmotionSad}

type CameraAction string

const CameraSwitch CameraAction = "switch_camera"

var CameraActions = []CameraAction{CameraSwitch}

// EnumValues converts a typed enum list into the plain strings used in a
// function declaration.
func EnumValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Action is the typed view of a ToolCallResult. The concrete type is one of
// Navigate, HapticFeedback, CameraControl or UnknownAction.
type Action interface {
	ToolName() string
	// Validate reports whether the arguments are inside the declared enum.
	Validate() error
	isAction()
}

type Navigate struct {
	Screen Screen
}

type HapticFeedback struct {
	Emotion Emotion
}

type CameraControl struct {
	Action CameraAction
}

// UnknownAction carries a call whose name is not in the catalog.
type UnknownAction struct {
	Name string
	Args map[string]interface{}
}

func (Navigate) ToolName() string       { return ToolNavigate }
func (HapticFeedback) ToolName() string { return ToolHapticFeedback }
func (CameraControl) ToolName() string  { return ToolCameraControl }
func (u UnknownAction) ToolName() string {
	return u.Name
}

func (n Navigate) Validate() error {
	if !slices.Contains(Screens, n.Screen) {
		return fmt.Errorf("%s: screen %q not in %v", ToolNavigate, n.Screen, Screens)
	}
	return nil
}

func (h HapticFeedback) Validate() error {
	if !slices.Contains(Emotions, h.Emotion) {
		return fmt.Errorf("%s: emotion %q not in %v", ToolHapticFeedback, h.Emotion, Emotions)
	}
	return nil
}

func (c CameraControl) Validate() error {
	if !slices.Contains(CameraActions, c.Action) {
		return fmt.Errorf("%s: action %q not in %v", ToolCameraControl, c.Action, CameraActions)
	}
	return nil
}

func (u UnknownAction) Validate() error {
	return fmt.Errorf("unknown tool %q", u.Name)
}

func (Navigate) isAction()       {}
func (HapticFeedback) isAction() {}
func (CameraControl) isAction()  {}
func (UnknownAction) isAction()  {}

// Action decodes the result into its typed variant. It returns nil for a nil
// result. Missing or non-string arguments decode to the zero value, which
// Validate then rejects; decoding itself never fails.
func (r *ToolCallResult) Action() Action {
	if r == nil {
		return nil
	}
	switch r.Name {
	case ToolNavigate:
		s, _ := r.StringArg("screen")
		return Navigate{Screen: Screen(s)}
	case ToolHapticFeedback:
		s, _ := r.StringArg("emotion")
		return HapticFeedback{Emotion: Emotion(s)}
	case ToolCameraControl:
		s, _ := r.StringArg("action")
		return CameraControl{Action: CameraAction(s)}
	default:
		return UnknownAction{Name: r.Name, Args: r.Args}
	}
}
