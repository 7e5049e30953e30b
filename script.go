package livebg

import (
	"encoding/json"
	"errors"
	"fmt"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure of a script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays host events and frames against a compositor so a run can
// be reproduced headless:
//
//	{"steps": [
//		{"action": "resize", "width": 800, "height": 600},
//		{"action": "tick", "frames": 60},
//		{"action": "drag", "fromX": 100, "fromY": 300, "toX": 700, "toY": 300, "frames": 30},
//		{"action": "leave"},
//		{"action": "screenshot", "label": "after-drag"}
//	]}
type Script struct {
	// ScreenshotDir is where screenshot steps write PNG files.
	ScreenshotDir string
	// Screenshots collects the paths written by the last Run.
	Screenshots []string

	steps []scriptStep
}

// LoadScript parses a JSON script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "tick", "move", "leave", "drag", "resize", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{ScreenshotDir: "screenshots", steps: f.Steps}, nil
}

// Len returns the number of steps.
func (s *Script) Len() int { return len(s.steps) }

// Run executes every step in order. Frames are produced by pumping sched, so
// c must have been started with it. Invalid pointer or viewport values fail
// the run at the offending step.
func (s *Script) Run(c *Compositor, sched *FrameScheduler) error {
	s.Screenshots = s.Screenshots[:0]
	for i, st := range s.steps {
		if err := s.exec(c, sched, st); err != nil {
			return fmt.Errorf("script step %d (%s): %w", i, st.Action, err)
		}
	}
	return nil
}

func (s *Script) exec(c *Compositor, sched *FrameScheduler, st scriptStep) error {
	switch st.Action {
	case "tick":
		sched.Advance(max(st.Frames, 1))
	case "move":
		return c.PointerMove(st.X, st.Y)
	case "leave":
		c.PointerLeave()
	case "resize":
		return c.Resize(st.Width, st.Height)
	case "drag":
		return s.drag(c, sched, st)
	case "screenshot":
		snap, ok := c.Surface().(Snapshotter)
		if !ok {
			c.log.Warn("screenshot skipped, surface cannot be captured", "label", st.Label)
			return nil
		}
		path, err := SavePNG(s.ScreenshotDir, st.Label, snap.Snapshot())
		if err != nil {
			return err
		}
		s.Screenshots = append(s.Screenshots, path)
	}
	return nil
}

// drag moves the pointer from (FromX, FromY) to (ToX, ToY) in a straight
// line, one position per frame. Minimum frames is 2 (start and end).
func (s *Script) drag(c *Compositor, sched *FrameScheduler, st scriptStep) error {
	frames := max(st.Frames, 2)
	for i := range frames {
		t := float64(i) / float64(frames-1)
		x := st.FromX + (st.ToX-st.FromX)*t
		y := st.FromY + (st.ToY-st.FromY)*t
		if err := c.PointerMove(x, y); err != nil {
			return err
		}
		sched.Advance(1)
	}
	return nil
}
