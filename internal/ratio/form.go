package ratio

import (
	"strconv"
	"strings"

	"canvas-cropper/internal/canvassize"
	"canvas-cropper/internal/logging"
)

var ratioLog = logging.Module("ratio")

// Form holds the four text fields of the calculator panel. Values stay as
// typed; they are parsed on every edit so the latest a and b always apply.
type Form struct {
	A, B, C, D string
}

// NewForm starts at 4:3 with the device's default resolution as c:d and
// solves d from c once.
func NewForm(dev canvassize.DeviceClass) *Form {
	res := dev.DefaultResolution()
	f := &Form{
		A: "4",
		B: "3",
		C: strconv.Itoa(res.Width),
		D: strconv.Itoa(res.Height),
	}
	if err := f.solveFrom(FieldC); err != nil {
		ratioLog.Warn().Err(err).Msg("initial solve failed")
	}
	return f
}

// Get returns the text of a field.
func (f *Form) Get(field Field) string {
	switch field {
	case FieldA:
		return f.A
	case FieldB:
		return f.B
	case FieldC:
		return f.C
	default:
		return f.D
	}
}

func (f *Form) set(field Field, v string) {
	switch field {
	case FieldA:
		f.A = v
	case FieldB:
		f.B = v
	case FieldC:
		f.C = v
	default:
		f.D = v
	}
}

// Edit stores value in field. Edits to c or d recompute the partner field;
// on failure the partner keeps its previous text and the error is returned
// for the caller to show. Edits to a or b never trigger a solve.
func (f *Form) Edit(field Field, value string) error {
	f.set(field, value)
	if field != FieldC && field != FieldD {
		return nil
	}
	return f.solveFrom(field)
}

func (f *Form) solveFrom(field Field) error {
	a, errA := ParseValue(f.A)
	b, errB := ParseValue(f.B)
	c, errC := ParseValue(f.C)
	d, errD := ParseValue(f.D)

	var err error
	switch field {
	case FieldC:
		err = firstErr(errA, errB, errC)
	case FieldD:
		err = firstErr(errA, errB, errD)
	}
	if err != nil {
		return err
	}

	target, v, err := Solve(a, b, c, d, field)
	if err != nil {
		ratioLog.Warn().Err(err).Str("edited", field.String()).Msg("solve rejected")
		return err
	}
	f.set(target, strconv.FormatFloat(v, 'f', -1, 64))
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// SelectPreset sets a:b from a preset button and clears c and d.
func (f *Form) SelectPreset(a, b int) {
	f.A = strconv.Itoa(a)
	f.B = strconv.Itoa(b)
	f.C = ""
	f.D = ""
}

// ParsePreset reads a "w:h" preset label.
func ParsePreset(s string) (int, int, bool) {
	ws, hs, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, false
	}
	w, err1 := strconv.Atoi(strings.TrimSpace(ws))
	h, err2 := strconv.Atoi(strings.TrimSpace(hs))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return w, h, true
}

// Resolution returns c×d when both are filled in, for the editor's manual
// resolution inputs. The editor still validates it on apply.
func (f *Form) Resolution() (canvassize.Resolution, bool) {
	if f.C == "" || f.D == "" {
		return canvassize.Resolution{}, false
	}
	c, err1 := strconv.Atoi(strings.TrimSpace(f.C))
	d, err2 := strconv.Atoi(strings.TrimSpace(f.D))
	if err1 != nil || err2 != nil {
		return canvassize.Resolution{}, false
	}
	return canvassize.Resolution{Width: c, Height: d}, true
}
