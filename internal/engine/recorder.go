package engine

// Op is one recorded draw call.
type Op struct {
	Kind string    `json:"op"`
	Args []float64 `json:"args,omitempty"`
	Text string    `json:"text,omitempty"`
	Fill string    `json:"fill,omitempty"`
}

// Recorder is a Surface that keeps every call in memory. It backs the JSON
// layout output and lets tests inject surface failures.
type Recorder struct {
	TransformStack

	Ops []Op

	// NotReady, when set, is returned by Ready.
	NotReady error
	// FailWhen, when set, is consulted before recording each call; a non-nil
	// result rejects the call.
	FailWhen func(op Op) error
}

func (r *Recorder) Ready() error { return r.NotReady }

func (r *Recorder) record(op Op) error {
	if r.FailWhen != nil {
		if err := r.FailWhen(op); err != nil {
			return err
		}
	}
	r.Ops = append(r.Ops, op)
	return nil
}

func (r *Recorder) FillRect(x, y, w, h float64, fill string) error {
	return r.record(Op{Kind: "fillRect", Args: []float64{x, y, w, h}, Fill: fill})
}

func (r *Recorder) StrokeRect(x, y, w, h float64) error {
	return r.record(Op{Kind: "strokeRect", Args: []float64{x, y, w, h}})
}

func (r *Recorder) Circle(cx, cy, radius float64) error {
	return r.record(Op{Kind: "circle", Args: []float64{cx, cy, radius}})
}

func (r *Recorder) Line(x1, y1, x2, y2, width float64) error {
	return r.record(Op{Kind: "line", Args: []float64{x1, y1, x2, y2, width}})
}

func (r *Recorder) Text(x, y float64, text string, style TextStyle) error {
	return r.record(Op{Kind: "text", Args: []float64{x, y, style.Size, float64(style.Align)}, Text: text})
}

func (r *Recorder) Save() error {
	if err := r.record(Op{Kind: "save"}); err != nil {
		return err
	}
	return r.TransformStack.Save()
}

func (r *Recorder) Restore() error {
	if err := r.record(Op{Kind: "restore"}); err != nil {
		return err
	}
	return r.TransformStack.Restore()
}

func (r *Recorder) Translate(dx, dy float64) error {
	if err := r.record(Op{Kind: "translate", Args: []float64{dx, dy}}); err != nil {
		return err
	}
	return r.TransformStack.Translate(dx, dy)
}

func (r *Recorder) Rotate(angle float64) error {
	if err := r.record(Op{Kind: "rotate", Args: []float64{angle}}); err != nil {
		return err
	}
	return r.TransformStack.Rotate(angle)
}

// Count returns how many calls of a kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Replay sends the recorded calls to another surface.
func (r *Recorder) Replay(s Surface) error {
	for _, op := range r.Ops {
		var err error
		a := op.Args
		switch op.Kind {
		case "fillRect":
			err = s.FillRect(a[0], a[1], a[2], a[3], op.Fill)
		case "strokeRect":
			err = s.StrokeRect(a[0], a[1], a[2], a[3])
		case "circle":
			err = s.Circle(a[0], a[1], a[2])
		case "line":
			err = s.Line(a[0], a[1], a[2], a[3], a[4])
		case "text":
			err = s.Text(a[0], a[1], op.Text, TextStyle{Size: a[2], Align: TextAlign(a[3])})
		case "save":
			err = s.Save()
		case "restore":
			err = s.Restore()
		case "translate":
			err = s.Translate(a[0], a[1])
		case "rotate":
			err = s.Rotate(a[0])
		}
		if err != nil {
			return &SurfaceError{Op: op.Kind, Err: err}
		}
	}
	return nil
}
