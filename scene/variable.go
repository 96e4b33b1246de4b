package scene

import "github.com/agiangrant/stagefit/host"

// Control is a variable watcher sub-control (slide bar, value box, resize
// handle or scroll thumb).
type Control struct {
	*Object
	parent *Object
}

// NewControl creates a control at (x, y) inside parent.
func NewControl(parent *Object, x, y float64) *Control {
	return &Control{Object: NewObject(x, y), parent: parent}
}

// SetParentCursor sets the cursor on the owning watcher container.
func (c *Control) SetParentCursor(cursor string) {
	if c.parent != nil {
		c.parent.SetCursor(cursor)
	}
}

// Variable is the model behind a variable watcher.
type Variable struct {
	x, y          float64
	width, height float64
	slideX        float64
	slideCalls    int
	resizing      bool
	adjusting     bool
	viewUpdates   int

	view *Object

	slideBar     *Control
	valueSetter  *Control
	resizeHandle *Control
	scrollButton *Control
}

func (v *Variable) X() float64      { return v.x }
func (v *Variable) Y() float64      { return v.y }
func (v *Variable) Width() float64  { return v.width }
func (v *Variable) Height() float64 { return v.height }

// SetX and SetY move the model and its display container together.
func (v *Variable) SetX(x float64) {
	v.x = x
	if v.view != nil {
		v.view.SetPosition(x, v.view.Y())
	}
}

func (v *Variable) SetY(y float64) {
	v.y = y
	if v.view != nil {
		v.view.SetY(y)
	}
}

func (v *Variable) SetWidth(w float64)  { v.width = w }
func (v *Variable) SetHeight(h float64) { v.height = h }

// SetSlideCommandX records the slider command value.
func (v *Variable) SetSlideCommandX(x float64) {
	v.slideX = x
	v.slideCalls++
}

// SlideCommandX returns the last slider command value and how many were sent.
func (v *Variable) SlideCommandX() (float64, int) { return v.slideX, v.slideCalls }

func (v *Variable) Resizing() bool       { return v.resizing }
func (v *Variable) SetResizing(on bool)  { v.resizing = on }
func (v *Variable) Adjusting() bool      { return v.adjusting }
func (v *Variable) SetAdjusting(on bool) { v.adjusting = on }
func (v *Variable) UpdateView()          { v.viewUpdates++ }
func (v *Variable) ViewUpdates() int     { return v.viewUpdates }

// The sub-control getters return an untyped nil when the control is absent
// so callers can compare against nil.

func (v *Variable) SlideBar() host.Control     { return controlOrNil(v.slideBar) }
func (v *Variable) ValueSetter() host.Control  { return controlOrNil(v.valueSetter) }
func (v *Variable) ResizeHandle() host.Control { return controlOrNil(v.resizeHandle) }
func (v *Variable) ScrollButton() host.Control { return controlOrNil(v.scrollButton) }

func controlOrNil(c *Control) host.Control {
	if c == nil {
		return nil
	}
	return c
}

// SlideBarRef, ValueSetterRef, ResizeHandleRef and ScrollButtonRef return the
// concrete controls (nil when absent).
func (v *Variable) SlideBarRef() *Control     { return v.slideBar }
func (v *Variable) ValueSetterRef() *Control  { return v.valueSetter }
func (v *Variable) ResizeHandleRef() *Control { return v.resizeHandle }
func (v *Variable) ScrollButtonRef() *Control { return v.scrollButton }

// VariableView is the display container of a variable watcher.
type VariableView struct {
	*Object
	variable *Variable
}

// NewVariableView creates a watcher at (x, y) of the given size without
// sub-controls.
func NewVariableView(x, y, width, height float64) *VariableView {
	obj := NewObject(x, y)
	return &VariableView{
		Object:   obj,
		variable: &Variable{x: x, y: y, width: width, height: height, view: obj},
	}
}

func (vv *VariableView) Variable() host.Variable { return vv.variable }
func (vv *VariableView) VariableRef() *Variable  { return vv.variable }

// WithSlideBar adds a slide bar.
func (vv *VariableView) WithSlideBar() *VariableView {
	vv.variable.slideBar = NewControl(vv.Object, 0, 0)
	return vv
}

// WithValueSetter adds a value box at local x.
func (vv *VariableView) WithValueSetter(x float64) *VariableView {
	vv.variable.valueSetter = NewControl(vv.Object, x, 0)
	return vv
}

// WithResizeHandle adds a resize handle.
func (vv *VariableView) WithResizeHandle() *VariableView {
	vv.variable.resizeHandle = NewControl(vv.Object, vv.variable.width, vv.variable.height)
	return vv
}

// WithScrollButton adds a scroll thumb at local y.
func (vv *VariableView) WithScrollButton(y float64) *VariableView {
	vv.variable.scrollButton = NewControl(vv.Object, vv.variable.width-10, y)
	return vv
}

// WithAllControls adds every sub-control.
func (vv *VariableView) WithAllControls() *VariableView {
	return vv.WithSlideBar().WithValueSetter(0).WithResizeHandle().WithScrollButton(25)
}
