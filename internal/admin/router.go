package admin

// Screen identifies the active admin view
type Screen int

const (
	ScreenList Screen = iota
	ScreenAdd
	ScreenEdit
)

func (s Screen) String() string {
	switch s {
	case ScreenAdd:
		return "add"
	case ScreenEdit:
		return "edit"
	default:
		return "list"
	}
}

// Router is the small state machine owning the active screen and the one
// transient notice shown after actions. Transitions: list→add, list→edit,
// add/edit→list via cancel or save. The UI is long-lived; there is no
// terminal state.
type Router struct {
	screen    Screen
	editingID int
	notice    *Notice
}

// NewRouter starts on the list screen with no notice
func NewRouter() *Router {
	return &Router{screen: ScreenList}
}

// Screen returns the active screen
func (r *Router) Screen() Screen {
	return r.screen
}

// EditingID returns the product being edited, valid only on ScreenEdit
func (r *Router) EditingID() int {
	return r.editingID
}

// GoAdd switches to the add screen
func (r *Router) GoAdd() {
	r.screen = ScreenAdd
	r.editingID = 0
}

// GoEdit switches to the edit screen for the given product
func (r *Router) GoEdit(id int) {
	r.screen = ScreenEdit
	r.editingID = id
}

// Cancel returns to the list screen without a notice
func (r *Router) Cancel() {
	r.screen = ScreenList
	r.editingID = 0
}

// Saved returns to the list screen and sets the transient success notice
func (r *Router) Saved(message string) {
	r.screen = ScreenList
	r.editingID = 0
	r.notice = &Notice{Status: NoticeSuccess, Message: message}
}

// SetNotice replaces the current notice
func (r *Router) SetNotice(n Notice) {
	r.notice = &n
}

// Notice returns the current notice, or nil
func (r *Router) Notice() *Notice {
	return r.notice
}

// DismissNotice clears the current notice
func (r *Router) DismissNotice() {
	r.notice = nil
}
