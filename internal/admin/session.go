package admin

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Session is the interactive admin loop. It drives the Router between the
// list and form screens, rendering each to out and reading commands from
// in. One request is in flight at a time; the triggering prompt blocks
// until it settles.
type Session struct {
	api    API
	in     *bufio.Reader
	out    io.Writer
	picker ImagePicker

	router      *Router
	list        *ProductList
	categories  *CategoryList
	inputClosed bool
}

// NewSession wires up an interactive session on the given streams
func NewSession(api API, in io.Reader, out io.Writer, picker ImagePicker) *Session {
	s := &Session{
		api:    api,
		in:     bufio.NewReader(in),
		out:    out,
		picker: picker,
		router: NewRouter(),
	}
	s.list = NewProductList(api, s.router.SetNotice)
	s.categories = NewCategoryList(api)
	return s
}

// Run enters the UI loop until the user quits
func (s *Session) Run(ctx context.Context) error {
	RenderLoading(s.out)
	s.list.Load(ctx)
	s.categories.Load(ctx)

	for {
		switch s.router.Screen() {
		case ScreenList:
			if done := s.listScreen(ctx); done {
				return nil
			}
		case ScreenAdd:
			s.formScreen(ctx, NewForm(s.api, s.router.SetNotice))
		case ScreenEdit:
			form := NewEditForm(s.api, s.router.SetNotice, s.router.EditingID())
			RenderLoading(s.out)
			form.Load(ctx)
			s.formScreen(ctx, form)
		}
	}
}

// listScreen renders the list and handles one command. Returns true when
// the user quits.
func (s *Session) listScreen(ctx context.Context) bool {
	fmt.Fprintln(s.out)
	if n := s.router.Notice(); n != nil {
		RenderNotice(s.out, *n)
		s.router.DismissNotice()
	}

	if s.list.Loading() {
		RenderLoading(s.out)
	} else if len(s.list.Products()) == 0 {
		RenderEmptyState(s.out)
	} else {
		RenderProductTable(s.out, s.list.Products())
	}

	line := s.prompt("[a]dd  [e]dit <id>  [d]elete <id>  [r]efresh  [q]uit > ")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return s.inputClosed
	}

	switch fields[0] {
	case "a":
		s.router.GoAdd()
	case "e":
		if id, ok := argID(fields); ok {
			s.router.GoEdit(id)
		}
	case "d":
		if id, ok := argID(fields); ok {
			s.deleteProduct(ctx, id)
		}
	case "r":
		s.list.Refresh(ctx)
	case "q":
		return true
	}

	return s.inputClosed
}

// deleteProduct runs the confirmation gate and then the server-confirmed
// removal. While the delete request is in flight nothing can cancel it.
func (s *Session) deleteProduct(ctx context.Context, id int) {
	answer := s.prompt(fmt.Sprintf("Delete product %d permanently? This cannot be undone. [y/N] ", id))
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		return
	}

	if err := s.list.RemoveProduct(ctx, id); err != nil {
		s.router.SetNotice(Notice{Status: NoticeError, Message: "Failed to delete product."})
		return
	}
	s.router.SetNotice(Notice{Status: NoticeSuccess, Message: "Product deleted."})
}

// formScreen edits one field at a time until the user saves or cancels
func (s *Session) formScreen(ctx context.Context, form *Form) {
	for {
		fmt.Fprintln(s.out)
		if n := s.router.Notice(); n != nil {
			RenderNotice(s.out, *n)
			s.router.DismissNotice()
		}
		RenderForm(s.out, form)

		line := s.prompt("[t]itle [d]esc [p]rice [sp] sale price [o]n-sale [y]outube [i]mage [cat] [s]ave [c]ancel > ")
		switch strings.TrimSpace(line) {
		case "t":
			form.Title = s.prompt("Title: ")
		case "d":
			form.Description = s.prompt("Description: ")
		case "p":
			form.Price = s.prompt("Price: ")
		case "sp":
			form.SalePrice = s.prompt("Sale price: ")
		case "o":
			form.IsOnSale = !form.IsOnSale
		case "y":
			form.YoutubeVideo = s.prompt("YouTube URL: ")
		case "i":
			s.pickImage(ctx, form)
		case "cat":
			s.toggleCategories(ctx, form)
		case "s":
			message, err := form.Submit(ctx)
			if err != nil {
				// Validation and save failures were already dispatched as
				// notices; the form stays populated for retry.
				continue
			}
			s.router.Saved(message)
			s.list.Refresh(ctx)
			return
		case "c":
			s.router.Cancel()
			return
		}

		if s.inputClosed {
			s.router.Cancel()
			return
		}
	}
}

// pickImage delegates to the injected picker capability
func (s *Session) pickImage(ctx context.Context, form *Form) {
	clear := s.prompt("[p]ick new image, [r]emove current, anything else to keep > ")
	switch strings.TrimSpace(clear) {
	case "r":
		form.ClearImage()
	case "p":
		selection, err := s.picker(ctx)
		if err != nil {
			s.router.SetNotice(Notice{Status: NoticeError, Message: "Failed to open media library."})
			return
		}
		if selection != nil {
			form.SelectImage(selection.ID, selection.URL)
		}
	}
}

// toggleCategories shows the checklist and toggles ids until a blank line
func (s *Session) toggleCategories(ctx context.Context, form *Form) {
	s.categories.Load(ctx)

	for {
		RenderCategoryChecklist(s.out, s.categories.Categories(), form)
		line := strings.TrimSpace(s.prompt("Toggle category id (blank to finish): "))
		if line == "" {
			return
		}
		if id, err := strconv.Atoi(line); err == nil {
			form.ToggleCategory(id)
		}
	}
}

// prompt reads one line of input. A read error marks the input stream as
// closed, which terminates the session as if the user had quit; any
// partial final line is still returned for processing.
func (s *Session) prompt(label string) string {
	if s.inputClosed {
		return ""
	}
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil {
		s.inputClosed = true
	}
	return strings.TrimRight(line, "\n")
}

func argID(fields []string) (int, bool) {
	if len(fields) < 2 {
		return 0, false
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, false
	}
	return id, true
}
