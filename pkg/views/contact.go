package views

import (
	"context"
	"strings"

	"github.com/VishalGhuge111/hirely/pkg/apiclient"
	"github.com/VishalGhuge111/hirely/pkg/nav"
	"github.com/VishalGhuge111/hirely/pkg/validate"
)

// ContactState is the contact form and its feedback line.
type ContactState struct {
	FormState
	Form apiclient.ContactMessage
}

// ContactView is the public contact form.
type ContactView struct {
	base
	state ContactState
}

func NewContact(d Deps) *ContactView {
	return &ContactView{base: newBase(d, nav.Contact)}
}

func (v *ContactView) Mount(ctx context.Context) error {
	_, err := v.enter(ctx)
	return err
}

func (v *ContactView) State() ContactState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Submit sends the message. The form is cleared only when it was delivered.
func (v *ContactView) Submit(in apiclient.ContactMessage) error {
	ctx, err := v.active()
	if err != nil {
		return err
	}
	in.Email = strings.TrimSpace(in.Email)

	v.mu.Lock()
	v.state = ContactState{FormState: FormState{Submitting: true}, Form: in}
	v.mu.Unlock()

	if err := validate.Struct(in); err != nil {
		v.setNotice(Notice{Error: validationMessage(err)})
		return err
	}

	err = v.API.SendContact(ctx, in)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		v.setNotice(Notice{Error: "Failed to send message. Please try again."})
		return err
	}

	v.mu.Lock()
	v.state = ContactState{FormState: FormState{Notice: Notice{Success: "Message sent successfully!"}}}
	v.mu.Unlock()
	return nil
}

func (v *ContactView) setNotice(n Notice) {
	v.mu.Lock()
	v.state.FormState = FormState{Notice: n}
	v.mu.Unlock()
}
