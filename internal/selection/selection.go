// Package selection decides which assets the compile command works on,
// asking the user when the argument is missing or invalid.
package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/statekit"

	"github.com/Norgate-AV/scssc/internal/prompt"
	"github.com/Norgate-AV/scssc/internal/utils"
)

// All is the pseudo-choice that selects every asset
const All = "all"

// machine state ids
const (
	stateResolving            = "resolving"
	stateNeedsSelection       = "needs_selection"
	stateAwaitingConfirmation = "awaiting_confirmation"
	stateConfirmed            = "confirmed"
	stateAborted              = "aborted"
)

// Events driving the selection flow
const (
	EventAsk      = "ASK"
	EventConfirm  = "CONFIRM"
	EventSelected = "SELECTED"
	EventAccept   = "ACCEPT"
	EventDecline  = "DECLINE"
	EventCancel   = "CANCEL"
)

const selectQuestion = "There are several assets configured. Which one do you want to compile?"

// ErrAborted is returned when the user declines or cancels
var ErrAborted = errors.New("aborted")

// InvalidSelectionError rejects an argument that cannot be used without a prompt
type InvalidSelectionError struct {
	Arg    string
	Names  []string
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	return e.Reason + "\nThe following assets are available:\n-> " + strings.Join(e.Names, "\n-> ")
}

// Request describes the compile command's input
type Request struct {
	// Arg is the asset argument, empty when omitted
	Arg string

	// Names are the configured asset names in declaration order
	Names []string

	Interactive bool
}

// Selection is the confirmed outcome
type Selection struct {
	// Choice is "all" or a single asset name
	Choice string

	// Assets are the names to compile, in declaration order
	Assets []string

	// Prompted is set when the user picked the choice from a list
	Prompted bool
}

// IsAll reports whether every asset was selected
func (s Selection) IsAll() bool {
	return s.Choice == All
}

// flow is the state machine context
type flow struct {
	choice   string
	prompted bool
}

func buildMachine(f *flow) (*statekit.Interpreter[flow], error) {
	machine, err := statekit.NewMachine[flow]("scssc-selection").
		WithInitial(stateResolving).
		WithContext(*f).
		WithAction("markPrompted", func(_ *flow, _ statekit.Event) {
			f.prompted = true
		}).
		State(stateResolving).
		On(EventAsk).Target(stateNeedsSelection).
		On(EventConfirm).Target(stateAwaitingConfirmation).
		On(EventAccept).Target(stateConfirmed).Done().
		State(stateNeedsSelection).
		OnEntry("markPrompted").
		On(EventSelected).Target(stateConfirmed).
		On(EventCancel).Target(stateAborted).Done().
		State(stateAwaitingConfirmation).
		On(EventAccept).Target(stateConfirmed).
		On(EventDecline).Target(stateAborted).Done().
		State(stateConfirmed).Done().
		State(stateAborted).Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build selection machine: %w", err)
	}

	return statekit.NewInterpreter(machine), nil
}

// Resolve runs the selection flow. p is only used in interactive mode.
func Resolve(req Request, p prompt.Prompter) (Selection, error) {
	f := &flow{}

	interp, err := buildMachine(f)
	if err != nil {
		return Selection{}, err
	}

	interp.Start()
	defer interp.Stop()

	current := func() string { return string(interp.State().Value) }
	send := func(event string) { interp.Send(statekit.Event{Type: statekit.EventType(event)}) }

	choices := append([]string{All}, req.Names...)

	if !req.Interactive {
		choice, err := resolveNonInteractive(req)
		if err != nil {
			return Selection{}, err
		}

		f.choice = choice
		send(EventAccept)
	} else {
		choice, ask := resolveInteractive(req.Arg, choices)
		f.choice = choice

		if ask {
			send(EventAsk)

			chosen, err := p.Choose(selectQuestion, choices, choice)
			if err != nil {
				if errors.Is(err, prompt.ErrCancelled) {
					send(EventCancel)
					return Selection{}, ErrAborted
				}
				return Selection{}, err
			}

			f.choice = chosen
			send(EventSelected)
		} else {
			send(EventConfirm)

			ok, err := p.Confirm(confirmQuestion(choice, len(req.Names)), true)
			if err != nil && !errors.Is(err, prompt.ErrCancelled) {
				return Selection{}, err
			}

			if !ok {
				send(EventDecline)
				return Selection{}, ErrAborted
			}

			send(EventAccept)
		}
	}

	if current() != stateConfirmed {
		return Selection{}, fmt.Errorf("selection ended in state %s", current())
	}

	sel := Selection{Choice: f.choice, Prompted: f.prompted}
	if sel.IsAll() {
		sel.Assets = append([]string(nil), req.Names...)
	} else {
		sel.Assets = []string{f.choice}
	}

	return sel, nil
}

// resolveInteractive maps the argument onto a choice. ask is set when the
// user has to pick from the list, with choice as the preselection.
func resolveInteractive(arg string, choices []string) (choice string, ask bool) {
	if arg == "" {
		return All, true
	}

	if utils.IsNumeric(arg) {
		i, ok := utils.ChoiceIndex(arg)
		if !ok || i < 0 || i >= len(choices) {
			return All, true
		}

		return choices[i], false
	}

	for _, c := range choices {
		if c == arg {
			return c, false
		}
	}

	return All, true
}

func resolveNonInteractive(req Request) (string, error) {
	arg := req.Arg

	if utils.IsNumeric(arg) {
		return "", &InvalidSelectionError{
			Arg:    arg,
			Names:  req.Names,
			Reason: "In non-interactive mode you need to use the asset name instead of its number in list.",
		}
	}

	if arg == "" || arg == All {
		return All, nil
	}

	for _, name := range req.Names {
		if name == arg {
			return name, nil
		}
	}

	return "", &InvalidSelectionError{
		Arg:    arg,
		Names:  req.Names,
		Reason: fmt.Sprintf("Asset %q is not configured.", arg),
	}
}

func confirmQuestion(choice string, count int) string {
	if choice == All {
		return fmt.Sprintf("Do you want to compile %d assets?", count)
	}

	return fmt.Sprintf("Do you want to compile %q?", choice)
}
