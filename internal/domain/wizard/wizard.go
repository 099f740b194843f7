// Package wizard models the multi-step forms as explicit state machines:
// enumerated states, a guard per state, and a fixed transition order.
package wizard

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/helpboard/internal/domain"
	"github.com/kailas-cloud/helpboard/internal/domain/appstate"
	"github.com/kailas-cloud/helpboard/internal/domain/listing"
)

// Flow names a multi-step form.
type Flow string

// Flows.
const (
	PostFlow       Flow = "post"
	OnboardingFlow Flow = "onboarding"
)

// State is a step of a flow.
type State string

// Terminal states.
const (
	// Done follows the last step.
	Done State = "done"
	// Exit precedes the first step (cancel).
	Exit State = "exit"
)

// Post flow states.
const (
	PostTypeCategory State = "type_category"
	PostDetails      State = "details"
	PostContact      State = "contact"
)

// Onboarding flow states.
const (
	OnboardLanguage    State = "language"
	OnboardRole        State = "role"
	OnboardAccountType State = "account_type"
	OnboardIdentity    State = "identity"
	OnboardExtra       State = "extra"
)

// Form holds the field values collected so far.
type Form map[string]string

type guard func(Form) []string

type step struct {
	state State
	check guard
}

var flows = map[Flow][]step{
	PostFlow: {
		{PostTypeCategory, all(
			oneValue("type", string(listing.HelpRequest), string(listing.HelpOffer)),
			enum("category", func(v string) bool { return listing.Category(v).IsValid() }),
		)},
		{PostDetails, all(required("title"), required("description"))},
		{PostContact, all(oneValue("contact_method", "message", "phone", "both"))},
	},
	OnboardingFlow: {
		{OnboardLanguage, all(enum("language", func(v string) bool { return appstate.Language(v).IsValid() }))},
		{OnboardRole, all(enum("role", func(v string) bool { return appstate.Role(v).IsValid() }))},
		{OnboardAccountType, all(enum("account_type", func(v string) bool {
			return listing.AccountType(v).IsValid()
		}))},
		{OnboardIdentity, all(oneOf("name", "business_name"), required("region"), required("phone_number"))},
		{OnboardExtra, all()},
	},
}

// ParseFlow resolves a flow name.
func ParseFlow(s string) (Flow, error) {
	f := Flow(s)
	if _, ok := flows[f]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownFlow, s)
	}
	return f, nil
}

// Start returns the first state of a flow.
func Start(f Flow) (State, error) {
	steps, ok := flows[f]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownFlow, f)
	}
	return steps[0].state, nil
}

// Next checks the guard of state against form and returns the following state,
// or Done after the last step. A failing guard returns ErrStepIncomplete naming
// the missing fields; the state does not advance.
func Next(f Flow, s State, form Form) (State, error) {
	steps, i, err := locate(f, s)
	if err != nil {
		return "", err
	}
	if missing := steps[i].check(form); len(missing) > 0 {
		return s, fmt.Errorf("%w: %s", domain.ErrStepIncomplete, strings.Join(missing, ", "))
	}
	if i == len(steps)-1 {
		return Done, nil
	}
	return steps[i+1].state, nil
}

// Back returns the previous state, or Exit from the first step.
func Back(f Flow, s State) (State, error) {
	steps, i, err := locate(f, s)
	if err != nil {
		return "", err
	}
	if i == 0 {
		return Exit, nil
	}
	return steps[i-1].state, nil
}

// Progress returns the 1-based position of s and the number of steps.
func Progress(f Flow, s State) (int, int, error) {
	steps, i, err := locate(f, s)
	if err != nil {
		return 0, 0, err
	}
	return i + 1, len(steps), nil
}

func locate(f Flow, s State) ([]step, int, error) {
	steps, ok := flows[f]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", domain.ErrUnknownFlow, f)
	}
	for i := range steps {
		if steps[i].state == s {
			return steps, i, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: state %q in flow %q", domain.ErrUnknownFlow, s, f)
}

func all(gs ...guard) guard {
	return func(form Form) []string {
		var missing []string
		for _, g := range gs {
			missing = append(missing, g(form)...)
		}
		return missing
	}
}

func required(field string) guard {
	return func(form Form) []string {
		if strings.TrimSpace(form[field]) == "" {
			return []string{field}
		}
		return nil
	}
}

func enum(field string, valid func(string) bool) guard {
	return func(form Form) []string {
		if !valid(form[field]) {
			return []string{field}
		}
		return nil
	}
}

// oneValue passes when the field holds one of the allowed values.
func oneValue(field string, allowed ...string) guard {
	return enum(field, func(v string) bool { return slices.Contains(allowed, v) })
}

// oneOf passes when at least one of the fields is filled.
func oneOf(fields ...string) guard {
	return func(form Form) []string {
		for _, f := range fields {
			if strings.TrimSpace(form[f]) != "" {
				return nil
			}
		}
		return []string{strings.Join(fields, "|")}
	}
}
