package game

import (
	"fmt"
	"sync/atomic"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/circular-rule/internal/rule"
	"github.com/iburimskiy/circular-rule/internal/slide"
)

// promptResult is the outcome of one dialog. Exactly one of text or mode is
// meaningful, depending on isMode.
type promptResult struct {
	field  slide.Field
	text   string
	isMode bool
	mode   rule.Mode
	err    error
}

// prompter runs zenity dialogs off the game loop. One dialog is open at a
// time; its result waits in results until the loop collects it.
type prompter struct {
	busy    atomic.Bool
	results chan promptResult

	entry func(text string, options ...zenity.Option) (string, error)
	list  func(text string, items []string, options ...zenity.Option) (string, error)
}

func newPrompter() *prompter {
	return &prompter{
		results: make(chan promptResult, 1),
		entry:   zenity.Entry,
		list:    zenity.List,
	}
}

func (p *prompter) open() bool {
	return p.busy.Load()
}

// askField asks for a new value of field. It reports false when another
// dialog is still open.
func (p *prompter) askField(field slide.Field, current string) bool {
	if !p.busy.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		text, err := p.entry(fmt.Sprintf("Enter the %s value:", field),
			zenity.Title("Edit "+field.String()),
			zenity.EntryText(current),
		)
		p.results <- promptResult{field: field, text: text, err: err}
	}()
	return true
}

func (p *prompter) askMode(current rule.Mode) bool {
	if !p.busy.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		choice, err := p.list("Choose the operation:",
			[]string{rule.Multiply.String(), rule.Divide.String()},
			zenity.Title("Mode"),
			zenity.DefaultItems(current.String()),
		)
		r := promptResult{isMode: true, err: err}
		if err == nil {
			var ok bool
			if r.mode, ok = rule.ParseMode(choice); !ok {
				r.err = fmt.Errorf("unknown mode %q", choice)
			}
		}
		p.results <- r
	}()
	return true
}

// poll returns the finished dialog's result, if there is one.
func (p *prompter) poll() (promptResult, bool) {
	select {
	case r := <-p.results:
		p.busy.Store(false)
		return r, true
	default:
		return promptResult{}, false
	}
}
