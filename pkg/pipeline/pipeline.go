// Package pipeline sequences one optimize invocation:
// resolve input, compose the prompt, call the backend, clean the reply and route it.
package pipeline

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mmichie/inkspect/pkg/backend"
	"github.com/mmichie/inkspect/pkg/input"
	"github.com/mmichie/inkspect/pkg/output"
	"github.com/mmichie/inkspect/pkg/prompt"
	"github.com/mmichie/inkspect/pkg/reply"
)

// State is a step of the pipeline
type State int

const (
	ResolvingInput State = iota
	Composing
	AwaitingBackend
	PostProcessing
	Routing
	Done
	Failed
)

var stateNames = [...]string{
	ResolvingInput:  "resolving-input",
	Composing:       "composing",
	AwaitingBackend: "awaiting-backend",
	PostProcessing:  "post-processing",
	Routing:         "routing",
	Done:            "done",
	Failed:          "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Progress is shown while waiting on the backend
type Progress interface {
	Start(message string)
	Stop()
}

type noProgress struct{}

func (noProgress) Start(string) {}
func (noProgress) Stop()        {}

// Request holds the per-invocation selections
type Request struct {
	Source         input.Source
	Output         output.Options
	Style          prompt.Selection
	SuppressSystem bool
}

// Result describes how an invocation ended
type Result struct {
	// State is Done on success and Failed otherwise
	State State

	// Skipped is true when the input was empty and nothing was sent
	Skipped bool

	Destination output.Destination

	// Path is the absolute file written; empty for stdout
	Path string
}

// Pipeline wires the components of one invocation
type Pipeline struct {
	backend  backend.Backend
	resolver *input.Resolver
	composer *prompt.Composer
	cleaner  reply.Cleaner
	router   *output.Router
	progress Progress
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithProgress shows p while the backend call is in flight
func WithProgress(p Progress) Option {
	return func(pl *Pipeline) {
		if p != nil {
			pl.progress = p
		}
	}
}

// New creates a pipeline
func New(b backend.Backend, resolver *input.Resolver, composer *prompt.Composer, cleaner reply.Cleaner, router *output.Router, opts ...Option) *Pipeline {
	p := &Pipeline{
		backend:  b,
		resolver: resolver,
		composer: composer,
		cleaner:  cleaner,
		router:   router,
		progress: noProgress{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type machine struct {
	state State
}

func (m *machine) enter(next State) {
	log.WithFields(log.Fields{"from": m.state, "to": next}).Debug("Pipeline transition")
	m.state = next
}

func (m *machine) fail(err error) (Result, error) {
	m.enter(Failed)
	return Result{State: Failed}, err
}

// Run executes the invocation once. Destination and style are settled before
// any input is read so that bad selections never open an editor or reach a backend.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	m := &machine{state: ResolvingInput}

	dest, err := output.Select(req.Output, req.Source)
	if err != nil {
		return m.fail(err)
	}
	style, err := p.composer.ResolveStyle(req.Style)
	if err != nil {
		return m.fail(err)
	}

	in, err := p.resolver.Resolve(ctx, req.Source)
	if err != nil {
		return m.fail(err)
	}
	if in.Empty() {
		log.Debug("Input is empty")
		m.enter(Done)
		return Result{State: Done, Skipped: true}, nil
	}

	m.enter(Composing)
	composed := p.composer.Compose(style, in.Text, req.SuppressSystem)
	log.WithField("prompt", composed).Debug("Composed prompt")

	m.enter(AwaitingBackend)
	p.progress.Start("Optimizing prompt, please wait...")
	raw, err := p.backend.Request(ctx, composed)
	p.progress.Stop()
	if err != nil {
		return m.fail(err)
	}

	m.enter(PostProcessing)
	cleaned := p.cleaner.Clean(raw)

	m.enter(Routing)
	path, err := p.router.Write(dest, cleaned)
	if err != nil {
		return m.fail(err)
	}

	m.enter(Done)
	return Result{State: Done, Destination: dest, Path: path}, nil
}
