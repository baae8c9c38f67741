package program

import (
	"context"
	"sync"
	"sync/atomic"
)

// Routine that can be executed as part of a program. Routines include
// web servers, listeners of checksum servers and goroutines that
// periodically reload certificates.
//
// Each routine is capable of launching additional routines that either
// run as siblings, or as dependencies of the current routine and its
// siblings. Siblings are all terminated at the same time, while
// dependencies are only terminated after all of the siblings of the
// current routine have completed.
type Routine func(ctx context.Context, siblingsGroup, dependenciesGroup Group) error

// Group of routines. This interface can be used to launch additional
// routines.
type Group interface {
	Go(routine Routine)
}

type errorLogger interface {
	Log(err error)
}

// siblingsGroup is a group of routines that are all siblings with
// respect to each other.
type siblingsGroup struct {
	running             *sync.WaitGroup
	errorLogger         errorLogger
	siblingsActive      atomic.Int32
	siblingsContext     context.Context
	dependenciesContext context.Context
	dependenciesCancel  context.CancelFunc
}

// newSiblingsGroup constructs a siblingsGroup that contains exactly
// one routine. The caller must call runRoutine() on it after creation.
func newSiblingsGroup(siblingsContext context.Context, running *sync.WaitGroup, errorLogger errorLogger) *siblingsGroup {
	dependenciesContext, dependenciesCancel := context.WithCancel(context.WithoutCancel(siblingsContext))
	sg := &siblingsGroup{
		running:             running,
		errorLogger:         errorLogger,
		siblingsContext:     siblingsContext,
		dependenciesContext: dependenciesContext,
		dependenciesCancel:  dependenciesCancel,
	}
	sg.siblingsActive.Store(1)
	running.Add(1)
	return sg
}

func (sg *siblingsGroup) runRoutine(routine Routine) {
	if err := routine(sg.siblingsContext, sg, dependenciesGroup{siblingsGroup: sg}); err != nil {
		sg.errorLogger.Log(err)
	}
	if sg.siblingsActive.Add(-1) == 0 {
		// This is the last sibling that terminated. Dependencies
		// can now be terminated safely.
		sg.dependenciesCancel()
		sg.running.Done()
	}
}

func (sg *siblingsGroup) Go(routine Routine) {
	if sg.siblingsActive.Add(1) < 2 {
		panic("Attempted to create a goroutine in a group that is already completed")
	}
	go sg.runRoutine(routine)
}

type dependenciesGroup struct {
	siblingsGroup *siblingsGroup
}

func (dg dependenciesGroup) Go(routine Routine) {
	sg := dg.siblingsGroup
	if sg.siblingsActive.Load() == 0 {
		panic("Attempted to create a goroutine in a group that is already completed")
	}
	childSG := newSiblingsGroup(sg.dependenciesContext, sg.running, sg.errorLogger)
	go childSG.runRoutine(routine)
}

// run launches a routine and waits for it, its siblings and its
// dependencies to complete.
func run(ctx context.Context, errorLogger errorLogger, routine Routine) {
	var running sync.WaitGroup
	sg := newSiblingsGroup(ctx, &running, errorLogger)
	go sg.runRoutine(routine)
	running.Wait()
}
