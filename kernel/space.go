// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package kernel

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/castor-software/gecode/arena"
	"github.com/castor-software/gecode/bdd"
)

// VarImp is the implementation of a variable. Variables are numbered by the
// order in which they are added to a space, and Copy must return a variable
// with the same number.
type VarImp interface {
	ID() int
	Assigned() bool
	Copy(home *Space) VarImp
}

// Propagator is an actor that prunes the domains of its variables. Copy is
// called when cloning a space; the variables of home already exist at that
// point and can be looked up with home.Var.
type Propagator interface {
	Propagate(home *Space) ExecStatus
	Copy(home *Space) Propagator
}

// Choice describes the alternatives of a branching.
type Choice interface {
	Alternatives() int
}

// Brancher computes the choices of a space.
type Brancher interface {
	// Status returns false when there is nothing left to branch on.
	Status(home *Space) bool
	Choice(home *Space) Choice
	Commit(home *Space, c Choice, alt int) ExecStatus
	Copy(home *Space) Brancher
}

// Space is a node of the search tree.
type Space struct {
	failed       bool
	dirty        bool // a domain changed during the current pass
	vars         []VarImp
	props        []Propagator // nil entries are subsumed propagators
	brancher     Brancher
	buf          *arena.Buffer
	mgr          *bdd.BDD
	logger       logrus.FieldLogger
	propagations uint64
}

// Option configures a Space.
type Option func(*Space)

// WithLogger sets the logger of the space and of its clones.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Space) {
		s.logger = l
	}
}

// WithBuffer sets the buffer used by the regions of the space. Clones get a
// new buffer with the same capacity.
func WithBuffer(buf *arena.Buffer) Option {
	return func(s *Space) {
		s.buf = buf
	}
}

// New returns an empty space. Set domains are represented with the Boolean
// functions of mgr.
func New(mgr *bdd.BDD, options ...Option) (*Space, error) {
	if mgr == nil {
		return nil, errors.New("kernel: nil BDD manager")
	}
	s := &Space{
		mgr:    mgr,
		logger: logrus.StandardLogger(),
	}
	for _, f := range options {
		f(s)
	}
	if s.buf == nil {
		s.buf = arena.NewBuffer(arena.WithLogger(s.logger))
	}
	return s, nil
}

// Manager returns the BDD manager shared by s and its clones.
func (s *Space) Manager() *bdd.BDD {
	return s.mgr
}

// Logger returns the logger of s.
func (s *Space) Logger() logrus.FieldLogger {
	return s.logger
}

// Buffer returns the bump buffer of s.
func (s *Space) Buffer() *arena.Buffer {
	return s.buf
}

// Region returns a new region on the buffer of s. It must be released before
// any region created earlier.
func (s *Space) Region() *arena.Region {
	return arena.NewRegion(s.buf)
}

// Failed reports whether s is failed.
func (s *Space) Failed() bool {
	return s.failed
}

// Fail marks s as failed. A failed space never recovers.
func (s *Space) Fail() {
	s.failed = true
}

// Notify is called by variables when their domain changes.
func (s *Space) Notify() {
	s.dirty = true
}

// AddVar registers a variable built by mk, which receives the number of the
// new variable.
func (s *Space) AddVar(mk func(id int) VarImp) VarImp {
	v := mk(len(s.vars))
	s.vars = append(s.vars, v)
	return v
}

// Var returns the variable with number id.
func (s *Space) Var(id int) VarImp {
	return s.vars[id]
}

// Vars returns the number of variables in s.
func (s *Space) Vars() int {
	return len(s.vars)
}

// Post adds a propagator to s. It is run during the next call to Status.
func (s *Space) Post(p Propagator) {
	if s.failed {
		return
	}
	s.props = append(s.props, p)
	s.dirty = true
}

// Propagators returns the number of propagators that are not subsumed.
func (s *Space) Propagators() int {
	n := 0
	for _, p := range s.props {
		if p != nil {
			n++
		}
	}
	return n
}

// Propagations returns the number of calls to Propagate made on s since it was
// created (or cloned).
func (s *Space) Propagations() uint64 {
	return s.propagations
}

// SetBrancher installs the brancher of s, replacing any previous one.
func (s *Space) SetBrancher(b Brancher) {
	s.brancher = b
}

// Status runs the propagators of s until no domain changes, then reports
// whether s is failed, solved, or has a choice to branch on.
func (s *Space) Status() SpaceStatus {
	for !s.failed && s.dirty {
		s.dirty = false
		for k, p := range s.props {
			if p == nil {
				continue
			}
			s.propagations++
			switch p.Propagate(s) {
			case ESFailed:
				s.failed = true
			case ESSubsumed:
				s.props[k] = nil
			case ESNoFix:
				s.dirty = true
			}
			if s.failed {
				break
			}
		}
	}
	if s.failed {
		return SSFailed
	}
	s.compact()
	if s.brancher == nil || !s.brancher.Status(s) {
		return SSSolved
	}
	return SSBranch
}

// compact removes subsumed propagators.
func (s *Space) compact() {
	k := 0
	for _, p := range s.props {
		if p != nil {
			s.props[k] = p
			k++
		}
	}
	clear(s.props[k:])
	s.props = s.props[:k]
}

// Choice returns the current choice of the brancher. It must only be called
// after Status returned SSBranch.
func (s *Space) Choice() Choice {
	return s.brancher.Choice(s)
}

// Commit applies alternative alt of c to s.
func (s *Space) Commit(c Choice, alt int) {
	if s.failed {
		return
	}
	if alt < 0 || alt >= c.Alternatives() {
		s.logger.WithField("alternative", alt).Error("commit to a non existing alternative")
		s.failed = true
		return
	}
	if s.brancher.Commit(s, c, alt) == ESFailed {
		s.failed = true
	}
}

// Clone returns a copy of s. The copy starts with a fresh buffer and no live
// region.
func (s *Space) Clone() *Space {
	c := &Space{
		failed: s.failed,
		dirty:  s.dirty,
		buf:    s.buf.Clone(),
		mgr:    s.mgr,
		logger: s.logger,
	}
	c.vars = make([]VarImp, 0, len(s.vars))
	for _, v := range s.vars {
		c.vars = append(c.vars, v.Copy(c))
	}
	c.props = make([]Propagator, 0, len(s.props))
	for _, p := range s.props {
		if p != nil {
			c.props = append(c.props, p.Copy(c))
		}
	}
	if s.brancher != nil {
		c.brancher = s.brancher.Copy(c)
	}
	return c
}
