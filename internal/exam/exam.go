// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package exam runs the randomized quiz drill behind the play command.
//
// A session loads every quiz into a pool and asks them in random order,
// each at most once. A correct answer scores a point and moves on; the first
// wrong answer ends the session. An empty pool ends it with the score so far.
package exam

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/quizrun/internal/output"
	"github.com/jeranaias/quizrun/internal/quiz"
	"github.com/jeranaias/quizrun/internal/util"
)

// =============================================================================
// STATES
// =============================================================================

// State is a step of an exam session.
type State int

const (
	StateLoading State = iota
	StateAsking
	StateCorrect
	StateIncorrect
	StateExhausted
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAsking:
		return "asking"
	case StateCorrect:
		return "correct"
	case StateIncorrect:
		return "incorrect"
	case StateExhausted:
		return "exhausted"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// =============================================================================
// SESSION
// =============================================================================

// Asker asks the user one question and returns the trimmed reply.
type Asker interface {
	Ask(ctx context.Context, text string) (string, error)
}

// Session is the state of one exam.
type Session struct {
	ID    string
	State State

	// Pool holds the quizzes not yet asked.
	Pool  []quiz.Quiz
	Score int
	Asked int
}

// Result summarizes a finished session.
type Result struct {
	SessionID string
	Score     int
	Asked     int
	// Outcome is StateExhausted or StateIncorrect.
	Outcome State
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller runs exam sessions against a repository.
type Controller struct {
	repo  quiz.Repository
	asker Asker
	out   output.Sink
	rng   *rand.Rand
}

// Option configures a Controller.
type Option func(*Controller)

// WithSeed makes question order reproducible.
func WithSeed(seed uint64) Option {
	return func(c *Controller) {
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// NewController creates a Controller. Without options, question order is
// seeded from the clock.
func NewController(repo quiz.Repository, asker Asker, out output.Sink, opts ...Option) *Controller {
	c := &Controller{repo: repo, asker: asker, out: out}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		seed := uint64(time.Now().UnixNano())
		c.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return c
}

// Run plays one session to completion.
//
// Errors from the repository or the asker end the session early and are
// returned with the partial result; nothing has been reported for them.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	s := &Session{ID: uuid.NewString(), State: StateLoading}
	log.Printf("EXAM_STARTED | session=%s", s.ID)

	for {
		switch s.State {
		case StateLoading:
			quizzes, err := c.repo.FindAll(ctx)
			if err != nil {
				return c.abort(s, err)
			}
			s.Pool = quizzes
			s.State = StateAsking

		case StateAsking:
			if len(s.Pool) == 0 {
				s.State = StateExhausted
				continue
			}
			q := c.draw(s)
			response, err := c.asker.Ask(ctx, q.Question+": ")
			if err != nil {
				return c.abort(s, err)
			}
			s.Asked++
			if quiz.MatchAnswer(response, q.Answer) {
				s.State = StateCorrect
			} else {
				log.Printf("EXAM_MISS | session=%s quiz=%d response=%q", s.ID, q.ID, util.TruncateRunes(response, 40))
				s.State = StateIncorrect
			}

		case StateCorrect:
			s.Score++
			c.out.Line(fmt.Sprintf("CORRECT - %d correct so far.", s.Score))
			s.State = StateAsking

		case StateIncorrect:
			c.out.Line("INCORRECT.")
			return c.finish(s, StateIncorrect), nil

		case StateExhausted:
			c.out.Line("Nothing left to ask.")
			return c.finish(s, StateExhausted), nil

		default:
			return c.finish(s, StateFinished), nil
		}
	}
}

// draw removes one quiz from the pool uniformly at random.
func (c *Controller) draw(s *Session) quiz.Quiz {
	i := c.rng.IntN(len(s.Pool))
	q := s.Pool[i]
	last := len(s.Pool) - 1
	s.Pool[i] = s.Pool[last]
	s.Pool = s.Pool[:last]
	return q
}

func (c *Controller) finish(s *Session, outcome State) Result {
	s.State = StateFinished
	c.out.Line("End of exam. Score:")
	c.out.Emphasized(strconv.Itoa(s.Score), output.StyleScore)

	log.Printf("EXAM_FINISHED | session=%s score=%d asked=%d outcome=%s", s.ID, s.Score, s.Asked, outcome)
	return Result{SessionID: s.ID, Score: s.Score, Asked: s.Asked, Outcome: outcome}
}

func (c *Controller) abort(s *Session, err error) (Result, error) {
	log.Printf("EXAM_ABORTED | session=%s state=%s error=%v", s.ID, s.State, err)
	return Result{SessionID: s.ID, Score: s.Score, Asked: s.Asked, Outcome: s.State}, err
}
