// Package advisor holds the crop advisor conversation: keyword routing, the
// recommendation builder and the per-run session state machine.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/agri-advisor/src/dataset"
	"github.com/Protocol-Lattice/agri-advisor/src/lang"
	"github.com/Protocol-Lattice/agri-advisor/src/translate"
)

// Stage is the position of a session in the conversation loop.
type Stage int

const (
	StageAwaitingLanguage Stage = iota
	StageAwaitingFile
	StageAwaitingPrompt
	StageResponding
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageAwaitingLanguage:
		return "awaiting-language"
	case StageAwaitingFile:
		return "awaiting-file"
	case StageAwaitingPrompt:
		return "awaiting-prompt"
	case StageResponding:
		return "responding"
	case StageFailed:
		return "failed"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

var (
	// ErrEmptyPrompt is returned by Ask for empty input.
	ErrEmptyPrompt = errors.New("empty prompt")
	// ErrUnknownLanguage is returned for a language outside the registry.
	ErrUnknownLanguage = errors.New("unknown language")
)

// DatasetLoader is satisfied by *dataset.Loader.
type DatasetLoader interface {
	Load(filePresent bool) (*dataset.Dataset, error)
}

// Session is the explicit state of one conversation run.
type Session struct {
	ID       string
	Language lang.Language
	Dataset  *dataset.Dataset
	Stage    Stage
	// Failure holds the last dataset load error while Stage is StageFailed.
	Failure error

	translator translate.Translator
	loader     DatasetLoader
	log        *zap.Logger
}

// NewSession starts a run. The language has a default, so the session moves
// straight to StageAwaitingFile.
func NewSession(tr translate.Translator, loader DatasetLoader, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		ID:         uuid.NewString(),
		Language:   lang.Default(),
		Stage:      StageAwaitingLanguage,
		translator: tr,
		loader:     loader,
	}
	s.log = log.With(zap.String("session", s.ID))
	s.advance(StageAwaitingFile)
	return s
}

func (s *Session) advance(next Stage) {
	if s.Stage != next {
		s.log.Debug("stage", zap.Stringer("from", s.Stage), zap.Stringer("to", next))
	}
	s.Stage = next
}

func (s *Session) ctx(ctx context.Context) context.Context {
	return translate.WithSession(ctx, s.ID)
}

// SelectLanguage switches the output language. A loaded dataset is kept.
func (s *Session) SelectLanguage(nameOrCode string) error {
	l, err := lang.Resolve(nameOrCode)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, nameOrCode)
	}
	s.Language = l
	s.log.Info("language selected", zap.String("language", l.Name), zap.String("code", l.Code))
	return nil
}

// Translate passes one string through the session's translator and language.
func (s *Session) Translate(ctx context.Context, text string) (string, error) {
	return s.translator.Translate(s.ctx(ctx), text, s.Language.Code)
}

// Greeting is the message shown before any prompt: the upload request while no
// dataset is loaded, the invalid format notice after a failed load, and the
// ask hint once data is available.
func (s *Session) Greeting(ctx context.Context) (Reply, error) {
	switch s.Stage {
	case StageFailed:
		return message(s.ctx(ctx), s.translator, MsgInvalidData, s.Language.Code)
	case StageAwaitingPrompt:
		return message(s.ctx(ctx), s.translator, MsgAskHint, s.Language.Code)
	default:
		return message(s.ctx(ctx), s.translator, MsgUploadPrompt, s.Language.Code)
	}
}

// Upload records a file marker and loads the fixed dataset. marker is only
// logged; its content is never read. An empty marker counts as no file.
// A load failure is reported in the reply and moves the session to
// StageFailed; the returned error is only ever a translation failure.
func (s *Session) Upload(ctx context.Context, marker string) (Reply, error) {
	present := strings.TrimSpace(marker) != ""
	ds, err := s.loader.Load(present)
	switch {
	case err != nil:
		s.Dataset = nil
		s.Failure = err
		s.advance(StageFailed)
		s.log.Warn("dataset unavailable", zap.String("marker", marker), zap.Error(err))
		return message(s.ctx(ctx), s.translator, MsgInvalidData, s.Language.Code)
	case ds == nil:
		s.Dataset = nil
		s.Failure = nil
		s.advance(StageAwaitingFile)
		return message(s.ctx(ctx), s.translator, MsgUploadPrompt, s.Language.Code)
	}
	s.Dataset = ds
	s.Failure = nil
	s.advance(StageAwaitingPrompt)
	s.log.Info("dataset ready", zap.String("marker", marker), zap.String("source", ds.Source), zap.Int("rows", ds.Len()))
	return message(s.ctx(ctx), s.translator, MsgAskHint, s.Language.Code)
}

// Ask answers one prompt. Without a dataset it returns the upload request and
// touches no table data.
func (s *Session) Ask(ctx context.Context, prompt string) (Reply, error) {
	if prompt == "" {
		return Reply{}, ErrEmptyPrompt
	}
	if s.Stage != StageAwaitingPrompt || s.Dataset == nil {
		return s.Greeting(ctx)
	}

	s.advance(StageResponding)
	defer s.advance(StageAwaitingPrompt)

	ctx = s.ctx(ctx)
	code := s.Language.Code
	topic := Classify(prompt)
	log := s.log.With(zap.Stringer("topic", topic), zap.String("target", code))

	var (
		reply Reply
		err   error
	)
	switch topic {
	case TopicFertilizer:
		crop := ExtractCropType(prompt)
		log = log.With(zap.String("crop", crop))
		reply, err = Recommend(ctx, s.translator, s.Dataset, crop, code)
	case TopicHumidity:
		reply, err = Overview(ctx, s.translator, s.Dataset, dataset.ColHumidity, code)
	case TopicTemperature:
		reply, err = Overview(ctx, s.translator, s.Dataset, dataset.ColTemperature, code)
	default:
		reply, err = message(ctx, s.translator, MsgFallback, code)
	}
	if err != nil {
		log.Error("response aborted", zap.Error(err))
		return Reply{}, err
	}
	rows := 0
	if reply.Table != nil {
		rows = reply.Table.Len()
	}
	log.Info("answered", zap.Int("rows", rows))
	return reply, nil
}
