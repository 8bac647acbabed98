package src

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Protocol-Lattice/agri-advisor/src/advisor"
)

// HeadlessMarker stands in for the uploaded file outside the TUI. The loader
// reads its fixed path either way.
const HeadlessMarker = "headless"

// HeadlessResult is one answered prompt outside the TUI.
type HeadlessResult struct {
	SessionID string
	Language  string
	Reply     advisor.Reply
}

// RunHeadless answers a single prompt in a fresh session: select language,
// upload, ask. A dataset that cannot be loaded yields the translated invalid
// format reply together with the load error.
func RunHeadless(ctx context.Context, deps *Deps, language, userPrompt string) (*HeadlessResult, error) {
	if deps == nil || deps.Translator == nil || deps.Loader == nil {
		return nil, errors.New("advisor dependencies are not configured")
	}
	if userPrompt == "" {
		return nil, advisor.ErrEmptyPrompt
	}

	session := advisor.NewSession(deps.Translator, deps.Loader, deps.Log)
	if language != "" {
		if err := session.SelectLanguage(language); err != nil {
			return nil, err
		}
	}
	res := &HeadlessResult{SessionID: session.ID, Language: session.Language.Name}

	reply, err := session.Upload(ctx, HeadlessMarker)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	if session.Stage == advisor.StageFailed {
		res.Reply = reply
		return res, session.Failure
	}

	reply, err = session.Ask(ctx, userPrompt)
	if err != nil {
		if deps.Log != nil {
			deps.Log.Error("headless prompt failed", zap.String("session", session.ID), zap.Error(err))
		}
		return nil, err
	}
	res.Reply = reply
	return res, nil
}
