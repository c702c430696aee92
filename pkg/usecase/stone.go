package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
	"github.com/wanderstone-dev/wanderstone/pkg/i18n"
	"github.com/wanderstone-dev/wanderstone/pkg/utils/logging"
)

// StoneUseCase serves the registry commands: listing, detail, text
// search, and two-phase deletion. Pending deletions live in the same
// store as intake sessions so the sweeper covers both.
type StoneUseCase struct {
	uc       *UseCases
	sessions *sessionStore
}

func NewStoneUseCase(uc *UseCases) *StoneUseCase {
	return &StoneUseCase{
		uc:       uc,
		sessions: uc.Intake.sessions,
	}
}

// List returns one page of the user's stones with paging buttons
func (uc *StoneUseCase) List(ctx context.Context, user types.UserID, page int) ([]Reply, error) {
	lang := uc.uc.Pref.Language(ctx, user)

	result, err := uc.uc.repo.Stone().ListByRegistrant(ctx, user, page)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list stones", goerr.V("user", user))
	}
	if result.Total == 0 {
		return []Reply{textReply(i18n.Text(lang, i18n.KeyNoStones))}, nil
	}

	text := i18n.Text(lang, i18n.KeyMyStones) + "\n\n"
	for _, entry := range result.Stones {
		text += fmt.Sprintf("🪨 #%d %s (%d)\n", entry.Stone.ID, entry.Stone.Name, entry.SightingCount)
	}
	text += "\n" + i18n.Textf(lang, i18n.KeyPageInfo, result.Page+1, result.TotalPages, result.Total)

	reply := Reply{Text: text}
	if result.Page > 0 {
		reply.Buttons = append(reply.Buttons, Button{
			Label:  i18n.Text(lang, i18n.KeyBtnPrevPage),
			Signal: types.SignalPagePrev,
			Value:  strconv.Itoa(result.Page - 1),
		})
	}
	if result.Page < result.TotalPages-1 {
		reply.Buttons = append(reply.Buttons, Button{
			Label:  i18n.Text(lang, i18n.KeyBtnNextPage),
			Signal: types.SignalPageNext,
			Value:  strconv.Itoa(result.Page + 1),
		})
	}

	return []Reply{reply}, nil
}

// Info returns the detail card for one stone, with its journey map when
// any sighting carries coordinates
func (uc *StoneUseCase) Info(ctx context.Context, user types.UserID, stoneID types.StoneID) ([]Reply, error) {
	lang := uc.uc.Pref.Language(ctx, user)

	stone, err := uc.uc.repo.Stone().Get(ctx, stoneID)
	if err != nil {
		if errors.Is(err, types.ErrStoneNotFound) {
			return []Reply{textReply(i18n.Textf(lang, i18n.KeyInfoNotFound, stoneID))}, nil
		}
		return nil, goerr.Wrap(err, "failed to load stone", goerr.V("stoneID", stoneID))
	}

	return uc.stoneCard(ctx, stone, lang), nil
}

// Find resolves a text query against the registry through the shared
// embedding space
func (uc *StoneUseCase) Find(ctx context.Context, user types.UserID, query string) ([]Reply, error) {
	lang := uc.uc.Pref.Language(ctx, user)

	embedding, err := uc.uc.extractor.EmbedText(ctx, query)
	if err != nil {
		if errors.Is(err, types.ErrInvalidInput) {
			return []Reply{textReply(i18n.Text(lang, i18n.KeyFindUsage))}, nil
		}
		logging.From(ctx).Error("text embedding failed", "query", query, "error", err)
		return []Reply{textReply(i18n.Text(lang, i18n.KeyErrorGeneric))}, nil
	}

	match, err := uc.uc.repo.Stone().FindNearest(ctx, embedding)
	if err != nil {
		return nil, goerr.Wrap(err, "nearest neighbor search failed")
	}
	if match == nil {
		return []Reply{textReply(i18n.Text(lang, i18n.KeyFindNone))}, nil
	}

	stone, err := uc.uc.repo.Stone().Get(ctx, match.StoneID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load matched stone", goerr.V("stoneID", match.StoneID))
	}

	replies := []Reply{textReply(i18n.Textf(lang, i18n.KeyFindResult, match.Similarity*100))}
	return append(replies, uc.stoneCard(ctx, stone, lang)...), nil
}

// RequestDelete starts the deletion handshake. The ownership check here
// is advisory; the repository enforces it again on confirm.
func (uc *StoneUseCase) RequestDelete(ctx context.Context, user types.UserID, stoneID types.StoneID) ([]Reply, error) {
	lang := uc.uc.Pref.Language(ctx, user)

	stone, err := uc.uc.repo.Stone().Get(ctx, stoneID)
	if err != nil {
		if errors.Is(err, types.ErrStoneNotFound) {
			return []Reply{textReply(i18n.Textf(lang, i18n.KeyDeleteNotFound, stoneID))}, nil
		}
		return nil, goerr.Wrap(err, "failed to load stone", goerr.V("stoneID", stoneID))
	}
	if stone.Registrant != user {
		return []Reply{textReply(i18n.Textf(lang, i18n.KeyDeleteNotFound, stoneID))}, nil
	}

	uc.sessions.setPendingDelete(user, stoneID)

	return []Reply{{
		Text: i18n.Textf(lang, i18n.KeyDeleteConfirm, stone.Name, stone.ID),
		Buttons: []Button{
			{Label: i18n.Text(lang, i18n.KeyBtnConfirmDelete), Signal: types.SignalConfirmDelete},
			{Label: i18n.Text(lang, i18n.KeyBtnCancelDelete), Signal: types.SignalCancelDelete},
		},
	}}, nil
}

// ConfirmDelete executes the pending deletion. Taking the pending entry
// makes a doubled confirm press a no-op.
func (uc *StoneUseCase) ConfirmDelete(ctx context.Context, user types.UserID) ([]Reply, error) {
	lang := uc.uc.Pref.Language(ctx, user)

	stoneID, ok := uc.sessions.takePendingDelete(user)
	if !ok {
		return nil, nil
	}

	name, err := uc.uc.repo.Stone().Delete(ctx, stoneID, user)
	if err != nil {
		if errors.Is(err, types.ErrStoneNotFound) || errors.Is(err, types.ErrNotOwner) {
			return []Reply{textReply(i18n.Textf(lang, i18n.KeyDeleteNotFound, stoneID))}, nil
		}
		return nil, goerr.Wrap(err, "failed to delete stone", goerr.V("stoneID", stoneID))
	}
	logging.From(ctx).Info("deleted stone", "stoneID", stoneID, "user", user)

	return []Reply{textReply(i18n.Textf(lang, i18n.KeyDeleteSuccess, name))}, nil
}

// CancelDelete abandons the pending deletion, if any
func (uc *StoneUseCase) CancelDelete(ctx context.Context, user types.UserID) ([]Reply, error) {
	lang := uc.uc.Pref.Language(ctx, user)

	if _, ok := uc.sessions.takePendingDelete(user); !ok {
		return nil, nil
	}
	return []Reply{textReply(i18n.Text(lang, i18n.KeyDeleteCancelled))}, nil
}

// stoneCard builds the detail reply: text block plus the journey map
// when the stone has located sightings
func (uc *StoneUseCase) stoneCard(ctx context.Context, stone *model.Stone, lang types.Language) []Reply {
	text := i18n.Textf(lang, i18n.KeyStoneID, stone.ID) + "\n" +
		i18n.Textf(lang, i18n.KeyStoneName, stone.Name) + "\n"
	if stone.Description != "" {
		text += i18n.Textf(lang, i18n.KeyStoneDescription, stone.Description) + "\n"
	}
	text += i18n.Textf(lang, i18n.KeyStoneSeen, len(stone.Sightings))

	replies := []Reply{textReply(text)}

	points := model.MapPoints(stone.Sightings)
	if len(points) == 0 || uc.uc.renderer == nil {
		return replies
	}
	img, err := uc.uc.renderer.Render(ctx, points)
	if err != nil {
		logging.From(ctx).Error("journey map render failed", "stoneID", stone.ID, "error", err)
		return replies
	}
	if img == nil {
		return replies
	}

	reply := Reply{
		Image:     img,
		ImageName: fmt.Sprintf("journey-%d.png", stone.ID),
		ImageText: i18n.Text(lang, i18n.KeyMapCaption),
	}
	if uc.uc.tokens != nil && uc.uc.mapBaseURL != "" {
		if token, err := uc.uc.tokens.Issue(stone.ID); err == nil {
			reply.LinkURL = fmt.Sprintf("%s/map?stone=%d&token=%s", uc.uc.mapBaseURL, stone.ID, token)
			reply.LinkLabel = i18n.Text(lang, i18n.KeyInteractiveMap)
		} else {
			logging.From(ctx).Error("failed to mint map token", "stoneID", stone.ID, "error", err)
		}
	}

	return append(replies, reply)
}
