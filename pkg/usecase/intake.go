package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
	"github.com/wanderstone-dev/wanderstone/pkg/i18n"
	"github.com/wanderstone-dev/wanderstone/pkg/service/exif"
	"github.com/wanderstone-dev/wanderstone/pkg/service/narrative"
	"github.com/wanderstone-dev/wanderstone/pkg/utils/logging"
)

// IntakeUseCase drives the multi-turn photo registration flow. Each
// user has at most one in-flight session; a new photo replaces it.
type IntakeUseCase struct {
	uc       *UseCases
	sessions *sessionStore
	synonyms *i18n.Synonyms
}

func NewIntakeUseCase(uc *UseCases) *IntakeUseCase {
	return &IntakeUseCase{
		uc:       uc,
		sessions: newSessionStore(),
		synonyms: i18n.DefaultSynonyms(),
	}
}

// SetSynonyms replaces the typed-text fallback sets, used when a
// deployment ships its own synonyms file
func (uc *IntakeUseCase) SetSynonyms(s *i18n.Synonyms) {
	uc.synonyms = s
}

// PruneExpired drops sessions idle for longer than idleFor
func (uc *IntakeUseCase) PruneExpired(ctx context.Context, idleFor time.Duration) int {
	return uc.sessions.pruneExpired(idleFor)
}

// HandlePhoto starts (or restarts) an intake session from a photo.
// Extraction failures never leave a session behind, so the user can
// retry by just sending another photo.
func (uc *IntakeUseCase) HandlePhoto(ctx context.Context, user types.UserID, channel string, image []byte) ([]Reply, error) {
	lang := uc.uc.Pref.Language(ctx, user)
	logger := logging.From(ctx)

	// Any in-flight session is superseded by the new photo
	uc.sessions.drop(user)

	extraction, err := uc.uc.extractor.Process(ctx, image)
	if err != nil {
		if errors.Is(err, types.ErrNoSubjectDetected) {
			return []Reply{textReply(i18n.Text(lang, i18n.KeyStoneNotFound))}, nil
		}
		logger.Error("extraction failed", "user", user, "error", err)
		return []Reply{textReply(i18n.Text(lang, i18n.KeyErrorPhoto))}, nil
	}
	if !extraction.Subject {
		logger.Info("photo rejected as non-stone",
			"user", user, "confidence", extraction.Confidence)
		return []Reply{textReply(i18n.Text(lang, i18n.KeyStoneNotRecognized))}, nil
	}

	decision, err := uc.uc.Resolve.Resolve(ctx, extraction.Embedding)
	if err != nil {
		logger.Error("resolution failed", "user", user, "error", err)
		return []Reply{textReply(i18n.Text(lang, i18n.KeyErrorPhoto))}, nil
	}

	session := model.NewIntakeSession(user, channel)
	session.Embedding = extraction.Embedding
	if err := session.Begin(decision); err != nil {
		return nil, goerr.Wrap(err, "failed to start intake session")
	}

	if lat, lon, ok := exif.GPS(image); ok {
		session.ExifLocation = &model.Location{Latitude: &lat, Longitude: &lon}
	}
	uc.storeImages(ctx, session, extraction)
	uc.sessions.replace(session)

	replies := []Reply{{
		Image:     extraction.Thumbnail,
		ImageName: "stone.jpg",
		ImageText: i18n.Text(lang, i18n.KeyCroppedStone),
	}}

	if session.IsExistingStone() {
		stone, err := uc.uc.repo.Stone().Get(ctx, session.Candidate.StoneID)
		if err != nil {
			uc.sessions.drop(user)
			logger.Error("failed to load matched stone", "stoneID", session.Candidate.StoneID, "error", err)
			return []Reply{textReply(i18n.Text(lang, i18n.KeyErrorGeneric))}, nil
		}

		info := i18n.Text(lang, i18n.KeyStoneFound) + "\n\n" +
			i18n.Textf(lang, i18n.KeyStoneName, stone.Name) + "\n"
		if stone.Description != "" {
			info += i18n.Textf(lang, i18n.KeyStoneDescription, stone.Description) + "\n"
		}
		info += i18n.Textf(lang, i18n.KeyStoneSeen, len(stone.Sightings)) + "\n\n" +
			i18n.Text(lang, i18n.KeySendLocation)

		replies = append(replies, Reply{
			Text:    info,
			Buttons: locationButtons(lang),
		})
	} else {
		replies = append(replies, textReply(
			i18n.Text(lang, i18n.KeyNewStone)+"\n\n"+i18n.Text(lang, i18n.KeyEnterName)))
	}

	return replies, nil
}

// HandleText routes a typed message through the session state machine.
// handled is false when the user has no session, so the caller can
// treat the text as a command or ignore it.
func (uc *IntakeUseCase) HandleText(ctx context.Context, user types.UserID, text string) (replies []Reply, handled bool, err error) {
	lang := uc.uc.Pref.Language(ctx, user)

	var state types.IntakeState
	var awaitingZip bool
	exists := false
	uc.sessions.withSession(user, func(s *model.IntakeSession) {
		if s == nil {
			return
		}
		exists = true
		state = s.State
		awaitingZip = s.AwaitingZip
	})
	if !exists {
		return nil, false, nil
	}

	// Typed skip/cancel/zip words act like button presses, but only in
	// states where the signal means something. At the name step every
	// word is a candidate name, so nothing is intercepted there.
	if signal, ok := uc.synonyms.Match(text); ok && signalMeaningful(signal, state) {
		replies, err := uc.HandleSignal(ctx, user, signal, "")
		return replies, true, err
	}

	switch state {
	case types.IntakeStateAwaitingName:
		replies, err = uc.applyName(ctx, user, lang, text)
	case types.IntakeStateAwaitingDescription:
		replies, err = uc.applyDescription(ctx, user, lang, text, false)
	case types.IntakeStateAwaitingLocation:
		if awaitingZip || model.LooksLikePostalCode(text) {
			replies, err = uc.applyPostalCode(ctx, user, lang, text)
		} else {
			replies = []Reply{{
				Text:    i18n.Text(lang, i18n.KeySendLocation),
				Buttons: locationButtons(lang),
			}}
		}
	default:
		return nil, false, nil
	}

	return replies, true, err
}

// HandleLocation consumes an explicitly shared location
func (uc *IntakeUseCase) HandleLocation(ctx context.Context, user types.UserID, lat, lon float64) ([]Reply, bool, error) {
	lang := uc.uc.Pref.Language(ctx, user)

	inLocationStep := false
	uc.sessions.withSession(user, func(s *model.IntakeSession) {
		inLocationStep = s != nil && s.State == types.IntakeStateAwaitingLocation
	})
	if !inLocationStep {
		return nil, false, nil
	}

	loc := &model.Location{Latitude: &lat, Longitude: &lon}
	place := uc.reverseGeocode(ctx, lat, lon)
	if place != nil {
		loc.PostalCode = place.PostalCode
	}

	replies, err := uc.finishWithLocation(ctx, user, lang, loc, place)
	return replies, true, err
}

// HandleSignal consumes a button press or its typed synonym
func (uc *IntakeUseCase) HandleSignal(ctx context.Context, user types.UserID, signal types.Signal, value string) ([]Reply, error) {
	lang := uc.uc.Pref.Language(ctx, user)

	switch signal {
	case types.SignalCancel:
		cancelled := false
		uc.sessions.withSession(user, func(s *model.IntakeSession) {
			if s != nil {
				s.Cancel()
				cancelled = true
			}
		})
		uc.sessions.drop(user)
		if !cancelled {
			return nil, nil
		}
		return []Reply{textReply(i18n.Text(lang, i18n.KeyCancelled))}, nil

	case types.SignalEnterZip:
		uc.sessions.withSession(user, func(s *model.IntakeSession) {
			if s != nil && s.State == types.IntakeStateAwaitingLocation {
				s.AwaitingZip = true
			}
		})
		return []Reply{textReply(i18n.Text(lang, i18n.KeyEnterZip))}, nil

	case types.SignalSkip:
		return uc.applySkip(ctx, user, lang)

	default:
		return nil, goerr.Wrap(types.ErrInvalidInput, "signal not handled by intake", goerr.V("signal", signal))
	}
}

func (uc *IntakeUseCase) applyName(ctx context.Context, user types.UserID, lang types.Language, text string) ([]Reply, error) {
	var applyErr error
	var name string
	uc.sessions.withSession(user, func(s *model.IntakeSession) {
		if s == nil {
			applyErr = goerr.Wrap(types.ErrSessionNotFound, "session vanished")
			return
		}
		applyErr = s.ApplyName(text)
		name = s.Name
	})
	if applyErr != nil {
		if errors.Is(applyErr, types.ErrInvalidInput) {
			return []Reply{textReply(i18n.Text(lang, i18n.KeyNameTooShort))}, nil
		}
		return nil, applyErr
	}

	return []Reply{{
		Text:    i18n.Textf(lang, i18n.KeyAddDescription, name),
		Buttons: []Button{skipButton(lang)},
	}}, nil
}

func (uc *IntakeUseCase) applyDescription(ctx context.Context, user types.UserID, lang types.Language, text string, skip bool) ([]Reply, error) {
	var applyErr error
	uc.sessions.withSession(user, func(s *model.IntakeSession) {
		if s == nil {
			applyErr = goerr.Wrap(types.ErrSessionNotFound, "session vanished")
			return
		}
		applyErr = s.ApplyDescription(text, skip)
	})
	if applyErr != nil {
		return nil, applyErr
	}

	return []Reply{{
		Text:    i18n.Text(lang, i18n.KeySendLocation),
		Buttons: locationButtons(lang),
	}}, nil
}

func (uc *IntakeUseCase) applyPostalCode(ctx context.Context, user types.UserID, lang types.Language, text string) ([]Reply, error) {
	loc := &model.Location{PostalCode: text}
	var place *model.Place
	if uc.uc.geocoder != nil {
		lat, lon, ok, err := uc.uc.geocoder.Forward(ctx, text)
		if err != nil {
			logging.From(ctx).Warn("forward geocoding failed", "postalCode", text, "error", err)
		} else if ok {
			loc.Latitude = &lat
			loc.Longitude = &lon
		}
	}

	return uc.finishWithLocation(ctx, user, lang, loc, place)
}

func signalMeaningful(signal types.Signal, state types.IntakeState) bool {
	switch state {
	case types.IntakeStateAwaitingDescription:
		return signal == types.SignalSkip || signal == types.SignalCancel
	case types.IntakeStateAwaitingLocation:
		return true
	default:
		return false
	}
}

// applySkip resolves the skip signal against the current state:
// description skip moves on, location skip completes with the EXIF
// coordinates when present and nothing otherwise.
func (uc *IntakeUseCase) applySkip(ctx context.Context, user types.UserID, lang types.Language) ([]Reply, error) {
	var state types.IntakeState
	var exifLoc *model.Location
	exists := false
	uc.sessions.withSession(user, func(s *model.IntakeSession) {
		if s == nil {
			return
		}
		exists = true
		state = s.State
		exifLoc = s.ExifLocation
	})
	if !exists {
		return nil, nil
	}

	switch state {
	case types.IntakeStateAwaitingDescription:
		return uc.applyDescription(ctx, user, lang, "", true)

	case types.IntakeStateAwaitingLocation:
		var place *model.Place
		if exifLoc.HasCoordinates() {
			place = uc.reverseGeocode(ctx, *exifLoc.Latitude, *exifLoc.Longitude)
			if place != nil {
				exifLoc.PostalCode = place.PostalCode
			}
		}
		return uc.finishWithLocation(ctx, user, lang, exifLoc, place)

	default:
		// A stale skip button at the name step; repeat the prompt
		// instead of going silent
		return []Reply{textReply(i18n.Text(lang, i18n.KeyEnterName))}, nil
	}
}

// finishWithLocation applies the final answer and, if this call wins
// the exactly-once completion, persists the result. Duplicate delivery
// of the terminal input commits nothing and stays silent.
func (uc *IntakeUseCase) finishWithLocation(ctx context.Context, user types.UserID, lang types.Language, loc *model.Location, place *model.Place) ([]Reply, error) {
	var session *model.IntakeSession
	won := false
	uc.sessions.withSession(user, func(s *model.IntakeSession) {
		if s == nil {
			return
		}
		if s.State == types.IntakeStateAwaitingLocation {
			if err := s.ApplyLocation(loc); err != nil {
				return
			}
		}
		if s.CompleteOnce() {
			won = true
			session = s
		}
	})
	if !won {
		return nil, nil
	}
	defer uc.sessions.drop(user)

	replies, err := uc.commit(ctx, session, lang, place)
	if err != nil {
		logging.From(ctx).Error("intake commit failed", "user", user, "error", err)
		return []Reply{textReply(i18n.Text(lang, i18n.KeyErrorGeneric))}, nil
	}
	return replies, nil
}

// commit performs the single registry write of the session
func (uc *IntakeUseCase) commit(ctx context.Context, session *model.IntakeSession, lang types.Language, place *model.Place) ([]Reply, error) {
	sighting := &model.Sighting{
		Reporter: session.User,
		ImageRef: session.CropRef,
		Location: session.Location,
	}

	if session.IsExistingStone() {
		stoneID := session.Candidate.StoneID
		if _, err := uc.uc.repo.Sighting().Append(ctx, stoneID, sighting); err != nil {
			return nil, goerr.Wrap(err, "failed to append sighting", goerr.V("stoneID", stoneID))
		}

		msg := i18n.Text(lang, i18n.KeySaved)
		if session.Location == nil {
			msg = i18n.Text(lang, i18n.KeySavedNoLocation)
		} else if label := place.Label(); label != "" {
			msg = i18n.Textf(lang, i18n.KeyLocationLabel, label) + "\n" + msg
		} else if session.Location.PostalCode != "" {
			msg += "\n" + i18n.Textf(lang, i18n.KeyZipLabel, session.Location.PostalCode)
			if session.Location.HasCoordinates() {
				msg += "\n" + i18n.Textf(lang, i18n.KeyCoordsLabel,
					*session.Location.Latitude, *session.Location.Longitude)
			}
		}

		replies := []Reply{textReply(msg)}
		replies = append(replies, uc.journeyReplies(ctx, stoneID, lang)...)
		return replies, nil
	}

	stone := &model.Stone{
		Name:       session.Name,
		Embedding:  session.Embedding,
		Registrant: session.User,
		ImageRef:   session.CropRef,
	}
	if session.Description != nil {
		stone.Description = *session.Description
	}

	created, err := uc.uc.repo.Stone().Create(ctx, stone, sighting)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to register stone", goerr.V("name", session.Name))
	}
	logging.From(ctx).Info("registered stone", "stoneID", created.ID, "name", created.Name)

	msg := i18n.Textf(lang, i18n.KeyStoneRegistered, created.Name)
	if label := place.Label(); label != "" {
		msg += "\n" + i18n.Textf(lang, i18n.KeyLocationLabel, label)
	} else if session.Location != nil && session.Location.PostalCode != "" {
		msg += "\n" + i18n.Textf(lang, i18n.KeyZipLabel, session.Location.PostalCode)
		if session.Location.HasCoordinates() {
			msg += "\n" + i18n.Textf(lang, i18n.KeyCoordsLabel,
				*session.Location.Latitude, *session.Location.Longitude)
		}
	}

	return []Reply{textReply(msg)}, nil
}

// journeyReplies renders the stone's journey map and optional narrative
func (uc *IntakeUseCase) journeyReplies(ctx context.Context, stoneID types.StoneID, lang types.Language) []Reply {
	logger := logging.From(ctx)

	stone, err := uc.uc.repo.Stone().Get(ctx, stoneID)
	if err != nil {
		logger.Error("failed to load stone for journey map", "stoneID", stoneID, "error", err)
		return nil
	}

	points := model.MapPoints(stone.Sightings)
	if len(points) == 0 || uc.uc.renderer == nil {
		return nil
	}

	img, err := uc.uc.renderer.Render(ctx, points)
	if err != nil {
		logger.Error("journey map render failed", "stoneID", stoneID, "error", err)
		return nil
	}
	if img == nil {
		return nil
	}

	reply := Reply{
		Image:     img,
		ImageName: fmt.Sprintf("journey-%d.png", stoneID),
		ImageText: i18n.Text(lang, i18n.KeyMapCaption),
	}
	if uc.uc.tokens != nil && uc.uc.mapBaseURL != "" {
		if token, err := uc.uc.tokens.Issue(stoneID); err == nil {
			reply.LinkURL = fmt.Sprintf("%s/map?stone=%d&token=%s", uc.uc.mapBaseURL, stoneID, token)
			reply.LinkLabel = i18n.Text(lang, i18n.KeyInteractiveMap)
		} else {
			logger.Error("failed to mint map token", "stoneID", stoneID, "error", err)
		}
	}

	replies := []Reply{reply}
	if uc.uc.narrative != nil {
		stops := make([]string, 0, len(points))
		for _, p := range points {
			if p.PostalCode != "" {
				stops = append(stops, p.PostalCode)
			}
		}
		story, err := uc.uc.narrative.Journey(ctx, &narrative.Request{
			StoneName: stone.Name,
			Stops:     stops,
			Sightings: len(stone.Sightings),
			Language:  lang,
		})
		if err != nil {
			logger.Warn("journey narrative failed", "stoneID", stoneID, "error", err)
		} else if story != "" {
			replies = append(replies, textReply(story))
		}
	}

	return replies
}

func (uc *IntakeUseCase) storeImages(ctx context.Context, session *model.IntakeSession, extraction *model.Extraction) {
	if uc.uc.images == nil {
		return
	}
	logger := logging.From(ctx)

	if len(extraction.Crop) > 0 {
		ref, err := uc.uc.images.Put(ctx, fmt.Sprintf("crops/%s.jpg", session.ID), extraction.Crop, "image/jpeg")
		if err != nil {
			logger.Warn("failed to store crop", "session", session.ID, "error", err)
		} else {
			session.CropRef = ref
		}
	}
	if len(extraction.Thumbnail) > 0 {
		ref, err := uc.uc.images.Put(ctx, fmt.Sprintf("thumbs/%s.jpg", session.ID), extraction.Thumbnail, "image/jpeg")
		if err != nil {
			logger.Warn("failed to store thumbnail", "session", session.ID, "error", err)
		} else {
			session.ThumbRef = ref
		}
	}
}

func (uc *IntakeUseCase) reverseGeocode(ctx context.Context, lat, lon float64) *model.Place {
	if uc.uc.geocoder == nil {
		return nil
	}
	place, err := uc.uc.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		logging.From(ctx).Warn("reverse geocoding failed", "lat", lat, "lon", lon, "error", err)
		return nil
	}
	return place
}

func locationButtons(lang types.Language) []Button {
	return []Button{
		{Label: i18n.Text(lang, i18n.KeyBtnEnterZip), Signal: types.SignalEnterZip},
		skipButton(lang),
		{Label: i18n.Text(lang, i18n.KeyBtnCancelDelete), Signal: types.SignalCancel},
	}
}

func skipButton(lang types.Language) Button {
	return Button{Label: i18n.Text(lang, i18n.KeyBtnSkip), Signal: types.SignalSkip}
}
