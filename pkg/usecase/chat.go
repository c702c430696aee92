package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
	"github.com/wanderstone-dev/wanderstone/pkg/i18n"
	"github.com/wanderstone-dev/wanderstone/pkg/utils/logging"
)

// ChatUseCase is the single entry point the chat controller talks to.
// It parses commands, routes free text through the intake state
// machine, and dispatches button signals to their owners.
type ChatUseCase struct {
	uc *UseCases
}

func NewChatUseCase(uc *UseCases) *ChatUseCase {
	return &ChatUseCase{uc: uc}
}

// PhotoReceived returns the localized notice the controller posts
// before the extraction round trip, so the user knows the photo is
// being processed
func (uc *ChatUseCase) PhotoReceived(ctx context.Context, user types.UserID) []Reply {
	lang := uc.uc.Pref.Language(ctx, user)
	return []Reply{textReply(i18n.Text(lang, i18n.KeyAnalyzing))}
}

// OnPhoto handles an incoming photo message
func (uc *ChatUseCase) OnPhoto(ctx context.Context, user types.UserID, channel string, image []byte) ([]Reply, error) {
	return uc.uc.Intake.HandlePhoto(ctx, user, channel, image)
}

// OnLocation handles an explicitly shared location
func (uc *ChatUseCase) OnLocation(ctx context.Context, user types.UserID, lat, lon float64) ([]Reply, error) {
	replies, handled, err := uc.uc.Intake.HandleLocation(ctx, user, lat, lon)
	if err != nil || handled {
		return replies, err
	}
	// A location outside any session is ignored
	return nil, nil
}

// OnMessage handles a text message: commands first, then the intake
// state machine, then the fallback help.
func (uc *ChatUseCase) OnMessage(ctx context.Context, user types.UserID, text string) ([]Reply, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "/") {
		return uc.dispatchCommand(ctx, user, trimmed)
	}

	replies, handled, err := uc.uc.Intake.HandleText(ctx, user, trimmed)
	if err != nil || handled {
		return replies, err
	}

	lang := uc.uc.Pref.Language(ctx, user)
	return []Reply{textReply(i18n.Text(lang, i18n.KeyHelp))}, nil
}

// OnSignal handles a button press
func (uc *ChatUseCase) OnSignal(ctx context.Context, user types.UserID, signal types.Signal, value string) ([]Reply, error) {
	switch signal {
	case types.SignalSkip, types.SignalCancel, types.SignalEnterZip:
		return uc.uc.Intake.HandleSignal(ctx, user, signal, value)

	case types.SignalConfirmDelete:
		return uc.uc.Stone.ConfirmDelete(ctx, user)

	case types.SignalCancelDelete:
		return uc.uc.Stone.CancelDelete(ctx, user)

	case types.SignalPagePrev, types.SignalPageNext:
		page, err := strconv.Atoi(value)
		if err != nil {
			page = 0
		}
		return uc.uc.Stone.List(ctx, user, page)

	case types.SignalSetLanguage:
		return uc.setLanguage(ctx, user, types.Language(value))

	default:
		logging.From(ctx).Warn("ignoring unknown signal", "signal", signal, "user", user)
		return nil, nil
	}
}

func (uc *ChatUseCase) dispatchCommand(ctx context.Context, user types.UserID, text string) ([]Reply, error) {
	lang := uc.uc.Pref.Language(ctx, user)

	cmd, arg := splitCommand(text)
	switch cmd {
	case "/start":
		return []Reply{textReply(i18n.Text(lang, i18n.KeyWelcome))}, nil

	case "/help":
		return []Reply{textReply(i18n.Text(lang, i18n.KeyHelp))}, nil

	case "/stones":
		page := 0
		if arg != "" {
			if n, err := strconv.Atoi(arg); err == nil && n > 0 {
				page = n - 1
			}
		}
		return uc.uc.Stone.List(ctx, user, page)

	case "/stone":
		id, err := types.ParseStoneID(strings.TrimPrefix(arg, "#"))
		if err != nil {
			return []Reply{textReply(i18n.Text(lang, i18n.KeyInfoUsage))}, nil
		}
		return uc.uc.Stone.Info(ctx, user, id)

	case "/delete":
		id, err := types.ParseStoneID(strings.TrimPrefix(arg, "#"))
		if err != nil {
			return []Reply{textReply(i18n.Text(lang, i18n.KeyDeleteUsage))}, nil
		}
		return uc.uc.Stone.RequestDelete(ctx, user, id)

	case "/find":
		if arg == "" {
			return []Reply{textReply(i18n.Text(lang, i18n.KeyFindUsage))}, nil
		}
		return uc.uc.Stone.Find(ctx, user, arg)

	case "/lang":
		return []Reply{languagePicker(lang)}, nil

	case "/cancel":
		replies, err := uc.uc.Intake.HandleSignal(ctx, user, types.SignalCancel, "")
		if err != nil {
			return nil, err
		}
		if replies == nil {
			replies = []Reply{textReply(i18n.Text(lang, i18n.KeyCancelled))}
		}
		return replies, nil

	default:
		return []Reply{textReply(i18n.Text(lang, i18n.KeyHelp))}, nil
	}
}

func (uc *ChatUseCase) setLanguage(ctx context.Context, user types.UserID, lang types.Language) ([]Reply, error) {
	if err := uc.uc.Pref.SetLanguage(ctx, user, lang); err != nil {
		current := uc.uc.Pref.Language(ctx, user)
		logging.From(ctx).Warn("language change rejected", "user", user, "error", err)
		return []Reply{textReply(i18n.Text(current, i18n.KeyErrorGeneric))}, nil
	}
	return []Reply{textReply(i18n.Text(lang, i18n.KeyLangChanged))}, nil
}

func languagePicker(lang types.Language) Reply {
	reply := Reply{Text: i18n.Text(lang, i18n.KeyLangSelect)}
	for _, l := range types.AllLanguages() {
		reply.Buttons = append(reply.Buttons, Button{
			Label:  i18n.LanguageLabel(l),
			Signal: types.SignalSetLanguage,
			Value:  string(l),
		})
	}
	return reply
}

// splitCommand separates "/cmd rest of line" and strips a bot mention
// suffix of the "/cmd@botname" form
func splitCommand(text string) (cmd, arg string) {
	cmd, arg, _ = strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}
