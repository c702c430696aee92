package i18n

import (
	"fmt"

	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

// Key identifies one message in the catalog
type Key string

const (
	KeyWelcome            Key = "welcome"
	KeyHelp               Key = "help"
	KeyLangSelect         Key = "lang_select"
	KeyLangChanged        Key = "lang_changed"
	KeyAnalyzing          Key = "analyzing"
	KeyStoneNotFound      Key = "stone_not_found"
	KeyStoneNotRecognized Key = "stone_not_recognized"
	KeyCroppedStone       Key = "cropped_stone"
	KeyStoneFound         Key = "stone_found"
	KeyStoneID            Key = "stone_id"
	KeyStoneName          Key = "stone_name"
	KeyStoneDescription   Key = "stone_description"
	KeyStoneSeen          Key = "stone_seen"
	KeySendLocation       Key = "send_location_prompt"
	KeyNewStone           Key = "new_stone"
	KeyEnterName          Key = "enter_name"
	KeyNameTooShort       Key = "name_too_short"
	KeyAddDescription     Key = "add_description"
	KeyBtnEnterZip        Key = "btn_enter_zip"
	KeyBtnSkip            Key = "btn_skip"
	KeyEnterZip           Key = "enter_zip"
	KeySaved              Key = "saved_to_history"
	KeySavedNoLocation    Key = "saved_no_location"
	KeyStoneRegistered    Key = "stone_registered"
	KeyLocationLabel      Key = "location_label"
	KeyZipLabel           Key = "zip_label"
	KeyCoordsLabel        Key = "coords_label"
	KeyMapCaption         Key = "map_caption"
	KeyInteractiveMap     Key = "interactive_map"
	KeyMyStones           Key = "my_stones"
	KeyNoStones           Key = "no_stones"
	KeyPageInfo           Key = "page_info"
	KeyBtnPrevPage        Key = "btn_prev_page"
	KeyBtnNextPage        Key = "btn_next_page"
	KeyInfoUsage          Key = "info_usage"
	KeyInfoNotFound       Key = "info_not_found"
	KeyDeleteUsage        Key = "delete_usage"
	KeyDeleteNotFound     Key = "delete_not_found"
	KeyDeleteConfirm      Key = "delete_confirm"
	KeyDeleteSuccess      Key = "delete_success"
	KeyDeleteCancelled    Key = "delete_cancelled"
	KeyBtnConfirmDelete   Key = "btn_confirm_delete"
	KeyBtnCancelDelete    Key = "btn_cancel_delete"
	KeyFindUsage          Key = "find_usage"
	KeyFindResult         Key = "find_result"
	KeyFindNone           Key = "find_none"
	KeyErrorPhoto         Key = "error_photo"
	KeyErrorGeneric       Key = "error_generic"
	KeyCancelled          Key = "cancelled"
)

// Text returns the message for the given language, falling back to the
// default language for missing translations.
func Text(lang types.Language, key Key) string {
	catalog, ok := messages[lang.Normalize()]
	if !ok {
		catalog = messages[types.DefaultLanguage]
	}
	if msg, ok := catalog[key]; ok {
		return msg
	}
	if msg, ok := messages[types.DefaultLanguage][key]; ok {
		return msg
	}
	return string(key)
}

// Textf returns the message formatted with fmt.Sprintf
func Textf(lang types.Language, key Key, args ...any) string {
	return fmt.Sprintf(Text(lang, key), args...)
}

// LanguageLabel is the self-name of a language, used on selection buttons
func LanguageLabel(lang types.Language) string {
	switch lang {
	case types.LanguageEnglish:
		return "English"
	case types.LanguageRussian:
		return "Русский"
	default:
		return "Polski"
	}
}
