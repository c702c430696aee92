package i18n

import "github.com/wanderstone-dev/wanderstone/pkg/domain/types"

var messages = map[types.Language]map[Key]string{
	types.LanguagePolish: {
		KeyWelcome: "Cześć! Jestem wanderstone.\n\n" +
			"Wyślij mi zdjęcie kamyka:\n" +
			"• Jeśli kamyk jest już zarejestrowany — pokażę informacje\n" +
			"• Jeśli nowy — pomogę zarejestrować",
		KeyHelp: "Dostępne komendy:\n" +
			"/stones - Moje kamyki\n" +
			"/stone <id> - Informacje o kamyku\n" +
			"/delete <id> - Usuń kamyk\n" +
			"/find <opis> - Szukaj kamyka po opisie\n" +
			"/lang - Zmień język\n" +
			"/cancel - Anuluj bieżącą operację\n\n" +
			"Po prostu wyślij zdjęcie kamyka!",
		KeyLangSelect:         "Wybierz język:",
		KeyLangChanged:        "Język zmieniony na Polski",
		KeyAnalyzing:          "Analizuję zdjęcie...",
		KeyStoneNotFound:      "❌ Kamyk nie został znaleziony na zdjęciu.\n\nUpewnij się, że kamyk jest dobrze widoczny i spróbuj ponownie.",
		KeyStoneNotRecognized: "❌ Kamyk nie został rozpoznany.\n\nUpewnij się, że na zdjęciu jest płaski kamyk z wzorem i spróbuj ponownie.",
		KeyCroppedStone:       "📷 Rozpoznany kamyk",
		KeyStoneFound:         "✅ Kamyk znaleziony!",
		KeyStoneID:            "🔢 ID: %d",
		KeyStoneName:          "📛 Nazwa: %s",
		KeyStoneDescription:   "📝 Opis: %s",
		KeyStoneSeen:          "📍 Widziany %d raz(y)",
		KeySendLocation:       "Wyślij lokalizację lub wpisz kod pocztowy:",
		KeyNewStone:           "🆕 Nowy kamyk!",
		KeyEnterName:          "Podaj nazwę dla kamyka:",
		KeyNameTooShort:       "Nazwa za krótka. Podaj nazwę (minimum 2 znaki):",
		KeyAddDescription:     "Nazwa: %s\n\nDodać opis? (lub naciśnij «Pomiń»)",
		KeyBtnEnterZip:        "Wpisz kod pocztowy",
		KeyBtnSkip:            "Pomiń",
		KeyEnterZip:           "Wpisz kod pocztowy (ZIP):",
		KeySaved:              "✅ Zapisano w historii!",
		KeySavedNoLocation:    "✅ Zapisano w historii (bez lokalizacji)!",
		KeyStoneRegistered:    "✅ Kamyk «%s» zarejestrowany!",
		KeyLocationLabel:      "🗺 Lokalizacja: %s",
		KeyZipLabel:           "📮 ZIP: %s",
		KeyCoordsLabel:        "📍 Współrzędne: %.4f, %.4f",
		KeyMapCaption:         "🗺 Mapa podróży\n🟢 start → 🔴 koniec",
		KeyInteractiveMap:     "🗺 Interaktywna mapa",
		KeyMyStones:           "🪨 Twoje kamyki:",
		KeyNoStones:           "Nie masz jeszcze zarejestrowanych kamyków.\n\nWyślij zdjęcie kamyka, aby zarejestrować!",
		KeyPageInfo:           "📄 Strona %d/%d (kamyków: %d)",
		KeyBtnPrevPage:        "⬅️ Poprzednia",
		KeyBtnNextPage:        "Następna ➡️",
		KeyInfoUsage:          "Użycie: /stone <id>\nPrzykład: /stone 5",
		KeyInfoNotFound:       "❌ Kamyk #%d nie znaleziony.",
		KeyDeleteUsage:        "Użycie: /delete <id>\nPrzykład: /delete 5",
		KeyDeleteNotFound:     "❌ Kamyk #%d nie znaleziony lub nie należy do Ciebie.",
		KeyDeleteConfirm:      "Usunąć kamyk «%s» (ID: %d)?\n\n⚠️ Ta operacja jest nieodwracalna!",
		KeyDeleteSuccess:      "✅ Kamyk «%s» został usunięty.",
		KeyDeleteCancelled:    "Usuwanie anulowane.",
		KeyBtnConfirmDelete:   "🗑 Tak, usuń",
		KeyBtnCancelDelete:    "❌ Anuluj",
		KeyFindUsage:          "Użycie: /find <opis>\nPrzykład: /find niebieska biedronka",
		KeyFindResult:         "🔎 Najbardziej podobny kamyk (podobieństwo %.0f%%):",
		KeyFindNone:           "🔎 Nie znaleziono pasującego kamyka.",
		KeyErrorPhoto:         "❌ Wystąpił błąd podczas przetwarzania zdjęcia. Spróbuj ponownie.",
		KeyErrorGeneric:       "❌ Wystąpił błąd. Spróbuj ponownie.",
		KeyCancelled:          "Operacja anulowana.",
	},

	types.LanguageEnglish: {
		KeyWelcome: "Hi! I'm wanderstone.\n\n" +
			"Send me a photo of a painted rock:\n" +
			"• If it's already registered — I'll show info\n" +
			"• If it's new — I'll help register it",
		KeyHelp: "Available commands:\n" +
			"/stones - My rocks\n" +
			"/stone <id> - Rock information\n" +
			"/delete <id> - Delete a rock\n" +
			"/find <description> - Search rocks by description\n" +
			"/lang - Change language\n" +
			"/cancel - Cancel current operation\n\n" +
			"Just send a photo of a rock!",
		KeyLangSelect:         "Select language:",
		KeyLangChanged:        "Language changed to English",
		KeyAnalyzing:          "Analyzing image...",
		KeyStoneNotFound:      "❌ Rock not found in the image.\n\nMake sure the rock is clearly visible and try again.",
		KeyStoneNotRecognized: "❌ Rock not recognized.\n\nMake sure it's a flat painted rock and try again.",
		KeyCroppedStone:       "📷 Recognized rock",
		KeyStoneFound:         "✅ Rock found!",
		KeyStoneID:            "🔢 ID: %d",
		KeyStoneName:          "📛 Name: %s",
		KeyStoneDescription:   "📝 Description: %s",
		KeyStoneSeen:          "📍 Seen %d time(s)",
		KeySendLocation:       "Send location or enter ZIP code:",
		KeyNewStone:           "🆕 New rock!",
		KeyEnterName:          "Enter a name for the rock:",
		KeyNameTooShort:       "Name too short. Enter a name (minimum 2 characters):",
		KeyAddDescription:     "Name: %s\n\nAdd description? (or press «Skip»)",
		KeyBtnEnterZip:        "Enter ZIP code",
		KeyBtnSkip:            "Skip",
		KeyEnterZip:           "Enter ZIP code:",
		KeySaved:              "✅ Saved to history!",
		KeySavedNoLocation:    "✅ Saved to history (no location)!",
		KeyStoneRegistered:    "✅ Rock «%s» registered!",
		KeyLocationLabel:      "🗺 Location: %s",
		KeyZipLabel:           "📮 ZIP: %s",
		KeyCoordsLabel:        "📍 Coordinates: %.4f, %.4f",
		KeyMapCaption:         "🗺 Journey map\n🟢 start → 🔴 latest",
		KeyInteractiveMap:     "🗺 Interactive map",
		KeyMyStones:           "🪨 Your rocks:",
		KeyNoStones:           "You don't have any registered rocks yet.\n\nSend a photo of a rock to register it!",
		KeyPageInfo:           "📄 Page %d/%d (rocks: %d)",
		KeyBtnPrevPage:        "⬅️ Previous",
		KeyBtnNextPage:        "Next ➡️",
		KeyInfoUsage:          "Usage: /stone <id>\nExample: /stone 5",
		KeyInfoNotFound:       "❌ Rock #%d not found.",
		KeyDeleteUsage:        "Usage: /delete <id>\nExample: /delete 5",
		KeyDeleteNotFound:     "❌ Rock #%d not found or not yours.",
		KeyDeleteConfirm:      "Delete rock «%s» (ID: %d)?\n\n⚠️ This cannot be undone!",
		KeyDeleteSuccess:      "✅ Rock «%s» deleted.",
		KeyDeleteCancelled:    "Deletion cancelled.",
		KeyBtnConfirmDelete:   "🗑 Yes, delete",
		KeyBtnCancelDelete:    "❌ Cancel",
		KeyFindUsage:          "Usage: /find <description>\nExample: /find blue ladybug",
		KeyFindResult:         "🔎 Closest matching rock (similarity %.0f%%):",
		KeyFindNone:           "🔎 No matching rock found.",
		KeyErrorPhoto:         "❌ Error processing photo. Please try again.",
		KeyErrorGeneric:       "❌ An error occurred. Please try again.",
		KeyCancelled:          "Operation cancelled.",
	},

	types.LanguageRussian: {
		KeyWelcome: "Привет! Я wanderstone.\n\n" +
			"Отправь мне фото камня:\n" +
			"• Если камень уже зарегистрирован — покажу информацию\n" +
			"• Если новый — помогу зарегистрировать",
		KeyHelp: "Доступные команды:\n" +
			"/stones - Мои камни\n" +
			"/stone <id> - Информация о камне\n" +
			"/delete <id> - Удалить камень\n" +
			"/find <описание> - Поиск камня по описанию\n" +
			"/lang - Сменить язык\n" +
			"/cancel - Отменить текущую операцию\n\n" +
			"Просто отправь фото камня!",
		KeyLangSelect:         "Выберите язык:",
		KeyLangChanged:        "Язык изменён на Русский",
		KeyAnalyzing:          "Анализирую изображение...",
		KeyStoneNotFound:      "❌ Камень не найден на изображении.\n\nУбедитесь, что камень хорошо виден на фото и попробуйте снова.",
		KeyStoneNotRecognized: "❌ Камень не распознан.\n\nУбедитесь, что на фото плоский камень с рисунком, и попробуйте снова.",
		KeyCroppedStone:       "📷 Распознанный камень",
		KeyStoneFound:         "✅ Камень найден!",
		KeyStoneID:            "🔢 ID: %d",
		KeyStoneName:          "📛 Имя: %s",
		KeyStoneDescription:   "📝 Описание: %s",
		KeyStoneSeen:          "📍 Замечен %d раз(а)",
		KeySendLocation:       "Отправь геолокацию или введи ZIP код:",
		KeyNewStone:           "🆕 Новый камень!",
		KeyEnterName:          "Введите имя для камня:",
		KeyNameTooShort:       "Имя слишком короткое. Введите имя (минимум 2 символа):",
		KeyAddDescription:     "Имя: %s\n\nДобавить описание? (или нажми «Пропустить»)",
		KeyBtnEnterZip:        "Ввести ZIP код",
		KeyBtnSkip:            "Пропустить",
		KeyEnterZip:           "Введи почтовый индекс (ZIP код):",
		KeySaved:              "✅ Сохранено в истории!",
		KeySavedNoLocation:    "✅ Сохранено в истории (без местоположения)!",
		KeyStoneRegistered:    "✅ Камень «%s» зарегистрирован!",
		KeyLocationLabel:      "🗺 Местоположение: %s",
		KeyZipLabel:           "📮 ZIP: %s",
		KeyCoordsLabel:        "📍 Координаты: %.4f, %.4f",
		KeyMapCaption:         "🗺 Карта перемещений\n🟢 старт → 🔴 финиш",
		KeyInteractiveMap:     "🗺 Интерактивная карта",
		KeyMyStones:           "🪨 Твои камни:",
		KeyNoStones:           "У тебя пока нет зарегистрированных камней.\n\nОтправь фото камня, чтобы зарегистрировать!",
		KeyPageInfo:           "📄 Страница %d/%d (камней: %d)",
		KeyBtnPrevPage:        "⬅️ Назад",
		KeyBtnNextPage:        "Вперёд ➡️",
		KeyInfoUsage:          "Использование: /stone <id>\nПример: /stone 5",
		KeyInfoNotFound:       "❌ Камень #%d не найден.",
		KeyDeleteUsage:        "Использование: /delete <id>\nПример: /delete 5",
		KeyDeleteNotFound:     "❌ Камень #%d не найден или не принадлежит тебе.",
		KeyDeleteConfirm:      "Удалить камень «%s» (ID: %d)?\n\n⚠️ Это действие необратимо!",
		KeyDeleteSuccess:      "✅ Камень «%s» удалён.",
		KeyDeleteCancelled:    "Удаление отменено.",
		KeyBtnConfirmDelete:   "🗑 Да, удалить",
		KeyBtnCancelDelete:    "❌ Отмена",
		KeyFindUsage:          "Использование: /find <описание>\nПример: /find синяя божья коровка",
		KeyFindResult:         "🔎 Самый похожий камень (сходство %.0f%%):",
		KeyFindNone:           "🔎 Похожий камень не найден.",
		KeyErrorPhoto:         "❌ Произошла ошибка при обработке фото. Попробуйте снова.",
		KeyErrorGeneric:       "❌ Произошла ошибка. Попробуйте снова.",
		KeyCancelled:          "Операция отменена.",
	},
}
