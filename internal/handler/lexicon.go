package handler

import "assembl/internal/middleware"

// User-facing texts
const (
	msgStart         = "Привет! Я помогу найти нужную сборку.\nНажми /assembl, чтобы выбрать категорию."
	msgStartAdmin    = "Категории в каталоге:"
	msgHelp          = "/assembl - выбрать категорию и сборку\n/cancel - отменить текущее действие\n/help - эта справка"
	msgHelpAdmin     = "Чтобы добавить сборку, отправь фото с подписью: <категория> <описание>.\n\nКатегории:"
	msgCancel        = "Действие отменено."
	msgChooseCat     = "Выбери категорию:"
	msgNoCategories  = "Категорий пока нет."
	msgChooseAssembl = "Выбери сборку из категории %s:"
	msgEmptyCategory = "В этой категории пока нет сборок."
	msgSearchPrompt  = "Введи описание сборки для поиска:"
	msgSearchResult  = "Нашлось несколько сборок, выбери нужную:"
	msgPhotoNotFound = "Сборка не найдена."
	msgPhotoFound    = "Сборка:"
	msgUserNotAdmin  = "Это действие доступно только администраторам групп."
	msgNotActive     = "Кнопки больше не активны."
	msgError         = middleware.ErrorText
	msgPhotoExists   = "Сборка с таким описанием уже есть."
	msgDescTooLong   = "Описание слишком длинное, сократи его."

	msgAddConfirm = "Добавить сборку %s в категорию %s?\nПодтверди действие:"
	msgAddDone    = "Сборка добавлена."

	msgReplacePrompt   = "Отправь новое фото для этой сборки."
	msgReplaceConfirm  = "Заменить фото сборки %s в категории %s?\nПодтверди действие:"
	msgReplaceDone     = "Фото сборки заменено."
	msgReplaceCanceled = "Замена отменена."

	msgDeleteConfirm = "Удалить сборку?\nПодтверди действие:"
	msgDeleteDone    = "Сборка удалена."

	msgEditPrompt  = "Отправь новое описание. Сейчас: %s"
	msgEditConfirm = "Новое описание: %s\nПодтверди действие:"
	msgEditDone    = "Новое описание: %s"

	msgGroupHello = "Всем привет! Я бот с каталогом сборок. Чтобы я заработал, выдайте мне права администратора."
	msgGroupReady = "Бот готов к работе. Сборки ищи в личных сообщениях:"
	msgMention    = "Напиши мне в личные сообщения:"
	msgChannel    = "Наш канал:"
)

// Button labels
const (
	btnYes            = "Да"
	btnNo             = "Нет"
	btnPrev           = "◀"
	btnNext           = "▶"
	btnPageInfo       = "%d из %d"
	btnBackCategories = "Вернуться к категориям"
	btnSearch         = "Поиск"
	btnReplace        = "Заменить сборку"
	btnEditDesc       = "Изменить описание"
	btnDelete         = "Удалить сборку"
	btnBackCategory   = "Категория"
	btnOpenBot        = "Открыть бота"
	btnOpenChannel    = "Перейти в канал"
)
