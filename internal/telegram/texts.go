package telegram

import (
	"fmt"
	"strings"

	"github.com/ykvlv/birthday-bot/internal/domain"
)

// UI texts in Russian
const (
	startText = "Привет! Я буду напоминать о праздниках и днях рождения.\n\n" +
		"Команды:\n" +
		"/bday DD.MM Имя — добавить день рождения\n" +
		"/list_my_bdays — показать твои записи\n" +
		"/del_my_bday ID — удалить свою запись\n" +
		"/status — настройки поздравлений в этом чате\n\n" +
		"Команды только для админов:\n" +
		"/list_bdays — все дни рождения\n" +
		"/del_bday ID — удалить любую запись\n" +
		"/enable — включить ежедневные поздравления\n" +
		"/disable — выключить ежедневные поздравления\n" +
		"/time HH:MM — установить время поздравления"

	chatAlreadyAddedText = "Этот чат уже есть в списке для ежедневных поздравлений."
	chatAddedFmt         = "Чат %d добавлен в список для ежедневных поздравлений."

	bdayUsageText    = "Формат: /bday DD.MM Имя\nНапример: /bday 06.02 Иван"
	bdayBadDateText  = "Неверный формат даты, нужно DD.MM"
	bdaySavedFmt     = "Записал день рождения: %s — %s"
	delMineUsageText = "Формат: /del_my_bday ID\nID смотри в /list_my_bdays"
	delAnyUsageText  = "Формат: /del_bday ID\nID смотри в /list_bdays"
	badIDText        = "ID должен быть числом."
	deletedMineFmt   = "Твоя запись с ID %d удалена."
	deletedAnyFmt    = "Запись с ID %d удалена."
	notMineText      = "Такой записи у тебя нет."
	notInChatText    = "Такой записи нет в этом чате."

	noMineText      = "У тебя пока нет записанных дней рождения в этом чате."
	mineHeader      = "Твои дни рождения в этом чате:\n"
	noneInChatText  = "В этом чате пока нет записанных дней рождения."
	chatListHeader  = "Список дней рождения:\n"
	adminsOnlyText  = "Эта команда доступна только администраторам чата."
	enabledText     = "Ежедневные поздравления включены для этого чата."
	disabledText    = "Ежедневные поздравления отключены для этого чата."
	timeUsageText   = "Формат: /time HH:MM\nНапример: /time 09:00"
	timeBadText     = "Неверный формат времени, нужно HH:MM (00–23:59)."
	timeSetFmt      = "Время ежедневных поздравлений для этого чата установлено на %s."
	statusFmt       = "Ежедневные поздравления: %s\nВремя: %s"
	notRegistered   = "Этот чат ещё не подписан на поздравления. Отправь /add или /start."
	noHolidaysText  = "API праздников вернуло пусто на сегодня."
	holidaysHeader  = "🎊 Праздники сегодня (debug):\n"
	internalErrText = "Что-то пошло не так, попробуй позже."
)

// commandMenu is published with setMyCommands.
var commandMenu = []struct{ command, description string }{
	{"start", "Начать работу"},
	{"bday", "Добавить день рождения"},
	{"list_my_bdays", "Мои записи"},
	{"del_my_bday", "Удалить свою запись"},
	{"status", "Настройки чата"},
	{"list_bdays", "Все дни рождения (админ)"},
	{"del_bday", "Удалить запись (админ)"},
	{"enable", "Включить поздравления (админ)"},
	{"disable", "Выключить поздравления (админ)"},
	{"time", "Время поздравлений (админ)"},
}

// formatMine renders one line per record with its id, date and name.
func formatMine(list []domain.Birthday) string {
	lines := make([]string, 0, len(list))
	for _, b := range list {
		lines = append(lines, fmt.Sprintf("%d: %s — %s", b.ID, b.Date, b.Name))
	}
	return mineHeader + strings.Join(lines, "\n")
}

// formatChat renders every record of a chat with its owner.
func formatChat(list []domain.Birthday) string {
	lines := make([]string, 0, len(list))
	for _, b := range list {
		lines = append(lines, fmt.Sprintf("%d: %s — %s (user_id=%d)", b.ID, b.Date, b.Name, b.UserID))
	}
	return chatListHeader + strings.Join(lines, "\n")
}

func formatStatus(c domain.ChatSetting) string {
	state := "включены"
	if !c.Enabled {
		state = "отключены"
	}
	return fmt.Sprintf(statusFmt, state, c.Clock())
}
