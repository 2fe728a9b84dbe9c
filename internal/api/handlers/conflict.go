package handlers

import "github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"

const (
	msgOutsideWorkingHours = "выбранное время вне рабочих часов мастера"
	msgOverlapsBreak       = "выбранное время пересекается с перерывом мастера"
	msgSlotTaken           = "выбранное время уже занято"
	msgOutsideWindow       = "выбранное время вне окна предварительной записи"
)

// ConflictMessage текст для клиента по причине конфликта слота
func ConflictMessage(err *domain.ConflictError) string {
	switch err.Reason {
	case domain.ConflictOutsideWorkingHours:
		return msgOutsideWorkingHours
	case domain.ConflictOverlapsBreak:
		return msgOverlapsBreak
	case domain.ConflictOutsideBookingWindow:
		return msgOutsideWindow
	default:
		return msgSlotTaken
	}
}
