package handlers

import (
	"net/http"

	"github.com/m04kA/SMC-TrainerBooking/internal/schedule"
)

var reasonMessages = map[schedule.Reason]string{
	schedule.ReasonPastDatetime:        "нельзя записаться на прошедшее время",
	schedule.ReasonSlotTaken:           "это время уже занято",
	schedule.ReasonMissingReason:       "укажите причину отмены",
	schedule.ReasonOutsideWorkingHours: "выбранное время вне рабочих часов тренера",
	schedule.ReasonInvalidTransition:   "недопустимое изменение статуса бронирования",
}

var reasonStatuses = map[schedule.Reason]int{
	schedule.ReasonPastDatetime:        http.StatusUnprocessableEntity,
	schedule.ReasonSlotTaken:           http.StatusConflict,
	schedule.ReasonMissingReason:       http.StatusUnprocessableEntity,
	schedule.ReasonOutsideWorkingHours: http.StatusUnprocessableEntity,
	schedule.ReasonInvalidTransition:   http.StatusConflict,
}

// ReasonMessage локализованное сообщение для причины отказа
func ReasonMessage(reason schedule.Reason) string {
	if msg, ok := reasonMessages[reason]; ok {
		return msg
	}
	return msgInternalError
}

// ReasonStatus HTTP статус для причины отказа
func ReasonStatus(reason schedule.Reason) int {
	if status, ok := reasonStatuses[reason]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// RespondRejection отвечает на отказ валидации бронирования.
// Возвращает false, если err не содержит причины отказа
func RespondRejection(w http.ResponseWriter, err error) bool {
	reason, ok := schedule.ReasonOf(err)
	if !ok {
		return false
	}
	RespondJSON(w, ReasonStatus(reason), ErrorResponse{
		Error:  ReasonMessage(reason),
		Reason: string(reason),
	})
	return true
}

// RespondSlotTaken 409 с альтернативными слотами на тот же день
func RespondSlotTaken(w http.ResponseWriter, alternatives []SlotResponse) {
	if alternatives == nil {
		alternatives = []SlotResponse{}
	}
	RespondJSON(w, http.StatusConflict, SlotTakenResponse{
		ErrorResponse: ErrorResponse{
			Error:  ReasonMessage(schedule.ReasonSlotTaken),
			Reason: string(schedule.ReasonSlotTaken),
		},
		Alternatives: alternatives,
	})
}
