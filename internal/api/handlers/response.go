package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgExternalError = "не удалось связаться с сервисом бронирования, попробуйте еще раз"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"` // машинный код причины отказа
}

// SlotResponse слот, предлагаемый вместо занятого времени
type SlotResponse struct {
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	StartsAt  time.Time `json:"startsAt"`
}

// SlotTakenResponse ответ 409 с альтернативными слотами
type SlotTakenResponse struct {
	ErrorResponse
	Alternatives []SlotResponse `json:"alternatives"`
}

// RespondJSON пишет JSON ответ. data == nil дает пустое тело
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondBadGateway сбой внешнего API: причина непрозрачна, пользователю предлагаем повторить
func RespondBadGateway(w http.ResponseWriter) {
	RespondError(w, http.StatusBadGateway, msgExternalError)
}

// RespondFailure отвечает на ошибку, не распознанную обработчиком
func RespondFailure(w http.ResponseWriter, err error) {
	if IsExternal(err) {
		RespondBadGateway(w)
		return
	}
	RespondInternalError(w)
}

// IsExternal возвращает true для сбоев внешнего API
func IsExternal(err error) bool {
	return errors.Is(err, domain.ErrExternalCall)
}

// DecodeJSON декодирует тело запроса, неизвестные поля запрещены
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// PathID достает положительный int64 из переменной маршрута
func PathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return id, nil
}

// ParseDate разбирает дату YYYY-MM-DD в локации сервиса
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, value, loc)
}

// ParseDatetime разбирает момент времени в RFC 3339
// Без смещения время считается локальным для сервиса
func ParseDatetime(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", value, loc)
}

// FromDomainSlots конвертирует слоты в ответ
func FromDomainSlots(slots []domain.Slot, loc *time.Location) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, SlotResponse{
			Date:      s.Date.Format(domain.DateFormat),
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			StartsAt:  s.StartsAt(loc),
		})
	}
	return result
}
