package trainerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент внешнего REST API тренеров и бронирований
// API является источником истины: именно оно окончательно отклоняет занятое время
type Client struct {
	baseURL      string
	httpClient   *http.Client
	defaultBreak domain.BreakWindow
	metrics      *metrics.Metrics
	log          Logger
}

// NewClient создает новый экземпляр клиента. m может быть nil
func NewClient(baseURL string, timeout time.Duration, defaultBreak domain.BreakWindow, m *metrics.Metrics, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		defaultBreak: defaultBreak,
		metrics:      m,
		log:          log,
	}
}

// GetTrainer получает настройки тренера
func (c *Client) GetTrainer(ctx context.Context, trainerID int64) (*domain.Trainer, error) {
	var resp Trainer
	err := c.do(ctx, "get_trainer", http.MethodGet, "/users/trainer/"+formatID(trainerID), nil, nil, &resp, ErrTrainerNotFound)
	if err != nil {
		return nil, err
	}

	t := &domain.Trainer{ID: trainerID, Name: resp.Name}
	if resp.SessionDuration != nil {
		t.SessionDurationMinutes = *resp.SessionDuration
	}
	if resp.CancellationHours != nil {
		t.CancellationHours = *resp.CancellationHours
	}
	return t, nil
}

// UpsertTrainer обновляет настройки тренера
func (c *Client) UpsertTrainer(ctx context.Context, t *domain.Trainer) error {
	duration := t.SessionDuration()
	hours := int(t.PenaltyWindow().Hours())
	body := TrainerSettingsRequest{
		SessionDuration:   &duration,
		CancellationHours: &hours,
	}
	return c.do(ctx, "update_trainer", http.MethodPut, "/users/trainer/"+formatID(t.ID)+"/settings", nil, body, nil, ErrTrainerNotFound)
}

// GetWeeklySchedule получает недельное расписание тренера
func (c *Client) GetWeeklySchedule(ctx context.Context, trainerID int64) ([]domain.WorkingHoursTemplate, error) {
	var resp []ScheduleEntry
	err := c.do(ctx, "get_schedule", http.MethodGet, "/slots/trainer/"+formatID(trainerID)+"/schedule", nil, nil, &resp, ErrTrainerNotFound)
	if errors.Is(err, ErrTrainerNotFound) {
		// Тренер без расписания: все дни выходные, как и в postgres
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainSchedule(resp)
}

// ReplaceWeeklySchedule полностью перезаписывает расписание одним запросом
func (c *Client) ReplaceWeeklySchedule(ctx context.Context, trainerID int64, entries []domain.WorkingHoursTemplate) error {
	body := ScheduleUpdateRequest{Schedules: fromDomainSchedule(entries, c.defaultBreak)}
	return c.do(ctx, "save_schedule", http.MethodPut, "/slots/trainer/"+formatID(trainerID)+"/schedule", nil, body, nil, ErrTrainerNotFound)
}

// GetByID получает бронирование
func (c *Client) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var resp Booking
	if err := c.do(ctx, "get_booking", http.MethodGet, "/bookings/"+formatID(id), nil, nil, &resp, ErrBookingNotFound); err != nil {
		return nil, err
	}
	return toDomainBooking(&resp, "")
}

// ListByTrainer получает бронирования тренера
func (c *Client) ListByTrainer(ctx context.Context, filter domain.TrainerBookingsFilter) ([]*domain.Booking, error) {
	query := url.Values{}
	if filter.Status != nil {
		query.Set("status", string(*filter.Status))
	}
	if filter.From != nil {
		query.Set("from_date", filter.From.Format(time.RFC3339))
	}
	if filter.To != nil {
		query.Set("to_date", filter.To.Format(time.RFC3339))
	}

	var resp []Booking
	if err := c.do(ctx, "list_trainer_bookings", http.MethodGet, "/bookings/trainer/"+formatID(filter.TrainerID), query, nil, &resp, ErrTrainerNotFound); err != nil {
		return nil, err
	}

	result := make([]*domain.Booking, 0, len(resp))
	for i := range resp {
		b, err := toDomainBooking(&resp[i], "")
		if err != nil {
			return nil, err
		}
		if filter.Status == nil && !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		// API может не поддерживать фильтр по периоду, поэтому проверяем еще раз
		if filter.From != nil && b.Datetime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !b.Datetime.Before(*filter.To) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

// ListByClient получает бронирования клиента
func (c *Client) ListByClient(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error) {
	query := url.Values{}
	if filter.Status != nil {
		query.Set("status", string(*filter.Status))
	}

	var resp []Booking
	if err := c.do(ctx, "list_client_bookings", http.MethodGet, "/bookings/client/"+formatID(filter.ClientID), query, nil, &resp, ErrBookingNotFound); err != nil {
		return nil, err
	}

	result := make([]*domain.Booking, 0, len(resp))
	for i := range resp {
		b, err := toDomainBooking(&resp[i], "")
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, nil
}

// Create создает бронирование. Сервер назначает id и статус pending
func (c *Client) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	body := CreateBookingRequest{
		TrainerTelegramID: formatID(b.TrainerID),
		ClientTelegramID:  formatID(b.ClientID),
		Datetime:          b.Datetime,
		Duration:          b.DurationMinutes,
		Notes:             b.Notes,
		CreatedBy:         string(b.CreatedBy),
	}

	var resp Booking
	if err := c.do(ctx, "create_booking", http.MethodPost, "/bookings/", nil, body, &resp, ErrTrainerNotFound); err != nil {
		return nil, err
	}
	return toDomainBooking(&resp, b.CreatedBy)
}

// Update частично изменяет бронирование от имени участника
func (c *Client) Update(ctx context.Context, id int64, upd domain.BookingUpdate) (*domain.Booking, error) {
	body := UpdateBookingRequest{
		Datetime:           upd.Datetime,
		CancellationReason: upd.CancellationReason,
	}
	if upd.Status != nil {
		status := string(*upd.Status)
		body.Status = &status
	}

	query := url.Values{}
	query.Set("telegram_id", formatID(upd.ActorID))

	var resp Booking
	if err := c.do(ctx, "update_booking", http.MethodPut, "/bookings/"+formatID(id), query, body, &resp, ErrBookingNotFound); err != nil {
		return nil, err
	}
	return toDomainBooking(&resp, "")
}

// Cancel отменяет бронирование через изменение статуса
func (c *Client) Cancel(ctx context.Context, id int64, cancellation domain.Cancellation) (*domain.Booking, error) {
	status := domain.StatusCancelled
	upd := domain.BookingUpdate{
		ActorID:   cancellation.ActorID,
		ActorRole: cancellation.ActorRole,
		Status:    &status,
	}
	if reason := strings.TrimSpace(cancellation.Reason); reason != "" {
		upd.CancellationReason = &reason
	}
	return c.Update(ctx, id, upd)
}

// do выполняет запрос и разбирает ответ в out (если out не nil)
func (c *Client) do(
	ctx context.Context,
	operation string,
	method string,
	path string,
	query url.Values,
	body interface{},
	out interface{},
	notFound error,
) (err error) {
	defer func() {
		c.metrics.ObserveExternalCall(operation, externalFailure(err))
	}()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("TrainerAPI: %s %s failed: %v", method, path, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return notFound
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, readDetail(resp.Body))
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusConflict:
		detail := readDetail(resp.Body)
		if isSlotTakenDetail(detail) {
			c.log.Warn("TrainerAPI: %s %s rejected, slot already booked", method, path)
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: %s", ErrRejected, detail)
	default:
		detail := readDetail(resp.Body)
		c.log.Error("TrainerAPI: %s %s unexpected status %d: %s", method, path, resp.StatusCode, detail)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, detail)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// externalFailure оставляет только сбои внешнего вызова: бизнес-отказы не считаются ошибкой API
func externalFailure(err error) error {
	if errors.Is(err, domain.ErrExternalCall) {
		return err
	}
	return nil
}

func readDetail(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, 4096))

	var errResp ErrorResponse
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Detail != "" {
		return errResp.Detail
	}
	return strings.TrimSpace(string(data))
}

func isSlotTakenDetail(detail string) bool {
	return strings.Contains(normalize(detail), "already booked")
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
