package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/database/dbtest"
	"github.com/petsalon/salon-api/internal/pkg/email"
	"github.com/petsalon/salon-api/internal/pkg/metrics"
)

func validRequest(date, clock string) *CreateRequest {
	price := 1500
	return &CreateRequest{
		CustomerName:  "Анна",
		CustomerPhone: "+7 900 000-00-00",
		PetName:       "Бублик",
		PetBreed:      "пудель",
		ServiceName:   "Комплексный груминг",
		ServicePrice:  &price,
		BookingDate:   date,
		BookingTime:   clock,
	}
}

func newService(t *testing.T) (*Service, Repository) {
	t.Helper()
	repo := NewRepository(dbtest.New(t))
	return NewService(repo), repo
}

func TestSlotConflictAndRebookAfterCancel(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, validRequest("2026-11-02", "10:00"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, validRequest("2026-11-02", "10:00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrSlotConflict)
	assert.Equal(t, "This time slot is already booked", apperror.Message(err))

	// a different slot on the same day is free
	_, err = svc.Create(ctx, validRequest("2026-11-02", "11:00"))
	require.NoError(t, err)

	cancelled := StatusCancelled
	require.NoError(t, svc.Update(ctx, first, Patch{Status: &cancelled}))

	second, err := svc.Create(ctx, validRequest("2026-11-02", "10:00"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// the cancelled booking cannot take the slot back
	pending := StatusPending
	err = svc.Update(ctx, first, Patch{Status: &pending})
	assert.ErrorIs(t, err, apperror.ErrSlotConflict)
}

func TestConfirmedAndCompletedSlots(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, validRequest("2026-11-03", "12:30"))
	require.NoError(t, err)

	confirmed := StatusConfirmed
	require.NoError(t, svc.Update(ctx, id, Patch{Status: &confirmed}))
	_, err = svc.Create(ctx, validRequest("2026-11-03", "12:30"))
	assert.ErrorIs(t, err, apperror.ErrSlotConflict)

	completed := StatusCompleted
	require.NoError(t, svc.Update(ctx, id, Patch{Status: &completed}))
	_, err = svc.Create(ctx, validRequest("2026-11-03", "12:30"))
	assert.NoError(t, err)
}

func TestConcurrentCreatesBookSlotOnce(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, validRequest("2026-11-04", "09:00"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, apperror.ErrSlotConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)

	bookings, err := repo.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestUpdateStatusOnlyLeavesOtherFields(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	req := validRequest("2026-11-05", "15:00")
	req.Notes = "боится фена"
	req.CustomerEmail = "anna@example.com"
	id, err := svc.Create(ctx, req)
	require.NoError(t, err)

	patch, err := ParsePatch(map[string]json.RawMessage{"status": json.RawMessage(`"confirmed"`)})
	require.NoError(t, err)
	require.NoError(t, svc.Update(ctx, id, patch))

	bookings, err := repo.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, bookings, 1)

	got := bookings[0].ToResponse()
	assert.Equal(t, StatusConfirmed, got.Status)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "боится фена", *got.Notes)
	require.NotNil(t, got.CustomerEmail)
	assert.Equal(t, "anna@example.com", *got.CustomerEmail)
	assert.Equal(t, "2026-11-05", got.BookingDate.String())
	assert.Equal(t, "15:00", got.BookingTime)
	assert.Equal(t, 1500, got.ServicePrice)
}

func TestUpdateUnknownBooking(t *testing.T) {
	svc, _ := newService(t)

	notes := "x"
	err := svc.Update(context.Background(), 999, Patch{Notes: &notes})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestParsePatch(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]json.RawMessage
		wantErr    bool
		wantStatus Status
		wantNotes  *string
	}{
		{name: "empty", fields: map[string]json.RawMessage{}, wantErr: true},
		{name: "nil", fields: nil, wantErr: true},
		{name: "disallowed only", fields: map[string]json.RawMessage{"customer_name": json.RawMessage(`"X"`)}, wantErr: true},
		{name: "allowed and disallowed", fields: map[string]json.RawMessage{"status": json.RawMessage(`"confirmed"`), "service_price": json.RawMessage(`1`)}, wantErr: true},
		{name: "unknown status", fields: map[string]json.RawMessage{"status": json.RawMessage(`"archived"`)}, wantErr: true},
		{name: "status not a string", fields: map[string]json.RawMessage{"status": json.RawMessage(`5`)}, wantErr: true},
		{name: "notes not a string", fields: map[string]json.RawMessage{"notes": json.RawMessage(`{}`)}, wantErr: true},
		{name: "status", fields: map[string]json.RawMessage{"status": json.RawMessage(`"cancelled"`)}, wantStatus: StatusCancelled},
		{name: "notes", fields: map[string]json.RawMessage{"notes": json.RawMessage(`"late"`)}, wantNotes: strPtr("late")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			patch, err := ParsePatch(tc.fields)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperror.ErrValidation)
				return
			}
			require.NoError(t, err)
			if tc.wantStatus != "" {
				require.NotNil(t, patch.Status)
				assert.Equal(t, tc.wantStatus, *patch.Status)
			} else {
				assert.Nil(t, patch.Status)
			}
			assert.Equal(t, tc.wantNotes, patch.Notes)
		})
	}
}

func strPtr(s string) *string { return &s }

type recordingRepo struct {
	creates int
	updates int
}

func (r *recordingRepo) List(context.Context, Filter) ([]*Booking, error) { return nil, nil }

func (r *recordingRepo) CreateIfSlotFree(context.Context, *Booking) (int64, error) {
	r.creates++
	return 1, nil
}

func (r *recordingRepo) Update(context.Context, int64, Patch) error {
	r.updates++
	return nil
}

func TestValidationPrecedesStorage(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(r *CreateRequest)
	}{
		{name: "missing customer name", mutate: func(r *CreateRequest) { r.CustomerName = "" }},
		{name: "missing phone", mutate: func(r *CreateRequest) { r.CustomerPhone = "" }},
		{name: "missing pet name", mutate: func(r *CreateRequest) { r.PetName = "" }},
		{name: "missing pet breed", mutate: func(r *CreateRequest) { r.PetBreed = "" }},
		{name: "missing service", mutate: func(r *CreateRequest) { r.ServiceName = "" }},
		{name: "missing price", mutate: func(r *CreateRequest) { r.ServicePrice = nil }},
		{name: "missing date", mutate: func(r *CreateRequest) { r.BookingDate = "" }},
		{name: "missing time", mutate: func(r *CreateRequest) { r.BookingTime = "" }},
		{name: "malformed date", mutate: func(r *CreateRequest) { r.BookingDate = "02.11.2026" }},
		{name: "malformed time", mutate: func(r *CreateRequest) { r.BookingTime = "25:00" }},
		{name: "malformed email", mutate: func(r *CreateRequest) { r.CustomerEmail = "anna" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest("2026-11-06", "10:00")
			tc.mutate(req)
			_, err := svc.Create(ctx, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
	assert.Zero(t, repo.creates)

	assert.ErrorIs(t, svc.Update(ctx, 1, Patch{}), apperror.ErrValidation)
	assert.Zero(t, repo.updates)
}

func TestMetricsCountBookingsAndConflicts(t *testing.T) {
	svc, _ := newService(t)
	m := metrics.New()
	svc.SetMetrics(m)
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest("2026-11-07", "10:00"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, validRequest("2026-11-07", "10:00"))
	require.Error(t, err)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				values[mf.GetName()] = c.GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, values["salon_bookings_created_total"])
	assert.Equal(t, 1.0, values["salon_booking_slot_conflicts_total"])
}

func TestHTTPFlow(t *testing.T) {
	svc, _ := newService(t)
	r := chi.NewRouter()
	r.Mount("/api/bookings", NewHandler(svc).Routes(func(next http.Handler) http.Handler { return next }))

	do := func(method, target, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(rec, req)
		return rec
	}

	payload := `{"customer_name":"Игорь","customer_phone":"+7","pet_name":"Мурзик","pet_breed":"британец",` +
		`"service_name":"Стрижка и укладка","service_price":1200,"booking_date":"2026-11-08","booking_time":"14:00"}`

	rec := do(http.MethodPost, "/api/bookings", payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Message string `json:"message"`
		ID      int64  `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Booking created successfully", created.Message)

	rec = do(http.MethodPost, "/api/bookings", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "SLOT_CONFLICT")

	rec = do(http.MethodPost, "/api/bookings", `{"customer_name":"Игорь"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")

	id := strconv.FormatInt(created.ID, 10)
	rec = do(http.MethodPut, "/api/bookings/"+id, `{"status":"confirmed","notes":"VIP"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Booking updated successfully")

	rec = do(http.MethodPut, "/api/bookings/"+id, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No valid fields to update")

	rec = do(http.MethodPut, "/api/bookings/"+id, `{"pet_name":"Барсик"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(http.MethodPut, "/api/bookings/424242", `{"status":"cancelled"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(http.MethodGet, "/api/bookings?date=2026-11-08&status=confirmed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Data []BookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)
	assert.Equal(t, "2026-11-08", listed.Data[0].BookingDate.String())
	require.NotNil(t, listed.Data[0].Notes)
	assert.Equal(t, "VIP", *listed.Data[0].Notes)

	rec = do(http.MethodGet, "/api/bookings?status=pending", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed.Data)

	rec = do(http.MethodGet, "/api/bookings?status=lost", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(http.MethodGet, "/api/bookings?date=tomorrow", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListOrdering(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, slot := range [][2]string{
		{"2026-11-10", "16:00"},
		{"2026-11-09", "12:00"},
		{"2026-11-10", "09:30"},
		{"2026-11-09", "08:00"},
	} {
		_, err := svc.Create(ctx, validRequest(slot[0], slot[1]))
		require.NoError(t, err)
	}

	bookings, err := svc.List(ctx, Filter{})
	require.NoError(t, err)

	var got []string
	for _, b := range bookings {
		got = append(got, b.BookingDate.String()+" "+b.BookingTime)
	}
	assert.Equal(t, []string{
		"2026-11-09 08:00",
		"2026-11-09 12:00",
		"2026-11-10 09:30",
		"2026-11-10 16:00",
	}, got)
}

type outbox struct {
	mu   sync.Mutex
	sent []*email.Message
}

func (o *outbox) Send(_ context.Context, msg *email.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, msg)
	return nil
}

func TestStaffNotifiedOnlyForAcceptedBookings(t *testing.T) {
	svc, _ := newService(t)
	box := &outbox{}
	notifier := email.NewServiceWithSender(box, "staff@salon.example")
	svc.SetNotifier(notifier)
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest("2026-11-01", "10:00"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, validRequest("2026-11-01", "10:00"))
	require.ErrorIs(t, err, ErrSlotTaken)

	notifier.Close()
	require.Len(t, box.sent, 1)
	assert.Contains(t, box.sent[0].Subject, "2026-11-01 10:00")
}
