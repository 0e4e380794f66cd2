// Package api is the HTTP client for the GiziChain backend. Every endpoint
// returns the {ok, message, data} envelope, except a few legacy paths that
// return bare arrays or objects, so responses are decoded defensively and
// run through internal/normalize before anything downstream sees them.
// Failures are classified exactly once, here, into *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ibnfzy/gizichain/internal/coerce"
	"github.com/ibnfzy/gizichain/internal/model"
	"github.com/ibnfzy/gizichain/internal/normalize"
)

const (
	defaultBaseURL = "https://olive.jultdev.site"
	defaultTimeout = 15 * time.Second
)

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: defaultTimeout}
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return base
}

// do executes one request and returns the envelope's data value (or the bare
// payload for legacy endpoints). All failure paths come back as *Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) (any, error) {
	u := c.baseURL() + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, Normalize(fmt.Errorf("marshal request payload: %w", err))
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, Normalize(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := strings.TrimSpace(c.Token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, Normalize(fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Normalize(fmt.Errorf("read response: %w", err))
	}
	return decodeEnvelope(resp.StatusCode, body)
}

// decodeEnvelope unwraps {ok, message, data}, accepting ok/status/success as
// the success key. Payloads without a recognizable envelope are treated as
// bare data when the HTTP status allows it.
func decodeEnvelope(statusCode int, body []byte) (any, error) {
	var parsed any
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &parsed); err != nil {
			if statusCode < 200 || statusCode >= 300 {
				return nil, envelopeError(statusCode, fmt.Sprintf("request failed with status %d", statusCode), nil, body)
			}
			return nil, Normalize(fmt.Errorf("decode response: %w", err))
		}
	}
	if m := normalize.AsMap(parsed); m != nil {
		if ok, isEnvelope := envelopeSuccess(m); isEnvelope {
			if !ok {
				return nil, envelopeError(statusCode, m["message"], m["data"], body)
			}
			return m["data"], nil
		}
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, envelopeError(statusCode, nil, parsed, body)
	}
	return parsed, nil
}

// envelopeSuccess inspects the ok/status/success key. The key only counts as
// an envelope marker when its value is a boolean or a known status word;
// payload fields that merely share the name (e.g. a consultation "status")
// must not be mistaken for one.
func envelopeSuccess(m map[string]any) (ok, isEnvelope bool) {
	for _, key := range []string{"ok", "status", "success"} {
		v, present := m[key]
		if !present {
			continue
		}
		switch t := v.(type) {
		case bool:
			return t, true
		case string:
			switch strings.ToLower(strings.TrimSpace(t)) {
			case "true", "success", "ok":
				return true, true
			case "false", "error", "fail", "failed":
				return false, true
			}
		}
	}
	return false, false
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// AuthPayload is the normalized result of login/register.
type AuthPayload struct {
	Token string
	User  model.User
}

func (c *Client) Login(ctx context.Context, in LoginInput) (AuthPayload, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, in)
	if err != nil {
		return AuthPayload{}, err
	}
	return authPayload(data)
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (AuthPayload, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, in)
	if err != nil {
		return AuthPayload{}, err
	}
	return authPayload(data)
}

func authPayload(data any) (AuthPayload, error) {
	m := normalize.AsMap(data)
	if m == nil {
		return AuthPayload{}, &Error{Kind: KindTransport, Message: "Respons autentikasi tidak valid."}
	}
	token := coerce.String(m["token"], "")
	user := normalize.ParseUser(m["user"])
	if token == "" || user == nil {
		return AuthPayload{}, &Error{Kind: KindTransport, Message: "Respons autentikasi tidak valid."}
	}
	return AuthPayload{Token: token, User: *user}, nil
}

// LatestInference returns the newest nutrition inference for a mother, or
// nil when the backend has none yet.
func (c *Client) LatestInference(ctx context.Context, motherID string) (*model.InferenceResult, error) {
	q := url.Values{"mother_id": {motherID}}
	data, err := c.do(ctx, http.MethodGet, "/api/inference/latest", q, nil)
	if err != nil {
		return nil, err
	}
	// Some backend versions wrap the latest record in a one-element array.
	if list, ok := data.([]any); ok {
		if len(list) == 0 {
			return nil, nil
		}
		data = list[0]
	}
	m := normalize.AsMap(data)
	if m == nil {
		return nil, nil
	}
	if inference, ok := m["inference"]; ok {
		return normalize.ParseInference(inference), nil
	}
	return normalize.ParseInference(m), nil
}

func (c *Client) MotherProfile(ctx context.Context, motherID string) (*model.MotherProfile, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/mothers/"+url.PathEscape(motherID), nil, nil)
	if err != nil {
		return nil, err
	}
	if m := normalize.AsMap(data); m != nil {
		if mother := normalize.AsMap(m["mother"]); mother != nil {
			data = mother
		}
	}
	return normalize.ParseMotherProfile(data, motherID), nil
}

// MotherProfileUpdate is the outbound update payload. Riwayat is sent under
// both the current and the legacy key so either backend generation persists
// it.
type MotherProfileUpdate struct {
	BB              float64  `json:"bb"`
	TB              float64  `json:"tb"`
	Umur            float64  `json:"umur"`
	UsiaBayiBulan   float64  `json:"usia_bayi_bln"`
	LaktasiTipe     string   `json:"laktasi_tipe"`
	Aktivitas       string   `json:"aktivitas"`
	Alergi          []string `json:"alergi"`
	Preferensi      []string `json:"preferensi"`
	Riwayat         []string `json:"riwayat"`
	RiwayatPenyakit []string `json:"riwayat_penyakit"`
}

// UpdateFromProfile builds the outbound payload, keeping both riwayat keys in
// sync.
func UpdateFromProfile(p model.MotherProfile) MotherProfileUpdate {
	return MotherProfileUpdate{
		BB:              p.BB,
		TB:              p.TB,
		Umur:            p.Umur,
		UsiaBayiBulan:   p.UsiaBayiBulan,
		LaktasiTipe:     p.LaktasiTipe,
		Aktivitas:       p.Aktivitas,
		Alergi:          p.Alergi,
		Preferensi:      p.Preferensi,
		Riwayat:         p.Riwayat,
		RiwayatPenyakit: p.Riwayat,
	}
}

func (c *Client) UpdateMotherProfile(ctx context.Context, motherID string, update MotherProfileUpdate) (*model.MotherProfile, error) {
	data, err := c.do(ctx, http.MethodPut, "/api/mothers/"+url.PathEscape(motherID), nil, update)
	if err != nil {
		return nil, err
	}
	if m := normalize.AsMap(data); m != nil {
		if mother := normalize.AsMap(m["mother"]); mother != nil {
			data = mother
		}
	}
	return normalize.ParseMotherProfile(data, motherID), nil
}

type ConsultationFilter struct {
	MotherID string
	PakarID  string
	Status   string
}

func (c *Client) Consultations(ctx context.Context, f ConsultationFilter) ([]model.Consultation, error) {
	q := url.Values{}
	if f.MotherID != "" {
		q.Set("mother_id", f.MotherID)
	}
	if f.PakarID != "" {
		q.Set("pakar_id", f.PakarID)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	data, err := c.do(ctx, http.MethodGet, "/api/consultations", q, nil)
	if err != nil {
		return nil, err
	}
	items, _ := data.([]any)
	out := make([]model.Consultation, 0, len(items))
	for _, item := range items {
		if cons := normalize.ParseConsultation(item); cons != nil {
			out = append(out, *cons)
		}
	}
	return out, nil
}

// ActiveConsultation resolves the single most recent consultation matching
// the filter. A not-found rejection means "no consultation", not an error.
func (c *Client) ActiveConsultation(ctx context.Context, f ConsultationFilter) (*model.Consultation, error) {
	list, err := c.Consultations(ctx, f)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return normalize.MostRecentConsultation(list), nil
}

func (c *Client) ConsultationMessages(ctx context.Context, consultationID string) ([]model.ConsultationMessage, error) {
	path := "/api/consultations/" + url.PathEscape(consultationID) + "/messages"
	data, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	items, _ := data.([]any)
	out := make([]model.ConsultationMessage, 0, len(items))
	for _, item := range items {
		if msg := normalize.ParseConsultationMessage(item); msg != nil {
			out = append(out, *msg)
		}
	}
	return out, nil
}

type SendMessageInput struct {
	ConsultationID string
	Sender         string
	Text           string
}

// SendMessage posts one chat message. Unlike the read paths, an unparseable
// reply here is a hard error: silently dropping a sent message would lose
// data. The client_ref lets the backend deduplicate retried sends.
func (c *Client) SendMessage(ctx context.Context, in SendMessageInput) (*model.ConsultationMessage, error) {
	payload := map[string]any{
		"consultation_id": in.ConsultationID,
		"sender":          in.Sender,
		"message":         in.Text,
		"client_ref":      uuid.NewString(),
	}
	data, err := c.do(ctx, http.MethodPost, "/api/messages", nil, payload)
	if err != nil {
		return nil, err
	}
	if m := normalize.AsMap(data); m != nil {
		if inner := normalize.AsMap(m["message"]); inner != nil {
			data = inner
		}
	}
	msg := normalize.ParseConsultationMessage(data)
	if msg == nil {
		return nil, &Error{Kind: KindTransport, Message: "Respons pengiriman pesan tidak valid."}
	}
	return msg, nil
}

// UnreadNotifications fetches the mother's unread notifications. A missing
// data payload yields an empty list, never nil-vs-error ambiguity.
func (c *Client) UnreadNotifications(ctx context.Context, motherID string) ([]model.Notification, error) {
	q := url.Values{"mother_id": {motherID}, "unread": {"1"}}
	data, err := c.do(ctx, http.MethodGet, "/api/notifications", q, nil)
	if err != nil {
		return nil, err
	}
	list := normalize.ParseNotificationList(data)
	if list == nil {
		return []model.Notification{}, nil
	}
	return list, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	path := "/api/notifications/" + url.PathEscape(notificationID) + "/read"
	_, err := c.do(ctx, http.MethodPut, path, nil, nil)
	return err
}

func (c *Client) Schedules(ctx context.Context, motherID string) ([]model.Schedule, error) {
	q := url.Values{"mother_id": {motherID}}
	data, err := c.do(ctx, http.MethodGet, "/api/schedules", q, nil)
	if err != nil {
		return nil, err
	}
	items, _ := data.([]any)
	out := make([]model.Schedule, 0, len(items))
	for _, item := range items {
		if s := normalize.ParseSchedule(item); s != nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (c *Client) SetAttendance(ctx context.Context, scheduleID string, status model.AttendanceStatus) (*model.Schedule, error) {
	path := "/api/schedules/" + url.PathEscape(scheduleID) + "/attendance"
	payload := map[string]any{"attendance": string(status)}
	data, err := c.do(ctx, http.MethodPut, path, nil, payload)
	if err != nil {
		return nil, err
	}
	return normalize.ParseSchedule(data), nil
}
