package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const calendarBaseURL = "https://www.googleapis.com/calendar/v3/calendars/primary/events"

// CalendarClient calls the Calendar API on behalf of whichever refresh token
// each method receives.
type CalendarClient struct {
	oauth *OAuthClient
	http  *http.Client
}

func NewCalendarClient(oauth *OAuthClient) *CalendarClient {
	return &CalendarClient{
		oauth: oauth,
		http:  &http.Client{Timeout: 10 * time.Second},
	}
}

type CreateEventInput struct {
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Attendees   []string
}

// CreateEvent creates a Meet-enabled event and returns its id and meeting link.
func (c *CalendarClient) CreateEvent(ctx context.Context, refreshToken string, input CreateEventInput) (string, string, error) {
	accessToken, err := c.oauth.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		return "", "", err
	}

	attendees := make([]eventAttendee, 0, len(input.Attendees))
	for _, email := range input.Attendees {
		attendees = append(attendees, eventAttendee{Email: email})
	}

	payload := calendarEventRequest{
		Summary:     input.Summary,
		Description: input.Description,
		Start:       &eventDateTime{DateTime: input.StartTime.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		End:         &eventDateTime{DateTime: input.EndTime.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		Attendees:   attendees,
		ConferenceData: &conferenceData{
			CreateRequest: &conferenceCreateRequest{
				RequestID:             "meet-" + uuid.New().String(),
				ConferenceSolutionKey: conferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
		Reminders: &eventReminders{
			UseDefault: false,
			Overrides: []reminderOverride{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 15},
			},
		},
	}

	var event calendarEventResponse
	url := calendarBaseURL + "?conferenceDataVersion=1"
	if err := c.do(ctx, http.MethodPost, url, accessToken, payload, &event); err != nil {
		return "", "", fmt.Errorf("failed to create calendar event: %w", err)
	}
	if event.ID == "" {
		return "", "", fmt.Errorf("failed to create calendar event: empty event id")
	}

	meetLink := event.HangoutLink
	if meetLink == "" && event.ConferenceData != nil && len(event.ConferenceData.EntryPoints) > 0 {
		meetLink = event.ConferenceData.EntryPoints[0].URI
	}
	return event.ID, meetLink, nil
}

// UpdateEventTime moves an existing event.
func (c *CalendarClient) UpdateEventTime(ctx context.Context, refreshToken, eventID string, start, end time.Time) error {
	accessToken, err := c.oauth.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		return err
	}

	payload := calendarEventRequest{
		Start: &eventDateTime{DateTime: start.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		End:   &eventDateTime{DateTime: end.UTC().Format(time.RFC3339), TimeZone: "UTC"},
	}

	url := calendarBaseURL + "/" + eventID
	if err := c.do(ctx, http.MethodPatch, url, accessToken, payload, nil); err != nil {
		return fmt.Errorf("failed to update calendar event: %w", err)
	}
	return nil
}

// DeleteEvent removes an event; used as the saga compensation when a local
// insert fails after the event already exists.
func (c *CalendarClient) DeleteEvent(ctx context.Context, refreshToken, eventID string) error {
	accessToken, err := c.oauth.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		return err
	}

	url := calendarBaseURL + "/" + eventID
	if err := c.do(ctx, http.MethodDelete, url, accessToken, nil, nil); err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return nil
}

func (c *CalendarClient) do(ctx context.Context, method, url, accessToken string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
