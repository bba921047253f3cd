package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"roomly/pkg/model"
)

// BookingClient is the HTTP client for the bookings service. Subscribers use
// it for periodic reconciliation: broadcast delivery is best-effort, so a
// consumer that missed events re-fetches the full view to self-heal.
type BookingClient struct {
	httpClient *HttpClient
}

type Metadata struct {
	TotalCount int64
	Limit      int
	Offset     int64
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/bookings", body)
}

func (c *BookingClient) GetAll(ctx context.Context, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/bookings?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(ctx, path)
}

func (c *BookingClient) GetByID(ctx context.Context, id string) (*Response, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id)
	return c.httpClient.GET(ctx, path)
}

func (c *BookingClient) Reschedule(ctx context.Context, id string, body any) (*Response, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(ctx, path, body)
}

func (c *BookingClient) ChangeStatus(ctx context.Context, id string, status string) (*Response, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id) + "/status"
	return c.httpClient.POST(ctx, path, map[string]string{"status": status})
}

func (c *BookingClient) Search(ctx context.Context, roomID, startTime, endTime string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	q.Set("room_id", roomID)
	if startTime != "" {
		q.Set("start_time", startTime)
	}
	if endTime != "" {
		q.Set("end_time", endTime)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	return c.httpClient.GET(ctx, "/api/v1/bookings/search?"+q.Encode())
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking wrapper: %w", err)
	}

	var booking model.Booking
	if err := json.Unmarshal(wrapper.Data, &booking); err != nil {
		return nil, fmt.Errorf("could not decode booking json: %w", err)
	}

	return &booking, nil
}

func (c *BookingClient) DecodeBookings(resp *Response) ([]*model.Booking, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated response: %w", err)
	}

	var bookings []*model.Booking
	if err := json.Unmarshal(wrapper.Data, &bookings); err != nil {
		return nil, nil, fmt.Errorf("could not decode booking list: %w", err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return bookings, metadata, nil
}
